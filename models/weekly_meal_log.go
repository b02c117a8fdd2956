package models

import (
	"time"

	"gorm.io/gorm"
)

// WeeklyMealLog is the per-user, per-ISO-week rollup of daily nutrition
// totals. WeekStart is always the Monday of the week with the time zeroed;
// the unique index guarantees at most one rollup per (user, week) pair.
type WeeklyMealLog struct {
	gorm.Model
	UserID    uint      `gorm:"uniqueIndex:idx_user_week;not null" json:"userId"`
	WeekStart time.Time `gorm:"uniqueIndex:idx_user_week;not null" json:"weekStart"`
	Days      []WeekDay `json:"days"`
}

// WeekDay accumulates one calendar date inside a rollup. Date carries no
// time-of-day; the unique index keeps a single row per date per rollup so
// concurrent merges land on the same counters.
type WeekDay struct {
	gorm.Model
	WeeklyMealLogID uint      `gorm:"uniqueIndex:idx_week_day;not null" json:"-"`
	Date            time.Time `gorm:"uniqueIndex:idx_week_day;not null" json:"date"`
	Calories        float64   `gorm:"not null;default:0" json:"calories"`
	Protein         float64   `gorm:"not null;default:0" json:"protein"`
	Carbs           float64   `gorm:"not null;default:0" json:"carbs"`
	Fats            float64   `gorm:"not null;default:0" json:"fats"`
}

// WeekTotals sums every day in the rollup.
func (w *WeeklyMealLog) WeekTotals() NutritionTotals {
	var t NutritionTotals
	for _, d := range w.Days {
		t.Calories += d.Calories
		t.Protein += d.Protein
		t.Carbs += d.Carbs
		t.Fats += d.Fats
	}
	return t
}
