package models

import (
	"time"

	"gorm.io/gorm"
)

// Meal timings accepted by the logger. Free-text input is normalized to
// lower case before validation.
const (
	TimingBreakfast = "breakfast"
	TimingLunch     = "lunch"
	TimingDinner    = "dinner"
	TimingSnacks    = "snacks"
)

func ValidMealTiming(timing string) bool {
	switch timing {
	case TimingBreakfast, TimingLunch, TimingDinner, TimingSnacks:
		return true
	}
	return false
}

// NutritionTotals is the four-accumulator quad used both as a meal's total
// and as the aggregation input for the weekly rollup.
type NutritionTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// One logged eating event with itemized and total nutrition values.
type MealLog struct {
	gorm.Model
	UserID     uint            `gorm:"index:idx_meal_user_date;not null" json:"userId"`
	Date       time.Time       `gorm:"index:idx_meal_user_date;not null" json:"date"`
	MealTiming string          `gorm:"type:varchar(16);not null" json:"mealTiming"`
	Items      []MealItem      `json:"items"`
	Total      NutritionTotals `gorm:"embedded;embeddedPrefix:total_" json:"total"`
	TotalGrams float64         `json:"totalGrams"`
	Notes      string          `json:"notes,omitempty"`
}

type MealItem struct {
	gorm.Model
	MealLogID        uint    `json:"-"`
	Name             string  `gorm:"not null" json:"name"`
	OriginalQuantity string  `json:"originalQuantity"`
	Grams            float64 `json:"grams"`
	Unit             string  `gorm:"type:varchar(4)" json:"unit"` // "g" or "ml"
	Calories         float64 `json:"calories"`
	Protein          float64 `json:"protein"`
	Carbs            float64 `json:"carbs"`
	Fats             float64 `json:"fats"`
}
