package repositories

import (
	"context"
	"time"

	"github.com/Aayush03107/Ai-Calorie-Tracker/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WeeklyRepository struct {
	db *gorm.DB
}

func NewWeeklyRepository(db *gorm.DB) *WeeklyRepository {
	return &WeeklyRepository{db: db}
}

// AddDay merges one day's totals into the rollup for (userID, weekStart).
// Both steps are conflict-driven so overlapping requests for the same user
// and date compound instead of overwriting each other: the rollup insert
// backs off to a lookup when the (user_id, week_start) row already exists,
// and the day row is an ON CONFLICT increment keyed (rollup, date).
func (r *WeeklyRepository) AddDay(ctx context.Context, userID uint, weekStart, date time.Time, t models.NutritionTotals) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rollup := models.WeeklyMealLog{UserID: userID, WeekStart: weekStart}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "week_start"}},
			DoNothing: true,
		}).Create(&rollup).Error
		if err != nil {
			return err
		}
		if rollup.ID == 0 {
			// Lost the insert race or the rollup predates this meal.
			err = tx.Where("user_id = ? AND week_start = ?", userID, weekStart).
				First(&rollup).Error
			if err != nil {
				return err
			}
		}

		day := models.WeekDay{
			WeeklyMealLogID: rollup.ID,
			Date:            date,
			Calories:        t.Calories,
			Protein:         t.Protein,
			Carbs:           t.Carbs,
			Fats:            t.Fats,
		}
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "weekly_meal_log_id"}, {Name: "date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"calories":   gorm.Expr("week_days.calories + excluded.calories"),
				"protein":    gorm.Expr("week_days.protein + excluded.protein"),
				"carbs":      gorm.Expr("week_days.carbs + excluded.carbs"),
				"fats":       gorm.Expr("week_days.fats + excluded.fats"),
				"updated_at": time.Now(),
			}),
		}).Create(&day).Error
	})
}

// RollupsBetween returns the user's rollups whose week start falls in
// [from, to], oldest first, days preloaded in date order.
func (r *WeeklyRepository) RollupsBetween(ctx context.Context, userID uint, from, to time.Time) ([]models.WeeklyMealLog, error) {
	var logs []models.WeeklyMealLog
	err := r.db.WithContext(ctx).
		Preload("Days", func(db *gorm.DB) *gorm.DB { return db.Order("date ASC") }).
		Where("user_id = ? AND week_start BETWEEN ? AND ?", userID, from, to).
		Order("week_start ASC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
