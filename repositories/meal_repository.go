package repositories

import (
	"context"
	"time"

	"github.com/Aayush03107/Ai-Calorie-Tracker/models"

	"gorm.io/gorm"
)

type MealRepository struct {
	db *gorm.DB
}

func NewMealRepository(db *gorm.DB) *MealRepository {
	return &MealRepository{db: db}
}

func (r *MealRepository) Create(ctx context.Context, meal *models.MealLog) error {
	return r.db.WithContext(ctx).Create(meal).Error
}

func (r *MealRepository) ListBetween(ctx context.Context, userID uint, from, to time.Time) ([]models.MealLog, error) {
	var meals []models.MealLog
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, from, to).
		Order("date DESC, meal_timing ASC").
		Find(&meals).Error
	if err != nil {
		return nil, err
	}
	return meals, nil
}
