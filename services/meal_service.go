package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Aayush03107/Ai-Calorie-Tracker/models"
	"github.com/Aayush03107/Ai-Calorie-Tracker/utils"

	"go.uber.org/zap"
)

var ErrInvalidMealTiming = errors.New("meal timing must be breakfast, lunch, dinner or snacks")

// MealStore persists the meal records themselves.
type MealStore interface {
	Create(ctx context.Context, meal *models.MealLog) error
	ListBetween(ctx context.Context, userID uint, from, to time.Time) ([]models.MealLog, error)
}

// WeeklyRecorder is the aggregation hook invoked after a meal write lands.
type WeeklyRecorder interface {
	RecordMeal(ctx context.Context, userID uint, date time.Time, totals models.NutritionTotals) error
}

type MealService struct {
	meals  MealStore
	weekly WeeklyRecorder
	log    *zap.Logger
}

func NewMealService(meals MealStore, weekly WeeklyRecorder, log *zap.Logger) *MealService {
	return &MealService{meals: meals, weekly: weekly, log: log}
}

type MealItemInput struct {
	Name             string  `json:"name" binding:"required"`
	OriginalQuantity string  `json:"originalQuantity"`
	Grams            float64 `json:"grams"`
	Unit             string  `json:"unit"`
	Calories         float64 `json:"calories"`
	Protein          float64 `json:"protein"`
	Carbs            float64 `json:"carbs"`
	Fats             float64 `json:"fats"`
}

type MealLogInput struct {
	Date       time.Time
	MealTiming string
	Items      []MealItemInput
	Total      models.NutritionTotals
	TotalGrams float64
	Notes      string
}

// Log persists the meal and then folds its totals into the weekly rollup.
// If the rollup update fails the meal stays put: the returned error wraps
// ErrAggregation and the caller reports it as retryable, alongside the
// already-created meal.
func (s *MealService) Log(ctx context.Context, userID uint, in MealLogInput) (*models.MealLog, error) {
	timing := strings.ToLower(strings.TrimSpace(in.MealTiming))
	if !models.ValidMealTiming(timing) {
		return nil, ErrInvalidMealTiming
	}

	meal := &models.MealLog{
		UserID:     userID,
		Date:       in.Date,
		MealTiming: timing,
		Total:      in.Total,
		TotalGrams: in.TotalGrams,
		Notes:      in.Notes,
	}
	for _, it := range in.Items {
		meal.Items = append(meal.Items, models.MealItem{
			Name:             it.Name,
			OriginalQuantity: it.OriginalQuantity,
			Grams:            it.Grams,
			Unit:             it.Unit,
			Calories:         it.Calories,
			Protein:          it.Protein,
			Carbs:            it.Carbs,
			Fats:             it.Fats,
		})
	}

	if err := s.meals.Create(ctx, meal); err != nil {
		return nil, err
	}

	if err := s.weekly.RecordMeal(ctx, userID, in.Date, in.Total); err != nil {
		s.log.Error("meal saved but weekly rollup update failed",
			zap.Uint("user_id", userID),
			zap.Uint("meal_id", meal.ID),
			zap.Error(err))
		return meal, err
	}
	return meal, nil
}

// List returns the user's meals in [from, to]. Zero times default to today.
func (s *MealService) List(ctx context.Context, userID uint, from, to time.Time) ([]models.MealLog, error) {
	if from.IsZero() || to.IsZero() {
		from = utils.DayStart(time.Now())
		to = from.AddDate(0, 0, 1)
	}
	return s.meals.ListBetween(ctx, userID, from, to)
}
