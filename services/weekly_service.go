package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/Aayush03107/Ai-Calorie-Tracker/models"
	"github.com/Aayush03107/Ai-Calorie-Tracker/utils"

	"go.uber.org/zap"
)

// ErrAggregation marks a failure to fold a meal into its weekly rollup.
// The meal record itself has already been written by then; callers report
// the error and may retry, they must not roll the meal back.
var ErrAggregation = errors.New("weekly aggregation failed")

// WeekStore persists rollups. AddDay must merge atomically: two concurrent
// calls for the same (user, weekStart, date) both land on the counters,
// neither overwrites the other.
type WeekStore interface {
	AddDay(ctx context.Context, userID uint, weekStart, date time.Time, t models.NutritionTotals) error
	RollupsBetween(ctx context.Context, userID uint, from, to time.Time) ([]models.WeeklyMealLog, error)
}

type WeeklyService struct {
	store WeekStore
	log   *zap.Logger
	now   func() time.Time
}

func NewWeeklyService(store WeekStore, log *zap.Logger) *WeeklyService {
	return &WeeklyService{store: store, log: log, now: time.Now}
}

// RecordMeal folds one meal's totals into the rollup for the week
// containing date. The merge is additive, not idempotent: logging the same
// meal twice counts it twice.
func (s *WeeklyService) RecordMeal(ctx context.Context, userID uint, date time.Time, totals models.NutritionTotals) error {
	weekStart := utils.WeekStart(date)
	day := utils.DayStart(date)

	if err := s.store.AddDay(ctx, userID, weekStart, day, totals); err != nil {
		return fmt.Errorf("%w: %v", ErrAggregation, err)
	}
	s.log.Debug("weekly rollup updated",
		zap.Uint("user_id", userID),
		zap.Time("week_start", weekStart),
		zap.Time("date", day))
	return nil
}

// DayBreakdown is one presented day: calories rounded to whole units,
// macros to one decimal place.
type DayBreakdown struct {
	Date     string  `json:"date"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

type WeeklySummary struct {
	Days   []DayBreakdown         `json:"days"`
	Totals models.NutritionTotals `json:"totals"`
}

// Fetch returns the per-day breakdown and grand totals for the rollups
// whose week starts within the last `weeks` weeks.
//
// The two numbers are deliberately asymmetric: the day list is filtered to
// the requested window, while the grand totals sum EVERY day of each
// matching rollup — a week straddling the window edge contributes its
// out-of-window days to the totals but not to the list. Consumers depend
// on this behavior, so it is kept rather than aligned.
func (s *WeeklyService) Fetch(ctx context.Context, userID uint, weeks int) (*WeeklySummary, error) {
	if weeks < 1 {
		weeks = 1
	}
	to := s.now()
	from := to.AddDate(0, 0, -7*weeks)

	logs, err := s.store.RollupsBetween(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAggregation, err)
	}

	summary := &WeeklySummary{Days: []DayBreakdown{}}
	for _, log := range logs {
		week := log.WeekTotals()
		summary.Totals.Calories += week.Calories
		summary.Totals.Protein += week.Protein
		summary.Totals.Carbs += week.Carbs
		summary.Totals.Fats += week.Fats

		for _, d := range log.Days {
			if d.Date.Before(from) || d.Date.After(to) {
				continue
			}
			summary.Days = append(summary.Days, DayBreakdown{
				Date:     d.Date.Format("2006-01-02"),
				Calories: math.Round(d.Calories),
				Protein:  round1(d.Protein),
				Carbs:    round1(d.Carbs),
				Fats:     round1(d.Fats),
			})
		}
	}

	sort.Slice(summary.Days, func(i, j int) bool {
		return summary.Days[i].Date < summary.Days[j].Date
	})

	summary.Totals.Calories = math.Round(summary.Totals.Calories)
	summary.Totals.Protein = round1(summary.Totals.Protein)
	summary.Totals.Carbs = round1(summary.Totals.Carbs)
	summary.Totals.Fats = round1(summary.Totals.Fats)
	return summary, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
