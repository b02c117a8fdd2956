package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Aayush03107/Ai-Calorie-Tracker/models"
	"github.com/Aayush03107/Ai-Calorie-Tracker/services"

	"github.com/gin-gonic/gin"
)

type MealController struct {
	meals *services.MealService
}

func NewMealController(meals *services.MealService) *MealController {
	return &MealController{meals: meals}
}

type mealLogRequest struct {
	Date       time.Time                `json:"date" binding:"required"`
	MealTiming string                   `json:"mealTiming" binding:"required"`
	Items      []services.MealItemInput `json:"items" binding:"required,min=1"`
	Total      *models.NutritionTotals  `json:"total" binding:"required"`
	TotalGrams float64                  `json:"totalGrams"`
	Notes      string                   `json:"notes"`
}

func (mc *MealController) Log(c *gin.Context) {
	var body mealLogRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}
	userID := c.GetUint("userID")

	meal, err := mc.meals.Log(c.Request.Context(), userID, services.MealLogInput{
		Date:       body.Date,
		MealTiming: body.MealTiming,
		Items:      body.Items,
		Total:      *body.Total,
		TotalGrams: body.TotalGrams,
		Notes:      body.Notes,
	})
	switch {
	case errors.Is(err, services.ErrInvalidMealTiming):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrAggregation):
		// The meal row exists; only the rollup write failed. Retryable.
		c.JSON(http.StatusBadGateway, gin.H{
			"error":  "meal saved but weekly totals were not updated",
			"mealId": meal.ID,
		})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error saving meal log"})
	default:
		c.JSON(http.StatusCreated, meal)
	}
}

func (mc *MealController) List(c *gin.Context) {
	userID := c.GetUint("userID")

	var from, to time.Time
	if s, e := c.Query("startDate"), c.Query("endDate"); s != "" && e != "" {
		var err error
		if from, err = time.Parse("2006-01-02", s); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid startDate"})
			return
		}
		if to, err = time.Parse("2006-01-02", e); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid endDate"})
			return
		}
	}

	meals, err := mc.meals.List(c.Request.Context(), userID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error fetching meal logs"})
		return
	}
	c.JSON(http.StatusOK, meals)
}
