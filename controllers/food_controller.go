package controllers

import (
	"net/http"
	"strings"

	"github.com/Aayush03107/Ai-Calorie-Tracker/models"
	"github.com/Aayush03107/Ai-Calorie-Tracker/services"

	"github.com/gin-gonic/gin"
)

type FoodController struct {
	extractor services.NutrientExtractor
}

func NewFoodController(extractor services.NutrientExtractor) *FoodController {
	return &FoodController{extractor: extractor}
}

type caloriesRequest struct {
	Prompt          string                  `json:"prompt"`
	PendingMealData *services.MealBreakdown `json:"pendingMealData"`
}

// Calories turns a free-text meal description into a structured nutrition
// breakdown. When the description (or the model) gives no meal timing, the
// extracted data is handed back and the client re-submits it as
// pendingMealData together with the user's timing answer.
func (fc *FoodController) Calories(c *gin.Context) {
	var req caloriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.PendingMealData != nil {
		timing := strings.ToLower(strings.TrimSpace(req.Prompt))
		if !models.ValidMealTiming(timing) {
			c.JSON(http.StatusOK, gin.H{
				"requiresMealTiming": true,
				"message":            "Please specify if this was breakfast, lunch, dinner, or snacks.",
				"extractedData":      req.PendingMealData,
			})
			return
		}
		req.PendingMealData.MealTiming = timing
		c.JSON(http.StatusOK, req.PendingMealData)
		return
	}

	if strings.TrimSpace(req.Prompt) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt is required"})
		return
	}

	breakdown, err := fc.extractor.ExtractMeal(c.Request.Context(), req.Prompt)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "nutrition extraction failed"})
		return
	}

	if strings.TrimSpace(breakdown.MealTiming) == "" {
		c.JSON(http.StatusOK, gin.H{
			"requiresMealTiming": true,
			"message":            "When did you have this meal? (breakfast/lunch/dinner/snacks)",
			"extractedData":      breakdown,
		})
		return
	}
	c.JSON(http.StatusOK, breakdown)
}
