package controllers

import (
	"net/http"
	"strconv"

	"github.com/Aayush03107/Ai-Calorie-Tracker/services"

	"github.com/gin-gonic/gin"
)

type WeeklyController struct {
	weekly *services.WeeklyService
}

func NewWeeklyController(weekly *services.WeeklyService) *WeeklyController {
	return &WeeklyController{weekly: weekly}
}

func (wc *WeeklyController) Fetch(c *gin.Context) {
	weeks, err := strconv.Atoi(c.DefaultQuery("weeks", "1"))
	if err != nil || weeks < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "weeks must be a positive number"})
		return
	}
	userID := c.GetUint("userID")

	summary, err := wc.weekly.Fetch(c.Request.Context(), userID, weeks)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error fetching weekly data"})
		return
	}
	c.JSON(http.StatusOK, summary)
}
