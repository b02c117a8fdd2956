package routes

import (
	"net/http"

	"github.com/Aayush03107/Ai-Calorie-Tracker/controllers"
	"github.com/Aayush03107/Ai-Calorie-Tracker/middlewares"
	"github.com/Aayush03107/Ai-Calorie-Tracker/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Deps struct {
	Log       *zap.Logger
	Auth      *services.AuthService
	Meals     *services.MealService
	Weekly    *services.WeeklyService
	Extractor services.NutrientExtractor
}

func Setup(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(middlewares.RequestLogger(d.Log), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authCtl := controllers.NewAuthController(d.Auth)
	mealCtl := controllers.NewMealController(d.Meals)
	weeklyCtl := controllers.NewWeeklyController(d.Weekly)
	foodCtl := controllers.NewFoodController(d.Extractor)

	user := r.Group("/user")
	user.POST("/login", authCtl.Login)

	protected := user.Group("")
	protected.Use(middlewares.Auth(d.Auth, d.Log))
	{
		protected.POST("/logout", authCtl.Logout)
		protected.POST("/calories", foodCtl.Calories)
		protected.POST("/mealLog", mealCtl.Log)
		protected.GET("/mealLog", mealCtl.List)
		protected.GET("/weeklyfetch", weeklyCtl.Fetch)
	}

	return r
}
