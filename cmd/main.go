package main

import (
	"context"
	"log"

	"github.com/Aayush03107/Ai-Calorie-Tracker/config"
	"github.com/Aayush03107/Ai-Calorie-Tracker/repositories"
	"github.com/Aayush03107/Ai-Calorie-Tracker/routes"
	"github.com/Aayush03107/Ai-Calorie-Tracker/services"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("building logger: %v", err)
	}
	defer logger.Sync()

	db, err := config.ConnectDB(cfg)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	rdb := config.ConnectRedis(cfg)

	extractor, err := services.NewGeminiService(context.Background(), cfg.GeminiAPIKey)
	if err != nil {
		logger.Fatal("gemini client", zap.Error(err))
	}
	defer extractor.Close()

	users := repositories.NewUserRepository(db)
	mealRepo := repositories.NewMealRepository(db)
	weekRepo := repositories.NewWeeklyRepository(db)
	revoker := services.NewRedisRevoker(rdb)

	authSvc := services.NewAuthService(revoker, users, []byte(cfg.JWTSecret), logger)
	weeklySvc := services.NewWeeklyService(weekRepo, logger)
	mealSvc := services.NewMealService(mealRepo, weeklySvc, logger)

	r := routes.Setup(routes.Deps{
		Log:       logger,
		Auth:      authSvc,
		Meals:     mealSvc,
		Weekly:    weeklySvc,
		Extractor: extractor,
	})

	logger.Info("listening", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
