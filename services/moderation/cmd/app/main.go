package main

import (
	"horeca-board/pkg/cache"
	"horeca-board/pkg/config"
	"horeca-board/pkg/database"
	"horeca-board/pkg/logger"
	moderationApp "horeca-board/services/moderation/internal/app"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.ReleaseMode)
}

// @title           Moderation Service API
// @version         1.0
// @description     Admin dashboard and the combined job and banner moderation queue

// @host      localhost:8085
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.NewWithLevel(cfg.LogLevel)
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Error("Invalid configuration: %v", err)
		panic(err)
	}

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		panic(err)
	}

	moderationApp.Run(cfg, log, db, redisClient)
}
