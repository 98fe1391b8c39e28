package main

import (
	"horeca-board/pkg/config"
	"horeca-board/pkg/logger"
	app "horeca-board/services/auth/internal/app"

	"github.com/gin-gonic/gin"
)

// @title           Auth Service API
// @version         1.0
// @description     Sign-up, sessions, profiles and moderator management for the HoReCa job board

// @host      localhost:8081
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func init() {
	gin.SetMode(gin.ReleaseMode)
}

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

	application, err := app.NewApp(cfg, log)
	if err != nil {
		panic(err)
	}

	if err := application.Run(); err != nil {
		panic(err)
	}

	application.Wait()

	if err := application.Shutdown(); err != nil {
		panic(err)
	}
}
