package internal

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"horeca-board/pkg/access"
	"horeca-board/pkg/config"
	"horeca-board/pkg/jwt"
	"horeca-board/pkg/logger"
	"horeca-board/pkg/middleware"
	moderationHTTP "horeca-board/services/moderation/internal/controller/http"
	"horeca-board/services/moderation/internal/repo/persistent"
	"horeca-board/services/moderation/internal/usecase"

	_ "horeca-board/services/moderation/docs" // Swagger docs

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)
	resolver := access.NewProfileResolver(db, redisClient, 30*time.Second)
	revoker := middleware.NewRedisRevoker(redisClient)

	moderationRepo := persistent.NewModerationRepository(db)
	moderationUseCase := usecase.NewModerationUseCase(moderationRepo, redisClient, 30*time.Second, log)
	moderationHandler := moderationHTTP.NewModerationHandler(moderationUseCase, log)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))
	r.Use(middleware.MetricsMiddleware("moderation"))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", middleware.MetricsHandler())
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")

	staff := api.Group("/admin")
	staff.Use(
		middleware.AuthMiddleware(jwtService, resolver, revoker),
		middleware.RateLimitMiddleware(redisClient, 100, time.Minute),
		middleware.RequireRoles(access.Staff...),
	)
	{
		staff.GET("/dashboard", moderationHandler.Dashboard)
		staff.GET("/moderation/queue", moderationHandler.Queue)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		log.Info("Moderation service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down moderation service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	if err := redisClient.Close(); err != nil {
		log.Error("Error closing Redis: %v", err)
	}

	log.Info("Moderation service exited")
}
