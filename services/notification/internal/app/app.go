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
	"horeca-board/pkg/queue"
	notificationHTTP "horeca-board/services/notification/internal/controller/http"
	"horeca-board/services/notification/internal/repo/persistent"
	"horeca-board/services/notification/internal/usecase"

	_ "horeca-board/services/notification/docs" // Swagger docs

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client, queueClient *queue.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)
	resolver := access.NewProfileResolver(db, redisClient, 30*time.Second)
	revoker := middleware.NewRedisRevoker(redisClient)

	// Initialize Repository
	notificationRepo := persistent.NewNotificationRepository(db)
	stream := usecase.NewRedisStream(redisClient)

	// A nil *queue.Client must not leak into the interface.
	var inspector usecase.QueueInspector
	if queueClient != nil {
		inspector = queueClient
	}

	// Initialize UseCase
	notificationUseCase := usecase.NewNotificationUseCase(notificationRepo, stream, inspector, log)

	// Initialize HTTP handlers
	notificationHandler := notificationHTTP.NewNotificationHandler(notificationUseCase, stream, cfg.CORSOrigins, log)

	// Setup router
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))
	r.Use(middleware.MetricsMiddleware("notification"))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", middleware.MetricsHandler())
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")

	// Browsers cannot set headers on a websocket handshake, so the auth
	// middleware also reads ?token= for upgrade requests.
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(jwtService, resolver, revoker))
	protected.GET("/notifications/ws", notificationHandler.HandleWebSocket)

	users := protected.Group("/notifications", middleware.RateLimitMiddleware(redisClient, 100, time.Minute))
	{
		users.GET("", notificationHandler.GetNotifications)
		users.GET("/unread-count", notificationHandler.UnreadCount)
		users.POST("/read-all", notificationHandler.MarkAllRead)
		users.POST("/:id/read", notificationHandler.MarkRead)
	}

	staff := protected.Group("/admin", middleware.RequireRoles(access.Staff...))
	staff.GET("/notifications/queue", notificationHandler.QueueStatus)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	if queueClient != nil {
		go func() {
			log.Info("Starting notification queue processor...")
			err := queueClient.ConsumeNotificationTasks(func(task queue.NotificationTask) error {
				return notificationUseCase.HandleTask(context.Background(), task)
			})
			if err != nil {
				log.Error("Error starting notification queue consumer: %v", err)
			}
		}()
	} else {
		log.Warn("RabbitMQ is not available, notifications will not be consumed")
	}

	go func() {
		log.Info("Notification service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down notification service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if queueClient != nil {
		queueClient.Close()
	}

	if err := redisClient.Close(); err != nil {
		log.Error("Error closing Redis: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	log.Info("Notification service exited")
}
