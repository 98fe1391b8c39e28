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
	jobHTTP "horeca-board/services/job/internal/controller/http"
	"horeca-board/services/job/internal/repo/persistent"
	"horeca-board/services/job/internal/usecase"

	_ "horeca-board/services/job/docs" // Swagger docs

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

	// Initialize repositories
	jobRepo := persistent.NewJobRepository(db)
	applicationRepo := persistent.NewApplicationRepository(db)

	// A nil *queue.Client must not leak into the interface.
	var publisher queue.Publisher
	if queueClient != nil {
		publisher = queueClient
	}

	// Initialize use cases
	jobUseCase := usecase.NewJobUseCase(jobRepo, log)
	applicationUseCase := usecase.NewApplicationUseCase(jobRepo, applicationRepo, publisher, log)

	// Initialize HTTP handlers
	jobHandler := jobHTTP.NewJobHandler(jobUseCase, log)
	applicationHandler := jobHTTP.NewApplicationHandler(applicationUseCase, log)

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
	r.Use(middleware.MetricsMiddleware("job"))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", middleware.MetricsHandler())
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")

	// Public routes
	public := api.Group("", middleware.RateLimitMiddleware(redisClient, 100, time.Minute))
	public.GET("/jobs", jobHandler.ListJobs)
	public.GET("/jobs/:id", jobHandler.GetJob)

	protected := api.Group("")
	protected.Use(
		middleware.AuthMiddleware(jwtService, resolver, revoker),
		middleware.RateLimitMiddleware(redisClient, 100, time.Minute),
	)

	employers := protected.Group("/jobs", middleware.RequireRoles(access.RoleEmployer, access.RoleAdmin))
	{
		employers.POST("", jobHandler.CreateJob)
		employers.GET("/mine", jobHandler.ListMine)
	}

	users := protected.Group("", middleware.RequireRoles())
	{
		users.PUT("/jobs/:id", jobHandler.UpdateJob)
		users.DELETE("/jobs/:id", jobHandler.DeleteJob)
		users.GET("/jobs/:id/applications", applicationHandler.ListForJob)
		users.GET("/applications/mine", applicationHandler.ListMine)
		users.PUT("/applications/:id/status", applicationHandler.Decide)
	}

	seekers := protected.Group("", middleware.RequireRoles(access.RoleJobSeeker))
	seekers.POST("/jobs/:id/applications", applicationHandler.Apply)

	staff := protected.Group("/admin", middleware.RequireRoles(access.Staff...))
	{
		staff.GET("/jobs", jobHandler.ListByStatus)
		staff.POST("/jobs/:id/approve", jobHandler.Approve)
		staff.POST("/jobs/:id/reject", jobHandler.Reject)
		staff.GET("/applications", applicationHandler.ListByStatus)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		log.Info("Job service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down job service...")

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

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis: %v", err)
		}
	}

	if queueClient != nil {
		queueClient.Close()
	}

	log.Info("Job service exited")
}
