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
	"horeca-board/pkg/s3"
	bannerHTTP "horeca-board/services/banner/internal/controller/http"
	"horeca-board/services/banner/internal/repo/persistent"
	"horeca-board/services/banner/internal/usecase"

	_ "horeca-board/services/banner/docs" // Swagger docs

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

const (
	identityCacheTTL = 30 * time.Second
	activeCacheTTL   = 60 * time.Second
)

// NewRouter wires the banner routes. Public reads need no token; everything else goes
// through the auth middleware and a role gate.
func NewRouter(
	cfg *config.Config,
	handler *bannerHTTP.BannerHandler,
	jwtService *jwt.Service,
	resolver access.Resolver,
	revoker middleware.TokenRevoker,
	redisClient *redis.Client,
) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))
	r.Use(middleware.MetricsMiddleware("banner"))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", middleware.MetricsHandler())
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	public := api.Group("")
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(jwtService, resolver, revoker))
	// Limiting after auth keys signed-in callers by user id.
	if redisClient != nil {
		public.Use(middleware.RateLimitMiddleware(redisClient, 100, time.Minute))
		protected.Use(middleware.RateLimitMiddleware(redisClient, 100, time.Minute))
	}

	// Public routes
	public.GET("/banners/active", handler.ListActive)

	users := protected.Group("/banners", middleware.RequireRoles())
	{
		users.POST("", handler.CreateBanner)
		users.POST("/upload", handler.UploadImage)
		users.GET("/mine", handler.ListMine)
		users.POST("/:id/reactivate", handler.Reactivate)
	}

	staff := protected.Group("/admin/banners", middleware.RequireRoles(access.Staff...))
	{
		staff.GET("", handler.ListByStatus)
		staff.POST("", handler.CreateBannerDirect)
		staff.POST("/:id/approve", handler.Approve)
		staff.POST("/:id/reject", handler.Reject)
		staff.POST("/:id/priority", handler.SetPriority)
		staff.POST("/:id/toggle", handler.ToggleActive)
	}

	admin := protected.Group("/admin/banners", middleware.RequireRoles(access.RoleAdmin))
	admin.DELETE("/:id", handler.DeleteBanner)

	return r
}

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client, storage s3.Storage) {
	jwtService := jwt.NewService(cfg.JWTSecret)
	resolver := access.NewProfileResolver(db, redisClient, identityCacheTTL)
	revoker := middleware.NewRedisRevoker(redisClient)

	// Initialize repositories
	bannerRepo := persistent.NewBannerRepository(db)

	// Initialize use cases
	bannerUseCase := usecase.NewBannerUseCase(
		bannerRepo,
		storage,
		usecase.NewRedisActiveCache(redisClient, activeCacheTTL, log),
		log,
	)

	sweeper, err := usecase.NewExpirySweeper(bannerUseCase, cfg.BannerSweepSchedule, log)
	if err != nil {
		log.Error("Failed to schedule banner sweep: %v", err)
		panic(err)
	}
	sweeper.Start()

	// Initialize HTTP handlers
	bannerHandler := bannerHTTP.NewBannerHandler(bannerUseCase, log)

	r := NewRouter(cfg, bannerHandler, jwtService, resolver, revoker, redisClient)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		log.Info("Banner service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down banner service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	sweeper.Stop(ctx)

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

	log.Info("Banner service exited")
}
