package internal

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"horeca-board/pkg/access"
	"horeca-board/pkg/cache"
	"horeca-board/pkg/config"
	"horeca-board/pkg/database"
	"horeca-board/pkg/jwt"
	"horeca-board/pkg/logger"
	"horeca-board/pkg/middleware"
	"horeca-board/pkg/s3"
	authHTTP "horeca-board/services/auth/internal/controller/http"
	"horeca-board/services/auth/internal/repo/persistent"
	"horeca-board/services/auth/internal/usecase"

	_ "horeca-board/services/auth/docs" // Swagger docs

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

const identityCacheTTL = 30 * time.Second

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	storage     s3.Storage
	jwtService  *jwt.Service
	httpServer  *http.Server
}

func NewApp(cfg *config.Config, log *logger.Logger) (*App, error) {
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		return nil, err
	}

	// Resume uploads are the only thing that needs storage.
	var storage s3.Storage
	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v (resume uploads disabled)", err)
	} else {
		storage = s3Client
	}

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		storage:     storage,
		jwtService:  jwt.NewService(cfg.JWTSecret),
	}, nil
}

// Handlers groups what NewRouter mounts.
type Handlers struct {
	Auth    *authHTTP.AuthHandler
	Profile *authHTTP.ProfileHandler
}

func NewRouter(
	cfg *config.Config,
	h Handlers,
	jwtService *jwt.Service,
	resolver access.Resolver,
	revoker middleware.TokenRevoker,
	redisClient *redis.Client,
) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	r.Use(middleware.MetricsMiddleware("auth"))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", middleware.MetricsHandler())
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	{
		credentials := api.Group("/auth")
		if redisClient != nil {
			credentials.Use(middleware.RateLimitMiddleware(redisClient, 20, time.Minute))
		}
		credentials.POST("/signup", h.Auth.SignUp)
		credentials.POST("/signin", h.Auth.SignIn)

		// Other services look profiles up with the privileged key.
		internal := api.Group("/internal", middleware.ServiceKeyMiddleware(cfg.ServiceAPIKey))
		internal.GET("/profiles/:id", h.Profile.GetProfileInternal)

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(jwtService, resolver, revoker))
		if redisClient != nil {
			protected.Use(middleware.RateLimitMiddleware(redisClient, 100, time.Minute))
		}
		{
			protected.POST("/auth/signout", h.Auth.SignOut)
			protected.GET("/session/check", h.Auth.CheckSession)
			protected.GET("/profile", h.Auth.Me)
			protected.PUT("/profile", h.Profile.UpdateProfile)
			protected.POST("/profile/resume", h.Profile.UploadResume)
			protected.GET("/profiles/:id", h.Profile.GetProfile)
		}

		staff := protected.Group("/admin", middleware.RequireRoles(access.Staff...))
		staff.GET("/users", h.Profile.ListUsers)

		admin := protected.Group("/admin/moderators", middleware.RequireRoles(access.RoleAdmin))
		{
			admin.GET("", h.Profile.ListModerators)
			admin.POST("", h.Profile.AddModerator)
			admin.DELETE("/:id", h.Profile.DemoteModerator)
		}
	}

	return r
}

func (a *App) Run() error {
	resolver := access.NewProfileResolver(a.db, a.redisClient, identityCacheTTL)
	revoker := middleware.NewRedisRevoker(a.redisClient)

	// Initialize repositories
	userRepo := persistent.NewUserRepository(a.db)
	profileRepo := persistent.NewProfileRepository(a.db)

	// Initialize use cases
	authUseCase := usecase.NewAuthUseCase(userRepo, profileRepo, a.jwtService, revoker, a.log)
	profileUseCase := usecase.NewProfileUseCase(profileRepo, a.storage, a.log)
	moderatorUseCase := usecase.NewModeratorUseCase(userRepo, profileRepo, resolver, a.log)

	// Initialize HTTP handlers
	handlers := Handlers{
		Auth:    authHTTP.NewAuthHandler(authUseCase, a.log),
		Profile: authHTTP.NewProfileHandler(profileUseCase, moderatorUseCase, a.log),
	}

	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: NewRouter(a.cfg, handlers, a.jwtService, resolver, revoker, a.redisClient),
	}

	go func() {
		a.log.Info("Auth service starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) Wait() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down auth service...")
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if a.httpServer != nil {
		if err := a.httpServer.Shutdown(ctx); err != nil {
			a.log.Error("Server forced to shutdown: %v", err)
			return err
		}
	}

	if sqlDB, err := a.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	a.log.Info("Auth service exited")
	return nil
}
