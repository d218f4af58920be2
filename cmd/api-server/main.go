package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"stayspot/database"
	"stayspot/internal/config"
	"stayspot/internal/http-api/cache"
	"stayspot/internal/http-api/handler"
	"stayspot/internal/http-api/middleware"
	"stayspot/internal/http-api/repository"
	"stayspot/internal/http-api/service"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("could not load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(1)
	}

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("could not connect to database", "error", err)
		os.Exit(1)
	}

	// Aggregate cache is optional; without redis every spot detail read
	// computes the aggregates in the database.
	var aggCache *cache.AggregateCache
	if cfg.RedisURL != "" {
		aggCache, err = cache.NewAggregateCache(cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			logger.Warn("redis unavailable, aggregate caching disabled", "error", err)
			aggCache = nil
		}
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	spotRepo := repository.NewSpotRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	imageRepo := repository.NewImageRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, cfg)
	spotService := service.NewSpotService(spotRepo, reviewRepo, imageRepo, aggCache)
	reviewService := service.NewReviewService(reviewRepo, spotRepo, imageRepo, aggCache)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, cfg)
	spotHandler := handler.NewSpotHandler(spotService)
	reviewHandler := handler.NewReviewHandler(reviewService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

	r.GET("/check-conn", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": "API is alive and database connected"})
	})

	requireAuth := middleware.AuthMiddleware(authService)

	api := r.Group("/api")
	authHandler.RegisterRoutes(api.Group("/auth"), requireAuth)

	spots := api.Group("/spots")
	spotHandler.RegisterRoutes(spots, requireAuth)
	reviewHandler.RegisterRoutes(spots, requireAuth)
	reviewHandler.RegisterImageRoutes(api.Group("/reviews"), requireAuth)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("server listening", "addr", addr)
	if err := r.Run(addr); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
