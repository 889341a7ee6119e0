package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/moodlens/backend/internal/clock"
	"github.com/moodlens/backend/internal/config"
	"github.com/moodlens/backend/internal/handlers"
	"github.com/moodlens/backend/internal/logger"
	"github.com/moodlens/backend/internal/middleware"
	"github.com/moodlens/backend/internal/repository"
	"github.com/moodlens/backend/internal/service"
	"github.com/moodlens/backend/pkg/openmeteo"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Start the HTTP API server and listen for requests.`,
	RunE:  runServe,
}

var (
	port string
)

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load .env if present; real environment variables win
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Override port from flag if provided
	if port != "" {
		cfg.Server.Port = port
	}

	logCfg := logger.Config{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: cfg.Log.Format,
	}
	if cfg.Server.Env != "production" {
		// Development reads better on a terminal; explicit settings win.
		if cfg.Log.Level == "" {
			logCfg.Level = logger.LevelDebug
		}
		if cfg.Log.Format == "" {
			logCfg.Format = "text"
		}
	}
	logger.SetDefault(logger.NewSlogLogger(logCfg))

	logger.Info("starting MoodLens API server",
		logger.String("env", cfg.Server.Env),
		logger.String("database", cfg.Database.Path),
	)

	// Open the SQLite database
	db, err := repository.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	moodRepo := repository.NewMoodRepository(db)
	contextRepo := repository.NewContextRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	clk := clock.NewReal()

	// Initialize services. The insight engine doubles as the cache
	// invalidator handed to the write services.
	weatherClient := openmeteo.NewClient(cfg.Weather.BaseURL, cfg.Weather.Timeout)
	weatherService := service.NewWeatherService(weatherClient, settingsRepo)
	insightEngine := service.NewInsightService(moodRepo, contextRepo, clk, cfg.Analytics)
	moodService := service.NewMoodService(moodRepo, clk, insightEngine)
	contextService := service.NewContextService(contextRepo, weatherService, clk, insightEngine)
	analyticsService := service.NewAnalyticsService(moodRepo, clk, cfg.Analytics.TrendThreshold)

	// Initialize handlers
	moodHandler := handlers.NewMoodHandler(moodService)
	contextHandler := handlers.NewContextHandler(contextService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	insightsHandler := handlers.NewInsightsHandler(insightEngine)
	weatherHandler := handlers.NewWeatherHandler(weatherService)

	// Set Gin mode based on environment
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.Logger())
	router.Use(middleware.RateLimit())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
			"env":    cfg.Server.Env,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Mood routes
		v1.POST("/moods", moodHandler.SaveMood)
		v1.GET("/moods/earliest", moodHandler.GetEarliest)
		v1.GET("/moods/trends", analyticsHandler.GetMoodTrends)
		v1.GET("/moods/:date", moodHandler.GetDay)
		v1.DELETE("/moods/:date/:segment", moodHandler.DeleteMood)

		// Day context routes
		v1.PUT("/context/:date", contextHandler.SaveContext)
		v1.GET("/context/:date", contextHandler.GetContext)
		v1.DELETE("/context/:date", contextHandler.DeleteContext)

		// Statistics
		v1.GET("/statistics", analyticsHandler.GetStatistics)

		// Insight routes. Forced refresh rescans all history, so it gets
		// its own tighter rate limit.
		v1.GET("/insights", insightsHandler.GetInsights)
		v1.POST("/insights/refresh", middleware.RateLimitRefresh(), insightsHandler.RefreshInsights)
		v1.GET("/insights/correlations", insightsHandler.GetCorrelations)
		v1.GET("/insights/weekly-summary", insightsHandler.GetWeeklySummary)

		// Weather helper for the logging UI
		v1.GET("/weather", weatherHandler.GetCurrentWeather)
	}

	logger.Info("server listening", logger.String("port", cfg.Server.Port))
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
