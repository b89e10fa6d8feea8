package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/tradevault/trades-api/internal/config"
	"github.com/tradevault/trades-api/internal/database"
	"github.com/tradevault/trades-api/internal/store"
	"github.com/tradevault/trades-api/internal/trades"
	"github.com/tradevault/trades-api/pkg/middleware"

	"github.com/gin-gonic/gin"
)

// init configures the application logging based on environment settings
// In development mode, it enables pretty printing with timestamps
// Debug logging can be enabled via DEBUG environment variable
func init() {
	// Configure pretty logging for development
	if os.Getenv("ENV") != "production" {
		output := zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
		zlog.Logger = zerolog.New(output).With().Timestamp().Logger()
	}

	// Set global log level
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if os.Getenv("DEBUG") == "true" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

// main initializes and runs the trade records API server with graceful
// shutdown support.
func main() {
	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize the persistence layer and hydrate the in-memory store
	db, err := database.NewDatabase(cfg.DBPath)
	if err != nil {
		zlog.Fatal().Err(err).Msg("Failed to initialize database")
	}

	tradeStore, err := store.NewStore(db)
	if err != nil {
		zlog.Fatal().Err(err).Msg("Failed to initialize trade store")
	}

	// Initialize router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	// Initialize services and handlers
	tradeService := trades.NewService(tradeStore)
	tradeHandlers := trades.NewGinHandlers(tradeService)

	// Setup middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.RateLimit())

	// Setup API routes
	setupRoutes(router, tradeHandlers)

	// Create server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown setup
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal().Err(err).Msg("listen")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info().Msg("Shutting down server...")

	// Give outstanding operations 5 seconds to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	zlog.Info().Msg("Server exiting")
}

// setupRoutes configures all API endpoints and their handlers
// Parameters:
//   - router: The main Gin router instance
//   - tradeHandlers: Handlers for the trade record endpoints
func setupRoutes(router *gin.Engine, tradeHandlers *trades.GinHandlers) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		// Trade record routes
		records := v1.Group("/trades")
		{
			records.POST("", tradeHandlers.AddTradeHandler())
			records.GET("", tradeHandlers.ListTradesHandler())
			records.GET("/search", tradeHandlers.SearchTradesHandler())
			records.GET("/filter", tradeHandlers.FilterTradesHandler())
			records.GET("/:trade_id", tradeHandlers.GetTradeHandler())
		}
	}
}
