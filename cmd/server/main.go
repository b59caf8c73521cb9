package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"birthday-tracker-api/internal/config"
	"birthday-tracker-api/internal/handlers"
	"birthday-tracker-api/internal/middleware"
	"birthday-tracker-api/pkg/server"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const version = "1.0.0"

// @title Birthday Tracker API
// @version 1.0
// @description Stores birthdays and gift ideas

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @BasePath /

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize dependencies
	container, err := server.NewContainer(cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize container: %v", err)
	}
	defer container.Close()

	logger := container.Logger

	// Setup Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Tracing(container.Tracing.Tracer()))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.StructuredLogger(logger))
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, logger))
	router.Use(middleware.RequestSizeLimit(1 << 20))

	// Metrics are flushed once per request like one Lambda invocation
	router.Use(func(c *gin.Context) {
		c.Next()
		if err := container.Metrics.Flush(); err != nil {
			logger.WithError(err).Warn("Failed to flush metrics")
		}
	})

	handlers.SetupRoutes(router, &handlers.RouterConfig{
		BirthdayHandler: container.BirthdayHandler,
		ServiceName:     cfg.Metrics.Namespace,
		Version:         version,
	})

	// Start server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	logger.WithFields(logrus.Fields{
		"port": cfg.Port,
		"mode": config.GetDeploymentMode(),
	}).Info("Server started")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}
