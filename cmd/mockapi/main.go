package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/masterchefhck/transportdf-mvp-sub001/internal/config"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/mockapi"
	"github.com/masterchefhck/transportdf-mvp-sub001/pkg/logger"
	"github.com/masterchefhck/transportdf-mvp-sub001/pkg/monitoring"
	"github.com/masterchefhck/transportdf-mvp-sub001/pkg/websocket"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer appLogger.Sync()

	appLogger.Info("Starting development backend",
		logger.String("env", cfg.MockAPI.Env),
		logger.String("port", cfg.MockAPI.Port),
	)

	// Initialize New Relic
	nrApp, err := monitoring.New(monitoring.Config{
		LicenseKey: cfg.NewRelic.LicenseKey,
		AppName:    cfg.NewRelic.AppName + "-MockAPI",
		Enabled:    cfg.NewRelic.Enabled,
		LogLevel:   cfg.NewRelic.LogLevel,
	})
	if err != nil {
		appLogger.Warn("Failed to initialize New Relic", logger.Err(err))
		nrApp = monitoring.Disabled()
	}
	defer nrApp.Shutdown(10 * time.Second)

	// Seed fixtures
	store := mockapi.NewStore()
	if err := mockapi.Seed(store); err != nil {
		appLogger.Fatal("Failed to seed fixtures", logger.Err(err))
	}
	appLogger.Info("Fixtures seeded",
		logger.String("admin", mockapi.SeedAdminEmail),
		logger.String("passenger", mockapi.SeedPassengerEmail),
		logger.String("driver", mockapi.SeedDriverEmail),
	)

	// Initialize WebSocket hub
	wsHub := websocket.NewHub(appLogger)
	go wsHub.Run()
	defer wsHub.Stop()

	if cfg.MockAPI.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	var nrApplication *newrelic.Application
	if nrApp.IsEnabled() {
		nrApplication = nrApp.Application
	}
	router := mockapi.NewRouter(mockapi.NewHandlers(store, appLogger, wsHub), nrApplication)

	srv := &http.Server{
		Addr:           fmt.Sprintf("%s:%s", cfg.MockAPI.Host, cfg.MockAPI.Port),
		Handler:        router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	// Start server in a goroutine
	go func() {
		appLogger.Info("Server starting", logger.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", logger.Err(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", logger.Err(err))
	}

	appLogger.Info("Server stopped gracefully")
}
