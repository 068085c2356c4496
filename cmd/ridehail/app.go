package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/masterchefhck/transportdf-mvp-sub001/internal/alert"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/apiclient"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/config"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/navigation"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/screen"
	"github.com/masterchefhck/transportdf-mvp-sub001/internal/session"
	"github.com/masterchefhck/transportdf-mvp-sub001/pkg/cache"
	"github.com/masterchefhck/transportdf-mvp-sub001/pkg/database"
	"github.com/masterchefhck/transportdf-mvp-sub001/pkg/logger"
	"github.com/masterchefhck/transportdf-mvp-sub001/pkg/monitoring"
)

// app holds everything a command needs
type app struct {
	cfg     *config.Config
	logger  *logger.Logger
	monitor *monitoring.NewRelicApp
	store   session.Store
	client  *apiclient.Client
	nav     *navigation.Stack
	deps    screen.Deps
}

// bootstrap wires config, logging, monitoring, session storage and the API
// client. interactive routes logs to a file so they stay off the TUI.
func bootstrap(ctx context.Context, interactive bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	output := cfg.Log.Output
	if interactive && (output == "stdout" || output == "stderr" || output == "") {
		output = filepath.Join(os.TempDir(), "ridehail.log")
	}
	appLogger, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: output,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	nrApp, err := monitoring.New(monitoring.Config{
		LicenseKey: cfg.NewRelic.LicenseKey,
		AppName:    cfg.NewRelic.AppName,
		Enabled:    cfg.NewRelic.Enabled,
		LogLevel:   cfg.NewRelic.LogLevel,
	})
	if err != nil {
		appLogger.Warn("Failed to initialize New Relic", logger.Err(err))
		nrApp = monitoring.Disabled()
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		nrApp.Shutdown(time.Second)
		return nil, err
	}

	client, err := apiclient.New(apiclient.Config{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.RequestTimeout,
		Transport: nrApp.Transport(nil),
	}, appLogger)
	if err != nil {
		store.Close()
		nrApp.Shutdown(time.Second)
		return nil, err
	}

	appLogger.Info("Client initialized",
		logger.String("base_url", cfg.API.BaseURL),
		logger.String("session_backend", cfg.Session.Backend),
		logger.String("batch_policy", cfg.Screen.BatchPolicy),
	)

	nav := navigation.NewStack()
	return &app{
		cfg:     cfg,
		logger:  appLogger,
		monitor: nrApp,
		store:   store,
		client:  client,
		nav:     nav,
		deps: screen.Deps{
			Sessions: session.NewAccessor(store, appLogger),
			Nav:      nav,
			Logger:   appLogger,
			Monitor:  nrApp,
			Policy:   screen.ParsePolicy(cfg.Screen.BatchPolicy),
		},
	}, nil
}

func openStore(ctx context.Context, cfg *config.Config) (session.Store, error) {
	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		client, err := cache.NewRedisClient(ctx, cache.Config{
			Host:        cfg.Redis.Host,
			Port:        cfg.Redis.Port,
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			MaxRetries:  cfg.Redis.MaxRetries,
			PoolSize:    cfg.Redis.PoolSize,
			MinIdleConn: cfg.Redis.MinIdleConn,
			DialTimeout: cfg.Redis.DialTimeout,
			ReadTimeout: cfg.Redis.ReadTimeout,
		})
		if err != nil {
			return nil, err
		}
		return session.NewRedisStore(client, cache.Keyspace(cfg.Session.KeyPrefix)), nil

	case config.SessionBackendMemory:
		return session.NewMemoryStore(), nil
	}

	db, err := database.NewSQLiteDB(database.Config{
		Path:        cfg.Session.SQLitePath,
		BusyTimeout: 5 * time.Second,
	})
	if err != nil {
		return nil, err
	}
	store, err := session.NewSQLiteStore(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// withPrompts makes the screens talk through stdin/stdout
func (a *app) withPrompts() {
	a.deps.Alerts = alert.NewPromptFacade(os.Stdin, os.Stdout)
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("Failed to close session store", logger.Err(err))
	}
	a.monitor.Shutdown(5 * time.Second)
	_ = a.logger.Sync()
}
