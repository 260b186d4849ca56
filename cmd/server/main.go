package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/finbook/finance-tracker/internal/application/service"
	"github.com/finbook/finance-tracker/internal/infrastructure/cache"
	"github.com/finbook/finance-tracker/internal/infrastructure/config"
	"github.com/finbook/finance-tracker/internal/infrastructure/db"
	"github.com/finbook/finance-tracker/internal/infrastructure/handler"
	"github.com/finbook/finance-tracker/internal/infrastructure/logger"
	"github.com/finbook/finance-tracker/internal/infrastructure/middleware"
	"github.com/gorilla/mux"
)

func main() {
	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLog := logger.NewLogrusLogger(os.Stdout, cfg.LogLevel)
	logger.SetDefaultLogger(appLog)

	// Setup BadgerDB
	if err := os.MkdirAll(cfg.DBPath, 0755); err != nil {
		appLog.Fatal("Failed to create database directory", map[string]interface{}{
			"path":  cfg.DBPath,
			"error": err.Error(),
		})
	}

	badgerOpts := badger.DefaultOptions(cfg.DBPath)
	badgerOpts.Logger = nil // Disable Badger's default logger

	badgerDB, err := badger.Open(badgerOpts)
	if err != nil {
		appLog.Fatal("Failed to open database", map[string]interface{}{
			"path":  cfg.DBPath,
			"error": err.Error(),
		})
	}

	defer func() {
		if err := badgerDB.Close(); err != nil {
			appLog.Error("Error closing BadgerDB", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	// Initialize repositories
	userRepo := db.NewBadgerUserRepository(badgerDB)
	txRepo := db.NewBadgerTransactionRepository(badgerDB)

	// Initialize services
	summaryCache := cache.NewSummaryCache()
	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, tokenService, appLog)
	txService := service.NewTransactionService(txRepo, summaryCache)
	reportService := service.NewReportService(txRepo, summaryCache, appLog)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, appLog)
	txHandler := handler.NewTransactionHandler(txService, appLog)
	reportHandler := handler.NewReportHandler(reportService, appLog)

	// Setup router
	router := mux.NewRouter()
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.LoggingMiddleware(appLog))

	api := router.PathPrefix("/api").Subrouter()
	authHandler.RegisterRoutes(api)

	// All transaction routes sit behind the access gate. Report routes are
	// registered first so /summary and /month-wise-report are not captured
	// by the {id} routes.
	protected := api.PathPrefix("/transactions").Subrouter()
	protected.Use(middleware.AuthMiddleware(authService, appLog))
	reportHandler.RegisterRoutes(protected)
	txHandler.RegisterRoutes(protected)

	// Start server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	appLog.Info("Server listening", map[string]interface{}{
		"addr": server.Addr,
	})

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		appLog.Fatal("Server failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
