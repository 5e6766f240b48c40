package main

import (
	"fmt"
	"os"

	"budgeteer/internal/config"
	"budgeteer/internal/database"
	"budgeteer/internal/logger"
	"budgeteer/internal/router"
	"budgeteer/internal/validator"
)

// @title           Budgeteer API
// @version         1.0
// @description     Budgeteer tracks income and expenses against monthly, per-category budget estimates.

// @host      localhost:8080
// @BasePath  /api/v1

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("database close error: %v", err)
		}
	}()

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	engine := router.New(dbManager.DB(), appConfig)

	log.Infow("Starting Budgeteer server",
		"port", appConfig.Port,
		"db_driver", appConfig.DBDriver,
		"severity_bands", len(appConfig.SeverityBands),
	)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return engine.Run(":" + appConfig.Port)
}
