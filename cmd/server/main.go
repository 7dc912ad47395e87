package main

import (
	"os"
	"path/filepath"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"equipvalue/server/config"
	"equipvalue/server/internal/api"
	"equipvalue/server/internal/database"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	if level, err := logrus.ParseLevel(cfg.Server.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	// Pricing tables: built-in defaults, optionally overridden from file
	pricing := config.DefaultPricingConfig()
	if cfg.PricingConfigPath != "" {
		pricing, err = config.LoadPricingConfig(cfg.PricingConfigPath)
		if err != nil {
			logger.WithError(err).Fatal("Failed to load pricing config")
		}
		logger.Infof("Loaded pricing config from %s", cfg.PricingConfigPath)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0755); err != nil {
		logger.WithError(err).Fatal("Failed to create database directory")
	}
	logger.Infof("Using database at: %s", cfg.Database.Path)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	logger.Info("Running database migrations...")
	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	handler := api.NewHandler(db, pricing, logger)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(api.RecoveryMiddleware(logger))
	router.Use(cors.Default())

	api.SetupRoutes(router, handler)

	logger.Infof("Starting server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
