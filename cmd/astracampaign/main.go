package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sidneynma/astracampaign-sub002/db"
	"github.com/sidneynma/astracampaign-sub002/internal/auth"
	"github.com/sidneynma/astracampaign-sub002/internal/config"
	"github.com/sidneynma/astracampaign-sub002/internal/logging"
	"github.com/sidneynma/astracampaign-sub002/internal/router"
)

func main() {
	if err := godotenv.Load(); err != nil {
		// Not fatal; production supplies real environment variables.
		logging.Logger.Info("No .env file found, using environment")
	}

	cfg := config.Load()
	logging.Init(cfg.LogFile)

	if err := auth.InitJWTSecret(); err != nil {
		logging.Logger.Fatalf("Failed to initialize JWT: %v", err)
	}

	if cfg.DatabaseURL == "" {
		logging.Logger.Fatal("DATABASE_URL environment variable is not set")
	}

	if err := db.ConnectDatabase(cfg.DatabaseURL); err != nil {
		logging.Logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := db.CloseDatabase(); err != nil {
			logging.Logger.Errorf("Failed to close database: %v", err)
		}
	}()

	if err := db.MigrateDatabase(); err != nil {
		logging.Logger.Fatalf("Failed to migrate database: %v", err)
	}

	if err := os.MkdirAll(cfg.MediaDir, 0o755); err != nil {
		logging.Logger.Fatalf("Failed to create media directory: %v", err)
	}

	r := router.NewRouter(db.DB, cfg)

	logging.Logger.Infof("Listening on port %s", cfg.Port)

	if err := r.Run(":" + cfg.Port); err != nil {
		logging.Logger.Fatalf("Failed to start server: %v", err)
	}
}
