package main

import (
	"context"

	"stockfeed/importer/internal/config"
	"stockfeed/importer/internal/container"

	log "github.com/sirupsen/logrus"
)

func main() {
	log.Info("Starting stock feed importer...")

	// Load configuration using viper
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Info("Configuration loaded successfully")

	ctx := context.Background()

	// Initialize container with all dependencies
	app, err := container.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer app.Close()

	// Run the import
	if err := app.Run(ctx); err != nil {
		log.Fatalf("Import run failed: %v", err)
	}

	log.Info("Import finished successfully")
}
