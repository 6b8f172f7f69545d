package main

import (
	"context"
	"log"

	"boardify-backend/internal/api"
	"boardify-backend/internal/api/routes"
	"boardify-backend/internal/config"
	"boardify-backend/internal/storage"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg := config.Load()

	// Connect to database
	if err := config.ConnectDB(cfg.DBURL); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Run migrations
	if err := config.Migrate(config.DB); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Attachment blob storage: GCS when a bucket is configured, local disk
	// otherwise.
	var blobs storage.Store
	if cfg.GCSBucket != "" {
		gcs, err := storage.NewGCSStore(context.Background(), cfg.GCSBucket)
		if err != nil {
			log.Fatal("Failed to init GCS storage:", err)
		}
		defer gcs.Close()
		blobs = gcs
	} else {
		local, err := storage.NewLocalStore(cfg.UploadDir)
		if err != nil {
			log.Fatal("Failed to init upload directory:", err)
		}
		blobs = local
	}

	// Create and configure Fiber app
	app := api.NewServer()

	// Register routes
	routes.Register(app, config.DB, blobs, cfg)

	// Start server
	if err := api.StartServer(app, cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
