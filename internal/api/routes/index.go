package routes

import (
	v1 "boardify-backend/internal/api/routes/v1"
	"boardify-backend/internal/config"
	"boardify-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func Register(app *fiber.App, db *gorm.DB, blobs storage.Store, cfg *config.Config) {
	// API v1 group
	api := app.Group("/api")
	v1Group := api.Group("/v1")

	// Register v1 routes
	v1.RegisterRoutes(v1Group, db, blobs, cfg)
}
