package v1

import (
	"boardify-backend/internal/config"
	"boardify-backend/internal/middleware"
	"boardify-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func RegisterRoutes(r fiber.Router, db *gorm.DB, blobs storage.Store, cfg *config.Config) {
	registerHealth(r)
	registerAuth(r, db, cfg)

	protected := r.Use(middleware.RequireAuth(cfg.JWTSecret))
	registerBoards(protected, db)
	registerLists(protected, db)
	registerCards(protected, db, blobs)
	registerUsers(protected, db)
	registerNotifications(protected, db)
}

func registerHealth(r fiber.Router) {
	r.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})
}
