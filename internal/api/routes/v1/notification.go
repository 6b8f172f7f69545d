package v1

import (
	"boardify-backend/internal/handlers"
	"boardify-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func registerNotifications(r fiber.Router, db *gorm.DB) {
	notificationHandler := handlers.NewNotificationHandler(service.NewNotificationService(db))

	r.Get("/notifications", notificationHandler.GetNotifications)
	r.Put("/notifications/:notificationId/read", notificationHandler.MarkRead)
}
