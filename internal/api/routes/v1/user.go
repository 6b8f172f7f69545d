package v1

import (
	"boardify-backend/internal/handlers"
	"boardify-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func registerUsers(r fiber.Router, db *gorm.DB) {
	userHandler := handlers.NewUserHandler(service.NewUserService(db))

	r.Get("/users/search", userHandler.SearchUsers)
	r.Get("/users/me/tasks", userHandler.GetMyTasks)
	r.Get("/users/me/calendar", userHandler.GetCalendar)
}
