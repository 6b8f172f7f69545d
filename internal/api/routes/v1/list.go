package v1

import (
	"boardify-backend/internal/handlers"
	"boardify-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func registerLists(r fiber.Router, db *gorm.DB) {
	listHandler := handlers.NewListHandler(service.NewListService(db))

	r.Post("/lists", listHandler.CreateList)
	r.Put("/lists/:listId", listHandler.UpdateList)
	r.Delete("/lists/:listId", listHandler.DeleteList)
}
