package v1

import (
	"boardify-backend/internal/handlers"
	"boardify-backend/internal/service"
	"boardify-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func registerCards(r fiber.Router, db *gorm.DB, blobs storage.Store) {
	cardHandler := handlers.NewCardHandler(service.NewCardService(db, blobs))

	r.Post("/cards", cardHandler.CreateCard)
	r.Get("/cards/:cardId", cardHandler.GetCard)
	r.Put("/cards/:cardId", cardHandler.UpdateCard)
	r.Delete("/cards/:cardId", cardHandler.DeleteCard)

	r.Post("/cards/:cardId/assignments", cardHandler.AssignUser)
	r.Delete("/cards/:cardId/assignments/:assignmentId", cardHandler.UnassignUser)

	r.Post("/cards/:cardId/attachments", cardHandler.UploadAttachment)
	r.Get("/cards/:cardId/attachments/:attachmentId", cardHandler.DownloadAttachment)
	r.Delete("/cards/:cardId/attachments/:attachmentId", cardHandler.DeleteAttachment)

	r.Post("/cards/:cardId/checklist", cardHandler.AddChecklistItem)
	r.Put("/cards/:cardId/checklist/:itemId", cardHandler.UpdateChecklistItem)
	r.Delete("/cards/:cardId/checklist/:itemId", cardHandler.DeleteChecklistItem)
}
