package v1

import (
	"boardify-backend/internal/handlers"
	"boardify-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func registerBoards(r fiber.Router, db *gorm.DB) {
	boardHandler := handlers.NewBoardHandler(service.NewBoardService(db))

	r.Get("/boards", boardHandler.GetAllBoards)
	r.Post("/boards", boardHandler.CreateBoard)
	r.Get("/boards/:boardId", boardHandler.GetBoard)
	r.Put("/boards/:boardId", boardHandler.UpdateBoard)
	r.Delete("/boards/:boardId", boardHandler.DeleteBoard)
	r.Get("/boards/:boardId/members", boardHandler.GetMembers)
	r.Post("/boards/:boardId/members", boardHandler.InviteMember)
	r.Delete("/boards/:boardId/members/:memberId", boardHandler.RemoveMember)
	r.Get("/boards/:boardId/activities", boardHandler.GetActivities)
}
