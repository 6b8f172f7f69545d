package handlers

import (
	"boardify-backend/internal/middleware"
	"boardify-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ListHandler struct {
	lists *service.ListService
}

func NewListHandler(lists *service.ListService) *ListHandler {
	return &ListHandler{lists: lists}
}

func (h *ListHandler) CreateList(c *fiber.Ctx) error {
	var in service.CreateListInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	list, err := h.lists.Create(c.Context(), middleware.UserID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(list)
}

func (h *ListHandler) UpdateList(c *fiber.Ctx) error {
	listID, err := parseID(c, "listId")
	if err != nil {
		return err
	}
	var in service.UpdateListInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	list, err := h.lists.Update(c.Context(), middleware.UserID(c), listID, in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(list)
}

func (h *ListHandler) DeleteList(c *fiber.Ctx) error {
	listID, err := parseID(c, "listId")
	if err != nil {
		return err
	}
	if err := h.lists.Delete(c.Context(), middleware.UserID(c), listID); err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "List deleted successfully",
	})
}
