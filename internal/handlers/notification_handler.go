package handlers

import (
	"boardify-backend/internal/middleware"
	"boardify-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct {
	notifications *service.NotificationService
}

func NewNotificationHandler(notifications *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

func (h *NotificationHandler) GetNotifications(c *fiber.Ctx) error {
	rows, err := h.notifications.List(c.Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(rows)
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id, err := parseID(c, "notificationId")
	if err != nil {
		return err
	}
	row, err := h.notifications.MarkRead(c.Context(), middleware.UserID(c), id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(row)
}
