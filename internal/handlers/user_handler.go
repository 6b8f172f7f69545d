package handlers

import (
	"time"

	"boardify-backend/internal/middleware"
	"boardify-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) SearchUsers(c *fiber.Ctx) error {
	users, err := h.users.Search(c.Context(), c.Query("q"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(users)
}

func (h *UserHandler) GetMyTasks(c *fiber.Ctx) error {
	tasks, err := h.users.Tasks(c.Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(tasks)
}

func (h *UserHandler) GetCalendar(c *fiber.Ctx) error {
	now := time.Now().UTC()
	month := time.Month(c.QueryInt("month", int(now.Month())))
	year := c.QueryInt("year", now.Year())

	entries, err := h.users.Calendar(c.Context(), middleware.UserID(c), month, year)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(entries)
}
