package handlers

import (
	"boardify-backend/internal/auth"
	"boardify-backend/internal/config"
	"boardify-backend/internal/middleware"
	"boardify-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	users     *service.UserService
	jwtSecret string
}

func NewAuthHandler(users *service.UserService, jwtSecret string) *AuthHandler {
	return &AuthHandler{users: users, jwtSecret: jwtSecret}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in service.RegisterInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.users.Register(c.Context(), in)
	if err != nil {
		return err
	}

	token, err := auth.IssueToken(h.jwtSecret, user.ID, config.TokenTTL)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":  user,
		"token": token,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.users.Authenticate(c.Context(), in.Username, in.Password)
	if err != nil {
		return err
	}

	token, err := auth.IssueToken(h.jwtSecret, user.ID, config.TokenTTL)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user":  user,
		"token": token,
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.users.Get(c.Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(user)
}
