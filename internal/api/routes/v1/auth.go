package v1

import (
	"boardify-backend/internal/config"
	"boardify-backend/internal/handlers"
	"boardify-backend/internal/middleware"
	"boardify-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func registerAuth(r fiber.Router, db *gorm.DB, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(service.NewUserService(db), cfg.JWTSecret)

	r.Post("/auth/register", authHandler.Register)
	r.Post("/auth/login", authHandler.Login)
	r.Get("/auth/me", middleware.RequireAuth(cfg.JWTSecret), authHandler.Me)
}
