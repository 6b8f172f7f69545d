package api

import (
	"errors"
	"log"

	"boardify-backend/internal/apperr"
	"boardify-backend/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func NewServer() *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
		AppName:      "Boardify Backend",
		// Headroom over the attachment cap covers multipart framing, so an
		// oversized file reaches the handler's own size check.
		BodyLimit: config.MaxUploadBytes + 1<<20,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	return app
}

// errorHandler translates error kinds into JSON error responses. Internal
// errors are logged but never echoed to the client.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal server error"

	var fiberErr *fiber.Error
	switch {
	case errors.Is(err, apperr.ErrInvalid):
		code = fiber.StatusBadRequest
		message = err.Error()
	case errors.Is(err, apperr.ErrUnauthorized):
		code = fiber.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, apperr.ErrForbidden):
		code = fiber.StatusForbidden
		message = err.Error()
	case errors.Is(err, apperr.ErrNotFound):
		code = fiber.StatusNotFound
		message = err.Error()
	case errors.Is(err, apperr.ErrAlreadyExists):
		code = fiber.StatusConflict
		message = err.Error()
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
	default:
		log.Printf("Error: %v", err)
	}

	return c.Status(code).JSON(fiber.Map{
		"error": message,
	})
}

func StartServer(app *fiber.App, port string) error {
	log.Printf("server starting on port %s\n", port)
	return app.Listen(":" + port)
}
