package middleware

import (
	"strings"

	"boardify-backend/internal/apperr"
	"boardify-backend/internal/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const userIDKey = "user_id"

// RequireAuth parses the bearer token and stores the acting user's id in the
// request locals. Every protected route sees an explicit, request-scoped
// identity; there is no ambient session state.
func RequireAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			return apperr.New(apperr.ErrUnauthorized, "authentication required")
		}

		userID, err := auth.ParseToken(secret, token)
		if err != nil {
			return err
		}

		c.Locals(userIDKey, userID)
		return c.Next()
	}
}

// UserID returns the authenticated user's id set by RequireAuth.
func UserID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals(userIDKey).(uuid.UUID)
	return id
}
