package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"learnloop/internal/service/auth"
)

const (
	UserIDContextKey = "user_id"
	EmailContextKey  = "email"
)

// AuthRequired accepts a bearer token issued by the identity provider and stores the
// caller's id. The caller is always the acting user; ids are never taken from the body.
func AuthRequired(authService auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return Unauthorized("Missing authorization header")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return Unauthorized("Invalid authorization header format")
		}

		claims, err := authService.ValidateAccessToken(parts[1])
		if err != nil {
			return Unauthorized("Invalid or expired token")
		}

		c.Locals(UserIDContextKey, claims.UserID)
		c.Locals(EmailContextKey, claims.Email)

		return c.Next()
	}
}

func GetCurrentUserID(c *fiber.Ctx) uuid.UUID {
	userID, ok := c.Locals(UserIDContextKey).(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return userID
}

func GetCurrentEmail(c *fiber.Ctx) string {
	email, _ := c.Locals(EmailContextKey).(string)
	return email
}

// GetUserID is GetCurrentUserID for handlers that must reject anonymous calls.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	userID := GetCurrentUserID(c)
	if userID == uuid.Nil {
		return uuid.Nil, Unauthorized("Not authenticated")
	}
	return userID, nil
}
