package middleware_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnloop/internal/config"
	"learnloop/internal/domain"
	"learnloop/internal/middleware"
	"learnloop/internal/service/auth"
)

func newApp(handler fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	app.Use(middleware.Metrics())
	app.Use(middleware.Logger())
	app.Get("/x", handler)
	return app
}

func decode(t *testing.T, app *fiber.App, path string, header ...string) (int, middleware.ErrorResponse) {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if len(header) == 2 {
		req.Header.Set(header[0], header[1])
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body middleware.ErrorResponse
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp.StatusCode, body
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"Not found", domain.ErrPostNotFound, 404, "NOT_FOUND", "post not found"},
		{"Forbidden", domain.ErrNotCommentAuthor, 403, "FORBIDDEN", domain.ErrNotCommentAuthor.Message},
		{"Invalid argument", domain.ErrSelfFollow, 400, "BAD_REQUEST", "cannot follow yourself"},
		{"Wrapped upstream", fmt.Errorf("%w: dial tcp", domain.ErrStoreUnavailable), 503, "UPSTREAM_UNAVAILABLE", "Service temporarily unavailable"},
		{"Fiber error", middleware.BadRequest("Invalid post ID"), 400, "BAD_REQUEST", "Invalid post ID"},
		{"Unknown error", errors.New("boom"), 500, "INTERNAL_ERROR", "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newApp(func(c *fiber.Ctx) error { return tt.err })

			status, body := decode(t, app, "/x")

			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, tt.message, body.Message)
			assert.NotEmpty(t, body.TraceID)
		})
	}
}

func TestAuthRequired(t *testing.T) {
	authService := auth.NewService(&config.Config{JWTSecret: "test-secret", JWTAccessExpiry: time.Hour})
	userID := uuid.New()
	token, err := authService.IssueAccessToken(userID, "ana@example.com")
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	app.Get("/me", middleware.AuthRequired(authService), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"id": middleware.GetCurrentUserID(c), "email": middleware.GetCurrentEmail(c)})
	})

	t.Run("Missing header", func(t *testing.T) {
		status, body := decode(t, app, "/me")
		assert.Equal(t, 401, status)
		assert.Equal(t, "UNAUTHORIZED", body.Code)
	})

	t.Run("Wrong scheme", func(t *testing.T) {
		status, _ := decode(t, app, "/me", "Authorization", "Basic abc")
		assert.Equal(t, 401, status)
	})

	t.Run("Bad token", func(t *testing.T) {
		status, _ := decode(t, app, "/me", "Authorization", "Bearer not-a-jwt")
		assert.Equal(t, 401, status)
	})

	t.Run("Valid token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		var body struct {
			ID    uuid.UUID `json:"id"`
			Email string    `json:"email"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, userID, body.ID)
		assert.Equal(t, "ana@example.com", body.Email)
	})
}
