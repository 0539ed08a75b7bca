package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"learnloop/internal/domain"
	"learnloop/internal/handler"
	"learnloop/internal/middleware"
)

type notificationService struct {
	mock.Mock
}

func (m *notificationService) List(ctx context.Context, userID uuid.UUID, locale string) ([]domain.NotificationItem, error) {
	args := m.Called(ctx, userID, locale)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.NotificationItem), args.Error(1)
}

func (m *notificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *notificationService) MarkRead(ctx context.Context, userID uuid.UUID, notificationID string) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}

func (m *notificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

type socialService struct {
	mock.Mock
}

func (m *socialService) Follow(ctx context.Context, userID, followerID uuid.UUID) error {
	return m.Called(ctx, userID, followerID).Error(0)
}

func (m *socialService) Unfollow(ctx context.Context, userID, followerID uuid.UUID) error {
	return m.Called(ctx, userID, followerID).Error(0)
}

func (m *socialService) RemoveFollower(ctx context.Context, userID, followerID uuid.UUID) error {
	return m.Called(ctx, userID, followerID).Error(0)
}

func (m *socialService) Followers(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *socialService) Following(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

// fakeAuth trusts the X-User header so routes can be exercised without tokens.
func fakeAuth(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Get("X-User"))
	if err != nil {
		return middleware.Unauthorized("Not authenticated")
	}
	c.Locals(middleware.UserIDContextKey, id)
	return c.Next()
}

func newApp(notif *notificationService, social *socialService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	h := &handler.Handlers{
		Notification: handler.NewNotificationHandler(notif),
		Social:       handler.NewSocialHandler(social),
	}
	handler.Register(app.Group("/api/v1"), h, fakeAuth)
	return app
}

func do(t *testing.T, app *fiber.App, method, path string, user uuid.UUID, body string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != uuid.Nil {
		req.Header.Set("X-User", user.String())
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func TestNotificationRoutes(t *testing.T) {
	me := uuid.New()

	t.Run("List passes the locale", func(t *testing.T) {
		notif := new(notificationService)
		notif.On("List", mock.Anything, me, "es").Return([]domain.NotificationItem{
			{ID: "follow:x", Kind: domain.NotificationFollow, Message: "Ana te siguió", Read: true},
		}, nil)

		status, body := do(t, newApp(notif, nil), "GET", "/api/v1/notifications?lang=es", me, "")

		assert.Equal(t, 200, status)
		var items []map[string]interface{}
		require.NoError(t, json.Unmarshal(body, &items))
		require.Len(t, items, 1)
		assert.Equal(t, "follow:x", items[0]["id"])
		assert.Equal(t, "follow", items[0]["kind"])
		assert.Equal(t, true, items[0]["read"])
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		status, _ := do(t, newApp(new(notificationService), nil), "GET", "/api/v1/notifications", uuid.Nil, "")
		assert.Equal(t, 401, status)
	})

	t.Run("Unread count", func(t *testing.T) {
		notif := new(notificationService)
		notif.On("UnreadCount", mock.Anything, me).Return(4, nil)

		status, body := do(t, newApp(notif, nil), "GET", "/api/v1/notifications/unread-count", me, "")

		assert.Equal(t, 200, status)
		assert.JSONEq(t, `{"count":4}`, string(body))
	})

	t.Run("Mark read acts for the caller", func(t *testing.T) {
		notif := new(notificationService)
		notif.On("MarkRead", mock.Anything, me, "like:p:u").Return(nil).Once()

		status, _ := do(t, newApp(notif, nil), "POST", "/api/v1/notifications/mark-read", me, `{"notification_id":"like:p:u"}`)

		assert.Equal(t, 204, status)
		notif.AssertExpectations(t)
	})

	t.Run("Mark read without id", func(t *testing.T) {
		notif := new(notificationService)

		status, body := do(t, newApp(notif, nil), "POST", "/api/v1/notifications/mark-read", me, `{}`)

		assert.Equal(t, 400, status)
		assert.Contains(t, string(body), "BAD_REQUEST")
		notif.AssertNotCalled(t, "MarkRead", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Mark all read", func(t *testing.T) {
		notif := new(notificationService)
		notif.On("MarkAllRead", mock.Anything, me).Return(2, nil)

		status, body := do(t, newApp(notif, nil), "POST", "/api/v1/notifications/mark-all-read", me, "")

		assert.Equal(t, 200, status)
		assert.JSONEq(t, `{"marked":2}`, string(body))
	})

	t.Run("Store outage", func(t *testing.T) {
		notif := new(notificationService)
		notif.On("List", mock.Anything, me, "").Return(nil, domain.ErrStoreUnavailable)

		status, body := do(t, newApp(notif, nil), "GET", "/api/v1/notifications", me, "")

		assert.Equal(t, 503, status)
		assert.Contains(t, string(body), "UPSTREAM_UNAVAILABLE")
	})
}

func TestSocialRoutes(t *testing.T) {
	me, other := uuid.New(), uuid.New()

	t.Run("Follow", func(t *testing.T) {
		social := new(socialService)
		social.On("Follow", mock.Anything, other, me).Return(nil).Once()

		status, _ := do(t, newApp(nil, social), "POST", "/api/v1/users/"+other.String()+"/follow", me, "")

		assert.Equal(t, 204, status)
		social.AssertExpectations(t)
	})

	t.Run("Self follow", func(t *testing.T) {
		social := new(socialService)
		social.On("Follow", mock.Anything, me, me).Return(domain.ErrSelfFollow)

		status, body := do(t, newApp(nil, social), "POST", "/api/v1/users/"+me.String()+"/follow", me, "")

		assert.Equal(t, 400, status)
		assert.Contains(t, string(body), "cannot follow yourself")
	})

	t.Run("Malformed user id", func(t *testing.T) {
		social := new(socialService)

		status, _ := do(t, newApp(nil, social), "POST", "/api/v1/users/not-a-uuid/follow", me, "")

		assert.Equal(t, 400, status)
		social.AssertNotCalled(t, "Follow", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Remove follower", func(t *testing.T) {
		social := new(socialService)
		social.On("RemoveFollower", mock.Anything, me, other).Return(nil).Once()

		status, _ := do(t, newApp(nil, social), "DELETE", "/api/v1/users/me/followers/"+other.String(), me, "")

		assert.Equal(t, 204, status)
		social.AssertExpectations(t)
	})
}
