package handler

import (
	"github.com/gofiber/fiber/v2"

	"learnloop/internal/middleware"
	"learnloop/internal/service/feed"
)

type FeedHandler struct {
	feedService feed.Service
}

func NewFeedHandler(feedService feed.Service) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

func (h *FeedHandler) GetFeed(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	posts, err := h.feedService.GetFeed(c.UserContext(), userID)
	if err != nil {
		return err
	}

	return c.JSON(posts)
}

func (h *FeedHandler) ListUserPosts(c *fiber.Ctx) error {
	authorID, err := parseUUIDParam(c, "userId", "user")
	if err != nil {
		return err
	}

	posts, err := h.feedService.ListByAuthor(c.UserContext(), authorID)
	if err != nil {
		return err
	}

	return c.JSON(posts)
}
