package handler

import (
	"github.com/gofiber/fiber/v2"

	"learnloop/internal/middleware"
	"learnloop/internal/service/social"
)

type SocialHandler struct {
	socialService social.Service
}

func NewSocialHandler(socialService social.Service) *SocialHandler {
	return &SocialHandler{socialService: socialService}
}

// Follow makes the caller a follower of :userId.
func (h *SocialHandler) Follow(c *fiber.Ctx) error {
	me, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}
	target, err := parseUUIDParam(c, "userId", "user")
	if err != nil {
		return err
	}

	if err := h.socialService.Follow(c.UserContext(), target, me); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}

func (h *SocialHandler) Unfollow(c *fiber.Ctx) error {
	me, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}
	target, err := parseUUIDParam(c, "userId", "user")
	if err != nil {
		return err
	}

	if err := h.socialService.Unfollow(c.UserContext(), target, me); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}

func (h *SocialHandler) RemoveFollower(c *fiber.Ctx) error {
	me, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}
	follower, err := parseUUIDParam(c, "followerId", "follower")
	if err != nil {
		return err
	}

	if err := h.socialService.RemoveFollower(c.UserContext(), me, follower); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}

func (h *SocialHandler) ListFollowers(c *fiber.Ctx) error {
	userID, err := parseUUIDParam(c, "userId", "user")
	if err != nil {
		return err
	}

	followers, err := h.socialService.Followers(c.UserContext(), userID)
	if err != nil {
		return err
	}

	return c.JSON(followers)
}

func (h *SocialHandler) ListFollowing(c *fiber.Ctx) error {
	userID, err := parseUUIDParam(c, "userId", "user")
	if err != nil {
		return err
	}

	following, err := h.socialService.Following(c.UserContext(), userID)
	if err != nil {
		return err
	}

	return c.JSON(following)
}
