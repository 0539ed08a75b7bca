package handler

import (
	"github.com/gofiber/fiber/v2"

	"learnloop/internal/domain"
	"learnloop/internal/middleware"
	"learnloop/internal/service/profile"
)

type ProfileHandler struct {
	profileService profile.Service
}

func NewProfileHandler(profileService profile.Service) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// Register creates the caller's profile. The email defaults to the one in the token.
func (h *ProfileHandler) Register(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var input domain.RegisterProfileInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Email == "" {
		input.Email = middleware.GetCurrentEmail(c)
	}
	if err := validateInput(input); err != nil {
		return err
	}

	user, err := h.profileService.Register(c.UserContext(), userID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	userID, err := parseUUIDParam(c, "userId", "user")
	if err != nil {
		return err
	}

	p, err := h.profileService.Get(c.UserContext(), userID)
	if err != nil {
		return err
	}

	return c.JSON(p)
}

func (h *ProfileHandler) GetMe(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	p, err := h.profileService.Get(c.UserContext(), userID)
	if err != nil {
		return err
	}

	return c.JSON(p)
}

func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var input domain.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if err := validateInput(input); err != nil {
		return err
	}

	user, err := h.profileService.Update(c.UserContext(), userID, input)
	if err != nil {
		return err
	}

	return c.JSON(user)
}

func (h *ProfileHandler) DeleteBio(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	if err := h.profileService.DeleteBio(c.UserContext(), userID); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}

func (h *ProfileHandler) UploadAvatar(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.BadRequest("File is required")
	}

	src, err := file.Open()
	if err != nil {
		return middleware.BadRequest("Failed to read file")
	}
	defer src.Close()

	user, err := h.profileService.UploadAvatar(c.UserContext(), userID, domain.Upload{
		FileName:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Size:        file.Size,
		Reader:      src,
	})
	if err != nil {
		return err
	}

	return c.JSON(user)
}

func (h *ProfileHandler) Suggestions(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	users, err := h.profileService.Suggestions(c.UserContext(), userID, c.QueryInt("limit", profile.DefaultSuggestions))
	if err != nil {
		return err
	}

	return c.JSON(users)
}
