package handler

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"learnloop/internal/middleware"
	"learnloop/internal/service"
)

type Handlers struct {
	Notification *NotificationHandler
	Feed         *FeedHandler
	Post         *PostHandler
	Social       *SocialHandler
	Profile      *ProfileHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Notification: NewNotificationHandler(services.Notification),
		Feed:         NewFeedHandler(services.Feed),
		Post:         NewPostHandler(services.Post),
		Social:       NewSocialHandler(services.Social),
		Profile:      NewProfileHandler(services.Profile),
	}
}

var validate = validator.New()

// validateInput reports the first failing field as a 400.
func validateInput(input interface{}) error {
	if err := validate.Struct(input); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			fe := errs[0]
			return middleware.BadRequest(fmt.Sprintf("%s failed on %s", strings.ToLower(fe.Field()), fe.Tag()))
		}
		return middleware.BadRequest("Invalid request body")
	}
	return nil
}

func parseUUIDParam(c *fiber.Ctx, name, label string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.BadRequest(fmt.Sprintf("Invalid %s ID", label))
	}
	return id, nil
}
