package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"learnloop/internal/domain"
	"learnloop/internal/pkg/logger"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	TraceID string `json:"trace_id,omitempty"`
}

func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	errorCode := "INTERNAL_ERROR"

	var fe *fiber.Error
	var de *domain.Error
	switch {
	case errors.As(err, &fe):
		code = fe.Code
		message = fe.Message

		switch code {
		case fiber.StatusBadRequest:
			errorCode = "BAD_REQUEST"
		case fiber.StatusUnauthorized:
			errorCode = "UNAUTHORIZED"
		case fiber.StatusForbidden:
			errorCode = "FORBIDDEN"
		case fiber.StatusNotFound:
			errorCode = "NOT_FOUND"
		case fiber.StatusConflict:
			errorCode = "CONFLICT"
		case fiber.StatusRequestEntityTooLarge:
			errorCode = "PAYLOAD_TOO_LARGE"
		case fiber.StatusUnprocessableEntity:
			errorCode = "VALIDATION_ERROR"
		}
	case errors.Is(err, domain.ErrNotFound):
		code, errorCode = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrForbidden):
		code, errorCode = fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrInvalidArgument):
		code, errorCode = fiber.StatusBadRequest, "BAD_REQUEST"
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		code, errorCode = fiber.StatusServiceUnavailable, "UPSTREAM_UNAVAILABLE"
		message = "Service temporarily unavailable"
	}

	if fe == nil && errors.As(err, &de) && code < fiber.StatusInternalServerError {
		message = de.Message
	}

	traceID := uuid.New().String()[:8]

	if code >= fiber.StatusInternalServerError {
		logger.WithModule("http").Error("request failed",
			zap.String("trace_id", traceID),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)
	}

	return c.Status(code).JSON(ErrorResponse{
		Code:    errorCode,
		Message: message,
		TraceID: traceID,
	})
}

func BadRequest(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusBadRequest, message)
}

func Unauthorized(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusUnauthorized, message)
}

func NotFound(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusNotFound, message)
}
