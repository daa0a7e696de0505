package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// StatusFor maps a service error to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidInput), errors.Is(err, services.ErrContentRejected):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrInvalidToken):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, services.ErrPetNotFound),
		errors.Is(err, services.ErrPhotoNotFound),
		errors.Is(err, services.ErrFeedNotFound),
		errors.Is(err, services.ErrUserNotFound):
		return fiber.StatusNotFound
	case services.IsConflict(err):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrFileTooLarge):
		return fiber.StatusRequestEntityTooLarge
	case errors.Is(err, services.ErrUnsupportedMedia):
		return fiber.StatusUnsupportedMediaType
	default:
		return fiber.StatusInternalServerError
	}
}

// Fail writes err as the standard error body. Server errors are logged and
// replaced by fallback so internals never reach the client.
func Fail(c *fiber.Ctx, err error, fallback string) error {
	code := StatusFor(err)
	message := err.Error()
	if code >= fiber.StatusInternalServerError {
		slog.Error(fallback,
			"request_id", RequestID(c),
			"user_id", identity.GetUserID(c),
			"method", c.Method(),
			"path", c.Path(),
			"error", err.Error(),
		)
		message = fallback
	}
	return c.Status(code).JSON(dto.ErrorResponse{Error: true, Message: message})
}

// BadRequest writes a 400 with the given message.
func BadRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: message})
}

// RequestID returns the id assigned by the requestid middleware.
func RequestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return c.GetRespHeader(fiber.HeaderXRequestID)
}

// ParseID reads a positive numeric route parameter.
func ParseID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}
