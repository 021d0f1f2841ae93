package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"weather-backend/internal/forecast"
	"weather-backend/internal/services/users"
	"weather-backend/internal/storage"
	"weather-backend/internal/tasks"
)

// ErrorResponse is the error body of every failed request.
type ErrorResponse struct {
	Message string `json:"message" example:"record not found"`
}

// respondError maps service errors onto HTTP statuses. Upstream schema
// failures and retry exhaustion surface as a bad gateway since the fault is
// the provider's, not the client's.
func (r *routes) respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError

	var schemaErr *forecast.SchemaValidationError
	switch {
	case errors.Is(err, forecast.ErrInvalidPreference), errors.Is(err, users.ErrUnknownTarget):
		status = fiber.StatusBadRequest
	case errors.Is(err, users.ErrInvalidCredentials):
		status = fiber.StatusUnauthorized
	case errors.Is(err, storage.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, storage.ErrConflict):
		status = fiber.StatusConflict
	case errors.As(err, &schemaErr), errors.Is(err, tasks.ErrTooManyRetries):
		status = fiber.StatusBadGateway
	}

	if status == fiber.StatusInternalServerError {
		r.l.Error(err)
	}

	return c.Status(status).JSON(ErrorResponse{Message: err.Error()})
}
