package server

import (
	"errors"
	"log/slog"
	"time"

	"devconnect/internal/middleware"
	"devconnect/internal/models"

	"github.com/gofiber/fiber/v2"
)

// respondError maps a typed AppError to its HTTP status and writes the
// standard error body. Unexpected errors are logged and surfaced as a
// generic 500.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError

	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case models.CodeNotFound:
			status = fiber.StatusNotFound
		case models.CodeValidation, models.CodeConflict:
			status = fiber.StatusBadRequest
		case models.CodeUnauthorized:
			status = fiber.StatusUnauthorized
		}
	}

	if status == fiber.StatusInternalServerError {
		middleware.Logger.Error("internal error",
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
		)
	}

	return models.RespondWithError(c, status, err)
}

// currentUserID returns the authenticated user's id set by AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	return c.Locals("userID").(uint)
}

// parseIDParam extracts a positive uint route parameter.
func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, models.NewValidationError("Invalid " + name)
	}
	return uint(id), nil
}

// dateLayouts are the accepted formats for experience/education dates.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// parseDate parses an optional request date. An empty string yields nil.
func parseDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, models.NewValidationError("Invalid date format")
}
