package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes used across the repository and handler layers.
const (
	CodeNotFound     = "NOT_FOUND"
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeConflict     = "CONFLICT"
	CodeInternal     = "INTERNAL_ERROR"
)

// AppError is a typed application error. Repositories and handlers return
// these instead of raw errors so the route layer can map them to HTTP
// statuses without string matching.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError reports a missing aggregate or sub-entry.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: CodeNotFound, Message: message}
}

// NewValidationError reports a missing or malformed request field.
func NewValidationError(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message}
}

// NewUnauthorizedError reports a missing identity or an ownership mismatch.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: message}
}

// NewConflictError reports a domain-state conflict such as liking an
// already-liked post.
func NewConflictError(message string) *AppError {
	return &AppError{Code: CodeConflict, Message: message}
}

// NewInternalError wraps an unexpected failure. The wrapped error is logged
// server-side but never serialized to the client.
func NewInternalError(err error) *AppError {
	return &AppError{Code: CodeInternal, Message: "Internal server error", Err: err}
}

// fieldError is the per-field element of a validation error response.
type fieldError struct {
	Msg string `json:"msg"`
}

// RespondWithError writes the standard error response shape: validation
// failures render as {"errors": [{"msg": ...}]}, everything else as
// {"msg": ...}. Wrapped internal detail is never exposed.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = NewInternalError(err)
	}

	if appErr.Code == CodeValidation {
		return c.Status(status).JSON(fiber.Map{
			"errors": []fieldError{{Msg: appErr.Message}},
		})
	}
	return c.Status(status).JSON(fiber.Map{"msg": appErr.Message})
}
