// Copyright (c) 2024 Telar Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package errors

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	updateErrors "github.com/qolzam/telar/apps/feed/updates/errors"
)

// Feed service specific errors
var (
	ErrInvalidArgument = errors.New("invalid argument")
)

// Error codes
const (
	CodeInvalidArgument = "INVALID_ARGUMENT"
	CodeUpdateNotFound  = updateErrors.CodeUpdateNotFound
	CodeDatabaseError   = updateErrors.CodeDatabaseError
	CodeInternalError   = updateErrors.CodeInternalError
)

// ErrorResponse represents the standardized error response format
type ErrorResponse = updateErrors.ErrorResponse

// HandleServiceError handles service errors and returns appropriate HTTP responses
func HandleServiceError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrInvalidArgument):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Code:    CodeInvalidArgument,
			Message: "Invalid argument",
			Details: err.Error(),
		})
	case errors.Is(err, updateErrors.ErrUpdateNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Code:    CodeUpdateNotFound,
			Message: "Update not found",
			Details: err.Error(),
		})
	case errors.Is(err, updateErrors.ErrDatabaseOperation):
		return c.Status(http.StatusServiceUnavailable).JSON(ErrorResponse{
			Code:    CodeDatabaseError,
			Message: "Database operation failed",
			Details: err.Error(),
		})
	default:
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Code:    CodeInternalError,
			Message: "An unexpected error occurred",
			Details: err.Error(),
		})
	}
}

// HandleValidationError handles validation errors with 400 Bad Request
func HandleValidationError(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
		Code:    CodeInvalidArgument,
		Message: message,
		Details: message,
	})
}
