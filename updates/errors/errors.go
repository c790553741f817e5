// Copyright (c) 2024 Telar Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/qolzam/telar/apps/feed/internal/database/postgres"
)

// Update service specific errors
var (
	ErrUpdateNotFound    = errors.New("update not found")
	ErrInvalidUpdateData = errors.New("invalid update data")
	ErrInvalidRequest    = errors.New("invalid request")
	ErrDatabaseOperation = errors.New("database operation failed")
)

// Error codes
const (
	CodeUpdateNotFound     = "UPDATE_NOT_FOUND"
	CodeInvalidUpdateData  = "INVALID_UPDATE_DATA"
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeMissingUserContext = "MISSING_USER_CONTEXT"
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeDatabaseError      = "DATABASE_ERROR"
	CodeInternalError      = "INTERNAL_ERROR"
)

// ErrorResponse represents the standardized error response format
type ErrorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// WrapStoreError annotates a storage failure with the operation name. Failures
// the caller may retry are additionally marked with ErrDatabaseOperation.
func WrapStoreError(op string, err error) error {
	if postgres.IsTransient(err) {
		return fmt.Errorf("%s: %w: %w", op, ErrDatabaseOperation, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// HandleServiceError handles service errors and returns appropriate HTTP responses
func HandleServiceError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrUpdateNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Code:    CodeUpdateNotFound,
			Message: "Update not found",
			Details: err.Error(),
		})
	case errors.Is(err, ErrInvalidUpdateData):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Code:    CodeInvalidUpdateData,
			Message: "Invalid update data",
			Details: err.Error(),
		})
	case errors.Is(err, ErrDatabaseOperation):
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
		Code:    CodeValidationFailed,
		Message: message,
		Details: message,
	})
}

// HandleUserContextError handles user context errors with 401 Unauthorized
func HandleUserContextError(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusUnauthorized).JSON(ErrorResponse{
		Code:    CodeMissingUserContext,
		Message: message,
		Details: message,
	})
}

// HandleInvalidRequestError handles invalid request errors with 400 Bad Request
func HandleInvalidRequestError(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
		Code:    CodeInvalidRequest,
		Message: message,
		Details: message,
	})
}
