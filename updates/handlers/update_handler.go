// Copyright (c) 2024 Telar Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/qolzam/telar/apps/feed/internal/middleware/requestid"
	"github.com/qolzam/telar/apps/feed/internal/types"
	"github.com/qolzam/telar/apps/feed/updates/errors"
	"github.com/qolzam/telar/apps/feed/updates/models"
	"github.com/qolzam/telar/apps/feed/updates/services"
)

// UpdateHandler handles all update-related HTTP requests
type UpdateHandler struct {
	updateService services.UpdateService
}

// NewUpdateHandler creates a new UpdateHandler with injected dependencies
func NewUpdateHandler(updateService services.UpdateService) *UpdateHandler {
	return &UpdateHandler{updateService: updateService}
}

// CreateUpdate handles update creation
// Endpoint: POST /updates
// Body: {"content": "...", "tags": ["go"]}
func (h *UpdateHandler) CreateUpdate(c *fiber.Ctx) error {
	var req models.CreateUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleInvalidRequestError(c, "Invalid request body")
	}

	user, ok := types.UserFromLocals(c)
	if !ok {
		return errors.HandleUserContextError(c, "Invalid user context")
	}

	update, err := h.updateService.CreateUpdate(requestid.Context(c), &req, user.UserID)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(update)
}

// GetUpdate returns a single update
// Endpoint: GET /updates/:id
func (h *UpdateHandler) GetUpdate(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return errors.HandleValidationError(c, "id must be a positive integer")
	}

	update, err := h.updateService.GetUpdate(requestid.Context(c), id)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}
	return c.JSON(update)
}

// ListUserUpdates returns every update by one author
// Endpoint: GET /updates/user/:userId
func (h *UpdateHandler) ListUserUpdates(c *fiber.Ctx) error {
	userID, err := parseID(c.Params("userId"))
	if err != nil {
		return errors.HandleValidationError(c, "userId must be a positive integer")
	}

	updates, err := h.updateService.ListUserUpdates(requestid.Context(c), userID)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}
	if updates == nil {
		updates = []*models.Update{}
	}
	return c.JSON(fiber.Map{"updates": updates})
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, strconv.ErrRange
	}
	return id, nil
}
