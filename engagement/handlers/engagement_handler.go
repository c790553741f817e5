// Copyright (c) 2024 Telar Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/qolzam/telar/apps/feed/engagement/errors"
	"github.com/qolzam/telar/apps/feed/engagement/services"
	"github.com/qolzam/telar/apps/feed/internal/middleware/requestid"
	"github.com/qolzam/telar/apps/feed/internal/types"
)

// CommentRequest represents the request body for commenting on an update
type CommentRequest struct {
	Content  string `json:"content"`
	UpdateID int64  `json:"updateId"`
}

// UpdateTargetRequest names the update a like or favorite applies to
type UpdateTargetRequest struct {
	UpdateID int64 `json:"updateId"`
}

// CommentTargetRequest names the comment a like applies to
type CommentTargetRequest struct {
	CommentID int64 `json:"commentId"`
}

// EngagementHandler handles comment, like and favorite requests
type EngagementHandler struct {
	service services.EngagementService
}

// NewEngagementHandler creates a new EngagementHandler with injected dependencies
func NewEngagementHandler(service services.EngagementService) *EngagementHandler {
	return &EngagementHandler{service: service}
}

// AddComment handles comment creation
// Endpoint: POST /engagement/comments
// Body: {"content": "...", "updateId": 1}
func (h *EngagementHandler) AddComment(c *fiber.Ctx) error {
	var req CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleValidationError(c, "Invalid request body")
	}

	user, ok := types.UserFromLocals(c)
	if !ok {
		return errors.HandleUserContextError(c, "Invalid user context")
	}

	comment, err := h.service.AddComment(requestid.Context(c), req.Content, req.UpdateID, user.UserID)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(comment)
}

// LikeUpdate handles liking an update
// Endpoint: POST /engagement/likes
// Body: {"updateId": 1}
func (h *EngagementHandler) LikeUpdate(c *fiber.Ctx) error {
	var req UpdateTargetRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleValidationError(c, "Invalid request body")
	}

	user, ok := types.UserFromLocals(c)
	if !ok {
		return errors.HandleUserContextError(c, "Invalid user context")
	}

	like, err := h.service.LikeUpdate(requestid.Context(c), req.UpdateID, user.UserID)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}
	return c.JSON(like)
}

// UnlikeUpdate handles removing a like
// Endpoint: DELETE /engagement/likes/:updateId
func (h *EngagementHandler) UnlikeUpdate(c *fiber.Ctx) error {
	return h.removal(c, "updateId", h.service.UnlikeUpdate, "Like removed")
}

// LikeComment handles liking a comment
// Endpoint: POST /engagement/comment-likes
// Body: {"commentId": 5}
func (h *EngagementHandler) LikeComment(c *fiber.Ctx) error {
	var req CommentTargetRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleValidationError(c, "Invalid request body")
	}

	user, ok := types.UserFromLocals(c)
	if !ok {
		return errors.HandleUserContextError(c, "Invalid user context")
	}

	like, err := h.service.LikeComment(requestid.Context(c), req.CommentID, user.UserID)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}
	return c.JSON(like)
}

// UnlikeComment handles removing a comment like
// Endpoint: DELETE /engagement/comment-likes/:commentId
func (h *EngagementHandler) UnlikeComment(c *fiber.Ctx) error {
	return h.removal(c, "commentId", h.service.UnlikeComment, "Comment like removed")
}

// FavoriteUpdate handles saving an update
// Endpoint: POST /engagement/favorites
// Body: {"updateId": 1}
func (h *EngagementHandler) FavoriteUpdate(c *fiber.Ctx) error {
	var req UpdateTargetRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleValidationError(c, "Invalid request body")
	}

	user, ok := types.UserFromLocals(c)
	if !ok {
		return errors.HandleUserContextError(c, "Invalid user context")
	}

	favorite, err := h.service.FavoriteUpdate(requestid.Context(c), req.UpdateID, user.UserID)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}
	return c.JSON(favorite)
}

// UnfavoriteUpdate handles removing a favorite
// Endpoint: DELETE /engagement/favorites/:updateId
func (h *EngagementHandler) UnfavoriteUpdate(c *fiber.Ctx) error {
	return h.removal(c, "updateId", h.service.UnfavoriteUpdate, "Favorite removed")
}

// removal runs an idempotent delete keyed by a path parameter
func (h *EngagementHandler) removal(c *fiber.Ctx, param string, remove func(ctx context.Context, id, userID int64) error, message string) error {
	id, err := strconv.ParseInt(c.Params(param), 10, 64)
	if err != nil {
		return errors.HandleValidationError(c, param+" must be an integer")
	}

	user, ok := types.UserFromLocals(c)
	if !ok {
		return errors.HandleUserContextError(c, "Invalid user context")
	}

	if err := remove(requestid.Context(c), id, user.UserID); err != nil {
		return errors.HandleServiceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"message": message})
}
