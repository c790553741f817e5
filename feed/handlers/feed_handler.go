// Copyright (c) 2024 Telar Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package handlers

import (
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gorilla/schema"
	"github.com/qolzam/telar/apps/feed/feed/errors"
	"github.com/qolzam/telar/apps/feed/feed/models"
	"github.com/qolzam/telar/apps/feed/feed/services"
	"github.com/qolzam/telar/apps/feed/internal/middleware/requestid"
	"github.com/qolzam/telar/apps/feed/internal/types"
)

// ListUpdatesQuery is the query string of GET /feed/updates
type ListUpdatesQuery struct {
	Page   *int   `schema:"page"`
	UserID int64  `schema:"userId"`
	Tag    string `schema:"tag"`
}

// ListCommentsQuery is the query string of GET /feed/updates/:id/comments
type ListCommentsQuery struct {
	Page *int `schema:"page"`
}

// FeedHandler serves feed pages
type FeedHandler struct {
	aggregator services.Aggregator
	decoder    *schema.Decoder
}

// NewFeedHandler creates a new FeedHandler with injected dependencies
func NewFeedHandler(aggregator services.Aggregator) *FeedHandler {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	return &FeedHandler{aggregator: aggregator, decoder: decoder}
}

// ListUpdates returns one page of the feed
// Endpoint: GET /feed/updates?page=1&userId=10 or ?tag=go
func (h *FeedHandler) ListUpdates(c *fiber.Ctx) error {
	values, err := url.ParseQuery(string(c.Request().URI().QueryString()))
	if err != nil {
		return errors.HandleValidationError(c, "Invalid query string")
	}

	var query ListUpdatesQuery
	if err := h.decoder.Decode(&query, values); err != nil {
		return errors.HandleValidationError(c, "Invalid query parameters")
	}

	filter := models.None()
	switch {
	case values.Has("userId") && values.Has("tag"):
		return errors.HandleValidationError(c, "userId and tag cannot be combined")
	case values.Has("userId"):
		filter = models.ByUser(query.UserID)
	case values.Has("tag"):
		filter = models.ByTag(query.Tag)
	}

	views, err := h.aggregator.ListUpdates(requestid.Context(c), filter, pageOrFirst(query.Page), types.ViewerFromLocals(c))
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"updates": views,
		"page":    pageOrFirst(query.Page),
	})
}

// GetUpdate returns one enriched update
// Endpoint: GET /feed/updates/:id
func (h *FeedHandler) GetUpdate(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return errors.HandleValidationError(c, "id must be a positive integer")
	}

	view, err := h.aggregator.GetUpdate(requestid.Context(c), id, types.ViewerFromLocals(c))
	if err != nil {
		return errors.HandleServiceError(c, err)
	}
	return c.JSON(view)
}

// ListComments returns one page of an update's comments
// Endpoint: GET /feed/updates/:id/comments?page=1
func (h *FeedHandler) ListComments(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return errors.HandleValidationError(c, "id must be a positive integer")
	}

	values, err := url.ParseQuery(string(c.Request().URI().QueryString()))
	if err != nil {
		return errors.HandleValidationError(c, "Invalid query string")
	}
	var query ListCommentsQuery
	if err := h.decoder.Decode(&query, values); err != nil {
		return errors.HandleValidationError(c, "Invalid query parameters")
	}

	views, err := h.aggregator.ListComments(requestid.Context(c), id, pageOrFirst(query.Page), types.ViewerFromLocals(c))
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"comments": views,
		"page":     pageOrFirst(query.Page),
	})
}

// pageOrFirst defaults an absent page to 1. An explicit page is passed
// through so the service can reject it.
func pageOrFirst(page *int) int {
	if page == nil {
		return 1
	}
	return *page
}
