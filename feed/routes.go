// Copyright (c) 2024 Telar Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package feed

import (
	"github.com/gofiber/fiber/v2"
	"github.com/qolzam/telar/apps/feed/feed/handlers"
	authjwt "github.com/qolzam/telar/apps/feed/internal/middleware/authjwt"
	platformconfig "github.com/qolzam/telar/apps/feed/internal/platform/config"
	"github.com/qolzam/telar/apps/feed/internal/types"
)

// FeedHandlers holds all the handlers this router needs
type FeedHandlers struct {
	FeedHandler *handlers.FeedHandler
}

// RegisterRoutes is the single entry point for setting up feed routes
func RegisterRoutes(app *fiber.App, handlers *FeedHandlers, cfg *platformconfig.Config) {
	// Feeds are readable anonymously; a valid token adds viewer state
	optionalAuth := authjwt.New(authjwt.Config{
		PublicKey:   cfg.JWT.PublicKey,
		ClaimKey:    cfg.JWT.ClaimKey,
		UserCtxName: types.UserCtxName,
		Optional:    true,
	})

	group := app.Group("/feed", optionalAuth)

	group.Get("/updates", handlers.FeedHandler.ListUpdates)
	group.Get("/updates/:id", handlers.FeedHandler.GetUpdate)
	group.Get("/updates/:id/comments", handlers.FeedHandler.ListComments)
}
