// Copyright (c) 2024 Telar Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package updates

import (
	"github.com/gofiber/fiber/v2"
	authjwt "github.com/qolzam/telar/apps/feed/internal/middleware/authjwt"
	"github.com/qolzam/telar/apps/feed/internal/middleware/ratelimit"
	platformconfig "github.com/qolzam/telar/apps/feed/internal/platform/config"
	"github.com/qolzam/telar/apps/feed/internal/types"
	"github.com/qolzam/telar/apps/feed/updates/handlers"
)

// UpdatesHandlers holds all the handlers this router needs
type UpdatesHandlers struct {
	UpdateHandler *handlers.UpdateHandler
}

// RegisterRoutes is the single entry point for setting up updates routes
func RegisterRoutes(app *fiber.App, handlers *UpdatesHandlers, cfg *platformconfig.Config) {
	authMiddleware := authjwt.New(authjwt.Config{
		PublicKey:   cfg.JWT.PublicKey,
		ClaimKey:    cfg.JWT.ClaimKey,
		UserCtxName: types.UserCtxName,
	})

	group := app.Group("/updates")

	// Reads are public
	group.Get("/user/:userId", handlers.UpdateHandler.ListUserUpdates)
	group.Get("/:id", handlers.UpdateHandler.GetUpdate)

	group.Post("/", authMiddleware, ratelimit.ForEndpoint(cfg.Server.RateLimit, ratelimit.EndpointUpdate), handlers.UpdateHandler.CreateUpdate)
}
