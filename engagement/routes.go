// Copyright (c) 2024 Telar Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package engagement

import (
	"github.com/gofiber/fiber/v2"
	"github.com/qolzam/telar/apps/feed/engagement/handlers"
	authjwt "github.com/qolzam/telar/apps/feed/internal/middleware/authjwt"
	"github.com/qolzam/telar/apps/feed/internal/middleware/ratelimit"
	platformconfig "github.com/qolzam/telar/apps/feed/internal/platform/config"
	"github.com/qolzam/telar/apps/feed/internal/types"
)

// EngagementHandlers holds all the handlers this router needs
type EngagementHandlers struct {
	EngagementHandler *handlers.EngagementHandler
}

// RegisterRoutes is the single entry point for setting up engagement routes
func RegisterRoutes(app *fiber.App, handlers *EngagementHandlers, cfg *platformconfig.Config) {
	authMiddleware := authjwt.New(authjwt.Config{
		PublicKey:   cfg.JWT.PublicKey,
		ClaimKey:    cfg.JWT.ClaimKey,
		UserCtxName: types.UserCtxName,
	})

	group := app.Group("/engagement", authMiddleware)
	h := handlers.EngagementHandler

	commentLimit := ratelimit.ForEndpoint(cfg.Server.RateLimit, ratelimit.EndpointComment)
	reactionLimit := ratelimit.ForEndpoint(cfg.Server.RateLimit, ratelimit.EndpointReaction)

	group.Post("/comments", commentLimit, h.AddComment)

	group.Post("/likes", reactionLimit, h.LikeUpdate)
	group.Delete("/likes/:updateId", reactionLimit, h.UnlikeUpdate)

	group.Post("/comment-likes", reactionLimit, h.LikeComment)
	group.Delete("/comment-likes/:commentId", reactionLimit, h.UnlikeComment)

	group.Post("/favorites", reactionLimit, h.FavoriteUpdate)
	group.Delete("/favorites/:updateId", reactionLimit, h.UnfavoriteUpdate)
}
