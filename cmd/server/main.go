package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	commentRepository "github.com/qolzam/telar/apps/feed/comments/repository"
	"github.com/qolzam/telar/apps/feed/counters"
	"github.com/qolzam/telar/apps/feed/engagement"
	engagementHandlers "github.com/qolzam/telar/apps/feed/engagement/handlers"
	engagementServices "github.com/qolzam/telar/apps/feed/engagement/services"
	favoriteRepository "github.com/qolzam/telar/apps/feed/favorites/repository"
	"github.com/qolzam/telar/apps/feed/feed"
	feedHandlers "github.com/qolzam/telar/apps/feed/feed/handlers"
	feedServices "github.com/qolzam/telar/apps/feed/feed/services"
	"github.com/qolzam/telar/apps/feed/internal/cache"
	dbi "github.com/qolzam/telar/apps/feed/internal/database/interfaces"
	"github.com/qolzam/telar/apps/feed/internal/database/postgres"
	"github.com/qolzam/telar/apps/feed/internal/middleware/requestid"
	platformconfig "github.com/qolzam/telar/apps/feed/internal/platform/config"
	likeRepository "github.com/qolzam/telar/apps/feed/likes/repository"
	"github.com/qolzam/telar/apps/feed/notifications"
	"github.com/qolzam/telar/apps/feed/updates"
	updateHandlers "github.com/qolzam/telar/apps/feed/updates/handlers"
	updateRepository "github.com/qolzam/telar/apps/feed/updates/repository"
	updateServices "github.com/qolzam/telar/apps/feed/updates/services"
	userRepository "github.com/qolzam/telar/apps/feed/users/repository"
)

func main() {
	cfg, err := platformconfig.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load platform config: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			log.Printf("[ErrorHandler] Path: %s, Error: %v, Code: %d", c.Path(), err, code)

			// If response already set by handler, don't override it
			if len(c.Response().Body()) > 0 {
				return nil
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	if cfg.Server.Debug {
		app.Use(logger.New())
	}

	ctx := context.Background()
	pgClient, err := postgres.NewClient(ctx, dbi.FromPlatformConfig(cfg.Database.Postgres), cfg.Database.Postgres.Database)
	if err != nil {
		log.Fatalf("Failed to create postgres client: %v", err)
	}
	defer pgClient.Close()

	if cfg.Database.AutoMigrate {
		if err := pgClient.ApplySchema(ctx); err != nil {
			log.Fatalf("Failed to apply schema: %v", err)
		}
		log.Println("Schema applied")
	}

	// Storage gateway
	updateRepo := updateRepository.NewPostgresRepository(pgClient)
	commentRepo := commentRepository.NewPostgresRepository(pgClient)
	likeRepo := likeRepository.NewPostgresRepository(pgClient)
	favoriteRepo := favoriteRepository.NewPostgresRepository(pgClient)
	images := userRepository.NewPostgresImageDirectory(pgClient)
	users := userRepository.NewPostgresUserDirectory(pgClient)

	userCache, err := cache.New(ctx, cfg.Cache)
	if err != nil {
		log.Printf("WARN: cache unavailable, reading users straight from the store: %v", err)
	}
	if userCache != nil {
		defer userCache.Close()
		users = userRepository.NewCachedUserDirectory(users, userCache, cfg.Cache.Prefix, cfg.Cache.TTL)
	}

	dispatcher, err := notifications.NewDispatcher(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create notification dispatcher: %v", err)
	}
	defer dispatcher.Close()

	updateService := updateServices.NewUpdateService(updateRepo, pgClient)
	aggregator := feedServices.NewAggregator(feedServices.Dependencies{
		Updates:   updateRepo,
		Comments:  commentRepo,
		Likes:     likeRepo,
		Favorites: favoriteRepo,
		Users:     users,
		Images:    images,
	})
	engagementService := engagementServices.NewEngagementService(engagementServices.Dependencies{
		Tx:         pgClient,
		Updates:    updateRepo,
		Comments:   commentRepo,
		Likes:      likeRepo,
		Favorites:  favoriteRepo,
		Counters:   counters.NewPostgresMaintainer(pgClient),
		Dispatcher: dispatcher,
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pgClient.HealthCheck(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable", "error": err.Error()})
		}
		return c.JSON(fiber.Map{"status": "ok", "database": pgClient.Stats()})
	})

	updates.RegisterRoutes(app, &updates.UpdatesHandlers{
		UpdateHandler: updateHandlers.NewUpdateHandler(updateService),
	}, cfg)
	feed.RegisterRoutes(app, &feed.FeedHandlers{
		FeedHandler: feedHandlers.NewFeedHandler(aggregator),
	}, cfg)
	engagement.RegisterRoutes(app, &engagement.EngagementHandlers{
		EngagementHandler: engagementHandlers.NewEngagementHandler(engagementService),
	}, cfg)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down feed service")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("WARN: shutdown: %v", err)
		}
	}()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Starting Telar Feed Service on %s", addr)
	if err := app.Listen(addr); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}
