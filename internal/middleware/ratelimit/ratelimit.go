// Package ratelimit throttles write endpoints per caller
package ratelimit

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/qolzam/telar/apps/feed/internal/pkg/log"
	"github.com/qolzam/telar/apps/feed/internal/types"
)

// EndpointLimits defines rate limiting configuration for write endpoints
type EndpointLimits struct {
	// Posting updates: 30 per hour per caller
	UpdateMaxRequests    int
	UpdateWindowDuration time.Duration

	// Comments: 60 per 10 minutes per caller
	CommentMaxRequests    int
	CommentWindowDuration time.Duration

	// Likes and favorites: 300 per 10 minutes per caller
	ReactionMaxRequests    int
	ReactionWindowDuration time.Duration
}

// DefaultEndpointLimits returns the default write limits
func DefaultEndpointLimits() EndpointLimits {
	return EndpointLimits{
		UpdateMaxRequests:    30,
		UpdateWindowDuration: 1 * time.Hour,

		CommentMaxRequests:    60,
		CommentWindowDuration: 10 * time.Minute,

		ReactionMaxRequests:    300,
		ReactionWindowDuration: 10 * time.Minute,
	}
}

// EndpointType represents the kind of write being limited
type EndpointType int

const (
	EndpointUpdate EndpointType = iota
	EndpointComment
	EndpointReaction
)

// Config holds the configuration for rate limiting middleware
type Config struct {
	// Endpoint type to determine which limits to apply
	EndpointType EndpointType

	// Custom limits (optional - uses defaults if not provided)
	Limits *EndpointLimits

	// Next defines a function to skip this middleware when returned true
	Next func(c *fiber.Ctx) bool

	// Custom key generator (optional - uses the caller's user id, or IP when anonymous)
	KeyGenerator func(c *fiber.Ctx) string

	// LimitReached defines the response when rate limit is exceeded
	LimitReached func(c *fiber.Ctx) error
}

// CallerKey identifies the caller by user id when authenticated and by IP otherwise
func CallerKey(c *fiber.Ctx) string {
	if user, ok := types.UserFromLocals(c); ok {
		return "user:" + strconv.FormatInt(user.UserID, 10)
	}
	return "ip:" + c.IP()
}

func configDefault(config Config) Config {
	if config.Limits == nil {
		limits := DefaultEndpointLimits()
		config.Limits = &limits
	}

	if config.KeyGenerator == nil {
		endpointName := getEndpointName(config.EndpointType)
		config.KeyGenerator = func(c *fiber.Ctx) string {
			return endpointName + ":" + CallerKey(c)
		}
	}

	if config.LimitReached == nil {
		config.LimitReached = func(c *fiber.Ctx) error {
			endpointName := getEndpointName(config.EndpointType)
			windowDuration := getWindowDuration(config.EndpointType, config.Limits)

			log.WarnWithContext(c.UserContext(), "[RateLimit] Rate limit exceeded for %s by %s", endpointName, CallerKey(c))

			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"code":       "RATE_LIMIT_EXCEEDED",
				"message":    fmt.Sprintf("Too many %s requests. Please try again later.", endpointName),
				"retryAfter": int(windowDuration.Seconds()),
			})
		}
	}

	return config
}

func getEndpointName(endpointType EndpointType) string {
	switch endpointType {
	case EndpointUpdate:
		return "update"
	case EndpointComment:
		return "comment"
	case EndpointReaction:
		return "reaction"
	default:
		return "unknown"
	}
}

func getMaxRequests(endpointType EndpointType, limits *EndpointLimits) int {
	switch endpointType {
	case EndpointUpdate:
		return limits.UpdateMaxRequests
	case EndpointComment:
		return limits.CommentMaxRequests
	case EndpointReaction:
		return limits.ReactionMaxRequests
	default:
		return 5
	}
}

func getWindowDuration(endpointType EndpointType, limits *EndpointLimits) time.Duration {
	switch endpointType {
	case EndpointUpdate:
		return limits.UpdateWindowDuration
	case EndpointComment:
		return limits.CommentWindowDuration
	case EndpointReaction:
		return limits.ReactionWindowDuration
	default:
		return 15 * time.Minute
	}
}

// New creates a new rate limiting middleware handler
func New(config Config) fiber.Handler {
	cfg := configDefault(config)

	return limiter.New(limiter.Config{
		Max:          getMaxRequests(cfg.EndpointType, cfg.Limits),
		Expiration:   getWindowDuration(cfg.EndpointType, cfg.Limits),
		KeyGenerator: cfg.KeyGenerator,
		LimitReached: cfg.LimitReached,
		Next:         cfg.Next,
	})
}

// ForEndpoint returns the limiter for endpointType, or a pass-through handler
// when limiting is disabled
func ForEndpoint(enabled bool, endpointType EndpointType) fiber.Handler {
	if !enabled {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return New(Config{EndpointType: endpointType})
}
