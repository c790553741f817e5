package requestid

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofrs/uuid"
	"github.com/qolzam/telar/apps/feed/internal/pkg/log"
)

const (
	// HeaderRequestID is the HTTP header name for request ID
	HeaderRequestID = "X-Request-ID"
	// ContextKeyRequestID is the key used to store request ID in Fiber context
	ContextKeyRequestID = "request_id"
)

// New creates a middleware that generates or uses an existing X-Request-ID header
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.Must(uuid.NewV4()).String()
		}

		c.Locals(ContextKeyRequestID, requestID)
		c.Set(HeaderRequestID, requestID)
		c.SetUserContext(log.WithRequestID(c.UserContext(), requestID))

		return c.Next()
	}
}

// GetRequestID retrieves the request ID from Fiber context
func GetRequestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(ContextKeyRequestID).(string); ok {
		return id
	}
	return ""
}

// Context returns the request-scoped context carrying the request ID for
// logging. Handlers pass it to services.
func Context(c *fiber.Ctx) context.Context {
	ctx := c.UserContext()
	if log.RequestID(ctx) == "" {
		if id := GetRequestID(c); id != "" {
			ctx = log.WithRequestID(ctx, id)
		}
	}
	return ctx
}
