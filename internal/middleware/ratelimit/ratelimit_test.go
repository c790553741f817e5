package ratelimit

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/qolzam/telar/apps/feed/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(handler fiber.Handler, userID int64) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if uid := c.Get("X-Test-User"); uid != "" {
			c.Locals(types.UserCtxName, types.UserContext{UserID: userID})
		}
		return c.Next()
	})
	app.Use(handler)
	app.Post("/test", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true})
	})
	return app
}

func post(t *testing.T, app *fiber.App, asUser bool) int {
	t.Helper()
	req := httptest.NewRequest("POST", "/test", strings.NewReader("{}"))
	req.Header.Set(types.HeaderContentType, "application/json")
	if asUser {
		req.Header.Set("X-Test-User", "1")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestRateLimit_CommentEndpoint_RejectsExcessiveRequests(t *testing.T) {
	limits := DefaultEndpointLimits()
	limits.CommentMaxRequests = 3
	app := newTestApp(New(Config{EndpointType: EndpointComment, Limits: &limits}), 10)

	for i := 0; i < 3; i++ {
		assert.Equal(t, 200, post(t, app, true))
	}

	req := httptest.NewRequest("POST", "/test", strings.NewReader("{}"))
	req.Header.Set("X-Test-User", "1")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, 429, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "RATE_LIMIT_EXCEEDED")
	assert.Contains(t, string(body), "comment")
	assert.Contains(t, string(body), `"retryAfter":600`)
}

func TestRateLimit_UsersAndAnonymousCallersHaveSeparateBuckets(t *testing.T) {
	limits := DefaultEndpointLimits()
	limits.ReactionMaxRequests = 1
	app := newTestApp(New(Config{EndpointType: EndpointReaction, Limits: &limits}), 10)

	assert.Equal(t, 200, post(t, app, true))
	assert.Equal(t, 429, post(t, app, true))

	// Anonymous callers are keyed by IP
	assert.Equal(t, 200, post(t, app, false))
	assert.Equal(t, 429, post(t, app, false))
}

func TestRateLimit_CustomKeyGenerator(t *testing.T) {
	limits := DefaultEndpointLimits()
	limits.UpdateMaxRequests = 1
	app := newTestApp(New(Config{
		EndpointType: EndpointUpdate,
		Limits:       &limits,
		KeyGenerator: func(c *fiber.Ctx) string { return "shared" },
	}), 10)

	assert.Equal(t, 200, post(t, app, true))
	assert.Equal(t, 429, post(t, app, false))
}

func TestRateLimit_Next_SkipsLimiter(t *testing.T) {
	limits := DefaultEndpointLimits()
	limits.UpdateMaxRequests = 1
	app := newTestApp(New(Config{
		EndpointType: EndpointUpdate,
		Limits:       &limits,
		Next:         func(c *fiber.Ctx) bool { return true },
	}), 10)

	for i := 0; i < 3; i++ {
		assert.Equal(t, 200, post(t, app, true))
	}
}

func TestForEndpoint_Disabled(t *testing.T) {
	app := newTestApp(ForEndpoint(false, EndpointUpdate), 10)
	for i := 0; i < 40; i++ {
		require.Equal(t, 200, post(t, app, true))
	}
}

func TestDefaultEndpointLimits(t *testing.T) {
	limits := DefaultEndpointLimits()

	tests := []struct {
		endpoint EndpointType
		name     string
		max      int
		window   time.Duration
	}{
		{EndpointUpdate, "update", 30, time.Hour},
		{EndpointComment, "comment", 60, 10 * time.Minute},
		{EndpointReaction, "reaction", 300, 10 * time.Minute},
		{EndpointType(99), "unknown", 5, 15 * time.Minute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, getEndpointName(tt.endpoint))
			assert.Equal(t, tt.max, getMaxRequests(tt.endpoint, &limits))
			assert.Equal(t, tt.window, getWindowDuration(tt.endpoint, &limits))
		})
	}
}
