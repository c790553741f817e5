package handlers_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	feedErrors "github.com/qolzam/telar/apps/feed/feed/errors"
	"github.com/qolzam/telar/apps/feed/feed/handlers"
	"github.com/qolzam/telar/apps/feed/feed/models"
	"github.com/qolzam/telar/apps/feed/internal/types"
	updateErrors "github.com/qolzam/telar/apps/feed/updates/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listCall struct {
	filter models.Filter
	page   int
	viewer *int64
}

// MockAggregator implements the Aggregator interface for testing
type MockAggregator struct {
	calls        []listCall
	listErr         error
	listCommentsErr error
	getUpdateErr    error
}

func (m *MockAggregator) ListUpdates(ctx context.Context, filter models.Filter, page int, viewerID *int64) ([]models.UpdateView, error) {
	m.calls = append(m.calls, listCall{filter: filter, page: page, viewer: viewerID})
	if m.listErr != nil {
		return nil, m.listErr
	}
	return []models.UpdateView{{ID: 1, Content: "hi", AvatarImageID: -1}}, nil
}

func (m *MockAggregator) ListComments(ctx context.Context, updateID int64, page int, viewerID *int64) ([]models.CommentView, error) {
	m.calls = append(m.calls, listCall{page: page, viewer: viewerID})
	if m.listCommentsErr != nil {
		return nil, m.listCommentsErr
	}
	return []models.CommentView{}, nil
}

func (m *MockAggregator) GetUpdate(ctx context.Context, updateID int64, viewerID *int64) (*models.UpdateView, error) {
	if m.getUpdateErr != nil {
		return nil, m.getUpdateErr
	}
	return &models.UpdateView{ID: updateID}, nil
}

func newApp(agg *MockAggregator, user *types.UserContext) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if user != nil {
			c.Locals(types.UserCtxName, *user)
		}
		return c.Next()
	})
	h := handlers.NewFeedHandler(agg)
	app.Get("/feed/updates", h.ListUpdates)
	app.Get("/feed/updates/:id", h.GetUpdate)
	app.Get("/feed/updates/:id/comments", h.ListComments)
	return app
}

func TestListUpdates_QueryDecoding(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantFilter models.Filter
		wantPage   int
	}{
		{"defaults", "/feed/updates", fiber.StatusOK, models.None(), 1},
		{"page", "/feed/updates?page=3", fiber.StatusOK, models.None(), 3},
		{"user", "/feed/updates?userId=10&page=2", fiber.StatusOK, models.ByUser(10), 2},
		{"tag", "/feed/updates?tag=go", fiber.StatusOK, models.ByTag("go"), 1},
		{"blank tag", "/feed/updates?tag=", fiber.StatusOK, models.ByTag(""), 1},
		{"bad page", "/feed/updates?page=abc", fiber.StatusBadRequest, models.Filter{}, 0},
		{"combined filters", "/feed/updates?userId=1&tag=go", fiber.StatusBadRequest, models.Filter{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := &MockAggregator{}
			resp, err := newApp(agg, nil).Test(httptest.NewRequest("GET", tt.target, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.wantStatus != fiber.StatusOK {
				assert.Empty(t, agg.calls)
				return
			}
			require.Len(t, agg.calls, 1)
			assert.Equal(t, tt.wantFilter, agg.calls[0].filter)
			assert.Equal(t, tt.wantPage, agg.calls[0].page)
			assert.Nil(t, agg.calls[0].viewer)
		})
	}
}

func TestListUpdates_PassesViewer(t *testing.T) {
	agg := &MockAggregator{}
	resp, err := newApp(agg, &types.UserContext{UserID: 20}).Test(httptest.NewRequest("GET", "/feed/updates", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.NotNil(t, agg.calls[0].viewer)
	assert.Equal(t, int64(20), *agg.calls[0].viewer)

	var body struct {
		Updates []models.UpdateView `json:"updates"`
		Page    int                 `json:"page"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Updates, 1)
	assert.Equal(t, 1, body.Page)
}

func TestListUpdates_ServiceErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{feedErrors.ErrInvalidArgument, fiber.StatusBadRequest},
		{updateErrors.ErrDatabaseOperation, fiber.StatusServiceUnavailable},
		{context.Canceled, fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			resp, err := newApp(&MockAggregator{listErr: tt.err}, nil).Test(httptest.NewRequest("GET", "/feed/updates?page=0", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestGetUpdate(t *testing.T) {
	resp, err := newApp(&MockAggregator{}, nil).Test(httptest.NewRequest("GET", "/feed/updates/5", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = newApp(&MockAggregator{getUpdateErr: updateErrors.ErrUpdateNotFound}, nil).Test(httptest.NewRequest("GET", "/feed/updates/5", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, err = newApp(&MockAggregator{}, nil).Test(httptest.NewRequest("GET", "/feed/updates/x", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestListComments(t *testing.T) {
	agg := &MockAggregator{}
	resp, err := newApp(agg, nil).Test(httptest.NewRequest("GET", "/feed/updates/1/comments?page=2", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Len(t, agg.calls, 1)
	assert.Equal(t, 2, agg.calls[0].page)
}

func TestListComments_MissingUpdate(t *testing.T) {
	agg := &MockAggregator{listCommentsErr: updateErrors.ErrUpdateNotFound}
	resp, err := newApp(agg, nil).Test(httptest.NewRequest("GET", "/feed/updates/404/comments", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
