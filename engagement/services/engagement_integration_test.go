package services

import (
	"context"
	"os"
	"strconv"
	"sync"
	"testing"

	commentRepository "github.com/qolzam/telar/apps/feed/comments/repository"
	"github.com/qolzam/telar/apps/feed/counters"
	favoriteRepository "github.com/qolzam/telar/apps/feed/favorites/repository"
	dbi "github.com/qolzam/telar/apps/feed/internal/database/interfaces"
	"github.com/qolzam/telar/apps/feed/internal/database/postgres"
	likeRepository "github.com/qolzam/telar/apps/feed/likes/repository"
	notificationMocks "github.com/qolzam/telar/apps/feed/notifications/mocks"
	updateModels "github.com/qolzam/telar/apps/feed/updates/models"
	updateRepository "github.com/qolzam/telar/apps/feed/updates/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const concurrentCallers = 20

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// newIntegrationService connects to the test database, applies the schema and
// inserts one update owned by ownerID. The update is removed on cleanup.
func newIntegrationService(t *testing.T) (EngagementService, *postgres.Client, *notificationMocks.MockDispatcher, int64) {
	t.Helper()
	if os.Getenv("RUN_DB_TESTS") != "1" {
		t.Skip("set RUN_DB_TESTS=1 to run PostgreSQL integration tests")
	}

	port, err := strconv.Atoi(envOr("POSTGRES_PORT", "5432"))
	require.NoError(t, err)

	ctx := context.Background()
	client, err := postgres.NewClient(ctx, &dbi.PostgreSQLConfig{
		Host:               envOr("POSTGRES_HOST", "localhost"),
		Port:               port,
		Username:           envOr("POSTGRES_USERNAME", "postgres"),
		Password:           envOr("POSTGRES_PASSWORD", "postgres"),
		SSLMode:            "disable",
		MaxOpenConnections: concurrentCallers + 5,
		MaxIdleConnections: concurrentCallers,
		MaxLifetime:        300,
		ConnectTimeout:     10,
	}, envOr("POSTGRES_DATABASE", "telar_feed_test"))
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	require.NoError(t, client.ApplySchema(ctx))

	updates := updateRepository.NewPostgresRepository(client)
	update := &updateModels.Update{UserID: ownerID, Content: "concurrency"}
	require.NoError(t, updates.Create(ctx, update))
	t.Cleanup(func() {
		_, _ = client.DB().ExecContext(context.Background(), `DELETE FROM updates WHERE id = $1`, update.ID)
	})

	dispatcher := new(notificationMocks.MockDispatcher)
	dispatcher.On("Dispatch", mock.Anything, mock.Anything).Return(nil)

	svc := NewEngagementService(Dependencies{
		Tx:         client,
		Updates:    updates,
		Comments:   commentRepository.NewPostgresRepository(client),
		Likes:      likeRepository.NewPostgresRepository(client),
		Favorites:  favoriteRepository.NewPostgresRepository(client),
		Counters:   counters.NewPostgresMaintainer(client),
		Dispatcher: dispatcher,
	})
	return svc, client, dispatcher, update.ID
}

func likeState(t *testing.T, client *postgres.Client, id int64) (rows, counter int) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, client.DB().GetContext(ctx, &rows, `SELECT count(*) FROM update_likes WHERE update_id = $1`, id))
	require.NoError(t, client.DB().GetContext(ctx, &counter, `SELECT likes FROM updates WHERE id = $1`, id))
	return rows, counter
}

func TestIntegration_ConcurrentLikesBySameUser(t *testing.T) {
	svc, client, dispatcher, id := newIntegrationService(t)

	var wg sync.WaitGroup
	likeIDs := make([]int64, concurrentCallers)
	errs := make([]error, concurrentCallers)
	for i := 0; i < concurrentCallers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			like, err := svc.LikeUpdate(context.Background(), id, otherID)
			errs[i] = err
			if like != nil {
				likeIDs[i] = like.ID
			}
		}(i)
	}
	wg.Wait()

	for i := range errs {
		require.NoError(t, errs[i])
		assert.Equal(t, likeIDs[0], likeIDs[i])
	}

	rows, counter := likeState(t, client, id)
	assert.Equal(t, 1, rows)
	assert.Equal(t, 1, counter)
	dispatcher.AssertNumberOfCalls(t, "Dispatch", 1)
}

func TestIntegration_ConcurrentUnlikesStopAtZero(t *testing.T) {
	svc, client, _, id := newIntegrationService(t)

	_, err := svc.LikeUpdate(context.Background(), id, otherID)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, concurrentCallers)
	for i := 0; i < concurrentCallers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = svc.UnlikeUpdate(context.Background(), id, otherID)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	rows, counter := likeState(t, client, id)
	assert.Equal(t, 0, rows)
	assert.Equal(t, 0, counter)
}

func TestIntegration_ConcurrentLikesByDistinctUsers(t *testing.T) {
	svc, client, _, id := newIntegrationService(t)

	var wg sync.WaitGroup
	errs := make([]error, concurrentCallers)
	for i := 0; i < concurrentCallers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.LikeUpdate(context.Background(), id, int64(100+i))
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	rows, counter := likeState(t, client, id)
	assert.Equal(t, concurrentCallers, rows)
	assert.Equal(t, concurrentCallers, counter)
}
