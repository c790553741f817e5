package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/qolzam/telar/apps/feed/favorites/models"
	"github.com/qolzam/telar/apps/feed/internal/database/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var favoriteRowColumns = []string{"id", "update_id", "user_id", "favorited_at"}

func newTestRepository(t *testing.T) (*postgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewPostgresRepository(postgres.NewClientFromDB(sqlx.NewDb(db, "postgres"))).(*postgresRepository)
	repo.now = func() time.Time { return time.Unix(1700000000, 0) }
	return repo, mock
}

func TestAdd(t *testing.T) {
	t.Run("inserts", func(t *testing.T) {
		repo, mock := newTestRepository(t)

		mock.ExpectQuery(`INSERT INTO favorites \(update_id, user_id, favorited_at\) VALUES \(\$1, \$2, \$3\) ON CONFLICT \(update_id, user_id\) DO NOTHING RETURNING id, update_id, user_id, favorited_at`).
			WithArgs(int64(1), int64(20), int64(1700000000)).
			WillReturnRows(sqlmock.NewRows(favoriteRowColumns).AddRow(int64(3), int64(1), int64(20), int64(1700000000)))

		favorite, created, err := repo.Add(context.Background(), 1, 20)
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, &models.Favorite{ID: 3, UpdateID: 1, UserID: 20, FavoritedAt: 1700000000}, favorite)
	})

	t.Run("duplicate returns existing", func(t *testing.T) {
		repo, mock := newTestRepository(t)

		mock.ExpectQuery(`INSERT INTO favorites`).
			WillReturnRows(sqlmock.NewRows(favoriteRowColumns))
		mock.ExpectQuery(`SELECT id, update_id, user_id, favorited_at FROM favorites WHERE update_id = \$1 AND user_id = \$2`).
			WithArgs(int64(1), int64(20)).
			WillReturnRows(sqlmock.NewRows(favoriteRowColumns).AddRow(int64(3), int64(1), int64(20), int64(50)))

		favorite, created, err := repo.Add(context.Background(), 1, 20)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, int64(50), favorite.FavoritedAt)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("conflict on a vanished row is an error", func(t *testing.T) {
		repo, mock := newTestRepository(t)

		mock.ExpectQuery(`INSERT INTO favorites`).WillReturnRows(sqlmock.NewRows(favoriteRowColumns))
		mock.ExpectQuery(`FROM favorites WHERE update_id = \$1`).
			WillReturnRows(sqlmock.NewRows(favoriteRowColumns))

		_, _, err := repo.Add(context.Background(), 1, 20)
		assert.ErrorContains(t, err, "conflicted but was not found")
	})

	t.Run("unique violation is returned without reading in the aborted transaction", func(t *testing.T) {
		repo, mock := newTestRepository(t)

		mock.ExpectQuery(`INSERT INTO favorites`).WillReturnError(&pq.Error{Code: "23505"})

		favorite, created, err := repo.Add(context.Background(), 1, 20)
		require.Error(t, err)
		assert.True(t, postgres.IsUniqueViolation(err))
		assert.False(t, created)
		assert.Nil(t, favorite)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDelete(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectExec(`DELETE FROM favorites WHERE update_id = \$1 AND user_id = \$2`).
		WithArgs(int64(1), int64(20)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.Delete(context.Background(), 1, 20)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestFavoritedUpdateIDs(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery(`SELECT update_id FROM favorites WHERE user_id = \$1 AND update_id = ANY\(\$2\)`).
		WithArgs(int64(20), pq.Array([]int64{1, 2})).
		WillReturnRows(sqlmock.NewRows([]string{"update_id"}).AddRow(int64(2)))

	favorited, err := repo.FavoritedUpdateIDs(context.Background(), 20, []int64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, map[int64]bool{2: true}, favorited)
}
