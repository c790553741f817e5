package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	commentModels "github.com/qolzam/telar/apps/feed/comments/models"
	commentMocks "github.com/qolzam/telar/apps/feed/comments/repository/mocks"
	favoriteMocks "github.com/qolzam/telar/apps/feed/favorites/repository/mocks"
	feedErrors "github.com/qolzam/telar/apps/feed/feed/errors"
	"github.com/qolzam/telar/apps/feed/feed/models"
	likeMocks "github.com/qolzam/telar/apps/feed/likes/repository/mocks"
	updateErrors "github.com/qolzam/telar/apps/feed/updates/errors"
	updateModels "github.com/qolzam/telar/apps/feed/updates/models"
	updateRepository "github.com/qolzam/telar/apps/feed/updates/repository"
	updateMocks "github.com/qolzam/telar/apps/feed/updates/repository/mocks"
	userModels "github.com/qolzam/telar/apps/feed/users/models"
	userMocks "github.com/qolzam/telar/apps/feed/users/repository/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type testDeps struct {
	updates   *updateMocks.MockUpdateRepository
	comments  *commentMocks.MockCommentRepository
	likes     *likeMocks.MockLikeRepository
	favorites *favoriteMocks.MockFavoriteRepository
	users     *userMocks.MockUserDirectory
	images    *userMocks.MockImageDirectory
}

func newTestAggregator() (Aggregator, *testDeps) {
	d := &testDeps{
		updates:   new(updateMocks.MockUpdateRepository),
		comments:  new(commentMocks.MockCommentRepository),
		likes:     new(likeMocks.MockLikeRepository),
		favorites: new(favoriteMocks.MockFavoriteRepository),
		users:     new(userMocks.MockUserDirectory),
		images:    new(userMocks.MockImageDirectory),
	}
	return NewAggregator(Dependencies{
		Updates:   d.updates,
		Comments:  d.comments,
		Likes:     d.likes,
		Favorites: d.favorites,
		Users:     d.users,
		Images:    d.images,
	}), d
}

func (d *testDeps) assertExpectations(t *testing.T) {
	d.updates.AssertExpectations(t)
	d.comments.AssertExpectations(t)
	d.likes.AssertExpectations(t)
	d.favorites.AssertExpectations(t)
	d.users.AssertExpectations(t)
	d.images.AssertExpectations(t)
}

func viewer(id int64) *int64 { return &id }

// makeUpdates returns n updates newest first, authored alternately by 10 and 11
func makeUpdates(n int, firstID int64) []*updateModels.Update {
	out := make([]*updateModels.Update, n)
	for i := 0; i < n; i++ {
		id := firstID - int64(i)
		out[i] = &updateModels.Update{ID: id, UserID: 10 + int64(i%2), Content: fmt.Sprintf("u%d", id), CreatedAt: 1000 + id}
	}
	return out
}

func TestListUpdates_EnrichesPageForViewer(t *testing.T) {
	agg, d := newTestAggregator()
	ctx := context.Background()

	// 3 and 2 share a timestamp; the store breaks the tie by id
	page := []*updateModels.Update{
		{ID: 3, UserID: 10, Content: "c", CreatedAt: 200, Likes: 1},
		{ID: 2, UserID: 11, Content: "b", CreatedAt: 200},
		{ID: 1, UserID: 10, Content: "a", CreatedAt: 100, Comments: 2},
	}

	d.updates.On("FindPage", mock.Anything, updateRepository.UpdateFilter{}, models.PageSize, 0).Return(page, nil).Once()
	d.users.On("FindByIDs", mock.Anything, []int64{10, 11}).
		Return([]*userModels.User{{ID: 10, Name: "Ann"}, {ID: 11, Name: "Bob"}}, nil).Once()
	d.images.On("ImagesForUsers", mock.Anything, []int64{10, 11}).
		Return(map[int64]*userModels.Image{10: {ID: 4, UserID: 10}}, nil).Once()
	d.updates.On("TagsForUpdates", mock.Anything, []int64{3, 2, 1}).
		Return(map[int64][]string{3: {"go"}}, nil).Once()
	d.likes.On("LikedUpdateIDs", mock.Anything, int64(20), []int64{3, 2, 1}).
		Return(map[int64]bool{3: true}, nil).Once()
	d.favorites.On("FavoritedUpdateIDs", mock.Anything, int64(20), []int64{3, 2, 1}).
		Return(map[int64]bool{1: true}, nil).Once()

	views, err := agg.ListUpdates(ctx, models.None(), 1, viewer(20))
	require.NoError(t, err)
	require.Len(t, views, 3)

	assert.Equal(t, []int64{3, 2, 1}, []int64{views[0].ID, views[1].ID, views[2].ID})

	assert.True(t, views[0].Liked)
	assert.False(t, views[1].Liked)
	assert.False(t, views[2].Liked)
	assert.True(t, views[2].Favorited)

	assert.Equal(t, "Ann", views[0].Author.Name)
	assert.Equal(t, "Bob", views[1].Author.Name)
	assert.Equal(t, int64(4), views[0].AvatarImageID)
	assert.Equal(t, userModels.NoAvatar, views[1].AvatarImageID)

	assert.Equal(t, []string{"go"}, views[0].Tags)
	assert.Equal(t, []string{}, views[1].Tags)
	assert.Equal(t, 1, views[0].Likes)
	assert.Equal(t, 2, views[2].Comments)

	d.assertExpectations(t)
}

func TestListUpdates_AnonymousViewerIssuesNoLikeQuery(t *testing.T) {
	agg, d := newTestAggregator()

	d.updates.On("FindPage", mock.Anything, mock.Anything, models.PageSize, 0).Return(makeUpdates(2, 2), nil)
	d.users.On("FindByIDs", mock.Anything, mock.Anything).Return([]*userModels.User{}, nil)
	d.images.On("ImagesForUsers", mock.Anything, mock.Anything).Return(map[int64]*userModels.Image{}, nil)
	d.updates.On("TagsForUpdates", mock.Anything, mock.Anything).Return(map[int64][]string{}, nil)

	views, err := agg.ListUpdates(context.Background(), models.None(), 1, nil)
	require.NoError(t, err)
	require.Len(t, views, 2)
	for _, v := range views {
		assert.False(t, v.Liked)
		assert.False(t, v.Favorited)
	}

	d.likes.AssertNotCalled(t, "LikedUpdateIDs", mock.Anything, mock.Anything, mock.Anything)
	d.favorites.AssertNotCalled(t, "FavoritedUpdateIDs", mock.Anything, mock.Anything, mock.Anything)
}

func TestListUpdates_Pagination(t *testing.T) {
	agg, d := newTestAggregator()
	ctx := context.Background()

	all := makeUpdates(11, 11)
	d.updates.On("FindPage", mock.Anything, updateRepository.UpdateFilter{}, 10, 0).Return(all[:10], nil).Once()
	d.updates.On("FindPage", mock.Anything, updateRepository.UpdateFilter{}, 10, 10).Return(all[10:], nil).Once()
	d.updates.On("FindPage", mock.Anything, updateRepository.UpdateFilter{}, 10, 20).Return([]*updateModels.Update{}, nil).Once()
	d.users.On("FindByIDs", mock.Anything, mock.Anything).Return([]*userModels.User{}, nil)
	d.images.On("ImagesForUsers", mock.Anything, mock.Anything).Return(map[int64]*userModels.Image{}, nil)
	d.updates.On("TagsForUpdates", mock.Anything, mock.Anything).Return(map[int64][]string{}, nil)

	first, err := agg.ListUpdates(ctx, models.None(), 1, nil)
	require.NoError(t, err)
	assert.Len(t, first, 10)
	assert.Equal(t, int64(11), first[0].ID)

	second, err := agg.ListUpdates(ctx, models.None(), 2, nil)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, int64(1), second[0].ID)

	third, err := agg.ListUpdates(ctx, models.None(), 3, nil)
	require.NoError(t, err)
	assert.Empty(t, third)

	// an empty page needs no enrichment
	d.users.AssertNumberOfCalls(t, "FindByIDs", 2)
	d.updates.AssertExpectations(t)
}

func TestListUpdates_InvalidArguments(t *testing.T) {
	tests := []struct {
		name   string
		filter models.Filter
		page   int
	}{
		{"page zero", models.None(), 0},
		{"negative page", models.None(), -3},
		{"non positive user", models.ByUser(0), 1},
		{"unknown filter kind", models.Filter{Kind: 42}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg, d := newTestAggregator()

			views, err := agg.ListUpdates(context.Background(), tt.filter, tt.page, nil)
			assert.Nil(t, views)
			assert.ErrorIs(t, err, feedErrors.ErrInvalidArgument)
			d.updates.AssertNotCalled(t, "FindPage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestListUpdates_TagFilter(t *testing.T) {
	t.Run("blank tag returns empty without store access", func(t *testing.T) {
		agg, d := newTestAggregator()

		for _, tag := range []string{"", "   "} {
			views, err := agg.ListUpdates(context.Background(), models.ByTag(tag), 1, viewer(20))
			require.NoError(t, err)
			assert.NotNil(t, views)
			assert.Empty(t, views)
		}
		d.updates.AssertNotCalled(t, "FindPage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("tag is trimmed before matching", func(t *testing.T) {
		agg, d := newTestAggregator()
		tag := "go"

		d.updates.On("FindPage", mock.Anything, updateRepository.UpdateFilter{Tag: &tag}, 10, 0).
			Return([]*updateModels.Update{}, nil).Once()

		views, err := agg.ListUpdates(context.Background(), models.ByTag("  go "), 1, nil)
		require.NoError(t, err)
		assert.Empty(t, views)
		d.updates.AssertExpectations(t)
	})

	t.Run("user filter", func(t *testing.T) {
		agg, d := newTestAggregator()
		userID := int64(10)

		d.updates.On("FindPage", mock.Anything, updateRepository.UpdateFilter{UserID: &userID}, 10, 10).
			Return([]*updateModels.Update{}, nil).Once()

		_, err := agg.ListUpdates(context.Background(), models.ByUser(10), 2, nil)
		require.NoError(t, err)
		d.updates.AssertExpectations(t)
	})
}

func TestListUpdates_EnrichmentFailuresDegrade(t *testing.T) {
	agg, d := newTestAggregator()
	boom := errors.New("collaborator down")

	d.updates.On("FindPage", mock.Anything, mock.Anything, 10, 0).Return(makeUpdates(2, 2), nil)
	d.users.On("FindByIDs", mock.Anything, mock.Anything).Return(nil, boom)
	d.images.On("ImagesForUsers", mock.Anything, mock.Anything).Return(nil, boom)
	d.updates.On("TagsForUpdates", mock.Anything, mock.Anything).Return(nil, boom)
	d.likes.On("LikedUpdateIDs", mock.Anything, int64(20), mock.Anything).Return(nil, boom)
	d.favorites.On("FavoritedUpdateIDs", mock.Anything, int64(20), mock.Anything).Return(nil, boom)

	views, err := agg.ListUpdates(context.Background(), models.None(), 1, viewer(20))
	require.NoError(t, err)
	require.Len(t, views, 2)
	for _, v := range views {
		assert.Nil(t, v.Author)
		assert.Equal(t, userModels.NoAvatar, v.AvatarImageID)
		assert.False(t, v.Liked)
		assert.False(t, v.Favorited)
		assert.Equal(t, []string{}, v.Tags)
	}
}

func TestListUpdates_BaseFailure(t *testing.T) {
	t.Run("transient failure is retryable", func(t *testing.T) {
		agg, d := newTestAggregator()
		d.updates.On("FindPage", mock.Anything, mock.Anything, 10, 0).
			Return(nil, fmt.Errorf("failed to find updates page: %w", &pq.Error{Code: "08006"}))

		_, err := agg.ListUpdates(context.Background(), models.None(), 1, nil)
		assert.ErrorIs(t, err, updateErrors.ErrDatabaseOperation)
	})

	t.Run("other failures are not", func(t *testing.T) {
		agg, d := newTestAggregator()
		d.updates.On("FindPage", mock.Anything, mock.Anything, 10, 0).Return(nil, errors.New("syntax"))

		_, err := agg.ListUpdates(context.Background(), models.None(), 1, nil)
		require.Error(t, err)
		assert.NotErrorIs(t, err, updateErrors.ErrDatabaseOperation)
	})
}

func TestGetUpdate(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		agg, d := newTestAggregator()

		d.updates.On("FindByID", mock.Anything, int64(1)).Return(&updateModels.Update{ID: 1, UserID: 10, Content: "hi"}, nil)
		d.users.On("FindByIDs", mock.Anything, []int64{10}).Return([]*userModels.User{{ID: 10, Name: "Ann"}}, nil)
		d.images.On("ImagesForUsers", mock.Anything, []int64{10}).Return(map[int64]*userModels.Image{}, nil)
		d.updates.On("TagsForUpdates", mock.Anything, []int64{1}).Return(map[int64][]string{1: {"go"}}, nil)
		d.likes.On("LikedUpdateIDs", mock.Anything, int64(10), []int64{1}).Return(map[int64]bool{1: true}, nil)
		d.favorites.On("FavoritedUpdateIDs", mock.Anything, int64(10), []int64{1}).Return(map[int64]bool{}, nil)

		view, err := agg.GetUpdate(context.Background(), 1, viewer(10))
		require.NoError(t, err)
		assert.Equal(t, "hi", view.Content)
		assert.True(t, view.Liked)
		assert.Equal(t, []string{"go"}, view.Tags)
		d.assertExpectations(t)
	})

	t.Run("missing", func(t *testing.T) {
		agg, d := newTestAggregator()
		d.updates.On("FindByID", mock.Anything, int64(9)).Return(nil, updateErrors.ErrUpdateNotFound)

		_, err := agg.GetUpdate(context.Background(), 9, nil)
		assert.ErrorIs(t, err, updateErrors.ErrUpdateNotFound)
	})
}

func TestListComments(t *testing.T) {
	t.Run("enriches comments for viewer", func(t *testing.T) {
		agg, d := newTestAggregator()

		d.updates.On("Exists", mock.Anything, int64(1)).Return(true, nil)
		d.comments.On("FindPageByUpdateID", mock.Anything, int64(1), 10, 0).Return([]*commentModels.Comment{
			{ID: 6, UpdateID: 1, UserID: 20, Content: "second", CreatedAt: 300},
			{ID: 5, UpdateID: 1, UserID: 20, Content: "first", CreatedAt: 200},
		}, nil)
		d.users.On("FindByIDs", mock.Anything, []int64{20}).Return([]*userModels.User{{ID: 20, Name: "Cy"}}, nil)
		d.images.On("ImagesForUsers", mock.Anything, []int64{20}).Return(map[int64]*userModels.Image{20: {ID: 8, UserID: 20}}, nil)
		d.likes.On("LikedCommentIDs", mock.Anything, int64(10), []int64{6, 5}).Return(map[int64]bool{5: true}, nil)

		views, err := agg.ListComments(context.Background(), 1, 1, viewer(10))
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, int64(6), views[0].ID)
		assert.False(t, views[0].Liked)
		assert.True(t, views[1].Liked)
		assert.Equal(t, int64(8), views[1].AvatarImageID)
		assert.Equal(t, "Cy", views[0].Author.Name)
		d.assertExpectations(t)
	})

	t.Run("page zero is invalid", func(t *testing.T) {
		agg, _ := newTestAggregator()
		_, err := agg.ListComments(context.Background(), 1, 0, nil)
		assert.ErrorIs(t, err, feedErrors.ErrInvalidArgument)
	})

	t.Run("anonymous viewer", func(t *testing.T) {
		agg, d := newTestAggregator()
		d.updates.On("Exists", mock.Anything, int64(1)).Return(true, nil)
		d.comments.On("FindPageByUpdateID", mock.Anything, int64(1), 10, 10).Return([]*commentModels.Comment{}, nil)

		views, err := agg.ListComments(context.Background(), 1, 2, nil)
		require.NoError(t, err)
		assert.Empty(t, views)
		d.likes.AssertNotCalled(t, "LikedCommentIDs", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing update is not found", func(t *testing.T) {
		agg, d := newTestAggregator()
		d.updates.On("Exists", mock.Anything, int64(9)).Return(false, nil)

		_, err := agg.ListComments(context.Background(), 9, 1, nil)
		assert.ErrorIs(t, err, updateErrors.ErrUpdateNotFound)
		d.comments.AssertNotCalled(t, "FindPageByUpdateID", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("existence check failure is retryable", func(t *testing.T) {
		agg, d := newTestAggregator()
		d.updates.On("Exists", mock.Anything, int64(1)).Return(false, fmt.Errorf("failed to check update existence: %w", &pq.Error{Code: "08006"}))

		_, err := agg.ListComments(context.Background(), 1, 1, nil)
		assert.ErrorIs(t, err, updateErrors.ErrDatabaseOperation)
		assert.NotErrorIs(t, err, updateErrors.ErrUpdateNotFound)
		d.comments.AssertNotCalled(t, "FindPageByUpdateID", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
