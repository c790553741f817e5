// Copyright (c) 2024 Telar Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"fmt"

	commentModels "github.com/qolzam/telar/apps/feed/comments/models"
	commentRepository "github.com/qolzam/telar/apps/feed/comments/repository"
	favoriteRepository "github.com/qolzam/telar/apps/feed/favorites/repository"
	feedErrors "github.com/qolzam/telar/apps/feed/feed/errors"
	"github.com/qolzam/telar/apps/feed/feed/models"
	"github.com/qolzam/telar/apps/feed/internal/pkg/log"
	likeRepository "github.com/qolzam/telar/apps/feed/likes/repository"
	updateErrors "github.com/qolzam/telar/apps/feed/updates/errors"
	updateModels "github.com/qolzam/telar/apps/feed/updates/models"
	updateRepository "github.com/qolzam/telar/apps/feed/updates/repository"
	userModels "github.com/qolzam/telar/apps/feed/users/models"
	userRepository "github.com/qolzam/telar/apps/feed/users/repository"
)

// Aggregator assembles feed pages. Every page costs a fixed number of
// queries regardless of its length: one for the base rows and at most one
// per enrichment.
type Aggregator interface {
	// ListUpdates returns a page of updates newest first. viewerID is nil
	// for anonymous readers, who never get like or favorite state.
	ListUpdates(ctx context.Context, filter models.Filter, page int, viewerID *int64) ([]models.UpdateView, error)

	// ListComments returns a page of an update's comments newest first
	ListComments(ctx context.Context, updateID int64, page int, viewerID *int64) ([]models.CommentView, error)

	// GetUpdate returns a single enriched update
	GetUpdate(ctx context.Context, updateID int64, viewerID *int64) (*models.UpdateView, error)
}

// Dependencies lists the stores the aggregator reads from
type Dependencies struct {
	Updates   updateRepository.UpdateRepository
	Comments  commentRepository.CommentRepository
	Likes     likeRepository.LikeRepository
	Favorites favoriteRepository.FavoriteRepository
	Users     userRepository.UserDirectory
	Images    userRepository.ImageDirectory
}

type aggregator struct {
	deps Dependencies
}

// NewAggregator creates a new feed aggregator
func NewAggregator(deps Dependencies) Aggregator {
	return &aggregator{deps: deps}
}

func pageOffset(page int) (int, error) {
	if page < 1 {
		return 0, fmt.Errorf("%w: page must be >= 1, got %d", feedErrors.ErrInvalidArgument, page)
	}
	return (page - 1) * models.PageSize, nil
}

func (a *aggregator) ListUpdates(ctx context.Context, filter models.Filter, page int, viewerID *int64) ([]models.UpdateView, error) {
	offset, err := pageOffset(page)
	if err != nil {
		return nil, err
	}

	var storeFilter updateRepository.UpdateFilter
	switch filter.Kind {
	case models.FilterNone:
	case models.FilterByUser:
		if filter.UserID <= 0 {
			return nil, fmt.Errorf("%w: user id must be positive", feedErrors.ErrInvalidArgument)
		}
		storeFilter.UserID = &filter.UserID
	case models.FilterByTag:
		tag := updateModels.NormalizeTag(filter.Tag)
		if tag == "" {
			return []models.UpdateView{}, nil
		}
		storeFilter.Tag = &tag
	default:
		return nil, fmt.Errorf("%w: unknown filter", feedErrors.ErrInvalidArgument)
	}

	updates, err := a.deps.Updates.FindPage(ctx, storeFilter, models.PageSize, offset)
	if err != nil {
		return nil, updateErrors.WrapStoreError("list updates", err)
	}

	return a.enrichUpdates(ctx, updates, viewerID), nil
}

func (a *aggregator) GetUpdate(ctx context.Context, updateID int64, viewerID *int64) (*models.UpdateView, error) {
	update, err := a.deps.Updates.FindByID(ctx, updateID)
	if err != nil {
		return nil, updateErrors.WrapStoreError("get update", err)
	}

	views := a.enrichUpdates(ctx, []*updateModels.Update{update}, viewerID)
	return &views[0], nil
}

func (a *aggregator) ListComments(ctx context.Context, updateID int64, page int, viewerID *int64) ([]models.CommentView, error) {
	offset, err := pageOffset(page)
	if err != nil {
		return nil, err
	}

	exists, err := a.deps.Updates.Exists(ctx, updateID)
	if err != nil {
		return nil, updateErrors.WrapStoreError("check update", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %d", updateErrors.ErrUpdateNotFound, updateID)
	}

	comments, err := a.deps.Comments.FindPageByUpdateID(ctx, updateID, models.PageSize, offset)
	if err != nil {
		return nil, updateErrors.WrapStoreError("list comments", err)
	}

	return a.enrichComments(ctx, comments, viewerID), nil
}

func (a *aggregator) enrichUpdates(ctx context.Context, updates []*updateModels.Update, viewerID *int64) []models.UpdateView {
	views := make([]models.UpdateView, len(updates))
	if len(updates) == 0 {
		return views
	}

	ids := make([]int64, len(updates))
	authorIDs := make([]int64, len(updates))
	for i, u := range updates {
		ids[i] = u.ID
		authorIDs[i] = u.UserID
		views[i] = models.UpdateView{
			ID:            u.ID,
			UserID:        u.UserID,
			Content:       u.Content,
			CreatedAt:     u.CreatedAt,
			Likes:         u.Likes,
			Comments:      u.Comments,
			Favorites:     u.Favorites,
			Tags:          []string{},
			AvatarImageID: userModels.NoAvatar,
		}
	}

	authors, avatars := a.loadAuthors(ctx, authorIDs)
	tags := a.loadTags(ctx, ids)

	var liked, favorited map[int64]bool
	if viewerID != nil {
		liked = a.loadLikedUpdates(ctx, *viewerID, ids)
		favorited = a.loadFavorited(ctx, *viewerID, ids)
	}

	for i := range views {
		v := &views[i]
		v.Author = authors[v.UserID]
		if image, ok := avatars[v.UserID]; ok {
			v.AvatarImageID = image.ID
		}
		if t, ok := tags[v.ID]; ok {
			v.Tags = t
		}
		v.Liked = liked[v.ID]
		v.Favorited = favorited[v.ID]
	}
	return views
}

func (a *aggregator) enrichComments(ctx context.Context, comments []*commentModels.Comment, viewerID *int64) []models.CommentView {
	views := make([]models.CommentView, len(comments))
	if len(comments) == 0 {
		return views
	}

	ids := make([]int64, len(comments))
	authorIDs := make([]int64, len(comments))
	for i, c := range comments {
		ids[i] = c.ID
		authorIDs[i] = c.UserID
		views[i] = models.CommentView{
			ID:            c.ID,
			UpdateID:      c.UpdateID,
			UserID:        c.UserID,
			Content:       c.Content,
			CreatedAt:     c.CreatedAt,
			AvatarImageID: userModels.NoAvatar,
		}
	}

	authors, avatars := a.loadAuthors(ctx, authorIDs)

	var liked map[int64]bool
	if viewerID != nil {
		var err error
		liked, err = a.deps.Likes.LikedCommentIDs(ctx, *viewerID, ids)
		if err != nil {
			log.WarnWithContext(ctx, "comment like state unavailable: %v", err)
		}
	}

	for i := range views {
		v := &views[i]
		v.Author = authors[v.UserID]
		if image, ok := avatars[v.UserID]; ok {
			v.AvatarImageID = image.ID
		}
		v.Liked = liked[v.ID]
	}
	return views
}

// loadAuthors resolves users and avatars for the distinct author ids of a
// page. Failures leave the author absent and the avatar at its sentinel.
func (a *aggregator) loadAuthors(ctx context.Context, authorIDs []int64) (map[int64]*userModels.User, map[int64]*userModels.Image) {
	distinct := uniqueIDs(authorIDs)
	authors := make(map[int64]*userModels.User, len(distinct))

	users, err := a.deps.Users.FindByIDs(ctx, distinct)
	if err != nil {
		log.WarnWithContext(ctx, "authors unavailable: %v", err)
	}
	for _, u := range users {
		authors[u.ID] = u
	}

	avatars, err := a.deps.Images.ImagesForUsers(ctx, distinct)
	if err != nil {
		log.WarnWithContext(ctx, "avatars unavailable: %v", err)
		avatars = nil
	}
	return authors, avatars
}

func (a *aggregator) loadTags(ctx context.Context, updateIDs []int64) map[int64][]string {
	tags, err := a.deps.Updates.TagsForUpdates(ctx, updateIDs)
	if err != nil {
		log.WarnWithContext(ctx, "tags unavailable: %v", err)
		return nil
	}
	return tags
}

func (a *aggregator) loadLikedUpdates(ctx context.Context, viewerID int64, updateIDs []int64) map[int64]bool {
	liked, err := a.deps.Likes.LikedUpdateIDs(ctx, viewerID, updateIDs)
	if err != nil {
		log.WarnWithContext(ctx, "like state unavailable for viewer %d: %v", viewerID, err)
		return nil
	}
	return liked
}

func (a *aggregator) loadFavorited(ctx context.Context, viewerID int64, updateIDs []int64) map[int64]bool {
	favorited, err := a.deps.Favorites.FavoritedUpdateIDs(ctx, viewerID, updateIDs)
	if err != nil {
		log.WarnWithContext(ctx, "favorite state unavailable for viewer %d: %v", viewerID, err)
		return nil
	}
	return favorited
}

// uniqueIDs keeps the first occurrence of each id
func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
