// Copyright (c) 2024 Telar Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	commentModels "github.com/qolzam/telar/apps/feed/comments/models"
	commentRepository "github.com/qolzam/telar/apps/feed/comments/repository"
	"github.com/qolzam/telar/apps/feed/counters"
	engagementErrors "github.com/qolzam/telar/apps/feed/engagement/errors"
	favoriteModels "github.com/qolzam/telar/apps/feed/favorites/models"
	favoriteRepository "github.com/qolzam/telar/apps/feed/favorites/repository"
	"github.com/qolzam/telar/apps/feed/internal/database/postgres"
	"github.com/qolzam/telar/apps/feed/internal/pkg/log"
	likeModels "github.com/qolzam/telar/apps/feed/likes/models"
	likeRepository "github.com/qolzam/telar/apps/feed/likes/repository"
	"github.com/qolzam/telar/apps/feed/notifications"
	updateErrors "github.com/qolzam/telar/apps/feed/updates/errors"
	updateRepository "github.com/qolzam/telar/apps/feed/updates/repository"
)

// EngagementService records comments, likes and favorites. Each operation
// writes the child row and the matching counter in one transaction, and
// notifies the update's author only after the transaction commits.
type EngagementService interface {
	// AddComment stores a comment on an update and bumps its comment count
	AddComment(ctx context.Context, content string, updateID, authorID int64) (*commentModels.Comment, error)

	// LikeUpdate is idempotent: liking twice returns the existing like
	LikeUpdate(ctx context.Context, updateID, userID int64) (*likeModels.Like, error)

	// UnlikeUpdate is idempotent: removing an absent like does nothing
	UnlikeUpdate(ctx context.Context, updateID, userID int64) error

	// LikeComment and UnlikeComment keep no counter and send no notification
	LikeComment(ctx context.Context, commentID, userID int64) (*likeModels.Like, error)
	UnlikeComment(ctx context.Context, commentID, userID int64) error

	FavoriteUpdate(ctx context.Context, updateID, userID int64) (*favoriteModels.Favorite, error)
	UnfavoriteUpdate(ctx context.Context, updateID, userID int64) error
}

// Dependencies lists what the engagement service writes to
type Dependencies struct {
	Tx         postgres.Transactor
	Updates    updateRepository.UpdateRepository
	Comments   commentRepository.CommentRepository
	Likes      likeRepository.LikeRepository
	Favorites  favoriteRepository.FavoriteRepository
	Counters   counters.Maintainer
	Dispatcher notifications.Dispatcher
}

type engagementService struct {
	deps Dependencies
}

// NewEngagementService creates a new instance of the engagement service
func NewEngagementService(deps Dependencies) EngagementService {
	if deps.Dispatcher == nil {
		deps.Dispatcher = notifications.NoopDispatcher{}
	}
	return &engagementService{deps: deps}
}

// errAlreadyExists aborts a transaction whose insert lost a uniqueness race.
// The stored row is read back after rollback.
var errAlreadyExists = errors.New("row already exists")

type idArg struct {
	name  string
	value int64
}

func validateIDs(args ...idArg) error {
	for _, arg := range args {
		if arg.value <= 0 {
			return fmt.Errorf("%w: %s must be positive", engagementErrors.ErrInvalidArgument, arg.name)
		}
	}
	return nil
}

func (s *engagementService) AddComment(ctx context.Context, content string, updateID, authorID int64) (*commentModels.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: comment content is required", engagementErrors.ErrInvalidArgument)
	}
	if err := validateIDs(idArg{"updateId", updateID}, idArg{"authorId", authorID}); err != nil {
		return nil, err
	}

	comment := &commentModels.Comment{
		Content:  content,
		UpdateID: updateID,
		UserID:   authorID,
	}
	var ownerID int64

	err := s.deps.Tx.WithTransaction(ctx, func(txCtx context.Context) error {
		update, err := s.deps.Updates.FindByID(txCtx, updateID)
		if err != nil {
			return updateErrors.WrapStoreError("load update", err)
		}
		ownerID = update.UserID

		if err := s.deps.Comments.Create(txCtx, comment); err != nil {
			return updateErrors.WrapStoreError("create comment", err)
		}
		if err := s.deps.Counters.IncrementComments(txCtx, updateID); err != nil {
			return updateErrors.WrapStoreError("increment comments", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if ownerID != authorID {
		n := notifications.New(notifications.TypeUpdateComment, ownerID, authorID, updateID)
		n.CommentID = comment.ID
		s.notify(ctx, n)
	}
	return comment, nil
}

func (s *engagementService) LikeUpdate(ctx context.Context, updateID, userID int64) (*likeModels.Like, error) {
	if err := validateIDs(idArg{"updateId", updateID}, idArg{"userId", userID}); err != nil {
		return nil, err
	}

	var (
		like    *likeModels.Like
		created bool
		ownerID int64
	)

	err := s.deps.Tx.WithTransaction(ctx, func(txCtx context.Context) error {
		update, err := s.deps.Updates.FindByID(txCtx, updateID)
		if err != nil {
			return updateErrors.WrapStoreError("load update", err)
		}
		ownerID = update.UserID

		like, created, err = s.deps.Likes.AddUpdateLike(txCtx, updateID, userID)
		if err != nil {
			if postgres.IsUniqueViolation(err) {
				return errAlreadyExists
			}
			return updateErrors.WrapStoreError("add like", err)
		}
		if !created {
			return nil
		}
		if err := s.deps.Counters.IncrementLikes(txCtx, updateID); err != nil {
			return updateErrors.WrapStoreError("increment likes", err)
		}
		return nil
	})
	if errors.Is(err, errAlreadyExists) {
		return s.existingUpdateLike(ctx, updateID, userID)
	}
	if err != nil {
		return nil, err
	}

	if created && ownerID != userID {
		s.notify(ctx, notifications.New(notifications.TypeUpdateLike, ownerID, userID, updateID))
	}
	return like, nil
}

func (s *engagementService) existingUpdateLike(ctx context.Context, updateID, userID int64) (*likeModels.Like, error) {
	like, err := s.deps.Likes.FindUpdateLike(ctx, updateID, userID)
	if err != nil {
		return nil, updateErrors.WrapStoreError("find like", err)
	}
	if like == nil {
		return nil, fmt.Errorf("like on update %d by user %d conflicted but was not found", updateID, userID)
	}
	return like, nil
}

func (s *engagementService) UnlikeUpdate(ctx context.Context, updateID, userID int64) error {
	if err := validateIDs(idArg{"updateId", updateID}, idArg{"userId", userID}); err != nil {
		return err
	}

	return s.deps.Tx.WithTransaction(ctx, func(txCtx context.Context) error {
		deleted, err := s.deps.Likes.DeleteUpdateLike(txCtx, updateID, userID)
		if err != nil {
			return updateErrors.WrapStoreError("delete like", err)
		}
		if !deleted {
			return nil
		}
		if err := s.deps.Counters.DecrementLikes(txCtx, updateID); err != nil {
			return updateErrors.WrapStoreError("decrement likes", err)
		}
		return nil
	})
}

func (s *engagementService) LikeComment(ctx context.Context, commentID, userID int64) (*likeModels.Like, error) {
	if err := validateIDs(idArg{"commentId", commentID}, idArg{"userId", userID}); err != nil {
		return nil, err
	}

	var like *likeModels.Like
	err := s.deps.Tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if _, err := s.deps.Comments.FindByID(txCtx, commentID); err != nil {
			return updateErrors.WrapStoreError("load comment", err)
		}

		var err error
		like, _, err = s.deps.Likes.AddCommentLike(txCtx, commentID, userID)
		if err != nil {
			if postgres.IsUniqueViolation(err) {
				return errAlreadyExists
			}
			return updateErrors.WrapStoreError("add comment like", err)
		}
		return nil
	})
	if errors.Is(err, errAlreadyExists) {
		like, err = s.deps.Likes.FindCommentLike(ctx, commentID, userID)
		if err != nil {
			return nil, updateErrors.WrapStoreError("find comment like", err)
		}
		if like == nil {
			return nil, fmt.Errorf("like on comment %d by user %d conflicted but was not found", commentID, userID)
		}
		return like, nil
	}
	if err != nil {
		return nil, err
	}
	return like, nil
}

func (s *engagementService) UnlikeComment(ctx context.Context, commentID, userID int64) error {
	if err := validateIDs(idArg{"commentId", commentID}, idArg{"userId", userID}); err != nil {
		return err
	}

	if _, err := s.deps.Likes.DeleteCommentLike(ctx, commentID, userID); err != nil {
		return updateErrors.WrapStoreError("delete comment like", err)
	}
	return nil
}

func (s *engagementService) FavoriteUpdate(ctx context.Context, updateID, userID int64) (*favoriteModels.Favorite, error) {
	if err := validateIDs(idArg{"updateId", updateID}, idArg{"userId", userID}); err != nil {
		return nil, err
	}

	var (
		favorite *favoriteModels.Favorite
		created  bool
		ownerID  int64
	)

	err := s.deps.Tx.WithTransaction(ctx, func(txCtx context.Context) error {
		update, err := s.deps.Updates.FindByID(txCtx, updateID)
		if err != nil {
			return updateErrors.WrapStoreError("load update", err)
		}
		ownerID = update.UserID

		favorite, created, err = s.deps.Favorites.Add(txCtx, updateID, userID)
		if err != nil {
			if postgres.IsUniqueViolation(err) {
				return errAlreadyExists
			}
			return updateErrors.WrapStoreError("add favorite", err)
		}
		if !created {
			return nil
		}
		if err := s.deps.Counters.IncrementFavorites(txCtx, updateID); err != nil {
			return updateErrors.WrapStoreError("increment favorites", err)
		}
		return nil
	})
	if errors.Is(err, errAlreadyExists) {
		favorite, err = s.deps.Favorites.Find(ctx, updateID, userID)
		if err != nil {
			return nil, updateErrors.WrapStoreError("find favorite", err)
		}
		if favorite == nil {
			return nil, fmt.Errorf("favorite on update %d by user %d conflicted but was not found", updateID, userID)
		}
		return favorite, nil
	}
	if err != nil {
		return nil, err
	}

	if created && ownerID != userID {
		s.notify(ctx, notifications.New(notifications.TypeUpdateFavorite, ownerID, userID, updateID))
	}
	return favorite, nil
}

func (s *engagementService) UnfavoriteUpdate(ctx context.Context, updateID, userID int64) error {
	if err := validateIDs(idArg{"updateId", updateID}, idArg{"userId", userID}); err != nil {
		return err
	}

	return s.deps.Tx.WithTransaction(ctx, func(txCtx context.Context) error {
		deleted, err := s.deps.Favorites.Delete(txCtx, updateID, userID)
		if err != nil {
			return updateErrors.WrapStoreError("delete favorite", err)
		}
		if !deleted {
			return nil
		}
		if err := s.deps.Counters.DecrementFavorites(txCtx, updateID); err != nil {
			return updateErrors.WrapStoreError("decrement favorites", err)
		}
		return nil
	})
}

// notify hands n to the dispatcher. The engagement is already committed, so
// a failed dispatch is logged and not returned.
func (s *engagementService) notify(ctx context.Context, n notifications.Notification) {
	if err := s.deps.Dispatcher.Dispatch(ctx, n); err != nil {
		log.ErrorWithContext(ctx, "failed to dispatch %s notification to user %d: %v", n.Type, n.RecipientID, err)
	}
}
