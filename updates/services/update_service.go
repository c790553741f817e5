// Copyright (c) 2024 Telar Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/qolzam/telar/apps/feed/internal/database/postgres"
	"github.com/qolzam/telar/apps/feed/internal/pkg/log"
	updateErrors "github.com/qolzam/telar/apps/feed/updates/errors"
	"github.com/qolzam/telar/apps/feed/updates/models"
	"github.com/qolzam/telar/apps/feed/updates/repository"
)

// UpdateService defines the write and lookup operations on updates
type UpdateService interface {
	// CreateUpdate stores a new update and its tags in one transaction
	CreateUpdate(ctx context.Context, req *models.CreateUpdateRequest, userID int64) (*models.Update, error)

	// GetUpdate returns an update with its tags
	GetUpdate(ctx context.Context, id int64) (*models.Update, error)

	// ListUserUpdates returns every update by a user, newest first
	ListUserUpdates(ctx context.Context, userID int64) ([]*models.Update, error)
}

type updateService struct {
	repo repository.UpdateRepository
	tx   postgres.Transactor
}

// NewUpdateService creates a new instance of the update service
func NewUpdateService(repo repository.UpdateRepository, tx postgres.Transactor) UpdateService {
	return &updateService{repo: repo, tx: tx}
}

func (s *updateService) CreateUpdate(ctx context.Context, req *models.CreateUpdateRequest, userID int64) (*models.Update, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty request", updateErrors.ErrInvalidUpdateData)
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", updateErrors.ErrInvalidUpdateData)
	}
	if userID <= 0 {
		return nil, fmt.Errorf("%w: author is required", updateErrors.ErrInvalidUpdateData)
	}

	update := &models.Update{
		UserID:  userID,
		Content: content,
	}
	tags := models.NormalizeTags(req.Tags)

	err := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.repo.Create(txCtx, update); err != nil {
			return updateErrors.WrapStoreError("create update", err)
		}
		if len(tags) > 0 {
			if err := s.repo.AttachTags(txCtx, update.ID, tags); err != nil {
				return updateErrors.WrapStoreError("attach tags", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(tags) > 0 {
		update.Tags = tags
	}
	log.InfoWithContext(ctx, "update %d created by user %d", update.ID, userID)
	return update, nil
}

func (s *updateService) GetUpdate(ctx context.Context, id int64) (*models.Update, error) {
	update, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, updateErrors.WrapStoreError("get update", err)
	}

	tags, err := s.repo.TagsForUpdates(ctx, []int64{id})
	if err != nil {
		log.WarnWithContext(ctx, "tags unavailable for update %d: %v", id, err)
		return update, nil
	}
	update.Tags = tags[id]
	return update, nil
}

func (s *updateService) ListUserUpdates(ctx context.Context, userID int64) ([]*models.Update, error) {
	updates, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, updateErrors.WrapStoreError("list user updates", err)
	}
	return updates, nil
}
