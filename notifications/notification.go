// Copyright (c) 2024 Telar Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package notifications publishes engagement events to the owner of the
// engaged content. Delivery beyond the publish call belongs to the backend.
package notifications

import (
	"context"
	"time"
)

// Type identifies the engagement that produced a notification
type Type string

const (
	TypeUpdateComment  Type = "UPDATE_COMMENT"
	TypeUpdateLike     Type = "UPDATE_LIKE"
	TypeUpdateFavorite Type = "UPDATE_FAVORITE"
)

// Notification tells RecipientID that ActorID engaged with one of their
// updates. Notifications are not persisted by the feed.
type Notification struct {
	RecipientID int64 `json:"recipientId"`
	Type        Type  `json:"type"`
	UpdateID    int64 `json:"updateId"`
	CommentID   int64 `json:"commentId,omitempty"`
	ActorID     int64 `json:"actorId"`
	CreatedAt   int64 `json:"createdAt"`
}

// New builds a notification stamped with the current time
func New(t Type, recipientID, actorID, updateID int64) Notification {
	return Notification{
		RecipientID: recipientID,
		Type:        t,
		UpdateID:    updateID,
		ActorID:     actorID,
		CreatedAt:   time.Now().Unix(),
	}
}

// Dispatcher hands notifications to a delivery backend
type Dispatcher interface {
	Dispatch(ctx context.Context, n Notification) error
	Close() error
}
