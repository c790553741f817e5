package notifications

import (
	"context"

	"github.com/qolzam/telar/apps/feed/internal/pkg/log"
)

// LogDispatcher writes notifications to the process log
type LogDispatcher struct{}

// NewLogDispatcher creates a LogDispatcher
func NewLogDispatcher() *LogDispatcher {
	return &LogDispatcher{}
}

func (d *LogDispatcher) Dispatch(ctx context.Context, n Notification) error {
	log.InfoWithContext(ctx, "notify user %d: %s on update %d by user %d", n.RecipientID, n.Type, n.UpdateID, n.ActorID)
	return nil
}

func (d *LogDispatcher) Close() error { return nil }

// NoopDispatcher drops every notification
type NoopDispatcher struct{}

func (NoopDispatcher) Dispatch(context.Context, Notification) error { return nil }

func (NoopDispatcher) Close() error { return nil }
