package prober

import (
	"context"

	"github.com/samvad-hq/placeholder-client/pkg/publishers"
)

// StatusStore remembers the last status per check.
type StatusStore interface {
	LastStatus(checkID string) (string, bool, error)
	RecordStatus(checkID, status string) error
}

// EventPublisher publishes status changes downstream.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}
