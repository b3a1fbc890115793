package domain

import (
	"context"

	"github.com/google/uuid"
)

// MatchBatchEvent is published after a fresh match batch has been computed so
// the hosting platform can fan out notifications. It is best-effort: publish
// failures never fail the matching call.
type MatchBatchEvent struct {
	ID        uuid.UUID
	EventType string
	Topic     string
	JobID     uuid.UUID
	Payload   []byte
}

// MatchEventPublisher publishes match-batch events to the platform's event bus.
type MatchEventPublisher interface {
	PublishEvent(ctx context.Context, event MatchBatchEvent) error
}
