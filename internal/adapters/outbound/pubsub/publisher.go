package pubsub

import (
	"context"

	pubsubV2 "cloud.google.com/go/pubsub/v2"
	"github.com/cleitonmarx/symbiont/depend"
	"github.com/cleitonmarx/talentmatch/internal/domain"
	"github.com/cleitonmarx/talentmatch/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// MatchEventPublisher implements domain.MatchEventPublisher using Google Cloud Pub/Sub
type MatchEventPublisher struct {
	Client *pubsubV2.Client
}

// NewMatchEventPublisher creates a new instance of MatchEventPublisher
func NewMatchEventPublisher(client *pubsubV2.Client) MatchEventPublisher {
	return MatchEventPublisher{Client: client}
}

// PublishEvent publishes the given event to the appropriate Pub/Sub topic
func (p MatchEventPublisher) PublishEvent(ctx context.Context, event domain.MatchBatchEvent) error {
	spanCtx, span := telemetry.Start(ctx,
		trace.WithAttributes(
			attribute.String("event_id", event.ID.String()),
			attribute.String("event_type", event.EventType),
			attribute.String("topic", event.Topic),
		),
	)
	defer span.End()

	result := p.Client.Publisher(event.Topic).Publish(spanCtx, &pubsubV2.Message{
		Data: event.Payload,
		Attributes: map[string]string{
			"event_type": event.EventType,
			"job_id":     event.JobID.String(),
		},
	})

	_, err := result.Get(ctx)
	telemetry.RecordErrorAndStatus(span, err)
	return err
}

// InitPublisher initializes the MatchEventPublisher implementation
type InitPublisher struct {
	Client *pubsubV2.Client `resolve:""`
}

// Initialize registers the MatchEventPublisher as the implementation of domain.MatchEventPublisher
func (i *InitPublisher) Initialize(ctx context.Context) (context.Context, error) {
	depend.Register[domain.MatchEventPublisher](NewMatchEventPublisher(i.Client))
	return ctx, nil
}
