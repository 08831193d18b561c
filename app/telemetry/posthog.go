package telemetry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/posthog/posthog-go"
)

type enqueuer interface {
	Enqueue(posthog.Message) error
	Close() error
}

// PostHogEmitter forwards events to PostHog. The client batches and flushes
// in the background; Capture only enqueues.
type PostHogEmitter struct {
	client enqueuer
	logger *slog.Logger
}

func NewPostHogEmitter(apiKey, endpoint string, logger *slog.Logger) (*PostHogEmitter, error) {
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: endpoint})
	if err != nil {
		return nil, fmt.Errorf("create posthog client: %w", err)
	}
	return newPostHogEmitter(client, logger), nil
}

func newPostHogEmitter(client enqueuer, logger *slog.Logger) *PostHogEmitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostHogEmitter{client: client, logger: logger}
}

func (e *PostHogEmitter) Capture(ctx context.Context, ev Event) {
	props := posthog.NewProperties()
	for k, v := range ev.Properties {
		props.Set(k, v)
	}
	props.Set("event_id", ev.ID)

	err := e.client.Enqueue(posthog.Capture{
		DistinctId: ev.DistinctID,
		Event:      ev.Name,
		Timestamp:  ev.Timestamp,
		Properties: props,
	})
	if err != nil {
		e.logger.WarnContext(ctx, "drop analytics event", "event", ev.Name, "error", err)
	}
}

// Close flushes pending events.
func (e *PostHogEmitter) Close() error {
	return e.client.Close()
}
