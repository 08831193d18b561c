// Package telemetry emits fire-and-forget analytics events. Emitters never
// block a request on network I/O and never report errors to the caller.
package telemetry

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	ProductViewed      = "product_viewed"
	ProductAddedToCart = "product_added_to_cart"
	CartViewed         = "cart_viewed"
	CheckoutStarted    = "checkout_started"
	OrderCompleted     = "order_completed"
)

type Event struct {
	ID         string
	Name       string
	DistinctID string
	Timestamp  time.Time
	Properties map[string]any
}

// NewEvent stamps an event with a fresh id and the current time.
func NewEvent(name, distinctID string, props map[string]any) Event {
	if props == nil {
		props = map[string]any{}
	}
	return Event{
		ID:         uuid.NewString(),
		Name:       name,
		DistinctID: distinctID,
		Timestamp:  time.Now().UTC(),
		Properties: props,
	}
}

type Emitter interface {
	Capture(ctx context.Context, ev Event)
}

// Nop drops every event.
type Nop struct{}

func (Nop) Capture(context.Context, Event) {}

// LogEmitter writes events to a structured logger.
type LogEmitter struct {
	Logger *slog.Logger
}

func (e LogEmitter) Capture(ctx context.Context, ev Event) {
	logger := e.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "analytics event",
		"event", ev.Name,
		"event_id", ev.ID,
		"distinct_id", ev.DistinctID,
		"properties", ev.Properties,
	)
}
