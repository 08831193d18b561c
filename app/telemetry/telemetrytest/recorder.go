// Package telemetrytest provides an in-memory emitter for handler tests.
package telemetrytest

import (
	"context"
	"sync"

	"github.com/mytheresa/storefront/app/telemetry"
)

// Recorder keeps events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []telemetry.Event
}

func (r *Recorder) Capture(_ context.Context, ev telemetry.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

// Events returns a copy of everything captured so far.
func (r *Recorder) Events() []telemetry.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]telemetry.Event, len(r.events))
	copy(out, r.events)
	return out
}

// Names returns the captured event names in order.
func (r *Recorder) Names() []string {
	events := r.Events()
	names := make([]string, len(events))
	for i, ev := range events {
		names[i] = ev.Name
	}
	return names
}
