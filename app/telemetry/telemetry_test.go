package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/posthog/posthog-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	messages []posthog.Message
	err      error
	closed   bool
}

func (f *fakeClient) Enqueue(m posthog.Message) error {
	f.messages = append(f.messages, m)
	return f.err
}

func (f *fakeClient) Close() error {
	f.closed = true
	return nil
}

func TestNewEvent(t *testing.T) {
	a := NewEvent(CartViewed, "sess", nil)
	b := NewEvent(CartViewed, "sess", nil)

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.NotNil(t, a.Properties)
	assert.False(t, a.Timestamp.IsZero())
}

func TestPostHogEmitter(t *testing.T) {
	client := &fakeClient{}
	e := newPostHogEmitter(client, nil)

	ev := NewEvent(OrderCompleted, "sess", map[string]any{"total": 27.5})
	e.Capture(context.Background(), ev)

	require.Len(t, client.messages, 1)
	msg, ok := client.messages[0].(posthog.Capture)
	require.True(t, ok)
	assert.Equal(t, "sess", msg.DistinctId)
	assert.Equal(t, OrderCompleted, msg.Event)
	assert.Equal(t, 27.5, msg.Properties["total"])
	assert.Equal(t, ev.ID, msg.Properties["event_id"])

	require.NoError(t, e.Close())
	assert.True(t, client.closed)
}

func TestPostHogEmitter_EnqueueErrorIsSwallowed(t *testing.T) {
	client := &fakeClient{err: errors.New("queue full")}
	e := newPostHogEmitter(client, nil)

	assert.NotPanics(t, func() {
		e.Capture(context.Background(), NewEvent(CartViewed, "sess", nil))
	})
}
