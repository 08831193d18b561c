package telemetrytest

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mytheresa/storefront/app/telemetry"
)

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	r.Capture(context.Background(), telemetry.NewEvent(telemetry.ProductViewed, "a", nil))
	r.Capture(context.Background(), telemetry.NewEvent(telemetry.CartViewed, "a", nil))

	assert.Equal(t, []string{telemetry.ProductViewed, telemetry.CartViewed}, r.Names())
}

func TestRecorder_Concurrent(t *testing.T) {
	r := &Recorder{}
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Capture(context.Background(), telemetry.NewEvent(telemetry.CartViewed, "a", nil))
		}()
	}
	wg.Wait()

	assert.Len(t, r.Events(), 10)
}
