package poll

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSleep_Completes(t *testing.T) {
	assert.True(t, Sleep(context.Background(), time.Millisecond))
	assert.True(t, Sleep(context.Background(), 0))
}

func TestSleep_ObservesCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	assert.False(t, Sleep(ctx, time.Minute))
	assert.Less(t, time.Since(start), time.Second)
	assert.False(t, Sleep(ctx, 0))
}

func TestBackoff(t *testing.T) {
	b := NewBackoff(100 * time.Millisecond)

	wait, ok := b.Failed()
	assert.True(t, ok)
	assert.Equal(t, 200*time.Millisecond, wait)

	wait, ok = b.Failed()
	assert.True(t, ok)
	assert.Equal(t, 400*time.Millisecond, wait)

	b.Succeeded()
	assert.Equal(t, 0, b.Failures())

	for i := 0; i < DefaultMaxFailures; i++ {
		_, ok = b.Failed()
		assert.True(t, ok)
	}
	_, ok = b.Failed()
	assert.False(t, ok)
}

func TestBackoff_CapsWait(t *testing.T) {
	b := &Backoff{Interval: 8 * time.Second, MaxFailures: 5}
	wait, ok := b.Failed()
	assert.True(t, ok)
	assert.Equal(t, maxBackoff, wait)
}
