package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowDrainsBucket(t *testing.T) {
	l := New()
	assert.True(t, l.Allow("k", 2, 0))
	assert.True(t, l.Allow("k", 2, 0))
	assert.False(t, l.Allow("k", 2, 0))
	assert.True(t, l.Allow("other", 1, 0))
}

func TestWaitRespectsContext(t *testing.T) {
	l := New()
	require.True(t, l.Allow("k", 1, 0))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, l.Wait(ctx, "k", 1, 0), context.DeadlineExceeded)
}

func TestWaitRefills(t *testing.T) {
	l := New()
	require.True(t, l.Allow("k", 1, 100))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, l.Wait(ctx, "k", 1, 100))
}
