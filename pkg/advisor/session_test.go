package advisor

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessorSerializesSameTopic(t *testing.T) {
	acc := NewAccessor(newMemHistory())
	topicID := uuid.New()
	userID := uuid.New()

	h1, err := acc.Acquire(context.Background(), topicID, userID)
	require.NoError(t, err)

	acquired := make(chan struct{})
	go func() {
		h2, err := acc.Acquire(context.Background(), topicID, userID)
		require.NoError(t, err)
		close(acquired)
		h2.Release()
	}()

	select {
	case <-acquired:
		t.Fatal("second acquire succeeded while the topic was held")
	case <-time.After(50 * time.Millisecond):
	}

	h1.Release()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second acquire never proceeded after release")
	}
}

func TestAccessorIndependentTopicsDoNotContend(t *testing.T) {
	acc := NewAccessor(newMemHistory())
	userID := uuid.New()

	h1, err := acc.Acquire(context.Background(), uuid.New(), userID)
	require.NoError(t, err)
	defer h1.Release()

	done := make(chan struct{})
	go func() {
		h2, err := acc.Acquire(context.Background(), uuid.New(), userID)
		require.NoError(t, err)
		h2.Release()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("acquire on an unrelated topic blocked")
	}
}

func TestAcquireReturnsOnContextCancel(t *testing.T) {
	acc := NewAccessor(newMemHistory())
	topicID := uuid.New()
	userID := uuid.New()

	h1, err := acc.Acquire(context.Background(), topicID, userID)
	require.NoError(t, err)
	defer h1.Release()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := acc.Acquire(ctx, topicID, userID)
		errCh <- err
	}()

	cancel()
	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cancelled acquire never returned")
	}
}

func TestHandleReleaseIdempotent(t *testing.T) {
	acc := NewAccessor(newMemHistory())
	topicID := uuid.New()

	h, err := acc.Acquire(context.Background(), topicID, uuid.New())
	require.NoError(t, err)

	h.Release()
	h.Release() // second call is a no-op

	// The topic must be free again.
	h2, err := acc.Acquire(context.Background(), topicID, uuid.New())
	require.NoError(t, err)
	h2.Release()
}

func TestAccessorDropsIdleLocks(t *testing.T) {
	acc := NewAccessor(newMemHistory())
	topicID := uuid.New()

	h, err := acc.Acquire(context.Background(), topicID, uuid.New())
	require.NoError(t, err)
	h.Release()

	acc.mu.Lock()
	defer acc.mu.Unlock()
	assert.Empty(t, acc.locks, "released topics must not leak lock entries")
}
