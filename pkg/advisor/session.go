package advisor

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Accessor hands out scoped history handles with per-topic
// serialization: a second turn on the same topic blocks until the prior
// turn reached a terminal state. Turns on different topics do not
// contend.
type Accessor struct {
	store HistoryStore

	mu    sync.Mutex
	locks map[uuid.UUID]*topicLock
}

type topicLock struct {
	sem  chan struct{} // capacity 1
	refs int
}

func NewAccessor(store HistoryStore) *Accessor {
	return &Accessor{
		store: store,
		locks: make(map[uuid.UUID]*topicLock),
	}
}

// Acquire blocks until the topic is free or ctx is done. The returned
// handle must be released exactly once; Release is idempotent so every
// exit path can call it safely.
func (a *Accessor) Acquire(ctx context.Context, topicID, userID uuid.UUID) (*Handle, error) {
	a.mu.Lock()
	lock, ok := a.locks[topicID]
	if !ok {
		lock = &topicLock{sem: make(chan struct{}, 1)}
		a.locks[topicID] = lock
	}
	lock.refs++
	a.mu.Unlock()

	select {
	case lock.sem <- struct{}{}:
	case <-ctx.Done():
		a.unref(topicID, lock)
		return nil, ctx.Err()
	}

	return &Handle{
		topicID: topicID,
		userID:  userID,
		store:   a.store,
		acc:     a,
		lock:    lock,
	}, nil
}

func (a *Accessor) unref(topicID uuid.UUID, lock *topicLock) {
	a.mu.Lock()
	lock.refs--
	if lock.refs == 0 {
		delete(a.locks, topicID)
	}
	a.mu.Unlock()
}

// Handle is the scoped history accessor for one turn. It is exclusively
// owned by that turn and not shared.
type Handle struct {
	topicID uuid.UUID
	userID  uuid.UUID
	store   HistoryStore
	acc     *Accessor
	lock    *topicLock
	once    sync.Once
}

func (h *Handle) TopicID() uuid.UUID { return h.topicID }

func (h *Handle) History(ctx context.Context) ([]Turn, error) {
	return h.store.History(ctx, h.topicID)
}

func (h *Handle) Append(ctx context.Context, role, content string) error {
	return h.store.AppendTurn(ctx, h.topicID, h.userID, role, content)
}

// Release frees the topic for the next turn. Safe to call more than
// once; only the first call has effect.
func (h *Handle) Release() {
	h.once.Do(func() {
		<-h.lock.sem
		h.acc.unref(h.topicID, h.lock)
	})
}
