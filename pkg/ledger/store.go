package ledger

import (
	"context"
	"slices"
	"sync"
)

// Store is an append-only billing history.
type Store interface {
	// Append records e. An entry with an already recorded ID is rejected with
	// ErrDuplicateEntry.
	Append(ctx context.Context, e Entry) error
	// ListBySubscription returns entries for a subscription in append order.
	ListBySubscription(ctx context.Context, subscriptionID string) ([]Entry, error)
}

type memoryStore struct {
	mu    sync.RWMutex
	ids   map[string]struct{}
	bySub map[string][]Entry
}

// NewMemoryStore returns an in-process Store.
func NewMemoryStore() Store {
	return &memoryStore{
		ids:   make(map[string]struct{}),
		bySub: make(map[string][]Entry),
	}
}

func (m *memoryStore) Append(_ context.Context, e Entry) error {
	if err := validateEntry(e); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.ids[e.ID]; ok {
		return ErrDuplicateEntry
	}
	m.ids[e.ID] = struct{}{}
	m.bySub[e.SubscriptionID] = append(m.bySub[e.SubscriptionID], e)
	return nil
}

func (m *memoryStore) ListBySubscription(_ context.Context, subscriptionID string) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.bySub[subscriptionID]), nil
}
