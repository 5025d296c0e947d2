package api

import (
	"context"
	"sync"

	"github.com/dmitrymomot/billingkit/pkg/billing"
)

// UserStore keeps the user records the billing flows read and replace.
type UserStore interface {
	Get(ctx context.Context, id string) (billing.User, error)
	Save(ctx context.Context, user billing.User) error
}

type memoryUsers struct {
	mu    sync.RWMutex
	users map[string]billing.User
}

// NewMemoryUsers returns a UserStore that creates users on first sight.
func NewMemoryUsers() UserStore {
	return &memoryUsers{users: make(map[string]billing.User)}
}

func (m *memoryUsers) Get(_ context.Context, id string) (billing.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return billing.User{ID: id}, nil
}

func (m *memoryUsers) Save(_ context.Context, user billing.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
	return nil
}
