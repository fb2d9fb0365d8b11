package cart

import (
	"context"
	"sync"

	"github.com/fjod/go_storefront/internal/domain"
)

// MemoryStorage implements CartStorage with in-memory storage, used
// when no redis address is configured and in tests.
type MemoryStorage struct {
	mu    sync.RWMutex
	carts map[string]domain.Cart
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		carts: make(map[string]domain.Cart),
	}
}

func (m *MemoryStorage) Load(_ context.Context, cartID string) (*domain.Cart, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cart, exists := m.carts[cartID]
	if !exists {
		return nil, ErrCartNotFound
	}
	out := cart.Clone()
	return &out, nil
}

func (m *MemoryStorage) Save(_ context.Context, cart *domain.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.carts[cart.ID] = cart.Clone()
	return nil
}

func (m *MemoryStorage) Delete(_ context.Context, cartID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.carts, cartID)
	return nil
}
