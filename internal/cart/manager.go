package cart

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/fjod/go_storefront/internal/domain"
	"golang.org/x/sync/singleflight"
)

const (
	// SessionIdleTTL is how long an untouched cart stays resident in memory
	SessionIdleTTL = 30 * time.Minute

	// SweepInterval is how often the background sweep runs
	SweepInterval = 5 * time.Minute
)

// Manager resolves cart ids to Store instances, loading from storage on
// first touch and persisting after every mutation. Stores themselves do
// no locking; the Manager serializes mutations per cart.
type Manager struct {
	storage CartStorage
	sfg     singleflight.Group // Prevents duplicate storage loads for same cart

	mu    sync.Mutex
	carts map[string]*session

	stopSweep chan struct{}
	wg        sync.WaitGroup
}

type session struct {
	mu    sync.Mutex
	store *Store
}

func NewManager(storage CartStorage) *Manager {
	return newManager(storage, SweepInterval, SessionIdleTTL)
}

func newManager(storage CartStorage, sweepEvery, idleTTL time.Duration) *Manager {
	m := &Manager{
		storage:   storage,
		carts:     make(map[string]*session),
		stopSweep: make(chan struct{}),
	}

	// Start background sweep goroutine
	m.wg.Add(1)
	go m.sweepLoop(sweepEvery, idleTTL)

	return m
}

// sweepLoop periodically evicts idle carts from memory
func (m *Manager) sweepLoop(every, idleTTL time.Duration) {
	defer m.wg.Done()

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Sweep(idleTTL)
		case <-m.stopSweep:
			return
		}
	}
}

// Close stops the background sweep and waits for it to finish
func (m *Manager) Close() error {
	close(m.stopSweep)
	m.wg.Wait()
	return nil
}

// View returns a snapshot of the cart without mutating it. A cart that
// was never touched comes back empty rather than as an error.
func (m *Manager) View(ctx context.Context, cartID string) (domain.Cart, error) {
	sess, err := m.resolve(ctx, cartID)
	if err != nil {
		return domain.Cart{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.store.Snapshot(), nil
}

// Update runs fn against the cart's store under the per-cart lock, then
// persists the result. The snapshot returned reflects the cart after fn.
func (m *Manager) Update(ctx context.Context, cartID string, fn func(*Store) error) (domain.Cart, error) {
	sess, err := m.resolve(ctx, cartID)
	if err != nil {
		return domain.Cart{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := fn(sess.store); err != nil {
		return domain.Cart{}, err
	}

	snapshot := sess.store.Snapshot()
	if err := m.storage.Save(ctx, &snapshot); err != nil {
		log.Printf("cart save error: %v", err)
		return domain.Cart{}, err
	}

	return snapshot, nil
}

// Drop removes the cart from memory and storage. Used after a
// successful checkout and on explicit user clearing.
func (m *Manager) Drop(ctx context.Context, cartID string) error {
	m.mu.Lock()
	delete(m.carts, cartID)
	m.mu.Unlock()

	if err := m.storage.Delete(ctx, cartID); err != nil {
		log.Printf("cart delete error: %v", err)
		return err
	}
	return nil
}

// resolve returns the in-memory session for the cart, loading it from
// storage at most once even under concurrent first touches.
func (m *Manager) resolve(ctx context.Context, cartID string) (*session, error) {
	m.mu.Lock()
	if sess, ok := m.carts[cartID]; ok {
		m.mu.Unlock()
		return sess, nil
	}
	m.mu.Unlock()

	v, err, _ := m.sfg.Do(cartID, func() (interface{}, error) {
		stored, err := m.storage.Load(ctx, cartID)
		if err != nil && !errors.Is(err, ErrCartNotFound) {
			return nil, err
		}

		var store *Store
		if stored != nil {
			store = Restore(*stored)
		} else {
			store = NewStore(cartID)
		}

		sess := &session{store: store}
		m.mu.Lock()
		// A racing resolve may have registered the session already.
		if existing, ok := m.carts[cartID]; ok {
			sess = existing
		} else {
			m.carts[cartID] = sess
		}
		m.mu.Unlock()
		return sess, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*session), nil
}

// Sweep evicts idle carts from memory; their persisted copies remain in
// storage until the TTL runs out.
func (m *Manager) Sweep(idleFor time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-idleFor)
	evicted := 0
	for id, sess := range m.carts {
		sess.mu.Lock()
		idle := sess.store.cart.UpdatedAt.Before(cutoff)
		sess.mu.Unlock()
		if idle {
			delete(m.carts, id)
			evicted++
		}
	}
	return evicted
}
