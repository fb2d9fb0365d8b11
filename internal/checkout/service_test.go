package checkout

import (
	"context"
	"testing"

	"github.com/fjod/go_storefront/internal/cart"
	"github.com/fjod/go_storefront/internal/client"
	"github.com/fjod/go_storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockOrderCreator struct {
	created *domain.OrderDraft
	calls   int
	order   *domain.Order
	err     error
}

func (m *mockOrderCreator) CreateOrder(_ context.Context, _ client.Credentials, draft domain.OrderDraft) (*domain.Order, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	m.created = &draft
	return m.order, nil
}

func setupCart(t *testing.T, carts *cart.Manager) {
	t.Helper()
	_, err := carts.Update(context.Background(), "c1", func(s *cart.Store) error {
		s.AddItem(domain.Product{ID: 1, Name: "widget", Price: 10}, 2)
		s.AddItem(domain.Product{ID: 2, Name: "gadget", Price: 5}, 3)
		return nil
	})
	require.NoError(t, err)
}

func TestSubmit_Success(t *testing.T) {
	carts := cart.NewManager(cart.NewMemoryStorage())
	setupCart(t, carts)

	creator := &mockOrderCreator{
		order: &domain.Order{ID: 7, Status: domain.OrderStatusPending, TotalAmount: 35},
	}
	svc := NewService(carts, creator)

	order, err := svc.Submit(context.Background(), "c1", client.Credentials{}, contactFixture())
	require.NoError(t, err)
	assert.Equal(t, int64(7), order.ID)

	// the submitted draft froze the cart total
	require.NotNil(t, creator.created)
	assert.Equal(t, 35.0, creator.created.TotalAmount)

	// cart is cleared only after the order service confirmed creation
	snapshot, err := carts.View(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, 0, snapshot.ItemCount())
}

func TestSubmit_RemoteFailureKeepsCart(t *testing.T) {
	carts := cart.NewManager(cart.NewMemoryStorage())
	setupCart(t, carts)

	creator := &mockOrderCreator{
		err: &client.RemoteError{StatusCode: 503, Message: "order service down"},
	}
	svc := NewService(carts, creator)

	_, err := svc.Submit(context.Background(), "c1", client.Credentials{}, contactFixture())

	var remote *client.RemoteError
	require.ErrorAs(t, err, &remote)

	snapshot, viewErr := carts.View(context.Background(), "c1")
	require.NoError(t, viewErr)
	assert.Equal(t, 5, snapshot.ItemCount())
	assert.Equal(t, 35.0, snapshot.Total())
}

// After a failure the same checkout may simply be submitted again.
func TestSubmit_ResubmissionAfterFailure(t *testing.T) {
	carts := cart.NewManager(cart.NewMemoryStorage())
	setupCart(t, carts)

	creator := &mockOrderCreator{
		err: &client.RemoteError{StatusCode: 502, Message: "bad gateway"},
	}
	svc := NewService(carts, creator)

	_, err := svc.Submit(context.Background(), "c1", client.Credentials{}, contactFixture())
	require.Error(t, err)

	creator.err = nil
	creator.order = &domain.Order{ID: 8, Status: domain.OrderStatusPending, TotalAmount: 35}

	order, err := svc.Submit(context.Background(), "c1", client.Credentials{}, contactFixture())
	require.NoError(t, err)
	assert.Equal(t, int64(8), order.ID)
	assert.Equal(t, 2, creator.calls)
}

func TestSubmit_ValidationFailureNeverCallsOrderService(t *testing.T) {
	carts := cart.NewManager(cart.NewMemoryStorage())
	setupCart(t, carts)

	creator := &mockOrderCreator{}
	svc := NewService(carts, creator)

	contact := contactFixture()
	contact.CustomerEmail = ""

	_, err := svc.Submit(context.Background(), "c1", client.Credentials{}, contact)

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, 0, creator.calls)
}

func TestSubmit_EmptyCart(t *testing.T) {
	carts := cart.NewManager(cart.NewMemoryStorage())
	creator := &mockOrderCreator{}
	svc := NewService(carts, creator)

	_, err := svc.Submit(context.Background(), "c1", client.Credentials{}, contactFixture())

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, 0, creator.calls)
}
