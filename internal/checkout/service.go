package checkout

import (
	"context"
	"log"

	"github.com/fjod/go_storefront/internal/cart"
	"github.com/fjod/go_storefront/internal/client"
	"github.com/fjod/go_storefront/internal/domain"
)

// OrderCreator is the slice of the order service API that checkout
// needs. Consumers define this interface, not the HTTP client.
type OrderCreator interface {
	CreateOrder(ctx context.Context, creds client.Credentials, draft domain.OrderDraft) (*domain.Order, error)
}

type Service struct {
	carts  *cart.Manager
	orders OrderCreator
}

func NewService(carts *cart.Manager, orders OrderCreator) *Service {
	return &Service{
		carts:  carts,
		orders: orders,
	}
}

// Submit builds a draft from the current cart and sends it to the order
// service. The cart is cleared only after the order service confirms
// creation; on any failure the cart is untouched and the draft is
// discarded, so the attempt can simply be repeated.
func (s *Service) Submit(ctx context.Context, cartID string, creds client.Credentials, contact Contact) (*domain.Order, error) {
	snapshot, err := s.carts.View(ctx, cartID)
	if err != nil {
		return nil, err
	}

	draft, err := BuildOrderDraft(snapshot, contact)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.CreateOrder(ctx, creds, draft)
	if err != nil {
		return nil, err
	}

	if err := s.carts.Drop(ctx, cartID); err != nil {
		// The order exists; a stale cart is recoverable, losing the
		// order reference is not.
		log.Printf("clear cart after checkout error: %v", err)
	}

	return order, nil
}
