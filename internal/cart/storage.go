package cart

import (
	"context"
	"errors"

	"github.com/fjod/go_storefront/internal/domain"
)

var ErrCartNotFound = errors.New("cart not found")

// CartStorage persists cart aggregates across page reloads, keyed by a
// stable cart identifier. Consumers define this interface, not the
// storage implementation.
type CartStorage interface {
	Load(ctx context.Context, cartID string) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) error
	Delete(ctx context.Context, cartID string) error
}
