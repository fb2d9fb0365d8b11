package cart

import (
	"time"

	"github.com/fjod/go_storefront/internal/domain"
)

// Store owns a single cart aggregate: line items with quantities, at
// most one line per product id, insertion order preserved. Mutations
// are synchronous and do no I/O. A Store is not safe for concurrent
// use; the Manager serializes access per cart.
type Store struct {
	cart domain.Cart
}

func NewStore(cartID string) *Store {
	now := time.Now()
	return &Store{
		cart: domain.Cart{
			ID:        cartID,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// Restore rebuilds a store from a persisted snapshot.
func Restore(cart domain.Cart) *Store {
	return &Store{cart: cart.Clone()}
}

// AddItem merges into the existing line for the product, or appends a
// new line with the price snapshotted from the catalog product. The
// stock ceiling is the caller's concern; none is enforced here.
func (s *Store) AddItem(p domain.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	for i := range s.cart.Lines {
		if s.cart.Lines[i].ProductID == p.ID {
			s.cart.Lines[i].Quantity += quantity
			s.touch()
			return
		}
	}
	s.cart.Lines = append(s.cart.Lines, domain.CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		ImageURL:  p.ImageURL,
		Quantity:  quantity,
	})
	s.touch()
}

// RemoveItem deletes the line if present; absent ids are a no-op.
func (s *Store) RemoveItem(productID int64) {
	for i := range s.cart.Lines {
		if s.cart.Lines[i].ProductID == productID {
			s.cart.Lines = append(s.cart.Lines[:i], s.cart.Lines[i+1:]...)
			s.touch()
			return
		}
	}
}

// SetQuantity replaces the quantity of an existing line. Quantities
// below 1 are ignored (RemoveItem is how a line leaves the cart), and
// unknown product ids are a silent no-op, matching how callers use it.
func (s *Store) SetQuantity(productID int64, quantity int) {
	if quantity < 1 {
		return
	}
	for i := range s.cart.Lines {
		if s.cart.Lines[i].ProductID == productID {
			s.cart.Lines[i].Quantity = quantity
			s.touch()
			return
		}
	}
}

// Line returns the line for the product, if present.
func (s *Store) Line(productID int64) (domain.CartLine, bool) {
	for _, line := range s.cart.Lines {
		if line.ProductID == productID {
			return line, true
		}
	}
	return domain.CartLine{}, false
}

// Clear empties the cart unconditionally.
func (s *Store) Clear() {
	s.cart.Lines = nil
	s.touch()
}

func (s *Store) Total() float64 {
	return s.cart.Total()
}

func (s *Store) ItemCount() int {
	return s.cart.ItemCount()
}

func (s *Store) IsEmpty() bool {
	return s.cart.IsEmpty()
}

func (s *Store) ID() string {
	return s.cart.ID
}

// Snapshot returns a deep copy of the aggregate for persistence or
// projection; later mutations of the store do not leak into it.
func (s *Store) Snapshot() domain.Cart {
	return s.cart.Clone()
}

func (s *Store) touch() {
	s.cart.UpdatedAt = time.Now()
}
