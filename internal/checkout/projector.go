package checkout

import (
	"strings"

	"github.com/fjod/go_storefront/internal/domain"
)

// Contact carries the checkout form fields.
type Contact struct {
	CustomerName    string `json:"customerName"`
	CustomerEmail   string `json:"customerEmail"`
	CustomerPhone   string `json:"customerPhone"`
	ShippingAddress string `json:"shippingAddress"`
}

// BuildOrderDraft projects a cart snapshot plus contact fields into an
// order-creation payload. The total and line prices are frozen at build
// time; later cart mutations cannot change an already-built draft. Pure
// transform, no network.
func BuildOrderDraft(cart domain.Cart, contact Contact) (domain.OrderDraft, error) {
	fields := []struct {
		name  string
		value string
	}{
		{"customerName", contact.CustomerName},
		{"customerEmail", contact.CustomerEmail},
		{"customerPhone", contact.CustomerPhone},
		{"shippingAddress", contact.ShippingAddress},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return domain.OrderDraft{}, &ValidationError{Field: f.name}
		}
	}

	if cart.IsEmpty() {
		return domain.OrderDraft{}, ErrEmptyCart
	}

	items := make([]domain.DraftItem, len(cart.Lines))
	for i, line := range cart.Lines {
		items[i] = domain.DraftItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.Price,
		}
	}

	return domain.OrderDraft{
		CustomerName:    contact.CustomerName,
		CustomerEmail:   contact.CustomerEmail,
		CustomerPhone:   contact.CustomerPhone,
		ShippingAddress: contact.ShippingAddress,
		TotalAmount:     cart.Total(),
		Items:           items,
	}, nil
}
