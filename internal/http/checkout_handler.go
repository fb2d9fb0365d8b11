package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/fjod/go_storefront/internal/checkout"
	"github.com/fjod/go_storefront/internal/client"
	"github.com/fjod/go_storefront/internal/domain"
)

type CheckoutSubmitter interface {
	Submit(ctx context.Context, cartID string, creds client.Credentials, contact checkout.Contact) (*domain.Order, error)
}

type CheckoutHandler struct {
	service CheckoutSubmitter
	timeout time.Duration
}

func NewCheckoutHandler(service CheckoutSubmitter, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		timeout: timeout,
	}
}

// Checkout builds an order draft from the session's cart and submits
// it. A failed submission leaves the cart intact, so the client may
// simply retry.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cartID := getCartIDFromContext(r.Context())
	if cartID == "" {
		respondError(w, http.StatusBadRequest, "missing_cart", "no cart associated with this session")
		return
	}

	var contact checkout.Contact
	if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	creds := getCredentialsFromContext(r.Context())
	order, err := h.service.Submit(ctx, cartID, creds, contact)

	var validation *checkout.ValidationError
	switch {
	case err == nil:
		respondJSON(w, http.StatusCreated, order)
	case errors.As(err, &validation):
		respondError(w, http.StatusBadRequest, "missing_field", validation.Error())
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "empty_cart", "cart is empty, nothing to checkout")
	default:
		log.Printf("checkout failed request_id=%s: %v", getRequestID(r.Context()), err)
		handleRemoteError(w, err)
	}
}
