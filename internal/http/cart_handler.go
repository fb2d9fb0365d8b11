package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/fjod/go_storefront/internal/cart"
	"github.com/fjod/go_storefront/internal/client"
	"github.com/fjod/go_storefront/internal/domain"
)

// ProductGetter is the slice of the catalog API the cart handler needs
// to snapshot price and check stock at add time.
type ProductGetter interface {
	GetProduct(ctx context.Context, creds client.Credentials, id int64) (*domain.Product, error)
}

type CartHandler struct {
	carts   *cart.Manager
	catalog ProductGetter
	timeout time.Duration
}

func NewCartHandler(carts *cart.Manager, catalog ProductGetter, timeout time.Duration) *CartHandler {
	return &CartHandler{
		carts:   carts,
		catalog: catalog,
		timeout: timeout,
	}
}

type AddItemRequestDTO struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartResponseDTO struct {
	Cart      domain.Cart `json:"cart"`
	ItemCount int         `json:"itemCount"`
	Total     float64     `json:"total"`
}

var errInsufficientStock = errors.New("requested quantity exceeds available stock")

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cartID := getCartIDFromContext(r.Context())
	if cartID == "" {
		respondError(w, http.StatusBadRequest, "missing_cart", "no cart associated with this session")
		return
	}

	snapshot, err := h.carts.View(ctx, cartID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load cart")
		return
	}

	respondCart(w, http.StatusOK, snapshot)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cartID := getCartIDFromContext(r.Context())
	if cartID == "" {
		respondError(w, http.StatusBadRequest, "missing_cart", "no cart associated with this session")
		return
	}

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "productId must be positive")
		return
	}
	if req.Quantity <= 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	// Price is snapshotted from the catalog here; the cart never
	// re-syncs it afterwards.
	creds := getCredentialsFromContext(r.Context())
	product, err := h.catalog.GetProduct(ctx, creds, req.ProductID)
	if err != nil {
		handleRemoteError(w, err)
		return
	}

	snapshot, err := h.carts.Update(ctx, cartID, func(s *cart.Store) error {
		have := 0
		if line, ok := s.Line(req.ProductID); ok {
			have = line.Quantity
		}
		if have+req.Quantity > product.Stock {
			return errInsufficientStock
		}
		s.AddItem(*product, req.Quantity)
		return nil
	})
	if errors.Is(err, errInsufficientStock) {
		respondError(w, http.StatusConflict, "insufficient_stock", "requested quantity exceeds available stock")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to update cart")
		return
	}

	respondCart(w, http.StatusCreated, snapshot)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cartID := getCartIDFromContext(r.Context())
	if cartID == "" {
		respondError(w, http.StatusBadRequest, "missing_cart", "no cart associated with this session")
		return
	}

	productID, err := parseIDParam(r, "product_id")
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.Quantity <= 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	snapshot, err := h.carts.Update(ctx, cartID, func(s *cart.Store) error {
		s.SetQuantity(productID, req.Quantity)
		return nil
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to update cart")
		return
	}

	respondCart(w, http.StatusOK, snapshot)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cartID := getCartIDFromContext(r.Context())
	if cartID == "" {
		respondError(w, http.StatusBadRequest, "missing_cart", "no cart associated with this session")
		return
	}

	productID, err := parseIDParam(r, "product_id")
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	snapshot, err := h.carts.Update(ctx, cartID, func(s *cart.Store) error {
		s.RemoveItem(productID)
		return nil
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to update cart")
		return
	}

	respondCart(w, http.StatusOK, snapshot)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cartID := getCartIDFromContext(r.Context())
	if cartID == "" {
		respondError(w, http.StatusBadRequest, "missing_cart", "no cart associated with this session")
		return
	}

	snapshot, err := h.carts.Update(ctx, cartID, func(s *cart.Store) error {
		s.Clear()
		return nil
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to clear cart")
		return
	}

	respondCart(w, http.StatusOK, snapshot)
}

func respondCart(w http.ResponseWriter, status int, snapshot domain.Cart) {
	respondJSON(w, status, CartResponseDTO{
		Cart:      snapshot,
		ItemCount: snapshot.ItemCount(),
		Total:     snapshot.Total(),
	})
}
