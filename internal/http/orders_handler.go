package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/fjod/go_storefront/internal/client"
	"github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/order"
)

// OrderService is the slice of the order API the handler uses.
type OrderService interface {
	GetOrder(ctx context.Context, creds client.Credentials, id int64) (*domain.Order, error)
	ListOrders(ctx context.Context, creds client.Credentials, filter client.OrderFilter) ([]domain.Order, error)
	GetOrderStats(ctx context.Context, creds client.Credentials) (*order.Stats, error)
	UpdateOrderStatus(ctx context.Context, creds client.Credentials, id int64, status domain.OrderStatus) (*domain.Order, error)
	UpdatePaymentStatus(ctx context.Context, creds client.Credentials, id int64, status domain.PaymentStatus) (*domain.Order, error)
	UpdateTracking(ctx context.Context, creds client.Credentials, id int64, trackingNumber string, estimatedDelivery *time.Time) (*domain.Order, error)
}

type OrdersHandler struct {
	orders  OrderService
	timeout time.Duration
}

func NewOrdersHandler(orders OrderService, timeout time.Duration) *OrdersHandler {
	return &OrdersHandler{
		orders:  orders,
		timeout: timeout,
	}
}

type OrderListResponseDTO struct {
	Orders []domain.Order `json:"orders"`
	Stats  order.Stats    `json:"stats"`
}

type OrderDetailResponseDTO struct {
	Order        *domain.Order       `json:"order"`
	Progress     []domain.StatusStep `json:"progress"`
	Cancellable  bool                `json:"cancellable"`
	StatusStyle  string              `json:"statusStyle"`
	PaymentStyle string              `json:"paymentStyle"`
}

type UpdateStatusRequestDTO struct {
	Status string `json:"status"`
}

type UpdatePaymentRequestDTO struct {
	PaymentStatus string `json:"paymentStatus"`
}

type UpdateTrackingRequestDTO struct {
	TrackingNumber        string `json:"trackingNumber"`
	EstimatedDeliveryDate string `json:"estimatedDeliveryDate,omitempty"`
}

// ListOrders fetches the caller's orders and applies status/search
// filtering locally, in listing order. Stats cover the unfiltered set.
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	creds := getCredentialsFromContext(r.Context())
	orders, err := h.orders.ListOrders(ctx, creds, client.OrderFilter{
		Email: r.URL.Query().Get("email"),
	})
	if err != nil {
		handleRemoteError(w, err)
		return
	}

	statusFilter := r.URL.Query().Get("status")
	search := r.URL.Query().Get("search")

	respondJSON(w, http.StatusOK, OrderListResponseDTO{
		Orders: order.Filter(orders, statusFilter, search),
		Stats:  order.Aggregate(orders),
	})
}

func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := parseIDParam(r, "order_id")
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order_id must be a positive integer")
		return
	}

	creds := getCredentialsFromContext(r.Context())
	o, err := h.orders.GetOrder(ctx, creds, id)
	if err != nil {
		handleRemoteError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, OrderDetailResponseDTO{
		Order:        o,
		Progress:     domain.ProgressSteps(o.Status),
		Cancellable:  domain.CanCancel(o.Status),
		StatusStyle:  o.Status.StyleToken(),
		PaymentStyle: o.PaymentStatus.StyleToken(),
	})
}

func (h *OrdersHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	creds := getCredentialsFromContext(r.Context())
	stats, err := h.orders.GetOrderStats(ctx, creds)
	if err != nil {
		handleRemoteError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

func (h *OrdersHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := parseIDParam(r, "order_id")
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order_id must be a positive integer")
		return
	}

	creds := getCredentialsFromContext(r.Context())
	current, err := h.orders.GetOrder(ctx, creds, id)
	if err != nil {
		handleRemoteError(w, err)
		return
	}

	if !domain.CanCancel(current.Status) {
		respondError(w, http.StatusConflict, "not_cancellable", "order can no longer be cancelled")
		return
	}

	updated, err := h.orders.UpdateOrderStatus(ctx, creds, id, domain.OrderStatusCancelled)
	if err != nil {
		handleRemoteError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

func (h *OrdersHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := parseIDParam(r, "order_id")
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order_id must be a positive integer")
		return
	}

	var req UpdateStatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	target := domain.OrderStatus(req.Status)
	if domain.ProgressIndex(target) == domain.NoProgress && target != domain.OrderStatusCancelled {
		respondError(w, http.StatusBadRequest, "invalid_status", "unknown order status")
		return
	}

	creds := getCredentialsFromContext(r.Context())
	current, err := h.orders.GetOrder(ctx, creds, id)
	if err != nil {
		handleRemoteError(w, err)
		return
	}

	if !domain.CanTransition(current.Status, target) {
		respondError(w, http.StatusConflict, "invalid_transition", "status change not allowed from "+current.Status.String())
		return
	}

	updated, err := h.orders.UpdateOrderStatus(ctx, creds, id, target)
	if err != nil {
		handleRemoteError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

func (h *OrdersHandler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := parseIDParam(r, "order_id")
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order_id must be a positive integer")
		return
	}

	var req UpdatePaymentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.PaymentStatus == "" {
		respondError(w, http.StatusBadRequest, "invalid_payment_status", "paymentStatus must not be empty")
		return
	}

	// Payment status is orthogonal to order status; the server owns its
	// meaning, so no lifecycle check happens here.
	creds := getCredentialsFromContext(r.Context())
	updated, err := h.orders.UpdatePaymentStatus(ctx, creds, id, domain.PaymentStatus(req.PaymentStatus))
	if err != nil {
		handleRemoteError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

func (h *OrdersHandler) UpdateTracking(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := parseIDParam(r, "order_id")
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order_id must be a positive integer")
		return
	}

	var req UpdateTrackingRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.TrackingNumber == "" {
		respondError(w, http.StatusBadRequest, "invalid_tracking_number", "trackingNumber must not be empty")
		return
	}

	var estimated *time.Time
	if req.EstimatedDeliveryDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.EstimatedDeliveryDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_date", "estimatedDeliveryDate must be RFC3339")
			return
		}
		estimated = &parsed
	}

	creds := getCredentialsFromContext(r.Context())
	updated, err := h.orders.UpdateTracking(ctx, creds, id, req.TrackingNumber, estimated)
	if err != nil {
		handleRemoteError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, updated)
}
