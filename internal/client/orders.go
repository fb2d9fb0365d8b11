package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/order"
)

// OrderFilter narrows an order listing. Zero value lists everything the
// caller is allowed to see.
type OrderFilter struct {
	Email  string
	Status string
}

func (c *Client) CreateOrder(ctx context.Context, creds Credentials, draft domain.OrderDraft) (*domain.Order, error) {
	var created domain.Order
	if err := c.do(ctx, creds, http.MethodPost, "/orders", nil, draft, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) GetOrder(ctx context.Context, creds Credentials, id int64) (*domain.Order, error) {
	var o domain.Order
	path := fmt.Sprintf("/orders/%d", id)
	if err := c.do(ctx, creds, http.MethodGet, path, nil, nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *Client) ListOrders(ctx context.Context, creds Credentials, filter OrderFilter) ([]domain.Order, error) {
	query := url.Values{}
	if filter.Email != "" {
		query.Set("email", filter.Email)
	}
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}

	var orders []domain.Order
	if err := c.do(ctx, creds, http.MethodGet, "/orders", query, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrderStats fetches server-computed counts. For the same order set
// they must agree with order.Aggregate.
func (c *Client) GetOrderStats(ctx context.Context, creds Credentials) (*order.Stats, error) {
	var stats order.Stats
	if err := c.do(ctx, creds, http.MethodGet, "/orders/stats", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, creds Credentials, id int64, status domain.OrderStatus) (*domain.Order, error) {
	body := map[string]string{"status": string(status)}

	var updated domain.Order
	path := fmt.Sprintf("/orders/%d/status", id)
	if err := c.do(ctx, creds, http.MethodPatch, path, nil, body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) UpdatePaymentStatus(ctx context.Context, creds Credentials, id int64, status domain.PaymentStatus) (*domain.Order, error) {
	body := map[string]string{"paymentStatus": string(status)}

	var updated domain.Order
	path := fmt.Sprintf("/orders/%d/payment-status", id)
	if err := c.do(ctx, creds, http.MethodPatch, path, nil, body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) UpdateTracking(ctx context.Context, creds Credentials, id int64, trackingNumber string, estimatedDelivery *time.Time) (*domain.Order, error) {
	body := map[string]interface{}{"trackingNumber": trackingNumber}
	if estimatedDelivery != nil {
		body["estimatedDeliveryDate"] = estimatedDelivery.Format(time.RFC3339)
	}

	var updated domain.Order
	path := fmt.Sprintf("/orders/%d/tracking", id)
	if err := c.do(ctx, creds, http.MethodPatch, path, nil, body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
