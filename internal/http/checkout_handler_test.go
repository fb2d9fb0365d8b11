package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fjod/go_storefront/internal/checkout"
	"github.com/fjod/go_storefront/internal/client"
	"github.com/fjod/go_storefront/internal/domain"
)

type submitterMock struct {
	contact checkout.Contact
	order   *domain.Order
	err     error
}

func (m *submitterMock) Submit(_ context.Context, _ string, _ client.Credentials, contact checkout.Contact) (*domain.Order, error) {
	m.contact = contact
	if m.err != nil {
		return nil, m.err
	}
	return m.order, nil
}

func checkoutBody(t *testing.T) *bytes.Reader {
	t.Helper()
	body, err := json.Marshal(checkout.Contact{
		CustomerName:    "Ada Lovelace",
		CustomerEmail:   "ada@example.com",
		CustomerPhone:   "+1 555 0100",
		ShippingAddress: "12 Analytical Way",
	})
	if err != nil {
		t.Fatalf("marshal contact: %v", err)
	}
	return bytes.NewReader(body)
}

func TestCheckout_Success(t *testing.T) {
	mock := &submitterMock{
		order: &domain.Order{ID: 7, Status: domain.OrderStatusPending, TotalAmount: 35},
	}
	handler := NewCheckoutHandler(mock, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := withCartID(httptest.NewRequest("POST", "/", checkoutBody(t)), "c1")

	handler.Checkout(recorder, request)

	if recorder.Code != http.StatusCreated {
		t.Fatalf("Expected status code %d, got %d: %s", http.StatusCreated, recorder.Code, recorder.Body.String())
	}

	var response domain.Order
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.ID != 7 {
		t.Errorf("Expected order id 7, got %d", response.ID)
	}
	if mock.contact.CustomerEmail != "ada@example.com" {
		t.Errorf("Expected contact forwarded, got %+v", mock.contact)
	}
}

func TestCheckout_MissingField(t *testing.T) {
	mock := &submitterMock{err: &checkout.ValidationError{Field: "customerEmail"}}
	handler := NewCheckoutHandler(mock, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := withCartID(httptest.NewRequest("POST", "/", checkoutBody(t)), "c1")

	handler.Checkout(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
	}

	var response ErrorResponse
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Code != "missing_field" {
		t.Errorf("Expected code missing_field, got %q", response.Code)
	}
}

func TestCheckout_EmptyCart(t *testing.T) {
	mock := &submitterMock{err: checkout.ErrEmptyCart}
	handler := NewCheckoutHandler(mock, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := withCartID(httptest.NewRequest("POST", "/", checkoutBody(t)), "c1")

	handler.Checkout(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
	}
}

func TestCheckout_UpstreamDown(t *testing.T) {
	mock := &submitterMock{err: &client.RemoteError{StatusCode: http.StatusServiceUnavailable, Message: "order service down"}}
	handler := NewCheckoutHandler(mock, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := withCartID(httptest.NewRequest("POST", "/", checkoutBody(t)), "c1")

	handler.Checkout(recorder, request)

	if recorder.Code != http.StatusBadGateway {
		t.Fatalf("Expected status code %d, got %d", http.StatusBadGateway, recorder.Code)
	}
}

func TestCheckout_InvalidBody(t *testing.T) {
	handler := NewCheckoutHandler(&submitterMock{}, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := withCartID(httptest.NewRequest("POST", "/", bytes.NewReader([]byte("{not json"))), "c1")

	handler.Checkout(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
	}
}
