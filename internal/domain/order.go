package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// String representation (for logging)
func (s OrderStatus) String() string {
	return string(s)
}

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

func (s PaymentStatus) String() string {
	return string(s)
}

type OrderItem struct {
	ProductName     string  `json:"productName"`
	ProductImageURL string  `json:"productImageUrl"`
	Price           float64 `json:"price"`
	Quantity        int     `json:"quantity"`
	Subtotal        float64 `json:"subtotal"`
}

// Order is owned by the order service; this side only reads it and
// requests transitions through the service API.
type Order struct {
	ID                int64         `json:"id"`
	Status            OrderStatus   `json:"status"`
	PaymentStatus     PaymentStatus `json:"paymentStatus"`
	PaymentMethod     string        `json:"paymentMethod"`
	TrackingNumber    string        `json:"trackingNumber,omitempty"`
	CustomerName      string        `json:"customerName"`
	CustomerEmail     string        `json:"customerEmail"`
	CustomerPhone     string        `json:"customerPhone,omitempty"`
	ShippingAddress   string        `json:"shippingAddress"`
	Notes             string        `json:"notes,omitempty"`
	OrderDate         time.Time     `json:"orderDate"`
	LastUpdated       time.Time     `json:"lastUpdated"`
	EstimatedDelivery *time.Time    `json:"estimatedDeliveryDate,omitempty"`
	DeliveredDate     *time.Time    `json:"deliveredDate,omitempty"`
	TotalAmount       float64       `json:"totalAmount"`
	Items             []OrderItem   `json:"orderItems"`
}

type DraftItem struct {
	ProductID int64   `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// OrderDraft is the unsent order-creation payload: a snapshot of the
// cart plus contact fields, built once per submit attempt and
// discarded after the request resolves.
type OrderDraft struct {
	CustomerName    string      `json:"customerName"`
	CustomerEmail   string      `json:"customerEmail"`
	CustomerPhone   string      `json:"customerPhone"`
	ShippingAddress string      `json:"shippingAddress"`
	TotalAmount     float64     `json:"totalAmount"`
	Items           []DraftItem `json:"orderItems"`
}
