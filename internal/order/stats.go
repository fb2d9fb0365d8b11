package order

import "github.com/fjod/go_storefront/internal/domain"

// Stats holds per-status order counts. Cancelled and unrecognized
// statuses count toward Total only.
type Stats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Confirmed int `json:"confirmed"`
	Shipped   int `json:"shipped"`
	Delivered int `json:"delivered"`
}

// Aggregate reduces a collection of orders to per-status counts in a
// single pass. Input order does not matter and empty input is fine.
func Aggregate(orders []domain.Order) Stats {
	stats := Stats{Total: len(orders)}
	for _, o := range orders {
		switch o.Status {
		case domain.OrderStatusPending:
			stats.Pending++
		case domain.OrderStatusConfirmed:
			stats.Confirmed++
		case domain.OrderStatusShipped:
			stats.Shipped++
		case domain.OrderStatusDelivered:
			stats.Delivered++
		}
	}
	return stats
}
