package order

import (
	"strconv"
	"strings"

	"github.com/fjod/go_storefront/internal/domain"
)

// StatusFilterAll passes every status through Filter.
const StatusFilterAll = "ALL"

// Filter returns the subsequence of orders matching the status filter
// and, when search is non-empty, matching it case-insensitively as a
// substring of the order id, customer name, or customer email. Input
// order is preserved; the input slice is never mutated.
func Filter(orders []domain.Order, statusFilter, search string) []domain.Order {
	search = strings.ToLower(strings.TrimSpace(search))
	byStatus := statusFilter != "" && statusFilter != StatusFilterAll

	out := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if byStatus && string(o.Status) != statusFilter {
			continue
		}
		if search != "" && !matches(o, search) {
			continue
		}
		out = append(out, o)
	}
	return out
}

func matches(o domain.Order, search string) bool {
	return strings.Contains(strconv.FormatInt(o.ID, 10), search) ||
		strings.Contains(strings.ToLower(o.CustomerName), search) ||
		strings.Contains(strings.ToLower(o.CustomerEmail), search)
}
