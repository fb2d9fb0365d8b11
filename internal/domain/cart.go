package domain

import "time"

// CartLine is one product entry in the cart. Price is snapshotted at
// add time and never re-synced with the catalog.
type CartLine struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"imageUrl"`
	Quantity  int     `json:"quantity"`
}

// Cart holds at most one line per product id, insertion order preserved.
type Cart struct {
	ID        string     `json:"id"`
	Lines     []CartLine `json:"lines"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Total is derived on every call, never cached.
func (c Cart) Total() float64 {
	var total float64
	for _, line := range c.Lines {
		total += line.Price * float64(line.Quantity)
	}
	return total
}

func (c Cart) ItemCount() int {
	var count int
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Clone returns a deep copy so callers can hand out snapshots without
// sharing the lines slice.
func (c Cart) Clone() Cart {
	out := c
	out.Lines = make([]CartLine, len(c.Lines))
	copy(out.Lines, c.Lines)
	return out
}
