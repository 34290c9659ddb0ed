package model

import (
	"encoding/json"
	"fmt"
)

// quantityUnlimited is the wire sentinel for unlimited stock. The JSON
// shape (a number, or this string) is the persisted collection format
// and must stay import-compatible with existing backup files.
const quantityUnlimited = "infinite"

// Quantity is a stock level: either a concrete count or unlimited.
// Counts may go negative; the store never blocks a sale below stock.
type Quantity struct {
	Unlimited bool
	Count     int
}

// Count returns a numeric quantity.
func Count(n int) Quantity {
	return Quantity{Count: n}
}

// Unlimited returns the unlimited-stock quantity.
func Unlimited() Quantity {
	return Quantity{Unlimited: true}
}

// MarshalJSON encodes the quantity as a number or the unlimited sentinel.
func (q Quantity) MarshalJSON() ([]byte, error) {
	if q.Unlimited {
		return json.Marshal(quantityUnlimited)
	}
	return json.Marshal(q.Count)
}

// UnmarshalJSON decodes a number or the unlimited sentinel.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != quantityUnlimited {
			return fmt.Errorf("invalid quantity %q", s)
		}
		*q = Quantity{Unlimited: true}
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid quantity: %w", err)
	}
	*q = Quantity{Count: n}
	return nil
}

// String renders the quantity for logs and display.
func (q Quantity) String() string {
	if q.Unlimited {
		return quantityUnlimited
	}
	return fmt.Sprintf("%d", q.Count)
}

// InventoryItem is a stocked product or service offered by the shop.
type InventoryItem struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Quantity Quantity `json:"quantity"`
	Price    float64  `json:"price"`
	MinStock int      `json:"minStock"`
}

// LowStock reports whether the item is at or below its alert threshold.
// Unlimited items are never low.
func (i *InventoryItem) LowStock() bool {
	return !i.Quantity.Unlimited && i.Quantity.Count <= i.MinStock
}
