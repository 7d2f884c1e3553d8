package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompletedOrder is a checkout snapshot. Immutable once created.
type CompletedOrder struct {
	// User is the logged-in name at checkout, nil for guests.
	User *string

	// BunID and BunName are captured at checkout time.
	BunID   string
	BunName string

	// Toppings are the selected topping ids in selection order.
	Toppings []string

	// Total is the priced total at checkout time.
	Total decimal.Decimal

	// Timestamp is when the checkout happened (millisecond precision once persisted).
	Timestamp time.Time
}

// Customer returns the display name for the order, "Guest" when anonymous.
func (o CompletedOrder) Customer() string {
	if o.User == nil || *o.User == "" {
		return "Guest"
	}
	return *o.User
}

// Combo returns the reusable selection of this order.
func (o CompletedOrder) Combo() Combo {
	toppings := make([]string, len(o.Toppings))
	copy(toppings, o.Toppings)
	return Combo{BunID: o.BunID, Toppings: toppings}
}
