// Package draft holds the in-progress burger selection for one session.
package draft

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/mmynk/brgrr/internal/catalog"
	"github.com/mmynk/brgrr/internal/models"
	"github.com/mmynk/brgrr/internal/pricing"
)

var (
	ErrNoBun    = errors.New("no bun selected")
	ErrNotReady = errors.New("select a bun and at least one topping")
)

// BunState is the bun confirmation state machine:
// Unselected -> Selected -> Confirmed.
type BunState int

const (
	BunUnselected BunState = iota
	BunSelected
	BunConfirmed
)

func (s BunState) String() string {
	switch s {
	case BunSelected:
		return "selected"
	case BunConfirmed:
		return "confirmed"
	default:
		return "unselected"
	}
}

// Draft is a mutable burger selection. The total is recomputed on every
// mutation and is never set directly.
//
// A Draft is not safe for concurrent use; its owner serializes access.
type Draft struct {
	catalog *catalog.Catalog

	bun          *catalog.Bun
	toppings     *toppingSet
	bunConfirmed bool
	quote        pricing.Quote
}

// New returns an empty draft priced against c.
func New(c *catalog.Catalog) *Draft {
	d := &Draft{
		catalog:  c,
		toppings: newToppingSet(),
	}
	d.reprice()
	return d
}

// SelectBun sets the bun and clears confirmation. Ids that do not resolve
// leave the draft untouched.
func (d *Draft) SelectBun(bunID string) bool {
	b, ok := d.catalog.Bun(bunID)
	if !ok {
		return false
	}
	d.bun = &b
	d.bunConfirmed = false
	d.reprice()
	return true
}

// ClearBun removes the bun selection.
func (d *Draft) ClearBun() {
	d.bun = nil
	d.bunConfirmed = false
	d.reprice()
}

// ToggleTopping adds id if absent and removes it if present. It reports
// whether id is selected afterwards.
func (d *Draft) ToggleTopping(id string) bool {
	selected := d.toppings.toggle(id)
	d.reprice()
	return selected
}

// ConfirmBun locks the bun selection. Returns ErrNoBun without changing
// anything when no bun is selected.
func (d *Draft) ConfirmBun() error {
	if d.bun == nil {
		return ErrNoBun
	}
	d.bunConfirmed = true
	return nil
}

// IsReadyForCheckout reports whether a bun and at least one topping are
// selected.
func (d *Draft) IsReadyForCheckout() bool {
	return d.bun != nil && d.toppings.len() > 0
}

// ApplyCombo replaces the selection with combo. Confirmation is reset, an
// unknown bun id leaves the bun empty, and topping ids are stored as given
// (deduplicated) even if the catalog does not know them.
func (d *Draft) ApplyCombo(combo models.Combo) {
	d.bunConfirmed = false
	d.bun = nil
	if b, ok := d.catalog.Bun(combo.BunID); ok {
		d.bun = &b
	}
	d.toppings = newToppingSet(combo.Toppings...)
	d.reprice()
}

// Bun returns the selected bun, if any.
func (d *Draft) Bun() (catalog.Bun, bool) {
	if d.bun == nil {
		return catalog.Bun{}, false
	}
	return *d.bun, true
}

// Toppings returns the selected topping ids in selection order.
func (d *Draft) Toppings() []string {
	return d.toppings.ids()
}

// HasTopping reports whether id is selected.
func (d *Draft) HasTopping(id string) bool {
	return d.toppings.has(id)
}

// BunConfirmed reports whether the bun is locked.
func (d *Draft) BunConfirmed() bool {
	return d.bunConfirmed
}

// BunState returns the position in the confirmation state machine.
func (d *Draft) BunState() BunState {
	switch {
	case d.bun == nil:
		return BunUnselected
	case d.bunConfirmed:
		return BunConfirmed
	default:
		return BunSelected
	}
}

// Total is the current derived total.
func (d *Draft) Total() decimal.Decimal {
	return d.quote.Total
}

// Quote is the current derived total and line items.
func (d *Draft) Quote() pricing.Quote {
	lines := make([]pricing.LineItem, len(d.quote.Lines))
	copy(lines, d.quote.Lines)
	return pricing.Quote{Total: d.quote.Total, Lines: lines}
}

// Combo returns the current selection as a reusable combo.
// Returns ErrNotReady unless the draft is ready for checkout.
func (d *Draft) Combo() (models.Combo, error) {
	if !d.IsReadyForCheckout() {
		return models.Combo{}, ErrNotReady
	}
	return models.Combo{BunID: d.bun.ID, Toppings: d.toppings.ids()}, nil
}

func (d *Draft) reprice() {
	d.quote = pricing.Calculate(d.catalog, d.bun, d.toppings.ids())
}
