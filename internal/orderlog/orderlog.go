// Package orderlog turns finished drafts into completed orders and keeps
// the session's append-only order history.
package orderlog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/brgrr/internal/catalog"
	"github.com/mmynk/brgrr/internal/draft"
	"github.com/mmynk/brgrr/internal/models"
	"github.com/mmynk/brgrr/internal/pricing"
)

// Selection is the part of a draft a checkout reads.
type Selection interface {
	IsReadyForCheckout() bool
	Bun() (catalog.Bun, bool)
	Toppings() []string
	Total() decimal.Decimal
}

// HistoryStore persists completed orders and the last-order snapshot.
type HistoryStore interface {
	AppendHistory(ctx context.Context, order models.CompletedOrder) error
	SaveLastOrder(ctx context.Context, combo models.Combo) error
	History(ctx context.Context) ([]models.CompletedOrder, error)
}

// Log is the order log of one session.
type Log struct {
	store   HistoryStore
	catalog *catalog.Catalog
	now     func() time.Time
}

// New creates an order log writing to store.
func New(store HistoryStore, c *catalog.Catalog) *Log {
	return &Log{store: store, catalog: c, now: time.Now}
}

// Checkout snapshots sel as a completed order, appends it to the history
// and overwrites the last-order slot. It returns draft.ErrNotReady and
// writes nothing if sel is not ready for checkout.
//
// History is written before the last order; a failure in between leaves
// the two out of step.
func (l *Log) Checkout(ctx context.Context, sel Selection, user *string) (*models.CompletedOrder, error) {
	if !sel.IsReadyForCheckout() {
		return nil, draft.ErrNotReady
	}
	bun, _ := sel.Bun()

	order := &models.CompletedOrder{
		User:      copyUser(user),
		BunID:     bun.ID,
		BunName:   bun.Name,
		Toppings:  sel.Toppings(),
		Total:     sel.Total(),
		Timestamp: l.now(),
	}

	if err := l.store.AppendHistory(ctx, *order); err != nil {
		return nil, fmt.Errorf("failed to append history: %w", err)
	}
	if err := l.store.SaveLastOrder(ctx, order.Combo()); err != nil {
		return nil, fmt.Errorf("failed to save last order: %w", err)
	}

	slog.Info("Order placed",
		"bun", order.BunID,
		"toppings_count", len(order.Toppings),
		"total", pricing.FormatPrice(order.Total),
		"customer", order.Customer(),
	)
	return order, nil
}

// RenderableHistory returns the session's orders, most recent first.
func (l *Log) RenderableHistory(ctx context.Context) ([]models.CompletedOrder, error) {
	orders, err := l.store.History(ctx)
	if err != nil {
		return nil, err
	}
	reversed := make([]models.CompletedOrder, len(orders))
	for i, o := range orders {
		reversed[len(orders)-1-i] = o
	}
	return reversed, nil
}

// Summary is the display form of a completed order.
type Summary struct {
	Customer string
	BunName  string
	Toppings []string
	Total    string
	PlacedAt time.Time
}

// Summarize resolves topping names for display. Ids the catalog no longer
// knows are dropped; the bun name is the one captured at checkout.
func (l *Log) Summarize(order models.CompletedOrder) Summary {
	return Summary{
		Customer: order.Customer(),
		BunName:  order.BunName,
		Toppings: l.catalog.ToppingNames(order.Toppings),
		Total:    pricing.FormatPrice(order.Total),
		PlacedAt: order.Timestamp,
	}
}

func copyUser(user *string) *string {
	if user == nil {
		return nil
	}
	u := *user
	return &u
}
