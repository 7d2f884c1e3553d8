package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/brgrr/internal/catalog"
)

// LineItem is one priced row of an itemized burger.
type LineItem struct {
	ID    string
	Label string
	Price decimal.Decimal
}

// Quote is the priced result for a selection.
type Quote struct {
	Total decimal.Decimal
	Lines []LineItem
}

// Calculate prices a selection: the bun (if any) followed by every topping
// that still resolves in the catalog, in the order given.
// Based on: total = bun_price + sum(topping_price), unknown toppings contribute nothing.
func Calculate(c *catalog.Catalog, bun *catalog.Bun, toppings []string) Quote {
	q := Quote{
		Total: decimal.Zero,
		Lines: make([]LineItem, 0, len(toppings)+1),
	}

	if bun != nil {
		q.Total = q.Total.Add(bun.Price)
		q.Lines = append(q.Lines, LineItem{
			ID:    bun.ID,
			Label: "Bun: " + bun.Name,
			Price: bun.Price,
		})
	}

	for _, id := range toppings {
		t, ok := c.Topping(id)
		if !ok {
			continue
		}
		q.Total = q.Total.Add(t.Price)
		q.Lines = append(q.Lines, LineItem{
			ID:    t.ID,
			Label: t.Name,
			Price: t.Price,
		})
	}

	return q
}

// FormatPrice renders an amount with exactly two fraction digits, rounding
// half away from zero (0.125 -> "0.13").
func FormatPrice(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatCurrency is FormatPrice with the dollar sign the menu uses.
func FormatCurrency(d decimal.Decimal) string {
	return "$" + FormatPrice(d)
}
