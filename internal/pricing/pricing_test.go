package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/brgrr/internal/catalog"
)

func TestCalculate(t *testing.T) {
	cat := catalog.Default()
	classic, _ := cat.Bun("classic")
	sesame, _ := cat.Bun("sesame")

	tests := []struct {
		name         string
		bun          *catalog.Bun
		toppings     []string
		wantTotal    string
		validateFunc func(t *testing.T, q Quote)
	}{
		{
			name:      "empty selection",
			bun:       nil,
			toppings:  nil,
			wantTotal: "0.00",
			validateFunc: func(t *testing.T, q Quote) {
				if len(q.Lines) != 0 {
					t.Errorf("expected no lines, got %d", len(q.Lines))
				}
			},
		},
		{
			name:      "sesame with patty and cheese",
			bun:       &sesame,
			toppings:  []string{"patty", "cheese"},
			wantTotal: "7.50",
			validateFunc: func(t *testing.T, q Quote) {
				// Bun first, then toppings in selection order
				if len(q.Lines) != 3 {
					t.Fatalf("expected 3 lines, got %d", len(q.Lines))
				}
				if q.Lines[0].Label != "Bun: Sesame" {
					t.Errorf("first line = %q, want bun line", q.Lines[0].Label)
				}
				if q.Lines[1].ID != "patty" || q.Lines[2].ID != "cheese" {
					t.Errorf("topping order = %s,%s", q.Lines[1].ID, q.Lines[2].ID)
				}
			},
		},
		{
			name:      "classic with lettuce and tomato",
			bun:       &classic,
			toppings:  []string{"lettuce", "tomato"},
			wantTotal: "3.00",
		},
		{
			name:      "toppings without bun",
			bun:       nil,
			toppings:  []string{"bacon", "egg"},
			wantTotal: "2.70",
		},
		{
			name:      "unknown topping is skipped",
			bun:       &classic,
			toppings:  []string{"truffle", "onion"},
			wantTotal: "2.40",
			validateFunc: func(t *testing.T, q Quote) {
				if len(q.Lines) != 2 {
					t.Errorf("expected 2 lines, got %d", len(q.Lines))
				}
			},
		},
		{
			name:      "no float drift across many small prices",
			bun:       nil,
			toppings:  []string{"onion", "pickle", "jalapeno", "mushroom"},
			wantTotal: "2.50",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Calculate(cat, tt.bun, tt.toppings)
			if got := FormatPrice(q.Total); got != tt.wantTotal {
				t.Errorf("Calculate() total = %s, want %s", got, tt.wantTotal)
			}
			if tt.validateFunc != nil {
				tt.validateFunc(t, q)
			}
		})
	}
}

func TestFormatPriceRoundsHalfUp(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0.125", "0.13"},
		{"0.135", "0.14"},
		{"7.5", "7.50"},
		{"3.2", "3.20"},
		{"2.004", "2.00"},
		{"0", "0.00"},
	}
	for _, tt := range tests {
		if got := FormatPrice(decimal.RequireFromString(tt.in)); got != tt.want {
			t.Errorf("FormatPrice(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestFormatCurrency(t *testing.T) {
	if got := FormatCurrency(decimal.RequireFromString("7.5")); got != "$7.50" {
		t.Errorf("FormatCurrency = %s, want $7.50", got)
	}
}
