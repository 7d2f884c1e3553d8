package draft

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"

	"github.com/mmynk/brgrr/internal/catalog"
)

// toggleIDs includes one id the catalog does not know.
var toggleIDs = []string{"patty", "cheese", "bacon", "lettuce", "tomato", "onion", "pickle", "mushroom", "jalapeno", "egg", "truffle"}

func idsFrom(indexes []int) []string {
	ids := make([]string, len(indexes))
	for i, idx := range indexes {
		ids[i] = toggleIDs[idx]
	}
	return ids
}

// TestToggleParity verifies each id is selected iff it was toggled an odd number of times.
func TestToggleParity(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("selection equals odd-count toggles", prop.ForAll(
		func(indexes []int) bool {
			d := New(catalog.Default())
			counts := make(map[string]int)
			for _, id := range idsFrom(indexes) {
				d.ToggleTopping(id)
				counts[id]++
			}
			for _, id := range toggleIDs {
				if d.HasTopping(id) != (counts[id]%2 == 1) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, len(toggleIDs)-1)),
	))

	properties.TestingRun(t)
}

// TestTotalMatchesSelection verifies the derived total after arbitrary mutations.
func TestTotalMatchesSelection(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)
	cat := catalog.Default()
	buns := cat.Buns()

	properties.Property("total is bun price plus known topping prices", prop.ForAll(
		func(bunIdx int, indexes []int) bool {
			d := New(cat)
			if bunIdx < len(buns) {
				d.SelectBun(buns[bunIdx].ID)
			}
			for _, id := range idsFrom(indexes) {
				d.ToggleTopping(id)
			}

			want := decimal.Zero
			if b, ok := d.Bun(); ok {
				want = want.Add(b.Price)
			}
			for _, id := range d.Toppings() {
				if tp, ok := cat.Topping(id); ok {
					want = want.Add(tp.Price)
				}
			}
			return d.Total().Equal(want)
		},
		gen.IntRange(0, len(buns)),
		gen.SliceOf(gen.IntRange(0, len(toggleIDs)-1)),
	))

	properties.TestingRun(t)
}

// TestDoubleToggleIsIdentity verifies toggling the same id twice restores the selection.
func TestDoubleToggleIsIdentity(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("toggle twice is identity", prop.ForAll(
		func(indexes []int, pick int) bool {
			d := New(catalog.Default())
			for _, id := range idsFrom(indexes) {
				d.ToggleTopping(id)
			}
			before := d.Toppings()
			total := d.Total()

			id := toggleIDs[pick]
			d.ToggleTopping(id)
			d.ToggleTopping(id)

			after := d.Toppings()
			if len(before) != len(after) || !d.Total().Equal(total) {
				return false
			}
			for _, v := range before {
				if !d.HasTopping(v) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, len(toggleIDs)-1)),
		gen.IntRange(0, len(toggleIDs)-1),
	))

	properties.TestingRun(t)
}
