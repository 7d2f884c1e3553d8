package models

// Combo is a reusable burger selection.
//
// Toppings are stored exactly as given. Ids written by a different catalog
// version are kept and only skipped when priced or displayed.
type Combo struct {
	// BunID references catalog.Bun.ID. May not resolve.
	BunID string `json:"bunId"`

	// Toppings are topping ids in selection order.
	Toppings []string `json:"toppings"`
}

// SameSelection reports whether two combos name the same bun and the same
// set of toppings, ignoring topping order and duplicates.
func (c Combo) SameSelection(other Combo) bool {
	if c.BunID != other.BunID {
		return false
	}
	a := toSet(c.Toppings)
	b := toSet(other.Toppings)
	if len(a) != len(b) {
		return false
	}
	for id := range a {
		if !b[id] {
			return false
		}
	}
	return true
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
