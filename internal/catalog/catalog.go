// Package catalog holds the fixed bun and topping menu.
//
// The ids and prices are part of the persisted contract: favorites and
// history written by earlier sessions reference them by id, so they must
// not change.
package catalog

import "github.com/shopspring/decimal"

// Bun is a bun variant on the menu.
type Bun struct {
	ID    string
	Name  string
	Price decimal.Decimal
}

// Topping is a topping variant on the menu.
type Topping struct {
	ID    string
	Name  string
	Price decimal.Decimal
}

// Catalog is an immutable, ordered set of buns and toppings.
type Catalog struct {
	buns     []Bun
	toppings []Topping

	bunIndex     map[string]int
	toppingIndex map[string]int
}

// New builds a catalog from the given entries. Later duplicates of an id
// are ignored.
func New(buns []Bun, toppings []Topping) *Catalog {
	c := &Catalog{
		bunIndex:     make(map[string]int, len(buns)),
		toppingIndex: make(map[string]int, len(toppings)),
	}
	for _, b := range buns {
		if _, exists := c.bunIndex[b.ID]; exists {
			continue
		}
		c.bunIndex[b.ID] = len(c.buns)
		c.buns = append(c.buns, b)
	}
	for _, t := range toppings {
		if _, exists := c.toppingIndex[t.ID]; exists {
			continue
		}
		c.toppingIndex[t.ID] = len(c.toppings)
		c.toppings = append(c.toppings, t)
	}
	return c
}

// Default returns the house menu.
func Default() *Catalog {
	return defaultCatalog
}

// Buns returns the buns in menu order.
func (c *Catalog) Buns() []Bun {
	out := make([]Bun, len(c.buns))
	copy(out, c.buns)
	return out
}

// Toppings returns the toppings in menu order.
func (c *Catalog) Toppings() []Topping {
	out := make([]Topping, len(c.toppings))
	copy(out, c.toppings)
	return out
}

// Bun looks up a bun by id.
func (c *Catalog) Bun(id string) (Bun, bool) {
	i, ok := c.bunIndex[id]
	if !ok {
		return Bun{}, false
	}
	return c.buns[i], true
}

// Topping looks up a topping by id.
func (c *Catalog) Topping(id string) (Topping, bool) {
	i, ok := c.toppingIndex[id]
	if !ok {
		return Topping{}, false
	}
	return c.toppings[i], true
}

// ToppingNames resolves ids to display names, dropping ids the catalog
// does not know.
func (c *Catalog) ToppingNames(ids []string) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if t, ok := c.Topping(id); ok {
			names = append(names, t.Name)
		}
	}
	return names
}

var defaultCatalog = New(
	[]Bun{
		{ID: "classic", Name: "Classic", Price: decimal.RequireFromString("2.00")},
		{ID: "sesame", Name: "Sesame", Price: decimal.RequireFromString("2.50")},
		{ID: "brioche", Name: "Brioche", Price: decimal.RequireFromString("3.00")},
		{ID: "glutenfree", Name: "Gluten-free", Price: decimal.RequireFromString("3.20")},
	},
	[]Topping{
		{ID: "patty", Name: "Beef Patty", Price: decimal.RequireFromString("4.00")},
		{ID: "cheese", Name: "Cheddar Cheese", Price: decimal.RequireFromString("1.00")},
		{ID: "bacon", Name: "Bacon", Price: decimal.RequireFromString("1.50")},
		{ID: "lettuce", Name: "Lettuce", Price: decimal.RequireFromString("0.50")},
		{ID: "tomato", Name: "Tomato", Price: decimal.RequireFromString("0.50")},
		{ID: "onion", Name: "Onion", Price: decimal.RequireFromString("0.40")},
		{ID: "pickle", Name: "Pickles", Price: decimal.RequireFromString("0.40")},
		{ID: "mushroom", Name: "Mushrooms", Price: decimal.RequireFromString("0.90")},
		{ID: "jalapeno", Name: "Jalapeños", Price: decimal.RequireFromString("0.80")},
		{ID: "egg", Name: "Fried Egg", Price: decimal.RequireFromString("1.20")},
	},
)
