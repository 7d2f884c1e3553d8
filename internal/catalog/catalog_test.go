package catalog

import "testing"

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	if got := len(c.Buns()); got != 4 {
		t.Errorf("expected 4 buns, got %d", got)
	}
	if got := len(c.Toppings()); got != 10 {
		t.Errorf("expected 10 toppings, got %d", got)
	}

	tests := []struct {
		id    string
		name  string
		price string
	}{
		{"classic", "Classic", "2"},
		{"sesame", "Sesame", "2.5"},
		{"brioche", "Brioche", "3"},
		{"glutenfree", "Gluten-free", "3.2"},
	}
	for _, tt := range tests {
		b, ok := c.Bun(tt.id)
		if !ok {
			t.Errorf("bun %q not found", tt.id)
			continue
		}
		if b.Name != tt.name {
			t.Errorf("bun %q name = %q, want %q", tt.id, b.Name, tt.name)
		}
		if b.Price.String() != tt.price {
			t.Errorf("bun %q price = %s, want %s", tt.id, b.Price, tt.price)
		}
	}

	if _, ok := c.Topping("patty"); !ok {
		t.Error("expected patty topping")
	}
	if _, ok := c.Bun("pretzel"); ok {
		t.Error("unexpected pretzel bun")
	}
}

func TestNewIgnoresDuplicateIDs(t *testing.T) {
	c := New(
		[]Bun{{ID: "a", Name: "First"}, {ID: "a", Name: "Second"}},
		[]Topping{{ID: "x", Name: "X"}, {ID: "x", Name: "Y"}},
	)
	if len(c.Buns()) != 1 || len(c.Toppings()) != 1 {
		t.Fatalf("expected duplicates to be dropped, got %d buns %d toppings", len(c.Buns()), len(c.Toppings()))
	}
	if b, _ := c.Bun("a"); b.Name != "First" {
		t.Errorf("expected first entry to win, got %q", b.Name)
	}
}

func TestToppingNamesDropsUnknown(t *testing.T) {
	names := Default().ToppingNames([]string{"cheese", "truffle", "egg"})
	if len(names) != 2 || names[0] != "Cheddar Cheese" || names[1] != "Fried Egg" {
		t.Errorf("unexpected names: %v", names)
	}
}
