// Package brgrrapi defines the wire messages of the builder service and
// the Connect handler and client bindings for them.
//
// Messages are plain JSON structs carried with a JSON codec; amounts are
// two-decimal strings so the UI never does float math.
package brgrrapi

// Bun is a catalog bun.
type Bun struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
}

// Topping is a catalog topping.
type Topping struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
}

// LineItem is one row of the itemized burger.
type LineItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Price string `json:"price"`
}

// Feedback is a message for one UI field: "bun", "toppings" or "general".
type Feedback struct {
	Field   string `json:"field"`
	Level   string `json:"level"`
	Message string `json:"message"`
}

// State is the builder state after an operation.
type State struct {
	SessionID  string     `json:"sessionId"`
	User       *string    `json:"user"`
	Welcome    string     `json:"welcome,omitempty"`
	BunID      string     `json:"bunId,omitempty"`
	BunState   string     `json:"bunState"`
	BunLocked  bool       `json:"bunLocked"`
	CanConfirm bool       `json:"canConfirm"`
	Toppings   []string   `json:"toppings"`
	Lines      []LineItem `json:"lines"`
	Total      string     `json:"total"`
	Ready      bool       `json:"ready"`
	Feedback   []Feedback `json:"feedback"`
}

// OrderSummary is a completed order for display.
type OrderSummary struct {
	Customer string   `json:"customer"`
	BunName  string   `json:"bunName"`
	Toppings []string `json:"toppings"`
	Total    string   `json:"total"`
	PlacedAt int64    `json:"ts"`
}

type StartSessionRequest struct {
	// DeviceID identifies the browser across sessions. Empty asks the server to assign one.
	DeviceID string `json:"deviceId"`
}

type StartSessionResponse struct {
	Token    string `json:"token"`
	DeviceID string `json:"deviceId"`
	State    State  `json:"state"`
}

type GetCatalogRequest struct{}

type GetCatalogResponse struct {
	Buns     []Bun     `json:"buns"`
	Toppings []Topping `json:"toppings"`
}

type LoginRequest struct {
	Name string `json:"name"`
}

type GetStateRequest struct{}

type SelectBunRequest struct {
	BunID string `json:"bunId"`
}

type ClearBunRequest struct{}

type ToggleToppingRequest struct {
	ToppingID string `json:"toppingId"`
}

type ConfirmBunRequest struct{}

type SaveFavoriteRequest struct{}

type ApplyFavoriteRequest struct{}

type RepeatLastRequest struct{}

type CheckoutRequest struct{}

type CheckoutResponse struct {
	State State `json:"state"`
	// Order is nil when the draft was not ready.
	Order *OrderSummary `json:"order"`
}

type ListHistoryRequest struct{}

type ListHistoryResponse struct {
	Orders []OrderSummary `json:"orders"`
}

type EndSessionRequest struct{}

type EndSessionResponse struct{}

// StateResponse is returned by every operation that only changes the builder state.
type StateResponse struct {
	State State `json:"state"`
}
