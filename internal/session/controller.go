// Package session owns the per-tab builder state.
//
// A Controller is the explicit state object for one tab session: its
// draft, identity and latest feedback. Every operation runs under the
// controller's lock, so a session behaves as a single logical thread even
// though the server handles requests concurrently.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mmynk/brgrr/internal/catalog"
	"github.com/mmynk/brgrr/internal/draft"
	"github.com/mmynk/brgrr/internal/metrics"
	"github.com/mmynk/brgrr/internal/models"
	"github.com/mmynk/brgrr/internal/orderlog"
	"github.com/mmynk/brgrr/internal/pricing"
	"github.com/mmynk/brgrr/internal/storage"
)

// Controller serializes all operations of one tab session.
type Controller struct {
	mu sync.Mutex

	id       string
	deviceID string
	catalog  *catalog.Catalog
	draft    *draft.Draft
	adapter  *storage.Adapter
	log      *orderlog.Log
	metrics  *metrics.Metrics

	user     *string
	feedback map[models.Field]models.Feedback

	lastSeen atomic.Int64
	// ended is set, under mu, once the session's storage has been cleared.
	ended bool
}

func newController(id, deviceID string, c *catalog.Catalog, adapter *storage.Adapter, m *metrics.Metrics) *Controller {
	ctrl := &Controller{
		id:       id,
		deviceID: deviceID,
		catalog:  c,
		draft:    draft.New(c),
		adapter:  adapter,
		log:      orderlog.New(adapter, c),
		metrics:  m,
		feedback: make(map[models.Field]models.Feedback),
	}
	ctrl.touch(time.Now())
	return ctrl
}

// ID returns the session id.
func (c *Controller) ID() string { return c.id }

// DeviceID returns the device the session was started on.
func (c *Controller) DeviceID() string { return c.deviceID }

func (c *Controller) touch(now time.Time) {
	c.lastSeen.Store(now.UnixNano())
}

func (c *Controller) idleSince() time.Time {
	return time.Unix(0, c.lastSeen.Load())
}

// restoreIdentity reloads a name stored by an earlier login in this session.
func (c *Controller) restoreIdentity(ctx context.Context) error {
	name, found, err := c.adapter.Identity(ctx)
	if err != nil {
		return err
	}
	if found {
		c.user = &name
	}
	return nil
}

// State returns a snapshot of the session.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Login stores name as the session identity. Blank names are ignored.
func (c *Controller) Login(ctx context.Context, name string) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ended {
		return State{}, ErrSessionEnded
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return c.snapshot(), nil
	}
	if err := c.adapter.SetIdentity(ctx, name); err != nil {
		return State{}, err
	}
	c.user = &name
	return c.snapshot(), nil
}

// SelectBun chooses a bun. Refused while the bun is confirmed; unknown ids
// are ignored.
func (c *Controller) SelectBun(bunID string) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.draft.BunConfirmed() {
		c.setFeedback("select_bun", models.FieldGeneral, models.LevelWarn, msgBunLocked)
		return c.snapshot()
	}
	c.draft.SelectBun(bunID)
	c.validate()
	return c.snapshot()
}

// ClearBun removes the bun selection. Refused while the bun is confirmed.
func (c *Controller) ClearBun() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.draft.BunConfirmed() {
		c.setFeedback("clear_bun", models.FieldGeneral, models.LevelWarn, msgBunLocked)
		return c.snapshot()
	}
	c.draft.ClearBun()
	c.validate()
	return c.snapshot()
}

// ToggleTopping adds or removes a topping.
func (c *Controller) ToggleTopping(toppingID string) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.draft.BunConfirmed() {
		c.setFeedback("toggle_topping", models.FieldGeneral, models.LevelWarn, msgToppingsEditable)
	}
	c.draft.ToggleTopping(toppingID)
	c.validate()
	return c.snapshot()
}

// ConfirmBun locks the bun selection.
func (c *Controller) ConfirmBun() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.draft.ConfirmBun(); err != nil {
		c.setFeedback("confirm_bun", models.FieldGeneral, models.LevelWarn, msgConfirmNeedsBun)
		return c.snapshot()
	}
	bun, _ := c.draft.Bun()
	c.setFeedback("confirm_bun", models.FieldGeneral, models.LevelSuccess, fmt.Sprintf(msgBunConfirmed, bun.Name))
	return c.snapshot()
}

// SaveFavorite stores the current selection as the device favorite.
func (c *Controller) SaveFavorite(ctx context.Context) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.adapter.SaveFavorite(ctx, c.draft)
	if errors.Is(err, draft.ErrNotReady) {
		c.setFeedback("save_favorite", models.FieldGeneral, models.LevelWarn, msgFavoriteIncomplete)
		return c.snapshot(), nil
	}
	if err != nil {
		return State{}, err
	}
	c.setFeedback("save_favorite", models.FieldGeneral, models.LevelSuccess, msgFavoriteSaved)
	return c.snapshot(), nil
}

// ApplyFavorite replaces the draft with the device favorite.
func (c *Controller) ApplyFavorite(ctx context.Context) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	combo, found, err := c.adapter.LoadFavorite(ctx)
	if err != nil {
		return State{}, err
	}
	if !found {
		c.setFeedback("apply_favorite", models.FieldGeneral, models.LevelWarn, msgNoFavorite)
		return c.snapshot(), nil
	}
	c.applyCombo(combo)
	c.setFeedback("apply_favorite", models.FieldGeneral, models.LevelSuccess, msgFavoriteApplied)
	return c.snapshot(), nil
}

// RepeatLast replaces the draft with this session's last order.
func (c *Controller) RepeatLast(ctx context.Context) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	combo, found, err := c.adapter.LoadLastOrder(ctx)
	if err != nil {
		return State{}, err
	}
	if !found {
		c.setFeedback("repeat_last", models.FieldGeneral, models.LevelWarn, msgNoLastOrder)
		return c.snapshot(), nil
	}
	c.applyCombo(combo)
	c.setFeedback("repeat_last", models.FieldGeneral, models.LevelSuccess, msgLastOrderApplied)
	return c.snapshot(), nil
}

// CheckoutResult is the outcome of a checkout. Order is nil when the draft
// was not ready.
type CheckoutResult struct {
	State   State
	Order   *models.CompletedOrder
	Summary *orderlog.Summary
}

// Checkout places the current draft as an order.
func (c *Controller) Checkout(ctx context.Context) (CheckoutResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ended {
		return CheckoutResult{}, ErrSessionEnded
	}
	order, err := c.log.Checkout(ctx, c.draft, c.user)
	if errors.Is(err, draft.ErrNotReady) {
		c.setFeedback("checkout", models.FieldGeneral, models.LevelWarn, msgCheckoutNotReady)
		return CheckoutResult{State: c.snapshot()}, nil
	}
	if err != nil {
		return CheckoutResult{}, err
	}
	c.metrics.Checkout(order.Total)
	c.setFeedback("checkout", models.FieldGeneral, models.LevelSuccess, msgOrderPlaced)

	summary := c.log.Summarize(*order)
	return CheckoutResult{State: c.snapshot(), Order: order, Summary: &summary}, nil
}

// History returns this session's orders, newest first, with display summaries.
func (c *Controller) History(ctx context.Context) ([]orderlog.Summary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	orders, err := c.log.RenderableHistory(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]orderlog.Summary, len(orders))
	for i, o := range orders {
		summaries[i] = c.log.Summarize(o)
	}
	return summaries, nil
}

func (c *Controller) applyCombo(combo models.Combo) {
	c.draft.ApplyCombo(combo)
	c.validate()
}

// validate refreshes the bun and toppings field feedback.
func (c *Controller) validate() {
	if _, ok := c.draft.Bun(); ok {
		c.feedback[models.FieldBun] = models.Feedback{Field: models.FieldBun, Level: models.LevelSuccess, Message: msgBunSelected}
	} else {
		c.feedback[models.FieldBun] = models.Feedback{Field: models.FieldBun, Level: models.LevelWarn, Message: msgBunMissing}
	}

	if len(c.draft.Toppings()) == 0 {
		c.feedback[models.FieldToppings] = models.Feedback{Field: models.FieldToppings, Level: models.LevelWarn, Message: msgToppingsMissing}
	} else {
		c.feedback[models.FieldToppings] = models.Feedback{Field: models.FieldToppings, Level: models.LevelSuccess, Message: msgToppingsSelected}
	}
}

func (c *Controller) setFeedback(operation string, field models.Field, level models.Level, msg string) {
	c.feedback[field] = models.Feedback{Field: field, Level: level, Message: msg}
	c.metrics.Feedback(operation, string(level))
}

// State is a read-only view of a session for the UI layer.
type State struct {
	SessionID string
	User      *string
	Welcome   string

	Bun          *catalog.Bun
	BunState     draft.BunState
	Toppings     []string
	Quote        pricing.Quote
	Ready        bool
	CanConfirm   bool
	BunLocked    bool
	FeedbackList []models.Feedback
}

// Feedback returns the latest message for field, if any.
func (s State) Feedback(field models.Field) (models.Feedback, bool) {
	for _, f := range s.FeedbackList {
		if f.Field == field {
			return f, true
		}
	}
	return models.Feedback{}, false
}

func (c *Controller) snapshot() State {
	s := State{
		SessionID:  c.id,
		BunState:   c.draft.BunState(),
		Toppings:   c.draft.Toppings(),
		Quote:      c.draft.Quote(),
		Ready:      c.draft.IsReadyForCheckout(),
		BunLocked:  c.draft.BunConfirmed(),
		CanConfirm: c.draft.BunState() == draft.BunSelected,
	}
	if bun, ok := c.draft.Bun(); ok {
		s.Bun = &bun
	}
	if c.user != nil {
		u := *c.user
		s.User = &u
		s.Welcome = fmt.Sprintf(msgWelcome, u)
	}
	for _, field := range []models.Field{models.FieldBun, models.FieldToppings, models.FieldGeneral} {
		if f, ok := c.feedback[field]; ok {
			s.FeedbackList = append(s.FeedbackList, f)
		}
	}
	return s
}
