package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/brgrr/internal/models"
)

// Persisted keys. These are a stable contract with earlier sessions.
const (
	KeyUser      = "brgrr_user"
	KeyFavorite  = "brgrr_favorite"
	KeyLastOrder = "brgrr_last_order"
	KeyHistory   = "brgrr_history"
)

// Adapter exposes the builder's persisted scopes for one tab session on
// one device. Identity, last order and history live in the session store;
// the favorite lives in the device store. Writes to different scopes are
// not transactional.
type Adapter struct {
	session Store
	device  Store

	sessionNS string
	deviceNS  string
}

// NewAdapter binds the scopes of sessionID and deviceID to their stores.
func NewAdapter(session, device Store, sessionID, deviceID string) *Adapter {
	return &Adapter{
		session:   session,
		device:    device,
		sessionNS: SessionNamespace(sessionID),
		deviceNS:  DeviceNamespace(deviceID),
	}
}

// historyRecord is the persisted shape of a CompletedOrder.
type historyRecord struct {
	User     *string     `json:"user"`
	BunID    string      `json:"bunId"`
	BunName  string      `json:"bunName"`
	Toppings []string    `json:"toppings"`
	Total    json.Number `json:"total"`
	TS       int64       `json:"ts"`
}

// Selection is anything that can be saved as a combo. Combo returns an
// error when the selection is not complete enough to save.
type Selection interface {
	Combo() (models.Combo, error)
}

// SaveFavorite overwrites the favorite slot with the current selection.
// Nothing is written if sel cannot produce a combo; its error is returned
// unwrapped.
func (a *Adapter) SaveFavorite(ctx context.Context, sel Selection) error {
	combo, err := sel.Combo()
	if err != nil {
		return err
	}
	return a.putJSON(ctx, a.device, a.deviceNS, KeyFavorite, normalizeCombo(combo))
}

// LoadFavorite returns the saved favorite. found is false if none exists.
// The combo is returned as stored, without checking it against the catalog.
func (a *Adapter) LoadFavorite(ctx context.Context) (combo models.Combo, found bool, err error) {
	found, err = a.getJSON(ctx, a.device, a.deviceNS, KeyFavorite, &combo)
	return combo, found, err
}

// SaveLastOrder overwrites the session's last-order slot.
func (a *Adapter) SaveLastOrder(ctx context.Context, combo models.Combo) error {
	return a.putJSON(ctx, a.session, a.sessionNS, KeyLastOrder, normalizeCombo(combo))
}

// LoadLastOrder returns the session's last order. found is false if none exists.
func (a *Adapter) LoadLastOrder(ctx context.Context) (combo models.Combo, found bool, err error) {
	found, err = a.getJSON(ctx, a.session, a.sessionNS, KeyLastOrder, &combo)
	return combo, found, err
}

// AppendHistory reads the session history, appends order and writes the
// full sequence back.
func (a *Adapter) AppendHistory(ctx context.Context, order models.CompletedOrder) error {
	var records []historyRecord
	if _, err := a.getJSON(ctx, a.session, a.sessionNS, KeyHistory, &records); err != nil {
		return err
	}

	toppings := order.Toppings
	if toppings == nil {
		toppings = []string{}
	}
	records = append(records, historyRecord{
		User:     order.User,
		BunID:    order.BunID,
		BunName:  order.BunName,
		Toppings: toppings,
		Total:    json.Number(order.Total.String()),
		TS:       order.Timestamp.UnixMilli(),
	})

	return a.putJSON(ctx, a.session, a.sessionNS, KeyHistory, records)
}

// History returns the session's completed orders in checkout order.
func (a *Adapter) History(ctx context.Context) ([]models.CompletedOrder, error) {
	var records []historyRecord
	if _, err := a.getJSON(ctx, a.session, a.sessionNS, KeyHistory, &records); err != nil {
		return nil, err
	}

	orders := make([]models.CompletedOrder, 0, len(records))
	for i, r := range records {
		total, err := decimal.NewFromString(r.Total.String())
		if err != nil {
			return nil, fmt.Errorf("failed to parse total of history entry %d: %w", i, err)
		}
		orders = append(orders, models.CompletedOrder{
			User:      r.User,
			BunID:     r.BunID,
			BunName:   r.BunName,
			Toppings:  r.Toppings,
			Total:     total,
			Timestamp: time.UnixMilli(r.TS),
		})
	}
	return orders, nil
}

// SetIdentity stores the logged-in name, silently replacing any previous one.
func (a *Adapter) SetIdentity(ctx context.Context, name string) error {
	if err := a.session.Set(ctx, a.sessionNS, KeyUser, []byte(name)); err != nil {
		return fmt.Errorf("failed to store identity: %w", err)
	}
	return nil
}

// Identity returns the logged-in name. found is false for guests.
func (a *Adapter) Identity(ctx context.Context) (name string, found bool, err error) {
	raw, err := a.session.Get(ctx, a.sessionNS, KeyUser)
	if errors.Is(err, ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to load identity: %w", err)
	}
	return string(raw), true, nil
}

// EndSession drops every session-scoped key. The favorite is kept.
func (a *Adapter) EndSession(ctx context.Context) error {
	if err := a.session.DeleteNamespace(ctx, a.sessionNS); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// KeepAlive tells an expiring session store that the session is still in
// use. Stores that never expire data are not asked.
func (a *Adapter) KeepAlive(ctx context.Context, at time.Time) error {
	t, ok := a.session.(Toucher)
	if !ok {
		return nil
	}
	return t.Touch(ctx, a.sessionNS, at)
}

func (a *Adapter) putJSON(ctx context.Context, store Store, namespace, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := store.Set(ctx, namespace, key, raw); err != nil {
		return fmt.Errorf("failed to store %s: %w", key, err)
	}
	return nil
}

// getJSON decodes the value under key into v. A missing key leaves v
// untouched and reports found=false. A corrupt value is an error.
func (a *Adapter) getJSON(ctx context.Context, store Store, namespace, key string, v any) (bool, error) {
	raw, err := store.Get(ctx, namespace, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

func normalizeCombo(c models.Combo) models.Combo {
	if c.Toppings == nil {
		c.Toppings = []string{}
	}
	return c
}
