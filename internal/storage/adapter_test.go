package storage_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/brgrr/internal/models"
	"github.com/mmynk/brgrr/internal/storage"
	"github.com/mmynk/brgrr/internal/storage/memory"
)

type fixedSelection struct {
	combo models.Combo
	err   error
}

func (f fixedSelection) Combo() (models.Combo, error) {
	return f.combo, f.err
}

func newAdapter(sessionID, deviceID string) (*storage.Adapter, *memory.MemoryStore, *memory.MemoryStore) {
	session := memory.New()
	device := memory.New()
	return storage.NewAdapter(session, device, sessionID, deviceID), session, device
}

func TestFavorite(t *testing.T) {
	ctx := context.Background()

	t.Run("missing favorite is not found", func(t *testing.T) {
		a, _, _ := newAdapter("s1", "d1")
		_, found, err := a.LoadFavorite(ctx)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("save then load returns same selection", func(t *testing.T) {
		a, _, _ := newAdapter("s1", "d1")
		saved := models.Combo{BunID: "sesame", Toppings: []string{"patty", "cheese"}}
		require.NoError(t, a.SaveFavorite(ctx, fixedSelection{combo: saved}))

		loaded, found, err := a.LoadFavorite(ctx)
		require.NoError(t, err)
		require.True(t, found)
		assert.True(t, saved.SameSelection(loaded))
	})

	t.Run("incomplete selection writes nothing", func(t *testing.T) {
		a, session, device := newAdapter("s1", "d1")
		notReady := errors.New("not ready")

		err := a.SaveFavorite(ctx, fixedSelection{err: notReady})
		assert.ErrorIs(t, err, notReady)
		assert.Zero(t, device.Writes())
		assert.Zero(t, session.Writes())
	})

	t.Run("favorite survives session end", func(t *testing.T) {
		session := memory.New()
		device := memory.New()
		first := storage.NewAdapter(session, device, "s1", "d1")
		require.NoError(t, first.SaveFavorite(ctx, fixedSelection{combo: models.Combo{BunID: "classic", Toppings: []string{"egg"}}}))
		require.NoError(t, first.EndSession(ctx))

		second := storage.NewAdapter(session, device, "s2", "d1")
		combo, found, err := second.LoadFavorite(ctx)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "classic", combo.BunID)
	})

	t.Run("stored favorite is not validated", func(t *testing.T) {
		a, _, device := newAdapter("s1", "d1")
		require.NoError(t, device.Set(ctx, storage.DeviceNamespace("d1"), storage.KeyFavorite,
			[]byte(`{"bunId":"pretzel","toppings":["truffle"]}`)))

		combo, found, err := a.LoadFavorite(ctx)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, models.Combo{BunID: "pretzel", Toppings: []string{"truffle"}}, combo)
	})

	t.Run("corrupt favorite is an error", func(t *testing.T) {
		a, _, device := newAdapter("s1", "d1")
		require.NoError(t, device.Set(ctx, storage.DeviceNamespace("d1"), storage.KeyFavorite, []byte(`{not json`)))

		_, _, err := a.LoadFavorite(ctx)
		assert.Error(t, err)
	})

	t.Run("wire format", func(t *testing.T) {
		a, _, device := newAdapter("s1", "d1")
		require.NoError(t, a.SaveFavorite(ctx, fixedSelection{combo: models.Combo{BunID: "classic"}}))

		raw, err := device.Get(ctx, storage.DeviceNamespace("d1"), storage.KeyFavorite)
		require.NoError(t, err)
		assert.JSONEq(t, `{"bunId":"classic","toppings":[]}`, string(raw))
	})
}

func TestLastOrder(t *testing.T) {
	ctx := context.Background()
	a, _, _ := newAdapter("s1", "d1")

	_, found, err := a.LoadLastOrder(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, a.SaveLastOrder(ctx, models.Combo{BunID: "classic", Toppings: []string{"lettuce"}}))
	require.NoError(t, a.SaveLastOrder(ctx, models.Combo{BunID: "brioche", Toppings: []string{"bacon"}}))

	combo, found, err := a.LoadLastOrder(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "brioche", combo.BunID)

	require.NoError(t, a.EndSession(ctx))
	_, found, err = a.LoadLastOrder(ctx)
	require.NoError(t, err)
	assert.False(t, found, "last order is session scoped")
}

func TestHistory(t *testing.T) {
	ctx := context.Background()

	t.Run("empty history", func(t *testing.T) {
		a, _, _ := newAdapter("s1", "d1")
		orders, err := a.History(ctx)
		require.NoError(t, err)
		assert.Empty(t, orders)
	})

	t.Run("append keeps checkout order", func(t *testing.T) {
		a, _, _ := newAdapter("s1", "d1")
		name := "Ada"
		ts := time.UnixMilli(1700000000123)

		require.NoError(t, a.AppendHistory(ctx, models.CompletedOrder{
			User: &name, BunID: "classic", BunName: "Classic",
			Toppings: []string{"lettuce", "tomato"},
			Total:    decimal.RequireFromString("3.00"), Timestamp: ts,
		}))
		require.NoError(t, a.AppendHistory(ctx, models.CompletedOrder{
			BunID: "sesame", BunName: "Sesame",
			Toppings: []string{"patty"},
			Total:    decimal.RequireFromString("6.50"), Timestamp: ts.Add(time.Second),
		}))

		orders, err := a.History(ctx)
		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, "classic", orders[0].BunID)
		assert.Equal(t, "Ada", orders[0].Customer())
		assert.True(t, orders[0].Total.Equal(decimal.RequireFromString("3")))
		assert.Equal(t, ts.UnixMilli(), orders[0].Timestamp.UnixMilli())
		assert.Equal(t, "sesame", orders[1].BunID)
		assert.Nil(t, orders[1].User)
	})

	t.Run("wire format uses numeric total and ms timestamp", func(t *testing.T) {
		a, session, _ := newAdapter("s1", "d1")
		require.NoError(t, a.AppendHistory(ctx, models.CompletedOrder{
			BunID: "sesame", BunName: "Sesame",
			Toppings: []string{"patty", "cheese"},
			Total:    decimal.RequireFromString("7.50"), Timestamp: time.UnixMilli(42),
		}))

		raw, err := session.Get(ctx, storage.SessionNamespace("s1"), storage.KeyHistory)
		require.NoError(t, err)
		assert.JSONEq(t,
			`[{"user":null,"bunId":"sesame","bunName":"Sesame","toppings":["patty","cheese"],"total":7.5,"ts":42}]`,
			string(raw))
	})

	t.Run("reads history written by the browser", func(t *testing.T) {
		a, session, _ := newAdapter("s1", "d1")
		legacy := []map[string]any{{
			"user": "Bo", "bunId": "brioche", "bunName": "Brioche",
			"toppings": []string{"egg"}, "total": 4.2, "ts": 1700000000000,
		}}
		raw, _ := json.Marshal(legacy)
		require.NoError(t, session.Set(ctx, storage.SessionNamespace("s1"), storage.KeyHistory, raw))

		orders, err := a.History(ctx)
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, "4.20", orders[0].Total.StringFixed(2))
	})
}

func TestIdentity(t *testing.T) {
	ctx := context.Background()
	a, _, _ := newAdapter("s1", "d1")

	_, found, err := a.Identity(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, a.SetIdentity(ctx, "Ada"))
	require.NoError(t, a.SetIdentity(ctx, "Grace"))

	name, found, err := a.Identity(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Grace", name, "second login overwrites silently")

	require.NoError(t, a.EndSession(ctx))
	_, found, err = a.Identity(ctx)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	session := memory.New()
	device := memory.New()

	a := storage.NewAdapter(session, device, "s1", "d1")
	b := storage.NewAdapter(session, device, "s2", "d1")

	require.NoError(t, a.SetIdentity(ctx, "Ada"))
	_, found, err := b.Identity(ctx)
	require.NoError(t, err)
	assert.False(t, found)
}
