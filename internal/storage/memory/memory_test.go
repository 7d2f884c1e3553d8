package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/mmynk/brgrr/internal/storage"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := New()

	t.Run("Get missing key returns ErrNotFound", func(t *testing.T) {
		_, err := store.Get(ctx, "session:a", "k")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Set then Get", func(t *testing.T) {
		if err := store.Set(ctx, "session:a", "k", []byte("v1")); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		got, err := store.Get(ctx, "session:a", "k")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if string(got) != "v1" {
			t.Errorf("got %q, want v1", got)
		}
	})

	t.Run("returned value is a copy", func(t *testing.T) {
		got, _ := store.Get(ctx, "session:a", "k")
		got[0] = 'X'
		again, _ := store.Get(ctx, "session:a", "k")
		if string(again) != "v1" {
			t.Errorf("stored value mutated through Get: %q", again)
		}
	})

	t.Run("DeleteNamespace leaves other namespaces", func(t *testing.T) {
		store.Set(ctx, "device:d", "k", []byte("keep"))
		if err := store.DeleteNamespace(ctx, "session:a"); err != nil {
			t.Fatalf("DeleteNamespace failed: %v", err)
		}
		if _, err := store.Get(ctx, "session:a", "k"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected session key to be gone, got %v", err)
		}
		if v, err := store.Get(ctx, "device:d", "k"); err != nil || string(v) != "keep" {
			t.Errorf("device key lost: %q %v", v, err)
		}
	})

	t.Run("Writes counts Set calls", func(t *testing.T) {
		s := New()
		s.Set(ctx, "n", "a", nil)
		s.Set(ctx, "n", "a", nil)
		if s.Writes() != 2 {
			t.Errorf("Writes() = %d, want 2", s.Writes())
		}
	})
}
