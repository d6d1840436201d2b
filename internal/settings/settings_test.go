package settings

import (
	"errors"
	"testing"

	"physics-tutor/internal/store"
)

func TestDefaultOnFreshStore(t *testing.T) {
	s := New(store.NewMemory())
	if got := s.Get(); got != DefaultSessionMinutes {
		t.Fatalf("want default %d, got %d", DefaultSessionMinutes, got)
	}
}

func TestSetPersistsAndReloads(t *testing.T) {
	st := store.NewMemory()
	s := New(st)
	if err := s.Set(45); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got := s.Get(); got != 45 {
		t.Fatalf("want 45, got %d", got)
	}
	if got := New(st).Get(); got != 45 {
		t.Fatalf("reload: want 45, got %d", got)
	}
}

func TestSetRejectsNonPositive(t *testing.T) {
	s := New(store.NewMemory())
	for _, m := range []int{0, -5} {
		if err := s.Set(m); !errors.Is(err, ErrInvalidLimit) {
			t.Fatalf("Set(%d): want ErrInvalidLimit, got %v", m, err)
		}
	}
	if got := s.Get(); got != DefaultSessionMinutes {
		t.Fatalf("rejected set mutated value: %d", got)
	}
}

func TestMalformedSavedValueFallsBack(t *testing.T) {
	st := store.NewMemory()
	if err := st.Set(store.KeySessionLimit, []byte("banana")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if got := New(st).Get(); got != DefaultSessionMinutes {
		t.Fatalf("want default on malformed value, got %d", got)
	}
}
