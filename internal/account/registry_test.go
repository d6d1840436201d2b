package account

import (
	"errors"
	"testing"

	"physics-tutor/internal/store"
)

func newTestRegistry(t *testing.T) (*Registry, *store.Memory) {
	t.Helper()
	st := store.NewMemory()
	r, err := NewRegistry(st)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	return r, st
}

func countByName(r *Registry, name string) int {
	n := 0
	for _, a := range r.List() {
		if a.Username == name {
			n++
		}
	}
	return n
}

func TestRegisterUniqueness(t *testing.T) {
	r, _ := newTestRegistry(t)

	a, err := r.Register("dup")
	if err != nil {
		t.Fatalf("first register: %v", err)
	}
	if a.Role != RoleUser || a.IsBanned || a.SessionLimitMinutes != nil {
		t.Fatalf("unexpected new account: %+v", a)
	}
	if a.RegistrationDate == "" {
		t.Fatalf("registration date not set")
	}

	before := len(r.List())
	if _, err := r.Register("dup"); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("want ErrAlreadyExists, got %v", err)
	}
	if len(r.List()) != before {
		t.Fatalf("failed register mutated the registry")
	}
	if countByName(r, "dup") != 1 {
		t.Fatalf("want exactly one dup account, got %d", countByName(r, "dup"))
	}
}

func TestToggleBan(t *testing.T) {
	r, _ := newTestRegistry(t)
	if _, err := r.Register("u1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := r.ToggleBan("u1"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	a, _ := r.FindByUsername("u1")
	if !a.IsBanned {
		t.Fatalf("ban not applied")
	}
	if err := r.ToggleBan("u1"); err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	a, _ = r.FindByUsername("u1")
	if a.IsBanned {
		t.Fatalf("ban not lifted")
	}

	if err := r.ToggleBan("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestSetPersonalLimit(t *testing.T) {
	r, _ := newTestRegistry(t)
	if _, err := r.Register("u1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := r.SetPersonalLimit("u1", 0); !errors.Is(err, ErrInvalidLimit) {
		t.Fatalf("want ErrInvalidLimit, got %v", err)
	}
	if err := r.SetPersonalLimit("u1", 5); err != nil {
		t.Fatalf("set: %v", err)
	}
	a, _ := r.FindByUsername("u1")
	if a.SessionLimitMinutes == nil || *a.SessionLimitMinutes != 5 {
		t.Fatalf("limit not stored: %+v", a)
	}
	if err := r.SetPersonalLimit("missing", 5); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestBootstrapAdminIfMissing(t *testing.T) {
	r, _ := newTestRegistry(t)
	admin := Account{Username: "root", Role: RoleAdmin, RegistrationDate: "2024-01-01"}

	before := len(r.List())
	if err := r.BootstrapAdminIfMissing(admin); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if len(r.List()) != before+1 {
		t.Fatalf("admin not appended")
	}
	// second call is a no-op
	if err := r.BootstrapAdminIfMissing(admin); err != nil {
		t.Fatalf("bootstrap again: %v", err)
	}
	if countByName(r, "root") != 1 {
		t.Fatalf("bootstrap duplicated the admin")
	}
}

func TestRegistryRoundTrip(t *testing.T) {
	r, st := newTestRegistry(t)
	if _, err := r.Register("u1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := r.SetPersonalLimit("u1", 7); err != nil {
		t.Fatalf("limit: %v", err)
	}
	if err := r.ToggleBan("u1"); err != nil {
		t.Fatalf("ban: %v", err)
	}

	// a second registry over the same store sees the committed state
	r2, err := NewRegistry(st)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	want := r.List()
	got := r2.List()
	if len(got) != len(want) {
		t.Fatalf("want %d accounts, got %d", len(want), len(got))
	}
	for i := range want {
		w, g := want[i], got[i]
		if w.Username != g.Username || w.Role != g.Role || w.IsBanned != g.IsBanned || w.RegistrationDate != g.RegistrationDate {
			t.Fatalf("account %d mismatch: %+v vs %+v", i, w, g)
		}
		if (w.SessionLimitMinutes == nil) != (g.SessionLimitMinutes == nil) {
			t.Fatalf("account %d limit presence mismatch", i)
		}
		if w.SessionLimitMinutes != nil && *w.SessionLimitMinutes != *g.SessionLimitMinutes {
			t.Fatalf("account %d limit mismatch", i)
		}
	}
}

func TestFreshStoreIsSeeded(t *testing.T) {
	r, _ := newTestRegistry(t)
	if len(r.List()) == 0 {
		t.Fatalf("fresh registry not seeded")
	}
	a, ok := r.FindByUsername("admin")
	if !ok || a.Role != RoleAdmin {
		t.Fatalf("seed admin missing: %+v", a)
	}
}
