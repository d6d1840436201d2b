package account

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"physics-tutor/internal/store"
)

var (
	ErrAlreadyExists = errors.New("username already taken")
	ErrNotFound      = errors.New("account not found")
	ErrInvalidLimit  = errors.New("limit must be a positive number of minutes")
)

const dateLayout = "2006-01-02"

// Registry is the authoritative, insertion-ordered list of known accounts.
// Usernames are unique; every mutation is written through to the store before
// the call returns.
type Registry struct {
	mu       sync.Mutex
	st       store.Store
	accounts []Account
}

// NewRegistry loads the registry from the store. A first run with no saved
// accounts is seeded so the admin view is never empty on a fresh install.
func NewRegistry(st store.Store) (*Registry, error) {
	r := &Registry{st: st}
	var accounts []Account
	ok, err := store.GetJSON(st, store.KeyUsers, &accounts)
	if err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}
	if !ok {
		accounts = seedAccounts()
		if err := store.SetJSON(st, store.KeyUsers, accounts); err != nil {
			return nil, fmt.Errorf("seed accounts: %w", err)
		}
	}
	r.accounts = accounts
	return r, nil
}

func seedAccounts() []Account {
	limit := 45
	return []Account{
		{Username: "admin", Role: RoleAdmin, RegistrationDate: "2023-01-01"},
		{Username: "student1", Role: RoleUser, RegistrationDate: "2023-10-15", SessionLimitMinutes: &limit},
		{Username: "student2", Role: RoleUser, IsBanned: true, RegistrationDate: "2023-10-20"},
	}
}

// FindByUsername returns a copy of the first account matching name exactly,
// scanning in insertion order.
func (r *Registry) FindByUsername(name string) (Account, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findLocked(name)
}

func (r *Registry) findLocked(name string) (Account, bool) {
	for _, a := range r.accounts {
		if a.Username == name {
			return a, true
		}
	}
	return Account{}, false
}

// Register creates a regular user account and returns the canonical created
// entity, so callers never need to re-fetch it.
func (r *Registry) Register(name string) (Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.findLocked(name); ok {
		return Account{}, ErrAlreadyExists
	}
	a := Account{
		Username:         name,
		Role:             RoleUser,
		RegistrationDate: time.Now().Format(dateLayout),
	}
	r.accounts = append(r.accounts, a)
	if err := r.persistLocked(); err != nil {
		return Account{}, err
	}
	return a, nil
}

// ToggleBan flips the ban flag on the named account. Banning is a soft flag;
// accounts are never removed.
func (r *Registry) ToggleBan(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.accounts {
		if r.accounts[i].Username == name {
			r.accounts[i].IsBanned = !r.accounts[i].IsBanned
			return r.persistLocked()
		}
	}
	return ErrNotFound
}

// SetPersonalLimit sets the per-account session allowance in minutes. It does
// not touch a session that is already running.
func (r *Registry) SetPersonalLimit(name string, minutes int) error {
	if minutes <= 0 {
		return ErrInvalidLimit
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.accounts {
		if r.accounts[i].Username == name {
			m := minutes
			r.accounts[i].SessionLimitMinutes = &m
			return r.persistLocked()
		}
	}
	return ErrNotFound
}

// BootstrapAdminIfMissing inserts the given admin account unless an account
// with that username already exists. It keeps administrative access from ever
// being locked out by an empty registry.
func (r *Registry) BootstrapAdminIfMissing(a Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.findLocked(a.Username); ok {
		return nil
	}
	r.accounts = append(r.accounts, a)
	return r.persistLocked()
}

// List returns a snapshot copy in insertion order.
func (r *Registry) List() []Account {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Account, len(r.accounts))
	copy(out, r.accounts)
	return out
}

func (r *Registry) persistLocked() error {
	if err := store.SetJSON(r.st, store.KeyUsers, r.accounts); err != nil {
		return fmt.Errorf("persist accounts: %w", err)
	}
	return nil
}
