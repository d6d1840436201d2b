package settings

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"physics-tutor/internal/store"
)

var ErrInvalidLimit = errors.New("limit must be a positive number of minutes")

// DefaultSessionMinutes is the fleet-wide fallback used when nothing has been
// persisted yet.
const DefaultSessionMinutes = 30

// Service owns the global default session length. The value is persisted as a
// plain integer string under its own key, independent of the account registry.
type Service struct {
	mu      sync.Mutex
	st      store.Store
	minutes int
}

func New(st store.Store) *Service {
	s := &Service{st: st, minutes: DefaultSessionMinutes}
	data, err := st.Get(store.KeySessionLimit)
	if err != nil || data == nil {
		return s
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || n <= 0 {
		// unreadable saved value falls back to the default
		return s
	}
	s.minutes = n
	return s
}

// Get returns the current global default in minutes.
func (s *Service) Get() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.minutes
}

// Set updates and persists the global default. Already-active sessions keep
// counting down from their original allowance.
func (s *Service) Set(minutes int) error {
	if minutes <= 0 {
		return ErrInvalidLimit
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.st.Set(store.KeySessionLimit, []byte(strconv.Itoa(minutes))); err != nil {
		return fmt.Errorf("persist session limit: %w", err)
	}
	s.minutes = minutes
	return nil
}
