package session

import (
	"fmt"
	"log"
	"sync"
	"time"

	"physics-tutor/internal/account"
	"physics-tutor/internal/settings"
	"physics-tutor/internal/store"
)

// View selects the presentation surface. It is derived from session state but
// independently settable within the rules enforced by Navigate.
type View string

const (
	ViewLogin View = "login"
	ViewHome  View = "home"
	ViewAdmin View = "admin"
)

// Controller owns the single process-wide session: login, registration,
// restore, logout, the countdown and the persisted session pointer. All event
// handlers (user actions, timer ticks, startup restore) are serialized on one
// mutex.
type Controller struct {
	registry *account.Registry
	settings *settings.Service
	st       store.Store

	mu        sync.Mutex
	current   *account.Account
	remaining int
	view      View
	timer     *countdown
	notify    func(expired account.Account)
	tickEvery time.Duration
}

func New(reg *account.Registry, set *settings.Service, st store.Store) *Controller {
	return &Controller{
		registry:  reg,
		settings:  set,
		st:        st,
		view:      ViewLogin,
		tickEvery: time.Second,
	}
}

// OnExpire registers the callback that surfaces the forced-logout notice.
// It runs outside the controller lock, after the logout transition completed.
func (c *Controller) OnExpire(fn func(expired account.Account)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notify = fn
}

// Login admits a candidate. An ADMIN candidate bypasses registry validation
// entirely and self-registers if absent; credential checking belongs to the
// presentation layer, not here. Everyone else is admitted from the registry's
// stored account, never from the caller-supplied value.
func (c *Controller) Login(candidate account.Account) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if candidate.Role == account.RoleAdmin {
		if err := c.registry.BootstrapAdminIfMissing(candidate); err != nil {
			return err
		}
		return c.startLocked(candidate, ViewAdmin)
	}

	a, ok := c.registry.FindByUsername(candidate.Username)
	if !ok {
		return ErrNotRegistered
	}
	if a.IsBanned {
		return ErrBanned
	}
	return c.startLocked(a, ViewHome)
}

// Register creates the account and logs it straight in. The registry returns
// the canonical created entity, so no re-fetch is needed between the two
// steps.
func (c *Controller) Register(username string) (account.Account, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	a, err := c.registry.Register(username)
	if err != nil {
		return account.Account{}, err
	}
	if err := c.startLocked(a, ViewHome); err != nil {
		return account.Account{}, err
	}
	return a, nil
}

// RestoreFromStorage re-establishes a persisted session at startup. The saved
// snapshot is only a pointer: the account is re-resolved against the current
// registry, so deletions and bans applied while logged out take effect. The
// countdown restarts at the full allowance; no timestamp is persisted.
func (c *Controller) RestoreFromStorage() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var saved account.Account
	ok, err := store.GetJSON(c.st, store.KeyCurrentSession, &saved)
	if err != nil {
		return fmt.Errorf("read saved session: %w", err)
	}
	if !ok {
		return nil
	}

	a, found := c.registry.FindByUsername(saved.Username)
	if !found || (a.IsBanned && a.Role != account.RoleAdmin) {
		if err := c.st.Remove(store.KeyCurrentSession); err != nil {
			log.Printf("failed to clear stale session: %v", err)
		}
		return ErrStaleSession
	}

	view := ViewHome
	if a.Role == account.RoleAdmin {
		view = ViewAdmin
	}
	return c.startLocked(a, view)
}

// Logout ends the session: countdown stopped, session pointer cleared, view
// back to login.
func (c *Controller) Logout() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.logoutLocked()
}

// Navigate switches the presentation surface. The admin view requires an
// ADMIN session and the login view is unreachable while a session is active.
func (c *Controller) Navigate(v View) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch v {
	case ViewAdmin:
		if c.current == nil || c.current.Role != account.RoleAdmin {
			return ErrViewDenied
		}
	case ViewLogin:
		if c.current != nil {
			return ErrViewDenied
		}
	case ViewHome:
		if c.current == nil {
			return ErrViewDenied
		}
	default:
		return ErrViewDenied
	}
	c.view = v
	return nil
}

// Current returns a copy of the active session's account snapshot.
func (c *Controller) Current() (account.Account, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return account.Account{}, false
	}
	return *c.current, true
}

// Remaining reports the countdown in seconds. Zero for admin sessions, which
// have no limit.
func (c *Controller) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// startLocked enters the session for a, replacing whatever was active. The
// snapshot is persisted before the countdown starts, so a crash right after
// login still restores.
func (c *Controller) startLocked(a account.Account, view View) error {
	c.stopTimerLocked()
	snapshot := a
	c.current = &snapshot
	c.view = view
	c.remaining = 0
	if a.Role == account.RoleUser {
		c.remaining = c.allowanceMinutes(a) * 60
	}
	if err := store.SetJSON(c.st, store.KeyCurrentSession, a); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	if a.Role == account.RoleUser && c.remaining > 0 {
		c.startTimerLocked()
	}
	return nil
}

// allowanceMinutes evaluates the effective allowance at session start: the
// personal limit when set, the global default otherwise. It is not
// re-evaluated mid-session.
func (c *Controller) allowanceMinutes(a account.Account) int {
	if a.SessionLimitMinutes != nil {
		return *a.SessionLimitMinutes
	}
	return c.settings.Get()
}

func (c *Controller) logoutLocked() error {
	c.stopTimerLocked()
	c.current = nil
	c.remaining = 0
	c.view = ViewLogin
	if err := c.st.Remove(store.KeyCurrentSession); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
