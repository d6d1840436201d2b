package session

import "errors"

var (
	// ErrNotRegistered rejects a login for a username the registry does not know.
	ErrNotRegistered = errors.New("account not registered")
	// ErrBanned rejects a login for a banned non-admin account.
	ErrBanned = errors.New("account access is blocked")
	// ErrSessionExpired marks the forced logout performed when the countdown
	// reaches zero. It is delivered through the expiry notifier, not returned.
	ErrSessionExpired = errors.New("session time limit reached")
	// ErrStaleSession is reported when a persisted session cannot be restored
	// because its account was removed or banned in the meantime.
	ErrStaleSession = errors.New("saved session is no longer valid")
	// ErrViewDenied rejects a navigation the current session is not entitled to.
	ErrViewDenied = errors.New("view not available")
)
