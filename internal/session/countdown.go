package session

import (
	"log"
	"sync"
	"time"
)

// countdown is the cancellation handle for one timer instance. A session
// change always stops the old instance and, for a fresh user login, starts a
// new one; there is no carry-over between instances. halt is idempotent, so
// stopping a timer that already ran out is safe.
type countdown struct {
	stop chan struct{}
	once sync.Once
}

func (cd *countdown) halt() {
	cd.once.Do(func() { close(cd.stop) })
}

func (c *Controller) startTimerLocked() {
	cd := &countdown{stop: make(chan struct{})}
	c.timer = cd
	go c.runCountdown(cd)
}

func (c *Controller) stopTimerLocked() {
	if c.timer != nil {
		c.timer.halt()
		c.timer = nil
	}
}

func (c *Controller) runCountdown(cd *countdown) {
	ticker := time.NewTicker(c.tickEvery)
	defer ticker.Stop()
	for {
		select {
		case <-cd.stop:
			return
		case <-ticker.C:
			if c.tick(cd) {
				return
			}
		}
	}
}

// tick handles one countdown second and reports whether the timer is done.
// The cd identity check makes a tick that raced with logout or a fresh login
// a no-op, so expiry fires at most once per timer instance.
func (c *Controller) tick(cd *countdown) bool {
	c.mu.Lock()
	if c.timer != cd || c.current == nil {
		c.mu.Unlock()
		return true
	}
	c.remaining--
	if c.remaining > 0 {
		c.mu.Unlock()
		return false
	}
	expired := *c.current
	notify := c.notify
	if err := c.logoutLocked(); err != nil {
		log.Printf("forced logout cleanup: %v", err)
	}
	c.mu.Unlock()

	log.Printf("forced logout for %q: %v", expired.Username, ErrSessionExpired)
	if notify != nil {
		notify(expired)
	}
	return true
}
