package journal

import "time"

// Event kinds recorded by the application.
const (
	KindLogin        = "login"
	KindRegistration = "registration"
	KindSolved       = "solved"
	KindExpiry       = "expiry"
)

// Event is a single usage record. Events are appended in chronological order.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Username  string    `json:"username"`
	Kind      string    `json:"kind"`
	Detail    string    `json:"detail,omitempty"`
}

// Recorder abstracts persistence of usage events. Implementations must be
// safe for concurrent use.
type Recorder interface {
	Append(event Event) error
	LoadAll() ([]Event, error)
}
