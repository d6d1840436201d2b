package feedback

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"physics-tutor/internal/solver"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusReviewed Status = "reviewed"
)

var ErrNotFound = errors.New("feedback not found")

// Feedback captures one problem-solving interaction flagged by a user.
type Feedback struct {
	ID              string          `json:"id"`
	UserQuestion    string          `json:"userQuestion"`
	AIResponse      solver.Solution `json:"aiResponse"`
	AdminCorrection string          `json:"adminCorrection,omitempty"`
	Status          Status          `json:"status"`
}

// Collector is the in-memory feedback sequence, most recent first. It lives
// only for the process lifetime.
type Collector struct {
	mu    sync.Mutex
	items []Feedback
}

func NewCollector() *Collector {
	return &Collector{}
}

// Record stores a new pending feedback and returns it with a fresh opaque id.
func (c *Collector) Record(question string, response solver.Solution) Feedback {
	c.mu.Lock()
	defer c.mu.Unlock()
	fb := Feedback{
		ID:           uuid.NewString(),
		UserQuestion: question,
		AIResponse:   response,
		Status:       StatusPending,
	}
	c.items = append([]Feedback{fb}, c.items...)
	return fb
}

// Review attaches an admin correction and marks the feedback reviewed.
func (c *Collector) Review(id, correction string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].AdminCorrection = correction
			c.items[i].Status = StatusReviewed
			return nil
		}
	}
	return ErrNotFound
}

// List returns a snapshot copy, most recent first.
func (c *Collector) List() []Feedback {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Feedback, len(c.items))
	copy(out, c.items)
	return out
}

// PendingCount reports how many items still await review.
func (c *Collector) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, fb := range c.items {
		if fb.Status == StatusPending {
			n++
		}
	}
	return n
}
