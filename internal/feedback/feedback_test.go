package feedback

import (
	"errors"
	"testing"

	"physics-tutor/internal/solver"
)

func TestRecordPrependsPending(t *testing.T) {
	c := NewCollector()

	first := c.Record("q1", solver.Solution{Result: "1 N"})
	second := c.Record("q2", solver.Solution{Result: "2 N"})

	if first.ID == "" || second.ID == "" || first.ID == second.ID {
		t.Fatalf("ids not unique: %q %q", first.ID, second.ID)
	}
	if first.Status != StatusPending {
		t.Fatalf("want pending status, got %s", first.Status)
	}

	got := c.List()
	if len(got) != 2 {
		t.Fatalf("want 2 items, got %d", len(got))
	}
	if got[0].UserQuestion != "q2" || got[1].UserQuestion != "q1" {
		t.Fatalf("not most-recent-first: %v", got)
	}
}

func TestReview(t *testing.T) {
	c := NewCollector()
	fb := c.Record("q1", solver.Solution{Result: "1 N"})

	if c.PendingCount() != 1 {
		t.Fatalf("want 1 pending, got %d", c.PendingCount())
	}
	if err := c.Review(fb.ID, "actually 2 N"); err != nil {
		t.Fatalf("review: %v", err)
	}
	got := c.List()[0]
	if got.Status != StatusReviewed || got.AdminCorrection != "actually 2 N" {
		t.Fatalf("review not stored: %+v", got)
	}
	if c.PendingCount() != 0 {
		t.Fatalf("want 0 pending, got %d", c.PendingCount())
	}

	if err := c.Review("no-such-id", "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
