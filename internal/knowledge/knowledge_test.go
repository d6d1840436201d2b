package knowledge

import (
	"testing"

	"physics-tutor/internal/store"
)

func TestAddAndList(t *testing.T) {
	st := store.NewMemory()
	b, err := NewBase(st)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if got := b.List(); len(got) != 0 {
		t.Fatalf("fresh base not empty: %v", got)
	}

	if err := b.Add("q1", "s1"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := b.Add("q2", "s2"); err != nil {
		t.Fatalf("add: %v", err)
	}

	got := b.List()
	if len(got) != 2 || got[0].Question != "q1" || got[1].CorrectSolution != "s2" {
		t.Fatalf("unexpected examples: %v", got)
	}

	// mutating the snapshot does not touch the base
	got[0].Question = "hacked"
	if b.List()[0].Question != "q1" {
		t.Fatalf("snapshot aliases internal state")
	}
}

func TestRoundTrip(t *testing.T) {
	st := store.NewMemory()
	b, err := NewBase(st)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := b.Add("q1", "s1"); err != nil {
		t.Fatalf("add: %v", err)
	}

	b2, err := NewBase(st)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	got := b2.List()
	if len(got) != 1 || got[0] != (VerifiedExample{Question: "q1", CorrectSolution: "s1"}) {
		t.Fatalf("round trip lost data: %v", got)
	}
}

func TestCorruptBlobReadsAsEmpty(t *testing.T) {
	st := store.NewMemory()
	if err := st.Set(store.KeyVerifiedExamples, []byte("{oops")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	b, err := NewBase(st)
	if err != nil {
		t.Fatalf("corrupt blob must not fail startup: %v", err)
	}
	if got := b.List(); len(got) != 0 {
		t.Fatalf("corrupt blob produced examples: %v", got)
	}
}
