package knowledge

import (
	"fmt"
	"sync"

	"physics-tutor/internal/store"
)

// VerifiedExample is an admin-curated question/solution pair. The collection
// is append-only; there is no update or delete.
type VerifiedExample struct {
	Question        string `json:"question"`
	CorrectSolution string `json:"correctSolution"`
}

// Base holds the verified examples, loaded from the store at startup and
// written through on every append.
type Base struct {
	mu       sync.Mutex
	st       store.Store
	examples []VerifiedExample
}

func NewBase(st store.Store) (*Base, error) {
	b := &Base{st: st}
	if _, err := store.GetJSON(st, store.KeyVerifiedExamples, &b.examples); err != nil {
		return nil, fmt.Errorf("load verified examples: %w", err)
	}
	return b, nil
}

func (b *Base) Add(question, correctSolution string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.examples = append(b.examples, VerifiedExample{Question: question, CorrectSolution: correctSolution})
	if err := store.SetJSON(b.st, store.KeyVerifiedExamples, b.examples); err != nil {
		return fmt.Errorf("persist verified examples: %w", err)
	}
	return nil
}

// List returns a read-only snapshot in insertion order.
func (b *Base) List() []VerifiedExample {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]VerifiedExample, len(b.examples))
	copy(out, b.examples)
	return out
}
