package journal

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestAppendAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "journal.jsonl")
	r, err := NewFileRecorder(path)
	if err != nil {
		t.Fatalf("init: %v", err)
	}

	now := time.Now().UTC().Truncate(time.Second)
	events := []Event{
		{Timestamp: now, Username: "u1", Kind: KindLogin},
		{Timestamp: now.Add(time.Minute), Username: "u1", Kind: KindSolved, Detail: "projectile motion"},
		{Timestamp: now.Add(2 * time.Minute), Username: "u1", Kind: KindExpiry},
	}
	for _, ev := range events {
		if err := r.Append(ev); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := r.LoadAll()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != len(events) {
		t.Fatalf("want %d events, got %d", len(events), len(got))
	}
	for i := range events {
		if got[i].Kind != events[i].Kind || got[i].Username != events[i].Username || got[i].Detail != events[i].Detail {
			t.Fatalf("event %d mismatch: %+v vs %+v", i, got[i], events[i])
		}
	}
}

func TestLoadSkipsTornLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.jsonl")
	r, err := NewFileRecorder(path)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := r.Append(Event{Timestamp: time.Now(), Username: "u1", Kind: KindLogin}); err != nil {
		t.Fatalf("append: %v", err)
	}
	// simulate a torn write
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := f.WriteString("{\"timestamp\":\n"); err != nil {
		t.Fatalf("write: %v", err)
	}
	_ = f.Close()
	if err := r.Append(Event{Timestamp: time.Now(), Username: "u2", Kind: KindLogin}); err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := r.LoadAll()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 intact events, got %d", len(got))
	}
}
