package report

import (
	"strings"
	"testing"
	"time"

	"physics-tutor/internal/journal"
)

func TestAnalyzeDayFiltersByDate(t *testing.T) {
	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	events := []journal.Event{
		{Timestamp: day.Add(9 * time.Hour), Username: "u1", Kind: journal.KindLogin},
		{Timestamp: day.Add(10 * time.Hour), Username: "u1", Kind: journal.KindSolved},
		{Timestamp: day.Add(11 * time.Hour), Username: "u2", Kind: journal.KindRegistration},
		{Timestamp: day.Add(12 * time.Hour), Username: "u2", Kind: journal.KindExpiry},
		// previous day, must be ignored
		{Timestamp: day.Add(-time.Hour), Username: "u3", Kind: journal.KindLogin},
		// next day, must be ignored
		{Timestamp: day.Add(25 * time.Hour), Username: "u4", Kind: journal.KindLogin},
	}

	stats := AnalyzeDay(events, day.Add(15*time.Hour))
	if stats.Date != "2026-08-30" {
		t.Fatalf("unexpected date: %s", stats.Date)
	}
	if stats.Logins != 1 || stats.Solved != 1 || stats.Registrations != 1 || stats.Expiries != 1 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
	if stats.ActiveUsers != 2 {
		t.Fatalf("want 2 active users, got %d", stats.ActiveUsers)
	}
}

func TestSummaryMentionsEverything(t *testing.T) {
	stats := &DailyStats{Date: "2026-08-30", Logins: 3, Registrations: 1, Solved: 5, Expiries: 2, ActiveUsers: 4}
	s := stats.Summary(7, 1)
	for _, want := range []string{"2026-08-30", "Logins: 3", "New registrations: 1", "Problems solved: 5", "Forced expiries: 2", "awaiting review: 7", "Banned accounts: 1"} {
		if !strings.Contains(s, want) {
			t.Fatalf("summary missing %q:\n%s", want, s)
		}
	}
}
