package report

import (
	"fmt"
	"strings"
	"time"

	"physics-tutor/internal/journal"
)

// DailyStats aggregates one day of journal activity.
type DailyStats struct {
	Date          string `json:"date"`
	Logins        int    `json:"logins"`
	Registrations int    `json:"registrations"`
	Solved        int    `json:"solved"`
	Expiries      int    `json:"expiries"`
	ActiveUsers   int    `json:"active_users"`
}

// AnalyzeDay folds the journal events that fall on targetDate's calendar day.
func AnalyzeDay(events []journal.Event, targetDate time.Time) *DailyStats {
	startOfDay := time.Date(targetDate.Year(), targetDate.Month(), targetDate.Day(), 0, 0, 0, 0, targetDate.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	stats := &DailyStats{Date: startOfDay.Format("2006-01-02")}
	seen := make(map[string]bool)

	for _, ev := range events {
		if ev.Timestamp.Before(startOfDay) || !ev.Timestamp.Before(endOfDay) {
			continue
		}
		seen[ev.Username] = true
		switch ev.Kind {
		case journal.KindLogin:
			stats.Logins++
		case journal.KindRegistration:
			stats.Registrations++
		case journal.KindSolved:
			stats.Solved++
		case journal.KindExpiry:
			stats.Expiries++
		}
	}

	stats.ActiveUsers = len(seen)
	return stats
}

// Summary renders the admin-facing daily report text.
func (ds *DailyStats) Summary(pendingFeedback, bannedAccounts int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Daily report for %s\n\n", ds.Date)
	fmt.Fprintf(&b, "Active users: %d\n", ds.ActiveUsers)
	fmt.Fprintf(&b, "Logins: %d\n", ds.Logins)
	fmt.Fprintf(&b, "New registrations: %d\n", ds.Registrations)
	fmt.Fprintf(&b, "Problems solved: %d\n", ds.Solved)
	fmt.Fprintf(&b, "Forced expiries: %d\n", ds.Expiries)
	fmt.Fprintf(&b, "\nFeedback awaiting review: %d\n", pendingFeedback)
	fmt.Fprintf(&b, "Banned accounts: %d\n", bannedAccounts)
	return b.String()
}
