package telegram

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"physics-tutor/internal/report"
)

// SendDailyReport summarizes today's journal for the admin chat. Wired to the
// scheduler in main.
func (b *Bot) SendDailyReport(ctx context.Context) error {
	if b.adminChatID == 0 || b.rec == nil {
		return nil
	}
	events, err := b.rec.LoadAll()
	if err != nil {
		return fmt.Errorf("load journal: %w", err)
	}

	stats := report.AnalyzeDay(events, time.Now().UTC())
	banned := 0
	for _, a := range b.registry.List() {
		if a.IsBanned {
			banned++
		}
	}

	msg := tgbotapi.NewMessage(b.adminChatID, stats.Summary(b.feedbacks.PendingCount(), banned))
	if _, err := b.s.Send(msg); err != nil {
		return fmt.Errorf("send report: %w", err)
	}
	return nil
}
