package telegram

import (
	"context"
	"log"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"physics-tutor/internal/account"
	"physics-tutor/internal/feedback"
	"physics-tutor/internal/journal"
	"physics-tutor/internal/knowledge"
	"physics-tutor/internal/session"
	"physics-tutor/internal/settings"
	"physics-tutor/internal/solver"
)

const flagCmd = "flag_solution"

// Bot is the presentation layer: it maps chat commands onto the core services
// and renders their results. The core allows at most one active session per
// process, so the bot behaves as a single-seat terminal; the chat that logged
// in receives the countdown notices.
type Bot struct {
	api       *tgbotapi.BotAPI
	s         sender
	sessions  *session.Controller
	registry  *account.Registry
	settings  *settings.Service
	feedbacks *feedback.Collector
	examples  *knowledge.Base
	solve     solver.Client
	rec       journal.Recorder

	adminChatID int64

	mu         sync.Mutex
	activeChat int64
	lastAsked  map[int64]solved
}

// solved keeps the latest question/solution pair per chat so the inline
// "flag" button can turn it into feedback.
type solved struct {
	question string
	solution solver.Solution
}

func New(
	botToken string,
	sessions *session.Controller,
	registry *account.Registry,
	settingsSvc *settings.Service,
	feedbacks *feedback.Collector,
	examples *knowledge.Base,
	solve solver.Client,
	rec journal.Recorder,
	adminChatID int64,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	b := &Bot{
		api:         api,
		s:           botAPISender{api: api},
		sessions:    sessions,
		registry:    registry,
		settings:    settingsSvc,
		feedbacks:   feedbacks,
		examples:    examples,
		solve:       solve,
		rec:         rec,
		adminChatID: adminChatID,
		lastAsked:   make(map[int64]solved),
	}
	sessions.OnExpire(b.onExpire)
	return b, nil
}

func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message != nil {
				b.handleIncomingMessage(ctx, update.Message)
				continue
			}
			if update.CallbackQuery != nil {
				b.handleCallback(update.CallbackQuery)
				continue
			}
		}
	}
}

// onExpire delivers the forced-logout notice to whichever chat owned the
// session.
func (b *Bot) onExpire(expired account.Account) {
	b.mu.Lock()
	chatID := b.activeChat
	b.activeChat = 0
	b.mu.Unlock()

	b.record(journal.Event{Username: expired.Username, Kind: journal.KindExpiry})
	if chatID != 0 {
		b.sendMessage(chatID, "Your session time is up. Please contact the administrator to continue.")
	}
}

func (b *Bot) record(ev journal.Event) {
	if b.rec == nil {
		return
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}
	if err := b.rec.Append(ev); err != nil {
		log.Printf("failed to journal %s event: %v", ev.Kind, err)
	}
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.s.Send(msg); err != nil {
		log.Printf("failed to send message: %v", err)
	}
}
