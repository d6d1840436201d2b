package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"physics-tutor/internal/account"
	"physics-tutor/internal/config"
	"physics-tutor/internal/feedback"
	"physics-tutor/internal/journal"
	"physics-tutor/internal/knowledge"
	"physics-tutor/internal/scheduler"
	"physics-tutor/internal/session"
	"physics-tutor/internal/settings"
	"physics-tutor/internal/solver"
	"physics-tutor/internal/store"
	"physics-tutor/internal/telegram"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	st, err := store.NewFileStore(cfg.DataDir)
	if err != nil {
		log.Fatalf("failed to init store: %v", err)
	}

	registry, err := account.NewRegistry(st)
	if err != nil {
		log.Fatalf("failed to init account registry: %v", err)
	}
	settingsSvc := settings.New(st)
	examples, err := knowledge.NewBase(st)
	if err != nil {
		log.Fatalf("failed to init knowledge base: %v", err)
	}
	feedbacks := feedback.NewCollector()

	sessions := session.New(registry, settingsSvc, st)
	if err := sessions.RestoreFromStorage(); err != nil {
		if errors.Is(err, session.ErrStaleSession) {
			log.Printf("discarded stale saved session")
		} else {
			log.Printf("failed to restore session: %v", err)
		}
	}
	if cur, ok := sessions.Current(); ok {
		log.Printf("restored session for %q (%s)", cur.Username, cur.Role)
	}

	factory := &solver.Factory{
		OpenaiAPIKey:     cfg.OpenAIAPIKey,
		OpenaiBaseURL:    cfg.OpenAIBaseURL,
		OpenaiModel:      cfg.OpenAIModel,
		YandexOAuthToken: cfg.YandexOAuthToken,
		YandexFolderID:   cfg.YandexFolderID,
	}
	solverClient, err := factory.CreateClient(cfg.SolverProvider)
	if err != nil {
		log.Fatalf("failed to create solver client: %v", err)
	}

	var rec journal.Recorder
	if cfg.JournalFilePath != "" {
		fr, err := journal.NewFileRecorder(cfg.JournalFilePath)
		if err != nil {
			log.Printf("failed to init journal: %v", err)
		} else {
			rec = fr
		}
	}

	bot, err := telegram.New(
		cfg.TelegramBotToken,
		sessions,
		registry,
		settingsSvc,
		feedbacks,
		examples,
		solverClient,
		rec,
		cfg.AdminChatID,
	)
	if err != nil {
		log.Fatalf("failed to create bot: %v", err)
	}

	sched := scheduler.New(cfg.ReportHourUTC)
	sched.SetReportFunction(bot.SendDailyReport)
	if err := sched.Start(); err != nil {
		log.Printf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bot.Start(ctx)
}
