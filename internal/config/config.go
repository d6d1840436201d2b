package config

import (
	"log"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN,required"`
	// AdminChatID receives the daily report. Zero disables it.
	AdminChatID int64 `env:"ADMIN_CHAT_ID"`

	// Solver settings
	SolverProvider   string `env:"SOLVER_PROVIDER" envDefault:"openai"`
	OpenAIAPIKey     string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL    string `env:"OPENAI_BASE_URL"`
	OpenAIModel      string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	YandexOAuthToken string `env:"YANDEX_OAUTH_TOKEN"`
	YandexFolderID   string `env:"YANDEX_FOLDER_ID"`

	// Storage
	DataDir         string `env:"DATA_DIR" envDefault:"data"`
	JournalFilePath string `env:"JOURNAL_FILE_PATH" envDefault:"logs/journal.jsonl"`

	// Reporting
	ReportHourUTC int `env:"REPORT_HOUR_UTC" envDefault:"21"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}
