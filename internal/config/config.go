package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
	"github.com/rs/zerolog/log"
)

type LLMProvider string

const (
	ProviderOpenAI LLMProvider = "openai"
	ProviderGemini LLMProvider = "gemini"
)

type Config struct {
	// Provider A (ChatGPT)
	OpenAIAPIKey  string `env:"OPENAI_API_KEY,required,notEmpty"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`
	OpenAIModel   string `env:"OPENAI_MODEL" envDefault:"gpt-3.5-turbo"`

	// OpenRouter (optional)
	OpenRouterReferrer string `env:"OPENROUTER_REFERRER"`
	OpenRouterTitle    string `env:"OPENROUTER_TITLE"`

	// Provider B (Gemini)
	GoogleAPIKey  string `env:"GOOGLE_API_KEY,required,notEmpty"`
	GeminiBaseURL string `env:"GEMINI_BASE_URL"`
	GeminiModel   string `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`

	SystemPrompt string `env:"SYSTEM_PROMPT" envDefault:"You are a helpful assistant."`

	// Storage
	HistoryFilePath string `env:"HISTORY_FILE_PATH" envDefault:"historico.json"`
	LogFilePath     string `env:"LOG_FILE_PATH"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Telegram front end
	TelegramBotToken string  `env:"TELEGRAM_BOT_TOKEN"`
	AllowedUsers     []int64 `env:"ALLOWED_USERS" envSeparator:":"`
	AdminUserID      int64   `env:"ADMIN_USER"`
	ReportSchedule   string  `env:"REPORT_SCHEDULE" envDefault:"0 21 * * *"`
}

// Load parses the environment. A missing credential for either provider is
// reported as an error; nothing starts with a disabled provider.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func New() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse config")
	}
	return cfg
}
