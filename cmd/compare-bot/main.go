package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"ai-compare/internal/app"
	"ai-compare/internal/auth"
	"ai-compare/internal/config"
	"ai-compare/internal/logging"
	"ai-compare/internal/scheduler"
	"ai-compare/internal/telegram"
)

func main() {
	logging.Setup(os.Getenv("LOG_LEVEL"), nil)
	if err := godotenv.Load(".env"); err != nil {
		log.Warn().Err(err).Msg(".env file not found")
	}

	cfg := config.New()
	logging.Setup(cfg.LogLevel, nil)
	if cfg.TelegramBotToken == "" {
		log.Fatal().Msg("TELEGRAM_BOT_TOKEN environment variable is required")
	}
	authSvc := auth.New(cfg.AllowedUsers)
	if allowed := authSvc.List(); len(allowed) == 0 {
		log.Warn().Msg("ALLOWED_USERS is empty, every user will be denied")
	} else {
		log.Info().Ints64("allowed_users", allowed).Msg("allowlist loaded")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.FromConfig(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init app")
	}

	bot, err := telegram.New(cfg.TelegramBotToken, authSvc, a)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create bot")
	}

	if cfg.AdminUserID != 0 && cfg.LogFilePath != "" {
		sched := scheduler.New()
		sched.SetReportFunction(bot.DailyReport(cfg.AdminUserID))
		if err := sched.Start(cfg.ReportSchedule); err != nil {
			log.Error().Err(err).Msg("failed to start report scheduler")
		} else {
			defer sched.Stop()
		}
	}

	bot.Start(ctx)
}
