package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"ai-compare/internal/app"
	"ai-compare/internal/config"
	"ai-compare/internal/logging"
	"ai-compare/internal/terminal"
)

func main() {
	logging.Setup(os.Getenv("LOG_LEVEL"), nil)
	if err := godotenv.Load(".env"); err != nil {
		log.Debug().Err(err).Msg(".env file not found")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := terminal.NewRootCommand(open).ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// open loads the configuration and builds the app. A missing credential
// stops here, before any session starts.
func open(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logging.Setup(cfg.LogLevel, nil)
	return app.FromConfig(ctx, cfg)
}
