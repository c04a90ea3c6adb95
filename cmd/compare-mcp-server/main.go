package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"

	"ai-compare/internal/app"
	"ai-compare/internal/config"
	"ai-compare/internal/logging"
	"ai-compare/internal/mcptools"
)

func main() {
	// stdout carries the protocol, logs go to stderr
	logging.Setup(os.Getenv("LOG_LEVEL"), nil)
	if err := godotenv.Load(".env"); err != nil {
		log.Warn().Err(err).Msg(".env file not found")
	}

	cfg := config.New()
	logging.Setup(cfg.LogLevel, nil)

	ctx := context.Background()
	a, err := app.FromConfig(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init app")
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "ai-compare-mcp",
		Version: "1.0.0",
	}, nil)
	mcptools.NewServer(a).Register(server)

	log.Info().Str("history", cfg.HistoryFilePath).Msg("starting MCP server on stdin/stdout")
	if err := server.Run(ctx, mcp.NewStdioTransport()); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
