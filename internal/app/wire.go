package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"ai-compare/internal/config"
	"ai-compare/internal/gateway"
	"ai-compare/internal/history"
	"ai-compare/internal/llm"
	"ai-compare/internal/storage"
)

// FromConfig builds both provider clients, the history store and the
// optional exchange log.
func FromConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	f := llm.NewFactory(cfg)
	chatgpt, err := f.CreateClient(ctx, llm.ProviderOpenAI)
	if err != nil {
		return nil, fmt.Errorf("create %s client: %w", gateway.ChatGPT, err)
	}
	gemini, err := f.CreateClient(ctx, llm.ProviderGemini)
	if err != nil {
		return nil, fmt.Errorf("create %s client: %w", gateway.Gemini, err)
	}
	gw := gateway.New(
		gateway.Provider{Name: gateway.ChatGPT, Client: chatgpt, SystemPrompt: cfg.SystemPrompt},
		gateway.Provider{Name: gateway.Gemini, Client: gemini},
	)
	names := make([]string, 0, 2)
	for _, p := range gw.Providers() {
		names = append(names, p.Name)
	}
	log.Info().Strs("providers", names).Str("history", cfg.HistoryFilePath).Msg("providers configured")

	var rec storage.Recorder
	if cfg.LogFilePath != "" {
		fr, err := storage.NewFileRecorder(cfg.LogFilePath)
		if err != nil {
			log.Warn().Err(err).Msg("failed to init exchange log")
		} else {
			rec = fr
		}
	}

	return New(gw, history.NewStore(cfg.HistoryFilePath), rec), nil
}
