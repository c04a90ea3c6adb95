package telegram

import (
	"context"
	"time"

	"ai-compare/internal/analytics"
)

// DailyReport returns a job that sends today's per-provider usage to chatID.
func (b *Bot) DailyReport(chatID int64) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		events, err := b.app.Events()
		if err != nil {
			return err
		}
		stats := analytics.AnalyzeDay(events, time.Now().UTC())
		b.sendMessage(chatID, stats.Summary())
		return nil
	}
}
