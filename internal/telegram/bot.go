package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"ai-compare/internal/app"
	"ai-compare/internal/auth"
	"ai-compare/internal/gateway"
	"ai-compare/internal/history"
)

const (
	cbShowPrefix = "show:"
	cbClearYes   = "clear:yes"
	cbClearNo    = "clear:no"

	// Telegram rejects longer messages.
	maxMessageRunes = 4096
	maxButtonRunes  = 60
)

const helpText = "Send a question and I will ask ChatGPT and Gemini.\n" +
	"/history - past questions\n" +
	"/clear - delete the whole history"

type Bot struct {
	api     *tgbotapi.BotAPI
	s       sender
	authSvc *auth.Service
	app     *app.App
}

func New(botToken string, authSvc *auth.Service, a *app.App) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("init telegram api: %w", err)
	}
	return &Bot{
		api:     api,
		s:       botAPISender{api: api},
		authSvc: authSvc,
		app:     a,
	}, nil
}

// Start handles updates one at a time until ctx is done.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	log.Info().Str("bot", b.api.Self.UserName).Msg("telegram bot started")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message != nil {
		b.handleIncomingMessage(ctx, update.Message)
		return
	}
	if update.CallbackQuery != nil {
		b.handleCallback(update.CallbackQuery)
	}
}

func (b *Bot) handleIncomingMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil || !b.authSvc.IsAllowed(msg.From.ID) {
		if msg.From != nil {
			log.Warn().Int64("user_id", msg.From.ID).Str("username", msg.From.UserName).Msg("unauthorized access attempt")
		}
		b.sendMessage(msg.Chat.ID, "Access denied.")
		return
	}

	switch msg.Command() {
	case "start", "help":
		b.sendMessage(msg.Chat.ID, helpText)
		return
	case "history":
		b.sendHistory(msg.Chat.ID)
		return
	case "clear":
		b.askClearConfirmation(msg.Chat.ID)
		return
	}
	if msg.IsCommand() {
		b.sendMessage(msg.Chat.ID, "Unknown command.\n"+helpText)
		return
	}

	if strings.TrimSpace(msg.Text) == "" {
		b.sendMessage(msg.Chat.ID, "Please enter a question.")
		return
	}

	log.Info().Int64("user_id", msg.From.ID).Str("question", msg.Text).Msg("incoming question")
	it, err := b.app.Submit(ctx, msg.Text)
	if errors.Is(err, app.ErrBlankQuestion) {
		b.sendMessage(msg.Chat.ID, "Please enter a question.")
		return
	}
	b.sendAnswers(msg.Chat.ID, it)
	if err != nil {
		log.Error().Err(err).Msg("failed to save history")
		b.sendMessage(msg.Chat.ID, "Warning: the answer was not saved to history.")
	}
}

func (b *Bot) handleCallback(cb *tgbotapi.CallbackQuery) {
	if _, err := b.s.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		log.Warn().Err(err).Msg("failed to answer callback")
	}
	if cb.Message == nil || cb.From == nil || !b.authSvc.IsAllowed(cb.From.ID) {
		return
	}
	chatID := cb.Message.Chat.ID

	switch {
	case cb.Data == cbClearYes:
		cleared, err := b.app.Clear(func() bool { return true })
		if err != nil || !cleared {
			log.Error().Err(err).Msg("failed to clear history")
			b.sendMessage(chatID, "Failed to clear history.")
			return
		}
		b.sendMessage(chatID, "History cleared.")
	case cb.Data == cbClearNo:
		b.sendMessage(chatID, "Nothing deleted.")
	case strings.HasPrefix(cb.Data, cbShowPrefix):
		b.showEntry(chatID, strings.TrimPrefix(cb.Data, cbShowPrefix))
	}
}

func (b *Bot) sendAnswers(chatID int64, it history.Interaction) {
	b.sendMessage(chatID, gateway.ChatGPT+":\n\n"+it.ChatGPT)
	b.sendMessage(chatID, gateway.Gemini+":\n\n"+it.Gemini)
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, truncate(text, maxMessageRunes))
	if _, err := b.s.Send(msg); err != nil {
		log.Error().Err(err).Int64("chat_id", chatID).Msg("failed to send message")
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
