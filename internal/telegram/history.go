package telegram

import (
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"ai-compare/internal/app"
)

func (b *Bot) sendHistory(chatID int64) {
	listing := b.app.Refresh()
	if len(listing) == 0 {
		b.sendMessage(chatID, "History is empty.")
		return
	}
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(listing))
	for i, it := range listing {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(truncate(app.ListLabel(it), maxButtonRunes), cbShowPrefix+strconv.Itoa(i)),
		))
	}
	msg := tgbotapi.NewMessage(chatID, "History:")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	if _, err := b.s.Send(msg); err != nil {
		b.sendMessage(chatID, "Failed to send history.")
	}
}

// showEntry resolves the pressed button to a question of the loaded listing
// and looks the record up by that exact text.
func (b *Bot) showEntry(chatID int64, idx string) {
	i, err := strconv.Atoi(idx)
	listing := b.app.View().Listing
	if err != nil || i < 0 || i >= len(listing) {
		b.sendMessage(chatID, "This entry is no longer in the history.")
		return
	}
	it, ok := b.app.Select(listing[i].Question)
	if !ok {
		b.sendMessage(chatID, "This entry is no longer in the history.")
		return
	}
	b.sendMessage(chatID, "Question:\n"+it.Question)
	b.sendAnswers(chatID, it)
}

func (b *Bot) askClearConfirmation(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "Are you sure you want to delete the whole history?")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Yes, delete", cbClearYes),
			tgbotapi.NewInlineKeyboardButtonData("No", cbClearNo),
		),
	)
	if _, err := b.s.Send(msg); err != nil {
		b.sendMessage(chatID, "Failed to ask for confirmation.")
	}
}
