// Package app holds the state shared by every front end: the answers being
// shown, the history listing, and the submit/select/clear flow.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"ai-compare/internal/gateway"
	"ai-compare/internal/history"
	"ai-compare/internal/storage"
)

// ErrorPrefix starts the text shown (and stored) in place of a failed answer.
const ErrorPrefix = "Error "

var (
	ErrBlankQuestion = errors.New("question is blank")
	ErrNoExchangeLog = errors.New("exchange log is disabled, set LOG_FILE_PATH")
)

// View is what a front end renders: the last answered question and the
// history listing as it was last loaded from disk.
type View struct {
	Question string
	ChatGPT  string
	Gemini   string
	Listing  []history.Interaction
}

type App struct {
	gw    *gateway.Gateway
	store *history.Store
	rec   storage.Recorder
	now   func() time.Time

	mu   sync.Mutex
	view View
}

// New wires the flow together. rec may be nil.
func New(gw *gateway.Gateway, store *history.Store, rec storage.Recorder) *App {
	a := &App{gw: gw, store: store, rec: rec, now: time.Now}
	a.view.Listing = store.LoadAll()
	return a
}

// Text renders a provider result for display and storage.
func Text(r gateway.Result) string {
	if r.OK() {
		return r.Text
	}
	return fmt.Sprintf("%s%s: %v", ErrorPrefix, r.Provider, r.Err)
}

// ListLabel is how a record appears in a history listing.
func ListLabel(it history.Interaction) string {
	return "Question: " + it.Question
}

func (a *App) View() View {
	a.mu.Lock()
	defer a.mu.Unlock()
	v := a.view
	v.Listing = append([]history.Interaction(nil), a.view.Listing...)
	return v
}

// Submit asks both providers, stores the exchange and refreshes the listing.
// A blank question is rejected before anything else happens. When the
// history write fails the answered record is still returned with the error.
func (a *App) Submit(ctx context.Context, question string) (history.Interaction, error) {
	if strings.TrimSpace(question) == "" {
		return history.Interaction{}, ErrBlankQuestion
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	submitted := a.now().UTC()
	it := history.Interaction{Question: question}
	for _, r := range a.gw.AskAll(ctx, question) {
		switch r.Provider {
		case gateway.ChatGPT:
			it.ChatGPT = Text(r)
		case gateway.Gemini:
			it.Gemini = Text(r)
		}
		a.record(submitted, question, r)
	}
	a.view.Question, a.view.ChatGPT, a.view.Gemini = it.Question, it.ChatGPT, it.Gemini

	err := a.store.Append(it)
	a.view.Listing = a.store.LoadAll()
	if err != nil {
		return it, fmt.Errorf("save history: %w", err)
	}
	return it, nil
}

// Refresh reloads the listing from disk.
func (a *App) Refresh() []history.Interaction {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.view.Listing = a.store.LoadAll()
	return append([]history.Interaction(nil), a.view.Listing...)
}

// Select finds a past entry in the currently loaded listing by exact
// question text.
func (a *App) Select(question string) (history.Interaction, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return history.Find(a.view.Listing, question)
}

// Clear erases the whole history once confirm agrees. It reports whether
// anything was cleared.
func (a *App) Clear(confirm func() bool) (bool, error) {
	if confirm == nil || !confirm() {
		return false, nil
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	err := a.store.Clear()
	a.view.Listing = a.store.LoadAll()
	if err != nil {
		return false, err
	}
	log.Info().Str("path", a.store.Path()).Msg("history cleared")
	return true, nil
}

// Events reports the exchange log, or an error when it is disabled.
func (a *App) Events() ([]storage.Event, error) {
	if a.rec == nil {
		return nil, ErrNoExchangeLog
	}
	return a.rec.LoadEvents()
}

func (a *App) record(ts time.Time, question string, r gateway.Result) {
	if a.rec == nil {
		return
	}
	ev := storage.Event{
		Timestamp:        ts,
		Provider:         r.Provider,
		Model:            r.Model,
		Question:         question,
		Answer:           r.Text,
		DurationMS:       r.Duration.Milliseconds(),
		PromptTokens:     r.Usage.PromptTokens,
		CompletionTokens: r.Usage.CompletionTokens,
		TotalTokens:      r.Usage.TotalTokens,
	}
	if r.Err != nil {
		ev.Error = r.Err.Error()
	}
	if err := a.rec.AppendEvent(ev); err != nil {
		log.Warn().Err(err).Msg("failed to record exchange")
	}
}
