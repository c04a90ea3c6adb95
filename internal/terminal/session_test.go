package terminal

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-compare/internal/app"
	"ai-compare/internal/gateway"
	"ai-compare/internal/history"
	"ai-compare/internal/llm"
)

type fakeLLM struct {
	prefix string
	err    error
	calls  int
}

func (f *fakeLLM) Generate(ctx context.Context, msgs []llm.Message) (llm.Response, error) {
	f.calls++
	if f.err != nil {
		return llm.Response{}, f.err
	}
	return llm.Response{Content: f.prefix + msgs[len(msgs)-1].Content}, nil
}

func newTestApp(t *testing.T, a, b *fakeLLM) *app.App {
	t.Helper()
	gw := gateway.New(
		gateway.Provider{Name: gateway.ChatGPT, Client: a},
		gateway.Provider{Name: gateway.Gemini, Client: b},
	)
	return app.New(gw, history.NewStore(filepath.Join(t.TempDir(), "historico.json")), nil)
}

func TestSession_AskShowClear(t *testing.T) {
	a, b := &fakeLLM{prefix: "A:"}, &fakeLLM{err: errors.New("quota exceeded")}
	ap := newTestApp(t, a, b)
	in := strings.NewReader("Q1\n/history\n/show 1\n/clear\nyes\n/history\n/quit\nnever read\n")
	var out bytes.Buffer

	require.NoError(t, NewSession(ap, in, &out).Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "── ChatGPT ──\nA:Q1")
	assert.Contains(t, text, "── Gemini ──\nError Gemini: quota exceeded")
	assert.Contains(t, text, "  1. Question: Q1")
	assert.Contains(t, text, "Question:\nQ1")
	assert.Contains(t, text, "History cleared.")
	assert.Equal(t, 1, a.calls)
	assert.Empty(t, ap.Refresh())
}

func TestSession_BlankAndDeclinedClear(t *testing.T) {
	a, b := &fakeLLM{prefix: "A:"}, &fakeLLM{prefix: "B:"}
	ap := newTestApp(t, a, b)
	var out bytes.Buffer
	s := NewSession(ap, strings.NewReader("n\n"), &out)

	s.Handle(context.Background(), "   ")
	assert.Contains(t, out.String(), "Please enter a question.")
	assert.Zero(t, a.calls)
	assert.Zero(t, b.calls)

	s.Handle(context.Background(), "Q1")
	s.Handle(context.Background(), "/clear")
	assert.Contains(t, out.String(), "Nothing deleted.")
	assert.Len(t, ap.Refresh(), 1)

	s.Handle(context.Background(), "/show 7")
	assert.Contains(t, out.String(), "Usage: /show <1-1>")

	assert.True(t, s.Handle(context.Background(), "/exit"))
}

func TestSession_EOFEndsRun(t *testing.T) {
	ap := newTestApp(t, &fakeLLM{}, &fakeLLM{})
	var out bytes.Buffer
	require.NoError(t, NewSession(ap, strings.NewReader(""), &out).Run(context.Background()))
	assert.Contains(t, out.String(), "History is empty.")
}
