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
	"ai-compare/internal/storage"
)

func runCommand(t *testing.T, ap *app.App, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand(func(ctx context.Context) (*app.App, error) { return ap, nil })
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCommands_AskHistoryShowClear(t *testing.T) {
	ap := newTestApp(t, &fakeLLM{prefix: "A:"}, &fakeLLM{prefix: "B:"})

	out, err := runCommand(t, ap, "", "ask", "What", "is", "Go?")
	require.NoError(t, err)
	assert.Contains(t, out, "A:What is Go?")
	assert.Contains(t, out, "B:What is Go?")

	out, err = runCommand(t, ap, "", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "1. Question: What is Go?")

	out, err = runCommand(t, ap, "", "show", "What is Go?")
	require.NoError(t, err)
	assert.Contains(t, out, "B:What is Go?")

	_, err = runCommand(t, ap, "", "show", "unknown")
	assert.Error(t, err)

	out, err = runCommand(t, ap, "no\n", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing deleted.")
	assert.Len(t, ap.Refresh(), 1)

	out, err = runCommand(t, ap, "", "clear", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "History cleared.")
	assert.Empty(t, ap.Refresh())
}

func TestCommands_AskBlank(t *testing.T) {
	a := &fakeLLM{}
	ap := newTestApp(t, a, &fakeLLM{})
	_, err := runCommand(t, ap, "", "ask", "  ")
	assert.ErrorIs(t, err, app.ErrBlankQuestion)
	assert.Zero(t, a.calls)
}

func TestCommands_OpenFailure(t *testing.T) {
	root := NewRootCommand(func(ctx context.Context) (*app.App, error) { return nil, errors.New("no credentials") })
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"history"})
	assert.EqualError(t, root.Execute(), "no credentials")
}

func TestCommands_Stats(t *testing.T) {
	dir := t.TempDir()
	rec, err := storage.NewFileRecorder(filepath.Join(dir, "exchanges.jsonl"))
	require.NoError(t, err)
	gw := gateway.New(
		gateway.Provider{Name: gateway.ChatGPT, Client: &fakeLLM{prefix: "A:"}},
		gateway.Provider{Name: gateway.Gemini, Client: &fakeLLM{err: errors.New("down")}},
	)
	ap := app.New(gw, history.NewStore(filepath.Join(dir, "historico.json")), rec)

	_, err = runCommand(t, ap, "", "ask", "Q1")
	require.NoError(t, err)

	out, err := runCommand(t, ap, "", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Questions: 1")
	assert.Contains(t, out, "- ChatGPT: 1 calls, 0 failed")
	assert.Contains(t, out, "- Gemini: 1 calls, 1 failed")

	out, err = runCommand(t, ap, "", "stats", "--date", "2001-01-01", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"questions": 0`)

	_, err = runCommand(t, ap, "", "stats", "--date", "yesterday")
	assert.Error(t, err)
}

func TestCommands_StatsWithoutLog(t *testing.T) {
	ap := newTestApp(t, &fakeLLM{}, &fakeLLM{})
	_, err := runCommand(t, ap, "", "stats")
	assert.ErrorIs(t, err, app.ErrNoExchangeLog)
}
