// Package mcptools exposes the compare flow as MCP tools.
package mcptools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"ai-compare/internal/app"
	"ai-compare/internal/history"
)

type AskParams struct {
	Question string `json:"question" mcp:"question sent to both ChatGPT and Gemini"`
}

type ShowParams struct {
	Question string `json:"question" mcp:"exact text of a past question"`
}

type ListParams struct{}

type ClearParams struct {
	Confirm bool `json:"confirm" mcp:"must be true, the whole history is deleted"`
}

type Server struct {
	app *app.App
}

func NewServer(a *app.App) *Server {
	return &Server{app: a}
}

// Register adds every tool to srv.
func (s *Server) Register(srv *mcp.Server) {
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "ask_both",
		Description: "Asks ChatGPT and Gemini the same question, stores the exchange in history and returns both answers",
	}, s.AskBoth)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_history",
		Description: "Lists past questions in chronological order",
	}, s.ListHistory)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "show_history_entry",
		Description: "Shows the question and both answers of a past exchange, found by exact question text",
	}, s.ShowEntry)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "clear_history",
		Description: "Deletes the whole history; requires confirm=true",
	}, s.ClearHistory)
}

func (s *Server) AskBoth(ctx context.Context, _ *mcp.ServerSession, params *mcp.CallToolParamsFor[AskParams]) (*mcp.CallToolResultFor[any], error) {
	it, err := s.app.Submit(ctx, params.Arguments.Question)
	if errors.Is(err, app.ErrBlankQuestion) {
		return errorResult("question must not be blank"), nil
	}
	res := textResult(formatInteraction(it))
	if err != nil {
		res.Content = append(res.Content, &mcp.TextContent{Text: fmt.Sprintf("warning: %v", err)})
	}
	res.Meta = map[string]any{"question": it.Question, "chatgpt": it.ChatGPT, "gemini": it.Gemini}
	return res, nil
}

func (s *Server) ListHistory(ctx context.Context, _ *mcp.ServerSession, _ *mcp.CallToolParamsFor[ListParams]) (*mcp.CallToolResultFor[any], error) {
	listing := s.app.Refresh()
	if len(listing) == 0 {
		return textResult("History is empty."), nil
	}
	var sb strings.Builder
	for i, it := range listing {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, app.ListLabel(it))
	}
	res := textResult(strings.TrimRight(sb.String(), "\n"))
	res.Meta = map[string]any{"count": len(listing)}
	return res, nil
}

func (s *Server) ShowEntry(ctx context.Context, _ *mcp.ServerSession, params *mcp.CallToolParamsFor[ShowParams]) (*mcp.CallToolResultFor[any], error) {
	s.app.Refresh()
	it, ok := s.app.Select(params.Arguments.Question)
	if !ok {
		return errorResult(fmt.Sprintf("no history entry for %q", params.Arguments.Question)), nil
	}
	return textResult(formatInteraction(it)), nil
}

func (s *Server) ClearHistory(ctx context.Context, _ *mcp.ServerSession, params *mcp.CallToolParamsFor[ClearParams]) (*mcp.CallToolResultFor[any], error) {
	cleared, err := s.app.Clear(func() bool { return params.Arguments.Confirm })
	if err != nil {
		return errorResult(fmt.Sprintf("failed to clear history: %v", err)), nil
	}
	if !cleared {
		return errorResult("history not cleared: set confirm to true"), nil
	}
	return textResult("History cleared."), nil
}

func formatInteraction(it history.Interaction) string {
	return fmt.Sprintf("Question:\n%s\n\nChatGPT:\n%s\n\nGemini:\n%s", it.Question, it.ChatGPT, it.Gemini)
}

func textResult(text string) *mcp.CallToolResultFor[any] {
	return &mcp.CallToolResultFor[any]{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(text string) *mcp.CallToolResultFor[any] {
	return &mcp.CallToolResultFor[any]{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}
