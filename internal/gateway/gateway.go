// Package gateway forwards a question to each configured provider and
// reports what came back as a Result. Failures never escape as errors or
// panics; they are carried in Result.Err.
package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"ai-compare/internal/llm"
)

const (
	ChatGPT = "ChatGPT"
	Gemini  = "Gemini"
)

// Provider is an external text-generation service reached through its client.
type Provider struct {
	Name         string
	Client       llm.Client
	SystemPrompt string
}

// Result is either a successful answer (Err == nil) or the reason the call
// failed.
type Result struct {
	Provider string
	Text     string
	Model    string
	Err      error
	Duration time.Duration
	Usage    llm.Response
}

func (r Result) OK() bool { return r.Err == nil }

type Gateway struct {
	providers []Provider
}

func New(providers ...Provider) *Gateway {
	return &Gateway{providers: providers}
}

func (g *Gateway) Providers() []Provider {
	out := make([]Provider, len(g.providers))
	copy(out, g.providers)
	return out
}

// Ask sends question to p and waits for the answer. The question is not
// validated here.
func (g *Gateway) Ask(ctx context.Context, p Provider, question string) (res Result) {
	res.Provider = p.Name
	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			res.Text = ""
			res.Err = fmt.Errorf("panic: %v", rec)
		}
		res.Duration = time.Since(start)
		ev := log.Info()
		if res.Err != nil {
			ev = log.Warn().Err(res.Err)
		}
		ev.Str("provider", p.Name).Dur("took", res.Duration).Msg("provider call finished")
	}()

	if p.Client == nil {
		res.Err = fmt.Errorf("provider %s has no client", p.Name)
		return res
	}
	resp, err := p.Client.Generate(ctx, llm.Prompt(p.SystemPrompt, question))
	if err != nil {
		res.Err = err
		return res
	}
	res.Text = resp.Content
	res.Model = resp.Model
	res.Usage = resp
	return res
}

// AskAll calls every provider one after another, in configuration order.
func (g *Gateway) AskAll(ctx context.Context, question string) []Result {
	out := make([]Result, 0, len(g.providers))
	for _, p := range g.providers {
		out = append(out, g.Ask(ctx, p, question))
	}
	return out
}
