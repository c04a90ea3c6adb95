// Package terminal is the interactive console front end.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"ai-compare/internal/app"
	"ai-compare/internal/gateway"
	"ai-compare/internal/history"
)

const helpText = `Type a question and press Enter to ask both providers.
Commands:
  /history     list past questions
  /show <n>    show entry n of the list
  /clear       delete the whole history
  /help        this text
  /quit        leave`

type Session struct {
	app *app.App
	in  *bufio.Scanner
	out io.Writer
}

func NewSession(a *app.App, in io.Reader, out io.Writer) *Session {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Session{app: a, in: sc, out: out}
}

// Run reads lines until EOF, /quit or ctx is done.
func (s *Session) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, "Compare ChatGPT and Gemini. /help for commands.")
	PrintHistory(s.out, s.app.View().Listing)
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		fmt.Fprint(s.out, "\n> ")
		if !s.in.Scan() {
			fmt.Fprintln(s.out)
			return s.in.Err()
		}
		if quit := s.Handle(ctx, s.in.Text()); quit {
			return nil
		}
	}
}

// Handle processes one input line and reports whether the session should end.
func (s *Session) Handle(ctx context.Context, line string) bool {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	switch cmd {
	case "/quit", "/exit":
		return true
	case "/help":
		fmt.Fprintln(s.out, helpText)
	case "/history":
		PrintHistory(s.out, s.app.Refresh())
	case "/show":
		s.show(arg)
	case "/clear":
		s.clear()
	default:
		s.Ask(ctx, line)
	}
	return false
}

func (s *Session) Ask(ctx context.Context, question string) {
	if strings.TrimSpace(question) == "" {
		fmt.Fprintln(s.out, "Please enter a question.")
		return
	}
	fmt.Fprintln(s.out, "Processing...")
	it, err := s.app.Submit(ctx, question)
	if errors.Is(err, app.ErrBlankQuestion) {
		fmt.Fprintln(s.out, "Please enter a question.")
		return
	}
	PrintAnswers(s.out, it)
	if err != nil {
		fmt.Fprintf(s.out, "Warning: %v\n", err)
	}
	PrintHistory(s.out, s.app.View().Listing)
}

func (s *Session) show(arg string) {
	listing := s.app.View().Listing
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 || n > len(listing) {
		fmt.Fprintf(s.out, "Usage: /show <1-%d>\n", len(listing))
		return
	}
	it, ok := s.app.Select(listing[n-1].Question)
	if !ok {
		return
	}
	PrintDetails(s.out, it)
}

func (s *Session) clear() {
	cleared, err := s.app.Clear(func() bool {
		return s.Confirm("Are you sure you want to delete the whole history?")
	})
	switch {
	case err != nil:
		fmt.Fprintf(s.out, "Failed to clear history: %v\n", err)
	case cleared:
		fmt.Fprintln(s.out, "History cleared.")
	default:
		fmt.Fprintln(s.out, "Nothing deleted.")
	}
}

// Confirm asks a yes/no question on the session input. Anything but y/yes
// is a no.
func (s *Session) Confirm(question string) bool {
	return Confirm(s.in, s.out, question)
}

func Confirm(in *bufio.Scanner, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	if !in.Scan() {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(in.Text())) {
	case "y", "yes":
		return true
	}
	return false
}

func PrintAnswers(w io.Writer, it history.Interaction) {
	fmt.Fprintf(w, "\n── %s ──\n%s\n", gateway.ChatGPT, it.ChatGPT)
	fmt.Fprintf(w, "\n── %s ──\n%s\n", gateway.Gemini, it.Gemini)
}

func PrintDetails(w io.Writer, it history.Interaction) {
	fmt.Fprintf(w, "\nQuestion:\n%s\n", it.Question)
	PrintAnswers(w, it)
}

func PrintHistory(w io.Writer, listing []history.Interaction) {
	if len(listing) == 0 {
		fmt.Fprintln(w, "History is empty.")
		return
	}
	fmt.Fprintln(w, "History:")
	for i, it := range listing {
		fmt.Fprintf(w, "%3d. %s\n", i+1, app.ListLabel(it))
	}
}
