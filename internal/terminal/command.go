package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"ai-compare/internal/analytics"
	"ai-compare/internal/app"
)

// Opener builds the application state; commands call it lazily so that
// --help works without credentials.
type Opener func(ctx context.Context) (*app.App, error)

func NewRootCommand(open Opener) *cobra.Command {
	root := &cobra.Command{
		Use:   "compare",
		Short: "Ask ChatGPT and Gemini the same question",
		Long:  `Sends one question to ChatGPT and Gemini, shows both answers side by side and keeps a local history of every exchange.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := open(cmd.Context())
			if err != nil {
				return err
			}
			return NewSession(a, cmd.InOrStdin(), cmd.OutOrStdout()).Run(cmd.Context())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newAskCmd(open), newHistoryCmd(open), newShowCmd(open), newClearCmd(open), newStatsCmd(open))
	return root
}

func newAskCmd(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask both providers once and store the exchange",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.Join(args, " ")
			if strings.TrimSpace(question) == "" {
				return app.ErrBlankQuestion
			}
			a, err := open(cmd.Context())
			if err != nil {
				return err
			}
			it, err := a.Submit(cmd.Context(), question)
			if errors.Is(err, app.ErrBlankQuestion) {
				return err
			}
			PrintAnswers(cmd.OutOrStdout(), it)
			return err
		},
	}
}

func newHistoryCmd(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List past questions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := open(cmd.Context())
			if err != nil {
				return err
			}
			PrintHistory(cmd.OutOrStdout(), a.Refresh())
			return nil
		},
	}
}

func newShowCmd(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "show [question]",
		Short: "Show a past exchange by its exact question text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open(cmd.Context())
			if err != nil {
				return err
			}
			question := strings.Join(args, " ")
			it, ok := a.Select(question)
			if !ok {
				return fmt.Errorf("no history entry for %q", question)
			}
			PrintDetails(cmd.OutOrStdout(), it)
			return nil
		},
	}
}

func newClearCmd(open Opener) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the whole history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := open(cmd.Context())
			if err != nil {
				return err
			}
			in := bufio.NewScanner(cmd.InOrStdin())
			cleared, err := a.Clear(func() bool {
				return yes || Confirm(in, cmd.OutOrStdout(), "Are you sure you want to delete the whole history?")
			})
			if err != nil {
				return err
			}
			if cleared {
				fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing deleted.")
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func newStatsCmd(open Opener) *cobra.Command {
	var (
		date   string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show per-provider usage for one day from the exchange log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day := time.Now().UTC()
			if date != "" {
				d, err := time.Parse(time.DateOnly, date)
				if err != nil {
					return fmt.Errorf("invalid --date: %w", err)
				}
				day = d
			}
			a, err := open(cmd.Context())
			if err != nil {
				return err
			}
			events, err := a.Events()
			if err != nil {
				return err
			}
			stats := analytics.AnalyzeDay(events, day)
			if asJSON {
				js, err := stats.ToJSON()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), js)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), stats.Summary())
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "day to report, YYYY-MM-DD (default today, UTC)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
