package analytics

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"ai-compare/internal/storage"
)

// DailyStats summarises the provider calls of one day.
type DailyStats struct {
	Date      string                   `json:"date"`
	Questions int                      `json:"questions"`
	Providers map[string]ProviderStats `json:"providers"`
}

type ProviderStats struct {
	Provider      string `json:"provider"`
	Calls         int    `json:"calls"`
	Failures      int    `json:"failures"`
	TotalTokens   int    `json:"total_tokens"`
	AvgDurationMS int64  `json:"avg_duration_ms"`
	totalDuration int64
}

// AnalyzeDay aggregates the events that happened on day (in day's location).
func AnalyzeDay(events []storage.Event, day time.Time) *DailyStats {
	startOfDay := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	endOfDay := startOfDay.AddDate(0, 0, 1)

	stats := &DailyStats{
		Date:      startOfDay.Format("2006-01-02"),
		Providers: make(map[string]ProviderStats),
	}
	questions := make(map[string]bool)

	for _, ev := range events {
		if ev.Timestamp.Before(startOfDay) || !ev.Timestamp.Before(endOfDay) {
			continue
		}
		// events of one submission share their timestamp
		questions[ev.Timestamp.String()+"\x00"+ev.Question] = true

		ps := stats.Providers[ev.Provider]
		ps.Provider = ev.Provider
		ps.Calls++
		if ev.Error != "" {
			ps.Failures++
		}
		ps.TotalTokens += ev.TotalTokens
		ps.totalDuration += ev.DurationMS
		ps.AvgDurationMS = ps.totalDuration / int64(ps.Calls)
		stats.Providers[ev.Provider] = ps
	}
	stats.Questions = len(questions)
	return stats
}

// Summary renders the stats as plain text, providers sorted by name.
func (ds *DailyStats) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Usage for %s\n", ds.Date)
	fmt.Fprintf(&sb, "Questions: %d\n", ds.Questions)

	names := make([]string, 0, len(ds.Providers))
	for name := range ds.Providers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ps := ds.Providers[name]
		fmt.Fprintf(&sb, "- %s: %d calls, %d failed, %d tokens, avg %d ms\n",
			name, ps.Calls, ps.Failures, ps.TotalTokens, ps.AvgDurationMS)
	}
	return sb.String()
}

func (ds *DailyStats) ToJSON() (string, error) {
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
