package storage

import "time"

// Event is a single provider call made while answering a question.
// One submission produces one event per provider.
type Event struct {
	Timestamp        time.Time `json:"timestamp"`
	Provider         string    `json:"provider"`
	Model            string    `json:"model,omitempty"`
	Question         string    `json:"question"`
	Answer           string    `json:"answer,omitempty"`
	Error            string    `json:"error,omitempty"`
	DurationMS       int64     `json:"duration_ms"`
	PromptTokens     int       `json:"prompt_tokens,omitempty"`
	CompletionTokens int       `json:"completion_tokens,omitempty"`
	TotalTokens      int       `json:"total_tokens,omitempty"`
}

// Recorder abstracts persistence of provider call events.
// LoadEvents should return events in chronological order.
type Recorder interface {
	AppendEvent(event Event) error
	LoadEvents() ([]Event, error)
}
