package history

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
)

// ErrInvalidText is returned by Append for a record that is not valid UTF-8.
// JSON would store such text with replacement characters.
var ErrInvalidText = errors.New("history record is not valid UTF-8")

// Interaction is one stored question plus both provider answers.
// The JSON keys are the on-disk format of the history file.
type Interaction struct {
	Question string `json:"pergunta"`
	ChatGPT  string `json:"chatgpt"`
	Gemini   string `json:"gemini"`
}

// Store is an append-only history kept as a single JSON array on disk.
// Every mutation reads the whole file and rewrites it; the file is the only
// source of truth.
type Store struct {
	path string
	mu   sync.Mutex
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

// LoadAll returns the stored interactions in insertion order. A missing or
// unparsable file is an empty history.
func (s *Store) LoadAll() []Interaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.loadUnlocked()
	if err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("history unreadable, treating as empty")
		return []Interaction{}
	}
	return items
}

// Append adds it to the end of the history. A file that exists but cannot be
// read is left untouched and reported as an error.
func (s *Store) Append(it Interaction) error {
	if !utf8.ValidString(it.Question) || !utf8.ValidString(it.ChatGPT) || !utf8.ValidString(it.Gemini) {
		return ErrInvalidText
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.loadUnlocked()
	if err != nil {
		return err
	}
	items = append(items, it)
	if err := s.saveUnlocked(items); err != nil {
		return err
	}
	log.Debug().Str("path", s.path).Int("records", len(items)).Msg("history rewritten")
	return nil
}

// Clear deletes the backing file. A missing file is not an error.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove history: %w", err)
	}
	return nil
}

// Find returns the first stored interaction whose question equals q exactly.
func (s *Store) Find(q string) (Interaction, bool) {
	return Find(s.LoadAll(), q)
}

// Find looks q up in items by exact question text.
func Find(items []Interaction, q string) (Interaction, bool) {
	for _, it := range items {
		if it.Question == q {
			return it, true
		}
	}
	return Interaction{}, false
}

// loadUnlocked treats a missing or unparsable file as empty. Any other read
// failure is returned.
func (s *Store) loadUnlocked() ([]Interaction, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []Interaction{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	var items []Interaction
	if err := json.Unmarshal(data, &items); err != nil {
		log.Debug().Err(err).Str("path", s.path).Msg("history unparsable, treating as empty")
		return []Interaction{}, nil
	}
	if items == nil {
		items = []Interaction{}
	}
	return items, nil
}

// saveUnlocked writes to a temp file next to the target and renames it over
// the old history.
func (s *Store) saveUnlocked(items []Interaction) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("encode history: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure history dir: %w", err)
	}
	f, err := os.CreateTemp(dir, ".history-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(buf.Bytes()); err != nil {
		_ = f.Close()
		return fmt.Errorf("write history: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close history: %w", err)
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		return fmt.Errorf("chmod history: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace history: %w", err)
	}
	return nil
}
