// Package history persists recently selected profile names.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

const (
	// MaxEntries caps the stored list; older entries fall off the end.
	MaxEntries = 10

	// DefaultRecent is how many entries a session offers as seeds.
	DefaultRecent = 5

	fileName = "profile_switch_history.json"
)

// Store holds recent profile names, most recent first, backed by a small
// JSON file (key "recent_profiles") shared with other tooling that
// writes the same file.
type Store struct {
	path    string
	logger  *zap.Logger
	entries []string
}

type fileFormat struct {
	RecentProfiles []string `json:"recent_profiles"`
}

// DefaultPath returns the history location under the user's AWS
// directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".aws", fileName), nil
}

// Load reads the history file at path. A missing or unreadable file and
// a corrupt payload all yield an empty store; history is optional and
// never blocks a session.
func Load(path string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{path: path, logger: logger}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Debug("history not loaded", zap.String("path", path), zap.Error(err))
		}
		return s
	}

	var f fileFormat
	if err := json.Unmarshal(data, &f); err != nil {
		logger.Debug("history file corrupt, starting fresh", zap.String("path", path), zap.Error(err))
		return s
	}

	s.entries = f.RecentProfiles
	if len(s.entries) > MaxEntries {
		s.entries = s.entries[:MaxEntries]
	}

	return s
}

// Add puts name at the front, removing any previous occurrence and
// dropping entries beyond MaxEntries. It does not persist.
func (s *Store) Add(name string) {
	entries := make([]string, 0, len(s.entries)+1)
	entries = append(entries, name)
	for _, e := range s.entries {
		if e != name {
			entries = append(entries, e)
		}
	}
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	s.entries = entries
}

// Save writes the history file, creating the parent directory when
// needed.
func (s *Store) Save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating history directory: %w", err)
	}

	data, err := json.MarshalIndent(fileFormat{RecentProfiles: s.entries}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}

	return nil
}

// Record adds name and saves. Persistence is best-effort by contract:
// failures are logged at debug level and the session continues.
func (s *Store) Record(name string) {
	s.Add(name)
	if err := s.Save(); err != nil {
		s.logger.Debug("history not saved", zap.String("path", s.path), zap.Error(err))
	}
}

// Recent returns up to n entries, most recent first. n <= 0 falls back
// to DefaultRecent.
func (s *Store) Recent(n int) []string {
	if n <= 0 {
		n = DefaultRecent
	}
	if n > len(s.entries) {
		n = len(s.entries)
	}
	return append([]string(nil), s.entries[:n]...)
}

// Entries returns a copy of every stored name, most recent first.
func (s *Store) Entries() []string {
	return append([]string(nil), s.entries...)
}

// Len reports how many names are stored.
func (s *Store) Len() int {
	return len(s.entries)
}

// Clear empties the history and persists the empty list.
func (s *Store) Clear() error {
	s.entries = nil
	return s.Save()
}
