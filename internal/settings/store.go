package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// DefaultPath returns the conventional settings file location under the
// user's config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "skilltrack", "settings.json"), nil
}

// Store loads and saves one settings file.
type Store struct {
	path string
}

// NewStore creates a store for the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Load reads the settings file. A file that cannot be read or parsed at
// the document level yields defaults so the application still starts; a
// document that parses but contains malformed skill items is an error.
func (s *Store) Load() (Settings, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Default(), nil
	}
	if !gjson.ValidBytes(data) {
		return Default(), nil
	}
	return Decode(data)
}

// Save persists the settings atomically: the document is written to a
// temp file in the same directory and renamed into place, so a crash
// mid-write never leaves a truncated settings file.
func (s *Store) Save(settings Settings) error {
	settings.EnsureDefaults()
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return s.writeAtomic(append(data, '\n'))
}

// UpdateLastSelectedProfile rewrites only the last-selected field in the
// existing document, preserving any fields this release does not model.
func (s *Store) UpdateLastSelectedProfile(profileID int) error {
	data, err := os.ReadFile(s.path)
	if err != nil || !gjson.ValidBytes(data) {
		settings := Default()
		settings.LastSelectedProfileID = profileID
		return s.Save(settings)
	}
	updated, err := sjson.SetBytes(data, "last_selected_profile_id", profileID)
	if err != nil {
		return fmt.Errorf("update last selected profile: %w", err)
	}
	return s.writeAtomic(updated)
}

func (s *Store) writeAtomic(data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "settings-*.json")
	if err != nil {
		return fmt.Errorf("create temp settings file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close settings file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace settings file: %w", err)
	}
	return nil
}
