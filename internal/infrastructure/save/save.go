// Package save persists a narrative session to a single JSON save file.
package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/younwookim/novel/internal/domain/narrative"
)

// Version is written into every save file.
const Version = "1.0"

var (
	// ErrNoSave is returned by Load when no save file exists.
	ErrNoSave = errors.New("no save file")
	// ErrVersion is returned by Load when the save file has another version.
	ErrVersion = errors.New("incompatible save version")
)

// Character is a visible character and its expression.
type Character struct {
	Name       string `json:"name"`
	Expression string `json:"expression"`
}

// Data is the save record: narrative cursor, optional background and the
// visible characters in display order.
type Data struct {
	Version    string           `json:"version"`
	Cursor     narrative.Cursor `json:"cursor"`
	Background *string          `json:"background,omitempty"`
	Characters []Character      `json:"characters"`
}

// Store reads and writes the save file at a fixed path.
type Store struct {
	path string
}

// NewStore creates a store writing to path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the save file location.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether a save file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Save writes data to the save file, creating parent directories.
func (s *Store) Save(data Data) error {
	data.Version = Version
	if data.Characters == nil {
		data.Characters = []Character{}
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create save dir: %w", err)
	}

	file, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode save: %w", err)
	}

	return nil
}

// Load reads the save file.
func (s *Store) Load() (*Data, error) {
	file, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoSave
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data Data
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode save: %w", err)
	}
	if data.Version != Version {
		return nil, fmt.Errorf("%w: %q", ErrVersion, data.Version)
	}

	return &data, nil
}
