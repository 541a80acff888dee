package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
)

// UserStore reads and writes config.json in the user directory.
type UserStore struct {
	path string
}

// NewUserStore creates a store for dir/config.json.
func NewUserStore(dir string) *UserStore {
	return &UserStore{path: filepath.Join(dir, "config.json")}
}

// Path returns the config file location.
func (s *UserStore) Path() string {
	return s.path
}

// LoadOrCreate reads the user config, writing defaults first if the file
// does not exist yet. Missing fields keep their defaults.
func (s *UserStore) LoadOrCreate() (*UserConfig, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("Creating user config: %s", s.path)
		cfg := DefaultUserConfig()
		if err := s.Save(&cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	cfg := DefaultUserConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	return &cfg, nil
}

// Save writes cfg, creating the directory if needed.
func (s *UserStore) Save(cfg *UserConfig) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(s.path), err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode user config: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	return nil
}
