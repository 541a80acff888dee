package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// ParseEnv loads environment overrides.
func ParseEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := env.Parse(&cfg); err != nil {
		return EnvConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// UserPath returns the directory for per-user files of the game, defaulting
// to the OS user config dir.
func (e EnvConfig) UserPath(shortGameName string) (string, error) {
	base := e.UserDir
	if base == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("failed to locate user config dir: %w", err)
		}
		base = dir
	}
	return filepath.Join(base, shortGameName), nil
}

// SavePath returns the save file location.
func (e EnvConfig) SavePath(shortGameName string) (string, error) {
	if e.SaveFile != "" {
		return e.SaveFile, nil
	}
	dir, err := e.UserPath(shortGameName)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "save.json"), nil
}
