package config

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"
)

// ErrMissingKey is returned when a required ini key or section is absent.
var ErrMissingKey = errors.New("missing required config key")

// Loader loads engine configuration from ini/text files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// LoadEngine loads engine.ini
func (l *Loader) LoadEngine() (*EngineConfig, error) {
	f, err := l.loadINI("engine.ini")
	if err != nil {
		return nil, err
	}

	root := f.Section("")
	if !root.HasKey("short_game_name") {
		return nil, fmt.Errorf("%w: engine.ini short_game_name", ErrMissingKey)
	}
	ui, err := f.GetSection("UI")
	if err != nil {
		return nil, fmt.Errorf("%w: engine.ini [UI] section", ErrMissingKey)
	}

	cfg := &EngineConfig{
		ShortGameName:            root.Key("short_game_name").String(),
		TransitionSeconds:        root.Key("transition_seconds").MustFloat64(1.0),
		SplashSeconds:            root.Key("splash_seconds").MustFloat64(3.0),
		TextCPS:                  root.Key("text_cps").MustFloat64(75),
		AutoAdvanceSeconds:       root.Key("auto_advance_seconds").MustFloat64(1.0),
		MissingImagePlaceholders: root.Key("missing_image_placeholders").MustBool(false),
		UI: UIConfig{
			Title: ui.Key("title").MustString("Untitled game"),
		},
	}

	colors := []struct {
		key string
		dst *color.RGBA
	}{
		{"button_color", &cfg.UI.ButtonColor},
		{"button_pressed_color", &cfg.UI.ButtonPressedColor},
		{"button_highlight_color", &cfg.UI.ButtonHighlightColor},
	}
	for _, c := range colors {
		v, err := ParseHexColor(ui.Key(c.key).String())
		if err != nil {
			return nil, fmt.Errorf("failed to parse engine.ini %s: %w", c.key, err)
		}
		*c.dst = v
	}

	return cfg, nil
}

// LoadCharacters loads characters.ini. Each section names a character.
func (l *Loader) LoadCharacters() (map[string]CharacterConfig, error) {
	f, err := l.loadINI("characters.ini")
	if err != nil {
		return nil, err
	}

	chars := make(map[string]CharacterConfig)
	for _, sec := range f.Sections() {
		if sec.Name() == ini.DefaultSection {
			continue
		}
		cc := DefaultCharacter
		if sec.HasKey("color") {
			c, err := ParseHexColor(sec.Key("color").String())
			if err != nil {
				return nil, fmt.Errorf("failed to parse color of %s: %w", sec.Name(), err)
			}
			cc.Color = c
		}
		chars[sec.Name()] = cc
	}

	return chars, nil
}

// LoadCredits loads credits.txt
func (l *Loader) LoadCredits() (string, error) {
	data, err := fs.ReadFile(l.fsys, "credits.txt")
	if err != nil {
		return "", fmt.Errorf("failed to read credits.txt: %w", err)
	}
	return string(data), nil
}

// LoadAll loads all base configurations (engine, characters, credits)
func (l *Loader) LoadAll() (*Config, error) {
	engine, err := l.LoadEngine()
	if err != nil {
		return nil, err
	}

	chars, err := l.LoadCharacters()
	if err != nil {
		return nil, err
	}

	credits, err := l.LoadCredits()
	if err != nil {
		return nil, err
	}

	return &Config{
		Engine:     engine,
		Characters: chars,
		Credits:    credits,
	}, nil
}

func (l *Loader) loadINI(name string) (*ini.File, error) {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	f, err := ini.Load(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return f, nil
}

// ParseHexColor parses an RRGGBB hex string. An empty string is black.
func ParseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if s == "" {
		return color.RGBA{A: 255}, nil
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}, nil
}
