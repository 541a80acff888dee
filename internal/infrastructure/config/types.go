package config

import "image/color"

// Config holds all loaded configuration
type Config struct {
	Engine     *EngineConfig
	Characters map[string]CharacterConfig
	Credits    string
	Env        EnvConfig
}

// EngineConfig is the root config for engine.ini
type EngineConfig struct {
	ShortGameName            string
	TransitionSeconds        float64 // Screen crossfade duration
	SplashSeconds            float64 // Splash enter/exit tween duration
	TextCPS                  float64 // Dialogue reveal speed (characters per second)
	AutoAdvanceSeconds       float64 // Delay before auto mode advances a fully shown line
	MissingImagePlaceholders bool    // Generate solid images for missing files instead of failing
	UI                       UIConfig
}

// UIConfig is the [UI] section of engine.ini
type UIConfig struct {
	Title                string
	ButtonColor          color.RGBA
	ButtonPressedColor   color.RGBA
	ButtonHighlightColor color.RGBA
}

// CharacterConfig is one section of characters.ini
type CharacterConfig struct {
	Color color.RGBA
}

// DefaultCharacter is used for speakers without a section in characters.ini.
var DefaultCharacter = CharacterConfig{Color: color.RGBA{255, 255, 255, 255}}

// Character returns the config for name, falling back to DefaultCharacter.
func (c *Config) Character(name string) CharacterConfig {
	if cc, ok := c.Characters[name]; ok {
		return cc
	}
	return DefaultCharacter
}

// EnvConfig holds environment overrides
type EnvConfig struct {
	AssetDir string `env:"NOVEL_ASSET_DIR"`
	UserDir  string `env:"NOVEL_USER_DIR"`
	SaveFile string `env:"NOVEL_SAVE_FILE"`
	LogFile  string `env:"NOVEL_LOG_FILE"`
	Width    int    `env:"NOVEL_WIDTH" envDefault:"1280"`
	Height   int    `env:"NOVEL_HEIGHT" envDefault:"720"`
	TPS      int    `env:"NOVEL_TPS" envDefault:"60"`
}

// UserConfig is the per-user settings file
type UserConfig struct {
	MasterVolume   float64            `json:"master_volume"`
	ChannelVolumes map[string]float64 `json:"channel_volumes"`
}

// DefaultUserConfig returns the settings written on first run.
func DefaultUserConfig() UserConfig {
	return UserConfig{
		MasterVolume: 0.5,
		ChannelVolumes: map[string]float64{
			"sfx":   1.0,
			"music": 1.0,
		},
	}
}
