package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"MeetBoard/internal/logger"
	"MeetBoard/internal/state"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger logger.Config `toml:"logger"`
	Board  BoardConfig   `toml:"board"`
	Mirror MirrorConfig  `toml:"mirror"`
}

// BoardConfig describes the drawing surface and pen defaults.
type BoardConfig struct {
	Width       int     `toml:"width"`
	Height      int     `toml:"height"`
	Background  string  `toml:"background"`
	PenColor    string  `toml:"pen_color"`
	DrawRadius  float64 `toml:"draw_radius"`
	EraseRadius float64 `toml:"erase_radius"`
	FontSize    float64 `toml:"font_size"`
	MaxHistory  int     `toml:"max_history"` // 0 keeps every snapshot until Clear
}

// MirrorConfig controls the read-only websocket stream for the host view.
type MirrorConfig struct {
	Enabled   bool   `toml:"enabled"`
	Addr      string `toml:"addr"`
	Advertise bool   `toml:"advertise"`
}

// NewDefaultConfig creates a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Board: BoardConfig{
			Width:       DefaultWidth,
			Height:      DefaultHeight,
			Background:  DefaultBackground,
			PenColor:    DefaultPenColor,
			DrawRadius:  DefaultDrawRadius,
			EraseRadius: DefaultEraseRadius,
			FontSize:    DefaultFontSize,
		},
		Mirror: MirrorConfig{
			Addr: DefaultMirrorAddr,
		},
	}
}

// DefaultPath returns the config file location under the user config dir,
// or "" when that dir cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppName, DefaultConfigFileName)
}

// Load reads path on top of the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	if path == "" {
		cfg.validate()
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg = NewDefaultConfig()
			cfg.validate()
			return cfg, nil
		}
		return NewDefaultConfig(), fmt.Errorf("failed to parse config file '%s': %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		logger.WarnTagf("config", "Config file '%s': unrecognized keys: %v", path, undecoded)
	}

	cfg.validate()
	return cfg, nil
}

// validate resets invalid values to their defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Board.Width <= 0 {
		c.Board.Width = defaults.Board.Width
	}
	if c.Board.Height <= 0 {
		c.Board.Height = defaults.Board.Height
	}
	if _, err := state.ParseColor(c.Board.Background); err != nil {
		c.Board.Background = defaults.Board.Background
	}
	if _, err := state.ParseColor(c.Board.PenColor); err != nil {
		c.Board.PenColor = defaults.Board.PenColor
	}
	if c.Board.DrawRadius <= 0 {
		c.Board.DrawRadius = defaults.Board.DrawRadius
	}
	if c.Board.EraseRadius <= 0 {
		c.Board.EraseRadius = defaults.Board.EraseRadius
	}
	if c.Board.FontSize <= 0 {
		c.Board.FontSize = defaults.Board.FontSize
	}
	if c.Board.MaxHistory < 0 {
		c.Board.MaxHistory = 0
	}
	if c.Mirror.Addr == "" {
		c.Mirror.Addr = defaults.Mirror.Addr
	}
	if c.Logger.Level == "" {
		c.Logger.Level = defaults.Logger.Level
	}
}

// PenDefaults converts the board section into the tool controller's defaults.
func (b BoardConfig) PenDefaults() state.Defaults {
	return state.Defaults{
		Color:       state.MustParseColor(b.PenColor),
		Background:  state.MustParseColor(b.Background),
		DrawRadius:  b.DrawRadius,
		EraseRadius: b.EraseRadius,
	}
}
