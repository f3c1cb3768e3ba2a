package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/reelplayer/reel/internal/subtitle"
)

type Config struct {
	// RestoreQueue reloads the saved queue on startup.
	RestoreQueue *bool `koanf:"restore_queue"`

	Subtitles SubtitlesConfig `koanf:"subtitles"`
}

// SubtitlesConfig holds subtitle display and selection preferences.
type SubtitlesConfig struct {
	FontSize           int      `koanf:"font_size"`           // default: 22
	TextColor          string   `koanf:"text_color"`          // hex RGB, default: FFFFFF
	BackgroundColor    string   `koanf:"background_color"`    // hex RGB, empty for transparent
	MarginBottom       int      `koanf:"margin_bottom"`       // pixels, default: 48
	PreferredLanguages []string `koanf:"preferred_languages"` // e.g. ["en", "fr"]
	AutoLoad           *bool    `koanf:"auto_load"`           // default: true
	SyncOffsetMs       int      `koanf:"sync_offset_ms"`      // default sync offset
}

func Load() (*Config, error) {
	return loadPaths(getConfigPaths())
}

// loadPaths merges the config files that exist, in order (last wins).
func loadPaths(paths []string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/reel/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "reel", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

// ShouldRestoreQueue returns whether the saved queue is reloaded on startup.
func (c *Config) ShouldRestoreQueue() bool {
	if c.RestoreQueue == nil {
		return true
	}
	return *c.RestoreQueue
}

// SubtitleConfig returns the subtitle preferences with defaults applied.
func (c *Config) SubtitleConfig() subtitle.Config {
	cfg := subtitle.DefaultConfig()
	s := c.Subtitles
	if s.FontSize > 0 {
		cfg.FontSize = s.FontSize
	}
	if s.TextColor != "" {
		cfg.TextColor = s.TextColor
	}
	if s.BackgroundColor != "" {
		cfg.BackgroundColor = s.BackgroundColor
	}
	if s.MarginBottom > 0 {
		cfg.MarginBottom = s.MarginBottom
	}
	cfg.PreferredLanguages = append([]string(nil), s.PreferredLanguages...)
	if s.AutoLoad != nil {
		cfg.AutoLoad = *s.AutoLoad
	}
	return cfg
}

// DefaultSyncOffset returns the configured sync offset.
func (c *Config) DefaultSyncOffset() time.Duration {
	return time.Duration(c.Subtitles.SyncOffsetMs) * time.Millisecond
}
