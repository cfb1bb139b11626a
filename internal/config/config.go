package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "tunedeck"

type Config struct {
	DataDir string `koanf:"data_dir"` // overlay files / database; empty means xdg data home

	Storage  StorageConfig  `koanf:"storage"`
	Log      LogConfig      `koanf:"log"`
	History  HistoryConfig  `koanf:"history"`
	Playback PlaybackConfig `koanf:"playback"`
}

// StorageConfig selects where overlays are kept.
type StorageConfig struct {
	Backend string `koanf:"backend"` // "json" or "sqlite" (default: "json")
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level      string `koanf:"level"`        // debug, info, warn, error (default: info)
	File       string `koanf:"file"`         // optional rotated log file
	MaxSizeMB  int    `koanf:"max_size_mb"`  // default: 10
	MaxBackups int    `koanf:"max_backups"`  // default: 3
	MaxAgeDays int    `koanf:"max_age_days"` // default: 28
}

// HistoryConfig bounds the search history.
type HistoryConfig struct {
	SearchLimit int `koanf:"search_limit"` // default: 20
}

// PlaybackConfig holds simulated playback settings.
type PlaybackConfig struct {
	TickSeconds  int    `koanf:"tick_seconds"`  // default: 1
	DefaultStyle string `koanf:"default_style"` // default: "retro_cd"
}

func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom reads the given TOML files in order; later files override earlier
// ones and missing files are skipped.
func LoadFrom(paths ...string) (*Config, error) {
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

	cfg.DataDir = expandPath(cfg.DataDir)
	cfg.Log.File = expandPath(cfg.Log.File)
	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/tunedeck/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appName, "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetDataDir returns the overlay directory, defaulting to the xdg data home.
func (c *Config) GetDataDir() string {
	if c.DataDir != "" {
		return c.DataDir
	}
	return filepath.Join(xdg.DataHome, appName)
}

// GetStorageBackend returns the configured backend name with the default applied.
func (c *Config) GetStorageBackend() string {
	switch c.Storage.Backend {
	case "sqlite":
		return "sqlite"
	default:
		return "json"
	}
}

// GetLogConfig returns the logging configuration with defaults applied.
func (c *Config) GetLogConfig() LogConfig {
	cfg := c.Log

	if cfg.Level == "" {
		cfg.Level = "info"
	}
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = 10
	}
	if cfg.MaxBackups <= 0 {
		cfg.MaxBackups = 3
	}
	if cfg.MaxAgeDays <= 0 {
		cfg.MaxAgeDays = 28
	}

	return cfg
}

// GetSearchLimit returns the search history cap (default 20).
func (c *Config) GetSearchLimit() int {
	if c.History.SearchLimit <= 0 {
		return 20
	}
	return c.History.SearchLimit
}

// GetTickInterval returns how often a playing session advances.
func (c *Config) GetTickInterval() time.Duration {
	if c.Playback.TickSeconds <= 0 {
		return time.Second
	}
	return time.Duration(c.Playback.TickSeconds) * time.Second
}

// GetDefaultStyle returns the player style used before any style change.
func (c *Config) GetDefaultStyle() string {
	if c.Playback.DefaultStyle == "" {
		return "retro_cd"
	}
	return c.Playback.DefaultStyle
}
