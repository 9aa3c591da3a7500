// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/toasty/internal/model"
)

// Default configuration values.
const (
	DefaultPosition  = "top-right"
	DefaultTimeout   = 4 * time.Second
	DefaultVolume    = 80
	DefaultDBusRate  = 10.0
	DefaultDBusBurst = 5
)

// Config represents the toasty configuration.
type Config struct {
	Toast ToastConfig `toml:"toast"`
	Sound SoundConfig `toml:"sound"`
	DBus  DBusConfig  `toml:"dbus"`
	TUI   TUIConfig   `toml:"tui"`
}

// ToastConfig holds the widget settings.
type ToastConfig struct {
	Position     string   `toml:"position"`       // "top-right", "bottom-center", ...
	Timeout      Duration `toml:"timeout"`        // e.g. "4s" or 4000
	PauseOnHover bool     `toml:"pause_on_hover"` // Freeze the countdown under the pointer
	MaxVisible   int      `toml:"max_visible"`    // 0 = unlimited
}

// SoundConfig holds the chime settings.
type SoundConfig struct {
	Enabled bool              `toml:"enabled"`
	Volume  int               `toml:"volume"`          // 0-100
	Files   map[string]string `toml:"files,omitempty"` // Type name -> wav/ogg/mp3 path
}

// DBusConfig holds the session bus trigger settings.
type DBusConfig struct {
	Enabled bool    `toml:"enabled"`
	Rate    float64 `toml:"rate"`  // Renders per second
	Burst   int     `toml:"burst"` // Renders allowed at once
}

// TUIConfig holds TUI-specific settings.
type TUIConfig struct {
	ShowHelp bool `toml:"show_help"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Toast: ToastConfig{
			Position:     DefaultPosition,
			Timeout:      Duration(DefaultTimeout),
			PauseOnHover: true,
			MaxVisible:   0,
		},
		Sound: SoundConfig{
			Enabled: false,
			Volume:  DefaultVolume,
		},
		DBus: DBusConfig{
			Enabled: false,
			Rate:    DefaultDBusRate,
			Burst:   DefaultDBusBurst,
		},
		TUI: TUIConfig{
			ShowHelp: true,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "toasty", "config.toml")
}

// StatePath returns the path to the state directory.
// Uses XDG_STATE_HOME if set, otherwise ~/.local/state.
func StatePath() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "toasty")
}

// LogPath returns the path of the TUI log file.
func LogPath() string {
	return filepath.Join(StatePath(), "toasty.log")
}

// EnsureStateDir creates the state directory if it doesn't exist.
func EnsureStateDir() error {
	path := StatePath()
	if path == "" {
		return errors.New("unable to determine state directory")
	}
	return os.MkdirAll(path, 0755)
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, then overlay with file contents
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed and writes atomically via a temp file.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := model.ParsePosition(c.Toast.Position); err != nil {
		return fmt.Errorf("invalid position %q, must be one of: %v", c.Toast.Position, model.Positions())
	}
	if c.Toast.Timeout.Duration() <= 0 {
		return fmt.Errorf("timeout: %w", model.ErrInvalidTimeout)
	}
	if c.Toast.MaxVisible < 0 || c.Toast.MaxVisible > 50 {
		return fmt.Errorf("max_visible must be between 0 and 50, got %d", c.Toast.MaxVisible)
	}
	if c.Sound.Volume < 0 || c.Sound.Volume > 100 {
		return fmt.Errorf("volume must be between 0 and 100, got %d", c.Sound.Volume)
	}
	for name := range c.Sound.Files {
		if _, err := model.ParseType(name); err != nil {
			return fmt.Errorf("sound file for %q: %w", name, err)
		}
	}
	if c.DBus.Rate <= 0 {
		return fmt.Errorf("dbus rate must be positive, got %v", c.DBus.Rate)
	}
	if c.DBus.Burst < 1 {
		return fmt.Errorf("dbus burst must be at least 1, got %d", c.DBus.Burst)
	}
	return nil
}

// Position returns the parsed toast position. Call Validate first; an
// invalid value falls back to the default.
func (c *Config) Position() model.Position {
	p, err := model.ParsePosition(c.Toast.Position)
	if err != nil {
		return model.PositionTopRight
	}
	return p
}
