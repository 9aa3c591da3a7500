package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/toasty/internal/model"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "top-right", cfg.Toast.Position)
	assert.Equal(t, 4*time.Second, cfg.Toast.Timeout.Duration())
	assert.True(t, cfg.Toast.PauseOnHover)
	assert.Equal(t, 0, cfg.Toast.MaxVisible)
	assert.False(t, cfg.Sound.Enabled)
	assert.Equal(t, 80, cfg.Sound.Volume)
	assert.False(t, cfg.DBus.Enabled)
	assert.Equal(t, 10.0, cfg.DBus.Rate)
	assert.Equal(t, 5, cfg.DBus.Burst)
	assert.True(t, cfg.TUI.ShowHelp)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_ParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[toast]
position = "bottom-center"
timeout = "2500ms"
pause_on_hover = false
max_visible = 3

[sound]
enabled = true
volume = 40

[sound.files]
error = "~/sounds/alarm.wav"

[dbus]
enabled = true
rate = 2.5
burst = 1

[tui]
show_help = false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "bottom-center", cfg.Toast.Position)
	assert.Equal(t, model.PositionBottomCenter, cfg.Position())
	assert.Equal(t, 2500*time.Millisecond, cfg.Toast.Timeout.Duration())
	assert.False(t, cfg.Toast.PauseOnHover)
	assert.Equal(t, 3, cfg.Toast.MaxVisible)
	assert.True(t, cfg.Sound.Enabled)
	assert.Equal(t, 40, cfg.Sound.Volume)
	assert.Equal(t, map[string]string{"error": "~/sounds/alarm.wav"}, cfg.Sound.Files)
	assert.True(t, cfg.DBus.Enabled)
	assert.Equal(t, 2.5, cfg.DBus.Rate)
	assert.Equal(t, 1, cfg.DBus.Burst)
	assert.False(t, cfg.TUI.ShowHelp)
}

func TestLoadConfig_PartialKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[toast]\nposition = \"top-left\"\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, model.PositionTopLeft, cfg.Position())
	assert.Equal(t, 4*time.Second, cfg.Toast.Timeout.Duration())
	assert.True(t, cfg.Toast.PauseOnHover)
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("this is not valid toml [[["), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[toast]\nposition = \"middle\"\n"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"4s", 4 * time.Second, false},
		{"1500ms", 1500 * time.Millisecond, false},
		{"1m", time.Minute, false},
		{"4000", 4 * time.Second, false},
		{"0", 0, false},
		{"soon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d.Duration())
		})
	}
}

func TestDuration_YAML(t *testing.T) {
	var got struct {
		Int    Duration `yaml:"int"`
		String Duration `yaml:"string"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("int: 4000\nstring: 250ms\n"), &got))
	assert.Equal(t, 4*time.Second, got.Int.Duration())
	assert.Equal(t, 250*time.Millisecond, got.String.Duration())

	out, err := yaml.Marshal(got)
	require.NoError(t, err)
	assert.Equal(t, "int: 4s\nstring: 250ms\n", string(out))

	assert.Error(t, yaml.Unmarshal([]byte("int: [1, 2]\n"), &got))
}

func TestDuration_Milliseconds(t *testing.T) {
	assert.Equal(t, 4000, Duration(4*time.Second).Milliseconds())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"every position", func(c *Config) { c.Toast.Position = "bottom-left" }, false},
		{"unknown position", func(c *Config) { c.Toast.Position = "center" }, true},
		{"zero timeout", func(c *Config) { c.Toast.Timeout = 0 }, true},
		{"negative max visible", func(c *Config) { c.Toast.MaxVisible = -1 }, true},
		{"max visible too high", func(c *Config) { c.Toast.MaxVisible = 51 }, true},
		{"volume too high", func(c *Config) { c.Sound.Volume = 101 }, true},
		{"sound file for known type", func(c *Config) { c.Sound.Files = map[string]string{"Info": "a.wav"} }, false},
		{"sound file for unknown type", func(c *Config) { c.Sound.Files = map[string]string{"alert": "a.wav"} }, true},
		{"zero rate", func(c *Config) { c.DBus.Rate = 0 }, true},
		{"zero burst", func(c *Config) { c.DBus.Burst = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_PositionFallback(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Toast.Position = "nowhere"
	assert.Equal(t, model.PositionTopRight, cfg.Position())
}

func TestConfig_Save(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subdir", "config.toml")

	cfg := DefaultConfig()
	cfg.Toast.Position = "bottom-right"
	cfg.Toast.Timeout = Duration(6 * time.Second)
	cfg.Sound.Enabled = true

	require.NoError(t, cfg.Save(path))

	_, err := os.Stat(path)
	require.NoError(t, err)
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "bottom-right", loaded.Toast.Position)
	assert.Equal(t, 6*time.Second, loaded.Toast.Timeout.Duration())
	assert.True(t, loaded.Sound.Enabled)
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/toasty/config.toml", ConfigPath())
}

func TestStatePath(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/custom/state")
	assert.Equal(t, "/custom/state/toasty", StatePath())
	assert.Equal(t, "/custom/state/toasty/toasty.log", LogPath())
}

func TestEnsureStateDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)

	require.NoError(t, EnsureStateDir())

	info, err := os.Stat(filepath.Join(dir, "toasty"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
