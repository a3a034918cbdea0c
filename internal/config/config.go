// Package config provides configuration management for countdown.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"github.com/xvierd/countdown-cli/internal/domain"
	"github.com/xvierd/countdown-cli/internal/logger"
)

const defaultDataDir = "~/.countdown"

// Config holds all configuration for the countdown application.
type Config struct {
	Timer         TimerConfig        `mapstructure:"timer" toml:"timer"`
	Shortcuts     ShortcutsConfig    `mapstructure:"shortcuts" toml:"shortcuts"`
	Notifications NotificationConfig `mapstructure:"notifications" toml:"notifications"`
	Storage       StorageConfig      `mapstructure:"storage" toml:"storage"`
	Log           LogConfig          `mapstructure:"log" toml:"log"`
	Server        ServerConfig       `mapstructure:"server" toml:"server"`
	Theme         ThemeConfig        `mapstructure:"theme" toml:"theme"`
}

// TimerConfig holds countdown behaviour settings.
type TimerConfig struct {
	TickInterval              Duration `mapstructure:"tick_interval" toml:"tick_interval"`
	RingRadius                float64  `mapstructure:"ring_radius" toml:"ring_radius"`
	NotificationDelay         Duration `mapstructure:"notification_delay" toml:"notification_delay"`
	ShortcutNotificationDelay Duration `mapstructure:"shortcut_notification_delay" toml:"shortcut_notification_delay"`
}

// ShortcutsConfig holds the preset durations behind the shortcut controls.
type ShortcutsConfig struct {
	Presets []domain.Preset `mapstructure:"presets" toml:"presets"`
}

// NotificationConfig holds notification settings.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled" toml:"enabled"`
	Sound   bool `mapstructure:"sound" toml:"sound"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir" toml:"data_dir"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level" toml:"level"`
}

// ServerConfig holds the HTTP remote control settings.
type ServerConfig struct {
	Addr string `mapstructure:"addr" toml:"addr"`
}

// ThemeConfig holds theme customization settings (colors and icons).
type ThemeConfig struct {
	ColorIdle     string `mapstructure:"color_idle" toml:"color_idle"`
	ColorRunning  string `mapstructure:"color_running" toml:"color_running"`
	ColorPaused   string `mapstructure:"color_paused" toml:"color_paused"`
	ColorExpired  string `mapstructure:"color_expired" toml:"color_expired"`
	ColorTitle    string `mapstructure:"color_title" toml:"color_title"`
	ColorHelp     string `mapstructure:"color_help" toml:"color_help"`
	GradientStart string `mapstructure:"gradient_start" toml:"gradient_start"`
	GradientEnd   string `mapstructure:"gradient_end" toml:"gradient_end"`
	IconApp       string `mapstructure:"icon_app" toml:"icon_app"`
	IconNotes     string `mapstructure:"icon_notes" toml:"icon_notes"`
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		ColorIdle:     "#A0AEC0",
		ColorRunning:  "#7C6FE0",
		ColorPaused:   "#6B7280",
		ColorExpired:  "#E74C3C",
		ColorTitle:    "#6B7280",
		ColorHelp:     "#95A5A6",
		GradientStart: "#7C6FE0",
		GradientEnd:   "#A78BFA",
		IconApp:       "⏳",
		IconNotes:     "📝",
	}
}

// Duration is a wrapper around time.Duration for TOML parsing.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(duration)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// String returns the string representation of the duration.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Timer: TimerConfig{
			TickInterval:              Duration(time.Second),
			RingRadius:                domain.DefaultRingRadius,
			NotificationDelay:         Duration(3 * time.Second),
			ShortcutNotificationDelay: Duration(2 * time.Second),
		},
		Shortcuts: ShortcutsConfig{
			Presets: domain.DefaultPresets(),
		},
		Notifications: NotificationConfig{
			Enabled: true,
			Sound:   true,
		},
		Storage: StorageConfig{
			DataDir: defaultDataDir,
		},
		Log: LogConfig{
			Level: logger.InfoLevel,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:7788",
		},
		Theme: DefaultThemeConfig(),
	}
}

// Load loads the configuration from the default config file, creating it
// with defaults on first run.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from configPath.
func LoadFrom(configPath string) (*Config, error) {
	// Ensure config directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	setDefaults(v)

	// If config file doesn't exist, create it with defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := SaveTo(configPath, DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	dataDir, err := ExpandHome(cfg.Storage.DataDir)
	if err != nil {
		return nil, err
	}
	cfg.Storage.DataDir = dataDir

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configPath, err)
	}

	return &cfg, nil
}

// Save saves the configuration to the default config file.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	return SaveTo(configPath, cfg)
}

// SaveTo writes the configuration to configPath.
func SaveTo(configPath string, cfg *Config) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	v.Set("timer.tick_interval", cfg.Timer.TickInterval.String())
	v.Set("timer.ring_radius", cfg.Timer.RingRadius)
	v.Set("timer.notification_delay", cfg.Timer.NotificationDelay.String())
	v.Set("timer.shortcut_notification_delay", cfg.Timer.ShortcutNotificationDelay.String())
	v.Set("shortcuts.presets", presetMaps(cfg.Shortcuts.Presets))
	v.Set("notifications.enabled", cfg.Notifications.Enabled)
	v.Set("notifications.sound", cfg.Notifications.Sound)
	v.Set("storage.data_dir", cfg.Storage.DataDir)
	v.Set("log.level", cfg.Log.Level)
	v.Set("server.addr", cfg.Server.Addr)
	v.Set("theme.color_idle", cfg.Theme.ColorIdle)
	v.Set("theme.color_running", cfg.Theme.ColorRunning)
	v.Set("theme.color_paused", cfg.Theme.ColorPaused)
	v.Set("theme.color_expired", cfg.Theme.ColorExpired)
	v.Set("theme.color_title", cfg.Theme.ColorTitle)
	v.Set("theme.color_help", cfg.Theme.ColorHelp)
	v.Set("theme.gradient_start", cfg.Theme.GradientStart)
	v.Set("theme.gradient_end", cfg.Theme.GradientEnd)
	v.Set("theme.icon_app", cfg.Theme.IconApp)
	v.Set("theme.icon_notes", cfg.Theme.IconNotes)

	return v.WriteConfig()
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".countdown", "config.toml"), nil
}

// GetDBPath returns the path to the database file.
func GetDBPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "countdown.db")
}

// Validate checks the values the timer core depends on.
func (c *Config) Validate() error {
	var errs []error
	if c.Timer.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("timer.tick_interval must be positive, got %s", c.Timer.TickInterval))
	}
	if c.Timer.RingRadius <= 0 {
		errs = append(errs, fmt.Errorf("timer.ring_radius must be positive, got %g", c.Timer.RingRadius))
	}
	for _, p := range c.Shortcuts.Presets {
		if err := domain.ValidatePreset(p); err != nil {
			errs = append(errs, fmt.Errorf("shortcuts.presets: %w", err))
		}
	}
	if !logger.ValidLevel(c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	return errors.Join(errs...)
}

// TimerOptions converts the config to the options of the timer core.
func (c *Config) TimerOptions() domain.Options {
	presets := c.Shortcuts.Presets
	if len(presets) == 0 {
		presets = domain.DefaultPresets()
	}
	return domain.Options{
		TickInterval:        time.Duration(c.Timer.TickInterval),
		Circumference:       domain.RingCircumference(c.Timer.RingRadius),
		NotifyDelay:         time.Duration(c.Timer.NotificationDelay),
		ShortcutNotifyDelay: time.Duration(c.Timer.ShortcutNotificationDelay),
		Presets:             presets,
	}
}

// EncodeTOML renders the effective configuration as TOML.
func (c *Config) EncodeTOML() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}

// setDefaults sets default values for viper.
func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()

	v.SetDefault("timer.tick_interval", defaults.Timer.TickInterval.String())
	v.SetDefault("timer.ring_radius", defaults.Timer.RingRadius)
	v.SetDefault("timer.notification_delay", defaults.Timer.NotificationDelay.String())
	v.SetDefault("timer.shortcut_notification_delay", defaults.Timer.ShortcutNotificationDelay.String())
	v.SetDefault("shortcuts.presets", presetMaps(defaults.Shortcuts.Presets))
	v.SetDefault("notifications.enabled", true)
	v.SetDefault("notifications.sound", true)
	v.SetDefault("storage.data_dir", defaultDataDir)
	v.SetDefault("log.level", logger.InfoLevel)
	v.SetDefault("server.addr", defaults.Server.Addr)

	// Theme defaults
	theme := defaults.Theme
	v.SetDefault("theme.color_idle", theme.ColorIdle)
	v.SetDefault("theme.color_running", theme.ColorRunning)
	v.SetDefault("theme.color_paused", theme.ColorPaused)
	v.SetDefault("theme.color_expired", theme.ColorExpired)
	v.SetDefault("theme.color_title", theme.ColorTitle)
	v.SetDefault("theme.color_help", theme.ColorHelp)
	v.SetDefault("theme.gradient_start", theme.GradientStart)
	v.SetDefault("theme.gradient_end", theme.GradientEnd)
	v.SetDefault("theme.icon_app", theme.IconApp)
	v.SetDefault("theme.icon_notes", theme.IconNotes)
}

func presetMaps(presets []domain.Preset) []map[string]any {
	out := make([]map[string]any, 0, len(presets))
	for _, p := range presets {
		out = append(out, map[string]any{"name": p.Name, "value": p.Value})
	}
	return out
}

// ExpandHome resolves a leading ~ in a data directory. An empty dir means
// the default data directory.
func ExpandHome(dir string) (string, error) {
	if dir == "" {
		dir = defaultDataDir
	}
	if dir != "~" && !strings.HasPrefix(dir, "~/") {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, strings.TrimPrefix(dir, "~")), nil
}
