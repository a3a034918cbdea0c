package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xvierd/countdown-cli/internal/domain"
)

func TestDefaultConfig_Presets(t *testing.T) {
	cfg := DefaultConfig()
	presets := cfg.Shortcuts.Presets
	if len(presets) != 4 {
		t.Fatalf("expected 4 presets, got %d", len(presets))
	}
	if presets[0].Name != "Long" || presets[0].Value != "10:00" {
		t.Errorf("expected preset1 Long 10:00, got %s %s", presets[0].Name, presets[0].Value)
	}
	if presets[3].Value != "00:30" {
		t.Errorf("expected preset4 value 00:30, got %q", presets[3].Value)
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFrom_CreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not created: %v", err)
	}
	if time.Duration(cfg.Timer.TickInterval) != time.Second {
		t.Errorf("tick interval = %v, want 1s", cfg.Timer.TickInterval)
	}
	if time.Duration(cfg.Timer.NotificationDelay) != 3*time.Second {
		t.Errorf("notification delay = %v, want 3s", cfg.Timer.NotificationDelay)
	}
	if len(cfg.Shortcuts.Presets) != 4 {
		t.Errorf("presets = %v, want 4 defaults", cfg.Shortcuts.Presets)
	}
	if strings.HasPrefix(cfg.Storage.DataDir, "~") {
		t.Errorf("data dir %q should be expanded", cfg.Storage.DataDir)
	}
}

func TestLoadFrom_CustomValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[timer]
tick_interval = "500ms"
ring_radius = 20.0
notification_delay = "5s"

[[shortcuts.presets]]
name = "Tea"
value = "03:00"

[[shortcuts.presets]]
name = "Egg"
value = "07:00"

[storage]
data_dir = "` + filepath.ToSlash(dir) + `"

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	opts := cfg.TimerOptions()
	if opts.TickInterval != 500*time.Millisecond {
		t.Errorf("TickInterval = %v, want 500ms", opts.TickInterval)
	}
	if opts.NotifyDelay != 5*time.Second {
		t.Errorf("NotifyDelay = %v, want 5s", opts.NotifyDelay)
	}
	if opts.ShortcutNotifyDelay != 2*time.Second {
		t.Errorf("ShortcutNotifyDelay = %v, want default 2s", opts.ShortcutNotifyDelay)
	}
	if opts.Circumference != domain.RingCircumference(20) {
		t.Errorf("Circumference = %f, want ring of radius 20", opts.Circumference)
	}
	if len(opts.Presets) != 2 || opts.Presets[1].Name != "Egg" {
		t.Errorf("Presets = %v, want Tea and Egg", opts.Presets)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Log.Level)
	}
	if GetDBPath(cfg) != filepath.Join(filepath.ToSlash(dir), "countdown.db") {
		t.Errorf("GetDBPath() = %q", GetDBPath(cfg))
	}
}

func TestLoadFrom_RejectsInvalidPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[[shortcuts.presets]]
name = "Broken"
value = "99:99"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("LoadFrom() should reject a preset outside MM:SS bounds")
	}
}

func TestSaveTo_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := DefaultConfig()
	cfg.Shortcuts.Presets = []domain.Preset{{Name: "Pasta", Value: "09:00"}}
	cfg.Server.Addr = "127.0.0.1:9999"
	cfg.Notifications.Sound = false

	if err := SaveTo(path, cfg); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}
	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if loaded.Server.Addr != "127.0.0.1:9999" {
		t.Errorf("server addr = %q", loaded.Server.Addr)
	}
	if loaded.Notifications.Sound {
		t.Error("sound should stay disabled")
	}
	if len(loaded.Shortcuts.Presets) != 1 || loaded.Shortcuts.Presets[0].Value != "09:00" {
		t.Errorf("presets = %v", loaded.Shortcuts.Presets)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero tick", func(c *Config) { c.Timer.TickInterval = 0 }},
		{"negative radius", func(c *Config) { c.Timer.RingRadius = -1 }},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }},
		{"zero preset", func(c *Config) { c.Shortcuts.Presets = []domain.Preset{{Name: "Nil", Value: "00:00"}} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}

func TestEncodeTOML(t *testing.T) {
	data, err := DefaultConfig().EncodeTOML()
	if err != nil {
		t.Fatalf("EncodeTOML() error = %v", err)
	}
	out := string(data)
	for _, want := range []string{"[timer]", "tick_interval", "1s", "shortcuts.presets", "Medium", "127.0.0.1:7788"} {
		if !strings.Contains(out, want) {
			t.Errorf("encoded config missing %q:\n%s", want, out)
		}
	}
}

func TestDuration_Text(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("90s")); err != nil {
		t.Fatalf("UnmarshalText() error = %v", err)
	}
	if time.Duration(d) != 90*time.Second {
		t.Errorf("duration = %v, want 90s", d)
	}
	if err := d.UnmarshalText([]byte("soon")); err == nil {
		t.Error("UnmarshalText() should reject garbage")
	}
	text, _ := Duration(2 * time.Second).MarshalText()
	if string(text) != "2s" {
		t.Errorf("MarshalText() = %q, want 2s", text)
	}
}
