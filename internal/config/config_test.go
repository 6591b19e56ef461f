//nolint:goconst // test cases intentionally repeat strings for readability
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/llehouerou/tunefetch/internal/quality"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"tilde expands to home", "~/music", filepath.Join(home, "music")},
		{"absolute path unchanged", "/srv/music", "/srv/music"},
		{"relative path unchanged", "music/out", "music/out"},
		{"empty string unchanged", "", ""},
		{"tilde only", "~", home},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := expandPath(tt.input); got != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()

	if len(paths) == 0 {
		t.Fatal("getConfigPaths() returned empty slice")
	}
	if last := paths[len(paths)-1]; last != "config.toml" {
		t.Errorf("last config path = %q, want %q", last, "config.toml")
	}
	if home, err := os.UserHomeDir(); err == nil {
		want := filepath.Join(home, ".config", "tunefetch", "config.toml")
		if paths[0] != want {
			t.Errorf("first config path = %q, want %q", paths[0], want)
		}
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFrom(t *testing.T) {
	path := writeConfig(t, `
[api]
base_url = "http://music.local:8080/"
timeout = "5s"

[search]
default_tab = "spotify"
lyrics_min_words = 4

[download]
quality = "27"
dir = "/tmp/out"
tag_fill = false

[token]
poll_interval = "1m"
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if got := cfg.BaseURL(); got != "http://music.local:8080" {
		t.Errorf("BaseURL = %q, trailing slash should be removed", got)
	}
	if got := cfg.Timeout(); got != 5*time.Second {
		t.Errorf("Timeout = %v", got)
	}
	if got := cfg.DefaultTab(); got != "spotify" {
		t.Errorf("DefaultTab = %q", got)
	}
	if got := cfg.LyricsMinWords(); got != 4 {
		t.Errorf("LyricsMinWords = %d", got)
	}
	if got := cfg.Quality(); got != quality.FLAC24Max {
		t.Errorf("Quality = %q", got)
	}
	if got := cfg.DownloadsDir(); got != "/tmp/out" {
		t.Errorf("DownloadsDir = %q", got)
	}
	if cfg.TagFillEnabled() {
		t.Error("TagFillEnabled = true, want false")
	}
	if got := cfg.TokenPollInterval(); got != time.Minute {
		t.Errorf("TokenPollInterval = %v", got)
	}
	if got := cfg.RenewalPollInterval(); got != 30*time.Minute {
		t.Errorf("RenewalPollInterval = %v, want default", got)
	}
}

func TestLoadFromMissingFilesUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if got := cfg.BaseURL(); got != "http://localhost:5000" {
		t.Errorf("BaseURL = %q", got)
	}
	if got := cfg.DefaultTab(); got != "qobuz" {
		t.Errorf("DefaultTab = %q", got)
	}
	if got := cfg.LyricsMinWords(); got != 5 {
		t.Errorf("LyricsMinWords = %d, want 5", got)
	}
	if got := cfg.Quality(); got != quality.Default {
		t.Errorf("Quality = %q", got)
	}
	if !cfg.TagFillEnabled() {
		t.Error("TagFillEnabled should default to true")
	}
	if cfg.DownloadsDir() == "" {
		t.Error("DownloadsDir should never be empty")
	}
	if cfg.LogFile() == "" {
		t.Error("LogFile should never be empty")
	}
}

func TestLoadFromLastFileWins(t *testing.T) {
	first := writeConfig(t, "[download]\nquality = \"5\"\n")
	second := writeConfig(t, "[download]\nquality = \"7\"\n")

	cfg, err := LoadFrom(first, second)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if got := cfg.Quality(); got != quality.FLAC24x96 {
		t.Errorf("Quality = %q, want 7", got)
	}
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv(EnvAPIURL, "http://env.example/")
	t.Setenv(EnvDownloadsDir, "/env/downloads")

	path := writeConfig(t, "[api]\nbase_url = \"http://file.example\"\n")
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if got := cfg.BaseURL(); got != "http://env.example" {
		t.Errorf("BaseURL = %q, want env override", got)
	}
	if got := cfg.DownloadsDir(); got != "/env/downloads" {
		t.Errorf("DownloadsDir = %q, want env override", got)
	}
}

func TestLoadFromInvalidTOML(t *testing.T) {
	path := writeConfig(t, "[api\nbase_url = ")
	if _, err := LoadFrom(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestGetNotificationsConfig(t *testing.T) {
	disabled := false
	tests := []struct {
		name        string
		config      Config
		wantEnabled bool
		wantTimeout int32
	}{
		{"defaults", Config{}, true, 5000},
		{"disabled", Config{Notifications: NotificationsConfig{Enabled: &disabled}}, false, 5000},
		{"custom timeout", Config{Notifications: NotificationsConfig{Timeout: 1500}}, true, 1500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.config.GetNotificationsConfig()
			if *got.Enabled != tt.wantEnabled {
				t.Errorf("Enabled = %v, want %v", *got.Enabled, tt.wantEnabled)
			}
			if got.Timeout != tt.wantTimeout {
				t.Errorf("Timeout = %d, want %d", got.Timeout, tt.wantTimeout)
			}
		})
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"", time.Second},
		{"2m", 2 * time.Minute},
		{"garbage", time.Second},
		{"-5s", time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := parseDuration(tt.in, time.Second); got != tt.want {
				t.Errorf("parseDuration(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPreviewAndUIDefaults(t *testing.T) {
	cfg, err := LoadFrom(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if got := cfg.PreviewVolume(); got != 0.8 {
		t.Errorf("PreviewVolume() = %v, want 0.8", got)
	}
	if got := cfg.IconStyle(); got != "unicode" {
		t.Errorf("IconStyle() = %q, want unicode", got)
	}
	if !cfg.MPRISEnabled() {
		t.Error("MPRISEnabled() = false, want true by default")
	}
}

func TestPreviewAndUIValues(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantVolume float64
		wantIcons  string
	}{
		{"nerd icons", "[ui]\nicons = \"nerd\"\n[preview]\nvolume = 0.5\n", 0.5, "nerd"},
		{"none icons", "[ui]\nicons = \"none\"\n", 0.8, "none"},
		{"unknown icons fall back", "[ui]\nicons = \"emoji\"\n", 0.8, "unicode"},
		{"volume clamped high", "[preview]\nvolume = 3.0\n", 1, "unicode"},
		{"volume clamped low", "[preview]\nvolume = -1.0\n", 0, "unicode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadFrom(writeConfig(t, tt.content))
			if err != nil {
				t.Fatalf("LoadFrom() error = %v", err)
			}
			if got := cfg.PreviewVolume(); got != tt.wantVolume {
				t.Errorf("PreviewVolume() = %v, want %v", got, tt.wantVolume)
			}
			if got := cfg.IconStyle(); got != tt.wantIcons {
				t.Errorf("IconStyle() = %q, want %q", got, tt.wantIcons)
			}
		})
	}
}

func TestMPRISDisabled(t *testing.T) {
	cfg, err := LoadFrom(writeConfig(t, "mpris = false\n"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.MPRISEnabled() {
		t.Error("MPRISEnabled() = true, want false")
	}
}
