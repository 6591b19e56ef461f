package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/tunefetch/internal/quality"
)

const appName = "tunefetch"

// Environment overrides, applied after the config files.
const (
	EnvAPIURL       = "TUNEFETCH_API_URL"
	EnvDownloadsDir = "TUNEFETCH_DOWNLOADS_DIR"
)

type Config struct {
	API           APIConfig           `koanf:"api"`
	Search        SearchConfig        `koanf:"search"`
	Download      DownloadConfig      `koanf:"download"`
	Token         TokenConfig         `koanf:"token"`
	Preview       PreviewConfig       `koanf:"preview"`
	UI            UIConfig            `koanf:"ui"`
	Notifications NotificationsConfig `koanf:"notifications"`
	MPRIS         *bool               `koanf:"mpris"`
	Log           LogConfig           `koanf:"log"`
}

// APIConfig points the client at the backend.
type APIConfig struct {
	BaseURL string `koanf:"base_url"` // e.g., "http://localhost:5000"
	Timeout string `koanf:"timeout"`  // Go duration, default "30s"
}

// SearchConfig holds search behaviour settings.
type SearchConfig struct {
	DefaultTab     string `koanf:"default_tab"`      // "qobuz" or "spotify"
	LyricsMinWords int    `koanf:"lyrics_min_words"` // word threshold for lyrics mode (default: 5)
}

// DownloadConfig holds download settings.
type DownloadConfig struct {
	Quality string `koanf:"quality"`  // quality code, default "6"
	Dir     string `koanf:"dir"`      // where saved files go
	TagFill *bool  `koanf:"tag_fill"` // fill missing tags after save (default: true)
}

// TokenConfig holds status polling intervals.
type TokenConfig struct {
	PollInterval        string `koanf:"poll_interval"`         // default "10m"
	RenewalPollInterval string `koanf:"renewal_poll_interval"` // default "30m"
}

// PreviewConfig holds preview playback settings.
type PreviewConfig struct {
	Volume *float64 `koanf:"volume"` // 0.0 to 1.0, default 0.8
}

// UIConfig holds display settings.
type UIConfig struct {
	Icons string `koanf:"icons"` // "nerd", "unicode" (default), or "none"
}

// NotificationsConfig holds desktop notification settings.
type NotificationsConfig struct {
	Enabled *bool `koanf:"enabled"` // default: true
	Timeout int32 `koanf:"timeout"` // ms, default 5000
}

// LogConfig holds file logging settings.
type LogConfig struct {
	Level      string `koanf:"level"`
	File       string `koanf:"file"`
	MaxSize    int    `koanf:"max_size"`
	MaxBackups int    `koanf:"max_backups"`
	MaxAge     int    `koanf:"max_age"`
}

// Load reads .env, the config files and environment overrides.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom reads the given TOML files in order (last wins), skipping
// files that do not exist, then applies environment overrides.
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

	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv(EnvDownloadsDir); v != "" {
		cfg.Download.Dir = v
	}

	// Normalize base URL (remove trailing slash)
	cfg.API.BaseURL = strings.TrimSuffix(cfg.API.BaseURL, "/")
	cfg.Download.Dir = expandPath(cfg.Download.Dir)
	cfg.Log.File = expandPath(cfg.Log.File)

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/tunefetch/config.toml
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

// BaseURL returns the backend URL, defaulting to a local server.
func (c *Config) BaseURL() string {
	if c.API.BaseURL == "" {
		return "http://localhost:5000"
	}
	return c.API.BaseURL
}

// Timeout returns the HTTP timeout for backend calls.
func (c *Config) Timeout() time.Duration {
	return parseDuration(c.API.Timeout, 30*time.Second)
}

// DefaultTab returns the tab selected on first launch.
func (c *Config) DefaultTab() string {
	if c.Search.DefaultTab == "spotify" {
		return "spotify"
	}
	return "qobuz"
}

// LyricsMinWords returns the word count from which a query is treated
// as a lyrics fragment.
func (c *Config) LyricsMinWords() int {
	if c.Search.LyricsMinWords <= 0 {
		return 5
	}
	return c.Search.LyricsMinWords
}

// Quality returns the configured quality tier, or the default tier.
func (c *Config) Quality() quality.Code {
	return quality.Parse(c.Download.Quality)
}

// DownloadsDir returns where downloaded files are saved.
func (c *Config) DownloadsDir() string {
	if c.Download.Dir != "" {
		return c.Download.Dir
	}
	base := xdg.UserDirs.Music
	if base == "" {
		base = xdg.Home
	}
	return filepath.Join(base, appName)
}

// TagFillEnabled reports whether missing tags are filled after a save.
func (c *Config) TagFillEnabled() bool {
	return c.Download.TagFill == nil || *c.Download.TagFill
}

// TokenPollInterval returns how often token status is refreshed.
func (c *Config) TokenPollInterval() time.Duration {
	return parseDuration(c.Token.PollInterval, 10*time.Minute)
}

// RenewalPollInterval returns how often renewal status is refreshed.
func (c *Config) RenewalPollInterval() time.Duration {
	return parseDuration(c.Token.RenewalPollInterval, 30*time.Minute)
}

// GetNotificationsConfig returns the notification settings with defaults applied.
func (c *Config) GetNotificationsConfig() NotificationsConfig {
	cfg := c.Notifications
	if cfg.Enabled == nil {
		enabled := true
		cfg.Enabled = &enabled
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5000
	}
	return cfg
}

// PreviewVolume returns the preview volume clamped to [0, 1].
func (c *Config) PreviewVolume() float64 {
	if c.Preview.Volume == nil {
		return 0.8
	}
	return min(max(*c.Preview.Volume, 0), 1)
}

// IconStyle returns the icon set name.
func (c *Config) IconStyle() string {
	switch c.UI.Icons {
	case "nerd", "none":
		return c.UI.Icons
	default:
		return "unicode"
	}
}

// MPRISEnabled reports whether preview controls are exported over MPRIS.
func (c *Config) MPRISEnabled() bool {
	return c.MPRIS == nil || *c.MPRIS
}

// LogFile returns the log file path.
func (c *Config) LogFile() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(xdg.StateHome, appName, appName+".log")
}

func parseDuration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
