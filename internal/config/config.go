package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"pogo/internal/domain"
)

// DefaultBootstrapURL is the well-known first endpoint of every session.
const DefaultBootstrapURL = "https://pgorelease.nianticlabs.com/plfe/rpc"

// Backoff mirrors the session retry schedule.
type Backoff struct {
	Initial    time.Duration
	Multiplier float64
	Max        time.Duration
	Jitter     bool
}

// Config is the resolved runtime configuration.
type Config struct {
	BootstrapURL       string
	Timeout            time.Duration
	MaxRetries         int
	Backoff            Backoff
	InsecureSkipVerify bool
	UserAgent          string
	Home               string
	LogLevel           string
	// Location is nil when no position is configured.
	Location    *domain.Coordinates
	MetricsAddr string
}

// fileConfig is the TOML key mapping.
type fileConfig struct {
	BootstrapURL       string              `toml:"bootstrap_url"`
	Timeout            string              `toml:"timeout"`
	MaxRetries         int                 `toml:"max_retries"`
	InsecureSkipVerify bool                `toml:"insecure_skip_verify"`
	UserAgent          string              `toml:"user_agent"`
	Home               string              `toml:"home"`
	LogLevel           string              `toml:"log_level"`
	MetricsAddr        string              `toml:"metrics_addr"`
	Backoff            fileBackoff         `toml:"backoff"`
	Location           *domain.Coordinates `toml:"location"`
}

type fileBackoff struct {
	Initial    string  `toml:"initial"`
	Multiplier float64 `toml:"multiplier"`
	Max        string  `toml:"max"`
	Jitter     bool    `toml:"jitter"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BootstrapURL: DefaultBootstrapURL,
		Timeout:      30 * time.Second,
		MaxRetries:   3,
		Backoff: Backoff{
			Initial:    250 * time.Millisecond,
			Multiplier: 2.0,
			Max:        5 * time.Second,
			Jitter:     true,
		},
		UserAgent: "Niantic App",
		Home:      defaultHome(),
		LogLevel:  "info",
	}
}

func defaultHome() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		return ".pogo"
	}
	return filepath.Join(dir, ".pogo")
}

// Load overlays the file at path on the defaults and validates the result. A
// missing file is not an error when optional is set.
func Load(path string, optional bool) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("load config (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config (%s): unknown key %q", path, undecoded[0].String())
	}

	if meta.IsDefined("bootstrap_url") {
		cfg.BootstrapURL = strings.TrimSpace(raw.BootstrapURL)
	}
	if meta.IsDefined("timeout") {
		if cfg.Timeout, err = parseDuration("timeout", raw.Timeout); err != nil {
			return Config{}, err
		}
	}
	if meta.IsDefined("max_retries") {
		cfg.MaxRetries = raw.MaxRetries
	}
	if meta.IsDefined("insecure_skip_verify") {
		cfg.InsecureSkipVerify = raw.InsecureSkipVerify
	}
	if meta.IsDefined("user_agent") {
		cfg.UserAgent = strings.TrimSpace(raw.UserAgent)
	}
	if meta.IsDefined("home") {
		cfg.Home = expandHome(strings.TrimSpace(raw.Home))
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("metrics_addr") {
		cfg.MetricsAddr = strings.TrimSpace(raw.MetricsAddr)
	}
	if meta.IsDefined("backoff", "initial") {
		if cfg.Backoff.Initial, err = parseDuration("backoff.initial", raw.Backoff.Initial); err != nil {
			return Config{}, err
		}
	}
	if meta.IsDefined("backoff", "multiplier") {
		cfg.Backoff.Multiplier = raw.Backoff.Multiplier
	}
	if meta.IsDefined("backoff", "max") {
		if cfg.Backoff.Max, err = parseDuration("backoff.max", raw.Backoff.Max); err != nil {
			return Config{}, err
		}
	}
	if meta.IsDefined("backoff", "jitter") {
		cfg.Backoff.Jitter = raw.Backoff.Jitter
	}
	if meta.IsDefined("location") {
		cfg.Location = raw.Location
	}

	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("config (%s): %w", path, err)
	}
	return cfg, nil
}

func parseDuration(key, raw string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("config %s: %w", key, err)
	}
	return d, nil
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if dir, err := os.UserHomeDir(); err == nil {
			return filepath.Join(dir, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}

// Validate checks a resolved config.
func Validate(cfg Config) error {
	u, err := url.Parse(cfg.BootstrapURL)
	if err != nil || u.Host == "" {
		return fmt.Errorf("bootstrap_url %q is not an absolute URL", cfg.BootstrapURL)
	}
	if u.Scheme != "https" {
		return fmt.Errorf("bootstrap_url must use https, got %q", u.Scheme)
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if cfg.MaxRetries < 0 {
		return fmt.Errorf("max_retries must not be negative")
	}
	if cfg.Backoff.Initial < 0 || cfg.Backoff.Max < 0 {
		return fmt.Errorf("backoff delays must not be negative")
	}
	if cfg.Backoff.Multiplier != 0 && cfg.Backoff.Multiplier < 1 {
		return fmt.Errorf("backoff.multiplier must be at least 1")
	}
	if strings.TrimSpace(cfg.Home) == "" {
		return fmt.Errorf("home is required")
	}
	if loc := cfg.Location; loc != nil {
		if loc.Latitude < -90 || loc.Latitude > 90 {
			return fmt.Errorf("location.latitude %v out of range", loc.Latitude)
		}
		if loc.Longitude < -180 || loc.Longitude > 180 {
			return fmt.Errorf("location.longitude %v out of range", loc.Longitude)
		}
	}
	return nil
}
