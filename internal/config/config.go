package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

type Config struct {
	BaseURL    string   `yaml:"base_url"`
	Timeout    string   `yaml:"timeout"`
	UserAgents []string `yaml:"user_agents"`
	StartDate  string   `yaml:"start_date"`
	Output     string   `yaml:"output"`
	Format     string   `yaml:"format"`
	Backfill   bool     `yaml:"backfill"`
	History    *bool    `yaml:"history,omitempty"`
	Retention  string   `yaml:"retention"`
}

// HistoryEnabled reports whether scrape runs should be logged. Defaults to true.
func (c *Config) HistoryEnabled() bool {
	return c.History == nil || *c.History
}

func (c *Config) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

func (c *Config) RetentionDuration() time.Duration {
	d, err := ParseDays(c.Retention)
	if err != nil || d <= 0 {
		return 90 * 24 * time.Hour
	}
	return d
}

// ParseDays parses a duration that also accepts an "Nd" day suffix.
func ParseDays(s string) (time.Duration, error) {
	if len(s) > 1 && s[len(s)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(s, "%dd", &days); err == nil {
			return time.Duration(days) * 24 * time.Hour, nil
		}
	}
	return time.ParseDuration(s)
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "fng", "config.yaml")
}

func HistoryPath() string {
	return filepath.Join(xdg.CacheHome, "fng", "history.db")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load reads the config at path (or the default location), falling back to the
// embedded defaults, then applies FNG_* environment overrides. A .env file in
// the working directory is loaded first if present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg, err := loadFile(path)
	if err != nil {
		return nil, err
	}
	applyEnv(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Non-fatal: just use embedded defaults
			_ = writeDefaults(path)
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Unmarshal over the defaults so a partial file keeps the rest.
	cfg := *defaults
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("FNG_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("FNG_TIMEOUT"); v != "" {
		cfg.Timeout = v
	}
	if v := os.Getenv("FNG_USER_AGENT"); v != "" {
		cfg.UserAgents = []string{v}
	}
	if v := os.Getenv("FNG_HISTORY"); v != "" {
		enabled := v == "1" || strings.EqualFold(v, "true") || strings.EqualFold(v, "yes")
		cfg.History = &enabled
	}
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func validate(cfg *Config) error {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return fmt.Errorf("base_url: invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url: scheme must be http or https, got %q", u.Scheme)
	}
	if cfg.Timeout != "" {
		if _, err := time.ParseDuration(cfg.Timeout); err != nil {
			return fmt.Errorf("timeout: %w", err)
		}
	}
	if cfg.StartDate != "" {
		if _, err := time.Parse("2006-01-02", cfg.StartDate); err != nil {
			return fmt.Errorf("start_date %q: use YYYY-MM-DD", cfg.StartDate)
		}
	}
	switch strings.ToLower(cfg.Format) {
	case "", "parquet", "csv":
	default:
		return fmt.Errorf("format %q: must be parquet or csv", cfg.Format)
	}
	return nil
}
