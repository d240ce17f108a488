package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var DefaultConfigYAML []byte

// ErrNotFound is returned by ResolveConfigPath when no config file exists in
// any of the searched locations.
var ErrNotFound = errors.New("no config file found")

type Config struct {
	Curator Curator `yaml:"curator"`
	Cache   Cache   `yaml:"cache"`
	Sources Sources `yaml:"sources"`
	Server  Server  `yaml:"server"`
	Logging Logging `yaml:"logging"`
}

type Curator struct {
	MaxSearchResults int      `yaml:"max_search_results"`
	SearchLanguage   string   `yaml:"search_language"`
	SearchCountry    string   `yaml:"search_country"`
	MaxSummaryLength int      `yaml:"max_summary_length"`
	Categories       []string `yaml:"categories"`
	Seed             int64    `yaml:"seed"`
}

type Cache struct {
	Enabled         bool   `yaml:"enabled"`
	Backend         string `yaml:"backend"`
	DurationMinutes int    `yaml:"duration_minutes"`
	Path            string `yaml:"path"`
	RedisURLEnv     string `yaml:"redis_url_env"`
}

type Sources struct {
	Simulated bool   `yaml:"simulated"`
	Feeds     []Feed `yaml:"feeds"`
}

// Feed is a local RSS/Atom file used as an additional article source.
type Feed struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

type Server struct {
	Port int `yaml:"port"`
}

type Logging struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultCategories is the supported taxonomy in display order.
var DefaultCategories = []string{"tecnologia", "política", "economia", "esportes", "saúde", "ciência"}

// ConfigDir returns the XDG config directory for newscurator.
func ConfigDir() string {
	return filepath.Join(homeDir(), ".config", "newscurator")
}

// DataDir returns the XDG data directory for newscurator.
func DataDir() string {
	return filepath.Join(homeDir(), ".local", "share", "newscurator")
}

// ResolveConfigPath finds the config file following priority:
// explicit path > ~/.config/newscurator/config.yaml > ./config.yaml
func ResolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	xdgConfig := filepath.Join(ConfigDir(), "config.yaml")
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig, nil
	}

	cwdConfig := "config.yaml"
	if _, err := os.Stat(cwdConfig); err == nil {
		return cwdConfig, nil
	}

	return "", fmt.Errorf("%w; searched:\n  %s\n  ./config.yaml", ErrNotFound, xdgConfig)
}

// Load reads and parses a config YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return parse(data)
}

// Default returns the built-in configuration.
func Default() *Config {
	return defaults()
}

func defaults() *Config {
	return &Config{
		Curator: Curator{
			MaxSearchResults: 10,
			SearchLanguage:   "pt",
			SearchCountry:    "BR",
			MaxSummaryLength: 200,
			Categories:       append([]string(nil), DefaultCategories...),
		},
		Cache: Cache{
			Enabled:         true,
			Backend:         "memory",
			DurationMinutes: 30,
			RedisURLEnv:     "REDIS_URL",
		},
		Sources: Sources{Simulated: true},
		Server:  Server{Port: 8080},
		Logging: Logging{Level: "INFO"},
	}
}

// parse parses YAML bytes into a Config, applying defaults.
func parse(data []byte) (*Config, error) {
	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if len(cfg.Curator.Categories) == 0 {
		cfg.Curator.Categories = append([]string(nil), DefaultCategories...)
	}
	return cfg, nil
}

// CacheTTL returns the cache expiration as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.DurationMinutes) * time.Minute
}

// GetCachePath returns the sqlite cache file from config or the XDG default.
func (c *Config) GetCachePath() string {
	if c.Cache.Path != "" {
		return c.Cache.Path
	}
	return filepath.Join(DataDir(), "cache.db")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
