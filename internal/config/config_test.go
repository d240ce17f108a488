package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseDefaultConfig(t *testing.T) {
	cfg, err := parse(DefaultConfigYAML)
	if err != nil {
		t.Fatalf("failed to parse default config: %v", err)
	}

	if cfg.Curator.MaxSearchResults != 10 {
		t.Errorf("expected max results 10, got %d", cfg.Curator.MaxSearchResults)
	}
	if cfg.Curator.SearchLanguage != "pt" {
		t.Errorf("expected language 'pt', got %q", cfg.Curator.SearchLanguage)
	}
	if cfg.Curator.MaxSummaryLength != 200 {
		t.Errorf("expected summary length 200, got %d", cfg.Curator.MaxSummaryLength)
	}
	if len(cfg.Curator.Categories) != 6 || cfg.Curator.Categories[1] != "política" {
		t.Errorf("unexpected categories: %v", cfg.Curator.Categories)
	}
	if !cfg.Cache.Enabled || cfg.Cache.Backend != "memory" {
		t.Errorf("expected enabled memory cache, got %+v", cfg.Cache)
	}
	if !cfg.Sources.Simulated {
		t.Error("expected simulated source enabled")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}
}

func TestParseMinimalConfig(t *testing.T) {
	data := []byte(`
curator:
  max_search_results: 4
cache:
  backend: sqlite
server:
  port: 9000
`)
	cfg, err := parse(data)
	if err != nil {
		t.Fatalf("failed to parse minimal config: %v", err)
	}

	if cfg.Curator.MaxSearchResults != 4 {
		t.Errorf("expected max results 4, got %d", cfg.Curator.MaxSearchResults)
	}
	if cfg.Cache.Backend != "sqlite" {
		t.Errorf("expected sqlite backend, got %q", cfg.Cache.Backend)
	}
	// Defaults should still be set for unspecified fields
	if cfg.Curator.MaxSummaryLength != 200 {
		t.Errorf("expected default summary length, got %d", cfg.Curator.MaxSummaryLength)
	}
	if cfg.Cache.DurationMinutes != 30 {
		t.Errorf("expected default cache duration, got %d", cfg.Cache.DurationMinutes)
	}
	if len(cfg.Curator.Categories) != 6 {
		t.Errorf("expected default categories, got %v", cfg.Curator.Categories)
	}
}

func TestParseInvalidYAML(t *testing.T) {
	if _, err := parse([]byte("curator: [unclosed")); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, DefaultConfigYAML, 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Curator.SearchCountry != "BR" {
		t.Errorf("expected country BR, got %q", cfg.Curator.SearchCountry)
	}

	resolved, err := ResolveConfigPath(path)
	if err != nil || resolved != path {
		t.Errorf("expected explicit path to resolve, got %q, %v", resolved, err)
	}
}

func TestResolveMissingExplicitPath(t *testing.T) {
	_, err := ResolveConfigPath(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("explicit missing path should not be reported as ErrNotFound")
	}
}

func TestCacheHelpers(t *testing.T) {
	cfg := Default()
	if cfg.CacheTTL() != 30*time.Minute {
		t.Errorf("expected 30m TTL, got %v", cfg.CacheTTL())
	}
	if cfg.GetCachePath() == "" {
		t.Error("expected non-empty default cache path")
	}

	cfg.Cache.Path = "/custom/cache.db"
	if cfg.GetCachePath() != "/custom/cache.db" {
		t.Errorf("expected '/custom/cache.db', got %q", cfg.GetCachePath())
	}
}
