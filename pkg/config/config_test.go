package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
environment: test
allocator:
  base_url: http://localhost:8000
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Allocator.Timeout != 120*time.Second {
		t.Fatalf("expected default allocator timeout 120s, got %s", cfg.Allocator.Timeout)
	}
	if cfg.Cache.SentimentTTL != 15*time.Minute {
		t.Fatalf("expected default sentiment ttl 15m, got %s", cfg.Cache.SentimentTTL)
	}
}

func TestLoadRejectsMissingAllocatorURL(t *testing.T) {
	path := writeConfig(t, `
environment: test
`)

	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation error for missing allocator.base_url")
	}
}

func TestEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
environment: test
allocator:
  base_url: http://localhost:8000
`)

	t.Setenv("ALLOCATOR_BASE_URL", "http://allocator:9000")
	t.Setenv("PORT", "9999")

	cfg, err := LoadWithEnv(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Allocator.BaseURL != "http://allocator:9000" {
		t.Fatalf("env override ignored: %s", cfg.Allocator.BaseURL)
	}
	if cfg.Server.Port != 9999 {
		t.Fatalf("env port override ignored: %d", cfg.Server.Port)
	}
}
