package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadServerDefaults(t *testing.T) {
	cfg, err := LoadServerFromEnv()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("addr = %q", cfg.Addr)
	}
	if cfg.TickEvery != 5*time.Second {
		t.Fatalf("tick = %s", cfg.TickEvery)
	}
	if !cfg.AutoAdvance {
		t.Fatalf("auto advance should default on")
	}
	if cfg.AutosaveSlot != "autosave" {
		t.Fatalf("autosave slot = %q", cfg.AutosaveSlot)
	}
}

func TestLoadServerEnvOverrides(t *testing.T) {
	t.Setenv("TYCOON_ADDR", ":9000")
	t.Setenv("TYCOON_TICK_EVERY", "250ms")
	t.Setenv("TYCOON_SEED", "42")
	t.Setenv("TYCOON_AUTO_ADVANCE", "false")

	cfg, err := LoadServerFromEnv()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9000" || cfg.TickEvery != 250*time.Millisecond || cfg.Seed != 42 || cfg.AutoAdvance {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestPortEnvWins(t *testing.T) {
	t.Setenv("PORT", "7777")
	t.Setenv("TYCOON_ADDR", ":9000")
	cfg, err := LoadServerFromEnv()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":7777" {
		t.Fatalf("addr = %q, want PORT to win", cfg.Addr)
	}
}

func TestConfigFileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tycoon.yaml")
	body := "addr: \":4242\"\ntick_every: 1s\nseed: 7\nstudio_name: File Studio\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	t.Setenv("TYCOON_CONFIG_FILE", path)
	t.Setenv("TYCOON_ADDR", ":9000")

	cfg, err := LoadServerFromEnv()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":4242" {
		t.Fatalf("addr = %q, want file to win over env", cfg.Addr)
	}
	if cfg.TickEvery != time.Second || cfg.Seed != 7 || cfg.StudioName != "File Studio" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
}

func TestConfigFileInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte(":\n  - ["), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	t.Setenv("TYCOON_CONFIG_FILE", path)
	if _, err := LoadServerFromEnv(); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestBadTickRejected(t *testing.T) {
	t.Setenv("TYCOON_TICK_EVERY", "-5s")
	if _, err := LoadServerFromEnv(); err == nil {
		t.Fatalf("expected error for negative tick")
	}
}

func TestLoadCLI(t *testing.T) {
	t.Setenv("TYC_API_BASE_URL", "http://example.com/")
	cfg := LoadCLIFromEnv()
	if cfg.APIBaseURL != "http://example.com" {
		t.Fatalf("base url = %q, want trailing slash trimmed", cfg.APIBaseURL)
	}
}
