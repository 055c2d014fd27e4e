package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("default http addr: %q", cfg.HTTPAddr)
	}
	if cfg.Tokens != "" {
		t.Fatalf("tokens must have no default")
	}
	if cfg.QueueCapacity != 0 {
		t.Fatalf("queues default to unbounded")
	}
	if cfg.PayloadMaxBytes != 1<<20 {
		t.Fatalf("payload max default: %d", cfg.PayloadMaxBytes)
	}
	if cfg.EnableStatus || cfg.EnableMetrics {
		t.Fatalf("optional surfaces default to off")
	}
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "hooknsock.json")
	data := []byte(`{"httpAddr":":9999","tokens":"abc:service1","queueCapacity":64,"enableStatus":true}`)
	if err := os.WriteFile(file, data, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(file)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":9999" {
		t.Fatalf("http addr: %q", cfg.HTTPAddr)
	}
	if cfg.Tokens != "abc:service1" {
		t.Fatalf("tokens: %q", cfg.Tokens)
	}
	if cfg.QueueCapacity != 64 {
		t.Fatalf("capacity: %d", cfg.QueueCapacity)
	}
	if !cfg.EnableStatus {
		t.Fatalf("enableStatus should be true")
	}
	// untouched fields keep defaults
	if cfg.PayloadMaxBytes != 1<<20 {
		t.Fatalf("payload max: %d", cfg.PayloadMaxBytes)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults")
	}
}

func TestFromEnv(t *testing.T) {
	cfg := Default()
	t.Setenv("HOOKNSOCK_HTTP_ADDR", ":7070")
	t.Setenv("HOOKNSOCK_TOKENS", "tok1,tok2")
	t.Setenv("HOOKNSOCK_QUEUE_CAPACITY", "128")
	t.Setenv("HOOKNSOCK_ENABLE_METRICS", "true")
	FromEnv(&cfg)
	if cfg.HTTPAddr != ":7070" {
		t.Fatalf("env http addr: %q", cfg.HTTPAddr)
	}
	if cfg.Tokens != "tok1,tok2" {
		t.Fatalf("env tokens: %q", cfg.Tokens)
	}
	if cfg.QueueCapacity != 128 {
		t.Fatalf("env capacity: %d", cfg.QueueCapacity)
	}
	if !cfg.EnableMetrics {
		t.Fatalf("env enable metrics")
	}
}

func TestFromEnvIgnoresInvalidNumbers(t *testing.T) {
	cfg := Default()
	t.Setenv("HOOKNSOCK_QUEUE_CAPACITY", "-5")
	t.Setenv("HOOKNSOCK_PAYLOAD_MAX_BYTES", "nope")
	FromEnv(&cfg)
	if cfg.QueueCapacity != 0 {
		t.Fatalf("negative capacity must be ignored")
	}
	if cfg.PayloadMaxBytes != 1<<20 {
		t.Fatalf("garbage payload max must be ignored")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "test.env")
	if err := os.WriteFile(file, []byte("HOOKNSOCK_TOKENS=envtok:envchan\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("HOOKNSOCK_TOKENS") })
	if err := LoadDotEnv(file); err != nil {
		t.Fatalf("load dotenv: %v", err)
	}
	cfg := Default()
	FromEnv(&cfg)
	if cfg.Tokens != "envtok:envchan" {
		t.Fatalf("dotenv tokens: %q", cfg.Tokens)
	}
}

func TestLoadDotEnvMissingFileIsFine(t *testing.T) {
	dir := t.TempDir()
	wd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	if err := LoadDotEnv(""); err != nil {
		t.Fatalf("missing .env must not error: %v", err)
	}
}
