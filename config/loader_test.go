package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// denyAllFS reports every path as missing, keeping tests independent of
// files in the working directory.
type denyAllFS struct{}

func (denyAllFS) Exists(string) bool   { return false }
func (denyAllFS) LoadEnv(string) error { return nil }

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(WithFileSystem(denyAllFS{}))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Sink.Timeout != 30*time.Second {
		t.Errorf("sink timeout = %v, want 30s", cfg.Sink.Timeout)
	}
	if cfg.Logger.Level != "info" {
		t.Errorf("logger level = %q, want info", cfg.Logger.Level)
	}
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "filterkit.yml", `
logger:
  level: debug
  format: json
sink:
  timeout: 5s
  headers:
    User-Agent: filterkit-test
`)

	cfg, err := Load(WithConfigFile(path))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Logger.Level != "debug" {
		t.Errorf("logger level = %q, want debug", cfg.Logger.Level)
	}
	if cfg.Logger.Format != "json" {
		t.Errorf("logger format = %q, want json", cfg.Logger.Format)
	}
	if cfg.Sink.Timeout != 5*time.Second {
		t.Errorf("sink timeout = %v, want 5s", cfg.Sink.Timeout)
	}
	if cfg.Sink.Headers["User-Agent"] != "filterkit-test" {
		t.Errorf("headers = %v", cfg.Sink.Headers)
	}
}

func TestEnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "filterkit.yml", "logger:\n  level: info\n")

	t.Setenv("FILTERKIT_LOGGER_LEVEL", "warn")

	cfg, err := Load(WithConfigFile(path))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Logger.Level != "warn" {
		t.Errorf("logger level = %q, want warn (env wins)", cfg.Logger.Level)
	}
}

func TestLoadFromEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ".env", "FILTERKIT_LOGGER_FORMAT=json\n")
	t.Cleanup(func() { _ = os.Unsetenv("FILTERKIT_LOGGER_FORMAT") })

	cfg, err := Load(WithFileSystem(envOnlyFS{}), WithEnvFile(path))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Logger.Format != "json" {
		t.Errorf("logger format = %q, want json", cfg.Logger.Format)
	}
}

// envOnlyFS delegates env loading to the real implementation but hides
// all other files.
type envOnlyFS struct{}

func (envOnlyFS) Exists(path string) bool   { return filepath.Base(path) == ".env" }
func (envOnlyFS) LoadEnv(path string) error { return realFileSystem{}.LoadEnv(path) }

func TestLoadRejectsInvalidLevel(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "filterkit.yml", "logger:\n  level: shouting\n")

	if _, err := Load(WithConfigFile(path)); err == nil {
		t.Fatal("expected validation error for invalid level")
	}
}
