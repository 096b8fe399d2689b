package config_test

import (
	"path/filepath"
	"testing"

	"pomo/internal/platform/config"
)

func TestNewUsesExplicitDir(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfg, err := config.New(dir, "")
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.StatusPath != filepath.Join(dir, "status.json") {
		t.Fatalf("unexpected status path: %s", cfg.StatusPath)
	}
	if cfg.ConfigPath != filepath.Join(dir, "config.yaml") || cfg.LegacyConfigPath != filepath.Join(dir, "config.json") {
		t.Fatalf("unexpected config paths: %+v", cfg)
	}
	if cfg.PluginsPath != filepath.Join(dir, "plugins", "plugins.json") {
		t.Fatalf("unexpected plugins path: %s", cfg.PluginsPath)
	}
}

func TestNewExplicitConfigDisablesLegacyLookup(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	custom := filepath.Join(dir, "custom.yaml")
	cfg, err := config.New(dir, custom)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.ConfigPath != custom || cfg.LegacyConfigPath != "" {
		t.Fatalf("expected custom config only, got %+v", cfg)
	}
}

func TestNewFallsBackToEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(config.EnvDir, dir)
	cfg, err := config.New("", "")
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.Dir != dir {
		t.Fatalf("expected dir from env, got %s", cfg.Dir)
	}
}
