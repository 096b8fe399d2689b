package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	EnvDir         = "POMO_DIR"
	configFileName = "config.yaml"
	legacyFileName = "config.json"
	statusFileName = "status.json"
	dbFileName     = "pomo.db"
)

// Config holds resolved filesystem locations. User preferences live in the
// settings module; this only says where things are.
type Config struct {
	Dir              string
	ConfigPath       string
	LegacyConfigPath string
	StatusPath       string
	DBPath           string
	PluginsPath      string
}

// New resolves paths under dir. An empty dir falls back to $POMO_DIR and then
// to ~/.config/pomo. An explicit configPath overrides the config file location.
func New(dir, configPath string) (Config, error) {
	if dir == "" {
		dir = os.Getenv(EnvDir)
	}
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".config", "pomo")
	}
	cfg := Config{
		Dir:              dir,
		ConfigPath:       filepath.Join(dir, configFileName),
		LegacyConfigPath: filepath.Join(dir, legacyFileName),
		StatusPath:       filepath.Join(dir, statusFileName),
		DBPath:           filepath.Join(dir, dbFileName),
		PluginsPath:      filepath.Join(dir, "plugins", "plugins.json"),
	}
	if configPath != "" {
		cfg.ConfigPath = configPath
		cfg.LegacyConfigPath = ""
	}
	return cfg, nil
}
