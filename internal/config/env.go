package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override project file values.
const (
	EnvSeed     = "TONAL_SEED"
	EnvTheme    = "TONAL_THEME"
	EnvStateDir = "TONAL_STATE_DIR"
	EnvPlugins  = "TONAL_PLUGINS"
)

// LoadDotEnv loads variables from the given .env files (default ".env")
// without overriding variables already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overlays environment overrides onto cfg and revalidates it.
func ApplyEnv(cfg *Config) error {
	return applyEnv(cfg, os.Getenv)
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	if v := getenv(EnvSeed); v != "" {
		cfg.Seed = v
	}
	if v := getenv(EnvTheme); v != "" {
		cfg.Theme = strings.ToLower(v)
	}
	if v := getenv(EnvStateDir); v != "" {
		cfg.StateDir = v
	}
	if v := getenv(EnvPlugins); v != "" {
		plugins, err := parsePluginList(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPlugins, err)
		}
		if cfg.Plugins == nil {
			cfg.Plugins = map[string]string{}
		}
		for name, path := range plugins {
			cfg.Plugins[name] = path
		}
	}
	return Validate(cfg)
}

// parsePluginList parses "name=path,name2=path2".
func parsePluginList(s string) (map[string]string, error) {
	out := map[string]string{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, path, ok := strings.Cut(part, "=")
		name, path = strings.TrimSpace(name), strings.TrimSpace(path)
		if !ok || name == "" || path == "" {
			return nil, fmt.Errorf("invalid plugin entry %q (want name=path)", part)
		}
		out[name] = path
	}
	return out, nil
}
