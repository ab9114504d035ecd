package config

import (
	"time"

	"git.home.luguber.info/inful/typesbuilder/internal/manifest"
)

const (
	defaultCwd      = "."
	defaultOut      = "pkg"
	defaultDebounce = 500 * time.Millisecond
)

func applyDefaults(cfg *Config) {
	if cfg.Cwd == "" {
		cfg.Cwd = defaultCwd
	}
	if cfg.Out == "" {
		cfg.Out = defaultOut
	}
	if cfg.Manifest == "" {
		cfg.Manifest = manifest.FileName
	}
	if cfg.Watch.Debounce == "" {
		cfg.Watch.Debounce = defaultDebounce.String()
	}
	if cfg.Plugins == nil {
		cfg.Plugins = map[string]map[string]any{}
	}
}
