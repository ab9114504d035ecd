package config

import (
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/typesbuilder/internal/foundation"
)

var configValidators = foundation.NewValidatorChain[*Config](validateOut, validateWatch)

func validate(cfg *Config) error {
	return configValidators.Validate(cfg).ToError()
}

func validateOut(cfg *Config) foundation.ValidationResult {
	out := filepath.Clean(cfg.Out)
	if out == "." {
		return foundation.Failf("out", "not_cwd", "must not be the package directory itself")
	}
	if !filepath.IsAbs(out) && (out == ".." || strings.HasPrefix(out, ".."+string(filepath.Separator))) {
		return foundation.Failf("out", "inside_cwd", "must be inside the package directory, got %s", cfg.Out)
	}
	return foundation.Valid()
}

func validateWatch(cfg *Config) foundation.ValidationResult {
	d, err := time.ParseDuration(cfg.Watch.Debounce)
	if err != nil {
		return foundation.Failf("watch.debounce", "duration", "invalid duration %q", cfg.Watch.Debounce)
	}
	if d <= 0 {
		return foundation.Failf("watch.debounce", "positive", "must be positive, got %s", cfg.Watch.Debounce)
	}
	return foundation.Valid()
}
