package plugin

import (
	"log/slog"
	"maps"

	"github.com/google/uuid"
)

// BuilderOptions is the per-invocation build context handed to a plugin.
// It is owned by the host and must be treated as read-only.
type BuilderOptions struct {
	// Cwd is the package source directory.
	Cwd string

	// Out is the package output directory.
	Out string

	// Options holds the raw plugin configuration.
	Options map[string]any

	// Reporter receives user-facing notices and artifact notifications.
	Reporter Reporter

	// Logger provides structured logging for plugin operations.
	Logger *slog.Logger

	// BuildID uniquely identifies this pipeline run.
	BuildID string
}

// NewBuilderOptions creates a build context with a fresh build ID.
func NewBuilderOptions(cwd, out string, reporter Reporter, logger *slog.Logger) *BuilderOptions {
	if logger == nil {
		logger = slog.Default()
	}
	if reporter == nil {
		reporter = NewSlogReporter(logger)
	}
	return &BuilderOptions{
		Cwd:      cwd,
		Out:      out,
		Options:  map[string]any{},
		Reporter: reporter,
		Logger:   logger,
		BuildID:  uuid.NewString(),
	}
}

// WithOptions returns a copy of the context carrying the given plugin options.
// The map is copied so a plugin cannot leak configuration into its neighbours.
func (o *BuilderOptions) WithOptions(options map[string]any) *BuilderOptions {
	cp := *o
	cp.Options = make(map[string]any, len(options))
	maps.Copy(cp.Options, options)
	return &cp
}

// Option returns the raw option value and whether the key was present at all.
// A present key with a nil value is how configuration files express "null".
func (o *BuilderOptions) Option(key string) (any, bool) {
	if o.Options == nil {
		return nil, false
	}
	v, ok := o.Options[key]
	return v, ok
}

// Log returns the context logger, falling back to the default logger.
func (o *BuilderOptions) Log() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// Report returns the context reporter, falling back to a logger-backed one.
func (o *BuilderOptions) Report() Reporter {
	if o.Reporter == nil {
		return NewSlogReporter(o.Log())
	}
	return o.Reporter
}
