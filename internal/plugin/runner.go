package plugin

import (
	"context"
	"errors"
	"time"

	"git.home.luguber.info/inful/typesbuilder/internal/logfields"
	"git.home.luguber.info/inful/typesbuilder/internal/manifest"
	"git.home.luguber.info/inful/typesbuilder/internal/metrics"
)

// PluginOptions maps plugin names to their raw option maps.
type PluginOptions map[string]map[string]any

// For returns the options configured for the named plugin (never nil).
func (p PluginOptions) For(name string) map[string]any {
	if opts, ok := p[name]; ok && opts != nil {
		return opts
	}
	return map[string]any{}
}

// Runner is a minimal host: for one package it calls Manifest on every
// builder, then BeforeBuild on every builder, then Build on every builder,
// stopping at the first failure.
type Runner struct {
	builders []Builder
	recorder metrics.Recorder
}

// NewRunner creates a runner for the given builders, in order.
func NewRunner(builders ...Builder) *Runner {
	return &Runner{
		builders: builders,
		recorder: metrics.NoopRecorder{},
	}
}

// WithRecorder injects a metrics recorder.
func (r *Runner) WithRecorder(rec metrics.Recorder) *Runner {
	if rec != nil {
		r.recorder = rec
	}
	return r
}

// Builders returns the builders in execution order.
func (r *Runner) Builders() []Builder {
	return append([]Builder(nil), r.builders...)
}

// Manifest lets every contributing builder add fields to m.
func (r *Runner) Manifest(m manifest.Manifest, base *BuilderOptions, options PluginOptions) {
	for _, b := range r.builders {
		mc, ok := b.(ManifestContributor)
		if !ok {
			continue
		}
		name := b.Metadata().Name
		opts := base.WithOptions(options.For(name))
		start := time.Now()
		mc.Manifest(m, opts)
		r.recorder.ObserveOperationDuration(name, string(OperationManifest), time.Since(start))
		r.recorder.IncOperationResult(name, string(OperationManifest), metrics.ResultSuccess)
	}
}

// BeforeBuild runs every builder's preflight check.
func (r *Runner) BeforeBuild(ctx context.Context, base *BuilderOptions, options PluginOptions) error {
	for _, b := range r.builders {
		pc, ok := b.(PreflightChecker)
		if !ok {
			continue
		}
		if err := r.invoke(ctx, b, OperationBeforeBuild, base.WithOptions(options.For(b.Metadata().Name)), pc.BeforeBuild); err != nil {
			return err
		}
	}
	return nil
}

// Build runs every builder's Build.
func (r *Runner) Build(ctx context.Context, base *BuilderOptions, options PluginOptions) error {
	for _, b := range r.builders {
		if err := r.invoke(ctx, b, OperationBuild, base.WithOptions(options.For(b.Metadata().Name)), b.Build); err != nil {
			return err
		}
	}
	return nil
}

// Run executes all three phases for one package.
func (r *Runner) Run(ctx context.Context, m manifest.Manifest, base *BuilderOptions, options PluginOptions) error {
	r.Manifest(m, base, options)
	if err := r.BeforeBuild(ctx, base, options); err != nil {
		return err
	}
	return r.Build(ctx, base, options)
}

func (r *Runner) invoke(ctx context.Context, b Builder, op Operation, opts *BuilderOptions, fn func(context.Context, *BuilderOptions) error) error {
	name := b.Metadata().Name
	logger := opts.Log().With(logfields.Plugin(name), logfields.Operation(string(op)), logfields.BuildID(opts.BuildID))
	opts.Logger = logger

	start := time.Now()
	logger.Debug("Plugin operation starting")
	err := fn(ctx, opts)
	elapsed := time.Since(start)

	r.recorder.ObserveOperationDuration(name, string(op), elapsed)
	r.recorder.IncOperationResult(name, string(op), metrics.ResultFor(err, errors.Is(err, context.Canceled)))

	if err != nil {
		logger.Debug("Plugin operation failed", logfields.DurationMS(float64(elapsed.Milliseconds())), logfields.Error(err))
		return NewPluginError(name, op, err)
	}
	logger.Debug("Plugin operation finished", logfields.DurationMS(float64(elapsed.Milliseconds())))
	return nil
}
