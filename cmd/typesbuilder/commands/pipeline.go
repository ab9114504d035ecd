package commands

import (
	"context"
	"log/slog"
	"path/filepath"

	"git.home.luguber.info/inful/typesbuilder/internal/config"
	ferrors "git.home.luguber.info/inful/typesbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/typesbuilder/internal/logfields"
	"git.home.luguber.info/inful/typesbuilder/internal/manifest"
	"git.home.luguber.info/inful/typesbuilder/internal/metrics"
	"git.home.luguber.info/inful/typesbuilder/internal/plugin"
	"git.home.luguber.info/inful/typesbuilder/internal/typesbuilder"
	"git.home.luguber.info/inful/typesbuilder/internal/typesbuilder/jsmodule"
)

// pipeline drives the registered builders for one package.
type pipeline struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *plugin.Registry
	recorder *metrics.PrometheusRecorder
}

func newPipeline(cfg *config.Config, logger *slog.Logger) (*pipeline, error) {
	rec := metrics.NewPrometheusRecorder(nil)
	registry := plugin.NewRegistry()
	builder := typesbuilder.New(typesbuilder.Config{
		DefaultEntrypoint: typesbuilder.DefaultEntrypoint,
		Loader:            &jsmodule.Loader{MaxDepth: jsmodule.DefaultMaxDepth, Logger: logger},
		Runner:            typesbuilder.ExecRunner{Logger: logger},
		Recorder:          rec,
	})
	if err := registry.Register(builder); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryInternal, "register builder").Build()
	}
	return &pipeline{cfg: cfg, logger: logger, registry: registry, recorder: rec}, nil
}

func (p *pipeline) runner() *plugin.Runner {
	return plugin.NewRunner(p.registry.List()...).WithRecorder(p.recorder)
}

func (p *pipeline) options() *plugin.BuilderOptions {
	return plugin.NewBuilderOptions(p.cfg.Cwd, p.cfg.OutDir(), plugin.NewSlogReporter(p.logger), p.logger)
}

func (p *pipeline) loadManifest() (manifest.Manifest, error) {
	m, err := manifest.Load(p.cfg.ManifestPath())
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "load package manifest").
			Fatal().
			WithContext("path", p.cfg.ManifestPath()).
			Build()
	}
	return m, nil
}

// build runs the full pipeline and writes <out>/package.json. Metrics are
// exported even when the run fails.
func (p *pipeline) build(ctx context.Context) (manifest.Manifest, error) {
	defer p.writeMetrics()

	m, err := p.loadManifest()
	if err != nil {
		return nil, err
	}
	base := p.options()
	p.logger.Info("Building package", logfields.Cwd(p.cfg.Cwd), logfields.Out(p.cfg.OutDir()), logfields.BuildID(base.BuildID))

	if err := p.runner().Run(ctx, m, base, plugin.PluginOptions(p.cfg.Plugins)); err != nil {
		return nil, err
	}

	target := filepath.Join(p.cfg.OutDir(), manifest.FileName)
	if err := m.Save(target); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "write package manifest").Fatal().Build()
	}
	p.logger.Info("Package built", logfields.Path(target))
	return m, nil
}

// manifest returns the fields the builders would add to the package manifest.
func (p *pipeline) manifest() (manifest.Manifest, error) {
	m, err := p.loadManifest()
	if err != nil {
		return nil, err
	}
	base := m.Clone()
	p.runner().Manifest(m, p.options(), plugin.PluginOptions(p.cfg.Plugins))

	added := manifest.New()
	for _, k := range m.Diff(base) {
		added[k] = m[k]
	}
	return added, nil
}

func (p *pipeline) check(ctx context.Context) error {
	return p.runner().BeforeBuild(ctx, p.options(), plugin.PluginOptions(p.cfg.Plugins))
}

func (p *pipeline) writeMetrics() {
	if p.cfg.MetricsFile == "" {
		return
	}
	if err := p.recorder.WriteTextfile(p.cfg.MetricsFile); err != nil {
		p.logger.Warn("Failed to write metrics textfile", logfields.Path(p.cfg.MetricsFile), logfields.Error(err))
	}
}
