package typesbuilder

import (
	"context"
	"path/filepath"

	ferrors "git.home.luguber.info/inful/typesbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/typesbuilder/internal/logfields"
	"git.home.luguber.info/inful/typesbuilder/internal/manifest"
	"git.home.luguber.info/inful/typesbuilder/internal/metrics"
	"git.home.luguber.info/inful/typesbuilder/internal/plugin"
	"git.home.luguber.info/inful/typesbuilder/internal/typesbuilder/jsmodule"
	"git.home.luguber.info/inful/typesbuilder/internal/version"
)

// PluginName is the name the builder registers under.
const PluginName = "types"

// Config wires the builder's collaborators. Zero fields get defaults.
type Config struct {
	// DefaultEntrypoint is the manifest key used when none is configured.
	DefaultEntrypoint string

	Loader    ArtifactLoader
	Inference InferenceResolver
	Runner    CommandRunner
	Recorder  metrics.Recorder
}

// Builder is the types plugin.
type Builder struct {
	cfg Config
}

var (
	_ plugin.ManifestContributor = (*Builder)(nil)
	_ plugin.PreflightChecker    = (*Builder)(nil)
)

// New creates a builder.
func New(cfg Config) *Builder {
	if cfg.DefaultEntrypoint == "" {
		cfg.DefaultEntrypoint = DefaultEntrypoint
	}
	if cfg.Loader == nil {
		cfg.Loader = jsmodule.NewLoader()
	}
	if cfg.Inference == nil {
		cfg.Inference = CompilerInference{}
	}
	if cfg.Runner == nil {
		cfg.Runner = ExecRunner{}
	}
	if cfg.Recorder == nil {
		cfg.Recorder = metrics.NoopRecorder{}
	}
	return &Builder{cfg: cfg}
}

func (b *Builder) Metadata() plugin.PluginMetadata {
	return plugin.PluginMetadata{
		Name:        PluginName,
		Version:     version.Version,
		Type:        plugin.PluginTypeBuilder,
		Description: "Produces dist-types/index.d.ts from hand-written declarations, tsc, or inference",
		Artifacts:   []plugin.ArtifactKind{plugin.ArtifactTypes},
	}
}

// Manifest points every resolved entrypoint key at the declaration file,
// leaving keys set by earlier plugins alone.
func (b *Builder) Manifest(m manifest.Manifest, opts *plugin.BuilderOptions) {
	ep, err := ParseEntrypoint(opts.Options)
	if err != nil {
		opts.Log().Warn("Ignoring invalid entrypoint option", logfields.Error(err))
		ep = Entrypoint{}
	}
	for _, key := range ep.Resolve(b.cfg.DefaultEntrypoint) {
		m.SetDefault(key, TypesPath)
	}
}

// BeforeBuild checks that an explicitly configured tsconfig exists.
func (b *Builder) BeforeBuild(_ context.Context, opts *plugin.BuilderOptions) error {
	options, err := ParseOptions(opts.Options)
	if err != nil {
		return err
	}
	if options.TSConfig == "" {
		return nil
	}
	path := TSConfigPath(opts.Cwd, options)
	if !fileExists(path) {
		return ferrors.ConfigError(`"` + path + `" file does not exist.`).
			WithContext("tsconfig", path).
			Build()
	}
	return nil
}

// Build writes <out>/dist-types/index.d.ts using the first applicable strategy.
func (b *Builder) Build(ctx context.Context, opts *plugin.BuilderOptions) error {
	options, err := ParseOptions(opts.Options)
	if err != nil {
		return err
	}
	run := &buildRun{
		opts:    opts,
		options: options,
		target:  filepath.Join(opts.Out, TypesDir, "index.d.ts"),
	}

	done := false
	for _, s := range b.strategies() {
		if err := ctx.Err(); err != nil {
			return err
		}
		res, err := s.run(ctx, run)
		if err != nil {
			return err
		}
		if res == handled {
			opts.Log().Info("Declarations produced", logfields.Strategy(s.name), logfields.Path(run.target))
			b.cfg.Recorder.IncStrategy(s.name)
			done = true
			break
		}
	}
	if !done {
		return ferrors.InternalError("no declaration strategy applied").Build()
	}

	opts.Report().Created(run.target, plugin.ArtifactTypes)
	return nil
}
