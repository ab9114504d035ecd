package typesbuilder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	ferrors "git.home.luguber.info/inful/typesbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/typesbuilder/internal/logfields"
	"git.home.luguber.info/inful/typesbuilder/internal/plugin"
)

// Strategy names, in evaluation order.
const (
	StrategyRootDeclaration   = "root-declaration"
	StrategySourceDeclaration = "source-declaration"
	StrategyCompiler          = "compiler"
	StrategyInference         = "inference"
)

type outcome int

const (
	notApplicable outcome = iota
	handled
)

// buildRun is the state of one Build invocation.
type buildRun struct {
	opts    *plugin.BuilderOptions
	options Options
	target  string
}

type strategy struct {
	name string
	run  func(ctx context.Context, r *buildRun) (outcome, error)
}

func (b *Builder) strategies() []strategy {
	return []strategy{
		{name: StrategyRootDeclaration, run: declarationCopy("index.d.ts")},
		{name: StrategySourceDeclaration, run: declarationCopy(filepath.Join("src", "index.d.ts"))},
		{name: StrategyCompiler, run: b.compile},
		{name: StrategyInference, run: b.infer},
	}
}

// declarationCopy copies a hand-authored declaration found at rel below cwd.
func declarationCopy(rel string) func(context.Context, *buildRun) (outcome, error) {
	return func(_ context.Context, r *buildRun) (outcome, error) {
		src := filepath.Join(r.opts.Cwd, rel)
		if !fileExists(src) {
			return notApplicable, nil
		}
		if err := copyFile(src, r.target); err != nil {
			return handled, ferrors.WrapError(err, ferrors.CategoryFileSystem, "copy declaration file").
				Fatal().
				WithContext("source", src).
				WithContext("target", r.target).
				Build()
		}
		return handled, nil
	}
}

func (b *Builder) compile(ctx context.Context, r *buildRun) (outcome, error) {
	tsconfig := TSConfigPath(r.opts.Cwd, r.options)
	bin, ok := CompilerBin(r.opts.Cwd)
	if !ok || !fileExists(tsconfig) {
		r.opts.Log().Debug("Compiler strategy not applicable",
			logfields.Compiler(bin), logfields.Path(tsconfig), slog.Bool("compiler_found", ok))
		return notApplicable, nil
	}

	cmd := Command{
		Path:   bin,
		Args:   CompilerArgs(tsconfig, r.opts.Out, r.options.Args),
		Dir:    r.opts.Cwd,
		Logger: r.opts.Log(),
	}
	start := time.Now()
	res, err := b.cfg.Runner.Run(ctx, cmd)
	b.cfg.Recorder.ObserveCompilerDuration(time.Since(start), err == nil)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return handled, ctxErr
		}
		msg := fmt.Sprintf("compiler exited with code %d", res.ExitCode)
		if out := res.Output(); out != "" {
			msg += ": " + out
		}
		return handled, ferrors.WrapError(fmt.Errorf("%w: %w", ErrCompilerFailed, err), ferrors.CategoryCompiler, msg).
			Fatal().
			WithContext("exit_code", res.ExitCode).
			WithContext("tsconfig", tsconfig).
			Build()
	}
	return handled, nil
}

func (b *Builder) infer(ctx context.Context, r *buildRun) (outcome, error) {
	r.opts.Report().Info("no type definitions found, auto-generating...")

	gen, err := b.cfg.Inference.Resolve(r.opts.Cwd)
	if err != nil {
		eb := ferrors.BuildError("Failed to build: " + TypesDir + "/").
			WithCause(err).
			UserAction().
			WithContext("hint", inferenceHint)
		var unavailable *UnavailableError
		if errors.As(err, &unavailable) && unavailable.Version != "" {
			eb = eb.WithContext("compiler_version", unavailable.Version)
		}
		return handled, eb.Build()
	}

	entry := filepath.Join(r.opts.Out, filepath.FromSlash(NodeEntryPath))
	shape, err := b.cfg.Loader.Load(ctx, entry)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return handled, ctxErr
		}
		return handled, ferrors.WrapError(fmt.Errorf("%w: %w", ErrArtifactLoad, err), ferrors.CategoryBuild, "load compiled entry point").
			Fatal().
			WithContext("path", entry).
			Build()
	}

	text, err := gen.GenerateTypesForModule(InferredModuleName, shape)
	if err != nil {
		return handled, ferrors.WrapError(err, ferrors.CategoryBuild, "generate declarations").Fatal().Build()
	}
	if err := writeFile(r.target, []byte(text)); err != nil {
		return handled, ferrors.WrapError(err, ferrors.CategoryFileSystem, "write inferred declarations").
			Fatal().
			WithContext("target", r.target).
			Build()
	}
	return handled, nil
}
