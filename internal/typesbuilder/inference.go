package typesbuilder

import (
	"context"
	"errors"
	"fmt"

	"git.home.luguber.info/inful/typesbuilder/internal/typesbuilder/dts"
	"git.home.luguber.info/inful/typesbuilder/internal/typesbuilder/jsmodule"
)

var (
	// ErrCompilerFailed marks a non-zero exit of the declaration compiler.
	ErrCompilerFailed = errors.New("declaration compiler failed")

	// ErrInferenceUnavailable marks a compiler without declaration inference.
	ErrInferenceUnavailable = errors.New("declaration inference unavailable")

	// ErrArtifactLoad marks a compiled entry point that could not be evaluated.
	ErrArtifactLoad = errors.New("compiled artifact could not be loaded")
)

// inferenceHint is shown to users when inference is unavailable.
const inferenceHint = `Attempted to generate type definitions, but "typescript@^3.5.0" no longer supports this. ` +
	`Please either downgrade typescript, or author an "index.d.ts" type declaration file yourself.`

// TypeGenerator synthesizes declaration text for a loaded module.
type TypeGenerator interface {
	GenerateTypesForModule(name string, shape *jsmodule.Shape) (string, error)
}

// InferenceResolver returns the inference capability available from cwd.
// A missing capability is reported as an *UnavailableError.
type InferenceResolver interface {
	Resolve(cwd string) (TypeGenerator, error)
}

// ArtifactLoader evaluates a compiled module and describes its exports.
type ArtifactLoader interface {
	Load(ctx context.Context, path string) (*jsmodule.Shape, error)
}

// UnavailableError explains why inference cannot run.
type UnavailableError struct {
	// Version is the detected compiler version, empty when none was found.
	Version string
	Err     error
}

func (e *UnavailableError) Error() string {
	switch {
	case e.Version != "":
		return fmt.Sprintf("%v: typescript@%s. %s", ErrInferenceUnavailable, e.Version, inferenceHint)
	case e.Err != nil:
		return fmt.Sprintf("%v: %v. %s", ErrInferenceUnavailable, e.Err, inferenceHint)
	default:
		return ErrInferenceUnavailable.Error() + ". " + inferenceHint
	}
}

func (e *UnavailableError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInferenceUnavailable}
	}
	return []error{ErrInferenceUnavailable, e.Err}
}

// CompilerInference offers inference only when the typescript package
// reachable from cwd predates its removal.
type CompilerInference struct {
	// Generator renders declarations (dts.Generator when nil).
	Generator TypeGenerator
}

func (c CompilerInference) Resolve(cwd string) (TypeGenerator, error) {
	version, err := CompilerVersion(cwd)
	if err != nil {
		return nil, &UnavailableError{Err: err}
	}
	if !SupportsInference(version) {
		return nil, &UnavailableError{Version: version}
	}
	if c.Generator == nil {
		return dts.Generator{}, nil
	}
	return c.Generator, nil
}
