// Package typesbuilder implements the "types" builder plugin. It produces a
// package's aggregated declaration file at dist-types/index.d.ts by copying a
// hand-authored declaration, running the TypeScript compiler, or inferring
// declarations from the compiled CommonJS entry point.
package typesbuilder

import (
	"fmt"

	ferrors "git.home.luguber.info/inful/typesbuilder/internal/foundation/errors"
)

const (
	// DefaultEntrypoint is the manifest key used when no entrypoint is configured.
	DefaultEntrypoint = "types"

	// DefaultTSConfig is the compiler configuration looked up when none is configured.
	DefaultTSConfig = "tsconfig.json"

	// TypesDir is the declaration output directory below the package output.
	TypesDir = "dist-types"

	// TypesPath is the manifest value pointing at the produced declaration file.
	TypesPath = "dist-types/index.d.ts"

	// NodeEntryPath is the compiled CommonJS entry point used for inference.
	NodeEntryPath = "dist-node/index.js"

	// InferredModuleName names the module in inferred declarations.
	InferredModuleName = "AutoGeneratedTypings"
)

// Option keys recognized in the plugin configuration.
const (
	OptionTSConfig   = "tsconfig"
	OptionEntrypoint = "entrypoint"
	OptionArgs       = "args"
)

// Entrypoint is the manifest key configuration.
type Entrypoint struct {
	// Keys lists the configured keys. Nil means not configured.
	Keys []string

	// Disabled is set when the configuration turns manifest entries off.
	Disabled bool
}

// Resolve returns the manifest keys to set, falling back to def.
func (e Entrypoint) Resolve(def string) []string {
	if e.Disabled {
		return nil
	}
	if e.Keys != nil {
		return e.Keys
	}
	return []string{def}
}

// Options is the parsed plugin configuration.
type Options struct {
	// TSConfig is the configured compiler configuration path; empty means unset.
	TSConfig string

	Entrypoint Entrypoint

	// Args are appended verbatim to the compiler command line.
	Args []string
}

// TSConfigOrDefault returns the configured path or DefaultTSConfig.
func (o Options) TSConfigOrDefault() string {
	if o.TSConfig == "" {
		return DefaultTSConfig
	}
	return o.TSConfig
}

// ParseOptions converts raw plugin configuration into Options. Unknown keys
// are ignored so plugins can share a configuration block.
func ParseOptions(raw map[string]any) (Options, error) {
	var opts Options

	if v, ok := raw[OptionTSConfig]; ok && v != nil {
		s, ok := v.(string)
		if !ok {
			return Options{}, invalidOption(OptionTSConfig, "a string", v)
		}
		opts.TSConfig = s
	}

	if v, ok := raw[OptionArgs]; ok && v != nil {
		args, ok := stringList(v)
		if !ok {
			return Options{}, invalidOption(OptionArgs, "a list of strings", v)
		}
		opts.Args = args
	}

	ep, err := ParseEntrypoint(raw)
	if err != nil {
		return Options{}, err
	}
	opts.Entrypoint = ep
	return opts, nil
}

// ParseEntrypoint reads the entrypoint option alone. A present key holding
// nil disables manifest entries; false and the empty string count as unset.
func ParseEntrypoint(raw map[string]any) (Entrypoint, error) {
	v, ok := raw[OptionEntrypoint]
	if !ok {
		return Entrypoint{}, nil
	}
	switch t := v.(type) {
	case nil:
		return Entrypoint{Disabled: true}, nil
	case bool:
		if !t {
			return Entrypoint{}, nil
		}
	case string:
		if t == "" {
			return Entrypoint{}, nil
		}
		return Entrypoint{Keys: []string{t}}, nil
	default:
		if keys, ok := stringList(v); ok {
			return Entrypoint{Keys: keys}, nil
		}
	}
	return Entrypoint{}, invalidOption(OptionEntrypoint, "a string, a list of strings or null", v)
}

func stringList(v any) ([]string, bool) {
	switch t := v.(type) {
	case []string:
		return append([]string{}, t...), true
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

func invalidOption(key, want string, got any) error {
	return ferrors.ConfigError(fmt.Sprintf("option %q must be %s, got %T", key, want, got)).
		WithContext("option", key).
		Build()
}
