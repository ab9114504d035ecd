// Package plugin defines the builder-plugin capability interface and a minimal
// host that drives builders for a single package.
package plugin

import (
	"context"
	"errors"

	"git.home.luguber.info/inful/typesbuilder/internal/manifest"
)

// Builder produces one category of build artifact for a package.
type Builder interface {
	// Metadata returns the plugin's metadata (name, version, artifacts).
	Metadata() PluginMetadata

	// Build produces the plugin's artifacts below opts.Out and reports them
	// through opts.Reporter.
	Build(ctx context.Context, opts *BuilderOptions) error
}

// ManifestContributor is implemented by builders that add fields to the
// package manifest before anything is built.
type ManifestContributor interface {
	Builder

	// Manifest mutates m in place. It must not fail and must not overwrite
	// values set by earlier plugins.
	Manifest(m manifest.Manifest, opts *BuilderOptions)
}

// PreflightChecker is implemented by builders that validate preconditions
// before the pipeline starts building.
type PreflightChecker interface {
	Builder

	// BeforeBuild fails fast on invalid configuration. It must not mutate the
	// filesystem.
	BeforeBuild(ctx context.Context, opts *BuilderOptions) error
}

// PluginMetadata describes a plugin's identity and what it produces.
type PluginMetadata struct {
	// Name is the unique plugin identifier (e.g., "types").
	Name string

	// Version is the semantic version (e.g., "v1.0.0").
	Version string

	// Type identifies the plugin category.
	Type PluginType

	// Description provides a human-readable summary of the plugin's purpose.
	Description string

	// Artifacts lists the artifact kinds the plugin reports as created.
	Artifacts []ArtifactKind
}

// String returns a human-readable representation of the plugin metadata.
func (m PluginMetadata) String() string {
	return m.Name + "@" + m.Version + " (" + m.Type.String() + ")"
}

// Validate checks if the plugin metadata is valid.
func (m PluginMetadata) Validate() error {
	if m.Name == "" {
		return errors.New("plugin name is required")
	}
	if m.Version == "" {
		return errors.New("plugin version is required")
	}
	if !m.Type.IsValid() {
		return errors.New("invalid plugin type: " + m.Type.String())
	}
	return nil
}
