package plugin

import "fmt"

// PluginType identifies the category of plugin.
type PluginType string

const (
	// PluginTypeBuilder produces build artifacts from package sources.
	PluginTypeBuilder PluginType = "builder"

	// PluginTypeChecker only validates a package and produces nothing.
	PluginTypeChecker PluginType = "checker"
)

// IsValid returns true if the plugin type is recognized.
func (t PluginType) IsValid() bool {
	switch t {
	case PluginTypeBuilder, PluginTypeChecker:
		return true
	default:
		return false
	}
}

// String returns the string representation of the plugin type.
func (t PluginType) String() string {
	return string(t)
}

// ArtifactKind labels an artifact reported through Reporter.Created.
type ArtifactKind string

const (
	ArtifactTypes ArtifactKind = "types"
	ArtifactNode  ArtifactKind = "node"
	ArtifactWeb   ArtifactKind = "web"
)

// String returns the string representation of the artifact kind.
func (k ArtifactKind) String() string {
	return string(k)
}

// Operation names one of the host's entry points into a plugin.
type Operation string

const (
	OperationManifest    Operation = "manifest"
	OperationBeforeBuild Operation = "beforeBuild"
	OperationBuild       Operation = "build"
)

// PluginError represents an error that occurred within a plugin.
type PluginError struct {
	// PluginName identifies which plugin failed.
	PluginName string

	// Operation describes what the plugin was doing when it failed.
	Operation Operation

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *PluginError) Error() string {
	return fmt.Sprintf("plugin %s failed during %s: %v", e.PluginName, e.Operation, e.Err)
}

// Unwrap returns the underlying error for error inspection.
func (e *PluginError) Unwrap() error {
	return e.Err
}

// NewPluginError creates a new plugin error.
func NewPluginError(pluginName string, operation Operation, err error) *PluginError {
	return &PluginError{
		PluginName: pluginName,
		Operation:  operation,
		Err:        err,
	}
}
