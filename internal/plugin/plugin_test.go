package plugin

import (
	"context"
	"errors"
	"testing"

	"git.home.luguber.info/inful/typesbuilder/internal/manifest"
)

// TestPluginMetadataValidation tests plugin metadata validation.
func TestPluginMetadataValidation(t *testing.T) {
	tests := []struct {
		name      string
		metadata  PluginMetadata
		expectErr bool
	}{
		{
			name: "valid metadata",
			metadata: PluginMetadata{
				Name:        "types",
				Version:     "v1.0.0",
				Type:        PluginTypeBuilder,
				Description: "Test plugin",
			},
			expectErr: false,
		},
		{
			name:      "missing name",
			metadata:  PluginMetadata{Version: "v1.0.0", Type: PluginTypeBuilder},
			expectErr: true,
		},
		{
			name:      "missing version",
			metadata:  PluginMetadata{Name: "types", Type: PluginTypeBuilder},
			expectErr: true,
		},
		{
			name:      "invalid type",
			metadata:  PluginMetadata{Name: "types", Version: "v1.0.0", Type: PluginType("theme")},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.metadata.Validate()
			if tt.expectErr && err == nil {
				t.Error("expected error but got nil")
			}
			if !tt.expectErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestPluginMetadataString(t *testing.T) {
	metadata := PluginMetadata{Name: "types", Version: "v1.0.0", Type: PluginTypeBuilder}
	if got := metadata.String(); got != "types@v1.0.0 (builder)" {
		t.Errorf("String() = %q", got)
	}
}

// TestPluginError tests plugin error creation and unwrapping.
func TestPluginError(t *testing.T) {
	baseErr := context.Canceled
	pluginErr := NewPluginError("types", OperationBuild, baseErr)

	expected := "plugin types failed during build: context canceled"
	if pluginErr.Error() != expected {
		t.Errorf("Error() = %q, expected %q", pluginErr.Error(), expected)
	}
	if !errors.Is(pluginErr, context.Canceled) {
		t.Error("expected PluginError to unwrap to its cause")
	}
}

func TestBuilderOptions_WithOptions(t *testing.T) {
	base := NewBuilderOptions("/src", "/out", nil, nil)
	if base.BuildID == "" {
		t.Fatal("expected a build id")
	}

	src := map[string]any{"tsconfig": "tsconfig.build.json", "entrypoint": nil}
	opts := base.WithOptions(src)
	src["tsconfig"] = "mutated"

	if v, _ := opts.Option("tsconfig"); v != "tsconfig.build.json" {
		t.Errorf("options must be copied, got %v", v)
	}
	if v, ok := opts.Option("entrypoint"); !ok || v != nil {
		t.Errorf("explicit nil must be observable, got %v %v", v, ok)
	}
	if _, ok := opts.Option("args"); ok {
		t.Error("absent key must report not present")
	}
	if opts.BuildID != base.BuildID || opts.Cwd != "/src" || opts.Out != "/out" {
		t.Error("WithOptions must keep the rest of the context")
	}
	if len(base.Options) != 0 {
		t.Error("base options must stay untouched")
	}
}

func TestBuilderOptions_Fallbacks(t *testing.T) {
	opts := &BuilderOptions{}
	if opts.Log() == nil {
		t.Error("Log() must never return nil")
	}
	if opts.Report() == nil {
		t.Error("Report() must never return nil")
	}
	if _, ok := opts.Option("x"); ok {
		t.Error("nil Options must report not present")
	}
}

func TestRecordingReporter(t *testing.T) {
	inner := NewRecordingReporter(nil)
	r := NewRecordingReporter(inner)

	r.Info("no type definitions found, auto-generating...")
	r.Created("/out/dist-types/index.d.ts", ArtifactTypes)

	if got := r.Infos(); len(got) != 1 || got[0] != "no type definitions found, auto-generating..." {
		t.Errorf("unexpected infos: %v", got)
	}
	want := CreatedArtifact{Path: "/out/dist-types/index.d.ts", Kind: ArtifactTypes}
	if got := inner.Artifacts(); len(got) != 1 || got[0] != want {
		t.Errorf("expected forwarding to inner reporter, got %v", got)
	}
}

// fakeBuilder is a test implementation of every builder capability.
type fakeBuilder struct {
	name        string
	calls       *[]string
	beforeErr   error
	buildErr    error
	manifestKey string
}

func (f *fakeBuilder) Metadata() PluginMetadata {
	return PluginMetadata{Name: f.name, Version: "v0.0.1", Type: PluginTypeBuilder}
}

func (f *fakeBuilder) Manifest(m manifest.Manifest, _ *BuilderOptions) {
	*f.calls = append(*f.calls, f.name+":manifest")
	if f.manifestKey != "" {
		m.SetDefault(f.manifestKey, f.name)
	}
}

func (f *fakeBuilder) BeforeBuild(_ context.Context, _ *BuilderOptions) error {
	*f.calls = append(*f.calls, f.name+":beforeBuild")
	return f.beforeErr
}

func (f *fakeBuilder) Build(_ context.Context, opts *BuilderOptions) error {
	*f.calls = append(*f.calls, f.name+":build")
	if f.buildErr == nil {
		opts.Report().Created(opts.Out+"/"+f.name, ArtifactNode)
	}
	return f.buildErr
}

// buildOnly implements only the mandatory Builder interface.
type buildOnly struct{ built bool }

func (b *buildOnly) Metadata() PluginMetadata {
	return PluginMetadata{Name: "build-only", Version: "v0.0.1", Type: PluginTypeBuilder}
}

func (b *buildOnly) Build(context.Context, *BuilderOptions) error {
	b.built = true
	return nil
}
