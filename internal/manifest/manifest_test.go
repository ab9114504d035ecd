package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManifest_SetDefault(t *testing.T) {
	m := Manifest{"types": "custom.d.ts", "empty": "", "nil": nil}

	assert.False(t, m.SetDefault("types", "dist-types/index.d.ts"))
	assert.Equal(t, "custom.d.ts", m["types"])

	assert.True(t, m.SetDefault("empty", "dist-types/index.d.ts"))
	assert.True(t, m.SetDefault("nil", "dist-types/index.d.ts"))
	assert.True(t, m.SetDefault("typings", "dist-types/index.d.ts"))
	assert.Equal(t, "dist-types/index.d.ts", m.String("typings"))
}

func TestManifest_IsSet(t *testing.T) {
	m := Manifest{"a": "x", "b": "", "c": false, "d": nil}
	assert.True(t, m.IsSet("a"))
	assert.False(t, m.IsSet("b"))
	assert.True(t, m.IsSet("c"), "non-string values count as set")
	assert.False(t, m.IsSet("d"))
	assert.False(t, m.IsSet("missing"))
}

func TestManifest_Diff(t *testing.T) {
	base := Manifest{"name": "pkg", "types": "a.d.ts"}
	m := base.Clone()
	m["types"] = "b.d.ts"
	m["typings"] = "b.d.ts"

	assert.Equal(t, []string{"types", "typings"}, m.Diff(base))
	assert.Equal(t, "a.d.ts", base["types"], "clone must not alias")
}

func TestLoadSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", FileName)

	m := Manifest{"name": "pkg", "version": "1.0.0"}
	m.SetDefault("types", "dist-types/index.d.ts")
	require.NoError(t, m.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "dist-types/index.d.ts", loaded.String("types"))
	assert.Equal(t, []string{"name", "types", "version"}, loaded.Keys())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"types": "dist-types/index.d.ts"`)
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	m, err := Load(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("{not json"))
	require.Error(t, err)
}
