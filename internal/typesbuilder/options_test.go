package typesbuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/typesbuilder/internal/foundation/errors"
)

func TestParseEntrypoint(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want Entrypoint
	}{
		{name: "unset", raw: map[string]any{}, want: Entrypoint{}},
		{name: "nil map", raw: nil, want: Entrypoint{}},
		{name: "null disables", raw: map[string]any{"entrypoint": nil}, want: Entrypoint{Disabled: true}},
		{name: "false is unset", raw: map[string]any{"entrypoint": false}, want: Entrypoint{}},
		{name: "empty string is unset", raw: map[string]any{"entrypoint": ""}, want: Entrypoint{}},
		{name: "single string", raw: map[string]any{"entrypoint": "typings"}, want: Entrypoint{Keys: []string{"typings"}}},
		{name: "string list", raw: map[string]any{"entrypoint": []string{"types", "typings"}}, want: Entrypoint{Keys: []string{"types", "typings"}}},
		{name: "decoded list", raw: map[string]any{"entrypoint": []any{"types", "typings"}}, want: Entrypoint{Keys: []string{"types", "typings"}}},
		{name: "empty list", raw: map[string]any{"entrypoint": []any{}}, want: Entrypoint{Keys: []string{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEntrypoint(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseEntrypointRejectsOtherTypes(t *testing.T) {
	for _, v := range []any{true, 42, []any{"types", 1}, map[string]any{"a": "b"}} {
		_, err := ParseEntrypoint(map[string]any{"entrypoint": v})
		require.Error(t, err, "value %#v", v)
		assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
	}
}

func TestEntrypointResolve(t *testing.T) {
	assert.Equal(t, []string{"types"}, Entrypoint{}.Resolve(DefaultEntrypoint))
	assert.Equal(t, []string{"a", "b"}, Entrypoint{Keys: []string{"a", "b"}}.Resolve(DefaultEntrypoint))
	assert.Empty(t, Entrypoint{Keys: []string{}}.Resolve(DefaultEntrypoint))
	assert.Nil(t, Entrypoint{Disabled: true, Keys: []string{"a"}}.Resolve(DefaultEntrypoint))
}

func TestParseOptions(t *testing.T) {
	opts, err := ParseOptions(map[string]any{
		"tsconfig":   "tsconfig.build.json",
		"entrypoint": []any{"types", "typings"},
		"args":       []any{"--skipLibCheck", "--strict"},
		"other":      "ignored",
	})
	require.NoError(t, err)
	assert.Equal(t, "tsconfig.build.json", opts.TSConfig)
	assert.Equal(t, "tsconfig.build.json", opts.TSConfigOrDefault())
	assert.Equal(t, []string{"types", "typings"}, opts.Entrypoint.Keys)
	assert.Equal(t, []string{"--skipLibCheck", "--strict"}, opts.Args)

	opts, err = ParseOptions(map[string]any{"tsconfig": nil, "args": nil})
	require.NoError(t, err)
	assert.Empty(t, opts.TSConfig)
	assert.Equal(t, DefaultTSConfig, opts.TSConfigOrDefault())
	assert.Nil(t, opts.Args)
}

func TestParseOptionsRejectsInvalidTypes(t *testing.T) {
	tests := map[string]map[string]any{
		"tsconfig number": {"tsconfig": 3},
		"args string":     {"args": "--strict"},
		"args mixed":      {"args": []any{"--strict", false}},
		"entrypoint int":  {"entrypoint": 1},
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseOptions(raw)
			require.Error(t, err)
			ce, ok := ferrors.AsClassified(err)
			require.True(t, ok)
			assert.Equal(t, ferrors.CategoryConfig, ce.Category())
			assert.True(t, ce.IsFatal())
		})
	}
}
