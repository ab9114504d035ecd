package typesbuilder

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/typesbuilder/internal/plugin"
	"git.home.luguber.info/inful/typesbuilder/internal/typesbuilder/jsmodule"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixture struct {
	cwd      string
	out      string
	reporter *plugin.RecordingReporter
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	f := &fixture{
		cwd:      filepath.Join(root, "pkg"),
		out:      filepath.Join(root, "pkg", "out"),
		reporter: plugin.NewRecordingReporter(nil),
	}
	require.NoError(t, os.MkdirAll(f.cwd, 0o755))
	return f
}

func (f *fixture) options(raw map[string]any) *plugin.BuilderOptions {
	opts := plugin.NewBuilderOptions(f.cwd, f.out, f.reporter, discardLogger())
	if raw == nil {
		return opts
	}
	return opts.WithOptions(raw)
}

func (f *fixture) target() string {
	return filepath.Join(f.out, "dist-types", "index.d.ts")
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

type fakeRunner struct {
	mu     sync.Mutex
	calls  []Command
	result Result
	err    error
}

func (r *fakeRunner) Run(_ context.Context, cmd Command) (Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, cmd)
	return r.result, r.err
}

func (r *fakeRunner) Calls() []Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Command(nil), r.calls...)
}

type stubLoader struct {
	shape *jsmodule.Shape
	err   error
	paths []string
}

func (l *stubLoader) Load(_ context.Context, path string) (*jsmodule.Shape, error) {
	l.paths = append(l.paths, path)
	return l.shape, l.err
}

type stubInference struct {
	gen TypeGenerator
	err error
}

func (s stubInference) Resolve(string) (TypeGenerator, error) {
	return s.gen, s.err
}
