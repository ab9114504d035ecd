package errors

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error", err: nil, expected: 0},
		{name: "validation", err: ValidationError("bad flag").Build(), expected: 2},
		{name: "config", err: ConfigError("missing tsconfig").Build(), expected: 7},
		{name: "compiler", err: CompilerError("tsc failed").Build(), expected: 11},
		{name: "build", err: BuildError("no inference").Build(), expected: 11},
		{name: "filesystem", err: FileSystemError("copy failed").Build(), expected: 11},
		{name: "internal", err: InternalError("boom").Build(), expected: 10},
		{name: "unclassified", err: errors.New("unknown"), expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := adapter.ExitCodeFor(tt.err); got != tt.expected {
				t.Errorf("ExitCodeFor() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	quiet := NewCLIErrorAdapter(false, slog.Default())
	verbose := NewCLIErrorAdapter(true, slog.Default())

	err := BuildError("Failed to build: dist-types/").
		WithContext("hint", "author an index.d.ts yourself").
		Build()

	got := quiet.FormatError(err)
	if !strings.HasPrefix(got, "Error: Failed to build: dist-types/") {
		t.Errorf("unexpected quiet format: %q", got)
	}
	if !strings.Contains(got, "author an index.d.ts yourself") {
		t.Errorf("expected hint in quiet format: %q", got)
	}

	if got := verbose.FormatError(err); !strings.Contains(got, "[build:fatal]") {
		t.Errorf("verbose format should include classification: %q", got)
	}

	if got := quiet.FormatError(InternalError("boom").Build()); !strings.Contains(got, "use -v") {
		t.Errorf("internal errors should be masked: %q", got)
	}
	if quiet.FormatError(nil) != "" {
		t.Error("nil error should format as empty string")
	}
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var stderr, logs bytes.Buffer
	adapter := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&logs, nil)))
	adapter.stderr = &stderr
	code := -1
	adapter.exit = func(c int) { code = c }

	adapter.HandleError(ConfigError(`"/tmp/x/tsconfig.json" file does not exist.`).Build())

	if code != 7 {
		t.Errorf("expected exit code 7, got %d", code)
	}
	if !strings.Contains(stderr.String(), "file does not exist") {
		t.Errorf("expected message on stderr, got %q", stderr.String())
	}
	if !strings.Contains(logs.String(), "category=config") {
		t.Errorf("expected fatal error to be logged with category, got %q", logs.String())
	}

	code = -1
	adapter.HandleError(nil)
	if code != -1 {
		t.Error("nil error must not exit")
	}
}
