package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "typesbuilder.yaml").
			Build()

		if err.Category() != CategoryConfig {
			t.Errorf("expected category %s, got %s", CategoryConfig, err.Category())
		}
		if err.Severity() != SeverityFatal {
			t.Errorf("expected severity %s, got %s", SeverityFatal, err.Severity())
		}
		if err.Message() != "invalid configuration" {
			t.Errorf("expected message 'invalid configuration', got %s", err.Message())
		}

		file, exists := err.Context().GetString("file")
		if !exists || file != "typesbuilder.yaml" {
			t.Errorf("expected context file=typesbuilder.yaml, got %v", file)
		}
	})

	t.Run("Error detection", func(t *testing.T) {
		err := ConfigError("test error").Build()

		if !IsClassified(err) {
			t.Error("expected error to be classified")
		}
		if !HasCategory(err, CategoryConfig) {
			t.Error("expected error to have config category")
		}
		if err.NeedsUserAction() {
			t.Error("expected plain config error to not require user action")
		}
		if !ConfigError("missing").UserAction().Build().NeedsUserAction() {
			t.Error("expected UserAction to mark the error")
		}
		if !err.IsFatal() {
			t.Error("expected config error to be fatal")
		}
	})

	t.Run("Detection through wrapping", func(t *testing.T) {
		inner := CompilerError("tsc failed").Build()
		wrapped := fmt.Errorf("plugin types: %w", inner)

		if GetCategory(wrapped) != CategoryCompiler {
			t.Errorf("expected compiler category, got %s", GetCategory(wrapped))
		}
		if GetCategory(errors.New("plain")) != CategoryInternal {
			t.Error("expected unclassified errors to map to internal")
		}
	})
}

func TestErrorBuilder(t *testing.T) {
	sentinel := errors.New("exit status 2")
	err := WrapError(sentinel, CategoryCompiler, "declaration emit failed").
		Warning().
		WithContext("exit_code", 2).
		Build()

	if err.Severity() != SeverityWarning {
		t.Errorf("expected severity %s, got %s", SeverityWarning, err.Severity())
	}
	if !errors.Is(err, sentinel) {
		t.Error("expected error to wrap cause")
	}
	if err.Error() != "[compiler:warning] declaration emit failed: exit status 2" {
		t.Errorf("unexpected Error() output: %q", err.Error())
	}
	if code, _ := err.Context().Get("exit_code"); code != 2 {
		t.Errorf("expected exit_code context 2, got %v", code)
	}
}

func TestClassifiedErrorIs(t *testing.T) {
	a := BuildError("same").Build()
	b := BuildError("same").WithContext("x", 1).Build()
	c := BuildError("other").Build()

	if !errors.Is(a, b) {
		t.Error("expected errors with equal category and message to match")
	}
	if errors.Is(a, c) {
		t.Error("expected errors with different messages not to match")
	}
}

func TestErrorContextMerge(t *testing.T) {
	base := ErrorContext{"a": 1, "b": 2}
	merged := base.Merge(ErrorContext{"b": 3, "c": 4})

	if merged["a"] != 1 || merged["b"] != 3 || merged["c"] != 4 {
		t.Errorf("unexpected merge result: %v", merged)
	}
	if base["b"] != 2 {
		t.Error("merge must not mutate the receiver")
	}

	var empty ErrorContext
	if got := empty.Merge(base); got["a"] != 1 {
		t.Errorf("merge into nil context should return other, got %v", got)
	}
}
