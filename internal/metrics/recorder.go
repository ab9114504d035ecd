package metrics

import "time"

// ResultLabel enumerates operation result categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultFailed   ResultLabel = "failed"
	ResultCanceled ResultLabel = "canceled"
)

// Recorder defines observability hooks for plugin operations.
type Recorder interface {
	// ObserveOperationDuration records how long a plugin entry point ran.
	ObserveOperationDuration(plugin, operation string, d time.Duration)
	// IncOperationResult counts entry point outcomes.
	IncOperationResult(plugin, operation string, result ResultLabel)
	// IncStrategy counts which declaration strategy produced the artifact.
	IncStrategy(strategy string)
	// ObserveCompilerDuration records the external compiler's wall time.
	ObserveCompilerDuration(d time.Duration, success bool)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveOperationDuration(string, string, time.Duration) {}
func (NoopRecorder) IncOperationResult(string, string, ResultLabel)         {}
func (NoopRecorder) IncStrategy(string)                                     {}
func (NoopRecorder) ObserveCompilerDuration(time.Duration, bool)            {}

// ResultFor maps an operation error to a result label.
func ResultFor(err error, canceled bool) ResultLabel {
	switch {
	case err == nil:
		return ResultSuccess
	case canceled:
		return ResultCanceled
	default:
		return ResultFailed
	}
}
