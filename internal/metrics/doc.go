// Package metrics provides build observability for typesbuilder.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so callers never need nil checks:
//
//	runner := plugin.NewRunner(builders...).WithRecorder(metrics.NoopRecorder{})
//
// When the CLI is given --metrics-file, a PrometheusRecorder is injected
// instead and its registry is written in the node-exporter textfile format
// once the pipeline finishes (see WriteTextfile).
package metrics
