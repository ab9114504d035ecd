// Package errors provides the classified error type used across typesbuilder.
//
// Every failure that can abort a package build is expressed as a
// ClassifiedError so the CLI can pick an exit code and a log level without
// string matching.
//
// Key features:
//   - ErrorCategory: broad classification (config, compiler, build, filesystem, ...)
//   - ErrorSeverity: impact level (fatal, error, warning, info)
//   - RetryStrategy: retry hint; builds never retry, so most errors use RetryNever
//     or RetryUserAction
//   - ErrorBuilder: fluent API for constructing errors with context
//   - CLIErrorAdapter: exit codes and user-facing formatting
//
// Example usage:
//
//	err := errors.CompilerError("tsc exited with status 2").
//		WithContext("tsconfig", path).
//		WithCause(runErr).
//		Build()
package errors
