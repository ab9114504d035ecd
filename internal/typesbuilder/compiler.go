package typesbuilder

import (
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"path/filepath"

	"git.home.luguber.info/inful/typesbuilder/internal/logfields"
)

// Command is one external process invocation.
type Command struct {
	Path string
	Args []string
	Dir  string

	// Logger receives the process output. Runners fall back to their own
	// logger when nil.
	Logger *slog.Logger
}

// Result captures a finished process.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Output returns the combined diagnostics. The compiler reports errors on
// either stream.
func (r Result) Output() string {
	switch {
	case r.Stderr == "":
		return r.Stdout
	case r.Stdout == "":
		return r.Stderr
	default:
		return r.Stdout + "\n" + r.Stderr
	}
}

// CommandRunner runs external processes.
type CommandRunner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// ExecRunner runs commands with os/exec and waits for them to finish.
type ExecRunner struct {
	Logger *slog.Logger
}

func (r ExecRunner) Run(ctx context.Context, cmd Command) (Result, error) {
	logger := cmd.Logger
	if logger == nil {
		logger = r.Logger
	}
	if logger == nil {
		logger = slog.Default()
	}

	c := exec.CommandContext(ctx, cmd.Path, cmd.Args...)
	c.Dir = cmd.Dir
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr
	logger.Debug("Invoking compiler", logfields.Compiler(cmd.Path), logfields.Cwd(cmd.Dir), slog.Any("args", cmd.Args))

	err := c.Run()

	res := Result{ExitCode: -1, Stdout: stdout.String(), Stderr: stderr.String()}
	if c.ProcessState != nil {
		res.ExitCode = c.ProcessState.ExitCode()
	}
	if res.Stdout != "" {
		logger.Debug("compiler stdout", "output", res.Stdout)
	}
	if res.Stderr != "" {
		logger.Warn("compiler stderr", "error_output", res.Stderr)
	}

	return res, err
}

// CompilerArgs builds the declaration-only tsc command line. Extra arguments
// come last so they can override the defaults.
func CompilerArgs(tsconfig, out string, extra []string) []string {
	args := []string{
		"-d",
		"--emitDeclarationOnly",
		"--declarationMap", "false",
		"--project", tsconfig,
		"--declarationDir", filepath.Join(absPath(out), TypesDir) + string(filepath.Separator),
	}
	return append(args, extra...)
}
