// Package commands implements the typesbuilder CLI commands.
package commands

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/typesbuilder/internal/config"
	ferrors "git.home.luguber.info/inful/typesbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/typesbuilder/internal/typesbuilder"
)

// LogLevelEnv overrides the log level when -v is not given.
const LogLevelEnv = "TYPESBUILDER_LOG_LEVEL"

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (default: ./typesbuilder.yaml when present)"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build    BuildCmd    `cmd:"" help:"Write the manifest and dist-types/index.d.ts for the package"`
	Manifest ManifestCmd `cmd:"" help:"Print the manifest fields the types plugin would add"`
	Check    CheckCmd    `cmd:"" help:"Validate plugin configuration without building"`
	Watch    WatchCmd    `cmd:"" help:"Rebuild whenever declarations or compiler configuration change"`

	// Stdout receives command output (os.Stdout when nil).
	Stdout io.Writer `kong:"-"`

	logger *slog.Logger `kong:"-"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	c.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLogLevel(c.Verbose)}))
	slog.SetDefault(c.logger)
	return nil
}

func (c *CLI) log() *slog.Logger {
	if c.logger == nil {
		return slog.Default()
	}
	return c.logger
}

func (c *CLI) stdout() io.Writer {
	if c.Stdout == nil {
		return os.Stdout
	}
	return c.Stdout
}

// parseLogLevel returns debug for -v, otherwise the level named by
// TYPESBUILDER_LOG_LEVEL, defaulting to info.
func parseLogLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv(LogLevelEnv))) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// PackageFlags override the configuration file for one package.
type PackageFlags struct {
	Cwd          string   `help:"Package source directory"`
	Out          string   `help:"Package output directory"`
	ManifestFile string   `name:"manifest" help:"Package manifest to start from"`
	TSConfig     string   `name:"tsconfig" help:"Compiler configuration, relative to the package directory"`
	Entrypoint   []string `help:"Manifest key pointing at the declarations (repeatable)"`
	NoEntrypoint bool     `name:"no-entrypoint" help:"Do not add manifest entries"`
	Arg          []string `name:"arg" sep:"none" help:"Extra compiler argument (repeatable)"`
	MetricsFile  string   `name:"metrics-file" help:"Write Prometheus metrics to this textfile after the run"`
}

// loadConfig reads the configuration and applies flag overrides.
func loadConfig(root *CLI, flags PackageFlags) (*config.Config, error) {
	cfg, err := readConfig(root.Config)
	if err != nil {
		return nil, err
	}
	if flags.NoEntrypoint && len(flags.Entrypoint) > 0 {
		return nil, ferrors.ConfigError("--entrypoint and --no-entrypoint are mutually exclusive").Build()
	}

	if flags.Cwd != "" {
		cfg.Cwd = flags.Cwd
	}
	if flags.Out != "" {
		cfg.Out = flags.Out
	}
	if flags.ManifestFile != "" {
		cfg.Manifest = flags.ManifestFile
	}
	if flags.MetricsFile != "" {
		cfg.MetricsFile = flags.MetricsFile
	}
	if abs, err := filepath.Abs(cfg.Cwd); err == nil {
		cfg.Cwd = abs
	}

	name := typesbuilder.PluginName
	if flags.TSConfig != "" {
		cfg.SetPluginOption(name, typesbuilder.OptionTSConfig, flags.TSConfig)
	}
	if len(flags.Entrypoint) > 0 {
		cfg.SetPluginOption(name, typesbuilder.OptionEntrypoint, flags.Entrypoint)
	}
	if flags.NoEntrypoint {
		cfg.SetPluginOption(name, typesbuilder.OptionEntrypoint, nil)
	}
	if len(flags.Arg) > 0 {
		cfg.SetPluginOption(name, typesbuilder.OptionArgs, flags.Arg)
	}
	return cfg, nil
}

func readConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	if _, err := os.Stat(config.DefaultFileName); err == nil {
		return config.Load(config.DefaultFileName)
	}
	if _, err := config.LoadEnvFiles("."); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "load environment files").Fatal().Build()
	}
	return config.Default(), nil
}
