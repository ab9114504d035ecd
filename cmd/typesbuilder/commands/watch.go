package commands

import (
	"context"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/typesbuilder/internal/config"
	"git.home.luguber.info/inful/typesbuilder/internal/logfields"
	"git.home.luguber.info/inful/typesbuilder/internal/typesbuilder"
	"git.home.luguber.info/inful/typesbuilder/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	PackageFlags `embed:""`
}

func (w *WatchCmd) Run(ctx context.Context, root *CLI) error {
	cfg, err := loadConfig(root, w.PackageFlags)
	if err != nil {
		return err
	}
	options, err := typesbuilder.ParseOptions(cfg.PluginOptions(typesbuilder.PluginName))
	if err != nil {
		return err
	}
	p, err := newPipeline(cfg, root.log())
	if err != nil {
		return err
	}
	logger := root.log()

	rebuild := func(ctx context.Context, changed []string) error {
		if len(changed) > 0 {
			logger.Info("Rebuilding after change", logfields.Path(changed[0]), "changed", len(changed))
		}
		_, err := p.build(ctx)
		return err
	}
	if err := rebuild(ctx, nil); err != nil {
		logger.Error("Initial build failed", logfields.Error(err))
	}

	watcher, err := watch.New(watchTargets(root, cfg, options), cfg.Watch.DebounceDuration(), rebuild, logger)
	if err != nil {
		return err
	}
	logger.Info("Watching for changes", logfields.Cwd(cfg.Cwd))
	return watcher.Run(ctx)
}

// watchTargets lists the inputs that decide which declaration strategy runs.
func watchTargets(root *CLI, cfg *config.Config, options typesbuilder.Options) watch.Targets {
	files := []string{
		filepath.Join(cfg.Cwd, "index.d.ts"),
		typesbuilder.TSConfigPath(cfg.Cwd, options),
		cfg.ManifestPath(),
	}
	switch {
	case root.Config != "":
		files = append(files, root.Config)
	default:
		if _, err := os.Stat(config.DefaultFileName); err == nil {
			files = append(files, config.DefaultFileName)
		}
	}
	return watch.Targets{
		Files: files,
		Dirs: []string{
			filepath.Join(cfg.Cwd, "src"),
			filepath.Join(cfg.OutDir(), filepath.Dir(filepath.FromSlash(typesbuilder.NodeEntryPath))),
		},
	}
}
