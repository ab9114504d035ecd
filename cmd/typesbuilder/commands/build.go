package commands

import (
	"context"
	"fmt"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	PackageFlags `embed:""`
}

func (b *BuildCmd) Run(ctx context.Context, root *CLI) error {
	cfg, err := loadConfig(root, b.PackageFlags)
	if err != nil {
		return err
	}
	p, err := newPipeline(cfg, root.log())
	if err != nil {
		return err
	}
	if _, err := p.build(ctx); err != nil {
		return err
	}
	_, err = fmt.Fprintf(root.stdout(), "Declarations written to %s\n", cfg.OutDir())
	return err
}
