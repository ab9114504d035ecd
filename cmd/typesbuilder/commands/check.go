package commands

import (
	"context"
	"fmt"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	PackageFlags `embed:""`
}

func (c *CheckCmd) Run(ctx context.Context, root *CLI) error {
	cfg, err := loadConfig(root, c.PackageFlags)
	if err != nil {
		return err
	}
	p, err := newPipeline(cfg, root.log())
	if err != nil {
		return err
	}
	if err := p.check(ctx); err != nil {
		return err
	}
	_, err = fmt.Fprintln(root.stdout(), "Configuration OK")
	return err
}
