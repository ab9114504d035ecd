package commands

import (
	"fmt"
)

// ManifestCmd implements the 'manifest' command.
type ManifestCmd struct {
	PackageFlags `embed:""`
}

func (m *ManifestCmd) Run(root *CLI) error {
	cfg, err := loadConfig(root, m.PackageFlags)
	if err != nil {
		return err
	}
	p, err := newPipeline(cfg, root.log())
	if err != nil {
		return err
	}
	added, err := p.manifest()
	if err != nil {
		return err
	}
	data, err := added.Marshal()
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(root.stdout(), string(data))
	return err
}
