package commands

import (
	"fmt"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// CopyCmd implements the 'copy' command.
type CopyCmd struct {
	Output string `short:"o" help:"Destination directory (defaults to dir.output from the config)"`
}

// Run executes the copy command.
func (c *CopyCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	out := ResolveOutputDir(c.Output, cfg)
	n, err := site.Passthrough(cfg.Dir.Input, out, cfg.Passthrough)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.out(), "Copied %d files to %s\n", n, out)
	return nil
}
