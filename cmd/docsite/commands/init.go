package commands

import (
	"fmt"
	"path/filepath"

	"git.home.luguber.info/inful/docsite/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force  bool   `help:"Overwrite existing configuration file"`
	Output string `short:"o" name:"output" help:"Output directory for generated config file"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	// If the user specified an output directory, place the config there as "docsite.yaml".
	if i.Output != "" {
		return RunInit(g, filepath.Join(i.Output, config.DefaultPath), i.Force)
	}
	return RunInit(g, root.Config, i.Force)
}

func RunInit(g *Global, configPath string, force bool) error {
	out := g.out()
	_, _ = fmt.Fprintf(out, "Writing configuration to %s\n", configPath)
	if err := config.Init(configPath, force); err != nil {
		_, _ = fmt.Fprintln(out, "Initialization failed")
		return err
	}
	_, _ = fmt.Fprintln(out, "initialized successfully")
	return nil
}
