package commands

import (
	"fmt"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/transforms"
)

// VisualizeCmd implements the 'visualize' command.
type VisualizeCmd struct {
	Format string `short:"f" help:"Output format: text, mermaid, json" default:"text" enum:"text,mermaid,json"`
	Output string `short:"o" help:"Output file path (optional, prints to stdout if not specified)"`
	List   bool   `short:"l" help:"List available transforms and formats and exit"`
}

// Run executes the visualize command. Without a config file the default
// chain is shown.
func (cmd *VisualizeCmd) Run(g *Global, root *CLI) error {
	out := g.out()
	if cmd.List {
		_, _ = fmt.Fprintln(out, "Available transforms:")
		for _, name := range transforms.Available() {
			_, _ = fmt.Fprintf(out, "  %s\n", name)
		}
		_, _ = fmt.Fprintln(out, "Available formats:")
		for _, f := range transforms.SupportedFormats() {
			_, _ = fmt.Fprintf(out, "  %s\n", f)
		}
		return nil
	}

	cfg := config.Default()
	if _, statErr := os.Stat(root.Config); statErr == nil {
		loaded, err := config.Load(root.Config)
		if err != nil {
			return err
		}
		cfg = loaded
	} else {
		slog.Debug("Using default configuration", logfields.Path(root.Config))
	}
	proc, err := newProcessor(cfg, metrics.NoopRecorder{})
	if err != nil {
		return err
	}

	rendered, err := transforms.Visualize(proc.Views(), transforms.VisualizationFormat(cmd.Format))
	if err != nil {
		return errors.WrapError(err, errors.CategoryValidation, "failed to visualize pipeline").Build()
	}

	if cmd.Output != "" {
		if err := os.WriteFile(cmd.Output, []byte(rendered), 0o644); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to write output file").
				WithContext("file", cmd.Output).Build()
		}
		slog.Info("Pipeline visualization written", "file", cmd.Output, "format", cmd.Format)
		return nil
	}
	_, _ = fmt.Fprint(out, rendered)
	return nil
}
