package commands

import (
	"context"
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Dir string `short:"d" help:"Rendered output directory to watch (defaults to dir.output from the config)"`
}

// Run processes the directory once, then again after every debounced change
// until interrupted. Files already processed are left untouched on rerun, so
// the rewrites the command makes itself settle after one extra pass.
func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	proc, err := newProcessor(cfg, metrics.NoopRecorder{})
	if err != nil {
		return err
	}
	dir := ResolveOutputDir(w.Dir, cfg)
	ctx, cancel := signalContext()
	defer cancel()

	run := func(ctx context.Context, changed []string) error {
		report, err := site.ProcessDir(ctx, dir, proc, nil)
		if err != nil {
			if p, ok := errors.PagePath(err); ok {
				slog.Error("Post-processing failed", logfields.Path(p), logfields.Error(err))
			}
			return err
		}
		if report.Changed > 0 {
			_, _ = fmt.Fprintf(g.out(), "Processed %d files (%d changed)\n", report.Processed, report.Changed)
		}
		return nil
	}

	if err := run(ctx, nil); err != nil {
		slog.Warn("Initial processing failed; waiting for changes", logfields.Error(err))
	}
	return site.Watch(ctx, dir, run)
}
