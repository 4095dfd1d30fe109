package commands

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// ProcessCmd implements the 'process' command.
type ProcessCmd struct {
	Dir         string `short:"d" help:"Rendered output directory (defaults to dir.output from the config)"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics in text format to this file after the run"`
}

// Run executes the process command.
func (p *ProcessCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	var rec metrics.Recorder = metrics.NoopRecorder{}
	var prom *metrics.PrometheusRecorder
	if p.MetricsFile != "" {
		prom = metrics.NewPrometheusRecorder(prometheus.NewRegistry())
		rec = prom
	}

	proc, err := newProcessor(cfg, rec)
	if err != nil {
		return err
	}
	dir := ResolveOutputDir(p.Dir, cfg)
	report, runErr := site.ProcessDir(ctx, dir, proc, rec)

	if prom != nil {
		if err := prom.WriteTextfile(p.MetricsFile); err != nil {
			slog.Warn("Failed to write metrics file", slog.String("file", p.MetricsFile), slog.String("error", err.Error()))
		}
	}
	if runErr != nil {
		return runErr
	}

	_, err = fmt.Fprintf(g.out(), "Processed %d files in %s (%d changed, %d skipped)\n",
		report.Processed, dir, report.Changed, report.Skipped)
	if err != nil {
		return errors.WrapError(err, errors.CategoryRuntime, "failed to write report").Build()
	}
	return nil
}
