package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/postprocess"
)

// LogLevelEnv overrides the log level when -v is not given.
const LogLevelEnv = "DOCSITE_LOG_LEVEL"

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
	// Out receives user-facing command output. Defaults to stdout.
	Out io.Writer
}

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"docsite.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Process   ProcessCmd   `cmd:"" help:"Post-process a rendered output directory in place"`
	Copy      CopyCmd      `cmd:"" help:"Copy passthrough files from the input to the output directory"`
	Sitemap   SitemapCmd   `cmd:"" help:"Write sitemap.xml from the sitemap collection"`
	Feed      FeedCmd      `cmd:"" help:"Write an Atom feed from the articles collection"`
	Slug      SlugCmd      `cmd:"" help:"Print the anchor slug for each argument"`
	Watch     WatchCmd     `cmd:"" help:"Re-process the output directory whenever it changes"`
	Visualize VisualizeCmd `cmd:"" help:"Visualize the post-processing pipeline (text, mermaid, json)"`
	Init      InitCmd      `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := levelFromEnv(os.Getenv(LogLevelEnv))
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

func levelFromEnv(v string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
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

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// ResolveOutputDir returns the directory to operate on: the flag when set,
// otherwise the configured output directory.
func ResolveOutputDir(flag string, cfg *config.Config) string {
	if flag != "" {
		return flag
	}
	return cfg.Dir.Output
}

// newProcessor builds the configured post-processing chain.
func newProcessor(cfg *config.Config, rec metrics.Recorder) (*postprocess.Processor, error) {
	return postprocess.FromConfig(cfg.Postprocess, postprocess.WithRecorder(rec))
}
