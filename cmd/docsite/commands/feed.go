package commands

import (
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// FeedCmd implements the 'feed' command.
type FeedCmd struct {
	Output     string `short:"o" help:"Feed file path (defaults to <dir.output>/feed.xml)"`
	Collection string `help:"Collection listed in the feed" default:"articles"`
	Limit      int    `help:"Keep only the newest N entries (0 keeps all)" default:"0"`
}

// Run executes the feed command.
func (f *FeedCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	data, err := config.LoadSiteData(cfg.DataDir())
	if err != nil {
		return err
	}
	patterns, ok := cfg.Collections[f.Collection]
	if !ok {
		return errors.ConfigError(fmt.Sprintf("collection %q is not configured", f.Collection)).Build()
	}
	pages, err := site.LoadCollection(cfg.Dir.Input, patterns)
	if err != nil {
		return err
	}

	out := f.Output
	if out == "" {
		out = filepath.Join(cfg.Dir.Output, "feed.xml")
	}
	feedPath := site.DefaultFeedPath
	if rel, err := filepath.Rel(cfg.Dir.Output, out); err == nil && !strings.HasPrefix(rel, "..") {
		feedPath = path.Join("/", filepath.ToSlash(rel))
	}

	content, err := site.Feed(data, pages, site.WithFeedPath(feedPath), site.WithFeedLimit(f.Limit))
	if err != nil {
		return err
	}
	if err := writeGenerated(cfg, out, content); err != nil {
		return err
	}
	entries := len(pages)
	if f.Limit > 0 && f.Limit < entries {
		entries = f.Limit
	}
	slog.Info("Feed written", logfields.Path(out), logfields.Pages(entries))
	_, _ = fmt.Fprintf(g.out(), "Wrote %s (%d entries)\n", out, entries)
	return nil
}
