package commands

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// SitemapCollection is the collection listing the pages in sitemap.xml.
const SitemapCollection = "sitemap"

// SitemapCmd implements the 'sitemap' command.
type SitemapCmd struct {
	Output string `short:"o" help:"Sitemap file path (defaults to <dir.output>/sitemap.xml)"`
}

// Run executes the sitemap command.
func (s *SitemapCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	data, err := config.LoadSiteData(cfg.DataDir())
	if err != nil {
		return err
	}
	patterns, ok := cfg.Collections[SitemapCollection]
	if !ok {
		return errors.ConfigError(fmt.Sprintf("collection %q is not configured", SitemapCollection)).Build()
	}
	pages, err := site.LoadCollection(cfg.Dir.Input, patterns)
	if err != nil {
		return err
	}
	out, err := site.Sitemap(data, pages)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to render sitemap").Build()
	}

	path := s.Output
	if path == "" {
		path = filepath.Join(cfg.Dir.Output, "sitemap.xml")
	}
	if err := writeGenerated(cfg, path, out); err != nil {
		return err
	}
	slog.Info("Sitemap written", logfields.Path(path), logfields.Pages(len(pages)))
	_, _ = fmt.Fprintf(g.out(), "Wrote %s (%d pages)\n", path, len(pages))
	return nil
}
