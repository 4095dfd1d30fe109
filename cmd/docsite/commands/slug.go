package commands

import (
	"fmt"

	"git.home.luguber.info/inful/docsite/internal/slug"
)

// SlugCmd implements the 'slug' command.
type SlugCmd struct {
	Text       []string `arg:"" help:"Heading texts to slugify"`
	Separator  string   `short:"s" help:"Separator between words" default:"-"`
	Decamelize bool     `help:"Split camelCase words before slugifying"`
}

// Run executes the slug command.
func (s *SlugCmd) Run(g *Global, _ *CLI) error {
	sl := slug.New(slug.WithSeparator(s.Separator), slug.WithDecamelize(s.Decamelize))
	for _, text := range s.Text {
		_, _ = fmt.Fprintln(g.out(), sl.Make(text))
	}
	return nil
}
