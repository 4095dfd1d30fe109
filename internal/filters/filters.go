// Package filters holds the value filters templates use: Markdown rendering,
// absolute link rewriting and date formatting. Functions that need site-wide
// settings take them as an explicit config.SiteData argument.
package filters

import (
	"text/template"

	"git.home.luguber.info/inful/docsite/internal/config"
)

// FuncMap returns the filters keyed by their template names. The site value is
// bound into the filters that need it.
func FuncMap(site config.SiteData) template.FuncMap {
	return template.FuncMap{
		"markdown":       Markdown,
		"markdownInline": MarkdownInline,
		"absolute": func(pageURL, content string) string {
			return Absolute(site, pageURL, content)
		},
		"dateLong":  DateLong,
		"dateShort": DateShort,
		"dateISO":   DateISO,

		// Name used by feed templates.
		"dateToRfc3339": DateRFC3339,
	}
}
