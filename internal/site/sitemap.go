package site

import (
	"encoding/xml"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/filters"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// Sitemap renders a sitemap.xml document for pages.
func Sitemap(data config.SiteData, pages []Page) ([]byte, error) {
	set := urlset{XMLNS: sitemapNS, URLs: make([]sitemapURL, 0, len(pages))}
	for _, p := range pages {
		u := sitemapURL{Loc: data.Domain + p.URL}
		if !p.Date.IsZero() {
			u.LastMod = filters.DateISO(p.Date)
		}
		set.URLs = append(set.URLs, u)
	}
	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), append(out, '\n')...), nil
}
