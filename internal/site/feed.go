package site

import (
	"encoding/xml"
	"fmt"
	"sort"
	"time"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/filters"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

const atomNS = "http://www.w3.org/2005/Atom"

// DefaultFeedPath is where the feed is published relative to the domain.
const DefaultFeedPath = "/feed.xml"

type atomFeed struct {
	XMLName  xml.Name    `xml:"feed"`
	XMLNS    string      `xml:"xmlns,attr"`
	Lang     string      `xml:"xml:lang,attr,omitempty"`
	Title    string      `xml:"title"`
	Subtitle string      `xml:"subtitle,omitempty"`
	Links    []atomLink  `xml:"link"`
	Updated  string      `xml:"updated"`
	ID       string      `xml:"id"`
	Author   *atomAuthor `xml:"author,omitempty"`
	Entries  []atomEntry `xml:"entry"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr,omitempty"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

type atomEntry struct {
	Title   string      `xml:"title"`
	Link    atomLink    `xml:"link"`
	ID      string      `xml:"id"`
	Updated string      `xml:"updated"`
	Summary string      `xml:"summary,omitempty"`
	Content atomContent `xml:"content"`
}

type atomContent struct {
	Type string `xml:"type,attr"`
	Body string `xml:",chardata"`
}

// FeedOption configures Feed.
type FeedOption func(*feedOptions)

type feedOptions struct {
	path  string
	limit int
}

// WithFeedPath sets the URL path the feed is published at, used for the
// self link.
func WithFeedPath(p string) FeedOption {
	return func(o *feedOptions) {
		if p != "" {
			o.path = p
		}
	}
}

// WithFeedLimit keeps only the newest n entries. n <= 0 keeps all.
func WithFeedLimit(n int) FeedOption {
	return func(o *feedOptions) { o.limit = n }
}

// Feed renders an Atom feed of pages, newest first. Entry bodies are rendered
// from Markdown and their links made absolute so they work in feed readers.
func Feed(data config.SiteData, pages []Page, opts ...FeedOption) ([]byte, error) {
	o := feedOptions{path: DefaultFeedPath}
	for _, opt := range opts {
		opt(&o)
	}

	entries := append([]Page(nil), pages...)
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Date.After(entries[j].Date) })
	if o.limit > 0 && len(entries) > o.limit {
		entries = entries[:o.limit]
	}

	feed := atomFeed{
		XMLNS:    atomNS,
		Lang:     data.Language,
		Title:    data.Title,
		Subtitle: data.Description,
		Links: []atomLink{
			{Href: data.Domain + o.path, Rel: "self"},
			{Href: data.Domain + "/"},
		},
		ID:      data.Domain + "/",
		Entries: make([]atomEntry, 0, len(entries)),
	}
	if data.Author != "" {
		feed.Author = &atomAuthor{Name: data.Author}
	}

	var updated time.Time
	for _, p := range entries {
		entry, err := feedEntry(data, p)
		if err != nil {
			return nil, err
		}
		if p.Date.After(updated) {
			updated = p.Date
		}
		feed.Entries = append(feed.Entries, entry)
	}
	feed.Updated = filters.DateRFC3339(updated)

	out, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "failed to encode feed").Build()
	}
	return append([]byte(xml.Header), append(out, '\n')...), nil
}

func feedEntry(data config.SiteData, p Page) (atomEntry, error) {
	body, err := filters.Markdown(string(p.Body))
	if err != nil {
		return atomEntry{}, errors.WrapError(err, errors.CategoryParse, "failed to render feed entry").
			WithContext(logfields.KeyPath, p.Input).Build()
	}
	link := data.Domain + p.URL
	entry := atomEntry{
		Title:   p.Title,
		Link:    atomLink{Href: link},
		ID:      link,
		Updated: filters.DateRFC3339(p.Date),
		Content: atomContent{Type: "html", Body: filters.Absolute(data, p.URL, body)},
	}
	if desc, ok := p.Data["description"].(string); ok && desc != "" {
		entry.Summary = desc
	} else if !p.Date.IsZero() {
		entry.Summary = fmt.Sprintf("Published %s", filters.DateLong(p.Date))
	}
	return entry, nil
}
