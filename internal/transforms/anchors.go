package transforms

import (
	"context"
	"log/slog"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/dom"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/slug"
)

const (
	// ArticleContentID marks the element whose headings receive anchors.
	ArticleContentID = "article-content"
	// FallbackAnchor is used for headings whose text has no letters or digits.
	FallbackAnchor = "section"

	anchorHeadings = "h2, h3, h4, h5, h6"
)

var anchorSlugs = slug.New(slug.WithDecamelize(false))

// ApplyAnchors sets the id of every h2-h6 inside #article-content to the slug
// of its text, replacing any existing id. Pages without #article-content are
// left untouched. Headings with the same text get the same id.
func ApplyAnchors(doc dom.Document) error {
	return applyAnchors(doc, slog.Default())
}

func applyAnchors(doc dom.Document, logger *slog.Logger) error {
	content, ok := doc.GetElementByID(ArticleContentID)
	if !ok {
		return nil
	}
	headings, err := content.QuerySelectorAll(anchorHeadings)
	if err != nil {
		return err
	}
	for _, h := range headings {
		text := strings.TrimSpace(h.TextContent())
		id := anchorSlugs.Make(text)
		if id == "" {
			logger.Debug("Heading has no sluggable text, using fallback anchor",
				logfields.Heading(text), slog.String("anchor", FallbackAnchor))
			id = FallbackAnchor
		}
		h.SetAttribute("id", id)
	}
	return nil
}

// Anchors adapts ApplyAnchors to the Transform signature. It logs through the
// running pipeline's logger.
func Anchors(ctx context.Context, doc dom.Document, _, _ string) error {
	return applyAnchors(doc, LoggerFrom(ctx))
}
