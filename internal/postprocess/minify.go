package postprocess

import (
	"context"
	"fmt"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/xml"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

const (
	mimeHTML = "text/html"
	mimeXML  = "text/xml"
)

// HTMLMinifyStage removes comments and collapses whitespace in HTML pages.
// Document structure, end tags, quotes and default attribute values are kept
// so the output stays valid for anything consuming it after the build.
func HTMLMinifyStage() Stage {
	m := minify.New()
	m.Add(mimeHTML, &html.Minifier{
		KeepDocumentTags:    true,
		KeepEndTags:         true,
		KeepQuotes:          true,
		KeepDefaultAttrVals: true,
	})
	return Stage{
		Name:       StageHTMLMinify,
		Extensions: []string{".html"},
		Apply:      minifyWith(m, mimeHTML, StageHTMLMinify),
	}
}

// XMLMinifyStage strips comments and whitespace between tags of XML output
// such as feeds and sitemaps.
func XMLMinifyStage() Stage {
	m := minify.New()
	m.Add(mimeXML, &xml.Minifier{})
	return Stage{
		Name:       StageXMLMinify,
		Extensions: []string{".xml"},
		Apply:      minifyWith(m, mimeXML, StageXMLMinify),
	}
}

func minifyWith(m *minify.M, mime, stage string) ApplyFunc {
	return func(_ context.Context, content, path string) (string, error) {
		out, err := m.String(mime, content)
		if err != nil {
			return "", errors.WrapError(err, errors.CategoryMinify, fmt.Sprintf("%s failed", stage)).
				Fatal().
				WithContext(logfields.KeyPath, path).
				WithContext(logfields.KeyStage, stage).
				Build()
		}
		return out, nil
	}
}
