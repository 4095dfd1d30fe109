package filters

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// md renders CommonMark with raw HTML passed through, matching content that
// embeds markup in Markdown.
var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// Markdown renders a Markdown string to HTML.
func Markdown(value string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(value), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// MarkdownInline renders value without the wrapping paragraph, for titles and
// other single-line fields.
func MarkdownInline(value string) (string, error) {
	out, err := Markdown(value)
	if err != nil {
		return "", err
	}
	out = strings.TrimSpace(out)
	if strings.HasPrefix(out, "<p>") && strings.HasSuffix(out, "</p>") && strings.Count(out, "<p>") == 1 {
		out = strings.TrimSuffix(strings.TrimPrefix(out, "<p>"), "</p>")
	}
	return out, nil
}
