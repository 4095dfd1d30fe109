package transforms

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/dom"
	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

const articlePage = `<html><head></head><body><div id="article-content"><h2>Hello World</h2></div></body></html>`

func TestPipelineSkipsNonHTMLPaths(t *testing.T) {
	p, err := Build([]string{NameAnchors})
	require.NoError(t, err)

	for _, path := range []string{"feed.xml", "styles/index.css", "index.html.bak", ""} {
		out, err := p.Run(context.Background(), articlePage, path)
		require.NoError(t, err)
		assert.Equal(t, articlePage, out, "path %q", path)
	}
}

func TestPipelineAppliesAnchors(t *testing.T) {
	p, err := Build([]string{NameAnchors})
	require.NoError(t, err)

	out, err := p.Run(context.Background(), articlePage, "dist/index.html")
	require.NoError(t, err)
	assert.Contains(t, out, `<h2 id="hello-world">Hello World</h2>`)
}

func TestPipelineRunsTransformsInRegistrationOrder(t *testing.T) {
	p := NewPipeline()
	var order []string

	require.NoError(t, p.Register("mark", func(_ context.Context, doc dom.Document, _, _ string) error {
		order = append(order, "mark")
		content, ok := doc.GetElementByID(ArticleContentID)
		require.True(t, ok)
		content.SetAttribute("data-marked", "t1")
		return nil
	}))
	require.NoError(t, p.Register("check", func(_ context.Context, doc dom.Document, _, _ string) error {
		order = append(order, "check")
		content, ok := doc.GetElementByID(ArticleContentID)
		if !ok {
			return errors.New("article-content missing")
		}
		if v, _ := content.GetAttribute("data-marked"); v != "t1" {
			return errors.New("marker from previous transform not visible")
		}
		return nil
	}))

	out, err := p.Run(context.Background(), articlePage, "a/index.html")
	require.NoError(t, err)
	assert.Equal(t, []string{"mark", "check"}, order)
	assert.Equal(t, []string{"mark", "check"}, p.Names())
	assert.Contains(t, out, `data-marked="t1"`)
}

func TestPipelineFailureAbortsWithPageContext(t *testing.T) {
	p := NewPipeline()
	cause := errors.New("boom")
	secondRan := false

	require.NoError(t, p.Register("explode", func(context.Context, dom.Document, string, string) error {
		return cause
	}))
	require.NoError(t, p.Register("after", func(context.Context, dom.Document, string, string) error {
		secondRan = true
		return nil
	}))

	out, err := p.Run(context.Background(), articlePage, "dist/posts/x/index.html")
	require.Error(t, err)
	assert.Empty(t, out)
	assert.False(t, secondRan)
	assert.ErrorIs(t, err, cause)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryTransform))

	path, ok := ferrors.PagePath(err)
	require.True(t, ok)
	assert.Equal(t, "dist/posts/x/index.html", path)
}

func TestPipelineTransformsReceiveRawContentAndPath(t *testing.T) {
	p := NewPipeline()
	var gotRaw, gotPath string
	require.NoError(t, p.Register("spy", func(_ context.Context, _ dom.Document, raw, path string) error {
		gotRaw, gotPath = raw, path
		return nil
	}))

	_, err := p.Run(context.Background(), articlePage, "out/page.html")
	require.NoError(t, err)
	assert.Equal(t, articlePage, gotRaw)
	assert.Equal(t, "out/page.html", gotPath)
}

func TestPipelineCanceledContext(t *testing.T) {
	p, err := Build([]string{NameAnchors})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = p.Run(ctx, articlePage, "index.html")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPipelineRegisterValidation(t *testing.T) {
	p := NewPipeline()
	require.NoError(t, p.Register("a", Anchors))
	assert.Error(t, p.Register("a", Anchors))
	assert.Error(t, p.Register("", Anchors))
	assert.Error(t, p.Register("b", nil))
}

func TestPipelineCustomExtensions(t *testing.T) {
	p := NewPipeline(WithExtensions(".htm", ".html"))
	assert.True(t, p.Applies("a.htm"))
	assert.True(t, p.Applies("a.html"))
	assert.False(t, p.Applies("a.xml"))
	assert.Equal(t, []string{".htm", ".html"}, p.Extensions())
}

func TestBuildUnknownTransform(t *testing.T) {
	_, err := Build([]string{NameAnchors, "does-not-exist"})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
	assert.True(t, strings.Contains(err.Error(), "does-not-exist"))
}

func TestCatalogRegister(t *testing.T) {
	snap := SnapshotForTest()
	defer RestoreForTest(snap)

	Register("noop", func(context.Context, dom.Document, string, string) error { return nil })
	assert.Contains(t, Available(), "noop")
	assert.Contains(t, Available(), NameAnchors)
	assert.Contains(t, Available(), NameCodeLanguage)

	_, ok := Lookup("noop")
	assert.True(t, ok)
}

func TestPipelineLoggerReachesAnchorFallback(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	p, err := Build([]string{NameAnchors}, WithLogger(logger))
	require.NoError(t, err)

	out, err := p.Run(context.Background(), `<div id="article-content"><h2>???</h2></div>`, "blog/index.html")
	require.NoError(t, err)
	assert.Contains(t, out, `<h2 id="section">`)

	logged := buf.String()
	assert.Contains(t, logged, "Heading has no sluggable text")
	assert.Contains(t, logged, "path=blog/index.html")
	assert.Contains(t, logged, "transform=anchors")
}
