package site

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

func TestLoadCollection(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"articles/second/index.md": "---\ntitle: Second\ndate: 2024-03-01\n---\nbody",
		"articles/first/index.md":  "---\ntitle: First\ndate: 2023-12-24\n---\nbody",
		"articles/first/photo.jpg": "jpg",
		"pages/about.md":           "---\ntitle: About\npermalink: /about/\n---\nAbout me",
		"drafts/wip.md":            "---\ntitle: WIP\n---\n",
	})

	pages, err := LoadCollection(dir, []string{"articles/*/index.md", "pages/*.md"})
	require.NoError(t, err)
	require.Len(t, pages, 3)

	// Undated pages sort first, then by date.
	assert.Equal(t, "pages/about.md", pages[0].Input)
	assert.Equal(t, "/about/", pages[0].URL)
	assert.True(t, pages[0].Date.IsZero())

	assert.Equal(t, "First", pages[1].Title)
	assert.Equal(t, "/articles/first/", pages[1].URL)
	assert.Equal(t, time.Date(2023, 12, 24, 0, 0, 0, 0, time.UTC), pages[1].Date)
	assert.Equal(t, "articles/first/index.html", pages[1].OutputPath())

	assert.Equal(t, "Second", pages[2].Title)
	assert.Equal(t, "body", string(pages[2].Body))
}

func TestLoadCollectionInvalidDate(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.md": "---\ndate: yesterday\n---\n"})

	_, err := LoadCollection(dir, []string{"*.md"})
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
	p, ok := errors.PagePath(err)
	require.True(t, ok)
	assert.Equal(t, "a.md", p)
}

func TestLoadCollectionBadFrontMatter(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.md": "---\ntitle: x\n"})

	_, err := LoadCollection(dir, []string{"*.md"})
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryParse))
}

func TestPageURL(t *testing.T) {
	tests := map[string]string{
		"index.md":                "/",
		"articles/foo/index.md":   "/articles/foo/",
		"pages/about.md":          "/pages/about/",
		"notes/2024/intro.md":     "/notes/2024/intro/",
		"articles/foo/index.html": "/articles/foo/",
	}
	for in, want := range tests {
		assert.Equal(t, want, pageURL(in), in)
	}
}

func TestParseDate(t *testing.T) {
	for _, in := range []any{"2024-01-15", "2024-01-15 10:30:00", "2024-01-15T10:30:00Z", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)} {
		d, ok := parseDate(in)
		require.True(t, ok, "%v", in)
		assert.Equal(t, 2024, d.Year())
		assert.Equal(t, time.January, d.Month())
		assert.Equal(t, 15, d.Day())
	}
	_, ok := parseDate(42)
	assert.False(t, ok)
}
