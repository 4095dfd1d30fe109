package site

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

func TestPassthrough(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writeTree(t, in, map[string]string{
		"robots.txt":                "User-agent: *",
		"images/logo.png":           "png",
		"images/icons/x.svg":        "<svg/>",
		"articles/foo/index.md":     "# Foo",
		"articles/foo/diagram.png":  "png",
		"articles/bar/data/set.csv": "a,b",
		"pages/about.md":            "# About",
	})

	n, err := Passthrough(in, out, []string{"robots.txt", "images", "fonts", "articles/**/*.!(md)"})
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	assert.Equal(t, "User-agent: *", readFile(t, filepath.Join(out, "robots.txt")))
	assert.FileExists(t, filepath.Join(out, "images", "icons", "x.svg"))
	assert.FileExists(t, filepath.Join(out, "articles", "foo", "diagram.png"))
	assert.FileExists(t, filepath.Join(out, "articles", "bar", "data", "set.csv"))
	assert.NoFileExists(t, filepath.Join(out, "articles", "foo", "index.md"))
	assert.NoFileExists(t, filepath.Join(out, "pages", "about.md"))
}

func TestPassthroughPreservesMode(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	script := filepath.Join(in, "run.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh"), 0o755))

	_, err := Passthrough(in, out, []string{"run.sh"})
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(out, "run.sh"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestPassthroughInvalidGlob(t *testing.T) {
	_, err := Passthrough(t.TempDir(), t.TempDir(), []string{"*.!(md"})
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}
