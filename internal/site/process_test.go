package site

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/metrics"
)

// upperProcessor uppercases .html files and fails on paths containing "bad".
type upperProcessor struct{}

func (upperProcessor) Handles(path string) bool { return strings.HasSuffix(path, ".html") }

func (upperProcessor) Process(_ context.Context, content, path string) (string, error) {
	if strings.Contains(path, "bad") {
		return "", errors.TransformError("boom").WithContext("path", path).Build()
	}
	return strings.ToUpper(content), nil
}

func TestProcessDir(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"index.html":         "<p>hi</p>",
		"already/index.html": "<P>DONE</P>",
		"style.css":          "body{}",
		"feed.xml":           "<rss/>",
	})

	report, err := ProcessDir(context.Background(), dir, upperProcessor{}, nil)
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 2, report.Processed)
	assert.Equal(t, 1, report.Changed)
	assert.Equal(t, 2, report.Skipped)
	assert.Equal(t, "<P>HI</P>", readFile(t, filepath.Join(dir, "index.html")))
	assert.Equal(t, "body{}", readFile(t, filepath.Join(dir, "style.css")))
}

func TestProcessDirAbortsWithoutWriting(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a.html":    "<p>a</p>",
		"bad.html":  "<p>bad</p>",
		"z/ok.html": "<p>z</p>",
	})

	_, err := ProcessDir(context.Background(), dir, upperProcessor{}, nil)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryTransform))
	p, ok := errors.PagePath(err)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "bad.html"), p)

	assert.Equal(t, "<p>a</p>", readFile(t, filepath.Join(dir, "a.html")))
	assert.Equal(t, "<p>z</p>", readFile(t, filepath.Join(dir, "z", "ok.html")))
}

func TestProcessDirCancelled(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.html": "<p>a</p>"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ProcessDir(ctx, dir, upperProcessor{}, nil)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryRuntime))
	assert.Equal(t, "<p>a</p>", readFile(t, filepath.Join(dir, "a.html")))
}

func TestProcessDirRecordsMetrics(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.html": "<p>a</p>", "b.txt": "b"})
	rec := metrics.NewPrometheusRecorder(prometheus.NewRegistry())

	_, err := ProcessDir(context.Background(), dir, upperProcessor{}, rec)
	require.NoError(t, err)

	families, err := rec.Registry().Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "docsite_pages_total")
	assert.Contains(t, names, "docsite_run_duration_seconds")
}
