package site

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

func TestShouldIgnoreEvent(t *testing.T) {
	tests := map[string]bool{
		"/out/index.html":        false,
		"/out/.index.html.swp":   true,
		"/out/index.html~":       true,
		"/out/#index.html#":      true,
		"/out/.DS_Store":         true,
		"/out/Thumbs.db":         true,
		"/out/feed.xml.tmp":      true,
		"/out/4913":              true,
		"/out/articles/foo.html": false,
	}
	for path, want := range tests {
		assert.Equal(t, want, shouldIgnoreEvent(path), path)
	}
}

func TestWatchDebouncesChanges(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))

	var mu sync.Mutex
	var batches [][]string
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ready := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		close(ready)
		done <- Watch(ctx, dir, func(_ context.Context, changed []string) error {
			mu.Lock()
			defer mu.Unlock()
			batches = append(batches, changed)
			return nil
		}, WithDebounce(50*time.Millisecond))
	}()
	<-ready
	// Give the watcher time to register directories.
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.html"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b.html"), []byte("b"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden"), []byte("h"), 0o644))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		seen := map[string]bool{}
		for _, b := range batches {
			for _, p := range b {
				seen[p] = true
			}
		}
		return seen[filepath.Join(dir, "a.html")] && seen[filepath.Join(dir, "sub", "b.html")]
	}, 5*time.Second, 20*time.Millisecond)

	mu.Lock()
	for _, b := range batches {
		assert.NotContains(t, b, filepath.Join(dir, ".hidden"))
	}
	mu.Unlock()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestWatchMissingDir(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "missing"), func(context.Context, []string) error { return nil })
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryFileSystem))
}
