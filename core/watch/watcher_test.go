package watch_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"devserve/core/watch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, paths []string) (*watch.Watcher, <-chan []string) {
	t.Helper()
	ch := make(chan []string, 10)
	w, err := watch.New(paths, func(changed []string) {
		ch <- changed
	}, watch.WithDebounce(50*time.Millisecond))
	require.NoError(t, err)
	w.RunAsync()
	t.Cleanup(w.Stop)
	return w, ch
}

func waitBatch(t *testing.T, ch <-chan []string) []string {
	t.Helper()
	select {
	case batch := <-ch:
		return batch
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
		return nil
	}
}

func TestWatcher_Directory(t *testing.T) {
	dir := t.TempDir()
	_, ch := collect(t, []string{dir})

	target := filepath.Join(dir, "bundle.js")
	require.NoError(t, os.WriteFile(target, []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(target, []byte("ab"), 0o644))

	batch := waitBatch(t, ch)
	assert.Contains(t, batch, target)
}

func TestWatcher_NestedDirectory(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "assets")
	require.NoError(t, os.Mkdir(nested, 0o755))
	_, ch := collect(t, []string{dir})

	target := filepath.Join(nested, "style.css")
	require.NoError(t, os.WriteFile(target, []byte("body{}"), 0o644))

	assert.Contains(t, waitBatch(t, ch), target)
}

func TestWatcher_SingleFileIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "devserve.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("server: {}"), 0o644))
	_, ch := collect(t, []string{cfg})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(cfg, []byte("server: {port: 1}"), 0o644))

	batch := waitBatch(t, ch)
	assert.Equal(t, []string{cfg}, batch)
}

func TestNew_MissingPath(t *testing.T) {
	_, err := watch.New([]string{filepath.Join(t.TempDir(), "nope")}, func([]string) {})
	assert.Error(t, err)
}

func TestWatcher_StopTwice(t *testing.T) {
	w, _ := collect(t, []string{t.TempDir()})
	w.Stop()
	w.Stop()
}
