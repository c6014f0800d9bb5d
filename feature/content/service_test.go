package content_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"devserve/feature/content"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newService(t *testing.T, fallback string, dirs ...string) *content.Service {
	t.Helper()
	roots, err := content.ParseRoots(dirs, nil)
	require.NoError(t, err)
	return content.NewService(roots, content.Config{Fallback: fallback}, zap.NewNop())
}

func TestService_Lookup(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "index.html", "<h1>shell</h1>")
	writeFile(t, dir, "app.html", "<h1>app</h1>")
	writeFile(t, dir, "logo.svg", "<svg/>")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "assets"), 0o755))

	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		got := newService(t, "", dir).Lookup(ctx, "/logo.svg")
		assert.Equal(t, content.Found, got.Outcome)
		assert.Equal(t, "<svg/>", string(got.Content))
	})

	t.Run("MissingWithoutFallback", func(t *testing.T) {
		got := newService(t, "", dir).Lookup(ctx, "/route/a")
		assert.Equal(t, content.Missing, got.Outcome)
		assert.Equal(t, filepath.Join(dir, "route", "a"), got.Path)
	})

	t.Run("FallbackTrue", func(t *testing.T) {
		got := newService(t, "true", dir).Lookup(ctx, "/route/a")
		assert.Equal(t, content.FallbackFound, got.Outcome)
		assert.Equal(t, "<h1>shell</h1>", string(got.Content))
		assert.Equal(t, filepath.Join(dir, "index.html"), got.Path)
	})

	t.Run("FallbackLiteral", func(t *testing.T) {
		got := newService(t, "/app.html", dir).Lookup(ctx, "/route/a")
		assert.Equal(t, content.FallbackFound, got.Outcome)
		assert.Equal(t, "<h1>app</h1>", string(got.Content))
	})

	t.Run("FallbackMissing", func(t *testing.T) {
		got := newService(t, "/nope.html", dir).Lookup(ctx, "/route/a")
		assert.Equal(t, content.Missing, got.Outcome)
		assert.Equal(t, filepath.Join(dir, "nope.html"), got.Path)
	})

	t.Run("ReadErrorNeverFallsBack", func(t *testing.T) {
		got := newService(t, "true", dir).Lookup(ctx, "/assets")
		assert.Equal(t, content.Failed, got.Outcome)
		assert.Error(t, got.Err)
		assert.Equal(t, filepath.Join(dir, "assets"), got.Path)
	})
}

func TestService_FallbackSearchesAllRoots(t *testing.T) {
	build, static := t.TempDir(), t.TempDir()
	writeFile(t, static, "index.html", "static shell")

	got := newService(t, "true", build, static).Lookup(context.Background(), "/deep/link")
	assert.Equal(t, content.FallbackFound, got.Outcome)
	assert.Equal(t, "static shell", string(got.Content))
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "found", content.Found.String())
	assert.Equal(t, "fallback", content.FallbackFound.String())
	assert.Equal(t, "missing", content.Missing.String())
	assert.Equal(t, "failed", content.Failed.String())
	assert.Equal(t, "unknown", content.Outcome(42).String())
}

func TestOutcome_Status(t *testing.T) {
	assert.Equal(t, 200, content.Found.Status())
	assert.Equal(t, 200, content.FallbackFound.Status())
	assert.Equal(t, 404, content.Missing.Status())
	assert.Equal(t, 500, content.Failed.Status())
}
