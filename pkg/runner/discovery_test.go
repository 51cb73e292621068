package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lintcore/pkg/runner"
)

// writeTree creates the named files (with parent dirs) under a temp dir.
func writeTree(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("content\n"), 0644))
	}
	return dir
}

// relPaths maps absolute discovered paths back to slash-separated
// paths relative to dir, for stable assertions.
func relPaths(t *testing.T, dir string, files []string) []string {
	t.Helper()
	out := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(dir, f)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestDiscoverSingleFile(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, "readme.md")
	target := filepath.Join(dir, "readme.md")

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{target},
		WorkingDir: dir,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{target}, files)
}

func TestDiscoverDirectory(t *testing.T) {
	t.Parallel()

	dir := writeTree(t,
		"readme.md",
		"docs/guide.md",
		"src/main.go",
		"notes.txt",
	)

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
	})
	require.NoError(t, err)

	// No extension filter: every non-hidden file is a candidate.
	assert.Equal(t, []string{
		"docs/guide.md",
		"notes.txt",
		"readme.md",
		"src/main.go",
	}, relPaths(t, dir, files))
}

func TestDiscoverExtensionFilter(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, "readme.md", "guide.MD", "notes.txt")

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
		Extensions: []string{".md"},
	})
	require.NoError(t, err)

	// Extension comparison is case-insensitive.
	assert.Equal(t, []string{"guide.MD", "readme.md"}, relPaths(t, dir, files))
}

func TestDiscoverExcludeGlobs(t *testing.T) {
	t.Parallel()

	dir := writeTree(t,
		"readme.md",
		"build/out.md",
		"docs/guide.md",
	)

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:        []string{"."},
		WorkingDir:   dir,
		ExcludeGlobs: []string{"build/**"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"docs/guide.md", "readme.md"}, relPaths(t, dir, files))
}

func TestDiscoverIncludeGlobs(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, "readme.md", "docs/guide.md", "docs/api.md")

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:        []string{"."},
		WorkingDir:   dir,
		IncludeGlobs: []string{"docs/**"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"docs/api.md", "docs/guide.md"}, relPaths(t, dir, files))
}

func TestDiscoverSkipsHiddenAndVendored(t *testing.T) {
	t.Parallel()

	dir := writeTree(t,
		"readme.md",
		".hidden.md",
		".git/config.md",
		"vendor/dep/readme.md",
		"node_modules/pkg/readme.md",
	)

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"readme.md"}, relPaths(t, dir, files))
}

func TestDiscoverDeduplicatesOverlappingPaths(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, "docs/guide.md")

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{".", "docs", "docs/guide.md"},
		WorkingDir: dir,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"docs/guide.md"}, relPaths(t, dir, files))
}

func TestDiscoverMissingPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"absent.md"},
		WorkingDir: dir,
	})
	assert.Error(t, err)
}

func TestDiscoverCancelled(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, "readme.md")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDiscoverSymlinkedDirectory(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, "real/guide.md")
	link := filepath.Join(dir, "linked")
	if err := os.Symlink(filepath.Join(dir, "real"), link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	// Not followed by default.
	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"real/guide.md"}, relPaths(t, dir, files))

	// Followed when enabled.
	files, err = runner.Discover(context.Background(), runner.Options{
		Paths:          []string{"."},
		WorkingDir:     dir,
		FollowSymlinks: true,
	})
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestOptionsFromConfig(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig()
	cfg.Ignore = []string{"build/**"}
	cfg.Jobs = 3

	opts := runner.OptionsFromConfig(cfg, []string{"docs"})
	assert.Equal(t, []string{"docs"}, opts.Paths)
	assert.Equal(t, []string{"build/**"}, opts.ExcludeGlobs)
	assert.Equal(t, 3, opts.Jobs)
	assert.Same(t, cfg, opts.Config)

	opts = runner.OptionsFromConfig(nil, nil)
	assert.Nil(t, opts.Config)
}
