package cache_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lintcore/pkg/cache"
	"github.com/yaklabco/lintcore/pkg/check"
	"github.com/yaklabco/lintcore/pkg/config"
	"github.com/yaklabco/lintcore/pkg/source"
)

func sampleOffenses() []check.Offense {
	return []check.Offense{
		{
			Check:    "Layout/LineLength",
			Severity: config.SeverityWarning,
			Location: source.Location{
				Path:      "docs/guide.md",
				Span:      source.Span{Start: 10, End: 20},
				StartLine: 2, StartColumn: 1, EndLine: 2, EndColumn: 11,
			},
			Message: "Line is too long",
			Status:  check.StatusUncorrected,
		},
		{
			Check:    "Style/ProperNames",
			Severity: config.SeverityConvention,
			Location: source.Location{
				Path:      "docs/guide.md",
				Span:      source.Span{Start: 30, End: 36},
				StartLine: 4, StartColumn: 3, EndLine: 4, EndColumn: 9,
			},
			Message: "Use the proper name",
			Status:  check.StatusCorrected,
		},
	}
}

func openCache(t *testing.T) *cache.Cache {
	t.Helper()
	c, err := cache.OpenAt(filepath.Join(t.TempDir(), "lintcore"))
	require.NoError(t, err)
	return c
}

func TestCacheRoundTrip(t *testing.T) {
	t.Parallel()

	c := openCache(t)
	offenses := sampleOffenses()
	key := cache.KeyInput{ToolVersion: "1.0.0", Content: []byte("body")}.Key()

	require.NoError(t, c.Put(key, offenses))

	got, hit, err := c.Get(key)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, offenses, got)
}

func TestCacheMiss(t *testing.T) {
	t.Parallel()

	c := openCache(t)
	key := cache.KeyInput{Content: []byte("never stored")}.Key()

	_, hit, err := c.Get(key)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCacheCorruptEntryIsMiss(t *testing.T) {
	t.Parallel()

	c := openCache(t)
	key := cache.KeyInput{Content: []byte("body")}.Key()
	require.NoError(t, c.Put(key, sampleOffenses()))

	// Mangle the entry on disk.
	path := filepath.Join(c.Dir(), key[:2], key+".mp")
	require.NoError(t, os.WriteFile(path, []byte("not msgpack"), 0644))

	_, hit, err := c.Get(key)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCacheOpenUsesXDGCacheHome(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)

	c, err := cache.Open("lintcore")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "lintcore"), c.Dir())
}

func TestCachePrune(t *testing.T) {
	t.Parallel()

	c := openCache(t)

	oldKey := cache.KeyInput{Content: []byte("old")}.Key()
	newKey := cache.KeyInput{Content: []byte("new")}.Key()
	require.NoError(t, c.Put(oldKey, nil))
	require.NoError(t, c.Put(newKey, nil))

	// Age the first entry past the cutoff.
	oldPath := filepath.Join(c.Dir(), oldKey[:2], oldKey+".mp")
	stale := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(oldPath, stale, stale))

	removed, err := c.Prune(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, hit, err := c.Get(oldKey)
	require.NoError(t, err)
	assert.False(t, hit)

	_, hit, err = c.Get(newKey)
	require.NoError(t, err)
	assert.True(t, hit)
}

func TestCacheDropAll(t *testing.T) {
	t.Parallel()

	c := openCache(t)
	key := cache.KeyInput{Content: []byte("body")}.Key()
	require.NoError(t, c.Put(key, sampleOffenses()))

	require.NoError(t, c.DropAll())

	_, hit, err := c.Get(key)
	require.NoError(t, err)
	assert.False(t, hit)

	// The cache stays usable after a drop.
	require.NoError(t, c.Put(key, nil))
}

func TestKeyInputSensitivity(t *testing.T) {
	t.Parallel()

	base := cache.KeyInput{
		ToolVersion:         "1.0.0",
		ConfigDigest:        "cfg",
		Content:             []byte("body"),
		DependencyChecksums: map[string]string{"Style/Dep": "abc"},
	}

	variants := []cache.KeyInput{
		{ToolVersion: "1.0.1", ConfigDigest: "cfg", Content: []byte("body"),
			DependencyChecksums: map[string]string{"Style/Dep": "abc"}},
		{ToolVersion: "1.0.0", ConfigDigest: "other", Content: []byte("body"),
			DependencyChecksums: map[string]string{"Style/Dep": "abc"}},
		{ToolVersion: "1.0.0", ConfigDigest: "cfg", Content: []byte("edited"),
			DependencyChecksums: map[string]string{"Style/Dep": "abc"}},
		{ToolVersion: "1.0.0", ConfigDigest: "cfg", Content: []byte("body"),
			DependencyChecksums: map[string]string{"Style/Dep": "changed"}},
		{ToolVersion: "1.0.0", ConfigDigest: "cfg", Content: []byte("body"),
			DependencyChecksums: map[string]string{"Style/Dep": "abc"}, Fix: true},
	}

	for _, v := range variants {
		assert.NotEqual(t, base.Key(), v.Key())
	}

	// Identical inputs produce identical keys.
	same := base
	assert.Equal(t, base.Key(), same.Key())
}

func TestConfigDigest(t *testing.T) {
	t.Parallel()

	a := config.NewConfig()
	b := config.NewConfig()
	assert.Equal(t, cache.ConfigDigest(a), cache.ConfigDigest(b))

	enabled := false
	b.Checks["Layout/LineLength"] = config.CheckConfig{Enabled: &enabled}
	assert.NotEqual(t, cache.ConfigDigest(a), cache.ConfigDigest(b))

	c := config.NewConfig()
	c.DisableChecks = []string{"Layout/LineLength"}
	assert.NotEqual(t, cache.ConfigDigest(a), cache.ConfigDigest(c))

	assert.Empty(t, cache.ConfigDigest(nil))
}
