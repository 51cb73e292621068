// Package cache persists per-file analysis results between runs.
//
// Entries are msgpack-encoded offense lists stored under the XDG cache
// directory, keyed by a sha256 digest over everything that can change a
// verdict: schema version, tool version, configuration digest, run
// flags, file content, and the external dependency checksums of the
// resolved checks. A stale key simply never hits; entries are pruned by
// age.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/yaklabco/lintcore/pkg/check"
	"github.com/yaklabco/lintcore/pkg/config"
)

// schemaVersion invalidates every existing entry when the payload
// layout changes.
const schemaVersion uint16 = 1

// entryExt is the file extension for cache entries.
const entryExt = ".mp"

// Cache is a disk-backed result cache. Safe for concurrent use.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// Open creates (or reuses) the cache directory for the application
// under XDG_CACHE_HOME, falling back to ~/.cache.
func Open(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve cache dir: %w", err)
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenAt(filepath.Join(base, app))
}

// OpenAt creates (or reuses) a cache rooted at dir.
func OpenAt(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the cache root directory.
func (c *Cache) Dir() string {
	return c.dir
}

// payload is the on-disk entry format.
type payload struct {
	Schema   uint16          `msgpack:"schema"`
	Offenses []check.Offense `msgpack:"offenses"`
}

// pathFor fans entries out into two-level subdirectories so no single
// directory grows unbounded.
func (c *Cache) pathFor(key string) string {
	return filepath.Join(c.dir, key[:2], key+entryExt)
}

// Get returns the cached offenses for a key. A missing entry, an
// unreadable entry, or a schema mismatch is a miss, not an error.
func (c *Cache) Get(key string) ([]check.Offense, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read cache entry: %w", err)
	}

	var p payload
	if err := msgpack.Unmarshal(data, &p); err != nil || p.Schema != schemaVersion {
		return nil, false, nil
	}
	return p.Offenses, true, nil
}

// Put stores the offenses for a key via a temp file and rename, so a
// concurrent reader never sees a partial entry.
func (c *Cache) Put(key string, offenses []check.Offense) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	path := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create cache subdir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "entry.*.tmp")
	if err != nil {
		return fmt.Errorf("create cache temp: %w", err)
	}
	tmpPath := tmp.Name()

	enc := msgpack.NewEncoder(tmp)
	if err := enc.Encode(payload{Schema: schemaVersion, Offenses: offenses}); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("encode cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close cache temp: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("commit cache entry: %w", err)
	}
	return nil
}

// Prune removes entries older than maxAge. Returns the number removed.
func (c *Cache) Prune(maxAge time.Duration) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0

	err := filepath.WalkDir(c.dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != entryExt {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return nil //nolint:nilerr // Entry vanished mid-walk; skip it.
		}
		if info.ModTime().Before(cutoff) {
			if os.Remove(path) == nil {
				removed++
			}
		}
		return nil
	})
	if err != nil {
		return removed, fmt.Errorf("prune cache: %w", err)
	}
	return removed, nil
}

// DropAll removes every entry by renaming the root aside and deleting
// it, so a concurrent run never sees a half-empty cache.
func (c *Cache) DropAll() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	doomed := c.dir + ".doomed"
	if err := os.Rename(c.dir, doomed); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stage cache removal: %w", err)
	}
	if err := os.RemoveAll(doomed); err != nil {
		return fmt.Errorf("remove cache: %w", err)
	}
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("recreate cache dir: %w", err)
	}
	return nil
}

// KeyInput names everything that can change a file's verdict.
type KeyInput struct {
	// ToolVersion is the lintcore version string.
	ToolVersion string

	// ConfigDigest fingerprints the effective configuration.
	ConfigDigest string

	// Fix, SuppressUnfixable, and IgnoreDirectives alter statuses and
	// messages, so they participate in the key.
	Fix               bool
	SuppressUnfixable bool
	IgnoreDirectives  bool

	// Content is the file content.
	Content []byte

	// DependencyChecksums fingerprints the external inputs of resolved
	// checks, keyed by qualified name.
	DependencyChecksums map[string]string
}

// Key derives the cache key for the input. The serialization is
// length-prefix free but unambiguous: fields are separated by newlines
// and the dependency map is emitted in sorted order.
func (in KeyInput) Key() string {
	h := sha256.New()
	fmt.Fprintf(h, "schema=%d\n", schemaVersion)
	fmt.Fprintf(h, "version=%s\n", in.ToolVersion)
	fmt.Fprintf(h, "config=%s\n", in.ConfigDigest)
	fmt.Fprintf(h, "flags=%t,%t,%t\n", in.Fix, in.SuppressUnfixable, in.IgnoreDirectives)

	names := make([]string, 0, len(in.DependencyChecksums))
	for name := range in.DependencyChecksums {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(h, "dep=%s:%s\n", name, in.DependencyChecksums[name])
	}

	h.Write(in.Content)
	return hex.EncodeToString(h.Sum(nil))
}

// ConfigDigest fingerprints a configuration, including the CLI-level
// fields that never reach the YAML form.
func ConfigDigest(cfg *config.Config) string {
	if cfg == nil {
		return ""
	}
	h := sha256.New()
	if data, err := cfg.ToYAML(); err == nil {
		h.Write(data)
	}
	fmt.Fprintf(h, "enable=%v disable=%v names=%t details=%t\n",
		cfg.EnableChecks, cfg.DisableChecks, cfg.DisplayCheckNames, cfg.ExtraDetails)
	return hex.EncodeToString(h.Sum(nil))
}
