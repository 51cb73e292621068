package check

import (
	"path/filepath"

	"github.com/yaklabco/lintcore/pkg/config"
	"github.com/yaklabco/lintcore/pkg/fsutil"
)

// Relevant reports whether a check applies to the file path under its
// merged configuration. A path is relevant when it matches the Include
// patterns (an empty list includes everything) and does not match the
// Exclude patterns (an empty list excludes nothing).
//
// Each pattern is tried against the path as given first. Only on a
// mismatch is the path relative to the configuration root computed, once,
// and retried; most configs never pay for the conversion.
func Relevant(cfg *config.CheckConfig, root, path string) bool {
	if cfg == nil {
		return true
	}

	m := &pathMatcher{root: root, path: path}
	return m.matchesAny(cfg.Include, true) && !m.matchesAny(cfg.Exclude, false)
}

// pathMatcher matches one path against pattern lists, computing the
// root-relative form lazily and caching it across patterns.
type pathMatcher struct {
	root string
	path string

	rel      string
	relTried bool
}

func (m *pathMatcher) matchesAny(patterns []string, whenEmpty bool) bool {
	if len(patterns) == 0 {
		return whenEmpty
	}
	for _, pattern := range patterns {
		if fsutil.MatchGlob(m.path, pattern) {
			return true
		}
		if rel := m.relative(); rel != "" && fsutil.MatchGlob(rel, pattern) {
			return true
		}
	}
	return false
}

func (m *pathMatcher) relative() string {
	if m.relTried {
		return m.rel
	}
	m.relTried = true

	if m.root == "" {
		return ""
	}
	rel, err := filepath.Rel(m.root, m.path)
	if err != nil || rel == m.path {
		return ""
	}
	m.rel = rel
	return m.rel
}
