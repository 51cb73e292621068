package directive

import (
	"math"
	"strings"

	"github.com/yaklabco/lintcore/pkg/source"
)

// Index answers disabled-line queries for one file. Build it once per
// file pass; it is read-only afterwards.
type Index struct {
	directives []Directive

	// spans holds the disabled line ranges per target name. The "all"
	// keyword is stored under its own key and consulted on every query.
	spans map[string][]lineSpan
}

// lineSpan is an inclusive range of 1-based lines.
type lineSpan struct {
	start int
	end   int
}

func (s lineSpan) contains(line int) bool {
	return line >= s.start && line <= s.end
}

const allKey = "all"

// NewIndex builds the disabled-line index for a file.
func NewIndex(f *source.File) *Index {
	idx := &Index{
		directives: FromFile(f),
		spans:      make(map[string][]lineSpan),
	}

	// open tracks block-form disables awaiting their enable line.
	open := make(map[string]int)

	for _, d := range idx.directives {
		targets := d.Checks
		if d.All {
			targets = []string{allKey}
		}

		switch {
		case d.Verb == VerbEnable && d.Standalone:
			for _, t := range targets {
				idx.closeBlock(open, t, d.Line)
			}
			if d.All {
				for t := range open {
					idx.closeBlock(open, t, d.Line)
				}
			}
		case d.Verb == VerbEnable:
			// Trailing enable has nothing to act on.
		case d.Standalone:
			for _, t := range targets {
				if _, active := open[t]; !active {
					open[t] = d.Line
				}
			}
		default:
			for _, t := range targets {
				idx.spans[t] = append(idx.spans[t], lineSpan{start: d.Line, end: d.Line})
			}
		}
	}

	// Blocks left open run to end of file.
	for t, start := range open {
		idx.spans[t] = append(idx.spans[t], lineSpan{start: start, end: math.MaxInt})
	}

	return idx
}

// closeBlock ends an open disable block at the enable line, inclusive.
func (idx *Index) closeBlock(open map[string]int, target string, line int) {
	start, active := open[target]
	if !active {
		return
	}
	delete(open, target)
	idx.spans[target] = append(idx.spans[target], lineSpan{start: start, end: line})
}

// Disabled reports whether the qualified check is disabled at the line.
// Department names and the "all" keyword in directives match the check.
func (idx *Index) Disabled(check string, line int) bool {
	if idx.matchAt(allKey, line) || idx.matchAt(check, line) {
		return true
	}
	if dept, _, found := strings.Cut(check, "/"); found {
		return idx.matchAt(dept, line)
	}
	return false
}

func (idx *Index) matchAt(key string, line int) bool {
	for _, s := range idx.spans[key] {
		if s.contains(line) {
			return true
		}
	}
	return false
}

// Directives returns the parsed directives in source order.
func (idx *Index) Directives() []Directive {
	return idx.directives
}

// TodoAt returns the trailing todo directive on the line, if any. The
// suppression fallback merges new check names into it instead of adding
// a second comment.
func (idx *Index) TodoAt(line int) (Directive, bool) {
	for _, d := range idx.directives {
		if d.Verb == VerbTodo && !d.Standalone && d.Line == line {
			return d, true
		}
	}
	return Directive{}, false
}
