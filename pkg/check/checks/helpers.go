// Package checks contains the built-in checks, grouped by department.
// Registration is explicit: the CLI calls RegisterAll before running.
package checks

import (
	"bytes"

	"github.com/yaklabco/lintcore/pkg/source"
)

// codeBlockLines returns the set of 1-based line numbers covered by code
// blocks, for checks that skip or target code.
func codeBlockLines(f *source.File) map[int]bool {
	lineSet := make(map[int]bool)
	for _, id := range f.Arena.NodesByKind(source.KindCodeBlock) {
		node := f.Arena.Node(id)
		if node == nil {
			continue
		}
		startLine, _ := f.LineAt(node.Span.Start)
		endLine, _ := f.LineAt(node.Span.End - 1)
		for line := startLine; line <= endLine && line > 0; line++ {
			lineSet[line] = true
		}
	}
	return lineSet
}

// isBlankLine reports whether the line contains only whitespace.
func isBlankLine(f *source.File, line int) bool {
	content := f.LineContent(line)
	return content != nil && len(bytes.TrimSpace(content)) == 0
}

// lineRangeSpan returns the span covering whole lines first..last,
// including the trailing newline of last.
func lineRangeSpan(f *source.File, first, last int) source.Span {
	return source.Span{
		Start: f.Lines[first-1].StartOffset,
		End:   f.Lines[last-1].EndOffset,
	}
}
