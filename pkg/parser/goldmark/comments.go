package goldmark

import (
	"bytes"
	"slices"

	"github.com/yaklabco/lintcore/pkg/source"
)

var (
	commentOpen  = []byte("<!--")
	commentClose = []byte("-->")
)

// extractComments scans the raw content for HTML comments, in source
// order. Comment text inside code blocks and code spans is literal
// content, not commentary, and is skipped. Unterminated comments are
// ignored.
func extractComments(f *source.File) []source.Comment {
	content := f.Content
	skip := codeSpans(f.Arena)

	var comments []source.Comment
	pos := 0
	for {
		rel := bytes.Index(content[pos:], commentOpen)
		if rel < 0 {
			break
		}
		start := pos + rel

		relEnd := bytes.Index(content[start+len(commentOpen):], commentClose)
		if relEnd < 0 {
			break
		}
		end := start + len(commentOpen) + relEnd + len(commentClose)
		pos = end

		if insideAny(skip, start) {
			continue
		}

		comments = append(comments, source.Comment{
			Span: source.Span{Start: start, End: end},
			Text: string(bytes.TrimSpace(content[start+len(commentOpen) : end-len(commentClose)])),
		})
	}

	return comments
}

// codeSpans collects the byte spans of code blocks and inline code,
// sorted by start offset.
func codeSpans(arena *source.Arena) []source.Span {
	var spans []source.Span
	for _, kind := range []source.NodeKind{source.KindCodeBlock, source.KindCodeSpan} {
		for _, id := range arena.NodesByKind(kind) {
			spans = append(spans, arena.Node(id).Span)
		}
	}
	slices.SortFunc(spans, func(a, b source.Span) int {
		return a.Start - b.Start
	})
	return spans
}

// insideAny reports whether the offset falls inside any span.
func insideAny(spans []source.Span, offset int) bool {
	for _, s := range spans {
		if s.Start > offset {
			return false
		}
		if s.Contains(offset) {
			return true
		}
	}
	return false
}
