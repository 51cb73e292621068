// Package plain parses non-Markdown files. The arena holds a single
// document node; comments are extracted with the detected language's
// comment style so inline directives work in any file type.
package plain

import (
	"bytes"
	"context"
	"fmt"
	"slices"

	"github.com/yaklabco/lintcore/pkg/langdetect"
	"github.com/yaklabco/lintcore/pkg/source"
)

// Parser parses any text file into a source.File.
type Parser struct{}

// New creates a plain-text parser.
func New() *Parser {
	return &Parser{}
}

// Parse builds a source.File with language detection and comment
// extraction. The content is copied; the caller's slice is never
// retained or mutated.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*source.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	f := source.NewFile(path, copyContent(content))
	f.Language = langdetect.Detect(path, f.Content)
	f.Arena.New(source.KindDocument, source.Span{Start: 0, End: len(f.Content)}, source.NoNode)
	f.Comments = extractComments(f, langdetect.Comments(f.Language))

	return f, nil
}

// extractComments scans for comments in the given style. Extraction is
// lexical: a marker inside a string literal is picked up too. That is
// harmless for directive scanning, which only acts on comment text with
// the directive prefix.
func extractComments(f *source.File, style langdetect.CommentStyle) []source.Comment {
	blocks := blockComments(f, style)
	lines := lineComments(f, style, blocks)

	comments := append(blocks, lines...)
	slices.SortFunc(comments, func(a, b source.Comment) int {
		return a.Span.Start - b.Span.Start
	})
	return comments
}

// blockComments scans for delimited comments, which may span lines.
func blockComments(f *source.File, style langdetect.CommentStyle) []source.Comment {
	if style.Open == "" || style.Close == "" {
		return nil
	}

	open := []byte(style.Open)
	terminator := []byte(style.Close)

	var comments []source.Comment
	pos := 0
	for {
		rel := bytes.Index(f.Content[pos:], open)
		if rel < 0 {
			break
		}
		start := pos + rel

		relEnd := bytes.Index(f.Content[start+len(open):], terminator)
		if relEnd < 0 {
			break
		}
		end := start + len(open) + relEnd + len(terminator)
		pos = end

		comments = append(comments, source.Comment{
			Span: source.Span{Start: start, End: end},
			Text: string(bytes.TrimSpace(f.Content[start+len(open) : end-len(terminator)])),
		})
	}
	return comments
}

// lineComments scans each line for the line comment marker. Markers
// inside block comments belong to the block and are skipped.
func lineComments(f *source.File, style langdetect.CommentStyle, blocks []source.Comment) []source.Comment {
	if style.Line == "" {
		return nil
	}

	marker := []byte(style.Line)

	var comments []source.Comment
	for line := 1; line <= f.LineCount(); line++ {
		content := f.LineContent(line)
		idx := bytes.Index(content, marker)
		if idx < 0 {
			continue
		}

		span := f.LineSpan(line)
		start := span.Start + idx
		if insideBlock(blocks, start) {
			continue
		}

		comments = append(comments, source.Comment{
			Span: source.Span{Start: start, End: span.End},
			Text: string(bytes.TrimSpace(content[idx+len(marker):])),
		})
	}
	return comments
}

func insideBlock(blocks []source.Comment, offset int) bool {
	for _, b := range blocks {
		if b.Span.Contains(offset) {
			return true
		}
	}
	return false
}

// copyContent creates a copy of the content slice to ensure immutability.
func copyContent(content []byte) []byte {
	if content == nil {
		return nil
	}
	cp := make([]byte, len(content))
	copy(cp, content)
	return cp
}
