package goldmark

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lintcore/pkg/source"
)

func TestParseDocument(t *testing.T) {
	content := "# Title\n\nSome paragraph text.\n\n```go\npackage main\n```\n\n<!-- note -->\n"

	p := New(FlavorCommonMark)
	f, err := p.Parse(context.Background(), "doc.md", []byte(content))
	require.NoError(t, err)

	assert.Equal(t, "doc.md", f.Path)
	assert.Equal(t, content, string(f.Content))
	assert.Equal(t, "Markdown", f.Language)

	root := f.Arena.Node(f.Arena.Root())
	require.NotNil(t, root)
	assert.Equal(t, source.KindDocument, root.Kind)
	assert.Equal(t, source.Span{Start: 0, End: len(content)}, root.Span)
	assert.NotEmpty(t, root.Children)
}

func TestParseHeading(t *testing.T) {
	content := "# Title\n\nBody.\n"

	f, err := New(FlavorCommonMark).Parse(context.Background(), "doc.md", []byte(content))
	require.NoError(t, err)

	headings := f.Arena.NodesByKind(source.KindHeading)
	require.Len(t, headings, 1)

	h := f.Arena.Node(headings[0])
	assert.Equal(t, source.Span{Start: 0, End: 7}, h.Span, "heading span covers the whole line without the newline")
	assert.Equal(t, 1, h.PropInt("level", 0))

	marker, ok := h.SubSpan("marker")
	require.True(t, ok)
	assert.Equal(t, source.Span{Start: 0, End: 1}, marker)

	// The heading's parent is the document root.
	assert.Equal(t, f.Arena.Root(), h.Parent)
}

func TestParseHeadingLevels(t *testing.T) {
	content := "## Two\n\n### Three\n"

	f, err := New(FlavorCommonMark).Parse(context.Background(), "doc.md", []byte(content))
	require.NoError(t, err)

	headings := f.Arena.NodesByKind(source.KindHeading)
	require.Len(t, headings, 2)

	h2 := f.Arena.Node(headings[0])
	assert.Equal(t, 2, h2.PropInt("level", 0))
	marker, ok := h2.SubSpan("marker")
	require.True(t, ok)
	assert.Equal(t, source.Span{Start: 0, End: 2}, marker)

	h3 := f.Arena.Node(headings[1])
	assert.Equal(t, 3, h3.PropInt("level", 0))
}

func TestParseFencedCodeBlock(t *testing.T) {
	content := "# Title\n\n```go\npackage main\n```\n"
	// Offsets: the fence opens at 9 and the closing fence ends at 31.

	f, err := New(FlavorCommonMark).Parse(context.Background(), "doc.md", []byte(content))
	require.NoError(t, err)

	blocks := f.Arena.NodesByKind(source.KindCodeBlock)
	require.Len(t, blocks, 1)

	cb := f.Arena.Node(blocks[0])
	assert.Equal(t, source.Span{Start: 9, End: 31}, cb.Span, "span includes both fence lines")
	assert.True(t, cb.PropBool("fenced", false))
	assert.Equal(t, "go", cb.PropString("info", ""))

	info, ok := cb.SubSpan("info")
	require.True(t, ok)
	assert.Equal(t, "go", string(f.Content[info.Start:info.End]))
}

func TestParseUnclosedFence(t *testing.T) {
	content := "```\ncode\n"

	f, err := New(FlavorCommonMark).Parse(context.Background(), "doc.md", []byte(content))
	require.NoError(t, err)

	blocks := f.Arena.NodesByKind(source.KindCodeBlock)
	require.Len(t, blocks, 1)

	cb := f.Arena.Node(blocks[0])
	assert.Equal(t, source.Span{Start: 0, End: 8}, cb.Span, "unclosed fence ends at the last content line")
}

func TestParseIndentedCodeBlock(t *testing.T) {
	content := "Para.\n\n    indented code\n"

	f, err := New(FlavorCommonMark).Parse(context.Background(), "doc.md", []byte(content))
	require.NoError(t, err)

	blocks := f.Arena.NodesByKind(source.KindCodeBlock)
	require.Len(t, blocks, 1)
	assert.False(t, f.Arena.Node(blocks[0]).PropBool("fenced", true))
}

func TestParseListCoversMarkers(t *testing.T) {
	content := "- first\n- second\n"

	f, err := New(FlavorCommonMark).Parse(context.Background(), "doc.md", []byte(content))
	require.NoError(t, err)

	lists := f.Arena.NodesByKind(source.KindList)
	require.Len(t, lists, 1)

	list := f.Arena.Node(lists[0])
	assert.False(t, list.PropBool("ordered", true))
	assert.Equal(t, 0, list.Span.Start, "list span starts at the first bullet")

	items := f.Arena.NodesByKind(source.KindListItem)
	require.Len(t, items, 2)
	assert.Equal(t, 0, f.Arena.Node(items[0]).Span.Start)
	assert.Equal(t, 8, f.Arena.Node(items[1]).Span.Start)
}

func TestParseComments(t *testing.T) {
	content := "# H\n\n<!-- first -->\n\nText <!-- second --> more.\n"

	f, err := New(FlavorCommonMark).Parse(context.Background(), "doc.md", []byte(content))
	require.NoError(t, err)

	require.Len(t, f.Comments, 2)
	assert.Equal(t, "first", f.Comments[0].Text)
	assert.Equal(t, "second", f.Comments[1].Text)
	assert.Equal(t, 5, f.Comments[0].Span.Start)
	assert.Equal(t, "<!-- first -->", string(f.Content[f.Comments[0].Span.Start:f.Comments[0].Span.End]))
}

func TestParseCommentsSkipCodeBlocks(t *testing.T) {
	content := "```\n<!-- not a comment -->\n```\n\n<!-- real -->\n"

	f, err := New(FlavorCommonMark).Parse(context.Background(), "doc.md", []byte(content))
	require.NoError(t, err)

	require.Len(t, f.Comments, 1)
	assert.Equal(t, "real", f.Comments[0].Text)
}

func TestParseCommentsSkipCodeSpans(t *testing.T) {
	content := "Use `<!-- x -->` literally. <!-- real -->\n"

	f, err := New(FlavorCommonMark).Parse(context.Background(), "doc.md", []byte(content))
	require.NoError(t, err)

	require.Len(t, f.Comments, 1)
	assert.Equal(t, "real", f.Comments[0].Text)
}

func TestParseUnterminatedComment(t *testing.T) {
	content := "Text <!-- never closed\n"

	f, err := New(FlavorCommonMark).Parse(context.Background(), "doc.md", []byte(content))
	require.NoError(t, err)
	assert.Empty(t, f.Comments)
}

func TestParseEmptyContent(t *testing.T) {
	f, err := New(FlavorCommonMark).Parse(context.Background(), "empty.md", nil)
	require.NoError(t, err)

	assert.Equal(t, 0, f.LineCount())
	assert.Equal(t, 1, f.Arena.Len(), "empty files still get a document node")
	assert.Empty(t, f.Comments)
}

func TestParseContentCopied(t *testing.T) {
	content := []byte("# Title\n")

	f, err := New(FlavorCommonMark).Parse(context.Background(), "doc.md", content)
	require.NoError(t, err)

	content[0] = 'X'
	assert.Equal(t, byte('#'), f.Content[0])
}

func TestParseCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(FlavorCommonMark).Parse(ctx, "doc.md", []byte("# T\n"))
	assert.Error(t, err)
}

func TestFlavorOrDefault(t *testing.T) {
	assert.Equal(t, FlavorGFM, New("gfm").Flavor())
	assert.Equal(t, FlavorCommonMark, New("commonmark").Flavor())
	assert.Equal(t, FlavorCommonMark, New("bogus").Flavor())
}

func TestParseGFMTable(t *testing.T) {
	content := "| a | b |\n|---|---|\n| 1 | 2 |\n"

	f, err := New(FlavorGFM).Parse(context.Background(), "doc.md", []byte(content))
	require.NoError(t, err)

	// Tables are extension nodes and map to KindRaw.
	assert.NotEmpty(t, f.Arena.NodesByKind(source.KindRaw))
}

func TestParseSpansWithinContent(t *testing.T) {
	content := "# A\n\n> quoted\n\n- item\n\n```\nx\n```\n\nDone **bold** `code`.\n"

	f, err := New(FlavorCommonMark).Parse(context.Background(), "doc.md", []byte(content))
	require.NoError(t, err)

	f.Arena.Walk(func(n *source.Node) bool {
		assert.GreaterOrEqual(t, n.Span.Start, 0)
		assert.LessOrEqual(t, n.Span.End, len(content))
		assert.LessOrEqual(t, n.Span.Start, n.Span.End)
		return true
	})
}
