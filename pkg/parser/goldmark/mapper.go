package goldmark

import (
	"bytes"

	"github.com/yuin/goldmark/ast"

	"github.com/yaklabco/lintcore/pkg/source"
)

// mapper converts a goldmark AST into arena nodes on a source.File.
//
// Block spans are expanded to whole lines (excluding the trailing
// newline) so a heading covers its marker and a list item covers its
// bullet. Fenced code block spans include both fence lines. Inline spans
// are exact byte ranges. Nodes whose source range goldmark does not
// retain (thematic breaks, autolinks) are dropped.
type mapper struct {
	file    *source.File
	content []byte
}

// newMapper creates a mapper targeting the file's arena.
func newMapper(f *source.File) *mapper {
	return &mapper{file: f, content: f.Content}
}

// mapDocument builds the arena from a goldmark document node. The root
// document node always exists, spanning the whole content.
func (m *mapper) mapDocument(gmDoc ast.Node) {
	root := m.file.Arena.New(source.KindDocument, source.Span{Start: 0, End: len(m.content)}, source.NoNode)
	m.mapChildren(gmDoc, root)
}

// mapChildren maps all children of a goldmark node under parent.
func (m *mapper) mapChildren(gmParent ast.Node, parent source.NodeID) {
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		m.mapNode(child, parent)
	}
}

// mapNode converts a single goldmark node into an arena node.
func (m *mapper) mapNode(gmNode ast.Node, parent source.NodeID) {
	switch n := gmNode.(type) {
	// Block-level nodes.
	case *ast.Heading:
		m.mapHeading(n, parent)

	case *ast.Paragraph:
		m.mapBlock(n, source.KindParagraph, parent, nil)

	case *ast.List:
		m.mapList(n, parent)

	case *ast.ListItem:
		m.mapBlock(n, source.KindListItem, parent, nil)

	case *ast.Blockquote:
		m.mapBlock(n, source.KindBlockquote, parent, nil)

	case *ast.FencedCodeBlock:
		m.mapFencedCodeBlock(n, parent)

	case *ast.CodeBlock:
		m.mapBlock(n, source.KindCodeBlock, parent, map[string]any{"fenced": false})

	case *ast.HTMLBlock:
		m.mapBlock(n, source.KindHTMLBlock, parent, nil)

	case *ast.ThematicBreak:
		// goldmark retains no source position for thematic breaks.

	// Inline-level nodes.
	case *ast.Text:
		m.mapText(n, parent)

	case *ast.Emphasis:
		m.mapEmphasis(n, parent)

	case *ast.CodeSpan:
		m.mapInline(n, source.KindCodeSpan, parent, nil)

	case *ast.Link:
		m.mapInline(n, source.KindLink, parent, linkProps(n.Destination, n.Title))

	case *ast.Image:
		m.mapInline(n, source.KindImage, parent, linkProps(n.Destination, n.Title))

	case *ast.AutoLink:
		// The autolink's segment is not retrievable from goldmark.

	case *ast.RawHTML:
		m.mapRawHTML(n, parent)

	case *ast.String:
		// Synthesized content with no source position.

	default:
		// Extension nodes (tables, strikethrough) and anything else
		// unrecognized keep their structure under KindRaw.
		if gmNode.Type() == ast.TypeInline {
			m.mapInline(gmNode, source.KindRaw, parent, nil)
		} else {
			m.mapBlock(gmNode, source.KindRaw, parent, nil)
		}
	}
}

// mapBlock maps a block node whose span comes from its retained lines,
// or from the union of its children for container blocks.
func (m *mapper) mapBlock(gmNode ast.Node, kind source.NodeKind, parent source.NodeID, props map[string]any) {
	start, stop, ok := m.blockRange(gmNode)
	if !ok {
		return
	}

	id := m.file.Arena.New(kind, m.expandLines(start, stop), parent)
	m.file.Arena.Node(id).Props = props
	m.mapChildren(gmNode, id)
}

// mapInline maps an inline node with an exact byte span.
func (m *mapper) mapInline(gmNode ast.Node, kind source.NodeKind, parent source.NodeID, props map[string]any) {
	start, stop, ok := inlineRange(gmNode)
	if !ok {
		return
	}

	id := m.file.Arena.New(kind, source.Span{Start: start, End: stop}, parent)
	m.file.Arena.Node(id).Props = props
	m.mapChildren(gmNode, id)
}

// mapHeading maps a heading with its level and, for ATX headings, a
// "marker" sub-span covering the leading hash run.
func (m *mapper) mapHeading(h *ast.Heading, parent source.NodeID) {
	start, stop, ok := m.blockRange(h)
	if !ok {
		return
	}

	span := m.expandLines(start, stop)
	id := m.file.Arena.New(source.KindHeading, span, parent)
	node := m.file.Arena.Node(id)
	node.Props = map[string]any{"level": h.Level}

	if marker, ok := m.headingMarker(span); ok {
		node.Spans = map[string]source.Span{"marker": marker}
	}

	m.mapChildren(h, id)
}

// headingMarker locates the leading hash run of an ATX heading. Setext
// headings have none.
func (m *mapper) headingMarker(span source.Span) (source.Span, bool) {
	i := span.Start
	for i < span.End && m.content[i] == ' ' {
		i++
	}
	start := i
	for i < span.End && m.content[i] == '#' {
		i++
	}
	if i == start {
		return source.Span{}, false
	}
	return source.Span{Start: start, End: i}, true
}

// mapList maps a list with its ordering attributes.
func (m *mapper) mapList(list *ast.List, parent source.NodeID) {
	start, stop, ok := m.blockRange(list)
	if !ok {
		return
	}

	id := m.file.Arena.New(source.KindList, m.expandLines(start, stop), parent)
	m.file.Arena.Node(id).Props = map[string]any{
		"ordered": list.IsOrdered(),
		"start":   list.Start,
		"tight":   list.IsTight,
		"marker":  string(list.Marker),
	}
	m.mapChildren(list, id)
}

// mapFencedCodeBlock maps a fenced code block. The span includes the
// fence lines; the info string becomes a prop and an "info" sub-span.
func (m *mapper) mapFencedCodeBlock(cb *ast.FencedCodeBlock, parent source.NodeID) {
	span, ok := m.fencedSpan(cb)
	if !ok {
		return
	}

	id := m.file.Arena.New(source.KindCodeBlock, span, parent)
	node := m.file.Arena.Node(id)

	info := ""
	if cb.Info != nil {
		info = string(cb.Info.Value(m.content))
		node.Spans = map[string]source.Span{
			"info": {Start: cb.Info.Segment.Start, End: cb.Info.Segment.Stop},
		}
	}
	node.Props = map[string]any{"fenced": true, "info": info}
}

// fencedSpan computes the whole-block span of a fenced code block,
// extending the content range to the surrounding fence lines. Unclosed
// fences end at the last content line. Empty blocks are located through
// the info string; an empty block with no info has no recoverable
// position and is dropped.
func (m *mapper) fencedSpan(cb *ast.FencedCodeBlock) (source.Span, bool) {
	lines := cb.Lines()

	openLine := 0
	switch {
	case lines.Len() > 0:
		contentLine, _ := m.file.LineAt(lines.At(0).Start)
		openLine = contentLine - 1
	case cb.Info != nil:
		openLine, _ = m.file.LineAt(cb.Info.Segment.Start)
	}

	if openLine < 1 || !m.looksLikeFence(openLine) {
		if lines.Len() == 0 {
			return source.Span{}, false
		}
		return m.expandLines(lines.At(0).Start, lines.At(lines.Len()-1).Stop), true
	}

	lastLine := openLine
	if lines.Len() > 0 {
		lastLine, _ = m.file.LineAt(lines.At(lines.Len()-1).Stop - 1)
	}

	end := m.file.Lines[lastLine-1].NewlineStart
	if closeLine := lastLine + 1; closeLine <= m.file.LineCount() && m.looksLikeFence(closeLine) {
		end = m.file.Lines[closeLine-1].NewlineStart
	}

	return source.Span{Start: m.file.Lines[openLine-1].StartOffset, End: end}, true
}

// looksLikeFence reports whether the line opens or closes a code fence.
func (m *mapper) looksLikeFence(line int) bool {
	content := bytes.TrimLeft(m.file.LineContent(line), " \t")
	return bytes.HasPrefix(content, []byte("```")) || bytes.HasPrefix(content, []byte("~~~"))
}

// mapText maps a text node with its exact segment. Empty segments carry
// no source range and are dropped.
func (m *mapper) mapText(t *ast.Text, parent source.NodeID) {
	if t.Segment.Len() == 0 {
		return
	}
	m.file.Arena.New(source.KindText, source.Span{Start: t.Segment.Start, End: t.Segment.Stop}, parent)
}

// mapEmphasis maps emphasis; level 2 is strong.
func (m *mapper) mapEmphasis(e *ast.Emphasis, parent source.NodeID) {
	kind := source.KindEmphasis
	if e.Level == 2 {
		kind = source.KindStrong
	}
	m.mapInline(e, kind, parent, nil)
}

// mapRawHTML maps inline HTML from its segment list.
func (m *mapper) mapRawHTML(raw *ast.RawHTML, parent source.NodeID) {
	start, stop := -1, -1
	for i := range raw.Segments.Len() {
		seg := raw.Segments.At(i)
		if start == -1 || seg.Start < start {
			start = seg.Start
		}
		if seg.Stop > stop {
			stop = seg.Stop
		}
	}
	if start == -1 {
		return
	}
	m.file.Arena.New(source.KindRaw, source.Span{Start: start, End: stop}, parent)
}

// blockRange resolves a block node's byte range from its retained lines.
// Container blocks (lists, list items, blockquotes) retain no lines of
// their own; their range is the union of their children. HTML blocks
// keep their final line in a separate closure segment.
func (m *mapper) blockRange(gmNode ast.Node) (int, int, bool) {
	if gmNode.Type() == ast.TypeInline {
		return inlineRange(gmNode)
	}

	start, stop := -1, -1
	if lines := gmNode.Lines(); lines.Len() > 0 {
		start = lines.At(0).Start
		stop = lines.At(lines.Len() - 1).Stop
	}

	if hb, ok := gmNode.(*ast.HTMLBlock); ok && hb.HasClosure() {
		if start == -1 || hb.ClosureLine.Start < start {
			start = hb.ClosureLine.Start
		}
		if hb.ClosureLine.Stop > stop {
			stop = hb.ClosureLine.Stop
		}
	}

	if start != -1 {
		return start, stop, true
	}

	for child := gmNode.FirstChild(); child != nil; child = child.NextSibling() {
		cs, cstop, ok := m.blockRange(child)
		if !ok {
			continue
		}
		if start == -1 || cs < start {
			start = cs
		}
		if cstop > stop {
			stop = cstop
		}
	}

	if start == -1 {
		return 0, 0, false
	}
	return start, stop, true
}

// inlineRange resolves an inline node's byte range from its text
// segments, recursing through nested inline structure.
func inlineRange(gmNode ast.Node) (int, int, bool) {
	if t, ok := gmNode.(*ast.Text); ok {
		if t.Segment.Len() == 0 {
			return 0, 0, false
		}
		return t.Segment.Start, t.Segment.Stop, true
	}

	if raw, ok := gmNode.(*ast.RawHTML); ok {
		start, stop := -1, -1
		for i := range raw.Segments.Len() {
			seg := raw.Segments.At(i)
			if start == -1 || seg.Start < start {
				start = seg.Start
			}
			if seg.Stop > stop {
				stop = seg.Stop
			}
		}
		if start == -1 {
			return 0, 0, false
		}
		return start, stop, true
	}

	start, stop := -1, -1
	for child := gmNode.FirstChild(); child != nil; child = child.NextSibling() {
		cs, cstop, ok := inlineRange(child)
		if !ok {
			continue
		}
		if start == -1 || cs < start {
			start = cs
		}
		if cstop > stop {
			stop = cstop
		}
	}

	if start == -1 {
		return 0, 0, false
	}
	return start, stop, true
}

// expandLines widens a byte range to whole lines, excluding the trailing
// newline of the last line.
func (m *mapper) expandLines(start, stop int) source.Span {
	if stop <= start {
		return source.Span{Start: start, End: stop}
	}

	startLine, _ := m.file.LineAt(start)
	endLine, _ := m.file.LineAt(stop - 1)
	if startLine == 0 || endLine == 0 {
		return source.Span{Start: start, End: stop}
	}

	return source.Span{
		Start: m.file.Lines[startLine-1].StartOffset,
		End:   m.file.Lines[endLine-1].NewlineStart,
	}
}

// linkProps builds the props for link and image nodes.
func linkProps(destination, title []byte) map[string]any {
	return map[string]any{
		"destination": string(destination),
		"title":       string(title),
	}
}
