package checks

import (
	"fmt"

	"github.com/yaklabco/lintcore/pkg/check"
	"github.com/yaklabco/lintcore/pkg/source"
)

// defaultMaxSectionLines is the default maximum section body length.
const defaultMaxSectionLines = 50

// defaultMaxCodeBlockLines is the default maximum code block length.
const defaultMaxCodeBlockLines = 30

// SectionLength flags sections whose body exceeds the configured number
// of lines. A section runs from a heading to the next heading of the
// same or higher level, or to the end of the file.
type SectionLength struct {
	check.Base
}

// NewSectionLength creates the section length check.
func NewSectionLength() *SectionLength {
	return &SectionLength{
		Base: check.NewBase(
			"Metrics/SectionLength",
			"Sections should not have too many lines",
			"Section has too many lines",
			true,
		),
	}
}

// Kinds subscribes to heading nodes.
func (c *SectionLength) Kinds() []source.NodeKind {
	return []source.NodeKind{source.KindHeading}
}

// InspectNode measures the section body below the heading.
func (c *SectionLength) InspectNode(rt *check.Runtime, node *source.Node) {
	f := rt.File()
	maxLines := rt.Config().OptionInt("Max", defaultMaxSectionLines)

	headingEnd := lastSpanLine(f, node.Span)
	if headingEnd == 0 {
		return
	}

	sectionEnd := lastContentLine(f)
	level := node.PropInt("level", 1)

	for _, id := range f.Arena.NodesByKind(source.KindHeading) {
		other := f.Arena.Node(id)
		if other.Span.Start <= node.Span.Start {
			continue
		}
		if other.PropInt("level", 1) > level {
			continue
		}
		line, _ := f.LineAt(other.Span.Start)
		sectionEnd = line - 1
		break
	}

	body := sectionEnd - headingEnd
	if body <= maxLines {
		return
	}

	rt.Record(node, check.Expression,
		fmt.Sprintf("Section has too many lines (found %d, max %d)", body, maxLines))
}

// CodeBlockLength flags code blocks spanning more than the configured
// number of lines, fences included.
type CodeBlockLength struct {
	check.Base
}

// NewCodeBlockLength creates the code block length check.
func NewCodeBlockLength() *CodeBlockLength {
	return &CodeBlockLength{
		Base: check.NewBase(
			"Metrics/CodeBlockLength",
			"Code blocks should not span too many lines",
			"Code block has too many lines",
			true,
		),
	}
}

// Kinds subscribes to code block nodes.
func (c *CodeBlockLength) Kinds() []source.NodeKind {
	return []source.NodeKind{source.KindCodeBlock}
}

// InspectNode counts the lines the block's span covers.
func (c *CodeBlockLength) InspectNode(rt *check.Runtime, node *source.Node) {
	f := rt.File()
	maxLines := rt.Config().OptionInt("Max", defaultMaxCodeBlockLines)

	start, _ := f.LineAt(node.Span.Start)
	end := lastSpanLine(f, node.Span)
	if start == 0 || end == 0 {
		return
	}

	lines := end - start + 1
	if lines <= maxLines {
		return
	}

	rt.Record(node, check.Expression,
		fmt.Sprintf("Code block has too many lines (found %d, max %d)", lines, maxLines))
}

// lastSpanLine returns the line of the last byte a span covers, or the
// start line for empty spans. Returns 0 for unresolvable spans.
func lastSpanLine(f *source.File, span source.Span) int {
	offset := span.End - 1
	if span.Len() == 0 {
		offset = span.Start
	}
	line, _ := f.LineAt(offset)
	return line
}

// lastContentLine returns the last line number, not counting the empty
// line the index carries after a final newline.
func lastContentLine(f *source.File) int {
	last := f.LineCount()
	if last > 0 && len(f.Content) > 0 && f.Content[len(f.Content)-1] == '\n' {
		last--
	}
	return last
}
