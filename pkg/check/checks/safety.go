package checks

import (
	"fmt"
	"regexp"

	"github.com/yaklabco/lintcore/pkg/check"
	"github.com/yaklabco/lintcore/pkg/fix"
	"github.com/yaklabco/lintcore/pkg/source"
)

// ReversedLink detects reversed link syntax: (text)[url] instead of
// [text](url). The reversed form renders as literal text, so readers
// lose the link entirely.
type ReversedLink struct {
	check.Base
}

// NewReversedLink creates the reversed link check.
func NewReversedLink() *ReversedLink {
	return &ReversedLink{
		Base: check.NewBase(
			"Safety/ReversedLink",
			"Reversed link syntax (text)[url] should be [text](url)",
			"Reversed link syntax",
			true,
		),
	}
}

// reversedLinkPattern matches (text)[url] patterns.
//
//nolint:gochecknoglobals // Compiled once, read-only.
var reversedLinkPattern = regexp.MustCompile(`\(([^)]*)\)\[([^\]]*)\]`)

// InspectSource scans each line outside code blocks for reversed links.
func (c *ReversedLink) InspectSource(rt *check.Runtime) {
	f := rt.File()
	inCode := codeBlockLines(f)

	for line := 1; line <= f.LineCount(); line++ {
		if inCode[line] {
			continue
		}

		content := f.LineContent(line)
		start := f.LineSpan(line).Start
		for _, m := range reversedLinkPattern.FindAllIndex(content, -1) {
			rt.RecordAt(source.Span{Start: start + m[0], End: start + m[1]}, "")
		}
	}
}

// Fix swaps the bracket pairs back into link order.
func (c *ReversedLink) Fix(rt *check.Runtime, node *source.Node) fix.EditFn {
	raw := rt.File().Text(node.Span)
	m := reversedLinkPattern.FindSubmatchIndex(raw)
	if m == nil {
		return nil
	}

	text := string(raw[m[2]:m[3]])
	url := string(raw[m[4]:m[5]])
	span := node.Span
	return func(b *fix.EditBuilder) error {
		b.Replace(span, fmt.Sprintf("[%s](%s)", text, url))
		return nil
	}
}
