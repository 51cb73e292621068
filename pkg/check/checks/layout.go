package checks

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yaklabco/lintcore/pkg/check"
	"github.com/yaklabco/lintcore/pkg/fix"
	"github.com/yaklabco/lintcore/pkg/source"
)

// TrailingWhitespace flags trailing spaces and tabs at line ends.
type TrailingWhitespace struct {
	check.Base
}

// NewTrailingWhitespace creates the trailing whitespace check.
func NewTrailingWhitespace() *TrailingWhitespace {
	return &TrailingWhitespace{
		Base: check.NewBase(
			"Layout/TrailingWhitespace",
			"Lines should not end with whitespace",
			"Trailing whitespace",
			true,
		),
	}
}

// InspectSource records one offense per line covering the trailing run.
func (c *TrailingWhitespace) InspectSource(rt *check.Runtime) {
	f := rt.File()

	var inCode map[int]bool
	if rt.Config().OptionBool("IgnoreCodeBlocks", false) {
		inCode = codeBlockLines(f)
	}

	for line := 1; line <= f.LineCount(); line++ {
		if inCode[line] {
			continue
		}

		content := f.LineContent(line)
		trimmed := len(bytes.TrimRight(content, " \t"))
		if trimmed == len(content) {
			continue
		}

		start := f.LineSpan(line).Start
		rt.RecordAt(source.Span{Start: start + trimmed, End: start + len(content)}, "")
	}
}

// Fix deletes the whitespace run.
func (c *TrailingWhitespace) Fix(_ *check.Runtime, node *source.Node) fix.EditFn {
	span := node.Span
	return func(b *fix.EditBuilder) error {
		b.Delete(span)
		return nil
	}
}

// HardTabs flags hard tab characters.
type HardTabs struct {
	check.Base
}

// NewHardTabs creates the hard tabs check.
func NewHardTabs() *HardTabs {
	return &HardTabs{
		Base: check.NewBase(
			"Layout/HardTabs",
			"Hard tabs should not be used",
			"Hard tab character found",
			true,
		),
	}
}

// InspectSource records one offense per line, at the first tab.
func (c *HardTabs) InspectSource(rt *check.Runtime) {
	f := rt.File()

	for line := 1; line <= f.LineCount(); line++ {
		content := f.LineContent(line)
		tab := bytes.IndexByte(content, '\t')
		if tab < 0 {
			continue
		}

		start := f.LineSpan(line).Start
		rt.RecordAt(source.Span{Start: start + tab, End: start + tab + 1}, "")
	}
}

// Fix replaces every tab on the offending line with spaces.
func (c *HardTabs) Fix(rt *check.Runtime, node *source.Node) fix.EditFn {
	f := rt.File()
	spacesPerTab := rt.Config().OptionInt("SpacesPerTab", 1)
	if spacesPerTab < 1 {
		spacesPerTab = 1
	}
	spaces := strings.Repeat(" ", spacesPerTab)

	line, _ := f.LineAt(node.Span.Start)
	if line == 0 {
		return nil
	}
	start := f.LineSpan(line).Start

	var tabs []int
	for i, ch := range f.LineContent(line) {
		if ch == '\t' {
			tabs = append(tabs, start+i)
		}
	}

	return func(b *fix.EditBuilder) error {
		for _, offset := range tabs {
			b.ReplaceRange(offset, offset+1, spaces)
		}
		return nil
	}
}

// FinalNewline ensures files end with exactly one newline.
type FinalNewline struct {
	check.Base
}

// NewFinalNewline creates the final newline check.
func NewFinalNewline() *FinalNewline {
	return &FinalNewline{
		Base: check.NewBase(
			"Layout/FinalNewline",
			"Files should end with a single newline character",
			"File should end with a newline",
			true,
		),
	}
}

// InspectSource checks the end of the file: a missing final newline, or
// extra trailing blank lines beyond the final one.
func (c *FinalNewline) InspectSource(rt *check.Runtime) {
	f := rt.File()
	n := len(f.Content)
	if n == 0 {
		return
	}

	if f.Content[n-1] != '\n' {
		rt.RecordAt(source.Span{Start: n, End: n}, "")
		return
	}

	maxTrailing := rt.Config().OptionInt("MaxTrailingBlankLines", 1)
	if maxTrailing < 1 {
		maxTrailing = 1
	}

	// The line index always ends with an empty line after a final
	// newline, so a cleanly terminated file counts one trailing blank.
	trailing := 0
	for line := f.LineCount(); line >= 1 && isBlankLine(f, line); line-- {
		trailing++
	}
	if trailing <= maxTrailing {
		return
	}

	first := f.LineCount() - trailing + 1
	last := first + (trailing - maxTrailing) - 1
	rt.RecordAt(lineRangeSpan(f, first, last),
		fmt.Sprintf("Too many trailing blank lines (found %d, max %d)", trailing, maxTrailing))
}

// Fix inserts the missing newline or deletes the excess blank lines.
func (c *FinalNewline) Fix(_ *check.Runtime, node *source.Node) fix.EditFn {
	span := node.Span
	if span.Len() == 0 {
		return func(b *fix.EditBuilder) error {
			b.Insert(span.Start, "\n")
			return nil
		}
	}
	return func(b *fix.EditBuilder) error {
		b.Delete(span)
		return nil
	}
}

// LineLength flags lines longer than the configured maximum. There is no
// safe automatic fix for prose, so the check has no correction
// capability; with the suppression fallback it degrades to todo
// directives.
type LineLength struct {
	check.Base
}

// NewLineLength creates the line length check.
func NewLineLength() *LineLength {
	return &LineLength{
		Base: check.NewBase(
			"Layout/LineLength",
			"Lines should not exceed the configured maximum length",
			"Line too long",
			true,
		),
	}
}

// defaultMaxLineLength is the default maximum line length.
const defaultMaxLineLength = 80

// InspectSource measures each line in bytes.
func (c *LineLength) InspectSource(rt *check.Runtime) {
	f := rt.File()
	maxLen := rt.Config().OptionInt("Max", defaultMaxLineLength)

	for line := 1; line <= f.LineCount(); line++ {
		content := f.LineContent(line)
		if len(content) <= maxLen {
			continue
		}

		start := f.LineSpan(line).Start
		rt.RecordAt(
			source.Span{Start: start + maxLen, End: start + len(content)},
			fmt.Sprintf("Line too long (%d > %d)", len(content), maxLen),
		)
	}
}
