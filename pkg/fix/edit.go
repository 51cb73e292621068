// Package fix provides text edit types, correction wrapping, and edit
// application logic for autocorrection.
package fix

import "github.com/yaklabco/lintcore/pkg/source"

// TextEdit replaces one byte span of a file with new text. Edits staged
// through an EditBuilder carry the qualified name of the check that
// produced them, so overlap and bounds failures can name their source.
type TextEdit struct {
	// Span is the byte range the edit replaces. An empty span inserts.
	Span source.Span

	// NewText is the replacement text. Empty deletes the span.
	NewText string

	// Check is the qualified name of the originating check. Empty for
	// edits staged outside a correction.
	Check string
}

// IsInsert reports whether the edit adds text without removing any.
func (e TextEdit) IsInsert() bool {
	return e.Span.Len() == 0
}

// IsDelete reports whether the edit removes bytes without replacement.
func (e TextEdit) IsDelete() bool {
	return e.NewText == "" && e.Span.Len() > 0
}

// EditBuilder accumulates the text edits of one file pass. Correction
// edit functions receive a builder and stage their edits on it; the
// active correction's check name is stamped on every staged edit.
type EditBuilder struct {
	Edits []TextEdit

	check string
}

// NewEditBuilder creates an empty EditBuilder.
func NewEditBuilder() *EditBuilder {
	return &EditBuilder{}
}

// Attribute sets the check name stamped on subsequently staged edits.
func (b *EditBuilder) Attribute(check string) {
	b.check = check
}

// Replace stages an edit that replaces the span's bytes with newText.
func (b *EditBuilder) Replace(span source.Span, newText string) {
	b.Edits = append(b.Edits, TextEdit{Span: span, NewText: newText, Check: b.check})
}

// ReplaceRange stages an edit that replaces bytes [start, end) with newText.
func (b *EditBuilder) ReplaceRange(start, end int, newText string) {
	b.Replace(source.Span{Start: start, End: end}, newText)
}

// Insert stages an edit that inserts text at the given offset.
func (b *EditBuilder) Insert(offset int, text string) {
	b.Replace(source.Span{Start: offset, End: offset}, text)
}

// Delete stages an edit that deletes the span's bytes.
func (b *EditBuilder) Delete(span source.Span) {
	b.Replace(span, "")
}

// DeleteRange stages an edit that deletes bytes [start, end).
func (b *EditBuilder) DeleteRange(start, end int) {
	b.ReplaceRange(start, end, "")
}
