package fix

// ApplyEdits applies resolved edits to content and returns the rewritten
// bytes. Edits must be sorted and non-overlapping (PrepareEdits or
// Resolve). The input slice is left untouched.
func ApplyEdits(content []byte, edits []TextEdit) []byte {
	if len(edits) == 0 {
		return content
	}

	size := len(content)
	for i := range edits {
		size += len(edits[i].NewText) - edits[i].Span.Len()
	}

	out := make([]byte, 0, size)
	cursor := 0
	for i := range edits {
		out = append(out, content[cursor:edits[i].Span.Start]...)
		out = append(out, edits[i].NewText...)
		cursor = edits[i].Span.End
	}
	return append(out, content[cursor:]...)
}
