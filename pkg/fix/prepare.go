package fix

import (
	"cmp"
	"fmt"
	"slices"
)

// EditError reports an edit whose span cannot apply to the file.
type EditError struct {
	Edit   TextEdit
	Reason string
}

func (e *EditError) Error() string {
	return fmt.Sprintf("%s: edit [%d:%d): %s",
		editSource(e.Edit), e.Edit.Span.Start, e.Edit.Span.End, e.Reason)
}

// OverlapError reports two edits competing for the same bytes.
type OverlapError struct {
	First  TextEdit
	Second TextEdit
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("edit [%d:%d) by %s overlaps edit [%d:%d) by %s",
		e.First.Span.Start, e.First.Span.End, editSource(e.First),
		e.Second.Span.Start, e.Second.Span.End, editSource(e.Second))
}

func editSource(e TextEdit) string {
	if e.Check == "" {
		return "(unattributed)"
	}
	return e.Check
}

// bounds rejects spans that cannot index the file's content.
func (e TextEdit) bounds(contentLen int) error {
	switch {
	case e.Span.Start < 0:
		return &EditError{Edit: e, Reason: "negative start"}
	case e.Span.End < e.Span.Start:
		return &EditError{Edit: e, Reason: "end before start"}
	case e.Span.End > contentLen:
		return &EditError{Edit: e, Reason: fmt.Sprintf("end %d past content length %d", e.Span.End, contentLen)}
	}
	return nil
}

// PrepareEdits validates and sorts edits, rejecting any overlap. Use it
// when every staged edit must apply or none should.
func PrepareEdits(edits []TextEdit, contentLen int) ([]TextEdit, error) {
	if len(edits) == 0 {
		return edits, nil
	}
	for _, e := range edits {
		if err := e.bounds(contentLen); err != nil {
			return nil, err
		}
	}

	sorted := sortedCopy(edits)
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Span.Start < sorted[i-1].Span.End {
			return nil, &OverlapError{First: sorted[i-1], Second: sorted[i]}
		}
	}
	return sorted, nil
}

// Resolution is the outcome of de-conflicting staged edits.
type Resolution struct {
	// Accepted holds the edits to apply, sorted and non-overlapping.
	Accepted []TextEdit

	// Skipped holds edits dropped because they overlapped an accepted
	// edit and could not be merged. A later fix pass may retry them.
	Skipped []TextEdit

	// Merged counts deletions folded into an accepted edit.
	Merged int
}

// Resolve validates, sorts, and de-conflicts staged edits. Overlapping
// deletions merge into one edit covering their union; any other overlap
// keeps the earlier edit and skips the later one. The merged edit keeps
// the attribution of the earliest deletion. Unlike PrepareEdits, Resolve
// only fails on out-of-bounds spans, never on overlap.
func Resolve(edits []TextEdit, contentLen int) (Resolution, error) {
	var res Resolution
	if len(edits) == 0 {
		return res, nil
	}
	for _, e := range edits {
		if err := e.bounds(contentLen); err != nil {
			return res, err
		}
	}

	sorted := sortedCopy(edits)
	current := sorted[0]
	for _, e := range sorted[1:] {
		switch {
		case e.Span.Start >= current.Span.End:
			res.Accepted = append(res.Accepted, current)
			current = e
		case current.IsDelete() && e.NewText == "":
			current.Span.End = max(current.Span.End, e.Span.End)
			res.Merged++
		default:
			res.Skipped = append(res.Skipped, e)
		}
	}
	res.Accepted = append(res.Accepted, current)
	return res, nil
}

// sortedCopy orders edits by span start, then end. Staging order breaks
// remaining ties, so application is deterministic.
func sortedCopy(edits []TextEdit) []TextEdit {
	sorted := slices.Clone(edits)
	slices.SortStableFunc(sorted, func(a, b TextEdit) int {
		if c := cmp.Compare(a.Span.Start, b.Span.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.Span.End, b.Span.End)
	})
	return sorted
}
