package check

import (
	"cmp"

	"github.com/yaklabco/lintcore/pkg/config"
	"github.com/yaklabco/lintcore/pkg/source"
)

// CorrectionStatus describes what happened (or will happen) to an
// offense with respect to automatic correction.
type CorrectionStatus string

// Correction statuses, in the order the eligibility chain assigns them.
const (
	// StatusUnsupported means the check has no correction capability.
	StatusUnsupported CorrectionStatus = "unsupported"

	// StatusUncorrected means correction was possible but not performed:
	// autocorrect is off, or no safe fix exists for this instance.
	StatusUncorrected CorrectionStatus = "uncorrected"

	// StatusCorrected means a correction was (or already had been)
	// queued for the offense's node.
	StatusCorrected CorrectionStatus = "corrected"

	// StatusCorrectedWithTodo means the offense was suppressed by
	// inserting a todo directive instead of fixing it.
	StatusCorrectedWithTodo CorrectionStatus = "corrected_with_todo"

	// StatusDisabled means the offense sits on a line covered by an
	// inline disable directive.
	StatusDisabled CorrectionStatus = "disabled"
)

// Offense is a single recorded violation. Offenses are immutable once
// recorded; the engine copies them out of runtimes by value.
type Offense struct {
	// Check is the qualified name of the check that recorded the offense.
	Check string

	// Severity is the resolved effective severity.
	Severity config.Severity

	// Location is the resolved source position.
	Location source.Location

	// Message is the annotated offense message.
	Message string

	// Status records the correction eligibility outcome.
	Status CorrectionStatus
}

// Disabled reports whether the offense was suppressed by an inline
// directive.
func (o *Offense) Disabled() bool {
	return o.Status == StatusDisabled
}

// Corrected reports whether a correction or todo suppression was queued.
func (o *Offense) Corrected() bool {
	return o.Status == StatusCorrected || o.Status == StatusCorrectedWithTodo
}

// Compare orders offenses by position, then check name, for
// deterministic output. Suitable for slices.SortFunc.
func Compare(a, b Offense) int {
	if c := cmp.Compare(a.Location.Span.Start, b.Location.Span.Start); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Location.Span.End, b.Location.Span.End); c != 0 {
		return c
	}
	return cmp.Compare(a.Check, b.Check)
}
