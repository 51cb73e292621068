package fix

import (
	"fmt"

	"github.com/yaklabco/lintcore/pkg/source"
)

// EditFn stages the edits for one correction on a builder. Returning an
// error marks the correction as failed without touching the file.
type EditFn func(b *EditBuilder) error

// Correction is a deferred, fallible edit tied to the node and check that
// produced it. A Correction is only constructed after the eligibility chain
// has approved an edit for its node; applying it may still fail, in which
// case the failure carries node and check attribution.
type Correction struct {
	// Fn produces the edits when the corrector applies the correction.
	Fn EditFn

	// Node is the arena ID of the originating node.
	Node source.NodeID

	// Check is the qualified name of the originating check.
	Check string

	// Suppression marks corrections that insert a todo directive instead
	// of fixing the offense.
	Suppression bool
}

// Call invokes the edit function against the builder, attributing the
// staged edits to the correction's check. Any error is wrapped into a
// CorrectionError attributing the failing check and node.
func (c *Correction) Call(b *EditBuilder) error {
	if c.Fn == nil {
		return &CorrectionError{Check: c.Check, Node: c.Node, Err: fmt.Errorf("correction has no edit function")}
	}
	b.Attribute(c.Check)
	if err := c.Fn(b); err != nil {
		return &CorrectionError{Check: c.Check, Node: c.Node, Err: err}
	}
	return nil
}

// CorrectionError attributes a failed correction to the check and node that
// produced it, without losing the underlying cause.
type CorrectionError struct {
	// Check is the qualified name of the check whose fix failed.
	Check string

	// Node is the arena ID of the node the fix targeted.
	Node source.NodeID

	// Err is the underlying failure.
	Err error
}

func (e *CorrectionError) Error() string {
	return fmt.Sprintf("correction by %s failed on node %d: %v", e.Check, e.Node, e.Err)
}

func (e *CorrectionError) Unwrap() error {
	return e.Err
}
