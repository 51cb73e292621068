// Package check defines the check contract, the per-file runtime that
// records offenses and decides correction eligibility, and the registry
// of known checks.
package check

import (
	"github.com/yaklabco/lintcore/pkg/config"
	"github.com/yaklabco/lintcore/pkg/fix"
	"github.com/yaklabco/lintcore/pkg/source"
)

// Department names for the built-in checks.
const (
	DeptSafety  = "Safety"
	DeptLayout  = "Layout"
	DeptStyle   = "Style"
	DeptMetrics = "Metrics"
)

// Check defines the interface that all checks must implement.
type Check interface {
	// Name returns the qualified check name, "Department/CheckName".
	Name() string

	// Description returns a short description of what the check looks for.
	Description() string

	// Message returns the default offense message, used when Record is
	// called with an empty message.
	Message() string

	// DefaultEnabled returns whether the check runs without explicit
	// configuration.
	DefaultEnabled() bool
}

// NodeInspector is implemented by checks that examine parsed nodes.
// The engine dispatches every arena node whose kind appears in Kinds to
// InspectNode, in document order, after InspectSource hooks have run.
type NodeInspector interface {
	Check

	// Kinds returns the node kinds the check subscribes to.
	Kinds() []source.NodeKind

	// InspectNode examines one node and records offenses on the runtime.
	InspectNode(rt *Runtime, node *source.Node)
}

// SourceInspector is implemented by checks that examine raw file content
// rather than (or before) parsed nodes. It runs once per file.
type SourceInspector interface {
	Check

	// InspectSource examines the file and records offenses on the runtime.
	InspectSource(rt *Runtime)
}

// Fixer is implemented by checks that can repair the offenses they
// record. Fix returns the edit routine for one offense, or nil when this
// particular instance is not safely fixable. Implementing Fixer is what
// gives a check correction capability; it is never probed per call.
type Fixer interface {
	Check

	// Fix returns the edit routine for an offense recorded on node.
	Fix(rt *Runtime, node *source.Node) fix.EditFn
}

// ExternalDependency is implemented by checks whose verdicts depend on
// inputs outside the analyzed file, such as a word list read from disk.
// The result cache folds the checksum into its keys so stale entries are
// invalidated when the dependency changes. The merged configuration is
// passed in because checks are stateless; it names the inputs.
type ExternalDependency interface {
	// ExternalDependencyChecksum returns a fingerprint of the external
	// inputs. An empty string means no dependency.
	ExternalDependencyChecksum(cfg *config.CheckConfig) string
}

// Checksum returns the external dependency checksum for a check under
// the merged configuration, or "" when the check has none.
func Checksum(c Check, cfg *config.CheckConfig) string {
	if ed, ok := c.(ExternalDependency); ok {
		return ed.ExternalDependencyChecksum(cfg)
	}
	return ""
}

// CanFix reports whether the check implements Fixer.
func CanFix(c Check) bool {
	_, ok := c.(Fixer)
	return ok
}

// Enabled reports whether the check is enabled under the merged
// configuration, falling back to the check's default.
func Enabled(c Check, cfg *config.CheckConfig) bool {
	if cfg != nil && cfg.Enabled != nil {
		return *cfg.Enabled
	}
	return c.DefaultEnabled()
}
