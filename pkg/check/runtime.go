package check

import (
	"fmt"

	"github.com/yaklabco/lintcore/pkg/config"
	"github.com/yaklabco/lintcore/pkg/directive"
	"github.com/yaklabco/lintcore/pkg/fix"
	"github.com/yaklabco/lintcore/pkg/source"
)

// Runtime is the per-check, per-file execution state. The engine
// constructs a fresh Runtime for every check on every file; ledgers and
// tracking sets start empty and are never reused. A Runtime is owned by
// a single goroutine and needs no locking.
type Runtime struct {
	check Check
	file  *source.File
	cfg   *config.CheckConfig
	opts  Options

	// fixer is resolved once at construction. correctable additionally
	// accounts for the suppression fallback.
	fixer       Fixer
	correctable bool

	offenses    []Offense
	corrections []fix.Correction

	// seen enforces location uniqueness across Record calls.
	seen map[source.Span]struct{}

	// corrected tracks nodes that already received a correction, so a
	// node visited twice yields one fix.
	corrected map[source.NodeID]struct{}

	// todoLines tracks lines that already received a todo directive.
	todoLines map[int]struct{}

	directives *directive.Index
}

// NewRuntime constructs the runtime for one check against one file.
// cfg is the merged configuration for the check; nil means defaults.
func NewRuntime(c Check, f *source.File, cfg *config.CheckConfig, opts Options) *Runtime {
	if cfg == nil {
		cfg = &config.CheckConfig{}
	}
	fixer, _ := c.(Fixer)
	return &Runtime{
		check:       c,
		file:        f,
		cfg:         cfg,
		opts:        opts,
		fixer:       fixer,
		correctable: fixer != nil || opts.SuppressUnfixable,
		seen:        make(map[source.Span]struct{}),
		corrected:   make(map[source.NodeID]struct{}),
	}
}

// Check returns the check this runtime executes.
func (rt *Runtime) Check() Check { return rt.check }

// Name returns the qualified check name.
func (rt *Runtime) Name() string { return rt.check.Name() }

// File returns the file under analysis.
func (rt *Runtime) File() *source.File { return rt.file }

// Config returns the merged check configuration. Never nil.
func (rt *Runtime) Config() *config.CheckConfig { return rt.cfg }

// Options returns the run-wide flags.
func (rt *Runtime) Options() Options { return rt.opts }

// Offenses returns the recorded offenses in record order.
func (rt *Runtime) Offenses() []Offense { return rt.offenses }

// Corrections returns the queued corrections in record order.
func (rt *Runtime) Corrections() []fix.Correction { return rt.corrections }

// ExternalDependencyChecksum returns the fingerprint of the check's
// out-of-band inputs under this runtime's configuration, or "" when the
// check has none.
func (rt *Runtime) ExternalDependencyChecksum() string {
	return Checksum(rt.check, rt.cfg)
}

// Locus names the region of a node an offense covers: a named sub-span
// of the node, or an explicit span. The zero Locus covers the node's
// full span.
type Locus struct {
	name     string
	span     source.Span
	explicit bool
}

// Expression is the locus covering a node's full span.
//
//nolint:gochecknoglobals // Shared zero value, read-only.
var Expression = Locus{}

// SubSpan returns the locus naming one of the node's sub-spans.
func SubSpan(name string) Locus { return Locus{name: name} }

// At returns the locus covering an explicit span.
func At(span source.Span) Locus { return Locus{span: span, explicit: true} }

// RecordOption customizes a single Record call.
type RecordOption func(*recordOptions)

type recordOptions struct {
	severity config.Severity
	callback func(Offense)
}

// WithSeverity bypasses severity resolution with an explicit value.
func WithSeverity(sev config.Severity) RecordOption {
	return func(ro *recordOptions) { ro.severity = sev }
}

// WithCallback invokes fn with the recorded offense. The callback is
// skipped for offenses disabled by inline directives.
func WithCallback(fn func(Offense)) RecordOption {
	return func(ro *recordOptions) { ro.callback = fn }
}

// Record registers one offense against a node.
//
// The locus resolves to a concrete span; recording a second offense at
// an identical span is a silent no-op. A nil node, a node the file's
// arena does not own, or an unknown sub-span name is a programming error
// in the check and panics.
func (rt *Runtime) Record(node *source.Node, locus Locus, message string, opts ...RecordOption) {
	if node == nil {
		panic(fmt.Sprintf("check %s: offense recorded on nil node", rt.Name()))
	}
	if rt.file.Arena.Node(node.ID) == nil {
		panic(fmt.Sprintf("check %s: offense recorded on unknown node %d", rt.Name(), node.ID))
	}

	var ro recordOptions
	for _, opt := range opts {
		opt(&ro)
	}

	span := rt.resolveSpan(node, locus)
	if _, dup := rt.seen[span]; dup {
		return
	}
	rt.seen[span] = struct{}{}

	loc := rt.file.Location(span)

	var status CorrectionStatus
	if rt.disabledAt(loc.StartLine) {
		status = StatusDisabled
	} else {
		status = rt.eligibility(node, loc.StartLine)
	}

	offense := Offense{
		Check:    rt.Name(),
		Severity: ResolveSeverity(ro.severity, rt.Name(), rt.cfg, rt.opts.logger()),
		Location: loc,
		Message:  rt.annotate(message),
		Status:   status,
	}
	rt.offenses = append(rt.offenses, offense)

	if ro.callback != nil && status != StatusDisabled {
		ro.callback(offense)
	}
}

// RecordAt registers an offense at an explicit span with no originating
// parse node. A span node is minted in the arena so the offense
// participates in node-keyed correction tracking like any other.
func (rt *Runtime) RecordAt(span source.Span, message string, opts ...RecordOption) {
	arena := rt.file.Arena
	id := arena.New(source.KindSpan, span, arena.Root())
	rt.Record(arena.Node(id), At(span), message, opts...)
}

// resolveSpan maps a locus to the concrete span it covers.
func (rt *Runtime) resolveSpan(node *source.Node, locus Locus) source.Span {
	if locus.explicit {
		return locus.span
	}
	name := locus.name
	if name == "" {
		name = "expression"
	}
	span, ok := node.SubSpan(name)
	if !ok {
		panic(fmt.Sprintf("check %s: unknown sub-span %q on %s node %d",
			rt.Name(), name, node.Kind, node.ID))
	}
	return span
}

// annotate applies the message transforms: default template for empty
// messages, check-name prefix, configured details suffix.
func (rt *Runtime) annotate(message string) string {
	if message == "" {
		message = rt.check.Message()
	}
	if rt.opts.DisplayCheckNames {
		message = rt.Name() + ": " + message
	}
	if rt.opts.ExtraDetails && rt.cfg.Details != "" {
		message += " (" + rt.cfg.Details + ")"
	}
	return message
}

// disabledAt reports whether an inline directive disables this check at
// the line.
func (rt *Runtime) disabledAt(line int) bool {
	if rt.opts.IgnoreDirectives {
		return false
	}
	return rt.directiveIndex().Disabled(rt.Name(), line)
}

func (rt *Runtime) directiveIndex() *directive.Index {
	if rt.directives == nil {
		rt.directives = directive.NewIndex(rt.file)
	}
	return rt.directives
}

// eligibility runs the correction decision chain for an offense on node.
// The order is fixed: capability, then the run and check autocorrect
// flags, then the per-node dedup, then the fix attempt or the
// suppression fallback.
func (rt *Runtime) eligibility(node *source.Node, line int) CorrectionStatus {
	switch {
	case !rt.correctable:
		return StatusUnsupported
	case !rt.autocorrect():
		return StatusUncorrected
	}

	if _, done := rt.corrected[node.ID]; done {
		return StatusCorrected
	}
	rt.corrected[node.ID] = struct{}{}

	if rt.fixer != nil {
		fn := rt.fixer.Fix(rt, node)
		if fn == nil {
			return StatusUncorrected
		}
		rt.corrections = append(rt.corrections, fix.Correction{
			Fn:    fn,
			Node:  node.ID,
			Check: rt.Name(),
		})
		return StatusCorrected
	}

	// Correctable without a fixer implies the suppression fallback.
	return rt.suppress(node.ID, line)
}

// autocorrect reports whether corrections may be queued: the run flag is
// on and the check configuration does not opt out.
func (rt *Runtime) autocorrect() bool {
	if !rt.opts.AutoCorrect {
		return false
	}
	return rt.cfg.AutoCorrect == nil || *rt.cfg.AutoCorrect
}

// suppress queues a todo directive insertion for the offense line. Two
// offenses on one line share a single directive.
func (rt *Runtime) suppress(id source.NodeID, line int) CorrectionStatus {
	if rt.todoLines == nil {
		rt.todoLines = make(map[int]struct{})
	}
	if _, done := rt.todoLines[line]; done {
		return StatusCorrectedWithTodo
	}
	rt.todoLines[line] = struct{}{}

	file, idx, name := rt.file, rt.directiveIndex(), rt.Name()
	fn := func(b *fix.EditBuilder) error {
		edit, ok := directive.TodoEdit(file, idx, line, name)
		if !ok {
			return fmt.Errorf("no line %d to suppress", line)
		}
		b.Replace(edit.Span, edit.NewText)
		return nil
	}
	rt.corrections = append(rt.corrections, fix.Correction{
		Fn:          fn,
		Node:        id,
		Check:       name,
		Suppression: true,
	})
	return StatusCorrectedWithTodo
}
