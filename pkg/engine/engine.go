// Package engine orchestrates per-file analysis: parsing, check
// dispatch over the node arena, offense collection, and correction
// application.
package engine

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/lintcore/pkg/check"
	"github.com/yaklabco/lintcore/pkg/config"
	"github.com/yaklabco/lintcore/pkg/fix"
	"github.com/yaklabco/lintcore/pkg/source"
)

// FileResult holds everything one analysis pass over a file produced.
type FileResult struct {
	// File is the parsed file.
	File *source.File

	// Offenses are the recorded violations in position order. Offenses
	// disabled by inline directives are filtered out.
	Offenses []check.Offense

	// Edits are the validated, conflict-filtered edits ready to apply.
	// Empty when autocorrect is off or nothing is fixable.
	Edits []fix.TextEdit

	// SkippedEdits were dropped because they overlap an accepted edit.
	// A later pass usually picks them up.
	SkippedEdits []fix.TextEdit

	// EditConflicts reports whether any edits were skipped or the edit
	// set failed validation.
	EditConflicts bool

	// CheckErrors maps qualified check names to correction failures.
	// Sibling checks' results are unaffected.
	CheckErrors map[string]error
}

// HasOffenses reports whether any offenses were recorded.
func (fr *FileResult) HasOffenses() bool {
	return len(fr.Offenses) > 0
}

// HasEdits reports whether any applicable edits were produced.
func (fr *FileResult) HasEdits() bool {
	return len(fr.Edits) > 0
}

// CorrectedCount returns the number of offenses with a queued
// correction or todo suppression.
func (fr *FileResult) CorrectedCount() int {
	count := 0
	for i := range fr.Offenses {
		if fr.Offenses[i].Corrected() {
			count++
		}
	}
	return count
}

// Engine runs resolved checks against parsed files.
type Engine struct {
	// Parser parses raw content into source files.
	Parser Parser

	// Registry holds the known checks.
	Registry *check.Registry

	// Logger receives runtime warnings. Nil uses the charmbracelet
	// default.
	Logger *log.Logger
}

// New creates an engine over the given parser and registry.
func New(parser Parser, registry *check.Registry) *Engine {
	return &Engine{Parser: parser, Registry: registry}
}

// nodeDispatch binds a node-inspecting check to its runtime for the
// duration of one file pass.
type nodeDispatch struct {
	inspector check.NodeInspector
	rt        *check.Runtime
}

// InspectFile parses content and runs every enabled, relevant check
// against it. Checks run sequentially per file: the whole-file hook
// first, then one arena walk dispatching nodes by kind. Corrections
// are turned into a validated, conflict-filtered edit set.
func (e *Engine) InspectFile(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
) (*FileResult, error) {
	f, err := e.Parser.Parse(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	opts := OptionsFromConfig(cfg, e.Logger)

	result := &FileResult{
		File:        f,
		CheckErrors: make(map[string]error),
	}

	var runtimes []*check.Runtime
	byKind := make(map[source.NodeKind][]nodeDispatch)

	root := ""
	if cfg != nil {
		root = cfg.Root
	}

	for _, rc := range Resolve(e.Registry, cfg) {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("analysis cancelled: %w", err)
		}
		if !check.Relevant(rc.Config, root, path) {
			continue
		}

		rt := check.NewRuntime(rc.Check, f, rc.Config, opts)
		runtimes = append(runtimes, rt)

		if si, ok := rc.Check.(check.SourceInspector); ok {
			si.InspectSource(rt)
		}
		if ni, ok := rc.Check.(check.NodeInspector); ok {
			for _, kind := range ni.Kinds() {
				byKind[kind] = append(byKind[kind], nodeDispatch{inspector: ni, rt: rt})
			}
		}
	}

	if len(byKind) > 0 {
		f.Arena.Walk(func(node *source.Node) bool {
			if ctx.Err() != nil {
				return false
			}
			for _, d := range byKind[node.Kind] {
				d.inspector.InspectNode(d.rt, node)
			}
			return true
		})
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("analysis cancelled: %w", err)
		}
	}

	var corrections []fix.Correction
	for _, rt := range runtimes {
		for _, off := range rt.Offenses() {
			if off.Disabled() {
				continue
			}
			result.Offenses = append(result.Offenses, off)
		}
		corrections = append(corrections, rt.Corrections()...)
	}
	slices.SortFunc(result.Offenses, check.Compare)

	e.applyCorrections(result, corrections, len(content))

	return result, nil
}

// applyCorrections materializes queued corrections into edits. A
// failing correction is attributed to its check; the rest still apply.
func (e *Engine) applyCorrections(result *FileResult, corrections []fix.Correction, contentLen int) {
	if len(corrections) == 0 {
		return
	}

	builder := fix.NewEditBuilder()
	for i := range corrections {
		if err := corrections[i].Call(builder); err != nil {
			name := corrections[i].Check
			result.CheckErrors[name] = errors.Join(result.CheckErrors[name], err)
		}
	}
	if len(builder.Edits) == 0 {
		return
	}

	res, err := fix.Resolve(builder.Edits, contentLen)
	if err != nil {
		result.EditConflicts = true
		return
	}
	result.Edits = res.Accepted
	result.SkippedEdits = res.Skipped
	result.EditConflicts = len(res.Skipped) > 0
}

// DependencyChecksums fingerprints the external inputs of the resolved
// checks, keyed by qualified name. Checks without external inputs are
// omitted. The result cache folds these into its keys.
func DependencyChecksums(resolved []ResolvedCheck) map[string]string {
	var sums map[string]string
	for _, rc := range resolved {
		if sum := check.Checksum(rc.Check, rc.Config); sum != "" {
			if sums == nil {
				sums = make(map[string]string)
			}
			sums[rc.Check.Name()] = sum
		}
	}
	return sums
}
