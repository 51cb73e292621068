package fix

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
)

// Diff is a unified line diff between two versions of a file. Dry-run
// fix passes produce one per modified file.
type Diff struct {
	// Path is the file path for the diff header.
	Path string

	// Hunks contains the diff hunks.
	Hunks []DiffHunk

	// Additions is the number of lines added.
	Additions int

	// Deletions is the number of lines removed.
	Deletions int
}

// DiffHunk groups a run of nearby changes with surrounding context.
type DiffHunk struct {
	// OriginalStart is the 1-based first line of the hunk in the original.
	OriginalStart int

	// OriginalCount is the number of original lines the hunk spans.
	OriginalCount int

	// ModifiedStart is the 1-based first line of the hunk in the modified.
	ModifiedStart int

	// ModifiedCount is the number of modified lines the hunk spans.
	ModifiedCount int

	// Lines are the hunk's lines, without diff prefixes.
	Lines []DiffLine
}

// DiffLine is a single line in a hunk.
type DiffLine struct {
	Kind    DiffLineKind
	Content string
}

// DiffLineKind classifies a hunk line.
type DiffLineKind int

const (
	// DiffLineContext is an unchanged line shared by both versions.
	DiffLineContext DiffLineKind = iota

	// DiffLineAdd is a line present only in the modified version.
	DiffLineAdd

	// DiffLineRemove is a line present only in the original version.
	DiffLineRemove
)

// contextLines is the number of shared lines shown around each change.
const contextLines = 3

// GenerateDiff computes a unified diff between two versions of a file.
// Returns nil when the versions are line-identical.
func GenerateDiff(path string, original, modified []byte) *Diff {
	ops := diffOps(diffSplit(original), diffSplit(modified))

	changed := slices.ContainsFunc(ops, func(op diffOp) bool {
		return op.kind != DiffLineContext
	})
	if !changed {
		return nil
	}

	d := &Diff{Path: path, Hunks: groupHunks(ops)}
	for _, hunk := range d.Hunks {
		for _, line := range hunk.Lines {
			switch line.Kind {
			case DiffLineAdd:
				d.Additions++
			case DiffLineRemove:
				d.Deletions++
			}
		}
	}
	return d
}

// String renders the diff in unified format.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n+++ b/%s\n", path, path)
	for _, hunk := range d.Hunks {
		fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n",
			hunk.OriginalStart, hunk.OriginalCount,
			hunk.ModifiedStart, hunk.ModifiedCount)
		for _, line := range hunk.Lines {
			b.WriteString(linePrefix(line.Kind))
			b.WriteString(line.Content)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// HasChanges reports whether the diff contains any hunks.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

func linePrefix(kind DiffLineKind) string {
	switch kind {
	case DiffLineAdd:
		return "+"
	case DiffLineRemove:
		return "-"
	default:
		return " "
	}
}

// diffSplit splits content into lines without their newlines. A trailing
// newline does not produce an extra empty line.
func diffSplit(content []byte) []string {
	if len(content) == 0 {
		return nil
	}

	parts := bytes.Split(content, []byte("\n"))
	if len(parts[len(parts)-1]) == 0 {
		parts = parts[:len(parts)-1]
	}

	lines := make([]string, len(parts))
	for i, p := range parts {
		lines[i] = string(p)
	}
	return lines
}

// diffOp is one step of the edit script between the two line slices.
type diffOp struct {
	kind    DiffLineKind
	content string
}

// diffOps derives the full edit script by backtracking a
// longest-common-subsequence table. Removes precede adds within a
// changed region.
func diffOps(orig, mod []string) []diffOp {
	table := lcsTable(orig, mod)

	var ops []diffOp
	i, j := len(orig), len(mod)
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && orig[i-1] == mod[j-1]:
			ops = append(ops, diffOp{DiffLineContext, orig[i-1]})
			i--
			j--
		case j > 0 && (i == 0 || table[i][j-1] >= table[i-1][j]):
			ops = append(ops, diffOp{DiffLineAdd, mod[j-1]})
			j--
		default:
			ops = append(ops, diffOp{DiffLineRemove, orig[i-1]})
			i--
		}
	}
	slices.Reverse(ops)
	return ops
}

// lcsTable fills the dynamic-programming table where table[i][j] is the
// length of the longest common subsequence of orig[:i] and mod[:j].
func lcsTable(orig, mod []string) [][]int {
	table := make([][]int, len(orig)+1)
	for i := range table {
		table[i] = make([]int, len(mod)+1)
	}
	for i := 1; i <= len(orig); i++ {
		for j := 1; j <= len(mod); j++ {
			if orig[i-1] == mod[j-1] {
				table[i][j] = table[i-1][j-1] + 1
			} else {
				table[i][j] = max(table[i-1][j], table[i][j-1])
			}
		}
	}
	return table
}

// groupHunks folds the edit script into hunks. Changes separated by at
// most 2*contextLines shared lines land in the same hunk.
func groupHunks(ops []diffOp) []DiffHunk {
	type run struct{ start, end int }

	var runs []run
	for i := 0; i < len(ops); {
		if ops[i].kind == DiffLineContext {
			i++
			continue
		}
		j := i + 1
		for j < len(ops) && ops[j].kind != DiffLineContext {
			j++
		}
		runs = append(runs, run{i, j})
		i = j
	}
	if len(runs) == 0 {
		return nil
	}

	folded := []run{runs[0]}
	for _, r := range runs[1:] {
		last := &folded[len(folded)-1]
		if r.start-last.end <= 2*contextLines {
			last.end = r.end
		} else {
			folded = append(folded, r)
		}
	}

	hunks := make([]DiffHunk, 0, len(folded))
	for _, r := range folded {
		lo := max(r.start-contextLines, 0)
		hi := min(r.end+contextLines, len(ops))
		hunks = append(hunks, buildHunk(ops, lo, hi))
	}
	return hunks
}

// buildHunk renders ops[lo:hi] as one hunk, deriving the line numbers
// from the ops preceding it.
func buildHunk(ops []diffOp, lo, hi int) DiffHunk {
	hunk := DiffHunk{OriginalStart: 1, ModifiedStart: 1}
	for _, op := range ops[:lo] {
		if op.kind != DiffLineAdd {
			hunk.OriginalStart++
		}
		if op.kind != DiffLineRemove {
			hunk.ModifiedStart++
		}
	}
	for _, op := range ops[lo:hi] {
		hunk.Lines = append(hunk.Lines, DiffLine{Kind: op.kind, Content: op.content})
		if op.kind != DiffLineAdd {
			hunk.OriginalCount++
		}
		if op.kind != DiffLineRemove {
			hunk.ModifiedCount++
		}
	}
	return hunk
}
