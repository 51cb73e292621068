package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lintcore/pkg/check"
	"github.com/yaklabco/lintcore/pkg/config"
	"github.com/yaklabco/lintcore/pkg/engine"
	"github.com/yaklabco/lintcore/pkg/fix"
	"github.com/yaklabco/lintcore/pkg/reporter"
	"github.com/yaklabco/lintcore/pkg/runner"
	"github.com/yaklabco/lintcore/pkg/source"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{name: "empty defaults to text", input: "", want: reporter.FormatText},
		{name: "text", input: "text", want: reporter.FormatText},
		{name: "json", input: "json", want: reporter.FormatJSON},
		{name: "sarif", input: "sarif", want: reporter.FormatSARIF},
		{name: "diff", input: "diff", want: reporter.FormatDiff},
		{name: "unknown format", input: "xml", wantErr: true},
		{name: "dropped table format", input: "table", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewSelectsReporter(t *testing.T) {
	t.Parallel()

	for _, format := range []reporter.Format{
		reporter.FormatText, reporter.FormatJSON, reporter.FormatSARIF, reporter.FormatDiff,
	} {
		r, err := reporter.New(reporter.Options{Writer: &bytes.Buffer{}, Format: format})
		require.NoError(t, err)
		assert.NotNil(t, r)
	}

	_, err := reporter.New(reporter.Options{Writer: &bytes.Buffer{}, Format: "bogus"})
	assert.Error(t, err)
}

// sampleResult builds a two-file run: one clean, one with offenses.
func sampleResult(t *testing.T) *runner.Result {
	t.Helper()

	content := []byte("first line\nsecond line with XXX\n")
	f := source.NewFile("docs/guide.md", content)

	offenses := []check.Offense{
		{
			Check:    "Style/Marker",
			Severity: config.SeverityWarning,
			Location: f.Location(source.Span{Start: 28, End: 31}),
			Message:  "Stray XXX marker",
			Status:   check.StatusUnsupported,
		},
		{
			Check:    "Layout/Tab",
			Severity: config.SeverityError,
			Location: f.Location(source.Span{Start: 0, End: 5}),
			Message:  "Hard tab found",
			Status:   check.StatusUncorrected,
		},
	}

	result := &runner.Result{RunID: "run-1"}
	result.Stats.OffensesBySeverity = map[config.Severity]int{
		config.SeverityWarning: 1,
		config.SeverityError:   1,
	}
	result.Stats.FilesInspected = 2
	result.Stats.FilesWithIssues = 1
	result.Stats.OffensesTotal = 2

	result.Files = []runner.FileOutcome{
		{
			Path: "docs/clean.md",
			Result: &engine.PipelineResult{
				Path:       "docs/clean.md",
				FileResult: &engine.FileResult{},
			},
		},
		{
			Path: "docs/guide.md",
			Result: &engine.PipelineResult{
				Path:       "docs/guide.md",
				FileResult: &engine.FileResult{File: f, Offenses: offenses},
			},
		},
	}
	return result
}

func TestTextReporter(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	opts := reporter.DefaultOptions()
	opts.Writer = buf
	opts.Color = "never"

	r := reporter.NewTextReporter(opts)
	count, err := r.Report(context.Background(), sampleResult(t))
	require.NoError(t, err)

	assert.Equal(t, 2, count)
	out := buf.String()
	assert.Contains(t, out, "docs/guide.md (2 offenses)")
	assert.Contains(t, out, "Stray XXX marker")
	assert.Contains(t, out, "(Style/Marker)")
	assert.Contains(t, out, "Hard tab found")
	assert.Contains(t, out, "2 offenses")
	assert.NotContains(t, out, "docs/clean.md (")
}

func TestTextReporterEmptyResult(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	opts := reporter.DefaultOptions()
	opts.Writer = buf
	opts.Color = "never"

	r := reporter.NewTextReporter(opts)
	count, err := r.Report(context.Background(), &runner.Result{})
	require.NoError(t, err)

	assert.Equal(t, 0, count)
	assert.Contains(t, buf.String(), "No files to inspect.")
}

func TestTextReporterFileError(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	opts := reporter.DefaultOptions()
	opts.Writer = buf
	opts.Color = "never"

	result := &runner.Result{Files: []runner.FileOutcome{
		{Path: "missing.md", Error: assert.AnError},
	}}

	r := reporter.NewTextReporter(opts)
	_, err := r.Report(context.Background(), result)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "missing.md: error:")
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	opts := reporter.DefaultOptions()
	opts.Writer = buf
	opts.Format = reporter.FormatJSON

	r := reporter.NewJSONReporter(opts)
	count, err := r.Report(context.Background(), sampleResult(t))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	assert.Equal(t, "run-1", output.RunID)
	require.Len(t, output.Files, 2)
	assert.Empty(t, output.Files[0].Offenses)

	require.Len(t, output.Files[1].Offenses, 2)
	off := output.Files[1].Offenses[0]
	assert.Equal(t, "Style/Marker", off.Check)
	assert.Equal(t, "warning", off.Severity)
	assert.Equal(t, "unsupported", off.Status)
	assert.Equal(t, 2, off.StartLine)

	assert.Equal(t, 2, output.Summary.TotalOffenses)
	assert.Equal(t, 1, output.Summary.FilesWithIssues)
	assert.Equal(t, 1, output.Summary.BySeverity["error"])
}

func TestSARIFReporter(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	opts := reporter.DefaultOptions()
	opts.Writer = buf
	opts.Format = reporter.FormatSARIF
	opts.ToolVersion = "1.2.3"

	r := reporter.NewSARIFReporter(opts)
	count, err := r.Report(context.Background(), sampleResult(t))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var output reporter.SARIFOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	require.Len(t, output.Runs, 1)
	run := output.Runs[0]
	assert.Equal(t, "lintcore", run.Tool.Driver.Name)
	assert.Equal(t, "1.2.3", run.Tool.Driver.Version)

	// One rule per distinct check.
	assert.Len(t, run.Tool.Driver.Rules, 2)

	require.Len(t, run.Results, 2)
	byRule := map[string]string{}
	for _, res := range run.Results {
		byRule[res.RuleID] = res.Level
	}
	assert.Equal(t, "warning", byRule["Style/Marker"])
	assert.Equal(t, "error", byRule["Layout/Tab"])
}

func TestDiffReporter(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	opts := reporter.DefaultOptions()
	opts.Writer = buf
	opts.Color = "never"
	opts.Format = reporter.FormatDiff

	diff := fix.GenerateDiff("docs/guide.md", []byte("a\tb\n"), []byte("a    b\n"))
	result := &runner.Result{Files: []runner.FileOutcome{{
		Path: "docs/guide.md",
		Result: &engine.PipelineResult{
			Path:     "docs/guide.md",
			Modified: true,
			Diff:     diff,
		},
	}}}

	r := reporter.NewDiffReporter(opts)
	count, err := r.Report(context.Background(), result)
	require.NoError(t, err)

	assert.Equal(t, 1, count)
	out := buf.String()
	assert.Contains(t, out, "diff --git a/docs/guide.md b/docs/guide.md")
	assert.Contains(t, out, "-a\tb")
	assert.Contains(t, out, "+a    b")
	assert.Contains(t, out, "1 file changed")
}

func TestDiffReporterNoChanges(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	opts := reporter.DefaultOptions()
	opts.Writer = buf
	opts.Format = reporter.FormatDiff

	count, err := reporter.NewDiffReporter(opts).Report(context.Background(), sampleResult(t))
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Empty(t, buf.String())
}
