package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lintcore/pkg/config"
	"github.com/yaklabco/lintcore/pkg/runner"
)

func testBuildInfo() BuildInfo {
	return BuildInfo{Version: "test", Commit: "none", Date: "unknown"}
}

// newTestRoot builds the root command with output captured in a buffer.
func newTestRoot(t *testing.T, args ...string) (*bytes.Buffer, *bytes.Buffer, func() error) {
	t.Helper()

	root := NewRootCommand(testBuildInfo())

	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)

	return &out, &errOut, root.Execute
}

// projectDir creates an isolated directory with a VCS marker so
// upward config discovery never escapes into the host filesystem.
func projectDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))

	return dir
}

func TestRootCommand(t *testing.T) {
	root := NewRootCommand(testBuildInfo())

	assert.Equal(t, "lintcore", root.Use)

	names := make(map[string]bool)
	for _, sub := range root.Commands() {
		names[sub.Name()] = true
	}

	for _, want := range []string{"lint", "checks", "init", "watch", "version"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
}

func TestRootCommandGlobalFlags(t *testing.T) {
	root := NewRootCommand(testBuildInfo())

	for _, name := range []string{"debug", "config", "color"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(name), "missing flag %q", name)
	}
}

func TestHelpListsCommandsAndFlags(t *testing.T) {
	out, _, execute := newTestRoot(t, "--help")
	require.NoError(t, execute())

	text := out.String()
	assert.Contains(t, text, "Usage:")
	assert.Contains(t, text, "Commands:")
	assert.Contains(t, text, "Flags:")
	for _, sub := range []string{"lint", "checks", "init", "watch", "version"} {
		assert.Contains(t, text, sub)
	}
	assert.Contains(t, text, "--color")
}

func TestHelpFlagLineSplitting(t *testing.T) {
	t.Parallel()

	head, desc, ok := splitFlagUsage("      --color string   colorize output (auto, always, never)")
	require.True(t, ok)
	assert.Equal(t, "--color string", head)
	assert.Equal(t, "colorize output (auto, always, never)", desc)

	_, _, ok = splitFlagUsage("--lonely")
	assert.False(t, ok)
}

func TestChecksCommandJSON(t *testing.T) {
	out, _, execute := newTestRoot(t, "checks", "--format", "json")
	require.NoError(t, execute())

	var infos []checkInfo
	require.NoError(t, json.Unmarshal(out.Bytes(), &infos))
	require.NotEmpty(t, infos)

	byName := make(map[string]checkInfo)
	for _, info := range infos {
		byName[info.Name] = info
	}

	tw, ok := byName["Layout/TrailingWhitespace"]
	require.True(t, ok, "Layout/TrailingWhitespace not listed")
	assert.Equal(t, "Layout", tw.Department)
	assert.True(t, tw.Fixable)
	assert.NotEmpty(t, tw.Description)
	assert.NotEmpty(t, tw.Severity)
}

func TestChecksCommandDepartmentFilter(t *testing.T) {
	out, _, execute := newTestRoot(t, "checks", "--format", "json", "--department", "Metrics")
	require.NoError(t, execute())

	var infos []checkInfo
	require.NoError(t, json.Unmarshal(out.Bytes(), &infos))
	require.NotEmpty(t, infos)

	for _, info := range infos {
		assert.Equal(t, "Metrics", info.Department)
	}
}

func TestInitCommand(t *testing.T) {
	dir := projectDir(t)
	target := filepath.Join(dir, ".lintcore.yml")

	_, _, execute := newTestRoot(t, "init", "--output", target)
	require.NoError(t, execute())

	content, err := os.ReadFile(target)
	require.NoError(t, err)

	cfg, err := config.FromYAML(content)
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	t.Run("refuses to overwrite without force", func(t *testing.T) {
		_, _, execute := newTestRoot(t, "init", "--output", target)
		err := execute()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("overwrites with force", func(t *testing.T) {
		_, _, execute := newTestRoot(t, "init", "--output", target, "--force")
		require.NoError(t, execute())
	})
}

func TestLintCleanTree(t *testing.T) {
	dir := projectDir(t)
	writeTestFile(t, dir, "doc.md", "# Title\n\nClean content.\n")
	t.Chdir(dir)

	out, _, execute := newTestRoot(t, "lint", "--no-cache", "--format", "json", ".")
	require.NoError(t, execute())

	assert.True(t, json.Valid(out.Bytes()), "json output should parse: %s", out.String())
}

func TestLintFindsOffenses(t *testing.T) {
	dir := projectDir(t)
	writeTestFile(t, dir, "doc.md", "# Title\n\nline with trailing space   \n")
	t.Chdir(dir)

	t.Run("strict fails on any offense", func(t *testing.T) {
		out, _, execute := newTestRoot(t, "lint", "--no-cache", "--strict", "--format", "json", ".")
		err := execute()
		require.ErrorIs(t, err, ErrOffensesFound)
		assert.True(t, json.Valid(out.Bytes()))
	})

	t.Run("default tolerates sub-error offenses", func(t *testing.T) {
		_, _, execute := newTestRoot(t, "lint", "--no-cache", "--format", "json", ".")
		require.NoError(t, execute())
	})
}

func TestLintFixDryRun(t *testing.T) {
	dir := projectDir(t)
	original := "# Title\n\nline with trailing space   \n"
	writeTestFile(t, dir, "doc.md", original)
	t.Chdir(dir)

	_, _, execute := newTestRoot(t, "lint", "--no-cache", "--fix", "--dry-run", ".")
	require.NoError(t, execute())

	content, err := os.ReadFile(filepath.Join(dir, "doc.md"))
	require.NoError(t, err)
	assert.Equal(t, original, string(content), "dry-run must not modify files")
}

func TestLintRejectsInvalidFormat(t *testing.T) {
	dir := projectDir(t)
	t.Chdir(dir)

	_, _, execute := newTestRoot(t, "lint", "--no-cache", "--format", "bogus", ".")
	err := execute()
	require.Error(t, err)
}

func TestExitCodeFromResult(t *testing.T) {
	resultWith := func(counts map[config.Severity]int) *runner.Result {
		return &runner.Result{Stats: runner.Stats{OffensesBySeverity: counts}}
	}

	tests := []struct {
		name   string
		result *runner.Result
		strict bool
		want   int
	}{
		{"nil result", nil, false, ExitSuccess},
		{"no offenses", resultWith(nil), false, ExitSuccess},
		{"convention only", resultWith(map[config.Severity]int{config.SeverityConvention: 3}), false, ExitSuccess},
		{"convention strict", resultWith(map[config.Severity]int{config.SeverityConvention: 3}), true, ExitWarningsFound},
		{"warning strict", resultWith(map[config.Severity]int{config.SeverityWarning: 1}), true, ExitWarningsFound},
		{"error", resultWith(map[config.Severity]int{config.SeverityError: 1}), false, ExitOffensesFound},
		{"fatal", resultWith(map[config.Severity]int{config.SeverityFatal: 1}), false, ExitOffensesFound},
		{"error beats strict lesser", resultWith(map[config.Severity]int{
			config.SeverityError:      1,
			config.SeverityConvention: 5,
		}), true, ExitOffensesFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeFromResult(tt.result, tt.strict))
		})
	}
}

func TestExitCodeForError(t *testing.T) {
	assert.Equal(t, ExitSuccess, ExitCodeForError(nil))
	assert.Equal(t, ExitOffensesFound,
		ExitCodeForError(&ExitError{Code: ExitOffensesFound, Err: ErrOffensesFound}))
	assert.Equal(t, ExitConfigError,
		ExitCodeForError(&ExitError{Code: ExitConfigError, Err: errors.New("bad config")}))
	assert.Equal(t, ExitInternalError, ExitCodeForError(errors.New("boom")))
}

func writeTestFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
