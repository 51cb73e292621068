package checks_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lintcore/pkg/check"
	"github.com/yaklabco/lintcore/pkg/check/checks"
	"github.com/yaklabco/lintcore/pkg/config"
	"github.com/yaklabco/lintcore/pkg/fix"
	"github.com/yaklabco/lintcore/pkg/parser/goldmark"
	"github.com/yaklabco/lintcore/pkg/source"
)

func plainFile(t *testing.T, content string) *source.File {
	t.Helper()

	f := source.NewFile("test.md", []byte(content))
	f.Language = "Markdown"
	return f
}

// parseMarkdown builds a file with a real goldmark arena, for checks
// that inspect code blocks or headings.
func parseMarkdown(t *testing.T, content string) *source.File {
	t.Helper()

	f, err := goldmark.New("commonmark").Parse(context.Background(), "test.md", []byte(content))
	require.NoError(t, err)
	return f
}

func cfgWith(options map[string]any) *config.CheckConfig {
	return &config.CheckConfig{Options: options}
}

// applyCorrections stages every queued correction and applies the
// resulting edits to the file content.
func applyCorrections(t *testing.T, f *source.File, rt *check.Runtime) string {
	t.Helper()

	b := fix.NewEditBuilder()
	for i := range rt.Corrections() {
		require.NoError(t, rt.Corrections()[i].Call(b))
	}

	edits, err := fix.PrepareEdits(b.Edits, len(f.Content))
	require.NoError(t, err)
	return string(fix.ApplyEdits(f.Content, edits))
}

func TestTrailingWhitespace(t *testing.T) {
	t.Parallel()

	c := checks.NewTrailingWhitespace()
	f := plainFile(t, "clean line\ndirty line  \ntabbed\t\n")
	rt := check.NewRuntime(c, f, nil, check.Options{AutoCorrect: true})

	c.InspectSource(rt)

	offenses := rt.Offenses()
	require.Len(t, offenses, 2)
	assert.Equal(t, 2, offenses[0].Location.StartLine)
	assert.Equal(t, 3, offenses[1].Location.StartLine)
	assert.Equal(t, check.StatusCorrected, offenses[0].Status)

	assert.Equal(t, "clean line\ndirty line\ntabbed\n", applyCorrections(t, f, rt))
}

func TestTrailingWhitespaceIgnoresCodeBlocks(t *testing.T) {
	t.Parallel()

	c := checks.NewTrailingWhitespace()
	f := parseMarkdown(t, "text\n\n    indented code  \n")
	cfg := cfgWith(map[string]any{"IgnoreCodeBlocks": true})
	rt := check.NewRuntime(c, f, cfg, check.Options{})

	c.InspectSource(rt)

	assert.Empty(t, rt.Offenses())
}

func TestHardTabs(t *testing.T) {
	t.Parallel()

	c := checks.NewHardTabs()
	f := plainFile(t, "a\tb\tc\nno tabs\n")
	cfg := cfgWith(map[string]any{"SpacesPerTab": 2})
	rt := check.NewRuntime(c, f, cfg, check.Options{AutoCorrect: true})

	c.InspectSource(rt)

	// One offense per line, fixing replaces every tab on it.
	require.Len(t, rt.Offenses(), 1)
	assert.Equal(t, "a  b  c\nno tabs\n", applyCorrections(t, f, rt))
}

func TestFinalNewlineMissing(t *testing.T) {
	t.Parallel()

	c := checks.NewFinalNewline()
	f := plainFile(t, "no terminator")
	rt := check.NewRuntime(c, f, nil, check.Options{AutoCorrect: true})

	c.InspectSource(rt)

	require.Len(t, rt.Offenses(), 1)
	assert.Equal(t, "no terminator\n", applyCorrections(t, f, rt))
}

func TestFinalNewlineExcessBlanks(t *testing.T) {
	t.Parallel()

	c := checks.NewFinalNewline()
	f := plainFile(t, "text\n\n\n")
	rt := check.NewRuntime(c, f, nil, check.Options{AutoCorrect: true})

	c.InspectSource(rt)

	offenses := rt.Offenses()
	require.Len(t, offenses, 1)
	assert.Contains(t, offenses[0].Message, "trailing blank lines")
	assert.Equal(t, "text\n", applyCorrections(t, f, rt))
}

func TestFinalNewlineCleanFile(t *testing.T) {
	t.Parallel()

	c := checks.NewFinalNewline()
	f := plainFile(t, "text\n")
	rt := check.NewRuntime(c, f, nil, check.Options{})

	c.InspectSource(rt)

	assert.Empty(t, rt.Offenses())
}

func TestLineLength(t *testing.T) {
	t.Parallel()

	c := checks.NewLineLength()
	f := plainFile(t, "short\naaaaaaaaaaaaaaa\n")
	cfg := cfgWith(map[string]any{"Max": 10})
	rt := check.NewRuntime(c, f, cfg, check.Options{})

	c.InspectSource(rt)

	offenses := rt.Offenses()
	require.Len(t, offenses, 1)
	assert.Equal(t, 2, offenses[0].Location.StartLine)
	assert.Contains(t, offenses[0].Message, "15 > 10")

	// Prose cannot be wrapped safely, so the check carries no fixer.
	assert.False(t, check.CanFix(c))
}

func TestReversedLink(t *testing.T) {
	t.Parallel()

	c := checks.NewReversedLink()
	f := plainFile(t, "see (here)[https://example.test] for details\n")
	rt := check.NewRuntime(c, f, nil, check.Options{AutoCorrect: true})

	c.InspectSource(rt)

	require.Len(t, rt.Offenses(), 1)
	assert.Equal(t, "see [here](https://example.test) for details\n", applyCorrections(t, f, rt))
}

func TestReversedLinkSkipsCodeBlocks(t *testing.T) {
	t.Parallel()

	c := checks.NewReversedLink()
	f := parseMarkdown(t, "```\n(tuple)[0]\n```\n")
	rt := check.NewRuntime(c, f, nil, check.Options{})

	c.InspectSource(rt)

	assert.Empty(t, rt.Offenses())
}

func TestConsecutiveBlankLines(t *testing.T) {
	t.Parallel()

	c := checks.NewConsecutiveBlankLines()
	f := plainFile(t, "a\n\n\n\nb\n")
	rt := check.NewRuntime(c, f, nil, check.Options{AutoCorrect: true})

	c.InspectSource(rt)

	offenses := rt.Offenses()
	require.Len(t, offenses, 1)
	assert.Contains(t, offenses[0].Message, "found 3, max 1")
	assert.Equal(t, "a\n\nb\n", applyCorrections(t, f, rt))
}

func TestConsecutiveBlankLinesWithinLimit(t *testing.T) {
	t.Parallel()

	c := checks.NewConsecutiveBlankLines()
	f := plainFile(t, "a\n\n\nb\n")
	cfg := cfgWith(map[string]any{"Max": 2})
	rt := check.NewRuntime(c, f, cfg, check.Options{})

	c.InspectSource(rt)

	assert.Empty(t, rt.Offenses())
}

func TestProperNames(t *testing.T) {
	t.Parallel()

	c := checks.NewProperNames()
	f := plainFile(t, "github hosts the repo\n")
	cfg := cfgWith(map[string]any{"Names": []string{"GitHub"}})
	rt := check.NewRuntime(c, f, cfg, check.Options{AutoCorrect: true})

	c.InspectSource(rt)

	offenses := rt.Offenses()
	require.Len(t, offenses, 1)
	assert.Contains(t, offenses[0].Message, `"github" should be "GitHub"`)
	assert.Equal(t, "GitHub hosts the repo\n", applyCorrections(t, f, rt))
}

func TestProperNamesNoConfigIsInert(t *testing.T) {
	t.Parallel()

	c := checks.NewProperNames()
	f := plainFile(t, "github everywhere\n")
	rt := check.NewRuntime(c, f, nil, check.Options{})

	c.InspectSource(rt)

	assert.Empty(t, rt.Offenses())
}

func TestProperNamesChecksum(t *testing.T) {
	t.Parallel()

	c := checks.NewProperNames()

	assert.Empty(t, c.ExternalDependencyChecksum(&config.CheckConfig{}))

	dir := t.TempDir()
	namesFile := filepath.Join(dir, "names.txt")
	require.NoError(t, os.WriteFile(namesFile, []byte("GitHub\n"), 0o644))

	cfg := cfgWith(map[string]any{"NamesFile": namesFile})
	before := c.ExternalDependencyChecksum(cfg)
	assert.NotEmpty(t, before)

	require.NoError(t, os.WriteFile(namesFile, []byte("GitHub\nGoLand\n"), 0o644))
	after := c.ExternalDependencyChecksum(cfg)
	assert.NotEqual(t, before, after)
}

func TestSectionLength(t *testing.T) {
	t.Parallel()

	c := checks.NewSectionLength()
	f := parseMarkdown(t, "# Big\nl1\nl2\nl3\nl4\nl5\n\n# Next\nok\n")
	cfg := cfgWith(map[string]any{"Max": 3})
	rt := check.NewRuntime(c, f, cfg, check.Options{})

	for _, id := range f.Arena.NodesByKind(source.KindHeading) {
		c.InspectNode(rt, f.Arena.Node(id))
	}

	offenses := rt.Offenses()
	require.Len(t, offenses, 1)
	assert.Equal(t, 1, offenses[0].Location.StartLine)
	assert.Contains(t, offenses[0].Message, "max 3")
}

func TestSectionLengthBoundedByNextHeading(t *testing.T) {
	t.Parallel()

	c := checks.NewSectionLength()
	f := parseMarkdown(t, "# A\nl1\n\n# B\nl1\nl2\nl3\nl4\n")
	cfg := cfgWith(map[string]any{"Max": 3})
	rt := check.NewRuntime(c, f, cfg, check.Options{})

	for _, id := range f.Arena.NodesByKind(source.KindHeading) {
		c.InspectNode(rt, f.Arena.Node(id))
	}

	offenses := rt.Offenses()
	require.Len(t, offenses, 1)
	assert.Equal(t, 4, offenses[0].Location.StartLine)
}

func TestCodeBlockLength(t *testing.T) {
	t.Parallel()

	c := checks.NewCodeBlockLength()
	f := parseMarkdown(t, "```\na\nb\nc\nd\n```\n")
	cfg := cfgWith(map[string]any{"Max": 3})
	rt := check.NewRuntime(c, f, cfg, check.Options{})

	for _, id := range f.Arena.NodesByKind(source.KindCodeBlock) {
		c.InspectNode(rt, f.Arena.Node(id))
	}

	offenses := rt.Offenses()
	require.Len(t, offenses, 1)
	assert.Contains(t, offenses[0].Message, "max 3")
}

func TestRegisterAll(t *testing.T) {
	registry := check.NewRegistry()
	checks.RegisterAll(registry)

	all := registry.All()
	assert.Len(t, all, 9)

	departments := registry.Departments()
	for _, dept := range []string{"Safety", "Layout", "Style", "Metrics"} {
		assert.Contains(t, departments, dept)
	}

	require.NotNil(t, config.DefaultCheckInfoProvider)
	infos := config.DefaultCheckInfoProvider()
	assert.Len(t, infos, 9)
}
