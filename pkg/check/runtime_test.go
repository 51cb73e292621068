package check_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lintcore/pkg/check"
	"github.com/yaklabco/lintcore/pkg/config"
	"github.com/yaklabco/lintcore/pkg/fix"
	"github.com/yaklabco/lintcore/pkg/source"
)

// fakeCheck is a minimal check with no correction capability.
type fakeCheck struct {
	name    string
	message string
}

func (c *fakeCheck) Name() string        { return c.name }
func (c *fakeCheck) Description() string { return "fixture check" }
func (c *fakeCheck) Message() string     { return c.message }
func (c *fakeCheck) DefaultEnabled() bool { return true }

// fakeFixable adds correction capability with a configurable fix routine.
type fakeFixable struct {
	fakeCheck
	fixFn func(rt *check.Runtime, node *source.Node) fix.EditFn
}

func (c *fakeFixable) Fix(rt *check.Runtime, node *source.Node) fix.EditFn {
	if c.fixFn == nil {
		return nil
	}
	return c.fixFn(rt, node)
}

func plainCheck() *fakeCheck {
	return &fakeCheck{name: "Metrics/SectionLength", message: "section too long"}
}

func fixableCheck() *fakeFixable {
	return &fakeFixable{
		fakeCheck: fakeCheck{name: "Layout/TrailingWhitespace", message: "trailing whitespace"},
		fixFn: func(_ *check.Runtime, node *source.Node) fix.EditFn {
			span := node.Span
			return func(b *fix.EditBuilder) error {
				b.Delete(span)
				return nil
			}
		},
	}
}

func mkFile(t *testing.T, content string) *source.File {
	t.Helper()

	f := source.NewFile("test.md", []byte(content))
	f.Language = "Markdown"
	return f
}

// mkNode appends a paragraph node covering the span.
func mkNode(f *source.File, start, end int) *source.Node {
	id := f.Arena.New(source.KindParagraph, source.Span{Start: start, End: end}, source.NoNode)
	return f.Arena.Node(id)
}

func TestRecordDeduplicatesIdenticalSpans(t *testing.T) {
	t.Parallel()

	f := mkFile(t, "some content here\n")
	node := mkNode(f, 0, 4)
	rt := check.NewRuntime(plainCheck(), f, nil, check.Options{})

	rt.Record(node, check.Expression, "first")
	rt.Record(node, check.Expression, "second")

	offenses := rt.Offenses()
	require.Len(t, offenses, 1)
	assert.Equal(t, "first", offenses[0].Message)
}

func TestRecordDistinctSpansBothKept(t *testing.T) {
	t.Parallel()

	f := mkFile(t, "some content here\n")
	rt := check.NewRuntime(plainCheck(), f, nil, check.Options{})

	rt.Record(mkNode(f, 0, 4), check.Expression, "a")
	rt.Record(mkNode(f, 5, 12), check.Expression, "b")

	assert.Len(t, rt.Offenses(), 2)
}

func TestRecordResolvesLocation(t *testing.T) {
	t.Parallel()

	f := mkFile(t, "first\nsecond line\n")
	node := mkNode(f, 6, 12)
	rt := check.NewRuntime(plainCheck(), f, nil, check.Options{})

	rt.Record(node, check.Expression, "msg")

	offenses := rt.Offenses()
	require.Len(t, offenses, 1)
	loc := offenses[0].Location
	assert.Equal(t, "test.md", loc.Path)
	assert.Equal(t, 2, loc.StartLine)
	assert.Equal(t, 1, loc.StartColumn)
}

func TestRecordSubSpanLocus(t *testing.T) {
	t.Parallel()

	f := mkFile(t, "[text](url)\n")
	id := f.Arena.New(source.KindLink, source.Span{Start: 0, End: 11}, source.NoNode)
	node := f.Arena.Node(id)
	node.Spans = map[string]source.Span{"destination": {Start: 7, End: 10}}

	rt := check.NewRuntime(plainCheck(), f, nil, check.Options{})
	rt.Record(node, check.SubSpan("destination"), "msg")

	offenses := rt.Offenses()
	require.Len(t, offenses, 1)
	assert.Equal(t, source.Span{Start: 7, End: 10}, offenses[0].Location.Span)
}

func TestRecordPanicsOnUnknownSubSpan(t *testing.T) {
	t.Parallel()

	f := mkFile(t, "content\n")
	node := mkNode(f, 0, 7)
	rt := check.NewRuntime(plainCheck(), f, nil, check.Options{})

	assert.Panics(t, func() {
		rt.Record(node, check.SubSpan("no-such-span"), "msg")
	})
}

func TestRecordPanicsOnNilNode(t *testing.T) {
	t.Parallel()

	f := mkFile(t, "content\n")
	rt := check.NewRuntime(plainCheck(), f, nil, check.Options{})

	assert.Panics(t, func() {
		rt.Record(nil, check.Expression, "msg")
	})
}

func TestRecordPanicsOnForeignNode(t *testing.T) {
	t.Parallel()

	f := mkFile(t, "content\n")
	rt := check.NewRuntime(plainCheck(), f, nil, check.Options{})
	stray := &source.Node{ID: 42, Kind: source.KindParagraph}

	assert.Panics(t, func() {
		rt.Record(stray, check.Expression, "msg")
	})
}

func TestRecordEmptyMessageUsesDefault(t *testing.T) {
	t.Parallel()

	f := mkFile(t, "content\n")
	rt := check.NewRuntime(plainCheck(), f, nil, check.Options{})

	rt.Record(mkNode(f, 0, 7), check.Expression, "")

	require.Len(t, rt.Offenses(), 1)
	assert.Equal(t, "section too long", rt.Offenses()[0].Message)
}

func TestRecordMessageAnnotations(t *testing.T) {
	t.Parallel()

	details := "see the style guide"
	cfg := &config.CheckConfig{Details: details}
	f := mkFile(t, "content\n")
	rt := check.NewRuntime(plainCheck(), f, cfg, check.Options{
		DisplayCheckNames: true,
		ExtraDetails:      true,
	})

	rt.Record(mkNode(f, 0, 7), check.Expression, "too long")

	require.Len(t, rt.Offenses(), 1)
	assert.Equal(t, "Metrics/SectionLength: too long (see the style guide)", rt.Offenses()[0].Message)
}

func TestStatusUnsupportedWithoutCapability(t *testing.T) {
	t.Parallel()

	f := mkFile(t, "content\n")
	rt := check.NewRuntime(plainCheck(), f, nil, check.Options{AutoCorrect: true})

	rt.Record(mkNode(f, 0, 7), check.Expression, "msg")

	require.Len(t, rt.Offenses(), 1)
	assert.Equal(t, check.StatusUnsupported, rt.Offenses()[0].Status)
	assert.Empty(t, rt.Corrections())
}

func TestStatusUncorrectedWhenAutocorrectOff(t *testing.T) {
	t.Parallel()

	f := mkFile(t, "content\n")
	rt := check.NewRuntime(fixableCheck(), f, nil, check.Options{})

	rt.Record(mkNode(f, 0, 7), check.Expression, "msg")

	require.Len(t, rt.Offenses(), 1)
	assert.Equal(t, check.StatusUncorrected, rt.Offenses()[0].Status)
	assert.Empty(t, rt.Corrections())
}

func TestSuppressionNeverReachedWhenAutocorrectOff(t *testing.T) {
	t.Parallel()

	// The decision order is fixed: the autocorrect gate comes before the
	// fallback branch, so the fallback alone never queues directives.
	f := mkFile(t, "content\n")
	rt := check.NewRuntime(plainCheck(), f, nil, check.Options{SuppressUnfixable: true})

	rt.Record(mkNode(f, 0, 7), check.Expression, "msg")

	require.Len(t, rt.Offenses(), 1)
	assert.Equal(t, check.StatusUncorrected, rt.Offenses()[0].Status)
	assert.Empty(t, rt.Corrections())
}

func TestStatusUncorrectedWhenCheckOptsOut(t *testing.T) {
	t.Parallel()

	off := false
	cfg := &config.CheckConfig{AutoCorrect: &off}
	f := mkFile(t, "content\n")
	rt := check.NewRuntime(fixableCheck(), f, cfg, check.Options{AutoCorrect: true})

	rt.Record(mkNode(f, 0, 7), check.Expression, "msg")

	require.Len(t, rt.Offenses(), 1)
	assert.Equal(t, check.StatusUncorrected, rt.Offenses()[0].Status)
	assert.Empty(t, rt.Corrections())
}

func TestFixableRecordsCorrection(t *testing.T) {
	t.Parallel()

	f := mkFile(t, "content  \n")
	node := mkNode(f, 7, 9)
	rt := check.NewRuntime(fixableCheck(), f, nil, check.Options{AutoCorrect: true})

	rt.Record(node, check.Expression, "msg")

	require.Len(t, rt.Offenses(), 1)
	assert.Equal(t, check.StatusCorrected, rt.Offenses()[0].Status)
	require.Len(t, rt.Corrections(), 1)
	assert.Equal(t, node.ID, rt.Corrections()[0].Node)
	assert.Equal(t, "Layout/TrailingWhitespace", rt.Corrections()[0].Check)
	assert.False(t, rt.Corrections()[0].Suppression)
}

func TestNodeVisitedTwiceYieldsOneCorrection(t *testing.T) {
	t.Parallel()

	f := mkFile(t, "duplicate content\n")
	node := mkNode(f, 0, 9)
	rt := check.NewRuntime(fixableCheck(), f, nil, check.Options{AutoCorrect: true})

	rt.Record(node, check.Expression, "msg")
	rt.Record(node, check.At(source.Span{Start: 10, End: 17}), "msg")

	offenses := rt.Offenses()
	require.Len(t, offenses, 2)
	assert.Equal(t, check.StatusCorrected, offenses[0].Status)
	assert.Equal(t, check.StatusCorrected, offenses[1].Status, "second visit reports corrected without a new fix")
	assert.Len(t, rt.Corrections(), 1)
}

func TestNilEditFnMeansUncorrected(t *testing.T) {
	t.Parallel()

	c := fixableCheck()
	c.fixFn = func(*check.Runtime, *source.Node) fix.EditFn { return nil }

	f := mkFile(t, "content\n")
	rt := check.NewRuntime(c, f, nil, check.Options{AutoCorrect: true, SuppressUnfixable: true})

	rt.Record(mkNode(f, 0, 7), check.Expression, "msg")

	require.Len(t, rt.Offenses(), 1)
	assert.Equal(t, check.StatusUncorrected, rt.Offenses()[0].Status,
		"a fixer declining an instance does not fall through to suppression")
	assert.Empty(t, rt.Corrections())
}

func TestSuppressionFallbackQueuesTodo(t *testing.T) {
	t.Parallel()

	f := mkFile(t, "a flagged line\n")
	rt := check.NewRuntime(plainCheck(), f, nil, check.Options{
		AutoCorrect:       true,
		SuppressUnfixable: true,
	})

	rt.Record(mkNode(f, 0, 14), check.Expression, "msg")

	require.Len(t, rt.Offenses(), 1)
	assert.Equal(t, check.StatusCorrectedWithTodo, rt.Offenses()[0].Status)
	require.Len(t, rt.Corrections(), 1)
	assert.True(t, rt.Corrections()[0].Suppression)

	b := fix.NewEditBuilder()
	require.NoError(t, rt.Corrections()[0].Call(b))
	edits := b.Edits
	require.Len(t, edits, 1)
	assert.Equal(t, " <!-- lint:todo Metrics/SectionLength -->", edits[0].NewText)
	assert.Equal(t, len("a flagged line"), edits[0].Span.Start)
	assert.Equal(t, "Metrics/SectionLength", edits[0].Check)
}

func TestSameLineSuppressionsShareOneDirective(t *testing.T) {
	t.Parallel()

	f := mkFile(t, "one line with two violations\n")
	rt := check.NewRuntime(plainCheck(), f, nil, check.Options{
		AutoCorrect:       true,
		SuppressUnfixable: true,
	})

	rt.Record(mkNode(f, 0, 8), check.Expression, "outer")
	rt.Record(mkNode(f, 14, 28), check.Expression, "nested")

	offenses := rt.Offenses()
	require.Len(t, offenses, 2)
	assert.Equal(t, check.StatusCorrectedWithTodo, offenses[0].Status)
	assert.Equal(t, check.StatusCorrectedWithTodo, offenses[1].Status)
	assert.Len(t, rt.Corrections(), 1, "one merged directive edit for the line")
}

func TestDisabledLineSkipsEligibility(t *testing.T) {
	t.Parallel()

	f := mkFile(t, "flagged <!-- lint:disable Layout/TrailingWhitespace -->\n")
	f.Comments = []source.Comment{{
		Span: source.Span{Start: 8, End: 55},
		Text: " lint:disable Layout/TrailingWhitespace ",
	}}

	called := false
	rt := check.NewRuntime(fixableCheck(), f, nil, check.Options{AutoCorrect: true})
	rt.Record(mkNode(f, 0, 7), check.Expression, "msg",
		check.WithCallback(func(check.Offense) { called = true }))

	offenses := rt.Offenses()
	require.Len(t, offenses, 1)
	assert.Equal(t, check.StatusDisabled, offenses[0].Status)
	assert.Empty(t, rt.Corrections(), "disabled offenses never queue corrections")
	assert.False(t, called, "callback skipped for disabled offenses")
}

func TestIgnoreDirectivesOverridesDisable(t *testing.T) {
	t.Parallel()

	f := mkFile(t, "flagged <!-- lint:disable Layout/TrailingWhitespace -->\n")
	f.Comments = []source.Comment{{
		Span: source.Span{Start: 8, End: 55},
		Text: " lint:disable Layout/TrailingWhitespace ",
	}}

	rt := check.NewRuntime(fixableCheck(), f, nil, check.Options{
		AutoCorrect:      true,
		IgnoreDirectives: true,
	})
	rt.Record(mkNode(f, 0, 7), check.Expression, "msg")

	require.Len(t, rt.Offenses(), 1)
	assert.Equal(t, check.StatusCorrected, rt.Offenses()[0].Status)
}

func TestCallbackReceivesOffense(t *testing.T) {
	t.Parallel()

	f := mkFile(t, "content\n")
	rt := check.NewRuntime(plainCheck(), f, nil, check.Options{})

	var got check.Offense
	rt.Record(mkNode(f, 0, 7), check.Expression, "msg",
		check.WithCallback(func(o check.Offense) { got = o }))

	require.Len(t, rt.Offenses(), 1)
	assert.Equal(t, rt.Offenses()[0], got)
}

func TestRecordAtMintsDistinctNodes(t *testing.T) {
	t.Parallel()

	f := mkFile(t, "line one  \nline two  \n")
	rt := check.NewRuntime(fixableCheck(), f, nil, check.Options{AutoCorrect: true})

	rt.RecordAt(source.Span{Start: 8, End: 10}, "msg")
	rt.RecordAt(source.Span{Start: 19, End: 21}, "msg")

	offenses := rt.Offenses()
	require.Len(t, offenses, 2)
	assert.Equal(t, check.StatusCorrected, offenses[0].Status)
	assert.Equal(t, check.StatusCorrected, offenses[1].Status)
	assert.Len(t, rt.Corrections(), 2, "each minted node is corrected independently")
}

func TestExplicitSeverityWins(t *testing.T) {
	t.Parallel()

	sev := "error"
	cfg := &config.CheckConfig{Severity: &sev}
	f := mkFile(t, "content\n")
	rt := check.NewRuntime(plainCheck(), f, cfg, check.Options{})

	rt.Record(mkNode(f, 0, 7), check.Expression, "msg",
		check.WithSeverity(config.SeverityFatal))

	require.Len(t, rt.Offenses(), 1)
	assert.Equal(t, config.SeverityFatal, rt.Offenses()[0].Severity)
}

func TestConfiguredSeverityUsed(t *testing.T) {
	t.Parallel()

	sev := "error"
	cfg := &config.CheckConfig{Severity: &sev}
	f := mkFile(t, "content\n")
	rt := check.NewRuntime(plainCheck(), f, cfg, check.Options{})

	rt.Record(mkNode(f, 0, 7), check.Expression, "msg")

	require.Len(t, rt.Offenses(), 1)
	assert.Equal(t, config.SeverityError, rt.Offenses()[0].Severity)
}

func TestInvalidConfiguredSeverityFallsBack(t *testing.T) {
	t.Parallel()

	sev := "catastrophic"
	cfg := &config.CheckConfig{Severity: &sev}
	f := mkFile(t, "content\n")
	rt := check.NewRuntime(plainCheck(), f, cfg, check.Options{})

	rt.Record(mkNode(f, 0, 7), check.Expression, "msg")

	require.Len(t, rt.Offenses(), 1)
	assert.Equal(t, config.SeverityConvention, rt.Offenses()[0].Severity)
}
