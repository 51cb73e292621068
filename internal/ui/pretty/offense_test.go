package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/lintcore/internal/ui/pretty"
	"github.com/yaklabco/lintcore/pkg/check"
	"github.com/yaklabco/lintcore/pkg/config"
	"github.com/yaklabco/lintcore/pkg/source"
)

func sampleOffense() check.Offense {
	return check.Offense{
		Check:    "Layout/LineLength",
		Severity: config.SeverityWarning,
		Location: source.Location{
			Path:      "docs/guide.md",
			StartLine: 3, StartColumn: 81, EndLine: 3, EndColumn: 120,
		},
		Message: "Line is too long",
		Status:  check.StatusUncorrected,
	}
}

func TestFormatOffense(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	off := sampleOffense()

	out := styles.FormatOffense(&off, false, "", config.NameFormatQualified)
	assert.Contains(t, out, "docs/guide.md:3:81")
	assert.Contains(t, out, "warning")
	assert.Contains(t, out, "Line is too long")
	assert.Contains(t, out, "(Layout/LineLength)")
	assert.Contains(t, out, "[Correctable]")
}

func TestFormatOffenseShortNames(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	off := sampleOffense()

	out := styles.FormatOffense(&off, false, "", config.NameFormatShort)
	assert.Contains(t, out, "(LineLength)")
	assert.NotContains(t, out, "(Layout/LineLength)")
}

func TestFormatOffenseSourceContext(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	off := sampleOffense()
	off.Location.StartColumn = 3

	out := styles.FormatOffense(&off, true, "a very long line", config.NameFormatQualified)
	assert.Contains(t, out, "a very long line")
	assert.Contains(t, out, "^")
}

func TestFormatStatus(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	assert.Equal(t, "[Corrected]", styles.FormatStatus(check.StatusCorrected))
	assert.Equal(t, "[Todo]", styles.FormatStatus(check.StatusCorrectedWithTodo))
	assert.Equal(t, "[Correctable]", styles.FormatStatus(check.StatusUncorrected))
	assert.Empty(t, styles.FormatStatus(check.StatusUnsupported))
}

func TestFormatSeverity(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	for _, sev := range config.KnownSeverities() {
		assert.Equal(t, string(sev), styles.FormatSeverity(sev))
	}
	assert.Equal(t, "bogus", styles.FormatSeverity(config.Severity("bogus")))
}

func TestFormatFileHeader(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	assert.Equal(t, "docs/guide.md (2 offenses)", styles.FormatFileHeader("docs/guide.md", 2))
	assert.Equal(t, "docs/guide.md", styles.FormatFileHeader("docs/guide.md", 0))
}
