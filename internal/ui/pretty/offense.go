package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/lintcore/pkg/check"
	"github.com/yaklabco/lintcore/pkg/config"
)

// FormatOffense formats a single offense for terminal output with the
// given check name format.
func (s *Styles) FormatOffense(off *check.Offense, showContext bool, sourceLine string, nameFormat config.NameFormat) string {
	var builder strings.Builder

	// Location: path:line:col
	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(off.Location.Path),
		off.Location.StartLine,
		off.Location.StartColumn,
	)

	severity := s.FormatSeverity(off.Severity)

	name := config.FormatCheckName(nameFormat, off.Check)
	nameDisplay := s.CheckName.Render("(" + name + ")")

	// Main line: location  severity  [status]  message  (check-name)
	builder.WriteString("  " + location + "  " + severity + "  ")
	if marker := s.FormatStatus(off.Status); marker != "" {
		builder.WriteString(marker + " ")
	}
	builder.WriteString(s.Message.Render(off.Message) + "  " + nameDisplay + "\n")

	if showContext && sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, off.Location.StartColumn))
	}

	return builder.String()
}

// FormatStatus returns a styled correction status marker. Offenses the
// check cannot fix get no marker.
func (s *Styles) FormatStatus(status check.CorrectionStatus) string {
	switch status {
	case check.StatusCorrected:
		return s.Status.Render("[Corrected]")
	case check.StatusCorrectedWithTodo:
		return s.Status.Render("[Todo]")
	case check.StatusUncorrected:
		return s.Dim.Render("[Correctable]")
	default:
		return ""
	}
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityFatal:
		return s.Fatal.Render("fatal")
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityConvention:
		return s.Convention.Render("convention")
	case config.SeverityRefactor:
		return s.Refactor.Render("refactor")
	case config.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatSourceContext formats the source line with a caret marker.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	// Indent to align with offense output
	const indent = "        "

	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		padding := indent + strings.Repeat(" ", column-1)
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, offenseCount int) string {
	header := s.FilePath.Render(path)
	if offenseCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d offenses)", offenseCount))
	}
	return header
}
