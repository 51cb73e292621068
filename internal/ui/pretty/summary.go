package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/lintcore/pkg/config"
	"github.com/yaklabco/lintcore/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "12 offenses (8 errors, 4 warnings) in 3 files, 6 corrected".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.OffensesTotal == 0 {
		msg := s.Success.Render("No offenses found") +
			s.Dim.Render(fmt.Sprintf(" (%d files inspected)", stats.FilesInspected))
		// Show corrections even when nothing remains.
		if stats.OffensesCorrected > 0 {
			fileWord := wordFiles
			if stats.FilesCorrected == 1 {
				fileWord = wordFile
			}
			msg += ", " + s.Success.Render(fmt.Sprintf("%d corrected in %d %s",
				stats.OffensesCorrected, stats.FilesCorrected, fileWord))
		}
		return msg + "\n"
	}

	var parts []string

	offenseWord := "offenses"
	if stats.OffensesTotal == 1 {
		offenseWord = "offense"
	}

	// Severity breakdown, strongest first.
	var severityParts []string
	for _, sev := range []config.Severity{
		config.SeverityFatal,
		config.SeverityError,
		config.SeverityWarning,
		config.SeverityConvention,
		config.SeverityRefactor,
		config.SeverityInfo,
	} {
		count := stats.OffensesBySeverity[sev]
		if count == 0 {
			continue
		}
		severityParts = append(severityParts,
			s.severityStyle(sev).Render(fmt.Sprintf("%d %s", count, sev)))
	}

	if len(severityParts) > 0 {
		parts = append(parts, fmt.Sprintf("%d %s (%s)",
			stats.OffensesTotal, offenseWord, strings.Join(severityParts, ", ")))
	} else {
		parts = append(parts, fmt.Sprintf("%d %s", stats.OffensesTotal, offenseWord))
	}

	fileWord := wordFiles
	if stats.FilesWithIssues == 1 {
		fileWord = wordFile
	}
	parts = append(parts, fmt.Sprintf("in %d %s", stats.FilesWithIssues, fileWord))

	if stats.OffensesCorrected > 0 {
		correctedFileWord := wordFiles
		if stats.FilesCorrected == 1 {
			correctedFileWord = wordFile
		}
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d corrected in %d %s",
			stats.OffensesCorrected, stats.FilesCorrected, correctedFileWord)))
	}

	if stats.CacheHits > 0 {
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%d cached", stats.CacheHits)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files inspected:   " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesInspected)) + "\n")

	if stats.FilesWithIssues > 0 {
		builder.WriteString("  Files with issues: " +
			s.Failure.Render(strconv.Itoa(stats.FilesWithIssues)) + "\n")
	}

	if stats.FilesCorrected > 0 {
		builder.WriteString("  Files corrected:   " +
			s.Success.Render(strconv.Itoa(stats.FilesCorrected)) + "\n")
	}

	if stats.CacheHits > 0 {
		builder.WriteString("  Cache hits:        " +
			s.SummaryValue.Render(strconv.Itoa(stats.CacheHits)) + "\n")
	}

	builder.WriteString("\n")

	builder.WriteString("  Total offenses:    " +
		s.SummaryValue.Render(strconv.Itoa(stats.OffensesTotal)) + "\n")

	for _, sev := range []config.Severity{
		config.SeverityFatal,
		config.SeverityError,
		config.SeverityWarning,
		config.SeverityConvention,
		config.SeverityRefactor,
		config.SeverityInfo,
	} {
		count := stats.OffensesBySeverity[sev]
		if count == 0 {
			continue
		}
		label := string(sev) + ":"
		builder.WriteString(fmt.Sprintf("    %-16s %s\n",
			label, s.severityStyle(sev).Render(strconv.Itoa(count))))
	}

	builder.WriteString("\n")

	// Overall status
	switch {
	case stats.OffensesBySeverity[config.SeverityFatal] > 0,
		stats.OffensesBySeverity[config.SeverityError] > 0:
		builder.WriteString(s.Failure.Render("Inspection failed with errors"))
	case stats.OffensesBySeverity[config.SeverityWarning] > 0:
		builder.WriteString(s.Warning.Render("Inspection completed with warnings"))
	default:
		builder.WriteString(s.Success.Render("Inspection passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}

// severityStyle maps a severity to its style.
func (s *Styles) severityStyle(sev config.Severity) lipgloss.Style {
	switch sev {
	case config.SeverityFatal:
		return s.Fatal
	case config.SeverityError:
		return s.Error
	case config.SeverityWarning:
		return s.Warning
	case config.SeverityConvention:
		return s.Convention
	case config.SeverityRefactor:
		return s.Refactor
	default:
		return s.Info
	}
}
