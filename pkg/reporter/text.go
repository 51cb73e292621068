package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/lintcore/internal/ui/pretty"
	"github.com/yaklabco/lintcore/pkg/check"
	"github.com/yaklabco/lintcore/pkg/runner"
	"github.com/yaklabco/lintcore/pkg/source"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
	width  int
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
		width:  pretty.TerminalWidth(opts.Writer),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to inspect."))
		}
		return 0, nil
	}

	var total int

	if r.opts.GroupByFile {
		total = r.reportGrouped(ctx, result)
	} else {
		total = r.reportFlat(ctx, result)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

// reportGrouped writes offenses grouped by file.
func (r *TextReporter) reportGrouped(_ context.Context, result *runner.Result) int {
	var total int

	for _, file := range result.Files {
		if file.Error != nil {
			r.writeFileError(file)
			continue
		}

		if file.Result == nil || file.Result.FileResult == nil {
			continue
		}

		offenses := file.Result.Offenses
		if len(offenses) == 0 {
			continue
		}

		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(file.Path, len(offenses)))

		for i := range offenses {
			fmt.Fprint(r.bw, r.formatOffense(&offenses[i], file.Result.File))
			total++
		}

		// Blank line between files
		fmt.Fprintln(r.bw)
	}

	return total
}

// reportFlat writes offenses without grouping.
func (r *TextReporter) reportFlat(_ context.Context, result *runner.Result) int {
	var total int

	for _, file := range result.Files {
		if file.Error != nil {
			r.writeFileError(file)
			continue
		}

		if file.Result == nil || file.Result.FileResult == nil {
			continue
		}

		offenses := file.Result.Offenses
		for i := range offenses {
			fmt.Fprint(r.bw, r.formatOffense(&offenses[i], file.Result.File))
			total++
		}
	}

	return total
}

func (r *TextReporter) writeFileError(file runner.FileOutcome) {
	fmt.Fprintf(r.bw, "%s: %s\n",
		r.styles.FilePath.Render(file.Path),
		r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
	)
}

// sourceContextIndent matches the indentation FormatSourceContext uses.
const sourceContextIndent = 8

func (r *TextReporter) formatOffense(off *check.Offense, f *source.File) string {
	var sourceLine string
	if r.opts.ShowContext {
		sourceLine = getSourceLine(f, off.Location.StartLine)
		if r.width > 0 {
			sourceLine = truncateToWidth(sourceLine, r.width-sourceContextIndent)
		}
	}
	return r.styles.FormatOffense(off, r.opts.ShowContext, sourceLine, r.opts.NameFormat)
}

// truncateToWidth shortens a context line to fit max columns, marking
// the cut with an ellipsis.
func truncateToWidth(line string, max int) string {
	if max <= 3 {
		return line
	}
	runes := []rune(line)
	if len(runes) <= max {
		return line
	}
	return string(runes[:max-3]) + "..."
}

// getSourceLine extracts one line from the parsed file using its
// pre-computed line index. Cached results carry no parsed file, so
// context is simply omitted for them.
func getSourceLine(f *source.File, lineNum int) string {
	if f == nil {
		return ""
	}
	content := f.LineContent(lineNum)
	if content == nil {
		return ""
	}
	return string(content)
}
