package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/lintcore/pkg/config"
	"github.com/yaklabco/lintcore/pkg/runner"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version    string           `json:"version"`
	RunID      string           `json:"runId,omitempty"`
	DurationMS int64            `json:"durationMs,omitempty"`
	Files      []JSONFileResult `json:"files"`
	Summary    JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path     string        `json:"path"`
	Offenses []JSONOffense `json:"offenses"`
	Cached   bool          `json:"cached,omitempty"`
	Modified bool          `json:"modified,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// JSONOffense represents a single offense.
type JSONOffense struct {
	Check       string `json:"check"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	Status      string `json:"status"`
	StartLine   int    `json:"startLine"`
	StartColumn int    `json:"startColumn"`
	EndLine     int    `json:"endLine"`
	EndColumn   int    `json:"endColumn"`
	StartOffset int    `json:"startOffset"`
	EndOffset   int    `json:"endOffset"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesInspected    int            `json:"filesInspected"`
	FilesWithIssues   int            `json:"filesWithIssues"`
	FilesCorrected    int            `json:"filesCorrected"`
	FilesErrored      int            `json:"filesErrored"`
	CacheHits         int            `json:"cacheHits,omitempty"`
	TotalOffenses     int            `json:"totalOffenses"`
	OffensesCorrected int            `json:"offensesCorrected"`
	BySeverity        map[string]int `json:"bySeverity"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.TotalOffenses, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: "1.0.0",
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{
			BySeverity: make(map[string]int),
		},
	}

	if result == nil {
		return output
	}

	output.RunID = result.RunID
	output.DurationMS = result.Duration.Milliseconds()

	if len(result.Files) > 0 {
		output.Files = make([]JSONFileResult, 0, len(result.Files))
	}

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:     file.Path,
			Offenses: make([]JSONOffense, 0),
			Cached:   file.CacheHit,
		}

		if file.CacheHit {
			output.Summary.CacheHits++
		}

		if file.Error != nil {
			fileResult.Error = file.Error.Error()
			output.Summary.FilesErrored++
		}

		if file.Result != nil {
			fileResult.Modified = file.Result.Written

			if file.Result.FileResult != nil {
				for i := range file.Result.Offenses {
					off := &file.Result.Offenses[i]

					fileResult.Offenses = append(fileResult.Offenses, JSONOffense{
						Check:       off.Check,
						Severity:    string(off.Severity),
						Message:     off.Message,
						Status:      string(off.Status),
						StartLine:   off.Location.StartLine,
						StartColumn: off.Location.StartColumn,
						EndLine:     off.Location.EndLine,
						EndColumn:   off.Location.EndColumn,
						StartOffset: off.Location.Span.Start,
						EndOffset:   off.Location.Span.End,
					})
					output.Summary.TotalOffenses++

					if off.Corrected() {
						output.Summary.OffensesCorrected++
					}

					severity := string(off.Severity)
					if severity == "" {
						severity = string(config.SeverityWarning)
					}
					output.Summary.BySeverity[severity]++
				}
			}
		}

		if len(fileResult.Offenses) > 0 {
			output.Summary.FilesWithIssues++
		}
		if fileResult.Modified {
			output.Summary.FilesCorrected++
		}

		output.Files = append(output.Files, fileResult)
		output.Summary.FilesInspected++
	}

	return output
}
