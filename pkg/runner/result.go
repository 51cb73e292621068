package runner

import (
	"time"

	"github.com/yaklabco/lintcore/pkg/config"
	"github.com/yaklabco/lintcore/pkg/engine"
)

// FileOutcome wraps a PipelineResult with resolved path metadata.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Result contains the pipeline result for this file.
	// May be nil if the file encountered an error during processing.
	Result *engine.PipelineResult

	// Error is set if the file could not be processed.
	Error error

	// CacheHit reports the offenses were served from the result cache.
	CacheHit bool
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesInspected is the number of files successfully processed.
	FilesInspected int

	// FilesSkipped is the number of files skipped (e.g., due to concurrent
	// modification).
	FilesSkipped int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// FilesWithIssues is the number of files with at least one offense.
	FilesWithIssues int

	// FilesCorrected is the number of files rewritten by fixes.
	FilesCorrected int

	// CacheHits is the number of files served from the result cache.
	CacheHits int

	// OffensesTotal is the total number of offenses across all files.
	OffensesTotal int

	// OffensesCorrected counts offenses with an applied correction or
	// todo suppression.
	OffensesCorrected int

	// OffensesBySeverity maps resolved severities to counts.
	OffensesBySeverity map[config.Severity]int
}

// Result is the overall runner result.
type Result struct {
	// RunID uniquely identifies this run; reporters stamp it on output.
	RunID string

	// Files contains the outcome for each processed file.
	// Files are ordered deterministically (by path).
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats

	// Duration is the wall-clock time of the run.
	Duration time.Duration
}

// HasFailures reports whether any offense at error severity or above
// occurred.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	for severity, count := range r.Stats.OffensesBySeverity {
		if count > 0 && severity.AtLeast(config.SeverityError) {
			return true
		}
	}
	return false
}

// HasOffenses reports whether any offenses were found.
func (r *Result) HasOffenses() bool {
	if r == nil {
		return false
	}
	return r.Stats.OffensesTotal > 0
}

// newStats creates a new Stats with initialized maps.
func newStats() Stats {
	return Stats{
		OffensesBySeverity: make(map[config.Severity]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	if outcome.Result == nil {
		return
	}

	r.Stats.FilesInspected++

	if outcome.CacheHit {
		r.Stats.CacheHits++
	}

	if outcome.Result.Skipped {
		r.Stats.FilesSkipped++
	}

	if outcome.Result.Written {
		r.Stats.FilesCorrected++
	}

	if outcome.Result.FileResult == nil {
		return
	}

	offenses := outcome.Result.Offenses
	r.Stats.OffensesTotal += len(offenses)
	if len(offenses) > 0 {
		r.Stats.FilesWithIssues++
	}

	for i := range offenses {
		severity := offenses[i].Severity
		if severity == "" {
			severity = config.SeverityWarning
		}
		r.Stats.OffensesBySeverity[severity]++
		if offenses[i].Corrected() {
			r.Stats.OffensesCorrected++
		}
	}
}
