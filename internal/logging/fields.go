package logging

// Field name constants for structured logging. Constants keep the key
// set consistent across packages.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldWorkingDir = "working_dir"
	FieldDuration   = "duration"

	// Run configuration fields.
	FieldFix    = "fix"
	FieldDryRun = "dry_run"
	FieldJobs   = "jobs"
	FieldRunID  = "run_id"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesInspected  = "files_inspected"
	FieldFilesWithIssues = "files_with_issues"
	FieldOffensesTotal   = "offenses_total"
	FieldFilesCorrected  = "files_corrected"
	FieldCacheHits       = "cache_hits"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Check fields.
	FieldCheck       = "check"
	FieldDepartment  = "department"
	FieldSeverity    = "severity"
	FieldFixable     = "fixable"
	FieldDescription = "description"
	FieldStatus      = "status"
	FieldLine        = "line"
)
