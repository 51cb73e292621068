package cli

import (
	"errors"

	"github.com/yaklabco/lintcore/pkg/config"
	"github.com/yaklabco/lintcore/pkg/runner"
)

// Exit codes for lintcore.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitOffensesFound indicates the run completed but found offenses at
	// error severity or above.
	ExitOffensesFound = 1

	// ExitWarningsFound indicates the run found offenses below error
	// severity while strict mode was on.
	ExitWarningsFound = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitError carries a specific process exit code up to main.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "exit status"
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCodeForError maps a command error to a process exit code.
// Errors without an explicit code are treated as internal failures.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitInternalError
}

// ExitCodeFromResult determines the exit code based on result and strict mode.
// Fatal and error offenses always fail; in strict mode any offense does.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	var failures, lesser int
	for severity, count := range result.Stats.OffensesBySeverity {
		if severity.AtLeast(config.SeverityError) {
			failures += count
		} else {
			lesser += count
		}
	}

	if failures > 0 {
		return ExitOffensesFound
	}

	if strict && lesser > 0 {
		return ExitWarningsFound
	}

	return ExitSuccess
}
