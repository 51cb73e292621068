package configloader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/lintcore/pkg/check"
	"github.com/yaklabco/lintcore/pkg/config"
	"github.com/yaklabco/lintcore/pkg/fsutil"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "checks.Layout/LineLength.severity").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown check names).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownFormats lists valid output format values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownFormats = map[config.OutputFormat]bool{
	config.FormatText:  true,
	config.FormatJSON:  true,
	config.FormatSARIF: true,
	config.FormatDiff:  true,
}

// knownBackupModes lists valid backup mode values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownBackupModes = map[string]bool{
	string(fsutil.BackupModeSidecar): true,
	string(fsutil.BackupModeNone):    true,
}

// Validate checks a configuration for errors and warnings.
// The registry, when non-nil, is used to warn about unknown check names.
func Validate(cfg *config.Config, registry *check.Registry) *ValidationResult {
	if cfg == nil {
		return &ValidationResult{}
	}

	result := &ValidationResult{}

	// Validate format
	if cfg.Format != "" && !knownFormats[cfg.Format] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: text, json, sarif, diff", cfg.Format),
		})
	}

	// Validate jobs
	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	// Validate backups.mode
	if cfg.Backups.Mode != "" && !knownBackupModes[cfg.Backups.Mode] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "backups.mode",
			Value:   cfg.Backups.Mode,
			Message: fmt.Sprintf("invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode),
		})
	}

	validateChecks(cfg, registry, result)
	validateIgnorePatterns(cfg, result)

	return result
}

// validateChecks checks per-check configurations for errors and warnings.
// Keys in the checks map may name a qualified check or a whole department.
func validateChecks(cfg *config.Config, registry *check.Registry, result *ValidationResult) {
	for key, checkCfg := range cfg.Checks {
		if registry != nil && !knownCheckKey(registry, key) {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   "checks." + key,
				Value:   key,
				Message: fmt.Sprintf("unknown check %q; it will be ignored", key),
			})
		}

		if checkCfg.Severity != nil && !config.Severity(*checkCfg.Severity).IsValid() {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "checks." + key + ".severity",
				Value:   *checkCfg.Severity,
				Message: fmt.Sprintf("invalid severity %q; must be one of: %s", *checkCfg.Severity, severityList()),
			})
		}
	}
}

// knownCheckKey reports whether the key names a registered check or department.
func knownCheckKey(registry *check.Registry, key string) bool {
	if config.Department(key) != "" {
		_, exists := registry.Get(key)
		return exists
	}
	for _, dept := range registry.Departments() {
		if dept == key {
			return true
		}
	}
	return false
}

// severityList renders the recognized severities for error messages.
func severityList() string {
	known := config.KnownSeverities()
	names := make([]string, len(known))
	for i, sev := range known {
		names[i] = string(sev)
	}
	return strings.Join(names, ", ")
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
// Patterns with ** are handled by a dedicated matcher and always pass here.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if strings.Contains(pattern, "**") {
			continue
		}
		// filepath.Match returns an error only for malformed patterns
		_, err := filepath.Match(pattern, "")
		if err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("ignore[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, registry *check.Registry, filePath string) *ValidationResult {
	result := Validate(cfg, registry)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidFormat returns true if the format is valid.
func IsValidFormat(f config.OutputFormat) bool {
	return knownFormats[f]
}

// IsValidBackupMode returns true if the backup mode is valid.
func IsValidBackupMode(mode string) bool {
	return knownBackupModes[mode]
}
