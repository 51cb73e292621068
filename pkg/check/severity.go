package check

import (
	"github.com/charmbracelet/log"

	"github.com/yaklabco/lintcore/pkg/config"
)

// DefaultSeverity returns the domain default severity for a qualified
// check name: warning for the safety department, convention otherwise.
func DefaultSeverity(qualified string) config.Severity {
	if config.Department(qualified) == DeptSafety {
		return config.SeverityWarning
	}
	return config.SeverityConvention
}

// ResolveSeverity computes the effective severity for an offense.
// Precedence: explicit argument, then the configured override, then the
// domain default. An invalid configured name logs a warning and falls
// through to the default. The merged cfg already layers the check entry
// over its department entry.
func ResolveSeverity(
	explicit config.Severity,
	qualified string,
	cfg *config.CheckConfig,
	logger *log.Logger,
) config.Severity {
	if explicit != "" {
		return explicit
	}

	if cfg != nil && cfg.Severity != nil {
		sev := config.Severity(*cfg.Severity)
		if sev.IsValid() {
			return sev
		}
		if logger == nil {
			logger = log.Default()
		}
		logger.Warn("invalid severity in config, using default",
			"check", qualified,
			"severity", *cfg.Severity,
		)
	}

	return DefaultSeverity(qualified)
}
