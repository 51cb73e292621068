package config

// Severity represents the severity level of an offense.
type Severity string

// Severity levels, weakest to strongest.
const (
	SeverityInfo       Severity = "info"
	SeverityRefactor   Severity = "refactor"
	SeverityConvention Severity = "convention"
	SeverityWarning    Severity = "warning"
	SeverityError      Severity = "error"
	SeverityFatal      Severity = "fatal"
)

// severityLevels orders severities for comparison. Higher is stronger.
//
//nolint:gochecknoglobals // Read-only lookup table.
var severityLevels = map[Severity]int{
	SeverityInfo:       0,
	SeverityRefactor:   1,
	SeverityConvention: 2,
	SeverityWarning:    3,
	SeverityError:      4,
	SeverityFatal:      5,
}

// KnownSeverities lists the recognized severity names in ascending order.
func KnownSeverities() []Severity {
	return []Severity{
		SeverityInfo,
		SeverityRefactor,
		SeverityConvention,
		SeverityWarning,
		SeverityError,
		SeverityFatal,
	}
}

// IsValid reports whether s is one of the recognized severity names.
func (s Severity) IsValid() bool {
	_, ok := severityLevels[s]
	return ok
}

// Level returns the ordering rank of the severity. Unknown severities rank
// below info.
func (s Severity) Level() int {
	level, ok := severityLevels[s]
	if !ok {
		return -1
	}
	return level
}

// AtLeast reports whether s is at least as strong as other.
func (s Severity) AtLeast(other Severity) bool {
	return s.Level() >= other.Level()
}
