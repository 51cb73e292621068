// Package config defines core configuration types for lintcore.
// These types are pure data structures with no dependency on any
// particular config loader.
package config

import (
	"maps"
	"strings"
)

// CheckConfig holds configuration for a single check or a whole department.
// Entries in Config.Checks are keyed by qualified check name
// ("Layout/LineLength") or by department name ("Layout"); a department entry
// acts as the merge base for every check in that department.
type CheckConfig struct {
	Enabled     *bool          `mapstructure:"enabled" yaml:"enabled" toml:"enabled"`
	Severity    *string        `mapstructure:"severity" yaml:"severity" toml:"severity"`
	AutoCorrect *bool          `mapstructure:"auto_correct" yaml:"auto_correct" toml:"auto_correct"`
	Include     []string       `mapstructure:"include" yaml:"include" toml:"include"`
	Exclude     []string       `mapstructure:"exclude" yaml:"exclude" toml:"exclude"`
	Details     string         `mapstructure:"details" yaml:"details" toml:"details"`
	Options     map[string]any `mapstructure:"options" yaml:"options" toml:"options"`
}

// BackupsConfig controls backup behavior when fixing files.
type BackupsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled" toml:"enabled"`
	Mode    string `mapstructure:"mode" yaml:"mode" toml:"mode"` // "sidecar", "xdg"
}

// OutputFormat specifies the output format for offenses.
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatJSON  OutputFormat = "json"
	FormatSARIF OutputFormat = "sarif"
	FormatDiff  OutputFormat = "diff"
)

// Config is the root configuration structure for lintcore.
type Config struct {
	// Checks contains per-check and per-department configuration, keyed by
	// qualified check name or department name.
	Checks map[string]CheckConfig `mapstructure:"checks" yaml:"checks" toml:"checks"`

	// Ignore contains glob patterns for files the runner skips entirely.
	Ignore []string `mapstructure:"ignore" yaml:"ignore" toml:"ignore"`

	// Backups configures backup behavior when fixing.
	Backups BackupsConfig `mapstructure:"backups" yaml:"backups" toml:"backups"`

	// Root is the directory containing the loaded project config file.
	// Relevance patterns that miss on the absolute path are retried relative
	// to this directory. Set by the loader; empty means the working directory.
	Root string `mapstructure:"-" yaml:"-" toml:"-"`

	// CLI-level options (not persisted to config files).

	// Fix enables autocorrection of offenses.
	Fix bool `mapstructure:"-" yaml:"-" toml:"-"`

	// SuppressUnfixable degrades unfixable offenses to inline todo
	// directives instead of leaving them uncorrected.
	SuppressUnfixable bool `mapstructure:"-" yaml:"-" toml:"-"`

	// IgnoreDirectives treats every line as enabled, bypassing inline
	// disable comments.
	IgnoreDirectives bool `mapstructure:"-" yaml:"-" toml:"-"`

	// DryRun shows what would be fixed without writing files.
	DryRun bool `mapstructure:"-" yaml:"-" toml:"-"`

	// DisplayCheckNames prefixes offense messages with the check name.
	DisplayCheckNames bool `mapstructure:"-" yaml:"-" toml:"-"`

	// ExtraDetails appends the configured Details string to messages.
	ExtraDetails bool `mapstructure:"-" yaml:"-" toml:"-"`

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"-" yaml:"-" toml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `mapstructure:"-" yaml:"-" toml:"-"`

	// EnableChecks contains check names to explicitly enable.
	EnableChecks []string `mapstructure:"-" yaml:"-" toml:"-"`

	// DisableChecks contains check names to explicitly disable.
	DisableChecks []string `mapstructure:"-" yaml:"-" toml:"-"`

	// NoBackups disables backup creation when fixing.
	NoBackups bool `mapstructure:"-" yaml:"-" toml:"-"`

	// NoCache disables the result cache.
	NoCache bool `mapstructure:"-" yaml:"-" toml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Checks: make(map[string]CheckConfig),
		Ignore: nil,
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    "sidecar",
		},
		Format: FormatText,
		Jobs:   0, // 0 means use GOMAXPROCS
	}
}

// ForCheck returns the effective configuration for a qualified check name:
// the department entry (if any) as base, with the check entry shallow-merged
// on top, key by key. The result is always non-nil.
func (c *Config) ForCheck(qualified string) *CheckConfig {
	merged := CheckConfig{}
	if c == nil {
		return &merged
	}

	if dept := Department(qualified); dept != "" {
		if base, ok := c.Checks[dept]; ok {
			merged = mergeCheckConfig(merged, base)
		}
	}
	if override, ok := c.Checks[qualified]; ok {
		merged = mergeCheckConfig(merged, override)
	}
	return &merged
}

// Department extracts the department from a qualified check name.
// Returns "" for names without a department separator.
func Department(qualified string) string {
	dept, _, found := strings.Cut(qualified, "/")
	if !found {
		return ""
	}
	return dept
}

// mergeCheckConfig overlays override onto base. Pointer fields replace when
// set, slices replace when non-nil, Options merge key by key.
func mergeCheckConfig(base, override CheckConfig) CheckConfig {
	out := base

	if override.Enabled != nil {
		out.Enabled = override.Enabled
	}
	if override.Severity != nil {
		out.Severity = override.Severity
	}
	if override.AutoCorrect != nil {
		out.AutoCorrect = override.AutoCorrect
	}
	if override.Include != nil {
		out.Include = override.Include
	}
	if override.Exclude != nil {
		out.Exclude = override.Exclude
	}
	if override.Details != "" {
		out.Details = override.Details
	}
	if override.Options != nil {
		if out.Options == nil {
			out.Options = make(map[string]any, len(override.Options))
		} else {
			out.Options = maps.Clone(out.Options)
		}
		maps.Copy(out.Options, override.Options)
	}

	return out
}
