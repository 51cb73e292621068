package configloader

import "github.com/yaklabco/lintcore/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Maps: deep merge, with override's values taking precedence
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	// Start with a shallow copy of base
	result := *base

	// Scalars: override overwrites base if set (non-zero value)
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.Root != "" {
		result.Root = override.Root
	}

	// Booleans: false is the zero value, so only true overrides.
	// CLI --fix can set a flag, but a config file cannot unset one
	// set by a lower layer.
	if override.Fix {
		result.Fix = true
	}
	if override.SuppressUnfixable {
		result.SuppressUnfixable = true
	}
	if override.IgnoreDirectives {
		result.IgnoreDirectives = true
	}
	if override.DryRun {
		result.DryRun = true
	}
	if override.DisplayCheckNames {
		result.DisplayCheckNames = true
	}
	if override.ExtraDetails {
		result.ExtraDetails = true
	}
	if override.NoBackups {
		result.NoBackups = true
	}
	if override.NoCache {
		result.NoCache = true
	}

	// Backups: merge individual fields
	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}
	if override.Backups.Enabled {
		result.Backups.Enabled = true
	}

	// Maps: deep merge
	result.Checks = mergeChecks(base.Checks, override.Checks)

	// Slices: override replaces base entirely if non-nil
	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}
	if override.EnableChecks != nil {
		result.EnableChecks = override.EnableChecks
	}
	if override.DisableChecks != nil {
		result.DisableChecks = override.DisableChecks
	}

	return &result
}

// mergeChecks performs a deep merge of check configurations.
// Both maps are iterated, with override's values taking precedence.
func mergeChecks(base, override map[string]config.CheckConfig) map[string]config.CheckConfig {
	if base == nil && override == nil {
		return nil
	}
	if base == nil {
		result := make(map[string]config.CheckConfig, len(override))
		for key, val := range override {
			result[key] = val
		}
		return result
	}
	if override == nil {
		result := make(map[string]config.CheckConfig, len(base))
		for key, val := range base {
			result[key] = val
		}
		return result
	}

	result := make(map[string]config.CheckConfig, len(base)+len(override))

	for key, val := range base {
		result[key] = val
	}

	for key, val := range override {
		if existing, ok := result[key]; ok {
			result[key] = mergeCheckConfig(existing, val)
		} else {
			result[key] = val
		}
	}

	return result
}

// mergeCheckConfig merges individual check configurations.
// override's values take precedence over base's values.
func mergeCheckConfig(base, override config.CheckConfig) config.CheckConfig {
	result := base

	if override.Enabled != nil {
		result.Enabled = override.Enabled
	}
	if override.Severity != nil {
		result.Severity = override.Severity
	}
	if override.AutoCorrect != nil {
		result.AutoCorrect = override.AutoCorrect
	}
	if override.Include != nil {
		result.Include = override.Include
	}
	if override.Exclude != nil {
		result.Exclude = override.Exclude
	}
	if override.Details != "" {
		result.Details = override.Details
	}

	// Options: deep merge
	if override.Options != nil {
		merged := make(map[string]any, len(base.Options)+len(override.Options))
		for key, val := range base.Options {
			merged[key] = val
		}
		for key, val := range override.Options {
			merged[key] = val
		}
		result.Options = merged
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
