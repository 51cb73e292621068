package engine

import (
	"slices"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/lintcore/pkg/check"
	"github.com/yaklabco/lintcore/pkg/config"
)

// ResolvedCheck pairs a check with its merged configuration for a run.
type ResolvedCheck struct {
	// Check is the underlying check implementation.
	Check check.Check

	// Config is the merged department-plus-check configuration.
	// Never nil.
	Config *config.CheckConfig
}

// Resolve determines which checks run under cfg: the config's Enabled
// state (falling back to the check's default), then CLI enable and
// disable lists, disable winning. The result keeps the registry's
// name order.
func Resolve(registry *check.Registry, cfg *config.Config) []ResolvedCheck {
	var resolved []ResolvedCheck

	for _, c := range registry.All() {
		merged := cfg.ForCheck(c.Name())

		enabled := check.Enabled(c, merged)
		if cfg != nil {
			if slices.Contains(cfg.EnableChecks, c.Name()) {
				enabled = true
			}
			if slices.Contains(cfg.DisableChecks, c.Name()) {
				enabled = false
			}
		}
		if !enabled {
			continue
		}

		resolved = append(resolved, ResolvedCheck{Check: c, Config: merged})
	}

	return resolved
}

// OptionsFromConfig maps run-level config flags onto the runtime
// options every check shares.
func OptionsFromConfig(cfg *config.Config, logger *log.Logger) check.Options {
	if cfg == nil {
		return check.Options{Logger: logger}
	}
	return check.Options{
		AutoCorrect:       cfg.Fix,
		SuppressUnfixable: cfg.SuppressUnfixable,
		IgnoreDirectives:  cfg.IgnoreDirectives,
		DisplayCheckNames: cfg.DisplayCheckNames,
		ExtraDetails:      cfg.ExtraDetails,
		Logger:            logger,
	}
}
