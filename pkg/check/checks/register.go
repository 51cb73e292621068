package checks

import (
	"github.com/yaklabco/lintcore/pkg/check"
	"github.com/yaklabco/lintcore/pkg/config"
)

// RegisterAll registers the built-in checks with the given registry and
// wires check metadata into config template generation. Registration is
// an explicit call the CLI makes at startup; nothing registers itself.
func RegisterAll(registry *check.Registry) {
	// Safety checks
	registry.Enlist(NewReversedLink())

	// Layout checks
	registry.Enlist(NewTrailingWhitespace())
	registry.Enlist(NewHardTabs())
	registry.Enlist(NewFinalNewline())
	registry.Enlist(NewLineLength())

	// Style checks
	registry.Enlist(NewConsecutiveBlankLines())
	registry.Enlist(NewProperNames())

	// Metrics checks
	registry.Enlist(NewSectionLength())
	registry.Enlist(NewCodeBlockLength())

	config.DefaultCheckInfoProvider = func() []config.CheckInfo {
		return checkInfos(registry)
	}
}

// checkInfos converts registered checks into template metadata.
func checkInfos(registry *check.Registry) []config.CheckInfo {
	all := registry.All()
	out := make([]config.CheckInfo, 0, len(all))
	for _, c := range all {
		name := c.Name()
		out = append(out, config.CheckInfo{
			Name:        name,
			Department:  config.Department(name),
			Description: c.Description(),
			Enabled:     c.DefaultEnabled(),
			Severity:    check.DefaultSeverity(name),
			CanFix:      check.CanFix(c),
		})
	}
	return out
}
