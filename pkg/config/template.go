package config

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full includes every registered check with its documentation.
	// If false, generates a minimal template.
	Full bool

	// IncludeChecks is a list of qualified check names to include.
	// If empty, all checks are included.
	IncludeChecks []string
}

// CheckInfo contains check metadata for template generation.
type CheckInfo struct {
	Name        string
	Department  string
	Description string
	Enabled     bool
	Severity    Severity
	CanFix      bool
}

// CheckInfoProvider is a function that returns check information.
// This decouples template generation from the check package to avoid
// circular imports.
type CheckInfoProvider func() []CheckInfo

// DefaultCheckInfoProvider is set by the checks package registration pass.
//
//nolint:gochecknoglobals // Intentional extension point for check info.
var DefaultCheckInfoProvider CheckInfoProvider

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Full {
		return generateFullTemplate(opts)
	}
	return generateMinimalTemplate()
}

// generateMinimalTemplate creates a minimal commented template.
func generateMinimalTemplate() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(`# lintcore configuration
# See: https://github.com/yaklabco/lintcore

# File patterns to ignore (glob patterns)
# ignore:
#   - "vendor/**"
#   - "node_modules/**"

# Per-check and per-department configuration. Department entries
# ("Layout") are the base; check entries ("Layout/LineLength") override.
# checks:
#   Safety:
#     severity: error
#   Layout/LineLength:
#     enabled: true
#     options:
#       max: 100
#   Style/ProperNames:
#     exclude:
#       - "CHANGELOG.md"
`)

	return buf.Bytes(), nil
}

// generateFullTemplate creates a full template with all checks documented.
func generateFullTemplate(opts TemplateOptions) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(`# lintcore configuration - Full Template
# See: https://github.com/yaklabco/lintcore
#
# This template includes all available checks with their default settings.
# Uncomment and modify settings as needed.

# Backup configuration for autocorrection
backups:
  enabled: true
  mode: sidecar

# File patterns to ignore (glob patterns)
ignore:
  - "vendor/**"
  - "node_modules/**"
  - ".git/**"

# Per-check and per-department configuration
checks:
`)

	checks := getCheckInfos()

	if len(opts.IncludeChecks) > 0 {
		includeSet := make(map[string]bool)
		for _, name := range opts.IncludeChecks {
			includeSet[name] = true
		}
		filtered := make([]CheckInfo, 0)
		for _, c := range checks {
			if includeSet[c.Name] {
				filtered = append(filtered, c)
			}
		}
		checks = filtered
	}

	sort.Slice(checks, func(i, j int) bool {
		return checks[i].Name < checks[j].Name
	})

	for _, c := range checks {
		buf.WriteString(fmt.Sprintf("\n  # %s\n", wrapComment(c.Description, commentWrapWidth)))
		if c.CanFix {
			buf.WriteString("  # Autocorrect: yes\n")
		}
		buf.WriteString(fmt.Sprintf("  %s:\n", c.Name))
		buf.WriteString(fmt.Sprintf("    enabled: %t\n", c.Enabled))
		buf.WriteString(fmt.Sprintf("    severity: %s\n", c.Severity))
		buf.WriteString("    # options:\n")
		buf.WriteString("    #   key: value\n")
	}

	return buf.Bytes(), nil
}

// getCheckInfos returns information about all registered checks.
func getCheckInfos() []CheckInfo {
	if DefaultCheckInfoProvider != nil {
		return DefaultCheckInfoProvider()
	}
	return nil
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	currentLine := ""

	for _, word := range words {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n  # ")
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# lintcore configuration
# See: https://github.com/yaklabco/lintcore`
}
