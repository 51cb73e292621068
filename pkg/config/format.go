package config

import "strings"

// NameFormat selects how check names are rendered in output.
type NameFormat string

const (
	// NameFormatQualified renders "Department/CheckName".
	NameFormatQualified NameFormat = "qualified"

	// NameFormatShort renders the bare check name.
	NameFormatShort NameFormat = "short"
)

// FormatCheckName renders a qualified check name in the given format.
// Unknown formats fall back to qualified.
func FormatCheckName(format NameFormat, qualified string) string {
	switch format {
	case NameFormatShort:
		if _, short, found := strings.Cut(qualified, "/"); found {
			return short
		}
		return qualified
	case NameFormatQualified:
		return qualified
	default:
		return qualified
	}
}
