package checks

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/yaklabco/lintcore/pkg/check"
	"github.com/yaklabco/lintcore/pkg/config"
	"github.com/yaklabco/lintcore/pkg/fix"
	"github.com/yaklabco/lintcore/pkg/source"
)

// ConsecutiveBlankLines flags runs of blank lines exceeding the maximum.
type ConsecutiveBlankLines struct {
	check.Base
}

// NewConsecutiveBlankLines creates the consecutive blank lines check.
func NewConsecutiveBlankLines() *ConsecutiveBlankLines {
	return &ConsecutiveBlankLines{
		Base: check.NewBase(
			"Style/ConsecutiveBlankLines",
			"Multiple consecutive blank lines should be collapsed",
			"Multiple consecutive blank lines",
			true,
		),
	}
}

// InspectSource scans for blank line streaks and records one offense per
// streak, covering the excess lines beyond the maximum.
func (c *ConsecutiveBlankLines) InspectSource(rt *check.Runtime) {
	f := rt.File()
	maxConsecutive := rt.Config().OptionInt("Max", 1)
	if maxConsecutive < 1 {
		maxConsecutive = 1
	}

	streakStart := 0
	streakCount := 0

	flush := func() {
		if streakCount <= maxConsecutive {
			return
		}
		first := streakStart + maxConsecutive
		last := streakStart + streakCount - 1
		rt.RecordAt(lineRangeSpan(f, first, last),
			fmt.Sprintf("Multiple consecutive blank lines (found %d, max %d)", streakCount, maxConsecutive))
	}

	for line := 1; line <= f.LineCount(); line++ {
		if isBlankLine(f, line) {
			if streakCount == 0 {
				streakStart = line
			}
			streakCount++
			continue
		}
		flush()
		streakCount = 0
	}
	flush()
}

// Fix deletes the excess blank lines.
func (c *ConsecutiveBlankLines) Fix(_ *check.Runtime, node *source.Node) fix.EditFn {
	span := node.Span
	if span.Len() == 0 {
		return nil
	}
	return func(b *fix.EditBuilder) error {
		b.Delete(span)
		return nil
	}
}

// ProperNames flags proper names with incorrect capitalization. Opt-in:
// it does nothing until names are configured, either inline or through a
// names file. The names file makes the check's verdicts depend on state
// outside the source file, so it participates in cache invalidation via
// ExternalDependencyChecksum.
type ProperNames struct {
	check.Base
}

// NewProperNames creates the proper names check.
func NewProperNames() *ProperNames {
	return &ProperNames{
		Base: check.NewBase(
			"Style/ProperNames",
			"Proper names should have the correct capitalization",
			"Incorrect proper name capitalization",
			false,
		),
	}
}

type namePattern struct {
	correct string
	pattern *regexp.Regexp
}

// properNames collects the configured names, inline ones first, then the
// names file (one per line, blanks skipped). Unreadable files and names
// that do not compile into patterns are skipped.
func properNames(cfg *config.CheckConfig) []namePattern {
	names := cfg.OptionStringSlice("Names", nil)

	if path := cfg.OptionString("NamesFile", ""); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			for _, raw := range strings.Split(string(data), "\n") {
				if name := strings.TrimSpace(raw); name != "" {
					names = append(names, name)
				}
			}
		}
	}

	patterns := make([]namePattern, 0, len(names))
	for _, name := range names {
		escaped := regexp.QuoteMeta(name)
		pattern, err := regexp.Compile(`(?i)\b` + escaped + `\b`)
		if err != nil {
			continue
		}
		patterns = append(patterns, namePattern{correct: name, pattern: pattern})
	}
	return patterns
}

// InspectSource matches each configured name case-insensitively on whole
// words and records every occurrence whose capitalization differs.
func (c *ProperNames) InspectSource(rt *check.Runtime) {
	patterns := properNames(rt.Config())
	if len(patterns) == 0 {
		return
	}

	f := rt.File()

	var inCode map[int]bool
	if !rt.Config().OptionBool("CodeBlocks", true) {
		inCode = codeBlockLines(f)
	}

	for line := 1; line <= f.LineCount(); line++ {
		if inCode[line] {
			continue
		}

		content := f.LineContent(line)
		start := f.LineSpan(line).Start

		for _, np := range patterns {
			for _, match := range np.pattern.FindAllIndex(content, -1) {
				found := string(content[match[0]:match[1]])
				if found == np.correct {
					continue
				}
				rt.RecordAt(
					source.Span{Start: start + match[0], End: start + match[1]},
					fmt.Sprintf("Proper name %q should be %q", found, np.correct),
				)
			}
		}
	}
}

// Fix replaces the occurrence with the configured capitalization.
func (c *ProperNames) Fix(rt *check.Runtime, node *source.Node) fix.EditFn {
	span := node.Span
	found := string(rt.File().Text(span))

	for _, np := range properNames(rt.Config()) {
		loc := np.pattern.FindStringIndex(found)
		if loc == nil || loc[0] != 0 || loc[1] != len(found) {
			continue
		}
		if found == np.correct {
			return nil
		}
		correct := np.correct
		return func(b *fix.EditBuilder) error {
			b.Replace(span, correct)
			return nil
		}
	}
	return nil
}

// ExternalDependencyChecksum fingerprints the names file so cached
// results are invalidated when it changes. Returns "" when no names file
// is configured.
func (c *ProperNames) ExternalDependencyChecksum(cfg *config.CheckConfig) string {
	path := cfg.OptionString("NamesFile", "")
	if path == "" {
		return ""
	}

	h := sha256.New()
	h.Write([]byte(path))
	if data, err := os.ReadFile(path); err == nil {
		h.Write(data)
	}
	return hex.EncodeToString(h.Sum(nil))
}
