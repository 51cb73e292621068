// Package directive parses inline lint control comments and answers
// whether a check is disabled at a given line.
//
// Two comment forms are recognized. A trailing directive shares its line
// with content and applies to that line only:
//
//	some content  <!-- lint:disable Layout/LineLength -->
//
// A standalone directive occupies its own line and opens a block that
// runs until a matching enable directive or end of file:
//
//	<!-- lint:disable Style/ProperNames -->
//	...
//	<!-- lint:enable Style/ProperNames -->
//
// Check lists are comma separated and may name single checks, whole
// departments, or the keyword "all". The todo verb behaves like disable
// and marks violations accepted for later cleanup.
package directive

import (
	"strings"

	"github.com/yaklabco/lintcore/pkg/source"
)

// Prefix introduces every directive inside a comment body.
const Prefix = "lint:"

// Verb is the action a directive performs.
type Verb string

// Recognized directive verbs.
const (
	VerbDisable Verb = "disable"
	VerbEnable  Verb = "enable"
	VerbTodo    Verb = "todo"
)

// Directive is one parsed lint control comment.
type Directive struct {
	// Verb is the parsed action.
	Verb Verb

	// Checks lists the qualified check or department names the directive
	// targets, in source order. Empty when All is set.
	Checks []string

	// All is set when the directive names the "all" keyword.
	All bool

	// Line is the 1-based line the comment starts on.
	Line int

	// Standalone reports whether the comment is alone on its line.
	Standalone bool

	// Span covers the whole comment including delimiters.
	Span source.Span
}

// Matches reports whether the directive targets the qualified check name,
// either directly, via its department, or via "all".
func (d *Directive) Matches(check string) bool {
	if d.All {
		return true
	}
	dept, _, _ := strings.Cut(check, "/")
	for _, name := range d.Checks {
		if name == check || name == dept {
			return true
		}
	}
	return false
}

// Parse parses a comment body (delimiters already stripped) into a
// directive. Returns false when the text is not a directive or names no
// checks.
func Parse(text string) (Directive, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(text), Prefix)
	if !ok {
		return Directive{}, false
	}

	verb, args, _ := strings.Cut(rest, " ")
	switch Verb(verb) {
	case VerbDisable, VerbEnable, VerbTodo:
	default:
		return Directive{}, false
	}

	d := Directive{Verb: Verb(verb)}
	for _, name := range strings.Split(args, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if name == "all" {
			d.All = true
			continue
		}
		d.Checks = append(d.Checks, name)
	}
	if !d.All && len(d.Checks) == 0 {
		return Directive{}, false
	}
	return d, true
}

// FromFile extracts every directive from a file's comments, in source
// order, with line and standalone information resolved.
func FromFile(f *source.File) []Directive {
	var out []Directive
	for _, c := range f.Comments {
		d, ok := Parse(c.Text)
		if !ok {
			continue
		}
		d.Span = c.Span
		d.Line, _ = f.LineAt(c.Span.Start)
		d.Standalone = isStandalone(f, c.Span)
		out = append(out, d)
	}
	return out
}

// isStandalone reports whether the span is the only content on its line.
func isStandalone(f *source.File, span source.Span) bool {
	line, _ := f.LineAt(span.Start)
	if line == 0 {
		return false
	}
	ls := f.LineSpan(line)
	before := f.Text(source.Span{Start: ls.Start, End: span.Start})
	after := f.Text(source.Span{Start: span.End, End: ls.End})
	return len(strings.TrimSpace(string(before))) == 0 &&
		len(strings.TrimSpace(string(after))) == 0
}
