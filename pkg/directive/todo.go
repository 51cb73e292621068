package directive

import (
	"strings"

	"github.com/yaklabco/lintcore/pkg/fix"
	"github.com/yaklabco/lintcore/pkg/langdetect"
	"github.com/yaklabco/lintcore/pkg/source"
)

// Format renders a directive comment in the language's comment style.
// Line comments are preferred; block delimiters are used when the
// language has no line form.
func Format(style langdetect.CommentStyle, verb Verb, checks []string) string {
	body := Prefix + string(verb) + " " + strings.Join(checks, ", ")
	if style.Line != "" {
		return style.Line + " " + body
	}
	return style.Open + " " + body + " " + style.Close
}

// TodoEdit builds the edit that suppresses a check on a line with a
// trailing todo directive. When the line already ends in one, the check
// name is merged into its list instead of adding a second comment.
// Returns false when the line is out of range.
func TodoEdit(f *source.File, idx *Index, line int, check string) (fix.TextEdit, bool) {
	if line < 1 || line > f.LineCount() {
		return fix.TextEdit{}, false
	}

	style := langdetect.Comments(f.Language)

	if d, ok := idx.TodoAt(line); ok {
		if d.Matches(check) {
			return fix.TextEdit{}, false
		}
		checks := append(append([]string(nil), d.Checks...), check)
		return fix.TextEdit{
			Span:    d.Span,
			NewText: Format(style, VerbTodo, checks),
		}, true
	}

	end := f.LineSpan(line).End
	return fix.TextEdit{
		Span:    source.Span{Start: end, End: end},
		NewText: " " + Format(style, VerbTodo, []string{check}),
	}, true
}
