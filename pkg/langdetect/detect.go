// Package langdetect provides language detection for source files.
// It uses go-enry to identify the language from the file name and content,
// which selects the parser and the comment syntax used for inline
// directives.
package langdetect

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language constants for languages the engine treats specially.
const (
	LangMarkdown = "Markdown"
	LangText     = "Text"
)

// Detect returns the language for a file path and its content.
// Returns "Text" when detection fails.
func Detect(path string, content []byte) string {
	name := filepath.Base(path)

	if lang := enry.GetLanguage(name, content); lang != "" && lang != enry.OtherLanguage {
		return lang
	}

	// Extension-only fallback for empty or ambiguous content.
	if langs := enry.GetLanguagesByExtension(name, content, nil); len(langs) > 0 {
		return langs[0]
	}

	return LangText
}

// IsMarkdown reports whether the language is a Markdown flavor.
func IsMarkdown(lang string) bool {
	return lang == LangMarkdown
}

// IsVendored reports whether the path looks like vendored or generated
// content that should not be linted.
func IsVendored(path string) bool {
	return enry.IsVendor(filepath.ToSlash(path))
}

// IsBinary reports whether the content looks binary.
func IsBinary(content []byte) bool {
	return enry.IsBinary(content)
}

// CommentStyle describes how a language writes comments.
// Line is the line-comment leader; Open/Close delimit block comments.
// Either form may be absent.
type CommentStyle struct {
	Line  string
	Open  string
	Close string
}

// commentStyles maps languages to their comment syntax.
//
//nolint:gochecknoglobals // Read-only lookup table.
var commentStyles = map[string]CommentStyle{
	"Markdown":   {Open: "<!--", Close: "-->"},
	"HTML":       {Open: "<!--", Close: "-->"},
	"XML":        {Open: "<!--", Close: "-->"},
	"Go":         {Line: "//", Open: "/*", Close: "*/"},
	"JavaScript": {Line: "//", Open: "/*", Close: "*/"},
	"TypeScript": {Line: "//", Open: "/*", Close: "*/"},
	"Rust":       {Line: "//", Open: "/*", Close: "*/"},
	"C":          {Line: "//", Open: "/*", Close: "*/"},
	"C++":        {Line: "//", Open: "/*", Close: "*/"},
	"Java":       {Line: "//", Open: "/*", Close: "*/"},
	"CSS":        {Open: "/*", Close: "*/"},
	"SQL":        {Line: "--"},
	"Lua":        {Line: "--"},
	"Haskell":    {Line: "--"},
}

// Comments returns the comment style for a language. Languages without an
// entry default to hash line comments, which covers shell, Python, Ruby,
// YAML, TOML, and most config formats.
func Comments(lang string) CommentStyle {
	if style, ok := commentStyles[lang]; ok {
		return style
	}
	return CommentStyle{Line: "#"}
}

// Normalize lowercases a language name for case-insensitive comparison.
func Normalize(lang string) string {
	return strings.ToLower(lang)
}
