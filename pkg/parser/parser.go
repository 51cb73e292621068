// Package parser selects the concrete parser for a file. Markdown goes
// through the goldmark-backed parser with a full node arena; every
// other file type goes through the plain parser, which still detects
// the language and extracts comments so inline directives work.
package parser

import (
	"context"

	"github.com/yaklabco/lintcore/pkg/langdetect"
	"github.com/yaklabco/lintcore/pkg/parser/goldmark"
	"github.com/yaklabco/lintcore/pkg/parser/plain"
	"github.com/yaklabco/lintcore/pkg/source"
)

// Auto routes each file to the parser for its detected language.
type Auto struct {
	markdown *goldmark.Parser
	plain    *plain.Parser
}

// NewAuto creates a routing parser. The flavor applies to Markdown
// files only; see goldmark.New for the accepted values.
func NewAuto(flavor string) *Auto {
	return &Auto{
		markdown: goldmark.New(flavor),
		plain:    plain.New(),
	}
}

// Parse implements the engine's Parser interface.
func (a *Auto) Parse(ctx context.Context, path string, content []byte) (*source.File, error) {
	if langdetect.IsMarkdown(langdetect.Detect(path, content)) {
		return a.markdown.Parse(ctx, path, content)
	}
	return a.plain.Parse(ctx, path, content)
}
