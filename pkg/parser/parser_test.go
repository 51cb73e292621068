package parser_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lintcore/pkg/langdetect"
	"github.com/yaklabco/lintcore/pkg/parser"
	"github.com/yaklabco/lintcore/pkg/source"
)

func TestAutoRoutesMarkdown(t *testing.T) {
	t.Parallel()

	p := parser.NewAuto("commonmark")
	f, err := p.Parse(context.Background(), "README.md", []byte("# Title\n\nBody text.\n"))
	require.NoError(t, err)

	assert.Equal(t, langdetect.LangMarkdown, f.Language)
	assert.NotEmpty(t, f.Arena.NodesByKind(source.KindHeading))
}

func TestAutoRoutesPlain(t *testing.T) {
	t.Parallel()

	p := parser.NewAuto("commonmark")
	f, err := p.Parse(context.Background(), "main.go", []byte("package main\n\n// a comment\n"))
	require.NoError(t, err)

	assert.Equal(t, "Go", f.Language)
	require.Len(t, f.Arena.NodesByKind(source.KindDocument), 1)
	require.Len(t, f.Comments, 1)
	assert.Equal(t, "a comment", f.Comments[0].Text)
}
