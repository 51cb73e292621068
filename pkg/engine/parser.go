package engine

import (
	"context"

	"github.com/yaklabco/lintcore/pkg/source"
)

// Parser converts raw file content into a source.File. The engine
// defines the interface it consumes; pkg/parser/goldmark and
// pkg/parser/plain provide implementations.
//
// Implementations must be deterministic for a given (path, content)
// pair, safe for concurrent use, and free of I/O: path is a label for
// locations, never opened.
type Parser interface {
	// Parse builds a source.File with content, line index, comments,
	// language, and the node arena populated. On error no partial file
	// is returned. The content slice is never retained or mutated.
	Parse(ctx context.Context, path string, content []byte) (*source.File, error)
}
