// Package source provides the file representation checks run against.
// It defines a lossless, immutable view of a source file including:
// - File: content, line metadata, comments, detected language
// - Arena: flat node storage addressed by stable integer IDs
// - Span/Location: byte ranges and their line/column resolution
package source

// File is an immutable view of a source file at a specific time.
// It holds the raw content, line metadata, extracted comments, and the
// node arena produced by a parser.
type File struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Content is the full file bytes.
	Content []byte

	// Lines contains metadata for each line in the file.
	Lines []LineInfo

	// Comments contains every comment the parser extracted, in source order.
	Comments []Comment

	// Language is the detected language identifier (e.g. "Markdown").
	// It selects the comment style used for inline directives.
	Language string

	// Arena holds the parsed nodes. Never nil for a parsed file.
	Arena *Arena
}

// Comment is a single source comment with its span and inner text.
type Comment struct {
	// Span covers the comment including its delimiters.
	Span Span

	// Text is the comment body with delimiters stripped.
	Text string
}

// NewFile creates a File from content with the line index built.
// Comments and the arena are supplied by a parser.
func NewFile(path string, content []byte) *File {
	return &File{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
		Arena:   NewArena(),
	}
}

// Location resolves a byte span to a full location with line and column
// information. Columns count bytes, 1-based.
func (f *File) Location(span Span) Location {
	startLine, startCol := f.LineAt(span.Start)
	endLine, endCol := f.LineAt(span.End)
	return Location{
		Path:        f.Path,
		Span:        span,
		StartLine:   startLine,
		StartColumn: startCol,
		EndLine:     endLine,
		EndColumn:   endCol,
	}
}

// Location is a resolved source position: byte span plus 1-based line and
// column ranges. Location values are comparable; two offenses collide when
// their spans are equal.
type Location struct {
	Path        string
	Span        Span
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// Span is a half-open byte range [Start, End) into a file's content.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes the span covers.
func (s Span) Len() int {
	return s.End - s.Start
}

// Contains reports whether the offset falls inside the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Text returns the content the span covers. Out-of-range spans return nil.
func (f *File) Text(s Span) []byte {
	if s.Start < 0 || s.End > len(f.Content) || s.Start > s.End {
		return nil
	}
	return f.Content[s.Start:s.End]
}
