package source

// NodeID addresses a node in an Arena. IDs are stable for the lifetime of
// the file pass; node identity is the arena index.
type NodeID int32

// NoNode is the null node ID.
const NoNode NodeID = -1

// NodeKind classifies a node. Parsers map their native node types onto
// these kinds; checks subscribe to the kinds they care about.
type NodeKind string

const (
	KindDocument      NodeKind = "document"
	KindHeading       NodeKind = "heading"
	KindParagraph     NodeKind = "paragraph"
	KindCodeBlock     NodeKind = "code_block"
	KindList          NodeKind = "list"
	KindListItem      NodeKind = "list_item"
	KindBlockquote    NodeKind = "blockquote"
	KindThematicBreak NodeKind = "thematic_break"
	KindHTMLBlock     NodeKind = "html_block"
	KindText          NodeKind = "text"
	KindEmphasis      NodeKind = "emphasis"
	KindStrong        NodeKind = "strong"
	KindCodeSpan      NodeKind = "code_span"
	KindLink          NodeKind = "link"
	KindImage         NodeKind = "image"
	KindRaw           NodeKind = "raw"

	// KindSpan marks nodes minted at record time for offenses that carry an
	// explicit span instead of originating from a parsed node.
	KindSpan NodeKind = "span"
)

// Node is one parsed syntactic occurrence. Nodes live in an Arena and refer
// to each other by ID.
type Node struct {
	// ID is this node's arena index.
	ID NodeID

	// Kind classifies the node.
	Kind NodeKind

	// Parent is the enclosing node, or NoNode for the root.
	Parent NodeID

	// Children lists child nodes in source order.
	Children []NodeID

	// Span is the byte range the node covers.
	Span Span

	// Spans holds named sub-spans ("marker", "info") when the parser
	// provides them. The name "expression" always resolves to Span.
	Spans map[string]Span

	// Props holds parser-specific attributes ("level", "ordered").
	Props map[string]any
}

// SubSpan resolves a named sub-span. The name "expression" resolves to the
// node's full span.
func (n *Node) SubSpan(name string) (Span, bool) {
	if name == "expression" {
		return n.Span, true
	}
	span, ok := n.Spans[name]
	return span, ok
}

// PropInt returns an integer property, or def when absent or mistyped.
func (n *Node) PropInt(name string, def int) int {
	if v, ok := n.Props[name]; ok {
		if i, ok := v.(int); ok {
			return i
		}
	}
	return def
}

// PropString returns a string property, or def when absent or mistyped.
func (n *Node) PropString(name, def string) string {
	if v, ok := n.Props[name]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// PropBool returns a boolean property, or def when absent or mistyped.
func (n *Node) PropBool(name string, def bool) bool {
	if v, ok := n.Props[name]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}
