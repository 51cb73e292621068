package source

// Arena stores a file's nodes in a flat slice addressed by NodeID.
// Parsers append nodes in preorder, so iterating in index order visits the
// tree top-down. The arena may grow after parsing (minted span nodes); the
// kind index tracks growth.
//
// An Arena is not safe for concurrent mutation. Checks against one file run
// sequentially, so no locking is needed.
type Arena struct {
	nodes []Node

	// kindIndex maps node kinds to IDs, built lazily on first query.
	kindIndex   map[NodeKind][]NodeID
	indexedUpTo int
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// New appends a node and returns its ID. If parent is a valid ID, the new
// node is wired into the parent's child list.
func (a *Arena) New(kind NodeKind, span Span, parent NodeID) NodeID {
	id := NodeID(len(a.nodes))
	a.nodes = append(a.nodes, Node{
		ID:     id,
		Kind:   kind,
		Parent: parent,
		Span:   span,
	})

	if p := a.Node(parent); p != nil {
		p.Children = append(p.Children, id)
	}

	return id
}

// Node returns the node for an ID, or nil if the ID is out of range.
func (a *Arena) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(a.nodes) {
		return nil
	}
	return &a.nodes[id]
}

// Len returns the number of nodes in the arena.
func (a *Arena) Len() int {
	return len(a.nodes)
}

// Root returns the first node's ID, or NoNode for an empty arena.
func (a *Arena) Root() NodeID {
	if len(a.nodes) == 0 {
		return NoNode
	}
	return 0
}

// Walk visits the first n nodes in index order (preorder for parser-built
// trees). The visitor returns false to stop early. Nodes minted during the
// walk are not visited.
func (a *Arena) Walk(fn func(*Node) bool) {
	n := len(a.nodes)
	for i := range n {
		if !fn(&a.nodes[i]) {
			return
		}
	}
}

// NodesByKind returns the IDs of all nodes of the given kind in index
// order. The underlying index is built once and extended when the arena
// has grown since the last query.
func (a *Arena) NodesByKind(kind NodeKind) []NodeID {
	if a.kindIndex == nil {
		a.kindIndex = make(map[NodeKind][]NodeID)
	}
	for i := a.indexedUpTo; i < len(a.nodes); i++ {
		n := &a.nodes[i]
		a.kindIndex[n.Kind] = append(a.kindIndex[n.Kind], n.ID)
	}
	a.indexedUpTo = len(a.nodes)
	return a.kindIndex[kind]
}
