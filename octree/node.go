package octree

import "github.com/pkg/errors"

// node is a single cell of the sparse octree: up to eight child slots plus a scalar occupancy
// value stored in log-odds. A node with no children is a leaf. Each node is exclusively owned by
// its parent (the root by the Tree); there are no back-pointers, no shared ownership, no cycles.
type node struct {
	children [8]*node
	logOdds  float32
}

// newNode returns a node initialized to the neutral prior (log-odds 0, i.e. p=0.5).
func newNode() *node {
	return &node{}
}

func (n *node) LogOdds() float32     { return n.logOdds }
func (n *node) SetLogOdds(v float32) { n.logOdds = v }

// Child returns child i, or nil if absent.
func (n *node) Child(i uint8) *node {
	return n.children[i]
}

// CreateChild allocates child i. It is an error to create a child that already exists.
func (n *node) CreateChild(i uint8) (*node, error) {
	if n.children[i] != nil {
		return nil, errors.Errorf("child %d already exists", i)
	}
	c := newNode()
	n.children[i] = c
	return c, nil
}

// DeleteChild removes child i and everything beneath it. Go's garbage collector reclaims the
// detached subtree; there is no manual recursive free step the way a reference-counted or
// arena-allocated implementation would need.
func (n *node) DeleteChild(i uint8) {
	n.children[i] = nil
}

// HasChildren reports whether any child slot is occupied.
func (n *node) HasChildren() bool {
	for _, c := range n.children {
		if c != nil {
			return true
		}
	}
	return false
}

// IsLeaf reports whether the node has no children.
func (n *node) IsLeaf() bool {
	return !n.HasChildren()
}

// allChildrenAreLeavesWithValue reports whether all eight children exist, are themselves leaves,
// and carry exactly the same log-odds value (compared on the stored float32 representation, not a
// tolerance — deterministic pruning requires an exact comparison, per the design notes).
func (n *node) allChildrenAreLeavesWithValue() (value float32, ok bool) {
	if n.children[0] == nil || !n.children[0].IsLeaf() {
		return 0, false
	}
	value = n.children[0].logOdds
	for i := 1; i < 8; i++ {
		c := n.children[i]
		if c == nil || !c.IsLeaf() || c.logOdds != value {
			return 0, false
		}
	}
	return value, true
}
