package octree

import "github.com/golang/geo/r3"

// UpdateNode descends from the root to depth 16 along key, creating any missing children
// (initialized to the neutral prior, log-odds 0) and adding delta to the leaf's log-odds,
// clamping the result. It returns the updated leaf node.
//
// If lazy is false and any log-odds value changed, pruning is attempted bottom-up on the way back
// to the root. If lazy is true, pruning and inner-node aggregation are deferred; the caller must
// call UpdateInnerOccupancy before any query that depends on multi-resolution aggregates.
func (t *Tree) UpdateNode(key Key, delta float32, lazy bool) *node {
	t.rootTouched = true
	return t.updateNodeRecurs(t.root, key, 0, delta, lazy)
}

// UpdateNodeOccupancy is the occupied/free overload of UpdateNode: it applies the sensor model's
// hit or miss log-odds delta depending on occupied.
func (t *Tree) UpdateNodeOccupancy(key Key, occupied bool, lazy bool) *node {
	delta := t.probMissLog
	if occupied {
		delta = t.probHitLog
	}
	return t.UpdateNode(key, delta, lazy)
}

// UpdateNodeAtPoint is the point-addressed overload of UpdateNode: it keys p and updates that
// voxel's log-odds by delta. It returns KindOutOfRange if p falls outside the representable key
// space.
func (t *Tree) UpdateNodeAtPoint(p r3.Vector, delta float32, lazy bool) (*node, error) {
	key, err := t.CoordToKeyChecked(p)
	if err != nil {
		return nil, err
	}
	return t.UpdateNode(key, delta, lazy), nil
}

// UpdateNodeOccupancyAtPoint is the point-addressed overload of UpdateNodeOccupancy.
func (t *Tree) UpdateNodeOccupancyAtPoint(p r3.Vector, occupied bool, lazy bool) (*node, error) {
	key, err := t.CoordToKeyChecked(p)
	if err != nil {
		return nil, err
	}
	return t.UpdateNodeOccupancy(key, occupied, lazy), nil
}

func (t *Tree) updateNodeRecurs(n *node, key Key, depth uint8, delta float32, lazy bool) *node {
	if depth == maxDepth {
		wasOccupied := t.IsNodeOccupied(n)
		t.updateNodeLogOdds(n, delta)
		if t.useChangeDetection && wasOccupied != t.IsNodeOccupied(n) {
			t.changedKeys.Add(key)
		}
		return n
	}

	idx := childIndex(key, depth)
	child := n.Child(idx)
	justCreated := child == nil
	if justCreated {
		child, _ = n.CreateChild(idx)
	}

	leaf := t.updateNodeRecurs(child, key, depth+1, delta, lazy)

	if t.useChangeDetection && justCreated && depth+1 == maxDepth {
		t.changedKeys.Add(key)
	}

	if !lazy && !t.prune(n) {
		// Not prunable: keep n's aggregate (max of its children) in step with the update.
		max := float32(-1e30)
		for _, c := range n.children {
			if c != nil && c.LogOdds() > max {
				max = c.LogOdds()
			}
		}
		n.SetLogOdds(max)
	}
	return leaf
}

// prune replaces n's eight children with a single leaf if all eight exist, are themselves leaves,
// and carry the same (exactly, bit-for-bit) log-odds value. This is lossless: eight equal-valued
// sibling leaves and one leaf carrying that value are equivalent under max-of-children
// aggregation. No pruning is attempted across a node whose children themselves have children.
func (t *Tree) prune(n *node) bool {
	value, ok := n.allChildrenAreLeavesWithValue()
	if !ok {
		return false
	}
	for i := uint8(0); i < 8; i++ {
		n.DeleteChild(i)
	}
	n.SetLogOdds(value)
	return true
}

// PruneAll walks the whole tree bottom-up, pruning every node that qualifies. It is the explicit
// catch-up pass a caller must run after a lazy batch of updates if they want the full-tree pruning
// guarantee that per-update pruning gives automatically when lazy is false.
func (t *Tree) PruneAll() {
	t.pruneAllRecurs(t.root)
}

func (t *Tree) pruneAllRecurs(n *node) {
	for _, c := range n.children {
		if c != nil {
			t.pruneAllRecurs(c)
		}
	}
	t.prune(n)
}

// Search descends from the root along key, stopping at depth (default finest, 16). It returns nil
// if any child along the path is absent before depth is reached. If a pruned leaf is reached above
// depth, that leaf is returned directly as the answer, since no finer-grained node exists.
func (t *Tree) Search(key Key, depth uint8) *node {
	if !t.rootTouched {
		return nil
	}
	n := t.root
	if depth == 0 {
		return n
	}
	for d := uint8(0); d < depth; d++ {
		if n.IsLeaf() {
			// A pruned leaf above depth: this is the finest available answer for key.
			return n
		}
		idx := childIndex(key, d)
		child := n.Child(idx)
		if child == nil {
			return nil
		}
		n = child
	}
	return n
}

// DeleteNode removes the subtree rooted at key/depth, if present. Inner nodes left without any
// children by the removal are removed as well, so they are not mistaken for pruned leaves.
func (t *Tree) DeleteNode(key Key, depth uint8) {
	hadChildren := t.root.HasChildren()
	t.deleteNodeRecurs(t.root, key, 0, depth)
	if hadChildren && t.root.IsLeaf() {
		t.rootTouched = false
	}
}

func (t *Tree) deleteNodeRecurs(n *node, key Key, curDepth, targetDepth uint8) {
	if curDepth == targetDepth {
		return
	}
	idx := childIndex(key, curDepth)
	child := n.Child(idx)
	if child == nil {
		return
	}
	if curDepth+1 == targetDepth {
		n.DeleteChild(idx)
		return
	}
	hadChildren := child.HasChildren()
	t.deleteNodeRecurs(child, key, curDepth+1, targetDepth)
	if hadChildren && child.IsLeaf() {
		n.DeleteChild(idx)
	}
	t.prune(n)
}

// UpdateInnerOccupancy performs a post-order traversal setting every inner node's log-odds to the
// maximum of its children's log-odds. This preserves an "occupied-wins" policy for queries made at
// less than full depth: an inner node with both occupied and free children reads as occupied.
func (t *Tree) UpdateInnerOccupancy() {
	t.updateInnerOccupancyRecurs(t.root)
}

func (t *Tree) updateInnerOccupancyRecurs(n *node) {
	if n.IsLeaf() {
		return
	}
	max := float32(-1e30)
	for _, c := range n.children {
		if c == nil {
			continue
		}
		t.updateInnerOccupancyRecurs(c)
		if c.LogOdds() > max {
			max = c.LogOdds()
		}
	}
	n.SetLogOdds(max)
}

// ToMaxLikelihood performs a post-order traversal rewriting every node's log-odds to the occupied
// clamp extreme if it is at or above the occupancy threshold, else the free clamp extreme. It is
// idempotent: running it again leaves every leaf already at a clamp extreme unchanged.
func (t *Tree) ToMaxLikelihood() {
	t.toMaxLikelihoodRecurs(t.root)
}

func (t *Tree) toMaxLikelihoodRecurs(n *node) {
	for _, c := range n.children {
		if c != nil {
			t.toMaxLikelihoodRecurs(c)
		}
	}
	t.nodeToMaxLikelihood(n)
}

// LeafKey pairs a voxel key with the depth at which it is a leaf (16 unless pruning collapsed a
// subtree to a coarser leaf) and the node's current log-odds.
type LeafKey struct {
	Key     Key
	Depth   uint8
	LogOdds float32
}

// Leaves returns every leaf in the tree via an iterative, stack-based in-order traversal (the tree
// is at most 16 deep, but an explicit stack avoids building an intermediate list for large trees
// and supports depth-capped or BBX-clipped consumers without extra allocation).
func (t *Tree) Leaves(maxLeafDepth uint8) []LeafKey {
	if !t.rootTouched {
		return nil
	}
	if maxLeafDepth == 0 || maxLeafDepth > maxDepth {
		maxLeafDepth = maxDepth
	}
	var out []LeafKey
	t.walkLeaves(maxLeafDepth, func(lk LeafKey) bool {
		out = append(out, lk)
		return true
	})
	return out
}

type stackFrame struct {
	n     *node
	key   Key
	depth uint8
}

// walkLeaves drives fn over every leaf at or above maxLeafDepth, stopping early if fn returns
// false. Frames carry the partially-built key (bits above the current depth are already set).
func (t *Tree) walkLeaves(maxLeafDepth uint8, fn func(LeafKey) bool) {
	stack := []stackFrame{{n: t.root, key: Key{}, depth: 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.n.IsLeaf() || f.depth == maxLeafDepth {
			if !fn(LeafKey{Key: f.key, Depth: f.depth, LogOdds: f.n.LogOdds()}) {
				return
			}
			continue
		}
		for i := int(7); i >= 0; i-- {
			c := f.n.Child(uint8(i))
			if c == nil {
				continue
			}
			stack = append(stack, stackFrame{n: c, key: childKey(f.key, f.depth, uint8(i)), depth: f.depth + 1})
		}
	}
}

// childKey sets, in key, the bit at position 15-depth on each axis according to childIdx, and
// returns the result. The parent's higher-order bits (already fixed) are preserved.
func childKey(key Key, depth uint8, childIdx uint8) Key {
	shift := maxDepth - 1 - depth
	if childIdx&1 != 0 {
		key[0] |= 1 << shift
	}
	if childIdx&2 != 0 {
		key[1] |= 1 << shift
	}
	if childIdx&4 != 0 {
		key[2] |= 1 << shift
	}
	return key
}
