package zdd

// This file implements the auxiliary family operations: cardinality,
// membership, subset/strict-subset and disjointness.

// Cardinality returns |n|, the number of sets in the family n denotes.
func (e *Engine[K]) Cardinality(n *Node[K]) uint64 {
	e.checkOwner(n)
	if n.IsZero() {
		return 0
	}
	if n.IsOne() {
		return 1
	}
	if c, ok := e.cardinalityCache[n]; ok {
		return c
	}
	c := e.Cardinality(n.then_) + e.Cardinality(n.else_)
	e.cardinalityCache[n] = c
	return c
}

// Contains reports whether set is a member of the family n denotes.
// set need not be sorted or deduplicated.
func (e *Engine[K]) Contains(n *Node[K], set []K) bool {
	e.checkOwner(n)
	descending := e.dedupSortDescending(sliceSeq(set))

	// Walk the diagram with a pointer into set sorted ascending (so
	// read descending back-to-front): at a node with key k, consume
	// the next required element and descend then_ only if it equals
	// k; otherwise descend else_ without consuming it. Since keys
	// strictly increase along any path, an element that's skipped
	// here (too small or too large for k) can never be matched by an
	// earlier node, so it's safe to just keep walking.
	i := len(descending) - 1
	node := n
	for !node.IsTerminal() && i >= 0 {
		if e.ops.Equal(descending[i], node.key) {
			node = node.then_
			i--
		} else {
			node = node.else_
		}
	}
	if i >= 0 {
		return false
	}
	return e.elseSpine(node).IsOne()
}

// Subset reports whether a ⊆ b.
func (e *Engine[K]) Subset(a, b *Node[K]) bool {
	e.checkOwner(a)
	e.checkOwner(b)
	return e.subset(a, b)
}

func (e *Engine[K]) subset(a, b *Node[K]) bool {
	if a.IsZero() {
		return true
	}
	if a.IsOne() {
		return e.elseSpine(b).IsOne()
	}
	if b.IsZero() {
		return false
	}
	if b.IsOne() {
		return false
	}

	if res, ok := e.subsetCache.get(a, b); ok {
		return res
	}
	var res bool
	switch c := e.ops.Compare(a.key, b.key); {
	case c > 0:
		res = e.subset(a, b.else_)
	case c == 0:
		res = e.subset(a.then_, b.then_) && e.subset(a.else_, b.else_)
	default:
		res = false
	}
	e.subsetCache.put(a, b, res)
	return res
}

// StrictSubset reports whether a ⊂ b (a ⊆ b and a is not b).
func (e *Engine[K]) StrictSubset(a, b *Node[K]) bool {
	return a != b && e.Subset(a, b)
}

// Disjoint reports whether a ∩ b = ⊥.
func (e *Engine[K]) Disjoint(a, b *Node[K]) bool {
	return e.Intersection(a, b).IsZero()
}
