package zdd

// This file implements the recursive, memoised binary-operation
// engine: union, intersection, difference and symmetric difference
// all follow the same three-way key-comparison recursion schema,
// differing only in their terminal and skew-case table.

// Union returns a ∪ b: the family of sets that are members of a, of
// b, or both.
func (e *Engine[K]) Union(a, b *Node[K]) *Node[K] {
	e.checkOwner(a)
	e.checkOwner(b)
	depth := 0
	return e.union(a, b, &depth)
}

func (e *Engine[K]) union(left, right *Node[K], depth *int) *Node[K] {
	e.enterRecursion(depth)
	defer e.leaveRecursion(depth)

	cacheA, cacheB := left, right
	if nodeLess(cacheB, cacheA) {
		cacheA, cacheB = cacheB, cacheA
	}
	if res, ok := e.unionCache.get(cacheA, cacheB); ok {
		e.recordCache("union", true)
		return res
	}
	e.recordCache("union", false)

	res := e.unionUncached(left, right, depth)
	e.unionCache.put(cacheA, cacheB, res)
	return res
}

func (e *Engine[K]) unionUncached(left, right *Node[K], depth *int) *Node[K] {
	switch {
	case right.IsOne():
		// right has no accepting path beyond the empty set, except
		// possibly absence-of-all-remaining-keys; splice ⊤ in.
		return e.elseSplice(left, e.one)
	case right.IsZero():
		return left
	case left.IsOne():
		return e.elseSplice(right, e.one)
	case left.IsZero():
		return right
	}

	switch c := e.ops.Compare(left.key, right.key); {
	case c < 0:
		// left starts with a smaller key: right has no accepting path
		// through it, continue only on left's else-child.
		return e.makeNode(left.key, left.then_, e.union(left.else_, right, depth))
	case c == 0:
		return e.makeNode(left.key,
			e.union(left.then_, right.then_, depth),
			e.union(left.else_, right.else_, depth))
	default:
		return e.makeNode(right.key, right.then_, e.union(left, right.else_, depth))
	}
}

// Intersection returns a ∩ b: the family of sets that are members of
// both a and b.
func (e *Engine[K]) Intersection(a, b *Node[K]) *Node[K] {
	e.checkOwner(a)
	e.checkOwner(b)
	depth := 0
	return e.intersection(a, b, &depth)
}

func (e *Engine[K]) intersection(left, right *Node[K], depth *int) *Node[K] {
	e.enterRecursion(depth)
	defer e.leaveRecursion(depth)

	cacheA, cacheB := left, right
	if nodeLess(cacheB, cacheA) {
		cacheA, cacheB = cacheB, cacheA
	}
	if res, ok := e.intersectionCache.get(cacheA, cacheB); ok {
		e.recordCache("intersection", true)
		return res
	}
	e.recordCache("intersection", false)

	res := e.intersectionUncached(left, right, depth)
	e.intersectionCache.put(cacheA, cacheB, res)
	return res
}

func (e *Engine[K]) intersectionUncached(left, right *Node[K], depth *int) *Node[K] {
	switch {
	case right.IsZero(), left.IsZero():
		return e.zero
	case right.IsOne():
		return e.elseSpine(left)
	case left.IsOne():
		return e.elseSpine(right)
	}

	switch c := e.ops.Compare(left.key, right.key); {
	case c < 0:
		return e.intersection(left.else_, right, depth)
	case c == 0:
		return e.makeNode(left.key,
			e.intersection(left.then_, right.then_, depth),
			e.intersection(left.else_, right.else_, depth))
	default:
		return e.intersection(left, right.else_, depth)
	}
}

// Difference returns a \ b: the family of sets that are members of a
// but not of b.
func (e *Engine[K]) Difference(a, b *Node[K]) *Node[K] {
	e.checkOwner(a)
	e.checkOwner(b)
	depth := 0
	return e.difference(a, b, &depth)
}

func (e *Engine[K]) difference(left, right *Node[K], depth *int) *Node[K] {
	e.enterRecursion(depth)
	defer e.leaveRecursion(depth)

	if res, ok := e.differenceCache.get(left, right); ok {
		e.recordCache("difference", true)
		return res
	}
	e.recordCache("difference", false)

	res := e.differenceUncached(left, right, depth)
	e.differenceCache.put(left, right, res)
	return res
}

func (e *Engine[K]) differenceUncached(left, right *Node[K], depth *int) *Node[K] {
	switch {
	case right.IsZero():
		return left
	case right.IsOne():
		return e.elseSplice(left, e.zero)
	case left.IsZero():
		return left
	case left.IsOne():
		if e.elseSpine(right).IsZero() {
			return e.one
		}
		return e.zero
	}

	switch c := e.ops.Compare(left.key, right.key); {
	case c < 0:
		return e.makeNode(left.key, left.then_, e.difference(left.else_, right, depth))
	case c == 0:
		return e.makeNode(left.key,
			e.difference(left.then_, right.then_, depth),
			e.difference(left.else_, right.else_, depth))
	default:
		return e.difference(left, right.else_, depth)
	}
}

// SymmetricDifference returns a △ b: the family of sets that are
// members of exactly one of a, b.
func (e *Engine[K]) SymmetricDifference(a, b *Node[K]) *Node[K] {
	e.checkOwner(a)
	e.checkOwner(b)
	depth := 0
	return e.symmetricDifference(a, b, &depth)
}

func (e *Engine[K]) symmetricDifference(left, right *Node[K], depth *int) *Node[K] {
	e.enterRecursion(depth)
	defer e.leaveRecursion(depth)

	cacheA, cacheB := left, right
	if nodeLess(cacheB, cacheA) {
		cacheA, cacheB = cacheB, cacheA
	}
	if res, ok := e.symDiffCache.get(cacheA, cacheB); ok {
		e.recordCache("symmetric_difference", true)
		return res
	}
	e.recordCache("symmetric_difference", false)

	res := e.symmetricDifferenceUncached(left, right, depth)
	e.symDiffCache.put(cacheA, cacheB, res)
	return res
}

func (e *Engine[K]) symmetricDifferenceUncached(left, right *Node[K], depth *int) *Node[K] {
	switch {
	case right.IsZero():
		return left
	case right.IsOne():
		// X △ {∅} removes ∅ from X if X contains it and adds it
		// otherwise, so S ∈ A△B ↔ (S∈A) XOR (S∈B) holds when B=⊤.
		if e.elseSpine(left).IsOne() {
			return e.elseSplice(left, e.zero)
		}
		return e.elseSplice(left, e.one)
	case left.IsZero():
		return right
	case left.IsOne():
		// Symmetric to the right-hand ⊤ arm, not a fall-back to
		// difference.
		if e.elseSpine(right).IsOne() {
			return e.elseSplice(right, e.zero)
		}
		return e.elseSplice(right, e.one)
	}

	switch c := e.ops.Compare(left.key, right.key); {
	case c < 0:
		return e.makeNode(left.key, left.then_, e.symmetricDifference(left.else_, right, depth))
	case c == 0:
		return e.makeNode(left.key,
			e.symmetricDifference(left.then_, right.then_, depth),
			e.symmetricDifference(left.else_, right.else_, depth))
	default:
		return e.makeNode(right.key, right.then_, e.symmetricDifference(left, right.else_, depth))
	}
}

// elseSpine follows else-edges from n until a terminal is reached,
// and returns that terminal.
func (e *Engine[K]) elseSpine(n *Node[K]) *Node[K] {
	for !n.IsTerminal() {
		n = n.else_
	}
	return n
}

// elseSplice rebuilds n with the terminal at the end of its else-spine
// replaced by child, re-interning every node above it. It's used to
// force the "absence of all further keys" branch to ⊤ (union, or
// symmetric difference with an operand lacking ∅) or ⊥ (difference, or
// symmetric difference with an operand containing ∅) when the other
// operand is ⊤.
func (e *Engine[K]) elseSplice(n, child *Node[K]) *Node[K] {
	if n.IsTerminal() {
		return child
	}
	if n.else_.IsTerminal() {
		return e.makeNode(n.key, n.then_, child)
	}
	return e.makeNode(n.key, n.then_, e.elseSplice(n.else_, child))
}

func (e *Engine[K]) enterRecursion(depth *int) {
	*depth++
	if e.recursionLimit > 0 && *depth > e.recursionLimit {
		panic(ErrRecursionLimitExceeded)
	}
}

func (e *Engine[K]) leaveRecursion(depth *int) {
	*depth--
}
