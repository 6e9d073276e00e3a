package zdd

// Enumerate returns a lazy iterator over every set the family n
// denotes, each yielded as a slice of keys in ascending order. The
// traversal is iterative, using an explicit stack of "then-parent"
// nodes, so it cannot overflow the goroutine stack regardless of
// diagram depth.
func (e *Engine[K]) Enumerate(n *Node[K]) func(yield func([]K) bool) {
	e.checkOwner(n)
	return func(yield func([]K) bool) {
		if n.IsZero() {
			return
		}

		var stack []*Node[K]
		var path []K
		node := n

		for !node.IsZero() {
			if node.IsOne() {
				out := make([]K, len(path))
				copy(out, path)
				if !yield(out) {
					return
				}
				if len(stack) == 0 {
					return
				}
				node = stack[len(stack)-1]
				stack = stack[:len(stack)-1]

				kept := path[:0:0]
				for _, k := range path {
					if e.ops.Compare(k, node.key) < 0 {
						kept = append(kept, k)
					}
				}
				path = append(kept, node.key)
				node = node.then_
				continue
			}

			if !node.else_.IsZero() {
				stack = append(stack, node)
				node = node.else_
				continue
			}

			path = append(path, node.key)
			node = node.then_
		}
	}
}
