package zdd

import "fmt"

// makeNode applies the ZDD reduction rule and returns the unique node
// for (k, then_, else_). then_ and else_ must belong to e; this is
// checked here since every node-construction path funnels through
// makeNode.
//
// Reduction rule: a node whose then-edge is the zero terminal denotes
// exactly its else-edge's family
// (⟦Internal(k,⊥,e)⟧ = ∅ ∪ ⟦e⟧ = ⟦e⟧), so it is never created; its
// else-edge is returned instead. This is the sole suppression rule,
// and together with canonicity it's what makes the representation
// zero-suppressed rather than a plain reduced BDD.
// MakeNode returns the unique node for (k, then_, else_), applying the
// zero-suppression reduction rule. It is the same primitive the
// binary-operation engine is built on, exported for packages (such as
// homomorphism and petrinet) that need to construct nodes directly
// rather than through set algebra. then_ and else_ must belong to e,
// and k must order strictly before both children's keys if they are
// internal nodes; violations panic with ErrMismatchedEngine /
// ErrInvalidOrdering.
func (e *Engine[K]) MakeNode(k K, then_, else_ *Node[K]) *Node[K] {
	return e.makeNode(k, then_, else_)
}

func (e *Engine[K]) makeNode(k K, then_, else_ *Node[K]) *Node[K] {
	e.checkOwner(then_)
	e.checkOwner(else_)

	if then_.IsZero() {
		return else_
	}

	if debugCheckOrdering {
		e.checkOrdering(k, then_, else_)
	}

	return e.table.intern(k, then_, else_, func() *Node[K] {
		e.nodesCreated++
		e.recordNodeCreated()
		return &Node[K]{creator: e, term: internalKind, key: k, then_: then_, else_: else_}
	})
}

func (e *Engine[K]) checkOwner(n *Node[K]) {
	if n.creator != e {
		panic(fmt.Errorf("%w: got a node from engine %s, want %s", ErrMismatchedEngine, n.creator.idString(), e.idString()))
	}
}

// debugCheckOrdering gates the (relatively expensive, child-key
// comparison) ordering assertion. It's always on: the check is O(1)
// and the invariant it guards is the one thing that silently
// corrupting canonicity would be hardest to notice later.
const debugCheckOrdering = true

func (e *Engine[K]) checkOrdering(k K, then_, else_ *Node[K]) {
	if !then_.IsTerminal() && e.ops.Compare(k, then_.key) >= 0 {
		panic(fmt.Errorf("%w: key not less than then-child's key", ErrInvalidOrdering))
	}
	if !else_.IsTerminal() && e.ops.Compare(k, else_.key) >= 0 {
		panic(fmt.Errorf("%w: key not less than else-child's key", ErrInvalidOrdering))
	}
}
