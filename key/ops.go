package key

import (
	"cmp"
	"hash/maphash"
)

// Ops defines a hash function, an equivalence relation and a total
// order over values of type K. Hash and Equal must be consistent: if
// Equal(x, y) is true then Hash must write the same bytes for x and y.
// Compare must be consistent with Equal: Compare(x, y) == 0 iff
// Equal(x, y).
type Ops[K any] interface {
	Hash(*maphash.Hash, K)
	Equal(x, y K) bool
	Compare(x, y K) int
}

// Ordered is an Ops[K] for any K that is already a Go ordered,
// comparable type (ints, strings, and the like). It uses cmp.Compare
// for ordering and maphash.WriteComparable for hashing.
type Ordered[K cmp.Ordered] struct{}

func (Ordered[K]) Hash(h *maphash.Hash, k K) { maphash.WriteComparable(h, k) }
func (Ordered[K]) Equal(x, y K) bool         { return x == y }
func (Ordered[K]) Compare(x, y K) int        { return cmp.Compare(x, y) }

// Comparable is an Ops[K] for comparable K whose zero order doesn't
// matter to the caller (e.g. struct keys used only as set elements
// under a caller-defined Less). Less supplies the total order.
type Comparable[K comparable] struct {
	Less func(x, y K) bool
}

func (c Comparable[K]) Hash(h *maphash.Hash, k K) { maphash.WriteComparable(h, k) }
func (c Comparable[K]) Equal(x, y K) bool         { return x == y }
func (c Comparable[K]) Compare(x, y K) int {
	switch {
	case x == y:
		return 0
	case c.Less(x, y):
		return -1
	default:
		return 1
	}
}
