package zdd

import (
	"hash/maphash"
	"weak"

	"github.com/gozdd/ydd/key"
)

// uniqueTable is the hash-consing store enforcing canonicity: entries
// are always held as weak.Pointer[Node[K]], so a node's presence in
// the table never by itself keeps it alive. In strong mode the Engine
// additionally appends every newly-created node to keep, a GC root
// slice, so that nodes live for the engine's whole lifetime; in weak
// mode keep is never populated and a node is reclaimed as soon as
// nothing else (an external handle, or another live node's then/else
// edge) holds a strong reference to it.
//
// Unlike anyunique.New, this table is not memoised behind a
// package-level cache keyed on the type parameters: two Engines must
// never share nodes, so each Engine owns a private uniqueTable.
type uniqueTable[K any] struct {
	ops     key.Ops[K]
	seed    maphash.Seed
	isWeak  bool
	entries map[uint64][]weak.Pointer[Node[K]]
	keep    []*Node[K]
}

func newUniqueTable[K any](ops key.Ops[K], isWeak bool) *uniqueTable[K] {
	return &uniqueTable[K]{
		ops:     ops,
		seed:    maphash.MakeSeed(),
		isWeak:  isWeak,
		entries: make(map[uint64][]weak.Pointer[Node[K]]),
	}
}

func (t *uniqueTable[K]) hash(k K, then_, else_ *Node[K]) uint64 {
	var h maphash.Hash
	h.SetSeed(t.seed)
	t.ops.Hash(&h, k)
	maphash.WriteComparable(&h, then_)
	maphash.WriteComparable(&h, else_)
	return h.Sum64()
}

// intern returns the unique internal node for (k, then_, else_),
// creating it with create if it doesn't already exist. The reduction
// rule must already have been applied by the caller (construct.go):
// intern never suppresses a node itself.
func (t *uniqueTable[K]) intern(k K, then_, else_ *Node[K], create func() *Node[K]) *Node[K] {
	h := t.hash(k, then_, else_)
	bucket := t.entries[h]
	firstEmpty := -1
	for i, wp := range bucket {
		n := wp.Value()
		if n == nil {
			if firstEmpty == -1 {
				firstEmpty = i
			}
			continue
		}
		if n.then_ == then_ && n.else_ == else_ && t.ops.Equal(n.key, k) {
			return n
		}
	}

	n := create()
	entry := weak.Make(n)
	if firstEmpty != -1 {
		bucket[firstEmpty] = entry
	} else {
		bucket = append(bucket, entry)
	}
	t.entries[h] = bucket

	if !t.isWeak {
		t.keep = append(t.keep, n)
	}
	return n
}

// size returns the number of live entries currently reachable in the
// table. It's used only for metrics/diagnostics, not for engine logic.
func (t *uniqueTable[K]) size() int {
	n := 0
	for _, bucket := range t.entries {
		for _, wp := range bucket {
			if wp.Value() != nil {
				n++
			}
		}
	}
	return n
}
