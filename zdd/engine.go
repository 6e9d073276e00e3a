package zdd

import (
	"context"
	"iter"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"

	"github.com/gozdd/ydd/key"
)

// Engine is a single-threaded ZDD engine: it owns the unique table and
// the per-operation caches for one key domain K, and is the only
// thing that can create a [Node]. Engines are not safe for concurrent
// mutation, and two Engines never share nodes.
type Engine[K any] struct {
	id   uuid.UUID
	ops  key.Ops[K]
	zero *Node[K]
	one  *Node[K]
	table *uniqueTable[K]

	unionCache        *opCache[K, *Node[K]]
	intersectionCache *opCache[K, *Node[K]]
	differenceCache   *opCache[K, *Node[K]]
	symDiffCache      *opCache[K, *Node[K]]
	cardinalityCache  map[*Node[K]]uint64
	subsetCache       *opCache[K, bool]

	recursionLimit int // 0 means unlimited

	nodesCreated uint64

	instruments *engineInstruments
}

// Option configures an Engine at construction time.
type Option[K any] func(*Engine[K])

// WithWeakTable makes the unique table hold its entries weakly, so a
// node with no surviving external or intra-DAG reference can be
// reclaimed and its table slot reused. The default (strong) mode keeps
// every created node alive for the Engine's lifetime.
func WithWeakTable[K any]() Option[K] {
	return func(e *Engine[K]) { e.table.isWeak = true }
}

// WithRecursionLimit bounds the depth of the recursive binary-operation
// engine. This guards against pathological inputs; it is not needed to
// keep recursion within the native call stack. n <= 0 means unlimited,
// the default.
func WithRecursionLimit[K any](n int) Option[K] {
	return func(e *Engine[K]) { e.recursionLimit = n }
}

// WithMeter wires engine-level counters (nodes created, per-operation
// cache hit/miss) through an OpenTelemetry meter.
// A nil meter (the default) disables instrumentation.
func WithMeter[K any](m metric.Meter) Option[K] {
	return func(e *Engine[K]) { e.instruments = newEngineInstruments(m, e.id.String()) }
}

// New creates an Engine for key domain K using ops to hash, compare
// and order keys.
func New[K any](ops key.Ops[K], opts ...Option[K]) *Engine[K] {
	e := &Engine[K]{
		id:                uuid.New(),
		ops:               ops,
		unionCache:        newOpCache[K, *Node[K]](),
		intersectionCache: newOpCache[K, *Node[K]](),
		differenceCache:   newOpCache[K, *Node[K]](),
		symDiffCache:      newOpCache[K, *Node[K]](),
		cardinalityCache:  make(map[*Node[K]]uint64),
		subsetCache:       newOpCache[K, bool](),
	}
	e.table = newUniqueTable(ops, false)
	e.zero = &Node[K]{creator: e, term: zeroKind}
	e.one = &Node[K]{creator: e, term: oneKind}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ID uniquely identifies this engine instance, for correlating engine
// instances across logs and metrics.
func (e *Engine[K]) ID() uuid.UUID { return e.id }

func (e *Engine[K]) idString() string { return e.id.String() }

// Ops returns the hash/compare/equality strategy this engine was built
// with, so other packages (homomorphism, petrinet) that construct
// nodes directly via [Engine.MakeNode] can order and compare keys the
// same way the engine does.
func (e *Engine[K]) Ops() key.Ops[K] { return e.ops }

// Terminal returns ⊤ if v, else ⊥.
func (e *Engine[K]) Terminal(v bool) *Node[K] {
	if v {
		return e.one
	}
	return e.zero
}

// FromSlice builds the ZDD denoting the family containing exactly the
// one set of elements, deduplicated. An empty slice denotes {∅} (⊤).
func (e *Engine[K]) FromSlice(elements []K) *Node[K] {
	return e.FromSet(sliceSeq(elements))
}

// FromSet builds the ZDD denoting the family containing exactly the
// one set enumerated by elements, deduplicated. An empty sequence
// denotes {∅} (⊤).
func (e *Engine[K]) FromSet(elements iter.Seq[K]) *Node[K] {
	sorted := e.dedupSortDescending(elements)
	rv := e.one
	for _, el := range sorted {
		rv = e.makeNode(el, rv, e.zero)
	}
	return rv
}

// FromSlices builds the ZDD denoting the union of the given sets.
// An empty outer slice denotes ∅ (⊥).
func (e *Engine[K]) FromSlices(sets [][]K) *Node[K] {
	rv := e.zero
	for _, s := range sets {
		rv = e.Union(rv, e.FromSlice(s))
	}
	return rv
}

// FromFamily builds the ZDD denoting the union of the sets enumerated
// by family. An empty outer sequence denotes ∅ (⊥).
func (e *Engine[K]) FromFamily(family iter.Seq[iter.Seq[K]]) *Node[K] {
	rv := e.zero
	for set := range family {
		rv = e.Union(rv, e.FromSet(set))
	}
	return rv
}

// dedupSortDescending removes duplicates (per e.ops.Equal) and sorts
// the result in descending order, ready for the caller's right-fold
// through makeNode.
func (e *Engine[K]) dedupSortDescending(elements iter.Seq[K]) []K {
	var all []K
	for el := range elements {
		all = append(all, el)
	}
	// insertion sort by Compare, descending; these slices are small
	// in practice (the width of one set), so O(n^2) is fine and keeps
	// the dependency on a user Compare function explicit rather than
	// routed through sort.Slice's less-than assumption of a total
	// order that may not be <.
	for i := 1; i < len(all); i++ {
		for j := i; j > 0 && e.ops.Compare(all[j-1], all[j]) < 0; j-- {
			all[j-1], all[j] = all[j], all[j-1]
		}
	}
	out := all[:0]
	for i, el := range all {
		if i > 0 && e.ops.Equal(el, out[len(out)-1]) {
			continue
		}
		out = append(out, el)
	}
	return out
}

func sliceSeq[K any](s []K) iter.Seq[K] {
	return func(yield func(K) bool) {
		for _, v := range s {
			if !yield(v) {
				return
			}
		}
	}
}

func (e *Engine[K]) recordNodeCreated() {
	if e.instruments != nil {
		e.instruments.nodesCreated.Add(context.Background(), 1, metric.WithAttributes(e.instruments.engineAttr))
	}
}

func (e *Engine[K]) recordCache(op string, hit bool) {
	if e.instruments == nil {
		return
	}
	attrs := metric.WithAttributes(e.instruments.engineAttr, opAttr(op))
	if hit {
		e.instruments.cacheHits.Add(context.Background(), 1, attrs)
	} else {
		e.instruments.cacheMisses.Add(context.Background(), 1, attrs)
	}
}

// UniqueTableSize returns the number of live entries currently
// reachable in the unique table. Intended for diagnostics/metrics.
func (e *Engine[K]) UniqueTableSize() int { return e.table.size() }

// NodesCreated returns the total number of internal nodes ever
// allocated by this engine (including ones since reclaimed under
// WithWeakTable).
func (e *Engine[K]) NodesCreated() uint64 { return e.nodesCreated }
