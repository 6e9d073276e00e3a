package zdd_test

import (
	"testing"

	"github.com/frankban/quicktest"
	"github.com/google/go-cmp/cmp"

	"github.com/gozdd/ydd/key"
	"github.com/gozdd/ydd/zdd"
)

func intEngine() *zdd.Engine[int] {
	return zdd.New[int](key.Ordered[int]{})
}

func collect[K any](n *zdd.Node[K]) [][]K {
	var out [][]K
	for s := range n.All() {
		out = append(out, s)
	}
	return out
}

func TestTerminals(t *testing.T) {
	c := quicktest.New(t)
	e := intEngine()
	c.Assert(e.Terminal(false).IsZero(), quicktest.IsTrue)
	c.Assert(e.Terminal(true).IsOne(), quicktest.IsTrue)
	c.Assert(e.Cardinality(e.Terminal(false)), quicktest.Equals, uint64(0))
	c.Assert(e.Cardinality(e.Terminal(true)), quicktest.Equals, uint64(1))
}

func TestFromSliceRoundTrips(t *testing.T) {
	c := quicktest.New(t)
	e := intEngine()
	n := e.FromSlice([]int{3, 1, 2, 1})
	c.Assert(e.Contains(n, []int{1, 2, 3}), quicktest.IsTrue)
	c.Assert(e.Contains(n, []int{1, 2}), quicktest.IsFalse)
	c.Assert(e.Cardinality(n), quicktest.Equals, uint64(1))

	got := collect(n)
	want := [][]int{{1, 2, 3}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected enumeration (-want +got):\n%s", diff)
	}
}

func TestFromSlicesUnion(t *testing.T) {
	c := quicktest.New(t)
	e := intEngine()
	n := e.FromSlices([][]int{{1}, {2}, {1, 2}, {}})
	c.Assert(e.Cardinality(n), quicktest.Equals, uint64(4))
	c.Assert(e.Contains(n, nil), quicktest.IsTrue)
	c.Assert(e.Contains(n, []int{1}), quicktest.IsTrue)
	c.Assert(e.Contains(n, []int{2}), quicktest.IsTrue)
	c.Assert(e.Contains(n, []int{1, 2}), quicktest.IsTrue)
	c.Assert(e.Contains(n, []int{3}), quicktest.IsFalse)
}

func TestCanonicity(t *testing.T) {
	c := quicktest.New(t)
	e := intEngine()
	a := e.FromSlices([][]int{{1, 2}, {3}})
	b := e.FromSlice([]int{3}).Union(e.FromSlice([]int{1, 2}))
	c.Assert(a, quicktest.Equals, b)
}

func TestUnionCommutativeAndAssociative(t *testing.T) {
	c := quicktest.New(t)
	e := intEngine()
	a := e.FromSlices([][]int{{1}, {2, 3}})
	b := e.FromSlices([][]int{{2}, {1, 3}})
	d := e.FromSlices([][]int{{3}})

	c.Assert(a.Union(b), quicktest.Equals, b.Union(a))
	c.Assert(a.Union(b).Union(d), quicktest.Equals, a.Union(b.Union(d)))
}

func TestIntersectionIdentities(t *testing.T) {
	c := quicktest.New(t)
	e := intEngine()
	a := e.FromSlices([][]int{{1}, {2, 3}})
	zero := e.Terminal(false)

	c.Assert(a.Intersection(zero), quicktest.Equals, zero)
	c.Assert(a.Intersection(a), quicktest.Equals, a)
}

func TestDifferenceAndSymmetricDifference(t *testing.T) {
	c := quicktest.New(t)
	e := intEngine()
	a := e.FromSlices([][]int{{1}, {2}, {1, 2}})
	b := e.FromSlices([][]int{{2}, {3}})

	diff := a.Difference(b)
	c.Assert(e.Contains(diff, []int{1}), quicktest.IsTrue)
	c.Assert(e.Contains(diff, []int{1, 2}), quicktest.IsTrue)
	c.Assert(e.Contains(diff, []int{2}), quicktest.IsFalse)

	symDiff := a.SymmetricDifference(b)
	c.Assert(e.Contains(symDiff, []int{1}), quicktest.IsTrue)
	c.Assert(e.Contains(symDiff, []int{1, 2}), quicktest.IsTrue)
	c.Assert(e.Contains(symDiff, []int{3}), quicktest.IsTrue)
	c.Assert(e.Contains(symDiff, []int{2}), quicktest.IsFalse)
}

// TestSymmetricDifferenceWithUniversal checks that when one operand is
// ⊤ (contains only ∅), A△⊤ still satisfies the XOR membership law
// rather than silently degrading to a plain difference.
func TestSymmetricDifferenceWithUniversal(t *testing.T) {
	c := quicktest.New(t)
	e := intEngine()
	a := e.FromSlices([][]int{{}, {1}})
	one := e.Terminal(true)

	got := a.SymmetricDifference(one)
	c.Assert(e.Contains(got, nil), quicktest.IsFalse)
	c.Assert(e.Contains(got, []int{1}), quicktest.IsTrue)
}

func TestInclusionExclusion(t *testing.T) {
	c := quicktest.New(t)
	e := intEngine()
	a := e.FromSlices([][]int{{1}, {2}, {1, 2}})
	b := e.FromSlices([][]int{{2}, {3}})

	union := e.Cardinality(a.Union(b))
	inter := e.Cardinality(a.Intersection(b))
	want := e.Cardinality(a) + e.Cardinality(b) - inter
	c.Assert(union, quicktest.Equals, want)
}

func TestSubsetReflexiveAndTransitive(t *testing.T) {
	c := quicktest.New(t)
	e := intEngine()
	a := e.FromSlices([][]int{{1}})
	b := e.FromSlices([][]int{{1}, {2}})
	d := e.FromSlices([][]int{{1}, {2}, {3}})

	c.Assert(e.Subset(a, a), quicktest.IsTrue)
	c.Assert(e.StrictSubset(a, a), quicktest.IsFalse)
	c.Assert(e.Subset(a, b), quicktest.IsTrue)
	c.Assert(e.Subset(b, d), quicktest.IsTrue)
	c.Assert(e.Subset(a, d), quicktest.IsTrue)
	c.Assert(e.StrictSubset(a, d), quicktest.IsTrue)
	c.Assert(e.Subset(d, a), quicktest.IsFalse)
}

func TestDisjoint(t *testing.T) {
	c := quicktest.New(t)
	e := intEngine()
	a := e.FromSlices([][]int{{1}})
	b := e.FromSlices([][]int{{2}})
	d := e.FromSlices([][]int{{1}, {2}})

	c.Assert(e.Disjoint(a, b), quicktest.IsTrue)
	c.Assert(e.Disjoint(a, d), quicktest.IsFalse)
}

func TestMismatchedEngine(t *testing.T) {
	c := quicktest.New(t)
	e1 := intEngine()
	e2 := intEngine()
	a := e1.FromSlice([]int{1})
	b := e2.FromSlice([]int{2})

	err := zdd.SafeCall(func() { e1.Union(a, b) })
	c.Assert(err, quicktest.ErrorIs, zdd.ErrMismatchedEngine)
}

func TestEnumerateMatchesMembership(t *testing.T) {
	c := quicktest.New(t)
	e := intEngine()
	n := e.FromSlices([][]int{{}, {1}, {2, 3}, {1, 2, 3}})
	for _, s := range collect(n) {
		c.Assert(e.Contains(n, s), quicktest.IsTrue)
	}
	c.Assert(len(collect(n)), quicktest.Equals, int(e.Cardinality(n)))
}
