package key_test

import (
	"hash/maphash"
	"testing"

	"github.com/frankban/quicktest"

	"github.com/gozdd/ydd/key"
)

func TestOrderedCompareEqualHash(t *testing.T) {
	c := quicktest.New(t)
	ops := key.Ordered[int]{}

	c.Assert(ops.Compare(1, 2) < 0, quicktest.IsTrue)
	c.Assert(ops.Compare(2, 1) > 0, quicktest.IsTrue)
	c.Assert(ops.Compare(1, 1), quicktest.Equals, 0)
	c.Assert(ops.Equal(1, 1), quicktest.IsTrue)
	c.Assert(ops.Equal(1, 2), quicktest.IsFalse)

	var h1, h2 maphash.Hash
	ops.Hash(&h1, 42)
	ops.Hash(&h2, 42)
	c.Assert(h1.Sum64(), quicktest.Equals, h2.Sum64())
}

type pair struct{ a, b int }

func TestComparableUsesLess(t *testing.T) {
	c := quicktest.New(t)
	ops := key.Comparable[pair]{Less: func(x, y pair) bool {
		if x.a != y.a {
			return x.a < y.a
		}
		return x.b < y.b
	}}

	c.Assert(ops.Compare(pair{1, 0}, pair{2, 0}) < 0, quicktest.IsTrue)
	c.Assert(ops.Compare(pair{1, 5}, pair{1, 2}) > 0, quicktest.IsTrue)
	c.Assert(ops.Compare(pair{1, 1}, pair{1, 1}), quicktest.Equals, 0)
	c.Assert(ops.Equal(pair{1, 1}, pair{1, 1}), quicktest.IsTrue)
}
