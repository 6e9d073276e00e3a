package zdd_test

import (
	"strings"
	"testing"

	"github.com/frankban/quicktest"

	"github.com/gozdd/ydd/key"
	"github.com/gozdd/ydd/zdd"
)

func TestGoStringRendersTree(t *testing.T) {
	c := quicktest.New(t)
	e := zdd.New[int](key.Ordered[int]{})
	n := e.FromSlice([]int{1, 2})

	s := n.GoString()
	c.Assert(strings.Contains(s, "then:"), quicktest.IsTrue)
	c.Assert(strings.Contains(s, "else:"), quicktest.IsTrue)
	c.Assert(strings.Contains(s, "$0"), quicktest.IsTrue)
	c.Assert(strings.Contains(s, "$1"), quicktest.IsTrue)
}

func TestTerminalGoString(t *testing.T) {
	c := quicktest.New(t)
	e := zdd.New[int](key.Ordered[int]{})
	c.Assert(e.Terminal(false).GoString(), quicktest.Equals, "$0\n")
	c.Assert(e.Terminal(true).GoString(), quicktest.Equals, "$1\n")
}

func TestStringRendersMemberSets(t *testing.T) {
	c := quicktest.New(t)
	e := zdd.New[int](key.Ordered[int]{})
	n := e.FromSlices([][]int{{1}, {2, 3}})
	s := n.String()
	c.Assert(strings.Contains(s, "[1]"), quicktest.IsTrue)
	c.Assert(strings.Contains(s, "[2 3]"), quicktest.IsTrue)
}
