package petrinet_test

import (
	"strings"
	"testing"

	"github.com/frankban/quicktest"

	"github.com/gozdd/ydd/key"
	"github.com/gozdd/ydd/petrinet"
	"github.com/gozdd/ydd/zdd"
)

func TestSafeTokenPassingStateSpace(t *testing.T) {
	c := quicktest.New(t)
	engine := zdd.New[int](key.Ordered[int]{})

	pre := map[string][]int{"t": {1, 0}}
	post := map[string][]int{"t": {0, 1}}
	net := petrinet.NewSafe(engine, pre, post, []int{0}, map[int]string{0: "p0", 1: "p1"})

	states := net.StateSpace()
	c.Assert(engine.Cardinality(states), quicktest.Equals, uint64(2))
	c.Assert(engine.Contains(states, []int{0}), quicktest.IsTrue)
	c.Assert(engine.Contains(states, []int{1}), quicktest.IsTrue)
	c.Assert(engine.Contains(states, []int{0, 1}), quicktest.IsFalse)
}

func TestSafeMutualExclusion(t *testing.T) {
	c := quicktest.New(t)
	engine := zdd.New[int](key.Ordered[int]{})

	// Two places compete for one shared token: t0 moves it from the
	// shared place (2) into place 0, t1 moves it into place 1, and
	// reverse transitions give it back.
	pre := map[string][]int{
		"acquire0": {0, 0, 1},
		"acquire1": {0, 0, 1},
		"release0": {1, 0, 0},
		"release1": {0, 1, 0},
	}
	post := map[string][]int{
		"acquire0": {1, 0, 0},
		"acquire1": {0, 1, 0},
		"release0": {0, 0, 1},
		"release1": {0, 0, 1},
	}
	net := petrinet.NewSafe(engine, pre, post, []int{2}, nil)

	states := net.StateSpace()
	for _, s := range [][]int{{2}, {0}, {1}} {
		c.Assert(engine.Contains(states, s), quicktest.IsTrue)
	}
	c.Assert(engine.Contains(states, []int{0, 1}), quicktest.IsFalse)
}

func TestParsePNMLRejectsNotOneSafe(t *testing.T) {
	c := quicktest.New(t)
	engine := zdd.New[int](key.Ordered[int]{})

	doc := `<?xml version="1.0"?>
<pnml>
  <net id="n0">
    <place id="p0"><name><text>p0</text></name><initialMarking><text>2</text></initialMarking></place>
    <transition id="t0"><name><text>t0</text></name></transition>
  </net>
</pnml>`

	_, err := petrinet.ParsePNML(engine, strings.NewReader(doc))
	c.Assert(err, quicktest.ErrorIs, petrinet.ErrNotOneSafe)
}

func TestParsePNMLBuildsExpectedNet(t *testing.T) {
	c := quicktest.New(t)
	engine := zdd.New[int](key.Ordered[int]{})

	doc := `<?xml version="1.0"?>
<pnml xmlns="http://www.pnml.org/version-2009/grammar/pnml">
  <net id="n0">
    <place id="p0"><name><text>start</text></name><initialMarking><text>1</text></initialMarking></place>
    <place id="p1"><name><text>end</text></name></place>
    <transition id="t0"><name><text>move</text></name></transition>
    <arc id="a0" source="p0" target="t0"/>
    <arc id="a1" source="t0" target="p1"/>
  </net>
</pnml>`

	nets, err := petrinet.ParsePNML(engine, strings.NewReader(doc))
	c.Assert(err, quicktest.IsNil)
	c.Assert(len(nets), quicktest.Equals, 1)

	net, ok := nets["n0"]
	c.Assert(ok, quicktest.IsTrue)
	c.Assert(net.PlaceName(0), quicktest.Equals, "start")
	c.Assert(net.PlaceName(1), quicktest.Equals, "end")

	states := net.StateSpace()
	c.Assert(engine.Contains(states, []int{0}), quicktest.IsTrue)
	c.Assert(engine.Contains(states, []int{1}), quicktest.IsTrue)
}
