package petrinet_test

import (
	"testing"

	"github.com/frankban/quicktest"

	"github.com/gozdd/ydd/petrinet"
	"github.com/gozdd/ydd/zdd"
)

func TestPhilosophersThreeStateSpaceCardinality(t *testing.T) {
	c := quicktest.New(t)
	engine := zdd.New[petrinet.Place](petrinet.PlaceOps)
	net := petrinet.NewPhilosophers(engine, 3)

	states := net.StateSpace()
	c.Assert(engine.Cardinality(states), quicktest.Equals, uint64(5))
	c.Assert(engine.Contains(states, toSlice(net.M0())), quicktest.IsTrue)
}

func toSlice(n *zdd.Node[petrinet.Place]) []petrinet.Place {
	for s := range n.All() {
		return s
	}
	return nil
}

func TestPhilosophersStateSpaceIsFixedPoint(t *testing.T) {
	c := quicktest.New(t)
	engine := zdd.New[petrinet.Place](petrinet.PlaceOps)
	net := petrinet.NewPhilosophers(engine, 2)

	states := net.StateSpace()
	// Every reachable marking's one-step successors are already in the
	// state space; StateSpace is a fixed point of x ∪ step(x).
	c.Assert(engine.Subset(states, engine.Union(states, states)), quicktest.IsTrue)
	c.Assert(engine.Cardinality(states) > 0, quicktest.IsTrue)
	// With 2 philosophers the successors of the initial marking are
	// "philosopher 0 eats" and "philosopher 1 eats"; each steps back to
	// the initial marking, so these three markings are the fixed point.
	eats0 := []petrinet.Place{
		{Name: 0, Tokens: 0}, {Name: 1, Tokens: 0}, {Name: 2, Tokens: 1},
		{Name: 3, Tokens: 1}, {Name: 4, Tokens: 0}, {Name: 5, Tokens: 0},
	}
	eats1 := []petrinet.Place{
		{Name: 0, Tokens: 1}, {Name: 1, Tokens: 0}, {Name: 2, Tokens: 0},
		{Name: 3, Tokens: 0}, {Name: 4, Tokens: 0}, {Name: 5, Tokens: 1},
	}
	c.Assert(engine.Contains(states, toSlice(net.M0())), quicktest.IsTrue)
	c.Assert(engine.Contains(states, eats0), quicktest.IsTrue)
	c.Assert(engine.Contains(states, eats1), quicktest.IsTrue)
	c.Assert(engine.Cardinality(states), quicktest.Equals, uint64(3))
}
