package petrinet

import (
	"fmt"

	"github.com/gozdd/ydd/key"
	"github.com/gozdd/ydd/zdd"
)

// Place identifies one place of a token-counted net by name (an
// arbitrary small integer, typically a dense index) together with a
// specific token count. A ZDD over Place denotes a family of markings
// the same way a ZDD over a plain presence key denotes a family of
// sets — except every member decides every place name exactly once
// (never suppressed), since "zero tokens" is itself an ordinary key
// value rather than absence.
type Place struct {
	Name   int
	Tokens int
}

func placeLess(a, b Place) bool {
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.Tokens < b.Tokens
}

// PlaceOps orders Place values by name ascending, then token count
// ascending, for use with [zdd.New].
var PlaceOps key.Ops[Place] = key.Comparable[Place]{Less: placeLess}

// Counted is a general place/transition net: each place carries an
// arbitrary non-negative token count, and the family of reachable
// markings is a ZDD over Place keys.
type Counted struct {
	engine    *zdd.Engine[Place]
	pre, post map[string][]int
	m0        *zdd.Node[Place]

	cache map[countedCacheKey]*zdd.Node[Place]
}

type countedCacheKey struct {
	fn        string
	trans     string
	placeName int
	markings  *zdd.Node[Place]
}

// NewCounted builds a Counted net from per-transition pre/post
// arc-weight vectors (indexed by place name) and an initial marking
// naming every place's starting token count.
func NewCounted(engine *zdd.Engine[Place], pre, post map[string][]int, m0 []Place) *Counted {
	return &Counted{
		engine: engine,
		pre:    pre,
		post:   post,
		m0:     engine.FromSlice(m0),
		cache:  make(map[countedCacheKey]*zdd.Node[Place]),
	}
}

// Engine returns the ZDD engine backing this net.
func (c *Counted) Engine() *zdd.Engine[Place] { return c.engine }

// M0 returns the initial marking, as a singleton family.
func (c *Counted) M0() *zdd.Node[Place] { return c.m0 }

// filterMarkings restricts markings to the members for which trans is
// enabled, starting the place-name scan at placeName.
func (c *Counted) filterMarkings(markings *zdd.Node[Place], trans string, placeName int) *zdd.Node[Place] {
	pre := c.pre[trans]
	if markings.IsZero() || placeName >= len(pre) {
		return markings
	}

	key := countedCacheKey{fn: "filter", trans: trans, placeName: placeName, markings: markings}
	if v, ok := c.cache[key]; ok {
		return v
	}

	var result *zdd.Node[Place]
	if pre[placeName] <= markings.Key().Tokens {
		result = c.engine.MakeNode(markings.Key(),
			c.filterMarkings(markings.Then(), trans, placeName+1),
			c.filterMarkings(markings.Else(), trans, placeName))
	} else {
		result = c.filterMarkings(markings.Else(), trans, placeName)
	}

	c.cache[key] = result
	return result
}

// fire rewrites markings by firing trans, starting the place-name scan
// at placeName.
func (c *Counted) fire(markings *zdd.Node[Place], trans string, placeName int) *zdd.Node[Place] {
	pre, post := c.pre[trans], c.post[trans]
	if markings.IsZero() || placeName >= len(pre) {
		return markings
	}

	key := countedCacheKey{fn: "fire", trans: trans, placeName: placeName, markings: markings}
	if v, ok := c.cache[key]; ok {
		return v
	}

	if markings.Key().Name != placeName {
		panic(fmt.Errorf("%w %q at place %d", ErrInvalidMarking, trans, placeName))
	}

	delta := post[placeName] - pre[placeName]
	result := c.engine.MakeNode(
		Place{Name: placeName, Tokens: markings.Key().Tokens + delta},
		c.fire(markings.Then(), trans, placeName+1),
		c.fire(markings.Else(), trans, placeName),
	)

	c.cache[key] = result
	return result
}

// step returns the family of markings reachable from markings by
// firing any single enabled transition.
func (c *Counted) step(markings *zdd.Node[Place]) *zdd.Node[Place] {
	rv := c.engine.Terminal(false)
	for trans := range c.pre {
		rv = c.engine.Union(rv, c.fire(c.filterMarkings(markings, trans, 0), trans, 0))
	}
	return rv
}

// StateSpace computes the fixed point of markings reachable from the
// initial marking.
func (c *Counted) StateSpace() *zdd.Node[Place] {
	x := c.m0
	y := c.engine.Union(x, c.step(x))
	for x != y {
		x = y
		y = c.engine.Union(x, c.step(x))
	}
	return y
}

// NewPhilosophers builds the dining-philosophers net for n
// philosophers: 3 places per philosopher (thinking, its fork, eating),
// an "e" (pick up its own fork and the next philosopher's) transition
// and a "t" (put both forks down) transition per philosopher.
func NewPhilosophers(engine *zdd.Engine[Place], n int) *Counted {
	nbPlaces := 3 * n
	pre := make(map[string][]int, 2*n)
	post := make(map[string][]int, 2*n)

	for ph := 0; ph < n; ph++ {
		eName := fmt.Sprintf("e%d", ph)
		tName := fmt.Sprintf("t%d", ph)

		e := make([]int, nbPlaces)
		e[ph*3] = 1
		e[ph*3+1] = 1
		e[(ph*3+4)%nbPlaces] = 1
		pre[eName] = e
		post[tName] = e

		t := make([]int, nbPlaces)
		t[ph*3+2] = 1
		pre[tName] = t
		post[eName] = t
	}

	m0 := make([]Place, nbPlaces)
	for i := 0; i < nbPlaces; i++ {
		tokens := 1
		if i%3 == 2 {
			tokens = 0
		}
		m0[i] = Place{Name: i, Tokens: tokens}
	}

	return NewCounted(engine, pre, post, m0)
}
