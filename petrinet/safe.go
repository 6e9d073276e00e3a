package petrinet

import (
	"fmt"

	"github.com/gozdd/ydd/zdd"
)

// Safe is a 1-safe Petri net: every place holds at most one token, so
// a marking is exactly the set of places currently carrying a token,
// and the family of reachable markings is a ZDD over place-id keys.
type Safe struct {
	engine     *zdd.Engine[int]
	pre, post  map[string][]int
	m0         *zdd.Node[int]
	placeNames map[int]string

	cache map[safeCacheKey]*zdd.Node[int]
}

type safeCacheKey struct {
	fn       string
	trans    string
	placeID  int
	markings *zdd.Node[int]
}

// NewSafe builds a Safe net from explicit pre/post arc-weight vectors
// (one entry per place, indexed by place id, keyed by transition name)
// and an initial marking given as the set of places initially holding
// a token.
func NewSafe(engine *zdd.Engine[int], pre, post map[string][]int, m0 []int, placeNames map[int]string) *Safe {
	return &Safe{
		engine:     engine,
		pre:        pre,
		post:       post,
		m0:         engine.FromSlice(m0),
		placeNames: placeNames,
		cache:      make(map[safeCacheKey]*zdd.Node[int]),
	}
}

// Engine returns the ZDD engine backing this net.
func (s *Safe) Engine() *zdd.Engine[int] { return s.engine }

// M0 returns the initial marking, as a singleton family.
func (s *Safe) M0() *zdd.Node[int] { return s.m0 }

// PlaceName returns the human-readable name of a place id, or "" if
// unknown.
func (s *Safe) PlaceName(id int) string { return s.placeNames[id] }

// filterMarkings restricts markings to the members for which trans is
// enabled, starting the place-id scan at placeID.
func (s *Safe) filterMarkings(markings *zdd.Node[int], trans string, placeID int) *zdd.Node[int] {
	pre := s.pre[trans]
	if markings.IsZero() || placeID >= len(pre) {
		return markings
	}

	key := safeCacheKey{fn: "filter", trans: trans, placeID: placeID, markings: markings}
	if v, ok := s.cache[key]; ok {
		return v
	}

	var result *zdd.Node[int]
	if pre[placeID] != 0 {
		switch {
		case markings.IsOne() || markings.Key() > placeID:
			result = s.engine.Terminal(false)
		case markings.Key() == placeID:
			result = s.engine.MakeNode(placeID,
				s.filterMarkings(markings.Then(), trans, placeID+1),
				s.engine.Terminal(false))
		default:
			result = s.engine.MakeNode(markings.Key(),
				s.filterMarkings(markings.Then(), trans, placeID),
				s.filterMarkings(markings.Else(), trans, placeID))
		}
	} else {
		result = s.filterMarkings(markings, trans, placeID+1)
	}

	s.cache[key] = result
	return result
}

// fire rewrites markings by firing trans, starting the place-id scan
// at placeID.
func (s *Safe) fire(markings *zdd.Node[int], trans string, placeID int) *zdd.Node[int] {
	pre, post := s.pre[trans], s.post[trans]
	if markings.IsZero() || placeID >= len(pre) {
		return markings
	}

	key := safeCacheKey{fn: "fire", trans: trans, placeID: placeID, markings: markings}
	if v, ok := s.cache[key]; ok {
		return v
	}

	delta := post[placeID] - pre[placeID]
	var result *zdd.Node[int]
	switch {
	case delta > 0:
		switch {
		case markings.IsOne() || markings.Key() > placeID:
			result = s.engine.MakeNode(placeID, s.fire(markings, trans, placeID+1), s.engine.Terminal(false))
		case markings.Key() < placeID:
			result = s.engine.MakeNode(markings.Key(),
				s.fire(markings.Then(), trans, placeID),
				s.fire(markings.Else(), trans, placeID))
		default:
			panic(fmt.Errorf("%w %q at place %d", ErrInvalidMarking, trans, placeID))
		}
	case delta < 0:
		switch {
		case !markings.IsTerminal() && markings.Key() == placeID:
			result = s.fire(markings.Then(), trans, placeID+1)
		case !markings.IsTerminal() && markings.Key() < placeID:
			result = s.engine.MakeNode(markings.Key(),
				s.fire(markings.Then(), trans, placeID),
				s.fire(markings.Else(), trans, placeID))
		default:
			panic(fmt.Errorf("%w %q at place %d", ErrInvalidMarking, trans, placeID))
		}
	default:
		result = s.fire(markings, trans, placeID+1)
	}

	s.cache[key] = result
	return result
}

// step returns the family of markings reachable from markings by
// firing any single enabled transition.
func (s *Safe) step(markings *zdd.Node[int]) *zdd.Node[int] {
	rv := s.engine.Terminal(false)
	for trans := range s.pre {
		rv = s.engine.Union(rv, s.fire(s.filterMarkings(markings, trans, 0), trans, 0))
	}
	return rv
}

// StateSpace computes the fixed point x = m0 ∪ step(m0) ∪ step(step(m0)) ∪ …,
// the family of every marking reachable from the initial marking.
func (s *Safe) StateSpace() *zdd.Node[int] {
	x := s.m0
	y := s.engine.Union(x, s.step(x))
	for x != y {
		x = y
		y = s.engine.Union(x, s.step(x))
	}
	return y
}
