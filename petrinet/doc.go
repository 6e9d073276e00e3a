// Package petrinet builds ZDD-backed Petri-net transition systems:
// the family of reachable markings is itself a [zdd.Node], and firing
// a transition is a structural rewrite over that family rather than an
// enumeration of individual states.
//
// Two place representations are provided, kept deliberately separate
// rather than unified behind one generic type: Safe encodes a 1-safe
// net with presence-only place-id keys, and Counted
// encodes a general place/transition net with token-counted Place
// keys. Their fire recursions differ in kind — presence toggling
// versus rewriting the key's embedded token count — not just in key
// type, so generalising them would obscure more than it would share.
package petrinet
