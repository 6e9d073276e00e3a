// Package homomorphism implements the ZDD homomorphism layer:
// structure-preserving maps between families of sets, built from
// Identity, Accept, Reject and the set-algebra combinators, plus two
// pattern-driven leaves, Update and Filter, that recurse over the
// diagram themselves, calling [zdd.Engine]'s Union only to merge
// branches or per-minterm results.
package homomorphism
