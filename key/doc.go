// Package key defines the Ops[K] contract a [zdd.Engine] uses to hash,
// compare and order its key domain, plus two ready-made
// implementations: Ordered, for types with a native total order, and
// Comparable, for comparable struct types ordered by a caller-supplied
// Less function (e.g. petrinet.Place).
package key
