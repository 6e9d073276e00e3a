// Package zdd implements Zero-suppressed Decision Diagrams: a
// hash-consed, canonical representation of families of finite sets
// drawn from a totally ordered key domain.
//
// An [Engine] owns a unique table (hash-consed node store) and a set
// of per-operation caches; it is the only thing that can create a
// [Node]. Two families denote the same node if and only if they are
// identical according to the engine's [key.Ops] — canonicity makes
// family equality a pointer comparison.
//
// An Engine is not safe for concurrent use, and two Engines never
// share nodes: operations mixing nodes from different engines panic
// with [ErrMismatchedEngine].
package zdd
