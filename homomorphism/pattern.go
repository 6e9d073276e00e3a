package homomorphism

import "github.com/gozdd/ydd/key"

// Symbol constrains one key: Enabled says whether member sets must
// contain Value (true) or must not (false).
type Symbol[K any] struct {
	Value   K
	Enabled bool
}

// Not returns the symbol's negation.
func (s Symbol[K]) Not() Symbol[K] { return Symbol[K]{Value: s.Value, Enabled: !s.Enabled} }

// Minterm is a conjunction of symbols: a set is matched by a minterm
// if it satisfies every symbol in it.
type Minterm[K any] []Symbol[K]

// Pattern is a disjunction of minterms: a set matches a pattern if it
// matches any one of the pattern's minterms. The zero
// Pattern is not meaningful on its own; build one with [New] or
// [Make].
type Pattern[K any] struct {
	ops      key.Ops[K]
	minterms []Minterm[K]
}

// New returns the pattern that is the disjunction of the given
// minterms. Each minterm is canonicalised — sorted ascending by key,
// negative before positive at equal key — and duplicate minterms are
// folded together.
func New[K any](ops key.Ops[K], minterms ...Minterm[K]) Pattern[K] {
	p := Pattern[K]{ops: ops}
	for _, mt := range minterms {
		p = p.withMinterm(sortMinterm(ops, mt))
	}
	return p
}

// Make returns the single-minterm pattern conjoining the given
// symbols.
func Make[K any](ops key.Ops[K], symbols ...Symbol[K]) Pattern[K] {
	return New(ops, Minterm[K](append([]Symbol[K]{}, symbols...)))
}

// Minterms returns a copy of p's canonicalised minterms.
func (p Pattern[K]) Minterms() []Minterm[K] {
	out := make([]Minterm[K], len(p.minterms))
	copy(out, p.minterms)
	return out
}

func (p Pattern[K]) withMinterm(mt Minterm[K]) Pattern[K] {
	for _, existing := range p.minterms {
		if mintermEqual(p.ops, existing, mt) {
			return p
		}
	}
	p.minterms = append(append([]Minterm[K]{}, p.minterms...), mt)
	return p
}

// Or returns the DNF union of p and q: a set matches p.Or(q) iff it
// matches p or q.
func (p Pattern[K]) Or(q Pattern[K]) Pattern[K] {
	r := p
	for _, mt := range q.minterms {
		r = r.withMinterm(mt)
	}
	return r
}

// And returns the conjunction of p and q, distributed over both
// disjunctions: a set matches p.And(q) iff it matches one minterm of
// p and one of q.
func (p Pattern[K]) And(q Pattern[K]) Pattern[K] {
	r := Pattern[K]{ops: p.ops}
	for _, l := range p.minterms {
		for _, rm := range q.minterms {
			r = r.withMinterm(sortMinterm(p.ops, mergeMinterm(l, rm)))
		}
	}
	return r
}

// Not returns the De Morgan negation of p: the negation of a single
// minterm is the disjunction of its symbols' negations, and the
// negation of a disjunction of minterms is the conjunction of their
// individual negations.
func (p Pattern[K]) Not() Pattern[K] {
	switch len(p.minterms) {
	case 0:
		// The empty disjunction never matches; its negation matches
		// unconditionally, the minterm with no symbols.
		return Pattern[K]{ops: p.ops, minterms: []Minterm[K]{{}}}
	case 1:
		mt := p.minterms[0]
		if len(mt) == 0 {
			return Pattern[K]{ops: p.ops}
		}
		var result Pattern[K]
		for i, sym := range mt {
			term := Make(p.ops, sym.Not())
			if i == 0 {
				result = term
			} else {
				result = result.Or(term)
			}
		}
		return result
	default:
		var result Pattern[K]
		for i, mt := range p.minterms {
			sub := Pattern[K]{ops: p.ops, minterms: []Minterm[K]{mt}}.Not()
			if i == 0 {
				result = sub
			} else {
				result = result.And(sub)
			}
		}
		return result
	}
}

func mergeMinterm[K any](a, b Minterm[K]) Minterm[K] {
	out := make(Minterm[K], 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}

// sortMinterm returns mt sorted ascending by value, negative before
// positive at equal value, with adjacent duplicates removed.
func sortMinterm[K any](ops key.Ops[K], mt Minterm[K]) Minterm[K] {
	out := append(Minterm[K]{}, mt...)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && symbolLess(ops, out[j], out[j-1]); j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	dst := out[:0]
	for i, s := range out {
		if i > 0 && symbolEqual(ops, dst[len(dst)-1], s) {
			continue
		}
		dst = append(dst, s)
	}
	return dst
}

func symbolEqual[K any](ops key.Ops[K], a, b Symbol[K]) bool {
	return a.Enabled == b.Enabled && ops.Equal(a.Value, b.Value)
}

func symbolLess[K any](ops key.Ops[K], a, b Symbol[K]) bool {
	if c := ops.Compare(a.Value, b.Value); c != 0 {
		return c < 0
	}
	return !a.Enabled && b.Enabled
}

func mintermEqual[K any](ops key.Ops[K], a, b Minterm[K]) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !symbolEqual(ops, a[i], b[i]) {
			return false
		}
	}
	return true
}
