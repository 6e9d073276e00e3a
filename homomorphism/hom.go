package homomorphism

import "github.com/gozdd/ydd/zdd"

// Homomorphism maps one family of sets to another, recursively over a
// ZDD's structure.
type Homomorphism[K any] interface {
	Apply(n *zdd.Node[K]) (*zdd.Node[K], error)
}

// Identity returns its input unchanged.
type Identity[K any] struct{}

func (Identity[K]) Apply(n *zdd.Node[K]) (*zdd.Node[K], error) { return n, nil }

// Accept maps every input to ⊤, the family containing only ∅.
type Accept[K any] struct {
	Engine *zdd.Engine[K]
}

func (h Accept[K]) Apply(*zdd.Node[K]) (*zdd.Node[K], error) { return h.Engine.Terminal(true), nil }

// Reject maps every input to ⊥, the empty family.
type Reject[K any] struct {
	Engine *zdd.Engine[K]
}

func (h Reject[K]) Apply(*zdd.Node[K]) (*zdd.Node[K], error) { return h.Engine.Terminal(false), nil }

// Union applies Left and Right and returns the union of their results.
type Union[K any] struct {
	Engine      *zdd.Engine[K]
	Left, Right Homomorphism[K]
}

func (h Union[K]) Apply(n *zdd.Node[K]) (*zdd.Node[K], error) {
	l, err := h.Left.Apply(n)
	if err != nil {
		return nil, err
	}
	r, err := h.Right.Apply(n)
	if err != nil {
		return nil, err
	}
	return h.Engine.Union(l, r), nil
}

// Intersection applies Left and Right and returns the intersection of
// their results.
type Intersection[K any] struct {
	Engine      *zdd.Engine[K]
	Left, Right Homomorphism[K]
}

func (h Intersection[K]) Apply(n *zdd.Node[K]) (*zdd.Node[K], error) {
	l, err := h.Left.Apply(n)
	if err != nil {
		return nil, err
	}
	r, err := h.Right.Apply(n)
	if err != nil {
		return nil, err
	}
	return h.Engine.Intersection(l, r), nil
}

// Difference applies Left and Right and returns Left's result minus
// Right's.
type Difference[K any] struct {
	Engine      *zdd.Engine[K]
	Left, Right Homomorphism[K]
}

func (h Difference[K]) Apply(n *zdd.Node[K]) (*zdd.Node[K], error) {
	l, err := h.Left.Apply(n)
	if err != nil {
		return nil, err
	}
	r, err := h.Right.Apply(n)
	if err != nil {
		return nil, err
	}
	return h.Engine.Difference(l, r), nil
}

// SymmetricDifference applies Left and Right and returns the symmetric
// difference of their results.
type SymmetricDifference[K any] struct {
	Engine      *zdd.Engine[K]
	Left, Right Homomorphism[K]
}

func (h SymmetricDifference[K]) Apply(n *zdd.Node[K]) (*zdd.Node[K], error) {
	l, err := h.Left.Apply(n)
	if err != nil {
		return nil, err
	}
	r, err := h.Right.Apply(n)
	if err != nil {
		return nil, err
	}
	return h.Engine.SymmetricDifference(l, r), nil
}

// Update forces every member set to agree with Pattern's single
// minterm: a set gains a symbol's Value if Enabled, and loses it
// otherwise. Pattern must have exactly one minterm, or Apply returns
// ErrIllDefinedPattern.
type Update[K any] struct {
	Engine  *zdd.Engine[K]
	Pattern Pattern[K]
}

func (u Update[K]) Apply(n *zdd.Node[K]) (*zdd.Node[K], error) {
	minterms := u.Pattern.Minterms()
	if len(minterms) != 1 {
		return nil, ErrIllDefinedPattern
	}
	cur := n
	for _, sym := range minterms[0] {
		if cur.IsZero() {
			break
		}
		if sym.Enabled {
			cur = u.set(sym.Value, cur)
		} else {
			cur = u.unset(sym.Value, cur)
		}
	}
	return cur, nil
}

// set forces value to be present in every member set of n.
func (u Update[K]) set(value K, n *zdd.Node[K]) *zdd.Node[K] {
	e := u.Engine
	ops := e.Ops()
	if n.IsZero() {
		return n
	}
	if n.IsTerminal() || ops.Compare(n.Key(), value) > 0 {
		return e.MakeNode(value, n, e.Terminal(false))
	}
	if ops.Compare(n.Key(), value) == 0 {
		return e.MakeNode(n.Key(), e.Union(n.Then(), n.Else()), e.Terminal(false))
	}
	return e.MakeNode(n.Key(), u.set(value, n.Then()), u.set(value, n.Else()))
}

// unset forces value to be absent from every member set of n.
func (u Update[K]) unset(value K, n *zdd.Node[K]) *zdd.Node[K] {
	e := u.Engine
	ops := e.Ops()
	if n.IsZero() {
		return n
	}
	if n.IsTerminal() || ops.Compare(n.Key(), value) > 0 {
		return n
	}
	if ops.Compare(n.Key(), value) == 0 {
		return e.Union(n.Then(), n.Else())
	}
	return e.MakeNode(n.Key(), u.unset(value, n.Then()), u.unset(value, n.Else()))
}

// Filter keeps only the member sets that satisfy Pattern, then applies
// Hom to what remains. Hom is typically Identity, but can be any
// homomorphism, letting Filter double as a guarded rewrite.
type Filter[K any] struct {
	Engine  *zdd.Engine[K]
	Pattern Pattern[K]
	Hom     Homomorphism[K]
}

func (f Filter[K]) Apply(n *zdd.Node[K]) (*zdd.Node[K], error) {
	satisfied := f.Engine.Terminal(false)
	for _, mt := range f.Pattern.Minterms() {
		satisfied = f.Engine.Union(satisfied, filterMinterm(f.Engine, n, mt, 0))
	}
	return f.Hom.Apply(satisfied)
}

// filterMinterm keeps only the paths of n consistent with mt[i:], the
// remaining symbols of one minterm.
func filterMinterm[K any](e *zdd.Engine[K], n *zdd.Node[K], mt Minterm[K], i int) *zdd.Node[K] {
	if n.IsZero() || i >= len(mt) {
		return n
	}
	ops := e.Ops()
	sym := mt[i]

	if sym.Enabled {
		if n.IsTerminal() || ops.Compare(n.Key(), sym.Value) > 0 {
			return e.Terminal(false)
		}
		if ops.Compare(n.Key(), sym.Value) == 0 {
			return e.MakeNode(n.Key(), filterMinterm(e, n.Then(), mt, i+1), e.Terminal(false))
		}
	} else {
		if n.IsTerminal() || ops.Compare(n.Key(), sym.Value) > 0 {
			return filterMinterm(e, n, mt, i+1)
		}
		if ops.Compare(n.Key(), sym.Value) == 0 {
			return filterMinterm(e, n.Else(), mt, i+1)
		}
	}

	return e.MakeNode(n.Key(), filterMinterm(e, n.Then(), mt, i), filterMinterm(e, n.Else(), mt, i))
}
