package petrinet

import "errors"

var (
	// ErrNotOneSafe is returned when a PNML document assigns a place
	// more than one initial token, which the Safe driver cannot
	// represent.
	ErrNotOneSafe = errors.New("petrinet: place has initial marking greater than one")

	// ErrParse is returned for a malformed PNML document.
	ErrParse = errors.New("petrinet: malformed PNML document")

	// ErrInvalidMarking is raised (via panic, recovered by SafeCall) when
	// a transition's pre/post vectors disagree with the structure of
	// the marking family being fired — a mismatch between a net's
	// static description and the family passed to fire, never expected
	// in a state space computed by StateSpace itself.
	ErrInvalidMarking = errors.New("petrinet: invalid set of markings for transition")
)

// SafeCall runs fn, converting a panic carrying one of this package's
// sentinel errors into a returned error. Any other panic propagates.
func SafeCall(fn func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if e, ok := r.(error); ok {
			switch {
			case errors.Is(e, ErrInvalidMarking):
				err = e
				return
			}
		}
		panic(r)
	}()
	fn()
	return nil
}
