package zdd

import "errors"

// Sentinel errors describing the ways a caller can misuse an Engine.
// All of them are delivered as panics (see SafeCall) rather than
// returned values, mirroring the reference implementation's
// unconditional exceptions: these conditions indicate a bug in the
// calling code (a violated invariant), not an ordinary data error.
var (
	// ErrMismatchedEngine is raised when an operation is given a node
	// that was not created by the receiving Engine.
	ErrMismatchedEngine = errors.New("zdd: operand belongs to a different engine")

	// ErrInvalidOrdering is raised when constructing a node would
	// violate the key-ordering invariant (a then/else child whose key
	// is not strictly greater than the parent's).
	ErrInvalidOrdering = errors.New("zdd: node construction violates key ordering")

	// ErrRecursionLimitExceeded is raised by the binary-operation
	// engine when WithRecursionLimit is set and a recursive
	// call nests deeper than the configured limit.
	ErrRecursionLimitExceeded = errors.New("zdd: recursion limit exceeded")
)

// SafeCall runs fn and converts any panic carrying one of this
// package's sentinel errors into a returned error. Panics carrying
// anything else (including runtime errors) propagate unchanged, since
// those indicate failures this package did not anticipate.
func SafeCall(fn func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if e, ok := r.(error); ok {
			switch {
			case errors.Is(e, ErrMismatchedEngine),
				errors.Is(e, ErrInvalidOrdering),
				errors.Is(e, ErrRecursionLimitExceeded):
				err = e
				return
			}
		}
		panic(r)
	}()
	fn()
	return nil
}
