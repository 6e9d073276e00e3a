package homomorphism

import "errors"

// ErrIllDefinedPattern is returned by Update when its Pattern is not
// exactly one minterm: an update must name a single, unambiguous
// assignment of enabled/disabled to each key it mentions, not a
// disjunction of alternatives.
var ErrIllDefinedPattern = errors.New("homomorphism: update pattern must have exactly one minterm")
