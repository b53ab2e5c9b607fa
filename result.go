package gnaw

import (
	"errors"
	"fmt"
)

// Needed describes how much more input is required before a parser can make
// progress: either an exact additional byte count, or an unknown amount.
type Needed struct {
	count int
}

// NeedExact reports that exactly n more bytes are required. n must be
// positive.
func NeedExact(n int) Needed {
	if n <= 0 {
		panic("gnaw: NeedExact requires a positive count")
	}
	return Needed{count: n}
}

// NeedUnknown reports that more input is required without knowing how much.
func NeedUnknown() Needed {
	return Needed{}
}

// Count returns the exact number of additional bytes required and true, or
// zero and false when the amount is unknown.
func (n Needed) Count() (int, bool) {
	return n.count, n.count > 0
}

func (n Needed) String() string {
	if n.count > 0 {
		return fmt.Sprintf("%d more bytes", n.count)
	}
	return "an unknown amount more input"
}

// Incomplete is the error returned when there was not enough input to decide
// whether a parse matches. It is not a failure: the caller is expected to
// retry the same parser with a longer Input whose existing bytes are
// unchanged. Combinators must pass an Incomplete through untouched and must
// never turn one into a *ParseError or vice versa.
type Incomplete struct {
	Needed Needed
}

func (e *Incomplete) Error() string {
	return "gnaw: need " + e.Needed.String()
}

// More builds an Incomplete error asking for exactly n more bytes.
func More(n int) error {
	return &Incomplete{Needed: NeedExact(n)}
}

// MoreUnknown builds an Incomplete error asking for an unknown amount more
// input.
func MoreUnknown() error {
	return &Incomplete{Needed: NeedUnknown()}
}

// NeedsMore reports whether err signals incomplete input and, if so, how
// much more is needed.
func NeedsMore(err error) (Needed, bool) {
	var inc *Incomplete
	if errors.As(err, &inc) {
		return inc.Needed, true
	}
	return Needed{}, false
}
