package gnaw

import (
	"errors"
	"fmt"

	"github.com/zostay/gnaw/kind"
)

// ParseError is the recoverable failure a Parser returns when the input
// definitely does not match at the current position. Enclosing combinators
// may wrap a child's ParseError with their own kind, building a chain from
// the innermost cause outward. The chain is append-only: wrapping never
// discards inner entries, and an error is never modified once returned.
type ParseError struct {
	Kind   kind.Kind
	Offset int
	cause  error
}

// Fail builds a ParseError of the given kind at the position of in.
func Fail(k kind.Kind, in Input) *ParseError {
	return &ParseError{Kind: k, Offset: in.Offset()}
}

// Wrap builds a ParseError of the given kind at the position of in, keeping
// cause as the inner entry of the chain.
func Wrap(k kind.Kind, in Input, cause error) *ParseError {
	return &ParseError{Kind: k, Offset: in.Offset(), cause: cause}
}

func (e *ParseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("gnaw: %s at offset %d: %s", e.Kind, e.Offset, e.cause)
	}
	return fmt.Sprintf("gnaw: %s at offset %d", e.Kind, e.Offset)
}

// Unwrap returns the inner entry of the chain, if any.
func (e *ParseError) Unwrap() error {
	return e.cause
}

// Chain returns every kind on the error chain ordered innermost first, so
// the root cause — the primitive that actually failed — comes before the
// combinator context wrapped around it.
func (e *ParseError) Chain() []kind.Kind {
	var ks []kind.Kind
	for err := error(e); err != nil; err = errors.Unwrap(err) {
		var pe *ParseError
		if errors.As(err, &pe) {
			ks = append(ks, pe.Kind)
			err = pe
			continue
		}
		break
	}
	// collected outermost first; reverse in place
	for i, j := 0, len(ks)-1; i < j; i, j = i+1, j-1 {
		ks[i], ks[j] = ks[j], ks[i]
	}
	return ks
}

// Failed reports whether err is a recoverable parse failure and returns it
// as a *ParseError when it is. Incomplete errors are not failures.
func Failed(err error) (*ParseError, bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
