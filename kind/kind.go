// Package kind enumerates the ways a parse can fail. Built-in kinds cover
// the engine's own primitives and combinators; everything else mints a
// custom code through Next.
package kind

import (
	"strconv"
	"sync/atomic"
)

// Kind identifies which class of parser reported a failure. Values at or
// beyond Custom are application codes minted by Next.
type Kind int

const (
	// None is the zero Kind. No failure carries it; it exists so the zero
	// value is recognizably not a real kind.
	None Kind = iota

	// LiteralMismatch is reported by literal tag parsers.
	LiteralMismatch

	// CharMismatch is reported by single byte and single rune parsers.
	CharMismatch

	// PredicateFailed is reported by character-class parsers whose run
	// matched zero input.
	PredicateFailed

	// AlternativesExhausted is reported by alternation when every candidate
	// failed.
	AlternativesExhausted

	// ConditionFailed is reported by conditional execution when the
	// condition is false.
	ConditionFailed

	// Custom identifies the first non-built-in kind. No guarantee is made
	// that this will never change.
	Custom
)

var prevKind = int64(Custom)

// Next provides an interface for assigning custom kinds serial numbers at
// runtime to avoid conflicts between codes when parsers from different
// modules are mixed and matched. This returns the next available kind and is
// safe to call from concurrent initialization paths.
func Next() Kind {
	return Kind(atomic.AddInt64(&prevKind, 1))
}

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case LiteralMismatch:
		return "literal mismatch"
	case CharMismatch:
		return "character mismatch"
	case PredicateFailed:
		return "predicate matched nothing"
	case AlternativesExhausted:
		return "no alternative matched"
	case ConditionFailed:
		return "condition was false"
	}
	return "custom(" + strconv.Itoa(int(k)) + ")"
}
