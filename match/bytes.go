package match

import (
	"bytes"

	"github.com/zostay/go-std/slices"

	"github.com/zostay/gnaw"
	"github.com/zostay/gnaw/kind"
)

// BytePredicate is a function that returns true if it matches a single byte
// or false if it does not.
type BytePredicate func(c byte) bool

// ByteInSet creates a BytePredicate from the set of bytes given.
func ByteInSet(cs ...byte) BytePredicate {
	return func(b byte) bool {
		for _, c := range cs {
			if c == b {
				return true
			}
		}
		return false
	}
}

// ByteInRange creates a BytePredicate that matches any byte in the given
// range. The match is inclusive so bytes equal to either end point are also
// matched.
func ByteInRange(cs, ce byte) BytePredicate {
	return func(b byte) bool {
		return b >= cs && b <= ce
	}
}

// AnyByte creates a combined BytePredicate that matches a byte that matches
// any of the given predicates.
func AnyByte(preds ...BytePredicate) BytePredicate {
	switch len(preds) {
	case 0:
		return func(byte) bool { return false }
	case 1:
		return preds[0]
	default:
		return func(b byte) bool {
			for _, pred := range preds {
				if pred(b) {
					return true
				}
			}
			return false
		}
	}
}

// NotByte creates a combined BytePredicate that matches a byte that does not
// match any of the given predicates.
func NotByte(preds ...BytePredicate) BytePredicate {
	return func(b byte) bool {
		for _, pred := range preds {
			if pred(b) {
				return false
			}
		}
		return true
	}
}

// ThisButNotThatByte creates a combined BytePredicate that matches a byte
// that matches the first predicate, but does not match the second predicate.
func ThisButNotThatByte(this, that BytePredicate) BytePredicate {
	return func(b byte) bool {
		if this(b) {
			if that(b) {
				return false
			}
			return true
		}
		return false
	}
}

// Tag returns a parser that matches the given literal byte-for-byte at the
// front of the input and produces the matched bytes as a view into the
// backing buffer. Comparison is exact and case-sensitive. When the input is
// shorter than the literal but matches as far as it goes, the parser reports
// incomplete input with the exact shortfall.
func Tag(lit []byte) gnaw.Parser[[]byte] {
	return func(in gnaw.Input) ([]byte, gnaw.Input, error) {
		have := in.Len()
		if have < len(lit) {
			if bytes.Equal(in.Bytes(), lit[:have]) {
				return nil, in, gnaw.More(len(lit) - have)
			}
			return nil, in, gnaw.Fail(kind.LiteralMismatch, in)
		}
		if !bytes.Equal(in.Take(len(lit)), lit) {
			return nil, in, gnaw.Fail(kind.LiteralMismatch, in)
		}
		return in.Take(len(lit)), in.Drop(len(lit)), nil
	}
}

// TagStr is Tag for a string literal.
func TagStr(s string) gnaw.Parser[[]byte] {
	return Tag([]byte(s))
}

// Take returns a parser that consumes exactly n bytes and produces them as a
// view into the backing buffer. It never fails: with fewer than n bytes
// available it reports incomplete input with the exact shortfall.
func Take(n int) gnaw.Parser[[]byte] {
	return func(in gnaw.Input) ([]byte, gnaw.Input, error) {
		if in.Len() < n {
			return nil, in, gnaw.More(n - in.Len())
		}
		return in.Take(n), in.Drop(n), nil
	}
}

// OneFunc returns a parser that consumes exactly one byte if the next byte
// in the input matches the given predicate.
func OneFunc(pred BytePredicate) gnaw.Parser[byte] {
	return func(in gnaw.Input) (byte, gnaw.Input, error) {
		if in.Empty() {
			return 0, in, gnaw.More(1)
		}
		c := in.Bytes()[0]
		if !pred(c) {
			return 0, in, gnaw.Fail(kind.CharMismatch, in)
		}
		return c, in.Drop(1), nil
	}
}

// One returns a parser that consumes the next byte if it equals any one of
// the given byte values.
func One(cs ...byte) gnaw.Parser[byte] {
	return OneFunc(ByteInSet(cs...))
}

// NoneOf returns a parser that consumes the next byte if it equals none of
// the given byte values.
func NoneOf(cs ...byte) gnaw.Parser[byte] {
	return OneFunc(NotByte(ByteInSet(cs...)))
}

// RunPolicy tells a character-class parser what a run reaching the end of
// input means.
type RunPolicy int

const (
	// Complete treats the end of input as a valid terminator for a run.
	Complete RunPolicy = iota

	// Streaming reports incomplete input when a run reaches the end of
	// input while still matching, since more data could extend the run.
	Streaming
)

// Run is the character-class parser built by TakeWhile1. It greedily
// consumes a maximal run of bytes matching its predicate and produces the
// run as a view into the backing buffer. An empty run is a failure rather
// than an empty success, so repetition over a Run cannot loop forever.
//
// Run also provides tools for combining class parsers with each other.
type Run struct {
	policy RunPolicy
	pred   BytePredicate
}

// TakeWhile1 returns a Run matching one or more bytes that satisfy any of
// the given predicates, under the given end-of-input policy.
func TakeWhile1(policy RunPolicy, preds ...BytePredicate) *Run {
	return &Run{
		policy: policy,
		pred:   AnyByte(preds...),
	}
}

// Parse consumes the maximal run of matching bytes.
func (r *Run) Parse(in gnaw.Input) ([]byte, gnaw.Input, error) {
	bs := in.Bytes()
	i := 0
	for i < len(bs) && r.pred(bs[i]) {
		i++
	}
	if i == len(bs) && r.policy == Streaming {
		return nil, in, gnaw.More(1)
	}
	if i == 0 {
		return nil, in, gnaw.Fail(kind.PredicateFailed, in)
	}
	return in.Take(i), in.Drop(i), nil
}

// Parser adapts the Run for use wherever a Parser is expected.
func (r *Run) Parser() gnaw.Parser[[]byte] {
	return r.Parse
}

func extractPredFromRun(r *Run) BytePredicate {
	return r.pred
}

// AndAlso creates a new Run which combines the predicate of this Run with
// the predicates of the given Runs such that a byte is part of the run if it
// matches any of those predicates. The policy of this Run is kept.
func (r *Run) AndAlso(rs ...*Run) *Run {
	preds := slices.Map(rs, extractPredFromRun)
	preds = slices.Unshift(preds, r.pred)
	return &Run{
		policy: r.policy,
		pred:   AnyByte(preds...),
	}
}

// ButNot creates a new Run which combines the predicate of this Run with the
// predicates of the given Runs such that a byte is part of the run if it
// matches this Run, but not those.
func (r *Run) ButNot(rs ...*Run) *Run {
	preds := slices.Map(rs, extractPredFromRun)
	return &Run{
		policy: r.policy,
		pred:   ThisButNotThatByte(r.pred, AnyByte(preds...)),
	}
}

// Digit1 returns a Run matching one or more ASCII digits.
func Digit1(policy RunPolicy) *Run {
	return TakeWhile1(policy, ByteInRange('0', '9'))
}

// Alpha1 returns a Run matching one or more ASCII letters.
func Alpha1(policy RunPolicy) *Run {
	return TakeWhile1(policy,
		ByteInRange('a', 'z'),
		ByteInRange('A', 'Z'),
	)
}

// Space1 returns a Run matching one or more ASCII whitespace bytes.
func Space1(policy RunPolicy) *Run {
	return TakeWhile1(policy, ByteInSet(' ', '\t', '\r', '\n'))
}
