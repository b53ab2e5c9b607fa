// Package match provides the primitive parsers and combinators of the gnaw
// engine. Primitives consume a prefix of an Input; combinators build bigger
// parsers out of smaller ones. Everything here follows the outcome protocol
// described in the gnaw package: failed and incomplete outcomes are distinct
// and are never converted into one another.
package match

import (
	"github.com/zostay/gnaw"
	"github.com/zostay/gnaw/kind"
)

// ZeroRun is the kind reported by repetition combinators when a child parser
// succeeds without consuming anything. Such a child would repeat forever, so
// the repetition fails instead. Primitives in this package never match empty
// input, which keeps well-formed grammars clear of this kind.
var ZeroRun = kind.Next()

// MappingFailed is the kind reported by MapRes when the mapping function
// rejects a parsed value.
var MappingFailed = kind.Next()

// First returns a parser that tries each of the given parsers against the
// same starting input, in order, and returns the result of the first one
// that succeeds. This is leftmost match: a later parser is never consulted
// once an earlier one succeeds, even if it would have matched more.
//
// If a candidate reports incomplete input, First stops and reports that,
// since more data might let the earlier candidate succeed. If every
// candidate fails, First fails with no alternative matched, keeping the last
// candidate's failure as the inner cause.
func First[T any](ps ...gnaw.Parser[T]) gnaw.Parser[T] {
	return func(in gnaw.Input) (T, gnaw.Input, error) {
		var zero T
		var last error
		for _, p := range ps {
			v, rest, err := p(in)
			if err == nil {
				return v, rest, nil
			}
			if _, more := gnaw.NeedsMore(err); more {
				return zero, in, err
			}
			last = err
		}
		return zero, in, gnaw.Wrap(kind.AlternativesExhausted, in, last)
	}
}

// Longest returns a parser that tries all the given parsers against the same
// starting input and keeps whichever match consumed the most. Candidates
// that fail are simply out of the running, but a candidate reporting
// incomplete input stops the whole comparison, since its eventual length is
// unknowable without more data. This trades away the leftmost-match rule of
// First for maximal munch; use it only where the grammar really is
// ambiguous.
func Longest[T any](ps ...gnaw.Parser[T]) gnaw.Parser[T] {
	return func(in gnaw.Input) (T, gnaw.Input, error) {
		var (
			zero  T
			last  error
			won   bool
			bestV T
			bestR gnaw.Input
		)
		for _, p := range ps {
			v, rest, err := p(in)
			if err != nil {
				if _, more := gnaw.NeedsMore(err); more {
					return zero, in, err
				}
				last = err
				continue
			}
			if !won || rest.Offset() > bestR.Offset() {
				won, bestV, bestR = true, v, rest
			}
		}
		if !won {
			return zero, in, gnaw.Wrap(kind.AlternativesExhausted, in, last)
		}
		return bestV, bestR, nil
	}
}

// Many0 returns a parser that applies p repeatedly, collecting the outputs
// in order, until p fails. Zero repetitions is a success with an empty
// collection, so Many0 itself never fails; it only reports incomplete input
// when p does, in which case any repetitions already consumed are abandoned
// and the caller retries the whole repetition on the longer input.
func Many0[T any](p gnaw.Parser[T]) gnaw.Parser[[]T] {
	return func(in gnaw.Input) ([]T, gnaw.Input, error) {
		var out []T
		rest := in
		for {
			v, next, err := p(rest)
			if err != nil {
				if _, more := gnaw.NeedsMore(err); more {
					return nil, in, err
				}
				return out, rest, nil
			}
			if next.Offset() == rest.Offset() {
				return nil, in, gnaw.Fail(ZeroRun, rest)
			}
			out = append(out, v)
			rest = next
		}
	}
}

// Many1 is Many0 with at least one repetition required. When the first
// application of p fails, Many1 fails with p's error.
func Many1[T any](p gnaw.Parser[T]) gnaw.Parser[[]T] {
	many := Many0(p)
	return func(in gnaw.Input) ([]T, gnaw.Input, error) {
		v, rest, err := p(in)
		if err != nil {
			return nil, in, err
		}
		if rest.Offset() == in.Offset() {
			return nil, in, gnaw.Fail(ZeroRun, in)
		}
		more, rest, err := many(rest)
		if err != nil {
			return nil, in, err
		}
		out := append([]T{v}, more...)
		return out, rest, nil
	}
}

// ManyMN returns a parser that applies p between m and n times inclusive,
// stopping early once n repetitions have matched. Fewer than m repetitions
// is a failure carrying the child failure that cut the run short.
func ManyMN[T any](m, n int, p gnaw.Parser[T]) gnaw.Parser[[]T] {
	return func(in gnaw.Input) ([]T, gnaw.Input, error) {
		var out []T
		rest := in
		for len(out) < n {
			v, next, err := p(rest)
			if err != nil {
				if _, more := gnaw.NeedsMore(err); more {
					return nil, in, err
				}
				if len(out) < m {
					return nil, in, err
				}
				return out, rest, nil
			}
			if next.Offset() == rest.Offset() {
				return nil, in, gnaw.Fail(ZeroRun, rest)
			}
			out = append(out, v)
			rest = next
		}
		return out, rest, nil
	}
}

// Terminated carries the two outputs of ManyTill: the collected repetitions
// and the terminator's own output.
type Terminated[T, U any] struct {
	Items []T
	End   U
}

// ManyTill returns a parser that applies p repeatedly until term succeeds at
// the current position, then returns the collected outputs together with the
// terminator's output. If p fails before term has succeeded, the whole
// construct fails with p's error.
func ManyTill[T, U any](p gnaw.Parser[T], term gnaw.Parser[U]) gnaw.Parser[Terminated[T, U]] {
	return func(in gnaw.Input) (Terminated[T, U], gnaw.Input, error) {
		var zero Terminated[T, U]
		var items []T
		rest := in
		for {
			end, next, err := term(rest)
			if err == nil {
				return Terminated[T, U]{Items: items, End: end}, next, nil
			}
			if _, more := gnaw.NeedsMore(err); more {
				return zero, in, err
			}

			v, next, err := p(rest)
			if err != nil {
				return zero, in, err
			}
			if next.Offset() == rest.Offset() {
				return zero, in, gnaw.Fail(ZeroRun, rest)
			}
			items = append(items, v)
			rest = next
		}
	}
}

// ManyWithSep returns a parser that matches p separated by sep, collecting
// the p outputs in order. A trailing separator is not consumed: once a
// separator matches, another p must follow or the list ends before that
// separator. If fewer than atLeast elements match, the parser fails with
// the child failure that ended the list.
//
// Unlike the other repetition combinators, the first element may match
// empty, since every later iteration must consume a separator to continue.
// Only a sep and p pair that together consume nothing trips the ZeroRun
// guard.
func ManyWithSep[T, S any](atLeast int, p gnaw.Parser[T], sep gnaw.Parser[S]) gnaw.Parser[[]T] {
	return func(in gnaw.Input) ([]T, gnaw.Input, error) {
		var out []T
		rest := in
		var last error
		for {
			at := rest
			if len(out) > 0 {
				_, next, err := sep(at)
				if err != nil {
					if _, more := gnaw.NeedsMore(err); more {
						return nil, in, err
					}
					last = err
					break
				}
				at = next
			}

			v, next, err := p(at)
			if err != nil {
				if _, more := gnaw.NeedsMore(err); more {
					return nil, in, err
				}
				last = err
				break
			}
			if len(out) > 0 && next.Offset() == rest.Offset() {
				return nil, in, gnaw.Fail(ZeroRun, rest)
			}
			out = append(out, v)
			rest = next
		}
		if len(out) < atLeast {
			return nil, in, last
		}
		return out, rest, nil
	}
}

// Opt is the output of Optional: the child's value and whether it was
// present.
type Opt[T any] struct {
	Value   T
	Present bool
}

// Optional returns a parser that runs p and reports its output as present,
// or reports absence without consuming anything when p fails. Optional never
// fails; it only reports incomplete input when p does, since presence cannot
// be decided without more data.
func Optional[T any](p gnaw.Parser[T]) gnaw.Parser[Opt[T]] {
	return func(in gnaw.Input) (Opt[T], gnaw.Input, error) {
		v, rest, err := p(in)
		if err == nil {
			return Opt[T]{Value: v, Present: true}, rest, nil
		}
		if _, more := gnaw.NeedsMore(err); more {
			return Opt[T]{}, in, err
		}
		return Opt[T]{}, in, nil
	}
}

// Cond returns a parser that runs p only when ok is true. When ok is false
// it fails immediately without inspecting the input at all. The condition is
// fixed when the parser is built, typically from a value parsed earlier.
func Cond[T any](ok bool, p gnaw.Parser[T]) gnaw.Parser[T] {
	return func(in gnaw.Input) (T, gnaw.Input, error) {
		if !ok {
			var zero T
			return zero, in, gnaw.Fail(kind.ConditionFailed, in)
		}
		return p(in)
	}
}

// Map returns a parser that applies f to p's output on success and passes
// every other outcome through unchanged.
func Map[T, U any](p gnaw.Parser[T], f func(T) U) gnaw.Parser[U] {
	return func(in gnaw.Input) (U, gnaw.Input, error) {
		v, rest, err := p(in)
		if err != nil {
			var zero U
			return zero, in, err
		}
		return f(v), rest, nil
	}
}

// MapRes returns a parser that applies the fallible f to p's output. When f
// rejects the value the parser fails at the original position, as if nothing
// had matched, keeping f's error as the inner cause.
func MapRes[T, U any](p gnaw.Parser[T], f func(T) (U, error)) gnaw.Parser[U] {
	return func(in gnaw.Input) (U, gnaw.Input, error) {
		var zero U
		v, rest, err := p(in)
		if err != nil {
			return zero, in, err
		}
		u, err := f(v)
		if err != nil {
			return zero, in, gnaw.Wrap(MappingFailed, in, err)
		}
		return u, rest, nil
	}
}

// Peek returns a parser that runs p and reports its outcome without
// consuming any input.
func Peek[T any](p gnaw.Parser[T]) gnaw.Parser[T] {
	return func(in gnaw.Input) (T, gnaw.Input, error) {
		v, _, err := p(in)
		return v, in, err
	}
}

// Recognize returns a parser that discards p's output and instead produces
// the exact bytes p consumed, as a view into the backing buffer.
func Recognize[T any](p gnaw.Parser[T]) gnaw.Parser[[]byte] {
	return func(in gnaw.Input) ([]byte, gnaw.Input, error) {
		_, rest, err := p(in)
		if err != nil {
			return nil, in, err
		}
		return in.Take(rest.Offset() - in.Offset()), rest, nil
	}
}

// Delimited returns a parser that matches left, then inner, then right, and
// produces only inner's output. Handy for bracketed and quoted forms.
func Delimited[L, T, R any](left gnaw.Parser[L], inner gnaw.Parser[T], right gnaw.Parser[R]) gnaw.Parser[T] {
	return func(in gnaw.Input) (T, gnaw.Input, error) {
		var zero T
		_, rest, err := left(in)
		if err != nil {
			return zero, in, err
		}
		v, rest, err := inner(rest)
		if err != nil {
			return zero, in, err
		}
		_, rest, err = right(rest)
		if err != nil {
			return zero, in, err
		}
		return v, rest, nil
	}
}

// Traced wraps p so every invocation reports TRY, GOT, or ERR lines through
// the given Tracer, along with a short preview of the input at that point. A
// nil Tracer returns p unchanged.
func Traced[T any](name string, p gnaw.Parser[T], tr gnaw.Tracer) gnaw.Parser[T] {
	if tr == nil {
		return p
	}
	return func(in gnaw.Input) (T, gnaw.Input, error) {
		tr("TRY " + name + "(" + preview(in) + ")")
		v, rest, err := p(in)
		switch {
		case err == nil:
			tr("GOT " + name + "(" + preview(in) + ")")
		default:
			tr("ERR " + name + "(" + preview(in) + "): " + err.Error())
		}
		return v, rest, err
	}
}

// preview renders the first few bytes of the input for trace lines.
func preview(in gnaw.Input) string {
	bs := in.Bytes()
	if len(bs) > 10 {
		return string(bs[:10]) + "…"
	}
	return string(bs)
}
