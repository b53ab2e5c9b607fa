// Package gnaw is a streaming parser-combinator engine. A parser is a pure
// function from an Input to one of three outcomes: done, failed, or
// incomplete. Small primitive parsers (see the match package) are composed
// into larger ones with combinators, and the same composed parser runs
// unchanged over a complete buffer or over a partially-received stream.
//
// Outcomes map onto the return values of a Parser like so:
//
//   - Done: a nil error. The returned value is the parser's output and the
//     returned Input is the unconsumed suffix, a zero-copy view into the
//     same backing buffer.
//   - Failed: a *ParseError. The input definitely does not match here; the
//     caller may try an alternative. The returned Input is the original
//     input, unchanged.
//   - Incomplete: a *Incomplete. There was not enough input to decide. The
//     caller must retry the same parser on a longer Input that preserves
//     every byte already seen (the stream package does this for readers).
//
// Failed and Incomplete are distinct classes and no combinator converts
// between them; conflating the two breaks streaming correctness.
//
// Parsers hold no mutable state, so a single Parser value may be invoked
// from any number of goroutines at once on different Inputs.
package gnaw

// Parser is a parsing function producing a value of type T. Every parser in
// the engine, primitive or composed, has this shape.
//
// A parser must consume a prefix of in and return the rest, or report why it
// could not. On a nil error the returned Input is always a suffix of in.
type Parser[T any] func(in Input) (T, Input, error)

// Parse applies the parser to in. It exists so a composed parser reads
// naturally at the call site; p.Parse(in) and p(in) are the same call.
func (p Parser[T]) Parse(in Input) (T, Input, error) {
	return p(in)
}

// Tracer is a function used to log or report parser traces. This function
// signature was chosen because it is commonly available, such as fmt.Println
// or log.Println, etc.
type Tracer func(v ...any)
