package match

import (
	"github.com/zostay/gnaw"
)

// Slots holds the values captured by Bind steps while a Sequence runs. Keys
// are the names given to Bind. A fresh Slots is made per invocation, so a
// Sequence parser carries no state between calls.
type Slots map[string]any

// Get pulls a captured value out of the slots with its parsed type. It
// panics if the name was never bound or holds a different type, both of
// which are grammar construction mistakes, not input errors.
func Get[T any](s Slots, name string) T {
	v, ok := s[name]
	if !ok {
		panic("gnaw: no slot named " + name)
	}
	return v.(T)
}

// Step is one stage of a Sequence: run a parser against the current
// position, possibly capture its output, and hand the remaining input to the
// next stage.
type Step func(in gnaw.Input, s Slots) (gnaw.Input, error)

// Bind makes a Step that runs p and captures its output in the slots under
// the given name.
func Bind[T any](name string, p gnaw.Parser[T]) Step {
	return func(in gnaw.Input, s Slots) (gnaw.Input, error) {
		v, rest, err := p(in)
		if err != nil {
			return in, err
		}
		s[name] = v
		return rest, nil
	}
}

// Skip makes a Step that runs p and throws its output away. The input it
// consumes is still consumed.
func Skip[T any](p gnaw.Parser[T]) Step {
	return func(in gnaw.Input, s Slots) (gnaw.Input, error) {
		_, rest, err := p(in)
		if err != nil {
			return in, err
		}
		return rest, nil
	}
}

// Sequence returns a parser that runs each step in order, threading the
// remaining input from one step into the next, then calls build with the
// captured slots to produce the output. The first step to fail aborts the
// whole sequence with that failure and the original input unchanged: no
// partially-consumed prefix leaks out, because no byte of a half-matched
// sequence is valid output. A step reporting incomplete input likewise
// aborts with that outcome untouched.
func Sequence[T any](build func(Slots) T, steps ...Step) gnaw.Parser[T] {
	return func(in gnaw.Input) (T, gnaw.Input, error) {
		slots := make(Slots, len(steps))
		rest := in
		for _, step := range steps {
			var err error
			rest, err = step(rest, slots)
			if err != nil {
				var zero T
				return zero, in, err
			}
		}
		return build(slots), rest, nil
	}
}
