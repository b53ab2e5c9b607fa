package match

import (
	"unicode/utf8"

	"github.com/zostay/go-std/slices"

	"github.com/zostay/gnaw"
	"github.com/zostay/gnaw/kind"
)

// RunePredicate is a function that returns true if it matches a single rune
// or false if it does not.
type RunePredicate func(r rune) bool

// RuneInSet creates a RunePredicate from the set of runes given.
func RuneInSet(cs ...rune) RunePredicate {
	return func(r rune) bool {
		for _, c := range cs {
			if c == r {
				return true
			}
		}
		return false
	}
}

// RuneInRange creates a RunePredicate that matches any rune in the given
// range. The match is inclusive so runes equal to either end point are also
// matched.
func RuneInRange(cs, ce rune) RunePredicate {
	return func(r rune) bool {
		return r >= cs && r <= ce
	}
}

// AnyRune creates a combined RunePredicate that matches a rune that matches
// any of the given predicates.
func AnyRune(preds ...RunePredicate) RunePredicate {
	switch len(preds) {
	case 0:
		return func(rune) bool { return false }
	case 1:
		return preds[0]
	default:
		return func(r rune) bool {
			for _, pred := range preds {
				if pred(r) {
					return true
				}
			}
			return false
		}
	}
}

// NotRune creates a combined RunePredicate that matches a rune that does not
// match any of the given predicates.
func NotRune(preds ...RunePredicate) RunePredicate {
	return func(r rune) bool {
		for _, pred := range preds {
			if pred(r) {
				return false
			}
		}
		return true
	}
}

// ThisButNotThatRune creates a combined RunePredicate that matches a rune
// that matches the first predicate, but does not match the second predicate.
func ThisButNotThatRune(this, that RunePredicate) RunePredicate {
	return func(r rune) bool {
		if this(r) {
			if that(r) {
				return false
			}
			return true
		}
		return false
	}
}

// nextRune decodes the first rune of in. The error is non-nil when the input
// is empty or ends in a truncated encoding that more bytes could complete.
func nextRune(in gnaw.Input) (rune, int, error) {
	if in.Empty() {
		return 0, 0, gnaw.More(1)
	}
	bs := in.Bytes()
	if !utf8.FullRune(bs) && len(bs) < utf8.UTFMax {
		return 0, 0, gnaw.More(1)
	}
	r, size := utf8.DecodeRune(bs)
	return r, size, nil
}

// OneRuneFunc returns a parser that consumes the next complete rune if it
// matches the given predicate. An invalid encoding decodes to the
// replacement rune and is matched or rejected like any other.
func OneRuneFunc(pred RunePredicate) gnaw.Parser[rune] {
	return func(in gnaw.Input) (rune, gnaw.Input, error) {
		r, size, err := nextRune(in)
		if err != nil {
			return 0, in, err
		}
		if !pred(r) {
			return 0, in, gnaw.Fail(kind.CharMismatch, in)
		}
		return r, in.Drop(size), nil
	}
}

// OneRune returns a parser that consumes the next complete rune if it equals
// any one of the given rune values.
func OneRune(rs ...rune) gnaw.Parser[rune] {
	return OneRuneFunc(RuneInSet(rs...))
}

// NoneOfRunes returns a parser that consumes the next complete rune if it
// equals none of the given rune values.
func NoneOfRunes(rs ...rune) gnaw.Parser[rune] {
	return OneRuneFunc(NotRune(RuneInSet(rs...)))
}

// RuneRun is the rune-level character-class parser built by RuneWhile1. It
// greedily consumes a maximal run of runes matching its predicate and
// produces the run's bytes as a view into the backing buffer. As with Run,
// an empty run is a failure rather than an empty success.
type RuneRun struct {
	policy RunPolicy
	pred   RunePredicate
}

// RuneWhile1 returns a RuneRun matching one or more runes that satisfy any
// of the given predicates, under the given end-of-input policy.
func RuneWhile1(policy RunPolicy, preds ...RunePredicate) *RuneRun {
	return &RuneRun{
		policy: policy,
		pred:   AnyRune(preds...),
	}
}

// Parse consumes the maximal run of matching runes.
func (r *RuneRun) Parse(in gnaw.Input) ([]byte, gnaw.Input, error) {
	total := 0
	rest := in
	for {
		c, size, err := nextRune(rest)
		if err != nil {
			// end of input, or a truncated rune more bytes could finish
			if r.policy == Streaming {
				return nil, in, err
			}
			break
		}
		if !r.pred(c) {
			break
		}
		total += size
		rest = rest.Drop(size)
	}
	if total == 0 {
		return nil, in, gnaw.Fail(kind.PredicateFailed, in)
	}
	return in.Take(total), in.Drop(total), nil
}

// Parser adapts the RuneRun for use wherever a Parser is expected.
func (r *RuneRun) Parser() gnaw.Parser[[]byte] {
	return r.Parse
}

func extractPredFromRuneRun(r *RuneRun) RunePredicate {
	return r.pred
}

// AndAlso creates a new RuneRun which combines the predicate of this RuneRun
// with the predicates of the given RuneRuns such that a rune is part of the
// run if it matches any of those predicates. The policy of this RuneRun is
// kept.
func (r *RuneRun) AndAlso(rs ...*RuneRun) *RuneRun {
	preds := slices.Map(rs, extractPredFromRuneRun)
	preds = slices.Unshift(preds, r.pred)
	return &RuneRun{
		policy: r.policy,
		pred:   AnyRune(preds...),
	}
}

// ButNot creates a new RuneRun which combines the predicate of this RuneRun
// with the predicates of the given RuneRuns such that a rune is part of the
// run if it matches this RuneRun, but not those.
func (r *RuneRun) ButNot(rs ...*RuneRun) *RuneRun {
	preds := slices.Map(rs, extractPredFromRuneRun)
	return &RuneRun{
		policy: r.policy,
		pred:   ThisButNotThatRune(r.pred, AnyRune(preds...)),
	}
}
