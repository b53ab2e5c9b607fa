package match_test

import (
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/gnaw"
	"github.com/zostay/gnaw/kind"
	"github.com/zostay/gnaw/match"
)

func TestFirstLeftmost(t *testing.T) {
	as := match.Many1(match.One('a'))
	bs := match.Many1(match.One('b'))
	p := match.First(as, bs)

	// the first succeeding candidate wins even though the other would
	// match more
	out, rest, err := p.Parse(gnaw.NewString("bbbaaa"))
	require.NoError(t, err)
	assert.Equal(t, []byte("bbb"), out)
	assert.Equal(t, "aaa", rest.String())

	// the alternation's result is exactly the winner's result
	wout, wrest, werr := as.Parse(gnaw.NewString("aab"))
	out, rest, err = p.Parse(gnaw.NewString("aab"))
	require.NoError(t, werr)
	require.NoError(t, err)
	assert.Equal(t, wout, out)
	assert.Equal(t, wrest, rest)
}

func TestFirstExhausted(t *testing.T) {
	p := match.First(match.TagStr("cat"), match.TagStr("dog"))

	_, rest, err := p.Parse(gnaw.NewString("bird"))
	pe, ok := gnaw.Failed(err)
	require.True(t, ok)
	assert.Equal(t, kind.AlternativesExhausted, pe.Kind)
	assert.Equal(t, "bird", rest.String())

	// the last candidate's failure is kept as the root cause
	chain := pe.Chain()
	assert.Equal(t, kind.LiteralMismatch, chain[0])
	assert.Equal(t, kind.AlternativesExhausted, chain[len(chain)-1])
}

func TestFirstIncomplete(t *testing.T) {
	p := match.First(match.TagStr("nope"), match.TagStr("never"))

	// a partial match on an early candidate cannot be resolved by trying
	// shorter alternatives
	_, _, err := p.Parse(gnaw.NewString("no"))
	_, more := gnaw.NeedsMore(err)
	assert.True(t, more)
}

func TestLongest(t *testing.T) {
	p := match.Longest(match.TagStr("go"), match.TagStr("gopher"))

	out, rest, err := p.Parse(gnaw.NewString("gophers"))
	require.NoError(t, err)
	assert.Equal(t, "gopher", string(out))
	assert.Equal(t, "s", rest.String())
}

func TestMany0(t *testing.T) {
	p := match.Many0(match.One('a'))

	out, rest, err := p.Parse(gnaw.NewString("aaab"))
	require.NoError(t, err)
	assert.Equal(t, []byte("aaa"), out)
	assert.Equal(t, "b", rest.String())

	// many0 never fails: zero matches is an empty success
	out, rest, err = p.Parse(gnaw.NewString("bbb"))
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, "bbb", rest.String())
}

func TestMany0ZeroRunGuard(t *testing.T) {
	empty := gnaw.Parser[string](func(in gnaw.Input) (string, gnaw.Input, error) {
		return "", in, nil
	})
	_, _, err := match.Many0(empty).Parse(gnaw.NewString("loop"))
	pe, ok := gnaw.Failed(err)
	require.True(t, ok, "a zero-consuming child must not loop forever")
	assert.Equal(t, match.ZeroRun, pe.Kind)
}

func TestMany1(t *testing.T) {
	p := match.Many1(match.One('a'))

	out, rest, err := p.Parse(gnaw.NewString("aaab"))
	require.NoError(t, err)
	assert.Equal(t, []byte("aaa"), out)
	assert.Equal(t, "b", rest.String())

	_, _, err = p.Parse(gnaw.NewString("baa"))
	_, ok := gnaw.Failed(err)
	assert.True(t, ok)

	_, _, err = p.Parse(gnaw.NewString(""))
	_, more := gnaw.NeedsMore(err)
	assert.True(t, more)
}

func TestManyMN(t *testing.T) {
	p := match.ManyMN(2, 3, match.One('x'))

	out, rest, err := p.Parse(gnaw.NewString("xxxxx"))
	require.NoError(t, err)
	assert.Equal(t, []byte("xxx"), out, "stops early at n")
	assert.Equal(t, "xx", rest.String())

	out, _, err = p.Parse(gnaw.NewString("xxy"))
	require.NoError(t, err)
	assert.Equal(t, []byte("xx"), out)

	_, _, err = p.Parse(gnaw.NewString("xy"))
	_, ok := gnaw.Failed(err)
	assert.True(t, ok, "fewer than m matches fails")
}

func TestManyTill(t *testing.T) {
	p := match.ManyTill(match.NoneOf(';'), match.One(';'))

	out, rest, err := p.Parse(gnaw.NewString("abc;def"))
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), out.Items)
	assert.Equal(t, byte(';'), out.End)
	assert.Equal(t, "def", rest.String())

	// terminator may match immediately
	out, _, err = p.Parse(gnaw.NewString(";x"))
	require.NoError(t, err)
	assert.Empty(t, out.Items)

	// p failing before the terminator fails the whole construct
	q := match.ManyTill(match.One('a'), match.One(';'))
	_, _, err = q.Parse(gnaw.NewString("aab;"))
	_, ok := gnaw.Failed(err)
	assert.True(t, ok)
}

func TestManyWithSep(t *testing.T) {
	p := match.ManyWithSep(1, match.Digit1(match.Complete).Parser(), match.One(','))

	out, rest, err := p.Parse(gnaw.NewString("1,22,333end"))
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "333", string(out[2]))
	assert.Equal(t, "end", rest.String())

	// a trailing separator is left unconsumed
	out, rest, err = p.Parse(gnaw.NewString("1,2,x"))
	require.NoError(t, err)
	assert.Len(t, out, 2)
	assert.Equal(t, ",x", rest.String())

	_, _, err = p.Parse(gnaw.NewString("x"))
	_, ok := gnaw.Failed(err)
	assert.True(t, ok, "fewer than min elements fails")
}

func TestOptional(t *testing.T) {
	p := match.Optional(match.One('-'))

	out, rest, err := p.Parse(gnaw.NewString("-7"))
	require.NoError(t, err)
	assert.True(t, out.Present)
	assert.Equal(t, byte('-'), out.Value)
	assert.Equal(t, "7", rest.String())

	// optional never fails; absence leaves the input untouched
	out, rest, err = p.Parse(gnaw.NewString("7"))
	require.NoError(t, err)
	assert.False(t, out.Present)
	assert.Equal(t, "7", rest.String())

	// but it cannot decide presence without enough data
	_, _, err = p.Parse(gnaw.NewString(""))
	_, more := gnaw.NeedsMore(err)
	assert.True(t, more)
}

func TestCond(t *testing.T) {
	// the sub-parser must not run at all when the condition is false
	var ran bool
	spy := gnaw.Parser[[]byte](func(in gnaw.Input) ([]byte, gnaw.Input, error) {
		ran = true
		return match.Take(3).Parse(in)
	})

	_, rest, err := match.Cond(false, spy).Parse(gnaw.NewString("abcdef"))
	pe, ok := gnaw.Failed(err)
	require.True(t, ok)
	assert.Equal(t, kind.ConditionFailed, pe.Kind)
	assert.Equal(t, "abcdef", rest.String())
	assert.False(t, ran)

	out, _, err := match.Cond(true, spy).Parse(gnaw.NewString("abcdef"))
	require.NoError(t, err)
	assert.Equal(t, "abc", string(out))
	assert.True(t, ran)
}

func TestMap(t *testing.T) {
	p := match.Map(match.Digit1(match.Complete).Parser(), func(bs []byte) int {
		n, _ := strconv.Atoi(string(bs))
		return n
	})

	out, rest, err := p.Parse(gnaw.NewString("42!"))
	require.NoError(t, err)
	assert.Equal(t, 42, out)
	assert.Equal(t, "!", rest.String())

	// failure and incompleteness pass through unchanged
	_, _, err = p.Parse(gnaw.NewString("!"))
	_, ok := gnaw.Failed(err)
	assert.True(t, ok)
}

func TestMapRes(t *testing.T) {
	p := match.MapRes(match.Digit1(match.Complete).Parser(), func(bs []byte) (int, error) {
		return strconv.Atoi(string(bs))
	})

	out, _, err := p.Parse(gnaw.NewString("7,"))
	require.NoError(t, err)
	assert.Equal(t, 7, out)

	// a rejected value fails at the original position with the consumed
	// input given back
	boom := errors.New("boom")
	q := match.MapRes(match.Take(2), func([]byte) (int, error) { return 0, boom })
	_, rest, err := q.Parse(gnaw.NewString("abcd"))
	pe, ok := gnaw.Failed(err)
	require.True(t, ok)
	assert.Equal(t, match.MappingFailed, pe.Kind)
	assert.Equal(t, 0, pe.Offset)
	assert.Equal(t, "abcd", rest.String())
	assert.ErrorIs(t, err, boom)
}

func TestPeek(t *testing.T) {
	p := match.Peek(match.TagStr("ab"))
	out, rest, err := p.Parse(gnaw.NewString("abc"))
	require.NoError(t, err)
	assert.Equal(t, "ab", string(out))
	assert.Equal(t, "abc", rest.String(), "peek consumes nothing")
}

func TestRecognize(t *testing.T) {
	buf := []byte("12,34;")
	p := match.Recognize(match.ManyWithSep(1,
		match.Digit1(match.Complete).Parser(),
		match.One(','),
	))
	out, rest, err := p.Parse(gnaw.New(buf))
	require.NoError(t, err)
	assert.Equal(t, "12,34", string(out))
	assert.Equal(t, ";", rest.String())
	assert.Same(t, &buf[0], &out[0], "recognize output is a view of the input")
}

func TestDelimited(t *testing.T) {
	p := match.Delimited(match.One('('), match.Alpha1(match.Complete).Parser(), match.One(')'))

	out, rest, err := p.Parse(gnaw.NewString("(abc)!"))
	require.NoError(t, err)
	assert.Equal(t, "abc", string(out))
	assert.Equal(t, "!", rest.String())

	_, rest, err = p.Parse(gnaw.NewString("(abc!"))
	_, ok := gnaw.Failed(err)
	assert.True(t, ok)
	assert.Equal(t, "(abc!", rest.String())
}

type pair struct {
	a, b []byte
}

func TestSequence(t *testing.T) {
	p := match.Sequence(
		func(s match.Slots) pair {
			return pair{
				a: match.Get[[]byte](s, "a"),
				b: match.Get[[]byte](s, "b"),
			}
		},
		match.Bind("a", match.Many1(match.One('a'))),
		match.Skip(match.One(' ')),
		match.Bind("b", match.Many1(match.One('b'))),
	)

	out, rest, err := p.Parse(gnaw.NewString("aaa bbb"))
	require.NoError(t, err)
	assert.Equal(t, []byte("aaa"), out.a)
	assert.Equal(t, []byte("bbb"), out.b)
	assert.True(t, rest.Empty())

	// the first failing step aborts the sequence with the input unchanged
	_, rest, err = p.Parse(gnaw.NewString("aaa-bbb"))
	_, ok := gnaw.Failed(err)
	require.True(t, ok)
	assert.Equal(t, "aaa-bbb", rest.String())
}

func TestSequenceChainsLikeManualSteps(t *testing.T) {
	a := match.TagStr("ab")
	b := match.TagStr("cd")

	seq := match.Sequence(
		func(s match.Slots) []byte { return match.Get[[]byte](s, "second") },
		match.Skip(a),
		match.Bind("second", b),
	)

	in := gnaw.NewString("abcdef")
	out, rest, err := seq.Parse(in)
	require.NoError(t, err)

	// sequencing equals feeding one parser's remainder into the next
	_, mid, err1 := a.Parse(in)
	mout, mrest, err2 := b.Parse(mid)
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, mout, out)
	assert.Equal(t, mrest, rest)
}

func Example() {
	var (
		alpha  = match.Alpha1(match.Complete)
		digits = match.Digit1(match.Complete)

		atext = match.First(
			alpha.Parser(),
			digits.Parser(),
			match.Recognize(match.One(
				'!', '#', '$', '%', '&', '\'', '*', '+', '-', '/',
				'=', '?', '^', '_', '`', '{', '|', '}', '~',
			)),
		)

		dotAtom = match.Recognize(match.ManyWithSep(1,
			match.Recognize(match.Many1(atext)),
			match.One('.'),
		))

		address = match.Sequence(
			func(s match.Slots) string {
				local := match.Get[[]byte](s, "local")
				domain := match.Get[[]byte](s, "domain")
				return string(local) + " at " + string(domain)
			},
			match.Bind("local", dotAtom),
			match.Skip(match.One('@')),
			match.Bind("domain", dotAtom),
		)
	)

	out, _, err := address.Parse(gnaw.NewString("st.erling@example.com\n"))
	if err != nil {
		panic(err)
	}

	fmt.Println(out)
	// Output: st.erling at example.com
}
