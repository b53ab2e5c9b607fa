package gnaw_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/gnaw"
	"github.com/zostay/gnaw/kind"
)

func TestErrorChain(t *testing.T) {
	in := gnaw.New([]byte("xyz"))

	inner := gnaw.Fail(kind.CharMismatch, in)
	mid := gnaw.Wrap(kind.AlternativesExhausted, in, inner)
	outer := gnaw.Wrap(kind.ConditionFailed, in, mid)

	// the chain reads innermost first: root cause, then context
	assert.Equal(t, []kind.Kind{
		kind.CharMismatch,
		kind.AlternativesExhausted,
		kind.ConditionFailed,
	}, outer.Chain())

	// wrapping did not disturb the inner entries
	assert.Equal(t, []kind.Kind{kind.CharMismatch}, inner.Chain())
	assert.Equal(t, kind.CharMismatch, mid.Chain()[0])
}

func TestErrorClassification(t *testing.T) {
	in := gnaw.New([]byte("xyz"))
	failed := gnaw.Fail(kind.LiteralMismatch, in)
	incomplete := gnaw.More(3)

	pe, ok := gnaw.Failed(failed)
	require.True(t, ok)
	assert.Equal(t, kind.LiteralMismatch, pe.Kind)

	_, ok = gnaw.Failed(incomplete)
	assert.False(t, ok, "incomplete input is not a parse failure")

	n, ok := gnaw.NeedsMore(incomplete)
	require.True(t, ok)
	cnt, exact := n.Count()
	assert.True(t, exact)
	assert.Equal(t, 3, cnt)

	_, ok = gnaw.NeedsMore(failed)
	assert.False(t, ok, "a parse failure does not ask for more input")
}

func TestNeededUnknown(t *testing.T) {
	n, ok := gnaw.NeedsMore(gnaw.MoreUnknown())
	require.True(t, ok)
	_, exact := n.Count()
	assert.False(t, exact)
}

func TestFailOffset(t *testing.T) {
	in := gnaw.New([]byte("abcdef")).Drop(4)
	pe := gnaw.Fail(kind.CharMismatch, in)
	assert.Equal(t, 4, pe.Offset)
	assert.Contains(t, pe.Error(), "offset 4")
}
