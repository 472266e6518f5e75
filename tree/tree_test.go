package tree

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ava12/mpg/span"
	"github.com/ava12/mpg/symbol"
)

type testNode = Node[string, string, int, int]

func leaf(t symbol.Terminal[string], start, n int) *testNode {
	return NewLeaf[string, string](t, span.FromStartLen(start, n))
}

func eps(pos int) *testNode {
	return leaf(symbol.Meta[string](symbol.Epsilon), pos, 0)
}

// number builds the tree for "10" matched by
//
//	Number = Digit Numeral / f
//	Numeral = Digit Numeral / ()
//	Digit = Zero () / f
//	Zero = "0" () / One
//	One = "1" () / f
func number() *testNode {
	one := FromFirst("One", leaf(symbol.Original("1"), 0, 1), eps(1), span.FromStartLen(0, 1))
	digit1 := FromFirst("Digit", FromSecond("Zero", one), eps(1), span.FromStartLen(0, 1))

	zero := FromFirst("Zero", leaf(symbol.Original("0"), 1, 1), eps(2), span.FromStartLen(1, 1))
	digit0 := FromFirst("Digit", zero, eps(2), span.FromStartLen(1, 1))
	numeral := FromFirst("Numeral", digit0, FromSecond("Numeral", eps(2)), span.FromStartLen(1, 1))

	return FromFirst("Number", digit1, numeral, span.FromStartLen(0, 2))
}

func serialize(n *testNode) string {
	b := &strings.Builder{}
	Walk(n, WalkLtr, func(stat WalkStat[string, string, int, int]) WalkerFlags {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(stat.Node.TypeName())
		return 0
	})
	return b.String()
}

func TestNodes(t *testing.T) {
	n := number()
	require.False(t, n.IsLeaf())
	require.True(t, n.Choice.IsFirst())
	require.Len(t, n.Children(), 2)
	require.Equal(t, "Number@0+2", n.String())

	zero := n.Children()[0].Children()[0]
	require.Equal(t, "Zero", zero.TypeName())
	require.False(t, zero.Choice.IsFirst())
	require.Equal(t, zero.Span, zero.Children()[0].Span)

	l := zero.Children()[0].Children()[0]
	require.True(t, l.IsLeaf())
	require.Nil(t, l.Children())
	require.Equal(t, "1", l.TypeName())
	require.Equal(t, 5, Depth(n))
}

func TestWalk(t *testing.T) {
	n := number()
	require.Equal(t, "Number Digit Zero One 1 () () Numeral Digit Zero 0 () () Numeral ()", serialize(n))

	var rtl []string
	Walk(n, WalkRtl, func(stat WalkStat[string, string, int, int]) WalkerFlags {
		rtl = append(rtl, stat.Node.TypeName())
		if stat.Level == 1 {
			return WalkerSkipChildren
		}
		return 0
	})
	require.Equal(t, []string{"Number", "Numeral", "Digit"}, rtl)

	var levels []int
	Walk(n, WalkLtr, func(stat WalkStat[string, string, int, int]) WalkerFlags {
		levels = append(levels, stat.Level)
		if stat.Node.TypeName() == "One" {
			return WalkerStop
		}
		return 0
	})
	require.Equal(t, []int{0, 1, 2, 3}, levels)
}

func TestFind(t *testing.T) {
	n := number()
	digits := Find(n, IsVar[string, string, int, int]("Digit"), true)
	require.Len(t, digits, 2)
	assert.Equal(t, span.FromStartLen(0, 1), digits[0].Span)
	assert.Equal(t, span.FromStartLen(1, 1), digits[1].Span)

	top := Find(n, IsVar[string, string, int, int]("Numeral", "Digit"), false)
	require.Len(t, top, 2)
	assert.Equal(t, "Digit", top[0].TypeName())
	assert.Equal(t, "Numeral", top[1].TypeName())

	leaves := Leaves(n)
	require.Len(t, leaves, 7)
	epsilons := Find(n, IsMeta[string, string, int, int](symbol.Epsilon), true)
	require.Len(t, epsilons, 5)
	originals := Find(n, IsAny(IsLeaf[string, string, int, int]()), true)
	require.Len(t, originals, 7)
	internal := Find(n, IsNot(IsLeaf[string, string, int, int]()), true)
	require.Len(t, internal, 8)
}
