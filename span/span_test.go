package span

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type byteMetric = Offsets[[]byte, uint32, uint16]

func TestEpsilonSpanIsZeroWidth(t *testing.T) {
	var m byteMetric
	input := []byte("RIFF")
	for _, start := range []uint32{0, 1, 4} {
		s := FromStartLen[uint32, uint16](start, 0)
		assert.Equal(t, start, Hi[[]byte](m, input, s))
		assert.LessOrEqual(t, s.Start, Hi[[]byte](m, input, s))
	}
}

func TestOffsets(t *testing.T) {
	var m Offsets[string, int, int]
	s := FromStartLen(2, 3)
	require.Equal(t, 5, Hi[string](m, "abcdefg", s))
	require.Equal(t, 3, m.Len("abcdefg", 2, 5))
	require.Equal(t, 3, m.Succ("", 2))
	require.Equal(t, -1, m.Cmp(1, 2))
	require.Equal(t, 0, m.Cmp(2, 2))
	require.Equal(t, 1, m.Cmp(3, 2))
}

func TestBetween(t *testing.T) {
	var m Offsets[string, int, int]
	s, ok := Between[string, int, int](m, "abc", 1, 3)
	require.True(t, ok)
	require.Equal(t, FromStartLen(1, 2), s)

	_, ok = Between[string, int, int](m, "abc", 3, 1)
	require.False(t, ok)
}

func TestCover(t *testing.T) {
	var m Offsets[string, int, int]
	first := FromStartLen(1, 2)
	last := FromStartLen(3, 0)
	require.Equal(t, FromStartLen(1, 2), Cover[string](m, "abcd", first, last))
	require.Equal(t, FromStartLen(0, 4), Cover[string](m, "abcd", FromStartLen(0, 1), FromStartLen(2, 2)))
	require.True(t, Contains[string](m, "abcd", FromStartLen(0, 4), FromStartLen(1, 2)))
	require.False(t, Contains[string](m, "abcd", FromStartLen(1, 2), FromStartLen(0, 4)))
}

func TestRunes(t *testing.T) {
	var m Runes[int, int]
	input := "aжb€"

	samples := []struct {
		start, n, hi int
	}{
		{0, 0, 0},
		{0, 1, 1},
		{0, 2, 3},
		{1, 1, 3},
		{0, 4, 7},
		{4, 1, 7},
		{7, 1, 8},
		{4, 3, 9},
	}
	for i, s := range samples {
		assert.Equal(t, s.hi, m.Hi(input, s.start, s.n), "sample #%d", i)
	}

	assert.Equal(t, 4, m.Len(input, 0, 7))
	assert.Equal(t, 1, m.Len(input, 1, 3))
	assert.Equal(t, 0, m.Len(input, 3, 3))
	assert.Equal(t, 3, m.Len(input, 4, 9))
	assert.Equal(t, 3, m.Succ(input, 1))
}
