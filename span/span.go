// Package span defines positions, lengths, and half-open spans over an input.
//
// Positions and lengths are opaque to the rest of the library: a Metric knows how to combine them
// for one particular input representation, e.g. byte offsets with byte counts or byte offsets with
// rune counts.
package span

import (
	"cmp"
	"fmt"
	"unicode/utf8"

	"golang.org/x/exp/constraints"
)

// Span is a half-open range [Start, hi) where hi is Start advanced by Len units.
// Span is a value type, a span of zero length is valid and denotes an empty match.
type Span[P, L any] struct {
	Start P
	Len   L
}

// FromStartLen creates a span.
func FromStartLen[P, L any](start P, n L) Span[P, L] {
	return Span[P, L]{start, n}
}

func (s Span[P, L]) String() string {
	return fmt.Sprintf("%v+%v", s.Start, s.Len)
}

// Metric combines positions and lengths for input of type I.
type Metric[I, P, L any] interface {
	// Hi returns start advanced by n units.
	Hi(input I, start P, n L) P
	// Len returns the number of units between lo and hi, lo <= hi.
	Len(input I, lo, hi P) L
	// Succ returns p advanced by one unit.
	Succ(input I, p P) P
	// Cmp returns -1, 0, or +1 if a is less than, equal to, or greater than b.
	Cmp(a, b P) int
	// Units converts unit count to length.
	Units(n int) L
}

// Hi returns the end position of s.
func Hi[I, P, L any](m Metric[I, P, L], input I, s Span[P, L]) P {
	return m.Hi(input, s.Start, s.Len)
}

// Between returns the span [lo, hi).
// Returns false if hi lies before lo.
func Between[I, P, L any](m Metric[I, P, L], input I, lo, hi P) (Span[P, L], bool) {
	if m.Cmp(lo, hi) > 0 {
		return Span[P, L]{}, false
	}
	return Span[P, L]{lo, m.Len(input, lo, hi)}, true
}

// Cover returns the span starting at first.Start and ending at the end of last.
// last must not end before first starts.
func Cover[I, P, L any](m Metric[I, P, L], input I, first, last Span[P, L]) Span[P, L] {
	hi := Hi(m, input, last)
	return Span[P, L]{first.Start, m.Len(input, first.Start, hi)}
}

// Contains reports whether inner lies within outer.
func Contains[I, P, L any](m Metric[I, P, L], input I, outer, inner Span[P, L]) bool {
	return m.Cmp(outer.Start, inner.Start) <= 0 && m.Cmp(Hi(m, input, inner), Hi(m, input, outer)) <= 0
}

// Offsets is a metric for byte strings where positions are byte offsets and lengths are byte counts.
// Offsets does not consult the input.
type Offsets[I ~string | ~[]byte, P, L constraints.Integer] struct{}

func (Offsets[I, P, L]) Hi(_ I, start P, n L) P {
	return start + P(n)
}

func (Offsets[I, P, L]) Len(_ I, lo, hi P) L {
	return L(hi - lo)
}

func (Offsets[I, P, L]) Succ(_ I, p P) P {
	return p + 1
}

func (Offsets[I, P, L]) Cmp(a, b P) int {
	return cmp.Compare(a, b)
}

func (Offsets[I, P, L]) Units(n int) L {
	return L(n)
}

// Runes is a metric for UTF-8 text where positions are byte offsets and lengths are rune counts.
// Advancing beyond the end of input counts each missing rune as one byte,
// so the resulting position lies past the input and fails any bounds check.
type Runes[P, L constraints.Integer] struct{}

func (Runes[P, L]) Hi(input string, start P, n L) P {
	pos := int(start)
	for ; n > 0; n-- {
		if pos < 0 || pos >= len(input) {
			pos += int(n)
			break
		}

		_, size := utf8.DecodeRuneInString(input[pos:])
		pos += size
	}
	return P(pos)
}

func (Runes[P, L]) Len(input string, lo, hi P) L {
	l, h := int(lo), int(hi)
	if h <= l {
		return 0
	}

	extra := 0
	if h > len(input) {
		extra = h - max(l, len(input))
		h = len(input)
	}
	if l >= h {
		return L(extra)
	}
	return L(utf8.RuneCountInString(input[l:h]) + extra)
}

func (r Runes[P, L]) Succ(input string, p P) P {
	return r.Hi(input, p, 1)
}

func (Runes[P, L]) Cmp(a, b P) int {
	return cmp.Compare(a, b)
}

func (Runes[P, L]) Units(n int) L {
	return L(n)
}
