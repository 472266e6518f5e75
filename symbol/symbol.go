// Package symbol defines terminal symbols, metasymbols, and the ordered choice shape
// shared by rules and syntax trees.
package symbol

import (
	"fmt"
	"strconv"
)

// Metasymbol is a structural pseudo-terminal. Metasymbols never read input content.
type Metasymbol int

const (
	// NoMeta marks an original terminal.
	NoMeta Metasymbol = iota
	// Epsilon matches zero units and always succeeds.
	Epsilon
	// Failure never succeeds.
	Failure
	// Any consumes exactly N units if available.
	Any
	// All consumes every remaining unit.
	All
	// Omit matches like Epsilon, its leaf is excluded from projected values.
	Omit
)

var metaNames = [...]string{"", "()", "f", "?", "*", "_"}

// String returns the notation used by langdef: (), f, ?, *, _.
func (m Metasymbol) String() string {
	if m < 0 || int(m) >= len(metaNames) {
		return "meta(" + strconv.Itoa(int(m)) + ")"
	}
	return metaNames[m]
}

// Terminal is either an original terminal of alphabet T or a metasymbol.
type Terminal[T any] struct {
	// Original holds the terminal if Meta is NoMeta.
	Original T
	// Meta holds the metasymbol kind.
	Meta Metasymbol
	// N holds unit count for Any.
	N int
}

// Original creates original terminal.
func Original[T any](t T) Terminal[T] {
	return Terminal[T]{Original: t}
}

// Meta creates metasymbol terminal, use AnyOf for Any.
func Meta[T any](m Metasymbol) Terminal[T] {
	return Terminal[T]{Meta: m}
}

// AnyOf creates Any(n) metasymbol terminal.
func AnyOf[T any](n int) Terminal[T] {
	return Terminal[T]{Meta: Any, N: n}
}

func (t Terminal[T]) IsMeta() bool {
	return t.Meta != NoMeta
}

func (t Terminal[T]) String() string {
	switch t.Meta {
	case NoMeta:
		return fmt.Sprint(t.Original)
	case Any:
		return "?" + strconv.Itoa(t.N)
	default:
		return t.Meta.String()
	}
}

// Choice is the outcome of an ordered alternation: either the pair of elements
// matched by the first alternative or the single element matched by the second one.
type Choice[E any] struct {
	first       bool
	left, right E
	second      E
}

// First creates a choice of the first alternative.
func First[E any](left, right E) Choice[E] {
	return Choice[E]{first: true, left: left, right: right}
}

// Second creates a choice of the second alternative.
func Second[E any](e E) Choice[E] {
	return Choice[E]{second: e}
}

func (c Choice[E]) IsFirst() bool {
	return c.first
}

// Pair returns elements of the first alternative.
// Returns false if c is a choice of the second alternative.
func (c Choice[E]) Pair() (left, right E, ok bool) {
	return c.left, c.right, c.first
}

// Single returns the element of the second alternative.
// Returns false if c is a choice of the first alternative.
func (c Choice[E]) Single() (e E, ok bool) {
	return c.second, !c.first
}

// Elems returns elements in left-to-right order: two for the first alternative, one for the second.
func (c Choice[E]) Elems() []E {
	if c.first {
		return []E{c.left, c.right}
	}
	return []E{c.second}
}

// Map converts choice elements keeping the alternative.
func Map[E, F any](c Choice[E], f func(E) F) Choice[F] {
	if c.first {
		return First(f(c.left), f(c.right))
	}
	return Second(f(c.second))
}
