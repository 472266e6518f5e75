// Package tree defines concrete syntax trees built by parser.
//
// A leaf node holds a matched terminal or metasymbol, an internal node holds a variable and the
// choice of child nodes matched by its rule: two children for the first alternative, one for the
// second. Every node holds the span of input it matched; the span of an internal node is the union
// of its children spans. Trees are strict: no node is shared, there are no back references.
package tree

import (
	"fmt"

	"github.com/ava12/mpg/span"
	"github.com/ava12/mpg/symbol"
)

// Node is a concrete syntax tree node.
type Node[T any, V comparable, P, L any] struct {
	// Span holds matched input span.
	Span span.Span[P, L]
	// Term holds matched terminal symbol for leaf nodes.
	Term symbol.Terminal[T]
	// Var holds the variable for internal nodes.
	Var V
	// Choice holds children for internal nodes, nil for leaf nodes.
	Choice *symbol.Choice[*Node[T, V, P, L]]
}

// NewLeaf creates leaf node.
func NewLeaf[T any, V comparable, P, L any](t symbol.Terminal[T], s span.Span[P, L]) *Node[T, V, P, L] {
	return &Node[T, V, P, L]{Span: s, Term: t}
}

// FromFirst creates internal node matched by the first alternative of the rule for v.
// s must cover both children.
func FromFirst[T any, V comparable, P, L any](v V, left, right *Node[T, V, P, L], s span.Span[P, L]) *Node[T, V, P, L] {
	c := symbol.First(left, right)
	return &Node[T, V, P, L]{Span: s, Var: v, Choice: &c}
}

// FromSecond creates internal node matched by the second alternative of the rule for v.
// Node span equals child span.
func FromSecond[T any, V comparable, P, L any](v V, child *Node[T, V, P, L]) *Node[T, V, P, L] {
	c := symbol.Second(child)
	return &Node[T, V, P, L]{Span: child.Span, Var: v, Choice: &c}
}

func (n *Node[T, V, P, L]) IsLeaf() bool {
	return n.Choice == nil
}

// Children returns child nodes in left-to-right order, nil for leaf nodes.
func (n *Node[T, V, P, L]) Children() []*Node[T, V, P, L] {
	if n == nil || n.Choice == nil {
		return nil
	}
	return n.Choice.Elems()
}

// TypeName returns the variable name for internal nodes and the terminal notation for leaf nodes.
func (n *Node[T, V, P, L]) TypeName() string {
	if n.IsLeaf() {
		return n.Term.String()
	}
	return fmt.Sprint(n.Var)
}

func (n *Node[T, V, P, L]) String() string {
	return n.TypeName() + "@" + n.Span.String()
}

// Depth returns the number of nodes on the longest path from n to a leaf.
func Depth[T any, V comparable, P, L any](n *Node[T, V, P, L]) int {
	if n == nil {
		return 0
	}

	d := 0
	for _, c := range n.Children() {
		d = max(d, Depth(c))
	}
	return d + 1
}
