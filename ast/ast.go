// Package ast projects concrete syntax trees to trees of caller-defined values.
//
// A projected tree has the same shape as the source tree. Children are projected before their parent,
// so a projector may combine child values. Leaves matched by the Omit metasymbol are marked as omitted
// and are never passed to the projector.
package ast

import (
	"github.com/ava12/mpg/symbol"
	"github.com/ava12/mpg/tree"
)

// Node mirrors a CST node and holds an optional value.
type Node[T any, V comparable, P, L, O any] struct {
	// CST holds the source node.
	CST *tree.Node[T, V, P, L]
	// Value is valid if HasValue is true.
	Value    O
	HasValue bool
	// Omitted is true for Omit leaves.
	Omitted bool
	// Choice holds projected children, nil for leaves.
	Choice *symbol.Choice[*Node[T, V, P, L, O]]
}

// Children returns projected children in left-to-right order.
func (n *Node[T, V, P, L, O]) Children() []*Node[T, V, P, L, O] {
	if n == nil || n.Choice == nil {
		return nil
	}
	return n.Choice.Elems()
}

// Projector computes node values.
// Project receives the source node and its already projected children and returns the node value,
// or false if the node has no value. Project must not fail.
type Projector[I, T any, V comparable, P, L, O any] interface {
	Project(input I, n *tree.Node[T, V, P, L], children []*Node[T, V, P, L, O]) (O, bool)
}

type ProjectorFunc[I, T any, V comparable, P, L, O any] func(input I, n *tree.Node[T, V, P, L], children []*Node[T, V, P, L, O]) (O, bool)

func (f ProjectorFunc[I, T, V, P, L, O]) Project(input I, n *tree.Node[T, V, P, L], children []*Node[T, V, P, L, O]) (O, bool) {
	return f(input, n, children)
}

// Project projects the tree rooted at n.
func Project[I, T any, V comparable, P, L, O any](input I, n *tree.Node[T, V, P, L], p Projector[I, T, V, P, L, O]) *Node[T, V, P, L, O] {
	if n == nil {
		return nil
	}

	result := &Node[T, V, P, L, O]{CST: n}
	if n.IsLeaf() && n.Term.Meta == symbol.Omit {
		result.Omitted = true
		return result
	}

	if n.Choice != nil {
		c := symbol.Map(*n.Choice, func(child *tree.Node[T, V, P, L]) *Node[T, V, P, L, O] {
			return Project(input, child, p)
		})
		result.Choice = &c
	}

	result.Value, result.HasValue = p.Project(input, n, result.Children())
	return result
}

// Values returns node values in pre-order.
func Values[T any, V comparable, P, L, O any](n *Node[T, V, P, L, O]) []O {
	var result []O
	collect(n, &result)
	return result
}

func collect[T any, V comparable, P, L, O any](n *Node[T, V, P, L, O], result *[]O) {
	if n == nil || n.Omitted {
		return
	}

	if n.HasValue {
		*result = append(*result, n.Value)
	}
	for _, c := range n.Children() {
		collect(c, result)
	}
}

// ChildValues returns values of direct children that have them.
func ChildValues[T any, V comparable, P, L, O any](children []*Node[T, V, P, L, O]) []O {
	var result []O
	for _, c := range children {
		if c.HasValue && !c.Omitted {
			result = append(result, c.Value)
		}
	}
	return result
}
