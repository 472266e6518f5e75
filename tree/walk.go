package tree

import (
	"github.com/ava12/mpg/symbol"
)

type WalkMode int

const (
	WalkLtr WalkMode = 0
	WalkRtl WalkMode = 1
)

// WalkStat describes the node passed to a visitor.
type WalkStat[T any, V comparable, P, L any] struct {
	Node   *Node[T, V, P, L]
	Parent *Node[T, V, P, L]
	// Level is 0 for the root node.
	Level int
	// Index is the index of the node among its siblings.
	Index int
}

type WalkerFlags int

const (
	// WalkerStop stops walking.
	WalkerStop WalkerFlags = 1 << iota
	// WalkerSkipChildren prevents visiting children of current node.
	WalkerSkipChildren
)

type Visitor[T any, V comparable, P, L any] func(stat WalkStat[T, V, P, L]) WalkerFlags

// Walk visits n and its descendants in pre-order.
func Walk[T any, V comparable, P, L any](n *Node[T, V, P, L], mode WalkMode, visitor Visitor[T, V, P, L]) {
	if n != nil {
		visitNode(WalkStat[T, V, P, L]{Node: n}, visitor, mode&WalkRtl != 0)
	}
}

func visitNode[T any, V comparable, P, L any](stat WalkStat[T, V, P, L], v Visitor[T, V, P, L], rtl bool) (stop bool) {
	flags := v(stat)
	if flags&WalkerStop != 0 {
		return true
	}
	if flags&WalkerSkipChildren != 0 {
		return false
	}

	cs := stat.Node.Children()
	for i := range cs {
		ci := i
		if rtl {
			ci = len(cs) - 1 - i
		}
		cstat := WalkStat[T, V, P, L]{Node: cs[ci], Parent: stat.Node, Level: stat.Level + 1, Index: ci}
		if visitNode(cstat, v, rtl) {
			return true
		}
	}
	return false
}

type Filter[T any, V comparable, P, L any] func(n *Node[T, V, P, L]) bool

// Find returns nodes matching filter in pre-order.
// If deep is false descendants of matching nodes are not searched.
func Find[T any, V comparable, P, L any](n *Node[T, V, P, L], f Filter[T, V, P, L], deep bool) []*Node[T, V, P, L] {
	var result []*Node[T, V, P, L]
	Walk(n, WalkLtr, func(stat WalkStat[T, V, P, L]) WalkerFlags {
		if !f(stat.Node) {
			return 0
		}

		result = append(result, stat.Node)
		if deep {
			return 0
		}
		return WalkerSkipChildren
	})
	return result
}

// Leaves returns leaf nodes in left-to-right order.
func Leaves[T any, V comparable, P, L any](n *Node[T, V, P, L]) []*Node[T, V, P, L] {
	return Find(n, IsLeaf[T, V, P, L](), true)
}

func IsLeaf[T any, V comparable, P, L any]() Filter[T, V, P, L] {
	return func(n *Node[T, V, P, L]) bool {
		return n.IsLeaf()
	}
}

func IsVar[T any, V comparable, P, L any](vs ...V) Filter[T, V, P, L] {
	return func(n *Node[T, V, P, L]) bool {
		if n.IsLeaf() {
			return false
		}

		for _, v := range vs {
			if n.Var == v {
				return true
			}
		}
		return false
	}
}

func IsMeta[T any, V comparable, P, L any](ms ...symbol.Metasymbol) Filter[T, V, P, L] {
	return func(n *Node[T, V, P, L]) bool {
		if !n.IsLeaf() || !n.Term.IsMeta() {
			return false
		}

		for _, m := range ms {
			if n.Term.Meta == m {
				return true
			}
		}
		return false
	}
}

func IsNot[T any, V comparable, P, L any](f Filter[T, V, P, L]) Filter[T, V, P, L] {
	return func(n *Node[T, V, P, L]) bool {
		return !f(n)
	}
}

func IsAny[T any, V comparable, P, L any](fs ...Filter[T, V, P, L]) Filter[T, V, P, L] {
	return func(n *Node[T, V, P, L]) bool {
		for _, f := range fs {
			if f(n) {
				return true
			}
		}
		return false
	}
}
