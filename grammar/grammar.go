// Package grammar defines rule tables in binary normal form.
//
// Each rule has the shape
//
//	Var = Left Right / Alt
//
// where Left Right is the first alternative (a sequence of two symbols) and Alt is the second one.
// Compile lowers rules with longer sequences and more alternatives to this form.
package grammar

import (
	"fmt"
	"strings"

	"github.com/ava12/mpg/symbol"
)

// Kind classifies right-hand side symbols.
type Kind int

const (
	TerminalKind Kind = iota
	VariableKind
	EpsilonKind
	FailureKind
	AnyKind
	AllKind
	OmitKind
)

// Symbol is a right-hand side symbol: a variable, an original terminal, or a metasymbol.
type Symbol[T any, V comparable] struct {
	// IsVar is true if the symbol is a variable.
	IsVar bool
	// Var holds the variable if IsVar is true.
	Var V
	// Term holds the terminal or metasymbol if IsVar is false.
	Term symbol.Terminal[T]
}

func (s Symbol[T, V]) Kind() Kind {
	if s.IsVar {
		return VariableKind
	}

	switch s.Term.Meta {
	case symbol.Epsilon:
		return EpsilonKind
	case symbol.Failure:
		return FailureKind
	case symbol.Any:
		return AnyKind
	case symbol.All:
		return AllKind
	case symbol.Omit:
		return OmitKind
	default:
		return TerminalKind
	}
}

func (s Symbol[T, V]) String() string {
	if s.IsVar {
		return fmt.Sprint(s.Var)
	}
	return s.Term.String()
}

// Symbols creates symbols of a particular alphabet. The zero value is ready to use:
//
//	var s grammar.Symbols[strterm.Terminal, string]
//	rules.Add("Digit", s.T(strterm.Char('0')), s.Epsilon(), s.V("Digit1"))
type Symbols[T any, V comparable] struct{}

func (Symbols[T, V]) T(t T) Symbol[T, V] {
	return Symbol[T, V]{Term: symbol.Original(t)}
}

func (Symbols[T, V]) V(v V) Symbol[T, V] {
	return Symbol[T, V]{IsVar: true, Var: v}
}

func (Symbols[T, V]) Epsilon() Symbol[T, V] {
	return Symbol[T, V]{Term: symbol.Meta[T](symbol.Epsilon)}
}

func (Symbols[T, V]) Failure() Symbol[T, V] {
	return Symbol[T, V]{Term: symbol.Meta[T](symbol.Failure)}
}

func (Symbols[T, V]) Any(n int) Symbol[T, V] {
	return Symbol[T, V]{Term: symbol.AnyOf[T](n)}
}

func (Symbols[T, V]) All() Symbol[T, V] {
	return Symbol[T, V]{Term: symbol.Meta[T](symbol.All)}
}

func (Symbols[T, V]) Omit() Symbol[T, V] {
	return Symbol[T, V]{Term: symbol.Meta[T](symbol.Omit)}
}

// RightRule is the right-hand side of a rule: (Left Right) / Alt.
type RightRule[T any, V comparable] struct {
	Left, Right, Alt Symbol[T, V]
}

// Rule is the production of a single variable.
type Rule[T any, V comparable] struct {
	Var   V
	Right RightRule[T, V]
}

func NewRule[T any, V comparable](v V, left, right, alt Symbol[T, V]) Rule[T, V] {
	return Rule[T, V]{v, RightRule[T, V]{left, right, alt}}
}

func (r Rule[T, V]) String() string {
	return fmt.Sprintf("%v = %s %s / %s", r.Var, r.Right.Left, r.Right.Right, r.Right.Alt)
}

// Rules maps variables to their rules. Rules keeps insertion order of variables.
// Rules must not be modified while used by a parser, concurrent reads are safe.
type Rules[T any, V comparable] struct {
	index map[V]int
	rules []Rule[T, V]
}

func New[T any, V comparable](rules ...Rule[T, V]) *Rules[T, V] {
	rs := &Rules[T, V]{index: make(map[V]int, len(rules))}
	for _, r := range rules {
		rs.Insert(r)
	}
	return rs
}

// Insert adds a rule keyed by its variable, an existing rule for the same variable is replaced.
func (rs *Rules[T, V]) Insert(r Rule[T, V]) *Rules[T, V] {
	if rs.index == nil {
		rs.index = make(map[V]int)
	}

	i, found := rs.index[r.Var]
	if found {
		rs.rules[i] = r
	} else {
		rs.index[r.Var] = len(rs.rules)
		rs.rules = append(rs.rules, r)
	}
	return rs
}

// Add inserts rule v = left right / alt.
func (rs *Rules[T, V]) Add(v V, left, right, alt Symbol[T, V]) *Rules[T, V] {
	return rs.Insert(NewRule(v, left, right, alt))
}

// Get returns the rule for v. Returns false if there is no such rule.
func (rs *Rules[T, V]) Get(v V) (Rule[T, V], bool) {
	i, found := rs.index[v]
	if !found {
		return Rule[T, V]{}, false
	}
	return rs.rules[i], true
}

func (rs *Rules[T, V]) Len() int {
	return len(rs.rules)
}

// Vars returns defined variables in insertion order.
func (rs *Rules[T, V]) Vars() []V {
	result := make([]V, len(rs.rules))
	for i, r := range rs.rules {
		result[i] = r.Var
	}
	return result
}

// Rules returns a copy of defined rules in insertion order.
func (rs *Rules[T, V]) Rules() []Rule[T, V] {
	result := make([]Rule[T, V], len(rs.rules))
	copy(result, rs.rules)
	return result
}

func (rs *Rules[T, V]) String() string {
	b := &strings.Builder{}
	for _, r := range rs.rules {
		b.WriteString(r.String())
		b.WriteString(";\n")
	}
	return b.String()
}
