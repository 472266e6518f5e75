package grammar

import (
	"github.com/ava12/mpg/internal/queue"
)

// Check verifies that start and every variable referenced by rules have rules
// and that no variable is left-recursive.
// Original terminals are assumed to never match empty input.
// Returns nil or *mpg.Error.
func (rs *Rules[T, V]) Check(start V) error {
	e := rs.findUndefined(start)
	if e == nil {
		e = rs.findLeftRecursions()
	}
	return e
}

func (rs *Rules[T, V]) findUndefined(start V) error {
	var undefined []V
	seen := make(map[V]bool)
	check := func(v V) {
		if _, found := rs.index[v]; !found && !seen[v] {
			seen[v] = true
			undefined = append(undefined, v)
		}
	}

	check(start)
	for _, r := range rs.rules {
		for _, s := range []Symbol[T, V]{r.Right.Left, r.Right.Right, r.Right.Alt} {
			if s.IsVar {
				check(s.Var)
			}
		}
	}

	if len(undefined) > 0 {
		return undefinedVariablesError(undefined)
	}
	return nil
}

// Nullable returns variables that may match empty input.
func (rs *Rules[T, V]) Nullable() map[V]bool {
	result := make(map[V]bool)
	for changed := true; changed; {
		changed = false
		for _, r := range rs.rules {
			if result[r.Var] {
				continue
			}

			rr := r.Right
			if (rs.nullable(rr.Left, result) && rs.nullable(rr.Right, result)) || rs.nullable(rr.Alt, result) {
				result[r.Var] = true
				changed = true
			}
		}
	}
	return result
}

func (rs *Rules[T, V]) nullable(s Symbol[T, V], vars map[V]bool) bool {
	switch s.Kind() {
	case VariableKind:
		return vars[s.Var]
	case EpsilonKind, OmitKind, AllKind:
		return true
	case AnyKind:
		return s.Term.N <= 0
	default:
		return false
	}
}

func (rs *Rules[T, V]) leftmost(r Rule[T, V], nullable map[V]bool) []V {
	var result []V
	rr := r.Right
	if rr.Left.IsVar {
		result = append(result, rr.Left.Var)
	}
	if rr.Right.IsVar && rs.nullable(rr.Left, nullable) {
		result = append(result, rr.Right.Var)
	}
	if rr.Alt.IsVar {
		result = append(result, rr.Alt.Var)
	}
	return result
}

func (rs *Rules[T, V]) findLeftRecursions() error {
	nullable := rs.Nullable()
	edges := make([][]int, len(rs.rules))
	for i, r := range rs.rules {
		for _, v := range rs.leftmost(r, nullable) {
			if j, found := rs.index[v]; found {
				edges[i] = append(edges[i], j)
			}
		}
	}

	var recursive []V
	for i, r := range rs.rules {
		if reaches(edges, i, i) {
			recursive = append(recursive, r.Var)
		}
	}

	if len(recursive) > 0 {
		return leftRecursionError(recursive)
	}
	return nil
}

func reaches(edges [][]int, from, to int) bool {
	visited := make([]bool, len(edges))
	q := queue.New(edges[from]...)
	for {
		i, fetched := q.First()
		if !fetched {
			return false
		}

		if i == to {
			return true
		}
		if visited[i] {
			continue
		}

		visited[i] = true
		for _, j := range edges[i] {
			q.Append(j)
		}
	}
}

// Unused returns variables not reachable from start in insertion order.
func (rs *Rules[T, V]) Unused(start V) []V {
	reached := make(map[V]bool)
	q := queue.New(start)
	for {
		v, fetched := q.First()
		if !fetched {
			break
		}

		if reached[v] {
			continue
		}

		reached[v] = true
		r, found := rs.Get(v)
		if !found {
			continue
		}

		for _, s := range []Symbol[T, V]{r.Right.Left, r.Right.Right, r.Right.Alt} {
			if s.IsVar {
				q.Append(s.Var)
			}
		}
	}

	var result []V
	for _, r := range rs.rules {
		if !reached[r.Var] {
			result = append(result, r.Var)
		}
	}
	return result
}
