package grammar

import (
	"fmt"
	"strings"

	"github.com/ava12/mpg"
)

const (
	// ErrUndefinedVariables indicates that rules refer to variables having no rules.
	ErrUndefinedVariables = mpg.GrammarErrors + iota
	// ErrLeftRecursion indicates that a variable may expand to itself without consuming input.
	ErrLeftRecursion
)

func names[V any](vs []V) string {
	ns := make([]string, len(vs))
	for i, v := range vs {
		ns[i] = fmt.Sprint(v)
	}
	return strings.Join(ns, ", ")
}

func undefinedVariablesError[V any](vs []V) *mpg.Error {
	return mpg.FormatError(ErrUndefinedVariables, "undefined variables: %s", names(vs))
}

func leftRecursionError[V any](vs []V) *mpg.Error {
	return mpg.FormatError(ErrLeftRecursion, "found left-recursive variables: %s", names(vs))
}
