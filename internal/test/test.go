// Package test contains helpers shared by package tests.
package test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava12/mpg"
)

// ExpectErrorCode fails the test unless e is (or wraps) *mpg.Error with the expected code.
func ExpectErrorCode(t testing.TB, expected int, e error) {
	t.Helper()
	require.Error(t, e, "expecting error code %d", expected)
	require.Equal(t, expected, mpg.CodeOf(e), "expecting error code %d, got %v", expected, e)
}

// ExpectPos fails the test unless e is (or wraps) *mpg.Error with the expected position.
func ExpectPos(t testing.TB, line, col int, e error) {
	t.Helper()
	var ee *mpg.Error
	require.ErrorAs(t, e, &ee)
	require.Equal(t, [2]int{line, col}, [2]int{ee.Line, ee.Col}, "unexpected error position: %v", e)
}
