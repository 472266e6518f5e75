/*
Package mpg is a grammar-driven parsing library implementing prioritized (PEG-style) choice
over rule tables in a binary normal form.

Every rule has the shape

	Var = Left Right / Alt

where the first alternative is a sequence of exactly two symbols and the second one is a single
fallback symbol. Longer sequences and wider alternations are expressed with intermediate variables
(see grammar.Compile). The parser is generic over the terminal alphabet, the variable alphabet,
and the position/length representation, so the same evaluator parses text and binary inputs.

Consists of subpackages:
  - span: positions, lengths, and half-open spans over an input;
  - symbol: terminal symbols, metasymbols, and the ordered choice shape;
  - grammar: rule tables, lowering of long rules, well-formedness checks;
  - tree: concrete syntax trees and functions to traverse them;
  - parser: the ordered-choice evaluator;
  - ast: projection of a concrete syntax tree to a caller-defined tree of values;
  - strterm, byteterm: terminal matchers for textual and binary inputs;
  - source, lexer, langdef: textual grammar notation;
  - config, cmd/mpg: command line tool.

Typical usage is:

1. Describe grammar either in Go code using grammar.Rules or in textual notation parsed by langdef.

2. Create a parser for the rule table, a span metric, and a terminal matcher.

3. Parse input starting with some variable, optionally project the resulting tree with ast.Project.
*/
package mpg

import (
	"errors"
	"fmt"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	GrammarErrors = 1   // used by grammar
	LangDefErrors = 101 // used by langdef and lexer
	ParseErrors   = 201 // used by parser
	ConfigErrors  = 301 // used by config
	CommandErrors = 401 // used by mpg command
)

// Error is the error type used by mpg subpackages.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains non-empty error message including source name and position information if provided.
	Message string

	// SourceName contains source name that caused this error or empty string.
	SourceName string

	// Line contains line number in source or 0.
	Line int

	// Col contains column number in source or 0.
	Col int
}

// SourcePos is used to retrieve source name and position information when constructing an error;
// source.Pos and lexer.Token implement this interface.
type SourcePos interface {
	// SourceName returns source name or empty string.
	SourceName() string
	// Line returns line number or 0.
	Line() int
	// Col returns column number or 0.
	Col() int
}

// NewError creates new Error structure.
// name, line, and col will be added to error message if provided (non-zero).
func NewError(code int, msg, name string, line, col int) *Error {
	if line != 0 && col != 0 {
		if name == "" {
			msg += fmt.Sprintf(" at line %d col %d", line, col)
		} else {
			msg += fmt.Sprintf(" in %s at line %d col %d", name, line, col)
		}
	}
	return &Error{code, msg, name, line, col}
}

// Error simply returns Error.Message.
func (e *Error) Error() string {
	return e.Message
}

// FormatError creates Error structure with no source and position information.
// params will be added to error message using fmt.Sprintf function.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, "", 0, 0)
}

// FormatErrorPos creates Error structure with source and position information.
// pos must not be nil.
// params will be added to error message using fmt.Sprintf function.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, pos.SourceName(), pos.Line(), pos.Col())
}

// CodeOf returns the code of the first *Error found in err chain or 0.
func CodeOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return 0
}
