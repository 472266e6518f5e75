package parser

import (
	"fmt"

	"github.com/ava12/mpg"
	"github.com/ava12/mpg/grammar"
)

// Error codes used by parser:
const (
	// ErrTerminalMismatch indicates that terminal content does not match input.
	ErrTerminalMismatch = mpg.ParseErrors + iota
	// ErrOutOfBounds indicates that a symbol would read past the end of the whole span.
	ErrOutOfBounds
	// ErrUndefinedVariable indicates that the variable has no rule.
	ErrUndefinedVariable
	// ErrAllAlternativesFailed indicates that both alternatives of the variable rule failed.
	ErrAllAlternativesFailed
	// ErrUnconsumedInput indicates that FullParse mode stopped before the end of input.
	ErrUnconsumedInput
)

func (p *Parser[I, T, V, P, L]) newError(code int, pos P, msg string, params ...any) *mpg.Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	if p.locate == nil {
		return mpg.NewError(code, fmt.Sprintf("%s at %v", msg, pos), "", 0, 0)
	}

	name, line, col := p.locate(pos)
	return mpg.NewError(code, msg, name, line, col)
}

func (p *Parser[I, T, V, P, L]) failureError(f *failure[T, V, P]) *mpg.Error {
	switch f.code {
	case ErrTerminalMismatch:
		if f.sym.Kind() == grammar.FailureKind {
			return p.newError(f.code, f.pos, "%s never matches", f.sym)
		}
		return p.newError(f.code, f.pos, "cannot match %s", f.sym)
	case ErrOutOfBounds:
		return p.newError(f.code, f.pos, "%s exceeds input bounds", f.sym)
	case ErrUndefinedVariable:
		return p.newError(f.code, f.pos, "undefined variable %s", f.sym)
	default:
		return p.newError(f.code, f.pos, "no alternative of %s matches", f.sym)
	}
}

func (p *Parser[I, T, V, P, L]) unconsumedError(pos P) *mpg.Error {
	return p.newError(ErrUnconsumedInput, pos, "unconsumed input")
}
