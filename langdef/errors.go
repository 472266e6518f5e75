package langdef

import (
	"github.com/ava12/mpg"
	"github.com/ava12/mpg/lexer"
)

// Error codes used by langdef, lexer errors may be returned too:
const (
	ErrUnexpectedEof = lexer.ErrBadToken + 1 + iota
	ErrUnexpectedToken
	ErrRuleDefined
	ErrWrongLiteral
	ErrWrongRange
	ErrWrongCount
)

func eofError(token *lexer.Token) *mpg.Error {
	return mpg.FormatErrorPos(token, ErrUnexpectedEof, "unexpected EoF")
}

func unexpectedTokenError(token *lexer.Token) *mpg.Error {
	return mpg.FormatErrorPos(token, ErrUnexpectedToken, "unexpected %s token %q", token.TypeName(), token.Text())
}

func ruleDefinedError(token *lexer.Token) *mpg.Error {
	return mpg.FormatErrorPos(token, ErrRuleDefined, "rule %q already defined", token.Text())
}

func wrongLiteralError(token *lexer.Token, alphabet string) *mpg.Error {
	return mpg.FormatErrorPos(token, ErrWrongLiteral, "wrong %s literal %s", alphabet, token.Text())
}

func wrongRangeError(token *lexer.Token, alphabet string) *mpg.Error {
	return mpg.FormatErrorPos(token, ErrWrongRange, "wrong %s range %s", alphabet, token.Text())
}

func wrongCountError(token *lexer.Token) *mpg.Error {
	return mpg.FormatErrorPos(token, ErrWrongCount, "wrong unit count %s", token.Text())
}
