// Package lexer defines regexp-based lexical analyzer used by langdef.
package lexer

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/ava12/mpg"
	"github.com/ava12/mpg/source"
)

const (
	// ErrorTokenType is the type for fake tokens capturing broken lexemes (e.g. incorrect string literals).
	// Lexer never returns a token of this type, an error containing token text is returned instead.
	ErrorTokenType = -1

	// ErrorTokenName is the type name for ErrorTokenType.
	ErrorTokenName = "-error-"
)

// Error codes used by lexer:
const (
	// ErrWrongChar indicates that lexer cannot fetch any token at current position.
	// Error message contains the rune at current source position.
	ErrWrongChar = mpg.LangDefErrors + iota

	// ErrBadToken indicates that lexer has fetched a token of ErrorTokenType.
	ErrBadToken
)

// TokenType describes token type for specific capturing group of regular expression.
type TokenType struct {
	// Type contains token type, must be non-negative. Negative values are treated as ErrorTokenType.
	Type int

	// TypeName contains token type name, may be any value.
	TypeName string
}

// Lexer is immutable and safe for concurrent use, scanning state is kept by Scanner.
// Each token type maps to its own regexp capturing group index.
// A match containing no captured groups is treated as insignificant lexeme (e.g. whitespace or comment).
// Every byte of source must belong to some lexeme.
type Lexer struct {
	types []TokenType
	re    *regexp.Regexp
}

// New creates new Lexer.
// Each n-th element of types describes token type for (n+1)-th regexp capturing group.
// A group that has no description is treated as ErrorTokenType.
func New(re *regexp.Regexp, types []TokenType) *Lexer {
	ts := make([]TokenType, len(types))
	for i, t := range types {
		ts[i] = t
		if t.Type < 0 {
			ts[i].Type = ErrorTokenType
		}
	}
	return &Lexer{types: ts, re: re}
}

// Scanner fetches tokens from a single source.
type Scanner struct {
	lexer *Lexer
	src   *source.Source
	pos   int
}

// Scan creates scanner positioned at the start of src.
func (l *Lexer) Scan(src *source.Source) *Scanner {
	return &Scanner{lexer: l, src: src}
}

func (s *Scanner) Source() *source.Source {
	return s.src
}

// Pos returns current byte offset.
func (s *Scanner) Pos() int {
	return s.pos
}

func wrongCharError(src *source.Source, pos int) *mpg.Error {
	r, _ := utf8.DecodeRune(src.Content()[pos:])
	msg := fmt.Sprintf("wrong char %q (u+%x)", r, r)
	return mpg.FormatErrorPos(src.At(pos), ErrWrongChar, msg)
}

func badTokenError(t *Token) *mpg.Error {
	return mpg.FormatErrorPos(t, ErrBadToken, "bad token %q", t.Text())
}

// Next fetches token starting at current position and advances current position.
// Returns nil token and *mpg.Error and does not advance if there is a lexical error.
// Returns EoF token at the end of source.
func (s *Scanner) Next() (*Token, error) {
	content := s.src.Content()
	for s.pos < len(content) {
		match := s.lexer.re.FindSubmatchIndex(content[s.pos:])
		if len(match) == 0 || match[0] != 0 || match[1] <= match[0] {
			return nil, wrongCharError(s.src, s.pos)
		}

		for i := 2; i < len(match); i += 2 {
			if match[i] < 0 || match[i+1] < 0 {
				continue
			}

			tokenType, typeName := ErrorTokenType, ErrorTokenName
			if ti := (i >> 1) - 1; ti < len(s.lexer.types) {
				tokenType, typeName = s.lexer.types[ti].Type, s.lexer.types[ti].TypeName
			}

			text := string(content[s.pos+match[i] : s.pos+match[i+1]])
			token := NewToken(tokenType, typeName, text, s.src.At(s.pos+match[i]))
			if tokenType == ErrorTokenType {
				return nil, badTokenError(token)
			}

			s.pos += match[1]
			return token, nil
		}

		s.pos += match[1]
	}

	return EofToken(s.src), nil
}
