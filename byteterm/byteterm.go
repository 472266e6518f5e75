// Package byteterm defines terminals and the terminal matcher for binary input.
// Positions are byte offsets and lengths are byte counts of any integer types.
package byteterm

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"golang.org/x/exp/constraints"

	"github.com/ava12/mpg/grammar"
	"github.com/ava12/mpg/parser"
	"github.com/ava12/mpg/span"
)

type Kind int

const (
	// BytesKind matches the exact byte sequence.
	BytesKind Kind = iota
	// RangeKind matches a single byte in the range [Lo, Hi].
	RangeKind
)

// Terminal is a binary terminal. Byte sequences are stored as strings so that terminals are comparable.
type Terminal struct {
	Kind Kind
	Data string
	Lo   byte
	Hi   byte
}

func Byte(b byte) Terminal {
	return Terminal{Kind: BytesKind, Data: string([]byte{b})}
}

func Bytes(b []byte) Terminal {
	return Terminal{Kind: BytesKind, Data: string(b)}
}

func Str(s string) Terminal {
	return Terminal{Kind: BytesKind, Data: s}
}

func Range(lo, hi byte) Terminal {
	return Terminal{Kind: RangeKind, Lo: lo, Hi: hi}
}

// String returns langdef notation of the terminal: b"text" for printable ASCII sequences, x"hex" otherwise.
func (t Terminal) String() string {
	if t.Kind == RangeKind {
		return fmt.Sprintf("[\\x%02x-\\x%02x]", t.Lo, t.Hi)
	}

	for i := 0; i < len(t.Data); i++ {
		if t.Data[i] < 0x20 || t.Data[i] >= 0x7f {
			return `x"` + hex.EncodeToString([]byte(t.Data)) + `"`
		}
	}
	return "b" + strconv.Quote(t.Data)
}

// Matcher matches binary terminals.
type Matcher[P, L constraints.Integer] struct{}

func (Matcher[P, L]) Match(input []byte, t Terminal, pos P, whole span.Span[P, L]) (span.Span[P, L], bool) {
	start := int(pos)
	hi := min(int(whole.Start)+int(whole.Len), len(input))
	if start < 0 || start > hi {
		return span.Span[P, L]{}, false
	}

	switch t.Kind {
	case BytesKind:
		end := start + len(t.Data)
		if end > hi || string(input[start:end]) != t.Data {
			return span.Span[P, L]{}, false
		}
		return span.FromStartLen(pos, L(len(t.Data))), true

	case RangeKind:
		if start >= hi || input[start] < t.Lo || input[start] > t.Hi {
			return span.Span[P, L]{}, false
		}
		return span.FromStartLen(pos, L(1)), true

	default:
		return span.Span[P, L]{}, false
	}
}

// NewParser creates a parser for binary input.
func NewParser[V comparable, P, L constraints.Integer](rules *grammar.Rules[Terminal, V], opts parser.Options) *parser.Parser[[]byte, Terminal, V, P, L] {
	return parser.New[[]byte, Terminal, V, P, L](rules, span.Offsets[[]byte, P, L]{}, Matcher[P, L]{}, opts)
}

// Whole returns the span of the whole input.
func Whole[P, L constraints.Integer](input []byte) span.Span[P, L] {
	return span.FromStartLen(P(0), L(len(input)))
}
