// Package strterm defines terminals and the terminal matcher for textual input.
// Positions are byte offsets, lengths are either byte counts or rune counts depending on the metric.
package strterm

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/exp/constraints"
	"golang.org/x/text/cases"

	"github.com/ava12/mpg/grammar"
	"github.com/ava12/mpg/parser"
	"github.com/ava12/mpg/span"
)

type Kind int

const (
	// StrKind matches the exact text.
	StrKind Kind = iota
	// FoldKind matches the text ignoring case.
	FoldKind
	// RangeKind matches a single rune in the range [Lo, Hi].
	RangeKind
)

// Terminal is a textual terminal. Terminals are comparable.
type Terminal struct {
	Kind Kind
	Text string
	Lo   rune
	Hi   rune
}

func Char(r rune) Terminal {
	return Terminal{Kind: StrKind, Text: string(r)}
}

func Str(s string) Terminal {
	return Terminal{Kind: StrKind, Text: s}
}

// Fold creates caseless terminal, full Unicode case folding is used.
func Fold(s string) Terminal {
	return Terminal{Kind: FoldKind, Text: s}
}

func Range(lo, hi rune) Terminal {
	return Terminal{Kind: RangeKind, Lo: lo, Hi: hi}
}

// String returns langdef notation of the terminal.
func (t Terminal) String() string {
	switch t.Kind {
	case FoldKind:
		return "i" + strconv.Quote(t.Text)
	case RangeKind:
		return fmt.Sprintf("[%s-%s]", rangeRune(t.Lo), rangeRune(t.Hi))
	default:
		return strconv.Quote(t.Text)
	}
}

func rangeRune(r rune) string {
	switch {
	case r == '-' || r == ']' || r == '\\':
		return "\\" + string(r)
	case r == ' ':
		return `\x20`
	case !strconv.IsPrint(r):
		q := strconv.QuoteRune(r)
		return q[1 : len(q)-1]
	default:
		return string(r)
	}
}

// Matcher matches textual terminals. Metric must use byte offsets as positions.
type Matcher[P, L constraints.Integer] struct {
	Metric span.Metric[string, P, L]
}

func (m Matcher[P, L]) Match(input string, t Terminal, pos P, whole span.Span[P, L]) (span.Span[P, L], bool) {
	start := int(pos)
	hi := min(int(span.Hi(m.Metric, input, whole)), len(input))
	if start < 0 || start > hi {
		return span.Span[P, L]{}, false
	}

	var end int
	switch t.Kind {
	case StrKind:
		end = start + len(t.Text)
		if end > hi || input[start:end] != t.Text {
			return span.Span[P, L]{}, false
		}

	case FoldKind:
		n, ok := matchFold(input[start:hi], t.Text)
		if !ok {
			return span.Span[P, L]{}, false
		}
		end = start + n

	case RangeKind:
		if start >= hi {
			return span.Span[P, L]{}, false
		}
		r, size := utf8.DecodeRuneInString(input[start:hi])
		if r == utf8.RuneError && size <= 1 || r < t.Lo || r > t.Hi {
			return span.Span[P, L]{}, false
		}
		end = start + size

	default:
		return span.Span[P, L]{}, false
	}

	return span.Between(m.Metric, input, pos, P(end))
}

// matchFold returns the byte length of the shortest prefix of input equal to text under case folding.
func matchFold(input, text string) (int, bool) {
	caser := cases.Fold()
	want := caser.String(text)
	if want == "" {
		return 0, true
	}

	for end := 0; end < len(input); {
		_, size := utf8.DecodeRuneInString(input[end:])
		end += size
		got := caser.String(input[:end])
		if got == want {
			return end, true
		}
		if !strings.HasPrefix(want, got) {
			return 0, false
		}
	}
	return 0, false
}

// NewParser creates a parser where lengths are byte counts.
func NewParser[V comparable](rules *grammar.Rules[Terminal, V], opts parser.Options) *parser.Parser[string, Terminal, V, int, int] {
	m := span.Offsets[string, int, int]{}
	return parser.New[string, Terminal, V, int, int](rules, m, Matcher[int, int]{m}, opts)
}

// NewRuneParser creates a parser where lengths are rune counts.
func NewRuneParser[V comparable](rules *grammar.Rules[Terminal, V], opts parser.Options) *parser.Parser[string, Terminal, V, int, int] {
	m := span.Runes[int, int]{}
	return parser.New[string, Terminal, V, int, int](rules, m, Matcher[int, int]{m}, opts)
}

// Whole returns the span of the whole input for parsers created by NewParser.
func Whole(input string) span.Span[int, int] {
	return span.FromStartLen(0, len(input))
}

// WholeRunes returns the span of the whole input for parsers created by NewRuneParser.
func WholeRunes(input string) span.Span[int, int] {
	return span.FromStartLen(0, utf8.RuneCountInString(input))
}
