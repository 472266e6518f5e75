package langdef

import (
	"encoding/hex"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ava12/mpg/byteterm"
	"github.com/ava12/mpg/grammar"
	"github.com/ava12/mpg/lexer"
	"github.com/ava12/mpg/source"
	"github.com/ava12/mpg/strterm"
)

// Grammar is a parsed description.
type Grammar[T any] struct {
	// Start is the variable defined by the first rule.
	Start string
	Rules *grammar.Rules[T, string]
}

// ParseText parses description of a grammar for textual input.
// Returns nil and *mpg.Error on error.
func ParseText(s *source.Source) (*Grammar[strterm.Terminal], error) {
	return parse[strterm.Terminal](s, textAlphabet{})
}

// ParseTextString parses description of a grammar for textual input.
func ParseTextString(name, content string) (*Grammar[strterm.Terminal], error) {
	return ParseText(source.New(name, []byte(content)))
}

// ParseBinary parses description of a grammar for binary input.
// Returns nil and *mpg.Error on error.
func ParseBinary(s *source.Source) (*Grammar[byteterm.Terminal], error) {
	return parse[byteterm.Terminal](s, binaryAlphabet{})
}

// ParseBinaryString parses description of a grammar for binary input.
func ParseBinaryString(name, content string) (*Grammar[byteterm.Terminal], error) {
	return ParseBinary(source.New(name, []byte(content)))
}

// Fresh returns names of intermediate variables: Name.1, Name.2, etc.
func Fresh(base string, i int) string {
	return base + "." + strconv.Itoa(i)
}

// IsFresh returns true for names returned by Fresh. Names defined in descriptions never contain dots.
func IsFresh(name string) bool {
	return strings.IndexByte(name, '.') >= 0
}

type alphabet[T any] interface {
	name() string
	binary() bool
	literal(prefix byte, text string) (T, bool)
	charRange(lo, hi rune) (T, bool)
}

type textAlphabet struct{}

func (textAlphabet) name() string {
	return "text"
}

func (textAlphabet) binary() bool {
	return false
}

func (textAlphabet) literal(prefix byte, text string) (strterm.Terminal, bool) {
	switch prefix {
	case 0:
		return strterm.Str(text), true
	case 'i':
		return strterm.Fold(text), true
	default:
		return strterm.Terminal{}, false
	}
}

func (textAlphabet) charRange(lo, hi rune) (strterm.Terminal, bool) {
	return strterm.Range(lo, hi), true
}

type binaryAlphabet struct{}

func (binaryAlphabet) name() string {
	return "binary"
}

func (binaryAlphabet) binary() bool {
	return true
}

func (binaryAlphabet) literal(prefix byte, text string) (byteterm.Terminal, bool) {
	if prefix == 'i' {
		return byteterm.Terminal{}, false
	}
	return byteterm.Str(text), true
}

func (binaryAlphabet) charRange(lo, hi rune) (byteterm.Terminal, bool) {
	if hi > 0xff {
		return byteterm.Terminal{}, false
	}
	return byteterm.Range(byte(lo), byte(hi)), true
}

const (
	stringTok  = "string"
	rangeTok   = "range"
	anyTok     = "any"
	epsilonTok = "epsilon"
	nameTok    = "name"
	opTok      = "op"
)

const (
	equTok       = "="
	slashTok     = "/"
	semicolonTok = ";"
	allTok       = "*"
	omitTok      = "_"
	failureName  = "f"
)

var itemHeads = []string{stringTok, rangeTok, anyTok, epsilonTok, nameTok, allTok, omitTok}

var defLexer *lexer.Lexer

func init() {
	tokenTypes := []lexer.TokenType{
		{1, stringTok},
		{2, rangeTok},
		{3, anyTok},
		{4, epsilonTok},
		{5, nameTok},
		{6, opTok},
		{lexer.ErrorTokenType, ""},
	}

	re := regexp.MustCompile(
		`^(?:\s+|#[^\n]*|` +
			`([ibx]?(?:"(?:[^\\"\n]|\\.)*"|'[^'\n]*'))|` +
			`(\[(?:[^\\\]\n]|\\.)+\])|` +
			`(\?[0-9]+)|` +
			`(\(\s*\))|` +
			`([A-Za-z][A-Za-z0-9_]*)|` +
			`([=/;*_])|` +
			`([ibx]?["'].{0,10}|[\[?(].{0,10}))`)

	defLexer = lexer.New(re, tokenTypes)
}

type parseContext[T any] struct {
	scanner    *lexer.Scanner
	alphabet   alphabet[T]
	savedToken *lexer.Token
	result     *Grammar[T]
	symbols    grammar.Symbols[T, string]
}

func parse[T any](s *source.Source, a alphabet[T]) (*Grammar[T], error) {
	c := &parseContext[T]{
		scanner:  defLexer.Scan(s),
		alphabet: a,
		result:   &Grammar[T]{Rules: grammar.New[T, string]()},
	}

	e := c.parse()
	if e == nil {
		e = c.result.Rules.Check(c.result.Start)
	}
	if e != nil {
		return nil, e
	}

	return c.result, nil
}

func (c *parseContext[T]) parse() error {
	types := []string{nameTok}
	for {
		t, e := c.fetch(types, true)
		if e != nil {
			return e
		}

		if t.Type() == lexer.EofTokenType {
			return nil
		}

		e = c.parseRule(t)
		if e != nil {
			return e
		}

		types = []string{nameTok, lexer.EofTokenName}
	}
}

func (c *parseContext[T]) put(t *lexer.Token) {
	if c.savedToken != nil {
		panic("cannot put " + t.TypeName() + " token: already put " + c.savedToken.TypeName())
	}

	c.savedToken = t
}

// fetch returns the next token if its type name or text is one of types.
// Otherwise returns an error if strict is true, or puts the token back and returns nil, nil.
func (c *parseContext[T]) fetch(types []string, strict bool) (*lexer.Token, error) {
	token := c.savedToken
	if token == nil {
		var e error
		token, e = c.scanner.Next()
		if e != nil {
			return nil, e
		}
	} else {
		c.savedToken = nil
	}

	for _, typ := range types {
		if token.TypeName() == typ || (token.TypeName() == opTok && token.Text() == typ) {
			return token, nil
		}
	}

	if !strict {
		c.put(token)
		return nil, nil
	}

	if token.Type() == lexer.EofTokenType {
		return nil, eofError(token)
	}
	return nil, unexpectedTokenError(token)
}

func (c *parseContext[T]) skip(typ string, e error) error {
	if e != nil {
		return e
	}

	_, e = c.fetch([]string{typ}, true)
	return e
}

func (c *parseContext[T]) parseRule(nameToken *lexer.Token) error {
	name := nameToken.Text()
	_, defined := c.result.Rules.Get(name)
	if defined || name == failureName {
		return ruleDefinedError(nameToken)
	}

	if c.result.Start == "" {
		c.result.Start = name
	}

	e := c.skip(equTok, nil)
	if e != nil {
		return e
	}

	var alts [][]grammar.Symbol[T, string]
	for {
		alt, e := c.parseAlternative()
		if e != nil {
			return e
		}

		alts = append(alts, alt)
		t, e := c.fetch([]string{slashTok, semicolonTok}, true)
		if e != nil {
			return e
		}
		if t.Text() == semicolonTok {
			break
		}
	}

	for _, r := range grammar.Compile(name, Fresh, alts...) {
		c.result.Rules.Insert(r)
	}
	return nil
}

func (c *parseContext[T]) parseAlternative() ([]grammar.Symbol[T, string], error) {
	result := make([]grammar.Symbol[T, string], 0)
	for {
		t, e := c.fetch(itemHeads, false)
		if e != nil {
			return nil, e
		}
		if t == nil {
			return result, nil
		}

		item, e := c.parseItem(t)
		if e != nil {
			return nil, e
		}

		result = append(result, item)
	}
}

func (c *parseContext[T]) parseItem(t *lexer.Token) (grammar.Symbol[T, string], error) {
	s := c.symbols
	switch t.TypeName() {
	case nameTok:
		if t.Text() == failureName {
			return s.Failure(), nil
		}
		return s.V(t.Text()), nil

	case epsilonTok:
		return s.Epsilon(), nil

	case anyTok:
		n, e := strconv.Atoi(t.Text()[1:])
		if e != nil {
			return s.Failure(), wrongCountError(t)
		}
		return s.Any(n), nil

	case stringTok:
		term, e := c.parseLiteral(t)
		return s.T(term), e

	case rangeTok:
		term, e := c.parseRange(t)
		return s.T(term), e
	}

	if t.Text() == allTok {
		return s.All(), nil
	}
	return s.Omit(), nil
}

func (c *parseContext[T]) parseLiteral(t *lexer.Token) (T, error) {
	text := t.Text()
	var prefix byte
	if text[0] != '"' && text[0] != '\'' {
		prefix = text[0]
		text = text[1:]
	}

	quote := text[0]
	text = text[1 : len(text)-1]
	valid := true
	switch {
	case prefix == 'x':
		b, e := hex.DecodeString(strings.Join(strings.Fields(text), ""))
		valid = (e == nil && c.alphabet.binary())
		text = string(b)
	case prefix == 'b' && !c.alphabet.binary():
		valid = false
	case quote == '"':
		text, valid = unescape(text, c.alphabet.binary())
	}

	var term T
	if valid {
		term, valid = c.alphabet.literal(prefix, text)
	}
	if !valid {
		return term, wrongLiteralError(t, c.alphabet.name())
	}
	return term, nil
}

func (c *parseContext[T]) parseRange(t *lexer.Token) (T, error) {
	var term T
	text := t.Text()
	text = text[1 : len(text)-1]

	lo, rest, valid := rangeChar(text)
	hi := lo
	if valid && rest != "" {
		valid = rest[0] == '-'
		if valid {
			hi, rest, valid = rangeChar(rest[1:])
		}
	}
	valid = valid && rest == "" && lo <= hi
	if valid {
		term, valid = c.alphabet.charRange(lo, hi)
	}
	if !valid {
		return term, wrongRangeError(t, c.alphabet.name())
	}
	return term, nil
}

type escapeCharEntry struct {
	substitute, hexLen byte
}

var escapeCharMap = map[byte]escapeCharEntry{
	'\\': {'\\', 0},
	'"':  {'"', 0},
	'a':  {'\a', 0},
	'b':  {'\b', 0},
	'f':  {'\f', 0},
	'n':  {'\n', 0},
	'r':  {'\r', 0},
	't':  {'\t', 0},
	'v':  {'\v', 0},
	'x':  {0, 2},
	'u':  {0, 4},
	'U':  {0, 8},
}

// escape reads a single escape sequence following backslash.
// \xNN is a byte if binary is true and a rune otherwise.
func escape(text string, binary bool) (r rune, isByte bool, rest string, valid bool) {
	if text == "" {
		return 0, false, "", false
	}

	entry, valid := escapeCharMap[text[0]]
	if !valid {
		return 0, false, "", false
	}
	if entry.hexLen == 0 {
		return rune(entry.substitute), true, text[1:], true
	}

	hexLen := int(entry.hexLen)
	if len(text) < hexLen+1 {
		return 0, false, "", false
	}

	codePoint, e := strconv.ParseUint(text[1:hexLen+1], 16, 32)
	if e != nil {
		return 0, false, "", false
	}

	isByte = (binary && text[0] == 'x')
	if !isByte && !utf8.ValidRune(rune(codePoint)) {
		return 0, false, "", false
	}
	return rune(codePoint), isByte, text[hexLen+1:], true
}

func unescape(text string, binary bool) (string, bool) {
	if strings.IndexByte(text, '\\') < 0 {
		return text, true
	}

	result := make([]byte, 0, len(text))
	for {
		slashPos := strings.IndexByte(text, '\\')
		if slashPos < 0 {
			result = append(result, text...)
			return string(result), true
		}

		result = append(result, text[:slashPos]...)
		r, isByte, rest, valid := escape(text[slashPos+1:], binary)
		if !valid {
			return "", false
		}

		if isByte {
			result = append(result, byte(r))
		} else {
			result = utf8.AppendRune(result, r)
		}
		text = rest
	}
}

func rangeChar(text string) (r rune, rest string, valid bool) {
	if text == "" {
		return 0, "", false
	}

	if text[0] != '\\' {
		r, size := utf8.DecodeRuneInString(text)
		return r, text[size:], r != utf8.RuneError || size > 1
	}

	if len(text) > 1 && (text[1] == '-' || text[1] == ']' || text[1] == '\\') {
		return rune(text[1]), text[2:], true
	}

	r, _, rest, valid = escape(text[1:], false)
	return r, rest, valid
}
