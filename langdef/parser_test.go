package langdef

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava12/mpg/byteterm"
	"github.com/ava12/mpg/grammar"
	"github.com/ava12/mpg/internal/test"
	"github.com/ava12/mpg/lexer"
	"github.com/ava12/mpg/parser"
	"github.com/ava12/mpg/strterm"
)

func checkErrorCode(t *testing.T, samples []string, code int) {
	t.Helper()
	for index, src := range samples {
		_, e := ParseTextString("string", src)
		if code == 0 {
			require.NoError(t, e, "input #%d", index)
			continue
		}

		require.Error(t, e, "input #%d: error expected, got success", index)
		test.ExpectErrorCode(t, code, e)
	}
}

func checkBinaryErrorCode(t *testing.T, samples []string, code int) {
	t.Helper()
	for index, src := range samples {
		_, e := ParseBinaryString("string", src)
		require.Error(t, e, "input #%d: error expected, got success", index)
		test.ExpectErrorCode(t, code, e)
	}
}

func TestParseText(t *testing.T) {
	src := `# digits
Number = Digit Numeral / f;
Numeral = Digit Numeral / ();
Digit = [0-9];
Word = i"select" 'x' "\t" / ?2 * _ Number;
`
	g, e := ParseTextString("digits", src)
	require.NoError(t, e)
	require.Equal(t, "Number", g.Start)
	require.Equal(t, `Number = Digit Numeral / f;
Numeral = Digit Numeral / ();
Digit = [0-9] () / f;
Word = i"select" Word.1 / Word.2;
Word.1 = "x" "\t" / f;
Word.2 = ?2 Word.3 / f;
Word.3 = * Word.4 / f;
Word.4 = _ Number / f;
`, g.Rules.String())

	n, end, e := strterm.NewParser(g.Rules, parser.Options{Mode: parser.FullParse}).Parse("10", g.Start, strterm.Whole("10"))
	require.NoError(t, e)
	require.Equal(t, 2, end)
	require.Equal(t, "Number@0+2", n.String())
}

func TestParseBinary(t *testing.T) {
	src := `
Riff = b"RIFF" FileSize / f;
FileSize = U32 Wave / f;
Wave = x"57 41 56 45";
U32 = ?4;
Tag = [\x00-\x1f] "\xff" / 'tag';
`
	g, e := ParseBinaryString("riff", src)
	require.NoError(t, e)
	require.Equal(t, "Riff", g.Start)
	require.Equal(t, `Riff = b"RIFF" FileSize / f;
FileSize = U32 Wave / f;
Wave = b"WAVE" () / f;
U32 = ?4 () / f;
Tag = [\x00-\x1f] x"ff" / b"tag";
`, g.Rules.String())

	input := []byte{0x52, 0x49, 0x46, 0x46, 0x04, 0x00, 0x00, 0x00, 0x57, 0x41, 0x56, 0x45}
	p := byteterm.NewParser[string, int, int](g.Rules, parser.Options{})
	n, end, e := p.Parse(input, g.Start, byteterm.Whole[int, int](input))
	require.NoError(t, e)
	require.Equal(t, 12, end)
	require.Equal(t, "Riff@0+12", n.String())
}

func TestLiterals(t *testing.T) {
	g, e := ParseTextString("", `S = "\x41Ж\"\\" 'a\b' [\--\]] [\n-\x20] [ж];`)
	require.NoError(t, e)
	r, _ := g.Rules.Get("S")
	require.Equal(t, strterm.Str("AЖ\"\\"), r.Right.Left.Term.Original)

	r, _ = g.Rules.Get("S.1")
	require.Equal(t, strterm.Str(`a\b`), r.Right.Left.Term.Original)
	r, _ = g.Rules.Get("S.2")
	require.Equal(t, strterm.Range('-', ']'), r.Right.Left.Term.Original)
	require.Equal(t, "S.3", r.Right.Right.Var)
	r, _ = g.Rules.Get("S.3")
	require.Equal(t, strterm.Range('\n', ' '), r.Right.Left.Term.Original)
	require.Equal(t, strterm.Range('ж', 'ж'), r.Right.Right.Term.Original)

	bg, e := ParseBinaryString("", `S = "\xffЖ" / x"";`)
	require.NoError(t, e)
	br, _ := bg.Rules.Get("S")
	require.Equal(t, byteterm.Bytes([]byte{0xff, 0xd0, 0x96}), br.Right.Left.Term.Original)
	require.Equal(t, byteterm.Str(""), br.Right.Alt.Term.Original)
}

func TestTerminalNotationRoundTrip(t *testing.T) {
	terms := []strterm.Terminal{
		strterm.Str("a\"b\\c\n\x01"),
		strterm.Fold("Ab"),
		strterm.Range('!', '-'),
		strterm.Range('\n', ' '),
		strterm.Range(']', 'я'),
	}
	for _, term := range terms {
		g, e := ParseTextString("", "S = "+term.String()+";")
		require.NoError(t, e, term.String())
		r, _ := g.Rules.Get("S")
		require.Equal(t, term, r.Right.Left.Term.Original, term.String())
	}
}

func TestUnexpectedEof(t *testing.T) {
	samples := []string{
		"",
		" ",
		"# comment\n",
		"A",
		"A = ",
		"A = 'a'",
		"A = 'a' /",
	}
	checkErrorCode(t, samples, ErrUnexpectedEof)
}

func TestUnexpectedToken(t *testing.T) {
	samples := []string{
		"= A;",
		"A 'a';",
		"A = 'a'; ;",
		"A = B = C;",
		"'a' = A;",
	}
	checkErrorCode(t, samples, ErrUnexpectedToken)
}

func TestLexicalErrors(t *testing.T) {
	checkErrorCode(t, []string{"A = 'a' & ;", "A = {a};"}, lexer.ErrWrongChar)
	checkErrorCode(t, []string{`A = "abc;`, "A = ?x;", "A = (a);"}, lexer.ErrBadToken)
}

func TestRuleDefined(t *testing.T) {
	checkErrorCode(t, []string{"A = 'a'; A = 'b';", "f = 'a';"}, ErrRuleDefined)

	_, e := ParseTextString("test.mpg", "A = 'a' B;\nB = 'b';\nA = 'c';")
	test.ExpectErrorCode(t, ErrRuleDefined, e)
	test.ExpectPos(t, 3, 1, e)
	require.Contains(t, e.Error(), "in test.mpg at line 3 col 1")
}

func TestWrongLiteral(t *testing.T) {
	checkErrorCode(t, []string{`A = b"a";`, `A = x"00";`, `A = "\q";`, `A = "\u12";`, `A = "\uD800";`}, ErrWrongLiteral)
	checkBinaryErrorCode(t, []string{`A = i"a";`, `A = x"0";`, `A = x"zz";`}, ErrWrongLiteral)
}

func TestWrongRange(t *testing.T) {
	checkErrorCode(t, []string{"A = [z-a];", "A = [ab];", "A = [a-];", `A = [\q];`}, ErrWrongRange)
	checkBinaryErrorCode(t, []string{"A = [а-я];"}, ErrWrongRange)
}

func TestWrongCount(t *testing.T) {
	checkErrorCode(t, []string{"A = ?99999999999999999999;"}, ErrWrongCount)
}

func TestGrammarErrors(t *testing.T) {
	checkErrorCode(t, []string{"A = B;", "A = 'a' / B C;"}, grammar.ErrUndefinedVariables)
	checkErrorCode(t, []string{"A = A 'a' / 'a';", "A = () B / 'a'; B = _ A;"}, grammar.ErrLeftRecursion)
	checkErrorCode(t, []string{"A = 'a'; B = A B / ();", "A = f;", "A = ;"}, 0)
}

func TestFresh(t *testing.T) {
	require.Equal(t, "Word.3", Fresh("Word", 3))
	require.True(t, IsFresh(Fresh("Word", 1)))
	require.False(t, IsFresh("Word"))
}
