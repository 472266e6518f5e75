package main

import (
	"bytes"
	"encoding/json"
	"go/format"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/ava12/mpg/config"
	"github.com/ava12/mpg/grammar"
	"github.com/ava12/mpg/internal/test"
)

const digitsGrammar = `Number = Digit Numeral / f;
Numeral = Digit Numeral / ();
Digit = [0-9];
`

const riffGrammar = `Riff = b"RIFF" Size / f;
Size = ?4 Wave / f;
Wave = b"WAVE";
`

func init() {
	color.NoColor = true
}

type testEnv struct {
	dir  string
	ctx  *Context
	out  *bytes.Buffer
	hook *logtest.Hook
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	log, hook := logtest.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	out := &bytes.Buffer{}
	return &testEnv{
		dir:  t.TempDir(),
		ctx:  &Context{Config: config.Default(), Log: log, Out: out},
		out:  out,
		hook: hook,
	}
}

func (env *testEnv) write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(env.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o666))
	return path
}

func TestParseText(t *testing.T) {
	env := newEnv(t)
	cmd := ParseCmd{Grammar: env.write(t, "digits.mpg", digitsGrammar), Text: "10", Jobs: 1}
	require.NoError(t, cmd.Run(env.ctx))
	require.Equal(t, `text:
  Number 0+2
    Digit 0+1
      [0-9] 0+1 "1"
      () 1+0
    Numeral 1+1
      Digit 1+1
        [0-9] 1+1 "0"
        () 2+0
      Numeral 2+0
        () 2+0
`, env.out.String())
}

func TestParseSelectJSON(t *testing.T) {
	env := newEnv(t)
	cmd := ParseCmd{
		Grammar: env.write(t, "digits.mpg", digitsGrammar),
		Text:    "10",
		JSON:    true,
		Select:  []string{"Digit"},
		Jobs:    1,
	}
	require.NoError(t, cmd.Run(env.ctx))

	var results []result
	require.NoError(t, json.Unmarshal(env.out.Bytes(), &results))
	require.Len(t, results, 1)
	require.Equal(t, 2, results[0].Pos)
	trees := results[0].Trees
	require.Len(t, trees, 2)
	require.Equal(t, "Digit", trees[0].Name)
	require.Equal(t, varNode, trees[0].Type)
	require.Equal(t, "1", trees[0].Children[0].Text)
	require.Equal(t, termNode, trees[0].Children[0].Type)
	require.Equal(t, metaNode, trees[0].Children[1].Type)
	require.Equal(t, "0", trees[1].Children[0].Text)
	require.Equal(t, 1, trees[1].Start)
}

func TestParseFailure(t *testing.T) {
	env := newEnv(t)
	cmd := ParseCmd{Grammar: env.write(t, "digits.mpg", digitsGrammar), Text: "x", Jobs: 1}
	e := cmd.Run(env.ctx)
	test.ExpectErrorCode(t, ErrParseFailed, e)
	require.Equal(t, "1 of 1 inputs failed", e.Error())
	require.Equal(t, "text:\n  cannot match [0-9] in text at line 1 col 1\n", env.out.String())
}

func TestParseModes(t *testing.T) {
	env := newEnv(t)
	g := env.write(t, "digits.mpg", digitsGrammar)

	cmd := ParseCmd{Grammar: g, Text: "10x", JSON: true, Jobs: 1}
	require.NoError(t, cmd.Run(env.ctx))

	env.out.Reset()
	cmd.Full = true
	e := cmd.Run(env.ctx)
	test.ExpectErrorCode(t, ErrParseFailed, e)

	var results []result
	require.NoError(t, json.Unmarshal(env.out.Bytes(), &results))
	require.Contains(t, results[0].Error, "unconsumed input")
	require.Equal(t, 2, results[0].Pos)
}

func TestParseFiles(t *testing.T) {
	env := newEnv(t)
	cmd := ParseCmd{
		Grammar: env.write(t, "digits.mpg", digitsGrammar),
		JSON:    true,
		Jobs:    2,
		Files: []string{
			env.write(t, "a.txt", "1"),
			env.write(t, "b.txt", "x"),
			env.write(t, "c.txt", "123"),
		},
	}
	e := cmd.Run(env.ctx)
	require.Equal(t, "1 of 3 inputs failed", e.Error())

	var results []result
	require.NoError(t, json.Unmarshal(env.out.Bytes(), &results))
	require.Len(t, results, 3)
	for i, name := range cmd.Files {
		require.Equal(t, name, results[i].Input)
	}
	require.Equal(t, 1, results[0].Pos)
	require.NotEmpty(t, results[1].Error)
	require.Equal(t, 3, results[2].Trees[0].Len)

	parsing := 0
	for _, entry := range env.hook.AllEntries() {
		if entry.Message == "parsing" {
			parsing++
		}
	}
	require.Equal(t, 3, parsing)
}

func TestParseBinary(t *testing.T) {
	env := newEnv(t)
	data := "RIFF\x04\x00\x00\x00WAVE"
	cmd := ParseCmd{
		Grammar: env.write(t, "riff.mpg", riffGrammar),
		Binary:  true,
		JSON:    true,
		Full:    true,
		Jobs:    1,
		Files:   []string{env.write(t, "a.wav", data)},
	}
	require.NoError(t, cmd.Run(env.ctx))

	var results []result
	require.NoError(t, json.Unmarshal(env.out.Bytes(), &results))
	root := results[0].Trees[0]
	require.Equal(t, "Riff", root.Name)
	require.Equal(t, 12, root.Len)
	require.Equal(t, "52494646", root.Children[0].Text)
	require.Equal(t, "04000000", root.Children[1].Children[0].Text)
}

func TestParseRunes(t *testing.T) {
	env := newEnv(t)
	g := env.write(t, "word.mpg", "Word = [а-я] Word / [а-я];\n")
	cmd := ParseCmd{Grammar: g, Text: "жук", JSON: true, Runes: true, Jobs: 1}
	require.NoError(t, cmd.Run(env.ctx))

	var results []result
	require.NoError(t, json.Unmarshal(env.out.Bytes(), &results))
	require.Equal(t, 3, results[0].Trees[0].Len)
	require.Equal(t, 6, results[0].Pos)

	cmd.Binary = true
	test.ExpectErrorCode(t, config.ErrInvalidValue, cmd.Run(env.ctx))
}

func TestParseSettings(t *testing.T) {
	env := newEnv(t)
	cmd := ParseCmd{Text: "1"}
	test.ExpectErrorCode(t, ErrNoGrammar, cmd.Run(env.ctx))

	cmd = ParseCmd{Grammar: env.write(t, "digits.mpg", digitsGrammar)}
	test.ExpectErrorCode(t, ErrNoInput, cmd.Run(env.ctx))

	cmd.Files = []string{filepath.Join(env.dir, "missing.txt")}
	test.ExpectErrorCode(t, ErrReadFile, cmd.Run(env.ctx))
}

func TestCheck(t *testing.T) {
	env := newEnv(t)
	g := env.write(t, "g.mpg", "A = 'a';\nB = A B / ();\n")

	cmd := CheckCmd{Grammar: g}
	require.NoError(t, cmd.Run(env.ctx))
	require.Equal(t, "unused rules: B\nOK "+g+": 2 rules, start A\n", env.out.String())
	require.Equal(t, logrus.WarnLevel, env.hook.LastEntry().Level)

	env.out.Reset()
	cmd.Start = "B"
	require.NoError(t, cmd.Run(env.ctx))
	require.Equal(t, "OK "+g+": 2 rules, start B\n", env.out.String())

	cmd.Start = "C"
	test.ExpectErrorCode(t, grammar.ErrUndefinedVariables, cmd.Run(env.ctx))

	cmd = CheckCmd{Grammar: env.write(t, "bad.mpg", "A = A 'a' / 'a';\n")}
	test.ExpectErrorCode(t, grammar.ErrLeftRecursion, cmd.Run(env.ctx))
}

func TestGenText(t *testing.T) {
	env := newEnv(t)
	cmd := GenCmd{Grammar: env.write(t, "digits.mpg", digitsGrammar), Output: "-", Package: "digits"}
	require.NoError(t, cmd.Run(env.ctx))

	src := env.out.String()
	_, e := format.Source(env.out.Bytes())
	require.NoError(t, e)
	require.Contains(t, src, "// Code generated with mpg gen. DO NOT EDIT.\n\npackage digits\n")
	require.Contains(t, src, "\"github.com/ava12/mpg/strterm\"")
	require.Contains(t, src, "const NumberStart = \"Number\"")
	require.Contains(t, src, "var Number = func() *grammar.Rules[strterm.Terminal, string] {")
	require.Contains(t, src, `grammar.NewRule("Numeral", s.V("Digit"), s.V("Numeral"), s.Epsilon()),`)
	require.Contains(t, src, `grammar.NewRule("Digit", s.T(strterm.Range('0', '9')), s.Epsilon(), s.Failure()),`)
}

func TestGenBinary(t *testing.T) {
	env := newEnv(t)
	require.NoError(t, os.Mkdir(filepath.Join(env.dir, "wav"), 0o777))
	g := env.write(t, "wav/riff.mpg", riffGrammar)
	cmd := GenCmd{Grammar: g, Binary: true, Var: "RiffRules"}
	require.NoError(t, cmd.Run(env.ctx))

	src, e := os.ReadFile(filepath.Join(env.dir, "wav", "riff.go"))
	require.NoError(t, e)
	_, e = format.Source(src)
	require.NoError(t, e)
	require.Contains(t, string(src), "package wav\n")
	require.Contains(t, string(src), "const RiffRulesStart = \"Riff\"")
	require.Contains(t, string(src), `grammar.NewRule("Riff", s.T(byteterm.Str("RIFF")), s.V("Size"), s.Failure()),`)
	require.Contains(t, string(src), `grammar.NewRule("Size", s.Any(4), s.V("Wave"), s.Failure()),`)
}

func TestGenNames(t *testing.T) {
	env := newEnv(t)
	g := env.write(t, "digits.mpg", digitsGrammar)

	cmd := GenCmd{Grammar: g, Output: "-", Package: "my-pkg"}
	test.ExpectErrorCode(t, ErrInvalidName, cmd.Run(env.ctx))

	cmd = GenCmd{Grammar: g, Output: "-", Package: "digits", Var: "1x"}
	test.ExpectErrorCode(t, ErrInvalidName, cmd.Run(env.ctx))
}

func TestNewContext(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mpg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("grammar: g.mpg\nlog_level: warn\n"), 0o666))

	var out, logOut bytes.Buffer
	ctx, e := newContext(path, false, false, &out, &logOut)
	require.NoError(t, e)
	require.Equal(t, "g.mpg", ctx.Config.Grammar)
	require.Equal(t, logrus.WarnLevel, ctx.Log.GetLevel())

	ctx, e = newContext(path, true, false, &out, &logOut)
	require.NoError(t, e)
	require.Equal(t, logrus.DebugLevel, ctx.Log.GetLevel())

	ctx, e = newContext(filepath.Join(dir, "none.yaml"), false, true, &out, &logOut)
	require.NoError(t, e)
	require.Equal(t, logrus.TraceLevel, ctx.Log.GetLevel())
	require.Equal(t, config.AlphabetText, ctx.Config.Alphabet)
}

func TestSplitSamples(t *testing.T) {
	content := "--- first\n10\n\n--- bad\nx\n---\n---\n7\n"
	samples := splitSamples("f", []byte(content))
	require.Equal(t, []input{
		{"f, sample #1 (lines 2-3)", []byte("10\n")},
		{"f, sample #2 (lines 5-5)", []byte("x")},
		{"f, sample #3 (lines 7-6)", nil},
		{"f, sample #4 (lines 8-8)", []byte("7")},
	}, samples)
	require.Empty(t, splitSamples("f", nil))
}

func TestParseSamples(t *testing.T) {
	env := newEnv(t)
	g := env.write(t, "digits.mpg", digitsGrammar)
	cmd := ParseCmd{
		Grammar: g,
		Samples: true,
		JSON:    true,
		Jobs:    2,
		Files:   []string{env.write(t, "good.txt", "---\n10\n--- bad\nx\n---\n7\n")},
	}
	e := cmd.Run(env.ctx)
	require.Equal(t, "1 of 3 inputs failed", e.Error())

	var results []result
	require.NoError(t, json.Unmarshal(env.out.Bytes(), &results))
	require.Len(t, results, 3)
	require.Equal(t, cmd.Files[0]+", sample #2 (lines 4-4)", results[1].Input)
	require.Contains(t, results[1].Error, "line 1 col 1")

	env.out.Reset()
	cmd.Failing = true
	cmd.Files = []string{env.write(t, "bad.txt", "---\nx\n---\ny\n")}
	require.NoError(t, cmd.Run(env.ctx))

	cmd.Files = []string{env.write(t, "mixed.txt", "---\nx\n---\n1\n")}
	e = cmd.Run(env.ctx)
	require.Equal(t, "1 of 2 inputs parsed with no error", e.Error())
}

func TestParseFlat(t *testing.T) {
	env := newEnv(t)
	cmd := ParseCmd{Grammar: env.write(t, "word.mpg", "Word = [a-z] [a-z] [a-z];\n"), Text: "abc", JSON: true, Jobs: 1}
	require.NoError(t, cmd.Run(env.ctx))

	var results []result
	require.NoError(t, json.Unmarshal(env.out.Bytes(), &results))
	require.Len(t, results[0].Trees[0].Children, 2)
	require.Equal(t, "Word.1", results[0].Trees[0].Children[1].Name)

	env.out.Reset()
	cmd.Flat = true
	require.NoError(t, cmd.Run(env.ctx))
	results = nil
	require.NoError(t, json.Unmarshal(env.out.Bytes(), &results))
	children := results[0].Trees[0].Children
	require.Len(t, children, 3)
	for i, c := range children {
		require.Equal(t, termNode, c.Type)
		require.Equal(t, string(rune('a'+i)), c.Text)
	}
}
