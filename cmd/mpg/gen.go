package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/ava12/mpg"
	"github.com/ava12/mpg/byteterm"
	"github.com/ava12/mpg/grammar"
	"github.com/ava12/mpg/langdef"
	"github.com/ava12/mpg/source"
	"github.com/ava12/mpg/strterm"
)

type GenCmd struct {
	Grammar string `arg:"" type:"existingfile" help:"Grammar description file."`
	Binary  bool   `help:"Treat grammar as binary."`
	Output  string `short:"o" help:"Output file name, default is the grammar file name with .go suffix, - for standard output."`
	Package string `short:"p" help:"Go package name, default is the directory name of output file."`
	Var     string `name:"var" help:"Go variable name, default is the start variable."`
}

// generator holds terminal specific parts of generated source.
type generator[T any] struct {
	pkg      string
	termType string
	term     func(T) string
}

var textGenerator = generator[strterm.Terminal]{
	pkg:      "strterm",
	termType: "strterm.Terminal",
	term: func(t strterm.Terminal) string {
		switch t.Kind {
		case strterm.FoldKind:
			return fmt.Sprintf("strterm.Fold(%q)", t.Text)
		case strterm.RangeKind:
			return fmt.Sprintf("strterm.Range(%q, %q)", t.Lo, t.Hi)
		default:
			return fmt.Sprintf("strterm.Str(%q)", t.Text)
		}
	},
}

var binaryGenerator = generator[byteterm.Terminal]{
	pkg:      "byteterm",
	termType: "byteterm.Terminal",
	term: func(t byteterm.Terminal) string {
		if t.Kind == byteterm.RangeKind {
			return fmt.Sprintf("byteterm.Range(0x%02x, 0x%02x)", t.Lo, t.Hi)
		}
		return fmt.Sprintf("byteterm.Str(%q)", t.Data)
	},
}

var identRe = regexp.MustCompile("^[A-Za-z_][A-Za-z_0-9]*$")

func (cmd *GenCmd) Run(ctx *Context) error {
	outName := cmd.Output
	if outName == "" {
		ext := filepath.Ext(cmd.Grammar)
		outName = cmd.Grammar[:len(cmd.Grammar)-len(ext)] + ".go"
	}

	pkgName := cmd.Package
	if pkgName == "" {
		dirOf := outName
		if outName == "-" {
			dirOf = cmd.Grammar
		}
		dir, e := filepath.Abs(dirOf)
		if e != nil {
			return e
		}
		pkgName = filepath.Base(filepath.Dir(dir))
	}

	var content []byte
	var e error
	if cmd.Binary {
		content, e = makeGo(cmd.Grammar, langdef.ParseBinary, binaryGenerator, pkgName, cmd.Var)
	} else {
		content, e = makeGo(cmd.Grammar, langdef.ParseText, textGenerator, pkgName, cmd.Var)
	}
	if e != nil {
		return e
	}

	if outName == "-" {
		_, e = ctx.Out.Write(content)
		return e
	}

	ctx.Log.WithField("output", outName).Info("writing Go source")
	return os.WriteFile(outName, content, 0o666)
}

func makeGo[T any](path string, parse func(*source.Source) (*langdef.Grammar[T], error), gen generator[T], pkgName, varName string) ([]byte, error) {
	g, e := loadGrammar(path, parse)
	if e != nil {
		return nil, e
	}

	if varName == "" {
		varName = g.Start
	}
	if !identRe.MatchString(pkgName) {
		return nil, mpg.FormatError(ErrInvalidName, "invalid package name: %s", pkgName)
	}
	if !identRe.MatchString(varName) {
		return nil, mpg.FormatError(ErrInvalidName, "invalid variable name: %s", varName)
	}

	var buffer bytes.Buffer
	buffer.WriteString("// Code generated with mpg gen. DO NOT EDIT.\n\n" +
		"package " + pkgName + "\n\n" +
		"import (\n")
	imports := []string{"grammar", gen.pkg}
	sort.Strings(imports)
	for _, name := range imports {
		buffer.WriteString("\t\"github.com/ava12/mpg/" + name + "\"\n")
	}
	buffer.WriteString(")\n\n")

	buffer.WriteString(fmt.Sprintf("// %sStart is the start variable of %s.\n", varName, varName))
	buffer.WriteString(fmt.Sprintf("const %sStart = %q\n\n", varName, g.Start))

	buffer.WriteString(fmt.Sprintf("var %s = func() *grammar.Rules[%s, string] {\n", varName, gen.termType))
	buffer.WriteString(fmt.Sprintf("\tvar s grammar.Symbols[%s, string]\n", gen.termType))
	buffer.WriteString("\treturn grammar.New(\n")
	for _, r := range g.Rules.Rules() {
		rr := r.Right
		buffer.WriteString(fmt.Sprintf("\t\tgrammar.NewRule(%q, %s, %s, %s),\n",
			r.Var, gen.symbol(rr.Left), gen.symbol(rr.Right), gen.symbol(rr.Alt)))
	}
	buffer.WriteString("\t)\n}()\n")

	return buffer.Bytes(), nil
}

func (gen generator[T]) symbol(s grammar.Symbol[T, string]) string {
	switch s.Kind() {
	case grammar.VariableKind:
		return fmt.Sprintf("s.V(%q)", s.Var)
	case grammar.TerminalKind:
		return "s.T(" + gen.term(s.Term.Original) + ")"
	case grammar.AnyKind:
		return fmt.Sprintf("s.Any(%d)", s.Term.N)
	case grammar.AllKind:
		return "s.All()"
	case grammar.OmitKind:
		return "s.Omit()"
	case grammar.EpsilonKind:
		return "s.Epsilon()"
	default:
		return "s.Failure()"
	}
}
