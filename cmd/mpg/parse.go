package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/exp/constraints"
	"golang.org/x/sync/errgroup"

	"github.com/ava12/mpg"
	"github.com/ava12/mpg/byteterm"
	"github.com/ava12/mpg/config"
	"github.com/ava12/mpg/langdef"
	"github.com/ava12/mpg/parser"
	"github.com/ava12/mpg/source"
	"github.com/ava12/mpg/span"
	"github.com/ava12/mpg/strterm"
	"github.com/ava12/mpg/tree"
)

type ParseCmd struct {
	Grammar  string   `short:"g" type:"path" help:"Grammar description file, overrides configuration."`
	Start    string   `short:"s" help:"Start variable, default is the first rule of the grammar."`
	Binary   bool     `help:"Treat grammar and inputs as binary."`
	Full     bool     `help:"Fail unless the whole input is consumed."`
	Validate bool     `help:"Check grammar before each parse."`
	Runes    bool     `help:"Measure text lengths in runes."`
	JSON     bool     `name:"json" help:"Print trees as JSON."`
	Select   []string `help:"Print only subtrees of these variables."`
	Flat     bool     `help:"Hide intermediate variables created for long rules."`
	Text     string   `short:"t" help:"Parse this text instead of files."`
	Samples  bool     `short:"m" help:"Each input contains multiple samples, the first line is the separator."`
	Failing  bool     `short:"e" help:"Inputs must fail to parse."`
	Jobs     int      `short:"j" default:"4" help:"Number of inputs parsed concurrently."`
	Files    []string `arg:"" optional:"" type:"path" help:"Input files."`
}

type input struct {
	name string
	data []byte
}

// printNode is the printable form of a syntax tree node.
type printNode struct {
	Type     string       `json:"type"`
	Name     string       `json:"name"`
	Start    int          `json:"start"`
	Len      int          `json:"len"`
	Second   bool         `json:"second,omitempty"`
	Text     string       `json:"text,omitempty"`
	Children []*printNode `json:"children,omitempty"`
}

const (
	varNode  = "var"
	termNode = "term"
	metaNode = "meta"
)

type result struct {
	Input string       `json:"input"`
	Pos   int          `json:"pos"`
	Trees []*printNode `json:"trees,omitempty"`
	Error string       `json:"error,omitempty"`
}

type parseFunc func(in input) result

func (cmd *ParseCmd) Run(ctx *Context) error {
	c, e := ctx.settings(cmd.Grammar, cmd.Start, cmd.Binary)
	if e != nil {
		return e
	}
	if cmd.Full {
		c.Mode = config.ModeFull
	}
	if cmd.Validate {
		c.CheckGrammar = true
	}
	if cmd.Runes {
		c.Metric = config.MetricRunes
		if e = c.Validate(); e != nil {
			return e
		}
	}

	inputs, e := cmd.inputs()
	if e != nil {
		return e
	}

	opts := parser.Options{
		Mode:     c.ParserMode(),
		Validate: c.CheckGrammar,
		Logger:   ctx.Log.WithField("grammar", c.Grammar),
	}
	var parse parseFunc
	if c.Alphabet == config.AlphabetBinary {
		parse, e = cmd.binaryParser(c, opts)
	} else {
		parse, e = cmd.textParser(c, opts)
	}
	if e != nil {
		return e
	}

	results := make([]result, len(inputs))
	var g errgroup.Group
	g.SetLimit(max(cmd.Jobs, 1))
	for i, in := range inputs {
		g.Go(func() error {
			ctx.Log.WithField("input", in.name).Debug("parsing")
			results[i] = parse(in)
			return nil
		})
	}
	g.Wait()

	failed := 0
	for _, r := range results {
		if (r.Error != "") != cmd.Failing {
			failed++
		}
	}

	if cmd.JSON {
		e = printJSON(ctx.Out, results)
	} else {
		printResults(ctx.Out, results)
	}
	switch {
	case e != nil || failed == 0:
	case cmd.Failing:
		e = mpg.FormatError(ErrParseFailed, "%d of %d inputs parsed with no error", failed, len(results))
	default:
		e = mpg.FormatError(ErrParseFailed, "%d of %d inputs failed", failed, len(results))
	}
	return e
}

func (cmd *ParseCmd) inputs() ([]input, error) {
	var res []input
	switch {
	case cmd.Text != "":
		res = []input{{"text", []byte(cmd.Text)}}
	case len(cmd.Files) == 0:
		return nil, mpg.NewError(ErrNoInput, "no input files", "", 0, 0)
	default:
		for _, name := range cmd.Files {
			data, e := os.ReadFile(name)
			if e != nil {
				return nil, mpg.FormatError(ErrReadFile, "cannot read %s: %s", name, e)
			}
			res = append(res, input{name, data})
		}
	}

	if !cmd.Samples {
		return res, nil
	}

	var samples []input
	for _, in := range res {
		samples = append(samples, splitSamples(in.name, in.data)...)
	}
	if len(samples) == 0 {
		return nil, mpg.NewError(ErrNoInput, "no samples found", "", 0, 0)
	}
	return samples, nil
}

func (cmd *ParseCmd) textParser(c *config.Config, opts parser.Options) (parseFunc, error) {
	g, e := loadGrammar(c.Grammar, langdef.ParseText)
	if e != nil {
		return nil, e
	}

	start := startVar(c, g)
	p := strterm.NewParser(g.Rules, opts)
	whole := strterm.Whole
	if c.Metric == config.MetricRunes {
		p = strterm.NewRuneParser(g.Rules, opts)
		whole = strterm.WholeRunes
	}

	return func(in input) result {
		text := string(in.data)
		lp := p.WithLocator(source.New(in.name, in.data).Locate)
		n, pos, e := lp.Parse(text, start, whole(text))
		return makeResult(cmd.Select, in.name, e, pos, n, func(n *tree.Node[strterm.Terminal, string, int, int]) *printNode {
			return convert(lp.Metric(), text, n, cmd.Flat, func(lo, hi int) string {
				return text[lo:hi]
			})
		})
	}, nil
}

func (cmd *ParseCmd) binaryParser(c *config.Config, opts parser.Options) (parseFunc, error) {
	g, e := loadGrammar(c.Grammar, langdef.ParseBinary)
	if e != nil {
		return nil, e
	}

	start := startVar(c, g)
	p := byteterm.NewParser[string, int, int](g.Rules, opts)

	return func(in input) result {
		n, pos, e := p.Parse(in.data, start, byteterm.Whole[int, int](in.data))
		return makeResult(cmd.Select, in.name, e, pos, n, func(n *tree.Node[byteterm.Terminal, string, int, int]) *printNode {
			return convert(p.Metric(), in.data, n, cmd.Flat, func(lo, hi int) string {
				return hex.EncodeToString(in.data[lo:hi])
			})
		})
	}, nil
}

func makeResult[T any](sel []string, name string, e error, pos int, n *tree.Node[T, string, int, int], conv func(*tree.Node[T, string, int, int]) *printNode) result {
	res := result{Input: name, Pos: pos}
	if e != nil {
		res.Error = e.Error()
		return res
	}

	nodes := []*tree.Node[T, string, int, int]{n}
	if len(sel) > 0 {
		nodes = tree.Find(n, tree.IsVar[T, string, int, int](sel...), false)
	}
	for _, n := range nodes {
		res.Trees = append(res.Trees, conv(n))
	}
	return res
}

// convert returns printable tree. If flat is set, intermediate variables are replaced with their children.
func convert[I, T any, P, L constraints.Integer](m span.Metric[I, P, L], input I, n *tree.Node[T, string, P, L], flat bool, text func(lo, hi int) string) *printNode {
	pn := &printNode{Name: n.TypeName(), Start: int(n.Span.Start), Len: int(n.Span.Len)}
	switch {
	case !n.IsLeaf():
		pn.Type = varNode
		pn.Second = !n.Choice.IsFirst()
		for _, c := range n.Children() {
			cn := convert(m, input, c, flat, text)
			if flat && cn.Type == varNode && langdef.IsFresh(cn.Name) {
				pn.Children = append(pn.Children, cn.Children...)
			} else {
				pn.Children = append(pn.Children, cn)
			}
		}
		return pn
	case n.Term.IsMeta():
		pn.Type = metaNode
	default:
		pn.Type = termNode
	}

	if n.Span.Len > 0 {
		pn.Text = text(int(n.Span.Start), int(span.Hi(m, input, n.Span)))
	}
	return pn
}

func printJSON(w io.Writer, results []result) error {
	data, e := json.MarshalIndent(results, "", "  ")
	if e == nil {
		data = append(data, '\n')
		_, e = w.Write(data)
	}
	return e
}

var (
	inputColor = color.New(color.Bold)
	varColor   = color.New(color.FgCyan)
	termColor  = color.New(color.FgGreen)
	metaColor  = color.New(color.Faint)
	errorColor = color.New(color.FgRed)
)

func printResults(w io.Writer, results []result) {
	for _, r := range results {
		inputColor.Fprintf(w, "%s:\n", r.Input)
		if r.Error != "" {
			errorColor.Fprintf(w, "  %s\n", r.Error)
			continue
		}

		for _, n := range r.Trees {
			printNodes(w, n, 1)
		}
	}
}

func printNodes(w io.Writer, n *printNode, depth int) {
	var sb strings.Builder
	sb.WriteString(strings.Repeat("  ", depth))
	switch n.Type {
	case varNode:
		sb.WriteString(varColor.Sprint(n.Name))
	case termNode:
		sb.WriteString(termColor.Sprint(n.Name))
	default:
		sb.WriteString(metaColor.Sprint(n.Name))
	}
	sb.WriteString(fmt.Sprintf(" %d+%d", n.Start, n.Len))
	if n.Text != "" {
		sb.WriteString(" " + strconv.Quote(n.Text))
	}
	fmt.Fprintln(w, sb.String())

	for _, c := range n.Children {
		printNodes(w, c, depth+1)
	}
}
