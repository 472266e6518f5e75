package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/ava12/mpg/config"
	"github.com/ava12/mpg/grammar"
	"github.com/ava12/mpg/langdef"
)

type CheckCmd struct {
	Grammar string `arg:"" optional:"" type:"path" help:"Grammar description file, overrides configuration."`
	Start   string `short:"s" help:"Start variable, default is the first rule of the grammar."`
	Binary  bool   `help:"Treat grammar as binary."`
}

var (
	warnColor = color.New(color.FgYellow)
	okColor   = color.New(color.FgGreen)
)

func (cmd *CheckCmd) Run(ctx *Context) error {
	c, e := ctx.settings(cmd.Grammar, cmd.Start, cmd.Binary)
	if e != nil {
		return e
	}

	if c.Alphabet == config.AlphabetBinary {
		g, e := loadGrammar(c.Grammar, langdef.ParseBinary)
		if e != nil {
			return e
		}
		return checkRules(ctx, c.Grammar, g.Rules, startVar(c, g))
	}

	g, e := loadGrammar(c.Grammar, langdef.ParseText)
	if e != nil {
		return e
	}
	return checkRules(ctx, c.Grammar, g.Rules, startVar(c, g))
}

func checkRules[T any](ctx *Context, name string, rules *grammar.Rules[T, string], start string) error {
	e := rules.Check(start)
	if e != nil {
		return e
	}

	unused := rules.Unused(start)
	if len(unused) > 0 {
		warnColor.Fprintf(ctx.Out, "unused rules: %s\n", strings.Join(unused, ", "))
		ctx.Log.WithField("grammar", name).WithField("count", len(unused)).Warn("unused rules")
	}

	okColor.Fprint(ctx.Out, "OK")
	fmt.Fprintf(ctx.Out, " %s: %d rules, start %s\n", name, rules.Len(), start)
	return nil
}
