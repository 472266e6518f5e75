/*
mpg is a console utility working with grammar descriptions parsable by langdef.
Usage is

	mpg [--config <file>] [-v] [--trace] <command> ...

Commands:

	parse   parses input files (or --text) and prints syntax trees
	check   checks grammar description and reports unused rules
	gen     translates grammar description to Go source

Configuration file (mpg.yaml by default) may define grammar, alphabet, start variable, mode,
validation, metric, and log level, command line flags take precedence.
*/
package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/ava12/mpg/config"
)

// Context is shared by all commands.
type Context struct {
	Config *config.Config
	Log    *logrus.Logger
	Out    io.Writer
}

var CLI struct {
	Config  string   `help:"Configuration file path" default:"mpg.yaml"`
	Verbose bool     `short:"v" help:"Log debug messages"`
	Trace   bool     `help:"Log every variable expansion"`
	Parse   ParseCmd `cmd:"" help:"Parse inputs and print syntax trees"`
	Check   CheckCmd `cmd:"" help:"Check grammar description"`
	Gen     GenCmd   `cmd:"" help:"Translate grammar description to Go source"`
}

func newContext(configPath string, verbose, trace bool, out, logOut io.Writer) (*Context, error) {
	c, e := config.Load(configPath)
	if e != nil {
		return nil, e
	}

	log := logrus.New()
	log.SetOutput(logOut)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log.SetLevel(c.Level())
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	if trace {
		log.SetLevel(logrus.TraceLevel)
	}

	return &Context{Config: c, Log: log, Out: out}, nil
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("mpg"),
		kong.Description("Ordered choice parser for grammars in binary normal form."),
		kong.UsageOnError(),
	)

	ctx, e := newContext(CLI.Config, CLI.Verbose, CLI.Trace, color.Output, os.Stderr)
	if e == nil {
		e = kctx.Run(ctx)
	}
	if e != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", e)
		os.Exit(1)
	}
}
