package main

import (
	"os"

	"github.com/ava12/mpg"
	"github.com/ava12/mpg/config"
	"github.com/ava12/mpg/langdef"
	"github.com/ava12/mpg/source"
)

// Error codes used by mpg command:
const (
	ErrNoGrammar = mpg.CommandErrors + iota
	ErrNoInput
	ErrReadFile
	ErrParseFailed
	ErrInvalidName
)

// settings returns a copy of configuration with command line overrides applied.
func (ctx *Context) settings(grammarPath, start string, binary bool) (*config.Config, error) {
	c := *ctx.Config
	if grammarPath != "" {
		c.Grammar = grammarPath
	}
	if start != "" {
		c.Start = start
	}
	if binary {
		c.Alphabet = config.AlphabetBinary
	}
	if c.Alphabet == config.AlphabetBinary {
		c.Metric = config.MetricBytes
	}
	if c.Grammar == "" {
		return nil, mpg.FormatError(ErrNoGrammar, "grammar file is not specified")
	}

	return &c, c.Validate()
}

func readSource(path string) (*source.Source, error) {
	data, e := os.ReadFile(path)
	if e != nil {
		return nil, mpg.FormatError(ErrReadFile, "cannot read %s: %s", path, e)
	}
	return source.New(path, data), nil
}

func loadGrammar[T any](path string, parse func(*source.Source) (*langdef.Grammar[T], error)) (*langdef.Grammar[T], error) {
	src, e := readSource(path)
	if e != nil {
		return nil, e
	}
	return parse(src)
}

func startVar[T any](c *config.Config, g *langdef.Grammar[T]) string {
	if c.Start != "" {
		return c.Start
	}
	return g.Start
}
