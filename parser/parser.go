// Package parser defines the ordered-choice evaluator.
//
// A variable is expanded by its rule Var = Left Right / Alt: the sequence Left Right is tried first,
// if either symbol fails the partial result is discarded and Alt is tried at the same position.
// There is no longest-match or ambiguity resolution, the first alternative always wins.
package parser

import (
	"github.com/sirupsen/logrus"

	"github.com/ava12/mpg/grammar"
	"github.com/ava12/mpg/span"
	"github.com/ava12/mpg/symbol"
	"github.com/ava12/mpg/tree"
)

// Matcher matches original terminals of alphabet T against input of type I.
// Match returns the exact span of matched content starting at pos, or false.
// Match must not read past the end of whole and must not retain any state between calls.
type Matcher[I, T, P, L any] interface {
	Match(input I, t T, pos P, whole span.Span[P, L]) (span.Span[P, L], bool)
}

type MatcherFunc[I, T, P, L any] func(input I, t T, pos P, whole span.Span[P, L]) (span.Span[P, L], bool)

func (f MatcherFunc[I, T, P, L]) Match(input I, t T, pos P, whole span.Span[P, L]) (span.Span[P, L], bool) {
	return f(input, t, pos, whole)
}

// Mode defines whether parsing must consume the whole input.
type Mode int

const (
	// MinimalParse succeeds as soon as the start variable matches a prefix of input.
	MinimalParse Mode = iota
	// FullParse fails with ErrUnconsumedInput unless the start variable matches the whole input.
	FullParse
)

type Options struct {
	Mode Mode
	// Validate enables grammar.Rules.Check for the start variable before each parse.
	Validate bool
	// Logger receives variable expansions at trace level and parse outcomes at debug level.
	Logger logrus.FieldLogger
}

// Parser is immutable and safe for concurrent use as long as the rule table is not modified.
type Parser[I, T any, V comparable, P, L any] struct {
	rules   *grammar.Rules[T, V]
	metric  span.Metric[I, P, L]
	matcher Matcher[I, T, P, L]
	opts    Options
	locate  func(pos P) (name string, line, col int)
}

func New[I, T any, V comparable, P, L any](rules *grammar.Rules[T, V], m span.Metric[I, P, L], matcher Matcher[I, T, P, L], opts Options) *Parser[I, T, V, P, L] {
	return &Parser[I, T, V, P, L]{
		rules:   rules,
		metric:  m,
		matcher: matcher,
		opts:    opts,
	}
}

func traceEnabled(l logrus.FieldLogger) bool {
	switch x := l.(type) {
	case *logrus.Logger:
		return x.IsLevelEnabled(logrus.TraceLevel)
	case *logrus.Entry:
		return x.Logger.IsLevelEnabled(logrus.TraceLevel)
	default:
		return false
	}
}

// WithLocator returns a copy of p that adds source name, line, and column returned by f to error messages.
func (p *Parser[I, T, V, P, L]) WithLocator(f func(pos P) (name string, line, col int)) *Parser[I, T, V, P, L] {
	result := *p
	result.locate = f
	return &result
}

func (p *Parser[I, T, V, P, L]) Rules() *grammar.Rules[T, V] {
	return p.rules
}

func (p *Parser[I, T, V, P, L]) Metric() span.Metric[I, P, L] {
	return p.metric
}

// Parse expands start at the beginning of whole.
// Returns the tree covering consumed input and the end position on success.
// Returns nil tree, position of the reported failure, and *mpg.Error on failure.
// The reported failure is the first undefined variable if any, otherwise the content mismatch
// at the furthest position, otherwise ErrAllAlternativesFailed for start.
func (p *Parser[I, T, V, P, L]) Parse(input I, start V, whole span.Span[P, L]) (*tree.Node[T, V, P, L], P, error) {
	if p.opts.Validate {
		e := p.rules.Check(start)
		if e != nil {
			return nil, whole.Start, e
		}
	}

	c := p.newContext(input, whole)
	n, end, f := c.expand(start, whole.Start)
	if f != nil {
		f = c.reported(f)
		e := p.failureError(f)
		p.debug(start, e)
		return nil, f.pos, e
	}

	if p.opts.Mode == FullParse && p.metric.Cmp(end, c.hi) != 0 {
		e := p.unconsumedError(end)
		p.debug(start, e)
		return nil, end, e
	}

	p.debug(start, nil)
	return n, end, nil
}

func (p *Parser[I, T, V, P, L]) debug(start V, e error) {
	if p.opts.Logger == nil {
		return
	}

	l := p.opts.Logger.WithField("start", start)
	if e == nil {
		l.Debug("parsed")
	} else {
		l.WithError(e).Debug("parse failed")
	}
}

// Eval evaluates a single symbol at pos within whole.
// Returns nil tree, pos, and *mpg.Error describing the failure of sym itself on failure.
// The failure metasymbol reads no input but is reported with ErrTerminalMismatch.
func (p *Parser[I, T, V, P, L]) Eval(input I, sym grammar.Symbol[T, V], pos P, whole span.Span[P, L]) (*tree.Node[T, V, P, L], P, error) {
	c := p.newContext(input, whole)
	if p.metric.Cmp(pos, whole.Start) < 0 || p.metric.Cmp(pos, c.hi) > 0 {
		return nil, pos, p.failureError(&failure[T, V, P]{ErrOutOfBounds, pos, sym})
	}

	n, end, f := c.eval(sym, pos)
	if f != nil {
		return nil, pos, p.failureError(f)
	}
	return n, end, nil
}

type failure[T any, V comparable, P any] struct {
	code int
	pos  P
	sym  grammar.Symbol[T, V]
}

type evalContext[I, T any, V comparable, P, L any] struct {
	*Parser[I, T, V, P, L]
	input     I
	whole     span.Span[P, L]
	hi        P
	furthest  *failure[T, V, P]
	undefined *failure[T, V, P]
	depth     int
	trace     bool
}

func (p *Parser[I, T, V, P, L]) newContext(input I, whole span.Span[P, L]) *evalContext[I, T, V, P, L] {
	return &evalContext[I, T, V, P, L]{
		Parser: p,
		input:  input,
		whole:  whole,
		hi:     span.Hi(p.metric, input, whole),
		trace:  traceEnabled(p.opts.Logger),
	}
}

func (c *evalContext[I, T, V, P, L]) fail(code int, pos P, sym grammar.Symbol[T, V]) *failure[T, V, P] {
	f := &failure[T, V, P]{code, pos, sym}
	switch code {
	case ErrUndefinedVariable:
		if c.undefined == nil {
			c.undefined = f
		}
	case ErrTerminalMismatch, ErrOutOfBounds:
		if c.furthest == nil || c.metric.Cmp(pos, c.furthest.pos) > 0 {
			c.furthest = f
		}
	}
	return f
}

func (c *evalContext[I, T, V, P, L]) reported(f *failure[T, V, P]) *failure[T, V, P] {
	if c.undefined != nil {
		return c.undefined
	}
	if c.furthest != nil {
		return c.furthest
	}
	return f
}

func (c *evalContext[I, T, V, P, L]) leaf(t symbol.Terminal[T], s span.Span[P, L]) *tree.Node[T, V, P, L] {
	return tree.NewLeaf[T, V](t, s)
}

func (c *evalContext[I, T, V, P, L]) eval(sym grammar.Symbol[T, V], pos P) (*tree.Node[T, V, P, L], P, *failure[T, V, P]) {
	m := c.metric
	switch sym.Kind() {
	case grammar.VariableKind:
		return c.expand(sym.Var, pos)

	case grammar.TerminalKind:
		s, matched := c.matcher.Match(c.input, sym.Term.Original, pos, c.whole)
		if !matched {
			return nil, pos, c.fail(ErrTerminalMismatch, pos, sym)
		}

		hi := span.Hi(m, c.input, s)
		if m.Cmp(s.Start, pos) != 0 || m.Cmp(hi, c.hi) > 0 {
			return nil, pos, c.fail(ErrOutOfBounds, pos, sym)
		}
		return c.leaf(sym.Term, s), hi, nil

	case grammar.EpsilonKind, grammar.OmitKind:
		return c.leaf(sym.Term, span.FromStartLen(pos, m.Units(0))), pos, nil

	case grammar.AnyKind:
		if sym.Term.N < 0 {
			return nil, pos, c.fail(ErrOutOfBounds, pos, sym)
		}

		n := m.Units(sym.Term.N)
		hi := m.Hi(c.input, pos, n)
		if m.Cmp(hi, c.hi) > 0 {
			return nil, pos, c.fail(ErrOutOfBounds, pos, sym)
		}
		return c.leaf(sym.Term, span.FromStartLen(pos, n)), hi, nil

	case grammar.AllKind:
		s, valid := span.Between(m, c.input, pos, c.hi)
		if !valid {
			return nil, pos, c.fail(ErrOutOfBounds, pos, sym)
		}
		return c.leaf(sym.Term, s), c.hi, nil

	default:
		return nil, pos, &failure[T, V, P]{ErrTerminalMismatch, pos, sym}
	}
}

func (c *evalContext[I, T, V, P, L]) expand(v V, pos P) (*tree.Node[T, V, P, L], P, *failure[T, V, P]) {
	var syms grammar.Symbols[T, V]
	r, found := c.rules.Get(v)
	if !found {
		return nil, pos, c.fail(ErrUndefinedVariable, pos, syms.V(v))
	}

	if c.trace {
		c.opts.Logger.WithFields(logrus.Fields{"var": v, "pos": pos, "depth": c.depth}).Trace("expand")
	}
	c.depth++
	defer func() { c.depth-- }()

	left, lpos, f := c.eval(r.Right.Left, pos)
	if f == nil {
		var right *tree.Node[T, V, P, L]
		var rpos P
		right, rpos, f = c.eval(r.Right.Right, lpos)
		if f == nil {
			s := span.Cover(c.metric, c.input, left.Span, right.Span)
			return tree.FromFirst(v, left, right, s), rpos, nil
		}
	}

	alt, apos, f := c.eval(r.Right.Alt, pos)
	if f == nil {
		return tree.FromSecond(v, alt), apos, nil
	}

	if c.trace {
		c.opts.Logger.WithFields(logrus.Fields{"var": v, "pos": pos, "depth": c.depth - 1}).Trace("no match")
	}
	return nil, pos, &failure[T, V, P]{ErrAllAlternativesFailed, pos, syms.V(v)}
}
