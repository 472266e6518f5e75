package grammar

// FreshFunc returns the i-th intermediate variable for base, i starts with 1.
// Returned variables must be distinct from each other and from all other variables of the grammar.
type FreshFunc[V comparable] func(base V, i int) V

// Compile lowers v = alts[0] / alts[1] / ... into rules of binary form.
// Each alternative is a sequence of any length, an empty sequence matches like Epsilon.
// The rule for v comes first, intermediate variables are created with fresh.
// A variable with no alternatives never matches.
func Compile[T any, V comparable](v V, fresh FreshFunc[V], alts ...[]Symbol[T, V]) []Rule[T, V] {
	c := &compiler[T, V]{base: v, fresh: fresh}
	c.alternation(v, alts)
	return c.rules
}

type compiler[T any, V comparable] struct {
	base  V
	fresh FreshFunc[V]
	count int
	rules []Rule[T, V]
	s     Symbols[T, V]
}

func (c *compiler[T, V]) next() V {
	c.count++
	return c.fresh(c.base, c.count)
}

func (c *compiler[T, V]) reserve() int {
	c.rules = append(c.rules, Rule[T, V]{})
	return len(c.rules) - 1
}

func (c *compiler[T, V]) alternation(target V, alts [][]Symbol[T, V]) {
	index := c.reserve()
	if len(alts) == 0 {
		c.rules[index] = NewRule(target, c.s.Failure(), c.s.Epsilon(), c.s.Failure())
		return
	}

	left, right := c.pair(alts[0])
	rest := alts[1:]
	var alt Symbol[T, V]
	switch {
	case len(rest) == 0:
		alt = c.s.Failure()
	case len(rest) == 1 && len(rest[0]) == 0:
		alt = c.s.Epsilon()
	case len(rest) == 1 && len(rest[0]) == 1:
		alt = rest[0][0]
	default:
		nv := c.next()
		c.alternation(nv, rest)
		alt = c.s.V(nv)
	}
	c.rules[index] = NewRule(target, left, right, alt)
}

func (c *compiler[T, V]) pair(seq []Symbol[T, V]) (left, right Symbol[T, V]) {
	switch len(seq) {
	case 0:
		return c.s.Epsilon(), c.s.Epsilon()
	case 1:
		return seq[0], c.s.Epsilon()
	case 2:
		return seq[0], seq[1]
	}

	nv := c.next()
	index := c.reserve()
	l, r := c.pair(seq[1:])
	c.rules[index] = NewRule(nv, l, r, c.s.Failure())
	return seq[0], c.s.V(nv)
}
