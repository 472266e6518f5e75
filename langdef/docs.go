/*
Package langdef converts textual grammar description to a rule table.

Self-definition of the description language:
*/
//  $space = /[ \r\n\t\f]+/; $comment = /#[^\n]*/;
//  $string = /[ibx]?(?:"(?:[^\\"\n]|\\.)*"|'[^'\n]*')/;
//  $range = /\[(?:[^\\\]\n]|\\.)+\]/;
//  $any = /\?[0-9]+/;
//  $epsilon = /\(\s*\)/;
//  $name = /[A-Za-z][A-Za-z0-9_]*/;
//  $op = /[=\/;*_]/;
//
//  # the first rule defines the start variable
//  langdef = rule, {rule};
//  rule = $name, '=', alternative, {'/', alternative}, ';';
//  alternative = {item};
//  item = $name | $string | $range | $any | $epsilon | '*' | '_';
/*
Description must be a valid UTF-8 text. Line breaks are insignificant.
Line comments start with # and end with line feed.

A name refers to a variable, except for the name f which denotes the Failure metasymbol.
Each variable must be defined exactly once. Other metasymbols are:

	()   Epsilon, matches empty input
	?N   Any(N), consumes exactly N units
	*    All, consumes the rest of input
	_    Omit, matches empty input, excluded from projected values

An empty alternative matches like Epsilon.

Terminal literals:

	"text"   exact text, escapes \\ \" \a \b \f \n \r \t \v \xNN \uNNNN \UNNNNNNNN are allowed
	'text'   exact text, no escapes
	i"text"  caseless text (text grammars only)
	b"text"  exact bytes, \xNN denotes a single byte (binary grammars only)
	x"hex"   exact bytes written as hex digits, spaces are ignored (binary grammars only)
	[a-z]    a single rune (or byte) in the range, [a] matches a single rune;
	         escapes \- \] \\ \n \r \t \xNN \uNNNN are allowed

In binary grammars "text" and 'text' denote bytes of the text.

Rules of the form

	Name = A B / C;

map to a single rule, other rules are lowered with grammar.Compile using intermediate
variables Name.1, Name.2, and so on. For example

	Number = Digit Number / Digit;
	Digit = [0-9];

is equal to

	Number = Digit Number / Digit;
	Digit = [0-9] () / f;

Parsed rules are checked by grammar.Rules.Check for the start variable.
*/
package langdef
