package pgq

import (
	"strings"
)

// Filter is an immutable boolean expression over column comparisons. It maps
// to the WHERE clause of a statement.
//
// Filters are produced by the comparison constructors on column handles
// (Eq, OneOf, Like, ...) and combined with And, Or and Not. Combinators
// always return a new tree and never mutate their operands, so sub-filters
// can be reused across statements.
//
// The zero value is the identity filter All().
type Filter struct {
	node filterNode
}

// filterNode is one node of the expression tree. The interface is sealed:
// only nodes defined in this package can appear in a tree, which keeps the
// placeholder/argument alignment invariant local to the compiler.
type filterNode interface {
	appendTo(c *compiler)
}

// All returns the identity filter which matches every row. It compiles to
// no WHERE clause at all and is the identity element of both And and Or.
func All() Filter {
	return Filter{}
}

func (f Filter) isAll() bool {
	return f.node == nil
}

// And combines two filters so that both must match.
// The identity filter is dropped rather than nested.
func And(a, b Filter) Filter {
	if a.isAll() {
		return b
	}
	if b.isAll() {
		return a
	}
	return Filter{node: binaryNode{op: "AND", left: a.node, right: b.node}}
}

// Or combines two filters so that at least one must match.
// The identity filter is dropped rather than nested.
func Or(a, b Filter) Filter {
	if a.isAll() {
		return b
	}
	if b.isAll() {
		return a
	}
	return Filter{node: binaryNode{op: "OR", left: a.node, right: b.node}}
}

// Not negates a filter. Double negation collapses: Not(Not(f)) is f.
// Negating the identity filter yields the identity filter.
func Not(f Filter) Filter {
	if f.isAll() {
		return f
	}
	if n, ok := f.node.(notNode); ok {
		return Filter{node: n.child}
	}
	return Filter{node: notNode{child: f.node}}
}

// And combines the receiver with other so that both must match.
func (f Filter) And(other Filter) Filter {
	return And(f, other)
}

// Or combines the receiver with other so that at least one must match.
func (f Filter) Or(other Filter) Filter {
	return Or(f, other)
}

// Not negates the receiver.
func (f Filter) Not() Filter {
	return Not(f)
}

// Raw creates a filter from a hand-written SQL fragment. Reference the args
// with the ? placeholder; each is renumbered to the statement's next $N
// placeholder during compilation, so raw fragments compose with built
// filters without manual bookkeeping.
//
// The fragment is trusted SQL text written by the programmer; only the args
// are bound out-of-band. Never splice user input into stmt.
//
// Raw panics if the number of ? placeholders does not match len(args).
func Raw(stmt string, args ...any) Filter {
	if n := strings.Count(stmt, "?"); n != len(args) {
		panic("pgq: Raw filter has " + itoa(n) + " placeholders but " + itoa(len(args)) + " arguments")
	}
	return Filter{node: rawNode{stmt: stmt, args: args}}
}

// newCompare builds a comparison leaf. Shared by the TypedColumn operators.
func newCompare(col Column, op string, value any) Filter {
	return Filter{node: compareNode{col: col, op: op, value: value}}
}

// compareNode is a single column/operator/value comparison.
type compareNode struct {
	col   Column
	op    string
	value any
}

func (n compareNode) appendTo(c *compiler) {
	c.ident(n.col)
	c.write(" ")
	c.write(n.op)
	c.write(" ")
	c.bind(n.value)
}

// inSetNode is a column IN (...) membership test, negated for NoneOf.
type inSetNode struct {
	col    Column
	values []any
	negate bool
}

func (n inSetNode) appendTo(c *compiler) {
	// An empty set can never be matched: IN () is not valid SQL, so the
	// node degenerates to a constant predicate instead.
	if len(n.values) == 0 {
		if n.negate {
			c.write("TRUE")
		} else {
			c.write("FALSE")
		}
		return
	}

	c.ident(n.col)
	if n.negate {
		c.write(" NOT IN (")
	} else {
		c.write(" IN (")
	}
	for i, v := range n.values {
		if i > 0 {
			c.write(", ")
		}
		c.bind(v)
	}
	c.write(")")
}

// patternNode is a LIKE match.
type patternNode struct {
	col     Column
	pattern string
}

func (n patternNode) appendTo(c *compiler) {
	c.ident(n.col)
	c.write(" LIKE ")
	c.bind(n.pattern)
}

// isNullNode is an IS NULL / IS NOT NULL check. It binds no value.
type isNullNode struct {
	col    Column
	negate bool
}

func (n isNullNode) appendTo(c *compiler) {
	c.ident(n.col)
	if n.negate {
		c.write(" IS NOT NULL")
	} else {
		c.write(" IS NULL")
	}
}

// arrayEmptyNode checks an array column for emptiness via cardinality.
type arrayEmptyNode struct {
	col Column
}

func (n arrayEmptyNode) appendTo(c *compiler) {
	c.write("cardinality(")
	c.ident(n.col)
	c.write(") = 0")
}

// arrayContainsNode checks an array column for element membership.
type arrayContainsNode struct {
	col   Column
	value any
}

func (n arrayContainsNode) appendTo(c *compiler) {
	c.bind(n.value)
	c.write(" = ANY(")
	c.ident(n.col)
	c.write(")")
}

// notNode negates its child.
type notNode struct {
	child filterNode
}

func (n notNode) appendTo(c *compiler) {
	c.write("NOT (")
	n.child.appendTo(c)
	c.write(")")
}

// binaryNode joins two subtrees with AND or OR. Every binary node renders
// inside its own parentheses so the emitted SQL evaluates exactly in tree
// shape, independent of SQL's native operator precedence.
type binaryNode struct {
	op    string
	left  filterNode
	right filterNode
}

func (n binaryNode) appendTo(c *compiler) {
	c.write("(")
	n.left.appendTo(c)
	c.write(" ")
	c.write(n.op)
	c.write(" ")
	n.right.appendTo(c)
	c.write(")")
}

// rawNode is a hand-written fragment with ? placeholders. Rendering walks
// the fragment left to right and binds each argument as its ? is reached,
// preserving the placeholder/argument alignment invariant.
type rawNode struct {
	stmt string
	args []any
}

func (n rawNode) appendTo(c *compiler) {
	rest := n.stmt
	for _, arg := range n.args {
		i := strings.IndexByte(rest, '?')
		c.write(rest[:i])
		c.bind(arg)
		rest = rest[i+1:]
	}
	c.write(rest)
}
