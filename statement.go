package pgq

import (
	"strconv"
	"strings"
)

// StatementKind identifies the operation a Statement performs.
type StatementKind int

// The statement kinds produced by the builders in this package.
const (
	StatementSelect StatementKind = iota
	StatementInsert
	StatementUpdate
	StatementDelete
)

// String returns the SQL keyword for the statement kind.
func (k StatementKind) String() string {
	switch k {
	case StatementSelect:
		return "SELECT"
	case StatementInsert:
		return "INSERT"
	case StatementUpdate:
		return "UPDATE"
	case StatementDelete:
		return "DELETE"
	}
	return "UNKNOWN"
}

// Statement is an immutable, fully compiled SQL operation: the parameterized
// SQL text plus the positional argument list. A Statement can be executed any
// number of times; its bound values are fixed at Build time, so re-binding
// different values requires building a new statement.
type Statement struct {
	kind StatementKind
	sql  string
	args []any
}

// Kind returns the statement's operation kind.
func (s *Statement) Kind() StatementKind {
	return s.kind
}

// SQL returns the parameterized SQL text. Bound values are referenced by
// $1, $2, ... placeholders and never appear in the text itself.
func (s *Statement) SQL() string {
	return s.sql
}

// Args returns the bound values in placeholder order: Args()[n-1] is the
// value of placeholder $n. Callers must not modify the returned slice.
func (s *Statement) Args() []any {
	return s.args
}

// compiler accumulates SQL text and bound arguments during a single Build.
// It is the only place placeholders are assigned.
type compiler struct {
	sql  strings.Builder
	args []any
}

func (c *compiler) write(s string) {
	c.sql.WriteString(s)
}

// bind appends value to the argument list and writes its placeholder. The
// placeholder index and the argument position advance together in one step;
// this is the alignment invariant the whole compiler rests on.
func (c *compiler) bind(value any) {
	c.args = append(c.args, value)
	c.write("$")
	c.write(strconv.Itoa(len(c.args)))
}

// ident writes the quoted, table-qualified column name.
func (c *compiler) ident(col Column) {
	c.write(col.QualifiedName())
}

// where renders the WHERE clause for a filter tree. The identity filter
// renders nothing: an unconditional statement has no WHERE clause.
func (c *compiler) where(f Filter) {
	if f.isAll() {
		return
	}
	c.write(" WHERE ")
	f.node.appendTo(c)
}

// statement freezes the accumulated text and arguments.
func (c *compiler) statement(kind StatementKind) *Statement {
	return &Statement{kind: kind, sql: c.sql.String(), args: c.args}
}

// quoteIdent quotes an identifier per the PostgreSQL dialect, doubling any
// embedded quote characters.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
