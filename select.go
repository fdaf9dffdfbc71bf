package pgq

import "strconv"

// SelectBuilder accumulates the pieces of a SELECT statement. A builder
// starts in draft state and accepts Filter, Join, Limit and Offset calls in
// any order; Build freezes it into an immutable Statement. Every mutating
// call after Build panics — continuing to use a built draft is a logic bug,
// not a runtime condition.
type SelectBuilder struct {
	cols   []Column
	from   string
	joins  []Join
	filter Filter
	limit  int64
	offset int64
	built  bool
}

// Select starts a SELECT over all columns of the model M, in metadata order.
//
//	stmt := pgq.Select[Book]().Filter(books.Title.Eq("Bar")).Build()
func Select[M any, PM ModelPtr[M]]() *SelectBuilder {
	var m M
	meta := PM(&m).ModelMeta()
	return SelectColumns(meta.Columns, meta.Table)
}

// SelectColumns starts a SELECT with an explicit projection. The column
// order is preserved in the compiled statement; result rows are positionally
// aligned with it.
func SelectColumns(cols []Column, from string) *SelectBuilder {
	return &SelectBuilder{
		cols:   append([]Column(nil), cols...),
		from:   from,
		limit:  -1,
		offset: -1,
	}
}

// Filter adds a WHERE condition. Calling Filter more than once joins the
// conditions with AND.
func (b *SelectBuilder) Filter(f Filter) *SelectBuilder {
	b.draft("Filter")
	b.filter = b.filter.And(f)
	return b
}

// Join adds a join of the right column's table onto the statement. Joins
// render in call order. Join panics if both columns belong to the same
// table (see NewJoin).
func (b *SelectBuilder) Join(left, right Column, kind JoinKind) *SelectBuilder {
	b.draft("Join")
	b.joins = append(b.joins, NewJoin(left, right, kind))
	return b
}

// Limit caps the number of returned rows. The last call wins.
func (b *SelectBuilder) Limit(n int64) *SelectBuilder {
	b.draft("Limit")
	b.limit = n
	return b
}

// Offset skips the first n rows. The last call wins.
func (b *SelectBuilder) Offset(n int64) *SelectBuilder {
	b.draft("Offset")
	b.offset = n
	return b
}

// Build compiles the draft into an immutable Statement. The builder is
// terminal afterwards: any further call panics. Build panics on an empty
// projection.
func (b *SelectBuilder) Build() *Statement {
	b.draft("Build")
	if len(b.cols) == 0 {
		panic("pgq: SELECT with no projection columns")
	}
	b.built = true

	var c compiler
	c.write("SELECT ")
	for i, col := range b.cols {
		if i > 0 {
			c.write(", ")
		}
		c.ident(col)
	}
	c.write(" FROM ")
	c.write(quoteIdent(b.from))
	for _, j := range b.joins {
		c.write(" ")
		j.appendTo(&c)
	}
	c.where(b.filter)
	if b.limit >= 0 {
		c.write(" LIMIT ")
		c.write(strconv.FormatInt(b.limit, 10))
	}
	if b.offset >= 0 {
		c.write(" OFFSET ")
		c.write(strconv.FormatInt(b.offset, 10))
	}
	return c.statement(StatementSelect)
}

func (b *SelectBuilder) draft(op string) {
	if b.built {
		panic("pgq: " + op + " called on a built SELECT statement")
	}
}
