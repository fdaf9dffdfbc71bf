package pgq

// DeleteBuilder accumulates a filter for a DELETE statement.
type DeleteBuilder struct {
	table  string
	filter Filter
	built  bool
}

// Delete starts a DELETE from the given table. Without a filter the
// statement deletes every row.
func Delete(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

// Filter adds a WHERE condition restricting which rows are deleted.
// Calling Filter more than once joins the conditions with AND.
func (b *DeleteBuilder) Filter(f Filter) *DeleteBuilder {
	b.draft("Filter")
	b.filter = b.filter.And(f)
	return b
}

// Build compiles the draft into an immutable Statement.
func (b *DeleteBuilder) Build() *Statement {
	b.draft("Build")
	b.built = true

	var c compiler
	c.write("DELETE FROM ")
	c.write(quoteIdent(b.table))
	c.where(b.filter)
	return c.statement(StatementDelete)
}

func (b *DeleteBuilder) draft(op string) {
	if b.built {
		panic("pgq: " + op + " called on a built DELETE statement")
	}
}
