package pgq

// UpdateBuilder accumulates SET clauses and a filter for an UPDATE
// statement. At least one Set call is required before Build.
type UpdateBuilder struct {
	table  string
	sets   []colValue
	filter Filter
	built  bool
}

// Update starts an UPDATE of the given table.
//
//	stmt := pgq.Update("book").
//	    Set(books.Title.Column, "Bar").
//	    Filter(books.ID.Eq(7)).
//	    Build()
func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

// Set assigns a new value to one column. SET clauses render in call order.
// Set panics if the column belongs to a different table than the statement.
func (b *UpdateBuilder) Set(col Column, value any) *UpdateBuilder {
	b.draft("Set")
	if col.tableName != b.table {
		panic("pgq: UPDATE of " + b.table + " given column of table " + col.tableName)
	}
	b.sets = append(b.sets, colValue{col: col, value: value})
	return b
}

// Filter adds a WHERE condition restricting which rows are updated.
// Calling Filter more than once joins the conditions with AND.
func (b *UpdateBuilder) Filter(f Filter) *UpdateBuilder {
	b.draft("Filter")
	b.filter = b.filter.And(f)
	return b
}

// Build compiles the draft into an immutable Statement. It panics if no Set
// call was made: an UPDATE without assignments is a logic bug.
//
// SET values bind before filter values, so their placeholders come first.
func (b *UpdateBuilder) Build() *Statement {
	b.draft("Build")
	if len(b.sets) == 0 {
		panic("pgq: UPDATE with no SET clauses")
	}
	b.built = true

	var c compiler
	c.write("UPDATE ")
	c.write(quoteIdent(b.table))
	c.write(" SET ")
	for i, s := range b.sets {
		if i > 0 {
			c.write(", ")
		}
		c.write(quoteIdent(s.col.columnName))
		c.write(" = ")
		c.bind(s.value)
	}
	c.where(b.filter)
	return c.statement(StatementUpdate)
}

func (b *UpdateBuilder) draft(op string) {
	if b.built {
		panic("pgq: " + op + " called on a built UPDATE statement")
	}
}
