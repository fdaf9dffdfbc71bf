package pgq

// InsertBuilder accumulates column/value entries for an INSERT statement.
type InsertBuilder struct {
	table   string
	entries []colValue
	built   bool
}

// colValue pairs a column with a bound value. Shared by Insert and Update.
type colValue struct {
	col   Column
	value any
}

// Insert starts an INSERT into the given table.
//
//	stmt := pgq.Insert("book").
//	    Entry(books.Title.Column, "Foo").
//	    Entry(books.Pages.Column, 123).
//	    Build()
func Insert(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

// Entry adds a value for one column. Entries render in call order. Entry
// panics if the column belongs to a different table than the statement.
func (b *InsertBuilder) Entry(col Column, value any) *InsertBuilder {
	b.draft("Entry")
	if col.tableName != b.table {
		panic("pgq: INSERT into " + b.table + " given column of table " + col.tableName)
	}
	b.entries = append(b.entries, colValue{col: col, value: value})
	return b
}

// Build compiles the draft into an immutable Statement. It panics if no
// entries were added.
func (b *InsertBuilder) Build() *Statement {
	b.draft("Build")
	if len(b.entries) == 0 {
		panic("pgq: INSERT with no entries")
	}
	b.built = true

	var c compiler
	c.write("INSERT INTO ")
	c.write(quoteIdent(b.table))
	c.write(" (")
	for i, e := range b.entries {
		if i > 0 {
			c.write(", ")
		}
		c.write(quoteIdent(e.col.columnName))
	}
	c.write(") VALUES (")
	for i, e := range b.entries {
		if i > 0 {
			c.write(", ")
		}
		c.bind(e.value)
	}
	c.write(")")
	return c.statement(StatementInsert)
}

func (b *InsertBuilder) draft(op string) {
	if b.built {
		panic("pgq: " + op + " called on a built INSERT statement")
	}
}
