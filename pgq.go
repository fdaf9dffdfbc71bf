// Package pgq builds and executes typed PostgreSQL statements without
// hand-written SQL text.
//
// # Core Concepts
//
// A Column is an immutable handle naming a table and column. Typed wrappers
// (TypedColumn, TextColumn, NullColumn, ArrayColumn) expose comparison
// constructors that each produce a Filter:
//
//	title := pgq.NewTextColumn("book", "title")
//	f := title.Like("Foo%").Or(title.Eq("Bar"))
//
// Filters are immutable value trees. Combining two filters always yields a
// new tree; sub-filters can be shared freely across statements and
// goroutines.
//
// Statement builders (Select, Insert, Update, Delete) accumulate a
// projection, a filter tree, joins and a row limit, then freeze into an
// immutable Statement via Build. Compilation is deterministic: the same
// builder calls always produce the same SQL text and argument list. Bound
// values are never interpolated into the SQL text; they are carried in the
// argument list and referenced by $1, $2, ... placeholders, so adversarial
// input cannot change the statement's shape.
//
// # Basic Usage
//
//	stmt := pgq.Select[Book]().
//	    Filter(books.Title.Like("Foo%")).
//	    Limit(10).
//	    Build()
//	rows, err := pgq.Query[Book](ctx, db, stmt)
//
// Model metadata (table name, column order, field pointers) is typically
// produced by `pgq generate` from the struct definition, or written by hand.
//
// # Database Handles
//
// Every execution call takes an explicit Querier or Execer. Both interfaces
// are satisfied by *sql.DB, *sql.Tx and *sql.Conn, so statements can run
// inside transactions and see uncommitted state:
//
//	tx, _ := db.BeginTx(ctx, nil)
//	n, err := pgq.Exec(ctx, tx, stmt)
//
// There is no package-level connection state.
//
// # Error Contract
//
// Insert, update and delete report constraint violations (unique,
// foreign-key, check, not-null) as a *ConstraintError; rejections of that
// kind are a normal business outcome and callers are expected to branch on
// them. Every other execution failure — lost connections, protocol errors,
// rows that do not match the model shape — is wrapped in *FatalError, a
// variant the top-level caller is expected to let propagate rather than
// handle. See the errors.go documentation for details.
package pgq

import (
	"context"
	"database/sql"
)

// Querier executes read statements against PostgreSQL.
// Implemented by *sql.DB, *sql.Tx, and *sql.Conn.
//
// The minimal interface allows query execution in transaction contexts
// without requiring a full database connection, so reads can observe
// uncommitted changes within a transaction.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Execer extends Querier with ExecContext for mutating statements.
// Implemented by *sql.DB, *sql.Tx, and *sql.Conn.
type Execer interface {
	Querier
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Meta describes the table backing a model: the table name and the ordered
// column list. The column order fixes the projection order of Select and the
// scan order of Query; it must match the order of Model.Fields.
type Meta struct {
	Table   string
	Columns []Column
}

// Model is implemented by struct types that map to a table row. The
// implementation is typically generated by `pgq generate`, but a hand-written
// registry works just as well; no reflection is involved either way.
type Model interface {
	// ModelMeta returns the table and ordered column metadata.
	ModelMeta() Meta

	// Fields returns pointers to the struct fields in the same order as
	// ModelMeta().Columns. Query scans each result row into them
	// positionally; a shape mismatch is a decode failure.
	Fields() []any
}

// ModelPtr constrains a type parameter to a pointer to a Model value.
// It lets Query allocate fresh instances while calling the pointer-receiver
// methods of the Model interface.
type ModelPtr[M any] interface {
	Model
	*M
}
