package pgq

import (
	"context"
)

// Exec runs a mutating statement (INSERT, UPDATE or DELETE) and returns the
// number of rows affected. Constraint violations come back as a
// *ConstraintError; every other failure is wrapped in *FatalError.
//
// Exec panics when handed a SELECT statement: reads go through Query.
func Exec(ctx context.Context, db Execer, stmt *Statement) (int64, error) {
	if stmt.Kind() == StatementSelect {
		panic("pgq: Exec called with a SELECT statement, use Query")
	}

	res, err := db.ExecContext(ctx, stmt.SQL(), stmt.Args()...)
	if err != nil {
		return 0, mapExecError(stmt.Kind().String(), err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, &FatalError{Op: stmt.Kind().String(), err: err}
	}
	return n, nil
}

// Query runs a SELECT statement and maps every result row onto a freshly
// allocated model. Rows scan positionally into Fields(), so the statement's
// projection must match the model's column order; Select[M] guarantees that
// by construction.
//
// Any failure — the query itself, a row scan, or the rows iterator — is
// wrapped in *FatalError: a read that cannot complete indicates a broken
// connection or a model/projection mismatch, neither of which the caller
// can recover from in-line.
//
// Query panics when handed a non-SELECT statement.
func Query[M any, PM ModelPtr[M]](ctx context.Context, db Querier, stmt *Statement) ([]*M, error) {
	if stmt.Kind() != StatementSelect {
		panic("pgq: Query called with a " + stmt.Kind().String() + " statement, use Exec")
	}

	rows, err := db.QueryContext(ctx, stmt.SQL(), stmt.Args()...)
	if err != nil {
		return nil, &FatalError{Op: "SELECT", err: err}
	}
	defer rows.Close()

	var out []*M
	for rows.Next() {
		m := new(M)
		if err := rows.Scan(PM(m).Fields()...); err != nil {
			return nil, &FatalError{Op: "scan", err: err}
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, &FatalError{Op: "SELECT", err: err}
	}
	return out, nil
}

// QueryOne runs a SELECT statement and returns the first result row, or
// (nil, nil) when the statement matches nothing. Additional rows are
// discarded; add a Limit(1) to the builder to avoid fetching them.
func QueryOne[M any, PM ModelPtr[M]](ctx context.Context, db Querier, stmt *Statement) (*M, error) {
	models, err := Query[M, PM](ctx, db, stmt)
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, nil
	}
	return models[0], nil
}

// MustQuery is Query that panics on error, for callers that treat any read
// failure as unrecoverable.
func MustQuery[M any, PM ModelPtr[M]](ctx context.Context, db Querier, stmt *Statement) []*M {
	models, err := Query[M, PM](ctx, db, stmt)
	if err != nil {
		panic(err)
	}
	return models
}

// MustQueryOne is QueryOne that panics on error.
func MustQueryOne[M any, PM ModelPtr[M]](ctx context.Context, db Querier, stmt *Statement) *M {
	m, err := QueryOne[M, PM](ctx, db, stmt)
	if err != nil {
		panic(err)
	}
	return m
}
