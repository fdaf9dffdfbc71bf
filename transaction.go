package pgq

import (
	"context"
	"database/sql"
	"fmt"
)

// WithTx runs fn inside a transaction. The transaction commits when fn
// returns nil and rolls back when it returns an error or panics; the panic
// is re-raised after rollback. The *sql.Tx satisfies Execer, so statements
// executed through it observe each other's uncommitted effects.
//
//	err := pgq.WithTx(ctx, db, func(tx *sql.Tx) error {
//	    if _, err := pgq.Exec(ctx, tx, ins); err != nil {
//	        return err
//	    }
//	    _, err := pgq.Exec(ctx, tx, upd)
//	    return err
//	})
func WithTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return &FatalError{Op: "begin", err: err}
	}

	done := false
	defer func() {
		if !done {
			_ = tx.Rollback()
		}
	}()

	if err := fn(tx); err != nil {
		done = true
		if rbErr := tx.Rollback(); rbErr != nil {
			return &FatalError{Op: "rollback", err: fmt.Errorf("%v (after: %w)", rbErr, err)}
		}
		return err
	}

	done = true
	if err := tx.Commit(); err != nil {
		return &FatalError{Op: "commit", err: err}
	}
	return nil
}
