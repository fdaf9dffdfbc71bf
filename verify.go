package pgq

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
)

// Verify checks that each model's table exists and carries every column the
// model maps. It is meant to be called once at application startup so that a
// drifted schema surfaces as one clear error instead of scan failures deep in
// request handling.
//
// Database columns the model does not map are logged as warnings (the model
// may intentionally project a subset) but do not fail verification.
func Verify(ctx context.Context, db Querier, models ...Model) error {
	var problems []string

	for _, m := range models {
		meta := m.ModelMeta()

		have, err := tableColumns(ctx, db, meta.Table)
		if err != nil {
			return &FatalError{Op: "verify", err: err}
		}
		if len(have) == 0 {
			problems = append(problems, fmt.Sprintf("table %q not found", meta.Table))
			continue
		}

		mapped := make(map[string]bool, len(meta.Columns))
		for _, col := range meta.Columns {
			mapped[col.ColumnName()] = true
			if !have[col.ColumnName()] {
				problems = append(problems,
					fmt.Sprintf("table %q is missing column %q", meta.Table, col.ColumnName()))
			}
		}

		var unmapped []string
		for name := range have {
			if !mapped[name] {
				unmapped = append(unmapped, name)
			}
		}
		sort.Strings(unmapped)
		for _, name := range unmapped {
			log.Printf("[pgq] WARNING: table %q column %q is not mapped by the model", meta.Table, name)
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("pgq: schema verification failed: %s", strings.Join(problems, "; "))
	}
	return nil
}

// tableColumns returns the column names of a table as a set. An absent table
// yields an empty set. The lookup is scoped to the connection's current
// schema so a same-named table elsewhere on the server cannot satisfy it.
func tableColumns(ctx context.Context, db Querier, table string) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx,
		"SELECT column_name FROM information_schema.columns WHERE table_name = $1 AND table_schema = current_schema()", table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		cols[name] = true
	}
	return cols, rows.Err()
}
