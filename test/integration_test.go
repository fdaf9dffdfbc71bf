package test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgq-go/pgq"
	"github.com/pgq-go/pgq/test/testutil"
)

// TestDB_Integration verifies that the test database is properly set up
// with the book and author tables.
func TestDB_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := testutil.DB(t)
	ctx := context.Background()

	tables := []string{"author", "book"}
	for _, table := range tables {
		var exists bool
		err := db.QueryRowContext(ctx, `
			SELECT EXISTS (
				SELECT FROM information_schema.tables
				WHERE table_name = $1
			)
		`, table).Scan(&exists)
		require.NoError(t, err)
		assert.True(t, exists, "table %s should exist", table)
	}
}

// seedLibrary inserts one author and three books through the statement API.
func seedLibrary(t *testing.T, ctx context.Context, db *sql.DB) int64 {
	t.Helper()

	_, err := pgq.Exec(ctx, db, pgq.Insert(AuthorTable).
		Entry(AuthorColumns.Name.Column, "Knuth").
		Build())
	require.NoError(t, err)

	authors, err := pgq.Query[Author](ctx, db, pgq.Select[Author]().
		Filter(AuthorColumns.Name.Eq("Knuth")).
		Build())
	require.NoError(t, err)
	require.Len(t, authors, 1)
	authorID := authors[0].ID

	books := []struct {
		title string
		pages []string
	}{
		{"Foo and the art of Go", []string{"p1", "p2"}},
		{"Bar", []string{"p1"}},
		{"Unwritten", []string{}},
	}
	for _, b := range books {
		n, err := pgq.Exec(ctx, db, pgq.Insert(BookTable).
			Entry(BookColumns.Title.Column, b.title).
			Entry(BookColumns.Pages.Column, pq.Array(b.pages)).
			Entry(BookColumns.AuthorID.Column, authorID).
			Build())
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	}

	return authorID
}

func TestInsertAndSelect(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := testutil.DB(t)
	ctx := context.Background()
	seedLibrary(t, ctx, db)

	// Books with pages whose title either starts with Foo or is exactly Bar.
	books, err := pgq.Query[Book](ctx, db, pgq.Select[Book]().
		Filter(pgq.Not(BookColumns.Pages.Empty()).
			And(BookColumns.Title.Like("Foo%").Or(BookColumns.Title.Eq("Bar")))).
		Build())
	require.NoError(t, err)
	require.Len(t, books, 2)

	titles := []string{books[0].Title, books[1].Title}
	assert.ElementsMatch(t, []string{"Foo and the art of Go", "Bar"}, titles)
	for _, b := range books {
		assert.NotEmpty(t, b.Pages)
		assert.Nil(t, b.ISBN, "isbn was never set, must decode as NULL")
		require.NotNil(t, b.AuthorID)
	}
}

func TestSelect_JoinFilterLimit(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := testutil.DB(t)
	ctx := context.Background()
	seedLibrary(t, ctx, db)

	books, err := pgq.Query[Book](ctx, db, pgq.Select[Book]().
		Join(BookColumns.AuthorID.Column, AuthorColumns.ID.Column, pgq.InnerJoin).
		Filter(AuthorColumns.Name.Eq("Knuth")).
		Limit(2).
		Build())
	require.NoError(t, err)
	assert.Len(t, books, 2, "limit must cap the result")
}

func TestSelect_ArrayContains(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := testutil.DB(t)
	ctx := context.Background()
	seedLibrary(t, ctx, db)

	books, err := pgq.Query[Book](ctx, db, pgq.Select[Book]().
		Filter(BookColumns.Pages.Contains("p2")).
		Build())
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Foo and the art of Go", books[0].Title)
}

func TestQueryOne(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := testutil.DB(t)
	ctx := context.Background()
	seedLibrary(t, ctx, db)

	book, err := pgq.QueryOne[Book](ctx, db, pgq.Select[Book]().
		Filter(BookColumns.Title.Eq("Bar")).
		Build())
	require.NoError(t, err)
	require.NotNil(t, book)
	assert.Equal(t, "Bar", book.Title)

	missing, err := pgq.QueryOne[Book](ctx, db, pgq.Select[Book]().
		Filter(BookColumns.Title.Eq("No Such Book")).
		Build())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestExec_UniqueViolation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := testutil.DB(t)
	ctx := context.Background()
	seedLibrary(t, ctx, db)

	_, err := pgq.Exec(ctx, db, pgq.Insert(BookTable).
		Entry(BookColumns.Title.Column, "Bar").
		Build())

	require.True(t, pgq.IsConstraintErr(err), "duplicate title must report a constraint violation, got %v", err)
	var ce *pgq.ConstraintError
	require.ErrorAs(t, err, &ce)
	assert.True(t, ce.Unique())
	assert.Equal(t, pgq.SQLStateUniqueViolation, ce.Code)
}

func TestExec_ForeignKeyViolation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := testutil.DB(t)
	ctx := context.Background()

	_, err := pgq.Exec(ctx, db, pgq.Insert(BookTable).
		Entry(BookColumns.Title.Column, "Orphan").
		Entry(BookColumns.AuthorID.Column, int64(999999)).
		Build())

	var ce *pgq.ConstraintError
	require.ErrorAs(t, err, &ce)
	assert.True(t, ce.ForeignKey())
}

func TestUpdateAndDelete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := testutil.DB(t)
	ctx := context.Background()
	seedLibrary(t, ctx, db)

	n, err := pgq.Exec(ctx, db, pgq.Update(BookTable).
		Set(BookColumns.ISBN.Column, "978-0-201-89683-1").
		Filter(BookColumns.Title.Eq("Bar")).
		Build())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	book, err := pgq.QueryOne[Book](ctx, db, pgq.Select[Book]().
		Filter(BookColumns.Title.Eq("Bar")).
		Build())
	require.NoError(t, err)
	require.NotNil(t, book)
	require.NotNil(t, book.ISBN)
	assert.Equal(t, "978-0-201-89683-1", *book.ISBN)

	n, err = pgq.Exec(ctx, db, pgq.Delete(BookTable).
		Filter(BookColumns.Pages.Empty()).
		Build())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "only the pageless book should be deleted")

	remaining, err := pgq.Query[Book](ctx, db, pgq.Select[Book]().Build())
	require.NoError(t, err)
	assert.Len(t, remaining, 2)
}

func TestWithTx(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := testutil.DB(t)
	ctx := context.Background()
	seedLibrary(t, ctx, db)

	t.Run("reads observe uncommitted writes", func(t *testing.T) {
		err := pgq.WithTx(ctx, db, func(tx *sql.Tx) error {
			if _, err := pgq.Exec(ctx, tx, pgq.Insert(BookTable).
				Entry(BookColumns.Title.Column, "In Flight").
				Build()); err != nil {
				return err
			}

			book, err := pgq.QueryOne[Book](ctx, tx, pgq.Select[Book]().
				Filter(BookColumns.Title.Eq("In Flight")).
				Build())
			if err != nil {
				return err
			}
			require.NotNil(t, book, "insert must be visible inside its own transaction")
			return nil
		})
		require.NoError(t, err)

		book, err := pgq.QueryOne[Book](ctx, db, pgq.Select[Book]().
			Filter(BookColumns.Title.Eq("In Flight")).
			Build())
		require.NoError(t, err)
		assert.NotNil(t, book, "committed insert must be visible outside the transaction")
	})

	t.Run("rollback discards writes", func(t *testing.T) {
		err := pgq.WithTx(ctx, db, func(tx *sql.Tx) error {
			if _, err := pgq.Exec(ctx, tx, pgq.Insert(BookTable).
				Entry(BookColumns.Title.Column, "Never Happened").
				Build()); err != nil {
				return err
			}
			return context.Canceled // any error triggers rollback
		})
		require.Error(t, err)

		book, qerr := pgq.QueryOne[Book](ctx, db, pgq.Select[Book]().
			Filter(BookColumns.Title.Eq("Never Happened")).
			Build())
		require.NoError(t, qerr)
		assert.Nil(t, book, "rolled-back insert must not be visible")
	})
}

func TestVerify(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := testutil.DB(t)
	ctx := context.Background()

	require.NoError(t, pgq.Verify(ctx, db, &Author{}, &Book{}))

	empty := testutil.EmptyDB(t)
	err := pgq.Verify(ctx, empty, &Book{})
	require.Error(t, err, "verification must fail against a database without the schema")
}

func TestRawFilter(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := testutil.DB(t)
	ctx := context.Background()
	seedLibrary(t, ctx, db)

	books, err := pgq.Query[Book](ctx, db, pgq.Select[Book]().
		Filter(BookColumns.Title.Like("%o%").
			And(pgq.Raw("char_length(title) > ?", 5))).
		Build())
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Foo and the art of Go", books[0].Title)
}
