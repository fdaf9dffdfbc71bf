package test

import (
	"github.com/lib/pq"

	"github.com/pgq-go/pgq"
)

// Hand-written model metadata in the exact shape `pgq generate` emits:
// array fields stay plain []T and scan through pq.Array.

type Author struct {
	ID   int64
	Name string
}

const AuthorTable = "author"

var AuthorColumns = struct {
	ID   pgq.TypedColumn[int64]
	Name pgq.TextColumn
}{
	ID:   pgq.NewTypedColumn[int64](AuthorTable, "id"),
	Name: pgq.NewTextColumn(AuthorTable, "name"),
}

func (m *Author) ModelMeta() pgq.Meta {
	return pgq.Meta{
		Table: AuthorTable,
		Columns: []pgq.Column{
			AuthorColumns.ID.Column,
			AuthorColumns.Name.Column,
		},
	}
}

func (m *Author) Fields() []any {
	return []any{
		&m.ID,
		&m.Name,
	}
}

type Book struct {
	ID       int64
	Title    string
	ISBN     *string
	Pages    []string
	AuthorID *int64
}

const BookTable = "book"

var BookColumns = struct {
	ID       pgq.TypedColumn[int64]
	Title    pgq.TextColumn
	ISBN     pgq.NullColumn[string]
	Pages    pgq.ArrayColumn[string]
	AuthorID pgq.NullColumn[int64]
}{
	ID:       pgq.NewTypedColumn[int64](BookTable, "id"),
	Title:    pgq.NewTextColumn(BookTable, "title"),
	ISBN:     pgq.NewNullColumn[string](BookTable, "isbn"),
	Pages:    pgq.NewArrayColumn[string](BookTable, "pages"),
	AuthorID: pgq.NewNullColumn[int64](BookTable, "author_id"),
}

func (m *Book) ModelMeta() pgq.Meta {
	return pgq.Meta{
		Table: BookTable,
		Columns: []pgq.Column{
			BookColumns.ID.Column,
			BookColumns.Title.Column,
			BookColumns.ISBN.Column,
			BookColumns.Pages.Column,
			BookColumns.AuthorID.Column,
		},
	}
}

func (m *Book) Fields() []any {
	return []any{
		&m.ID,
		&m.Title,
		&m.ISBN,
		pq.Array(&m.Pages),
		&m.AuthorID,
	}
}
