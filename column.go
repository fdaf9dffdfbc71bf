package pgq

// Column identifies a single table column. It is an immutable value: the
// table and column names are fixed at construction and shared read-only by
// every filter and statement that references the column.
type Column struct {
	tableName  string
	columnName string
}

// NewColumn creates a column handle for the given table and column names.
func NewColumn(table, column string) Column {
	return Column{tableName: table, columnName: column}
}

// TableName returns the name of the table this column belongs to.
func (c Column) TableName() string {
	return c.tableName
}

// ColumnName returns the column's name.
func (c Column) ColumnName() string {
	return c.columnName
}

// QualifiedName returns the quoted, table-qualified form of the column,
// e.g. `"book"."title"`.
func (c Column) QualifiedName() string {
	return quoteIdent(c.tableName) + "." + quoteIdent(c.columnName)
}

// TypedColumn wraps a Column with the Go type the column decodes to.
// The comparison constructors below each return a new Filter leaf holding
// the supplied value; they never mutate the column and cannot fail — a value
// of the wrong type is rejected by the compiler at the call site.
type TypedColumn[T any] struct {
	Column
}

// NewTypedColumn creates a typed column handle.
func NewTypedColumn[T any](table, column string) TypedColumn[T] {
	return TypedColumn[T]{Column: NewColumn(table, column)}
}

// Eq filters for rows where the column equals value.
func (c TypedColumn[T]) Eq(value T) Filter {
	return newCompare(c.Column, "=", value)
}

// Neq filters for rows where the column does not equal value.
func (c TypedColumn[T]) Neq(value T) Filter {
	return newCompare(c.Column, "<>", value)
}

// Lt filters for rows where the column is less than value.
func (c TypedColumn[T]) Lt(value T) Filter {
	return newCompare(c.Column, "<", value)
}

// Gt filters for rows where the column is greater than value.
func (c TypedColumn[T]) Gt(value T) Filter {
	return newCompare(c.Column, ">", value)
}

// Lte filters for rows where the column is less than or equal to value.
func (c TypedColumn[T]) Lte(value T) Filter {
	return newCompare(c.Column, "<=", value)
}

// Gte filters for rows where the column is greater than or equal to value.
func (c TypedColumn[T]) Gte(value T) Filter {
	return newCompare(c.Column, ">=", value)
}

// OneOf filters for rows where the column equals one of values.
// With no values it compiles to FALSE: an empty set contains nothing,
// so no row can match.
func (c TypedColumn[T]) OneOf(values ...T) Filter {
	return Filter{node: inSetNode{col: c.Column, values: toAnySlice(values)}}
}

// NoneOf filters for rows where the column equals none of values.
// With no values it compiles to TRUE: every row vacuously avoids the
// empty set.
func (c TypedColumn[T]) NoneOf(values ...T) Filter {
	return Filter{node: inSetNode{col: c.Column, values: toAnySlice(values), negate: true}}
}

// TextColumn is a TypedColumn for text values, adding pattern matching.
type TextColumn struct {
	TypedColumn[string]
}

// NewTextColumn creates a text column handle.
func NewTextColumn(table, column string) TextColumn {
	return TextColumn{TypedColumn: NewTypedColumn[string](table, column)}
}

// Like filters for rows where the column matches the LIKE pattern.
// Check for a substring with a pattern like "%sub%".
func (c TextColumn) Like(pattern string) Filter {
	return Filter{node: patternNode{col: c.Column, pattern: pattern}}
}

// NullColumn is a TypedColumn for nullable values, adding null checks.
// The type parameter is the non-null value type; the corresponding model
// field is a *T or sql.Null[T].
type NullColumn[T any] struct {
	TypedColumn[T]
}

// NewNullColumn creates a nullable column handle.
func NewNullColumn[T any](table, column string) NullColumn[T] {
	return NullColumn[T]{TypedColumn: NewTypedColumn[T](table, column)}
}

// Null filters for rows where the column is NULL.
func (c NullColumn[T]) Null() Filter {
	return Filter{node: isNullNode{col: c.Column}}
}

// NotNull filters for rows where the column is not NULL.
func (c NullColumn[T]) NotNull() Filter {
	return Filter{node: isNullNode{col: c.Column, negate: true}}
}

// ArrayColumn is a column handle for PostgreSQL array columns.
// The type parameter is the element type.
type ArrayColumn[T any] struct {
	Column
}

// NewArrayColumn creates an array column handle.
func NewArrayColumn[T any](table, column string) ArrayColumn[T] {
	return ArrayColumn[T]{Column: NewColumn(table, column)}
}

// Empty filters for rows whose array has no elements, using cardinality.
func (c ArrayColumn[T]) Empty() Filter {
	return Filter{node: arrayEmptyNode{col: c.Column}}
}

// Contains filters for rows whose array contains value.
func (c ArrayColumn[T]) Contains(value T) Filter {
	return Filter{node: arrayContainsNode{col: c.Column, value: value}}
}

// toAnySlice widens a typed slice for storage in a filter node.
func toAnySlice[T any](values []T) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
