package pgq

// JoinKind selects the SQL join variant.
type JoinKind int

// The supported join kinds.
const (
	InnerJoin JoinKind = iota
	LeftJoin
	RightJoin
	FullJoin
)

// keyword returns the SQL keyword prefix for the join kind.
func (k JoinKind) keyword() string {
	switch k {
	case LeftJoin:
		return "LEFT"
	case RightJoin:
		return "RIGHT"
	case FullJoin:
		return "FULL"
	}
	return "INNER"
}

// Join correlates two tables on a pair of columns. Joins render in the order
// they were added to a builder:
//
//	INNER JOIN "author" ON "book"."author_id" = "author"."id"
//
// No join-graph validation happens beyond the distinct-table check; cyclic or
// redundant joins are the caller's responsibility.
type Join struct {
	left  Column
	right Column
	kind  JoinKind
}

// NewJoin creates a join of the right column's table onto the left column's
// table. It panics if both columns belong to the same table: self-joins need
// an aliasing scheme this package does not provide.
func NewJoin(left, right Column, kind JoinKind) Join {
	if left.tableName == right.tableName {
		panic("pgq: join requires columns from two distinct tables, got " + left.tableName + " twice")
	}
	return Join{left: left, right: right, kind: kind}
}

func (j Join) appendTo(c *compiler) {
	c.write(j.kind.keyword())
	c.write(" JOIN ")
	c.write(quoteIdent(j.right.tableName))
	c.write(" ON ")
	c.ident(j.left)
	c.write(" = ")
	c.ident(j.right)
}
