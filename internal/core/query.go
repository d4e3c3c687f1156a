package core

// Query accumulates the clauses of a single statement and compiles them to
// MySQL-style SQL text. Every clause method returns the same *Query so calls
// can be chained. A Query is not safe for concurrent use and is meant to be
// discarded after its terminal call.
//
// Example:
//
//	rows, err := db.Builder(core.WithShape("user")).
//	    Select("id", "name").
//	    From("user").
//	    WhereInt("active", 1).
//	    OrderBy("name").
//	    Limit(10).
//	    Results(ctx)
type Query struct {
	conn  Conn
	shape string

	fields     []string
	sources    sourceStack
	groups     []string
	having     string
	conditions string
	orders     string
	rowCount   *int
	offset     int
	forUpdate  bool

	// err is the first failure recorded by a chained call; compile and
	// execute calls return it.
	err error
}

// QueryOption configures a Query at construction time.
type QueryOption func(*Query)

// WithShape sets the default shape result rows are materialized into.
func WithShape(shape string) QueryOption {
	return func(q *Query) {
		q.shape = shape
	}
}

// NewQuery creates a Query bound to conn. The connection is never looked up
// implicitly; callers pass the one they own.
func NewQuery(conn Conn, opts ...QueryOption) *Query {
	q := &Query{conn: conn}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Err returns the first error recorded while building the query.
func (q *Query) Err() error {
	return q.err
}

// Select appends fields to the SELECT list. Without fields the query selects *.
func (q *Query) Select(fields ...string) *Query {
	q.fields = append(q.fields, fields...)
	return q
}

// From appends tables, given without the table prefix.
func (q *Query) From(tables ...string) *Query {
	for _, t := range tables {
		q.sources.push(sourceTable, t)
	}
	return q
}

// FromCustom appends a FROM fragment verbatim, e.g. "(SELECT ...) AS t1".
func (q *Query) FromCustom(fragment string) *Query {
	q.sources.push(sourceFragment, fragment)
	return q
}

// UniqueTables removes tables selected more than once.
func (q *Query) UniqueTables() *Query {
	q.sources.uniqueTables()
	return q
}

// GroupBy appends GROUP BY expressions.
func (q *Query) GroupBy(fields ...string) *Query {
	q.groups = append(q.groups, fields...)
	return q
}

// Having sets the HAVING expression, replacing any previous one.
func (q *Query) Having(expr string) *Query {
	q.having = expr
	return q
}

// OrderBy appends a sort field. The optional direction is normalized with
// FilterDirection.
func (q *Query) OrderBy(field string, direction ...string) *Query {
	if q.orders != "" {
		q.orders += ", "
	}
	q.orders += field
	if len(direction) > 0 && direction[0] != "" {
		q.orders += " " + FilterDirection(direction[0])
	}
	return q
}

// Limit sets the row count and the optional offset. Both replace any
// previous values, so Limit(10) after Limit(10, 5) drops the offset.
func (q *Query) Limit(rowCount int, offset ...int) *Query {
	q.rowCount = &rowCount
	q.offset = 0
	if len(offset) > 0 {
		q.offset = offset[0]
	}
	return q
}

// ForUpdate locks the selected rows until the end of the current transaction.
func (q *Query) ForUpdate() *Query {
	q.forUpdate = true
	return q
}

// DefaultShape replaces the default result shape.
func (q *Query) DefaultShape(shape string) *Query {
	q.shape = shape
	return q
}

// Shape returns override when it is not empty, the default shape otherwise.
func (q *Query) Shape(override string) string {
	if override != "" {
		return override
	}
	return q.shape
}
