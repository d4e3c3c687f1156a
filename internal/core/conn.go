package core

import (
	"context"
	"database/sql"
	"iter"
)

// Escaper renders values and table names for a specific connection.
type Escaper interface {
	// EscapeString escapes s for use inside a single-quoted literal.
	EscapeString(s string) string
	// TableName applies the table prefix and, when alias is true, aliases
	// the prefixed table back to its bare name.
	TableName(name string, alias bool) string
	// ForceType renders value as a literal of the given column type.
	ForceType(value any, typ ColumnType) string
	// LikeEscape is appended after a LIKE pattern, "" when backslash is
	// already the escape character.
	LikeEscape() string
	// MultiTableDelete reports whether DELETE may name its target before
	// FROM. Without it DELETE renders as "DELETE FROM <table>".
	MultiTableDelete() bool
}

// Executor runs compiled statements.
type Executor interface {
	Exec(ctx context.Context, query string) (sql.Result, error)
	FetchAll(ctx context.Context, query, shape string, args ...any) ([]any, error)
	// FetchOne returns nil and no error when the statement yields no rows.
	FetchOne(ctx context.Context, query, shape string, args ...any) (any, error)
	FetchValue(ctx context.Context, query, column string) (any, error)
	Iterate(ctx context.Context, query, shape string, args ...any) iter.Seq2[any, error]
	InsertRow(ctx context.Context, table string, cols []Column, opts ...InsertOption) (sql.Result, error)
}

// Conn is everything a Query needs from its environment.
type Conn interface {
	Escaper
	Executor
}

// MutationObserver is implemented by connections that want to know about
// statements refused by the safety gate.
type MutationObserver interface {
	MutationBlocked(ctx context.Context, query string, err *BlockedUnsafeMutationError)
}

// InsertOptions modify INSERT statements.
type InsertOptions struct {
	// Replace renders REPLACE INTO instead of INSERT INTO.
	Replace bool
	// Ignore renders INSERT IGNORE (INSERT OR IGNORE on sqlite).
	Ignore bool
}

// InsertOption configures InsertOptions.
type InsertOption func(*InsertOptions)

// WithReplace makes the insert a REPLACE INTO.
func WithReplace() InsertOption {
	return func(o *InsertOptions) { o.Replace = true }
}

// WithIgnore makes the insert skip rows that violate a unique key.
func WithIgnore() InsertOption {
	return func(o *InsertOptions) { o.Ignore = true }
}
