package core

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"iter"
)

// mockDB returns a DB that can render statements but has no connection.
func mockDB(dialectName string, opts ...Option) *DB {
	return WrapDB(nil, dialectName, opts...)
}

type call struct {
	method string
	query  string
	shape  string
	args   []any
	table  string
	cols   []Column
}

// recordingConn escapes like a MySQL DB and records executor calls instead
// of running them.
type recordingConn struct {
	*DB
	calls   []call
	blocked []*BlockedUnsafeMutationError
	rows    []any
}

func newRecordingConn(opts ...Option) *recordingConn {
	return &recordingConn{DB: mockDB("mysql", opts...)}
}

func (c *recordingConn) Exec(_ context.Context, query string) (sql.Result, error) {
	c.calls = append(c.calls, call{method: "Exec", query: query})
	return driver.RowsAffected(1), nil
}

func (c *recordingConn) FetchAll(_ context.Context, query, shape string, args ...any) ([]any, error) {
	c.calls = append(c.calls, call{method: "FetchAll", query: query, shape: shape, args: args})
	return c.rows, nil
}

func (c *recordingConn) FetchOne(_ context.Context, query, shape string, args ...any) (any, error) {
	c.calls = append(c.calls, call{method: "FetchOne", query: query, shape: shape, args: args})
	if len(c.rows) == 0 {
		return nil, nil
	}
	return c.rows[0], nil
}

func (c *recordingConn) FetchValue(_ context.Context, query, column string) (any, error) {
	c.calls = append(c.calls, call{method: "FetchValue", query: query, shape: column})
	return nil, nil
}

func (c *recordingConn) Iterate(_ context.Context, query, shape string, args ...any) iter.Seq2[any, error] {
	c.calls = append(c.calls, call{method: "Iterate", query: query, shape: shape, args: args})
	return func(yield func(any, error) bool) {
		for _, r := range c.rows {
			if !yield(r, nil) {
				return
			}
		}
	}
}

func (c *recordingConn) InsertRow(_ context.Context, table string, cols []Column, _ ...InsertOption) (sql.Result, error) {
	c.calls = append(c.calls, call{method: "InsertRow", table: table, cols: cols})
	return driver.RowsAffected(1), nil
}

func (c *recordingConn) MutationBlocked(_ context.Context, _ string, err *BlockedUnsafeMutationError) {
	c.blocked = append(c.blocked, err)
}
