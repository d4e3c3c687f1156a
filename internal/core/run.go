package core

import (
	"context"
	"database/sql"
	"iter"
)

// Run executes the SELECT statement and returns the raw result.
func (q *Query) Run(ctx context.Context) (sql.Result, error) {
	query, err := q.CompileSelect()
	if err != nil {
		return nil, err
	}
	return q.conn.Exec(ctx, query)
}

// Results returns every row in the default shape. args are handed to the
// executor untouched.
func (q *Query) Results(ctx context.Context, args ...any) ([]any, error) {
	return q.ResultsAs(ctx, "", args...)
}

// ResultsAs returns every row in the given shape, or the default shape when
// shape is empty.
func (q *Query) ResultsAs(ctx context.Context, shape string, args ...any) ([]any, error) {
	query, err := q.CompileSelect()
	if err != nil {
		return nil, err
	}
	return q.conn.FetchAll(ctx, query, q.Shape(shape), args...)
}

// Row returns the first row in the default shape, or nil when there is none.
func (q *Query) Row(ctx context.Context, args ...any) (any, error) {
	return q.RowAs(ctx, "", args...)
}

// RowAs returns the first row in the given shape, or nil when there is none.
func (q *Query) RowAs(ctx context.Context, shape string, args ...any) (any, error) {
	query, err := q.CompileSelect()
	if err != nil {
		return nil, err
	}
	return q.conn.FetchOne(ctx, query, q.Shape(shape), args...)
}

// Value returns column from the first row.
func (q *Query) Value(ctx context.Context, column string) (any, error) {
	query, err := q.CompileSelect()
	if err != nil {
		return nil, err
	}
	return q.conn.FetchValue(ctx, query, column)
}

// Each iterates the rows in the default shape without loading them all.
//
//	for row, err := range q.Each(ctx) {
//	    if err != nil {
//	        return err
//	    }
//	    ...
//	}
func (q *Query) Each(ctx context.Context, args ...any) iter.Seq2[any, error] {
	query, err := q.CompileSelect()
	if err != nil {
		return func(yield func(any, error) bool) {
			yield(nil, err)
		}
	}
	return q.conn.Iterate(ctx, query, q.Shape(""), args...)
}

// InsertRow inserts one row into the first selected table.
func (q *Query) InsertRow(ctx context.Context, cols []Column, opts ...InsertOption) (sql.Result, error) {
	if q.err != nil {
		return nil, q.err
	}
	tables := q.sources.tables()
	if len(tables) == 0 || tables[0] == "" {
		return nil, ErrMissingTableForInsert
	}
	if err := validateColumns(cols); err != nil {
		return nil, err
	}
	return q.conn.InsertRow(ctx, tables[0], cols, opts...)
}

// Update assigns cols on the rows matching the conditions.
//
// The statement only runs when it has a condition and involves exactly one
// table or FROM fragment. Otherwise a *BlockedUnsafeMutationError is
// returned and nothing is executed.
func (q *Query) Update(ctx context.Context, cols []Column) (sql.Result, error) {
	if q.err != nil {
		return nil, q.err
	}
	query, err := q.CompileUpdate(cols)
	return q.mutate(ctx, query, err)
}

// Delete removes the rows matching the conditions, under the same rules as
// Update.
func (q *Query) Delete(ctx context.Context) (sql.Result, error) {
	if q.err != nil {
		return nil, q.err
	}
	query, err := q.CompileDelete()
	return q.mutate(ctx, query, err)
}

func (q *Query) mutate(ctx context.Context, query string, compileErr error) (sql.Result, error) {
	if blocked := q.gate(query); blocked != nil {
		if obs, ok := q.conn.(MutationObserver); ok {
			obs.MutationBlocked(ctx, query, blocked)
		}
		return nil, blocked
	}
	if compileErr != nil {
		return nil, compileErr
	}
	return q.conn.Exec(ctx, query)
}

// gate returns the reason a mutation must not run, or nil.
func (q *Query) gate(query string) *BlockedUnsafeMutationError {
	switch {
	case q.conditions == "":
		return &BlockedUnsafeMutationError{Reason: NoCondition, SQL: query}
	case q.sources.len() != 1:
		return &BlockedUnsafeMutationError{Reason: MultiTableSource, SQL: query}
	}
	return nil
}
