package core

import (
	"context"
	"database/sql"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/coregx/boz/internal/tracer"
)

// Exec runs a statement that returns no rows.
func (db *DB) Exec(ctx context.Context, query string) (sql.Result, error) {
	if err := db.validate(ctx, query); err != nil {
		return nil, err
	}

	ctx, span := db.tracer.StartSpan(ctx, "boz.exec")
	defer span.End()

	start := time.Now()
	result, err := db.sqlDB.ExecContext(ctx, query)
	elapsed := time.Since(start)

	var affected int64
	if err == nil {
		affected, _ = result.RowsAffected()
	}
	db.finish(ctx, span, tracer.Statement{
		SQL:          query,
		System:       db.driverName,
		Duration:     elapsed,
		RowsAffected: affected,
		Err:          err,
	}, nil, result)

	return result, err
}

// FetchAll returns every row of query in shape.
func (db *DB) FetchAll(ctx context.Context, query, shape string, args ...any) ([]any, error) {
	var out []any
	err := db.query(ctx, "boz.fetch_all", query, shape, args, func(row any) bool {
		out = append(out, row)
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FetchOne returns the first row of query in shape, or nil when there is none.
func (db *DB) FetchOne(ctx context.Context, query, shape string, args ...any) (any, error) {
	var first any
	err := db.query(ctx, "boz.fetch_one", query, shape, args, func(row any) bool {
		first = row
		return false
	})
	if err != nil {
		return nil, err
	}
	return first, nil
}

// FetchValue returns column from the first row of query, nil when there is no
// row or the value is NULL.
func (db *DB) FetchValue(ctx context.Context, query, column string) (any, error) {
	row, err := db.FetchOne(ctx, query, "")
	if err != nil || row == nil {
		return nil, err
	}
	r := row.(Row)
	if !r.Has(column) {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, column)
	}
	return r.Value(column), nil
}

// Iterate streams the rows of query in shape. A failure is yielded once,
// with a nil row, and ends the sequence.
func (db *DB) Iterate(ctx context.Context, query, shape string, args ...any) iter.Seq2[any, error] {
	return func(yield func(any, error) bool) {
		stopped := false
		err := db.query(ctx, "boz.iterate", query, shape, args, func(row any) bool {
			if !yield(row, nil) {
				stopped = true
				return false
			}
			return true
		})
		if err != nil && !stopped {
			yield(nil, err)
		}
	}
}

// InsertRow inserts one row into table. Column names are quoted; values are
// rendered with ForceType.
func (db *DB) InsertRow(ctx context.Context, table string, cols []Column, opts ...InsertOption) (sql.Result, error) {
	var o InsertOptions
	for _, opt := range opts {
		opt(&o)
	}
	if err := validateColumns(cols); err != nil {
		return nil, err
	}

	names := make([]string, len(cols))
	values := make([]string, len(cols))
	for i, c := range cols {
		names[i] = db.dialect.QuoteIdentifier(c.Name)
		values[i] = db.ForceType(c.Value, c.Type)
	}

	var sb strings.Builder
	sb.WriteString(db.dialect.InsertVerb(o.Replace, o.Ignore))
	sb.WriteString(" ")
	sb.WriteString(db.TableName(table, false))
	sb.WriteString(" (")
	sb.WriteString(strings.Join(names, ", "))
	sb.WriteString(") VALUES (")
	sb.WriteString(strings.Join(values, ", "))
	sb.WriteString(")")

	return db.Exec(ctx, sb.String())
}

// query runs a row-returning statement, handing each row to each until it
// returns false.
func (db *DB) query(ctx context.Context, name, query, shape string, args []any, each func(any) bool) error {
	if err := db.validate(ctx, query); err != nil {
		return err
	}

	ctx, span := db.tracer.StartSpan(ctx, name)
	defer span.End()

	start := time.Now()
	n, err := db.scan(ctx, query, shape, args, each)
	db.finish(ctx, span, tracer.Statement{
		SQL:      query,
		System:   db.driverName,
		Shape:    shape,
		Duration: time.Since(start),
		Rows:     n,
		Err:      err,
	}, args, nil)

	return err
}

func (db *DB) scan(ctx context.Context, query, shape string, args []any, each func(any) bool) (int, error) {
	rows, err := db.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	defer func() { _ = rows.Close() }()

	plan, err := db.scanner.plan(rows, shape)
	if err != nil {
		return 0, err
	}

	n := 0
	for rows.Next() {
		row, err := plan.scan(rows)
		if err != nil {
			return n, err
		}
		n++
		if !each(row) {
			return n, nil
		}
	}
	if err := rows.Err(); err != nil {
		return n, WrapError(err, "scanner: rows iteration failed")
	}
	return n, nil
}

// validate runs the optional validator.
func (db *DB) validate(ctx context.Context, query string) error {
	if db.validator == nil {
		return nil
	}
	err := db.validator.ValidateQuery(query)
	if err == nil {
		return nil
	}

	db.logger.Warn("statement rejected",
		"sql", db.sanitizer.RedactSQL(query),
		"database", db.driverName,
		"error", err,
	)
	if db.auditor != nil {
		db.auditor.LogBlocked(ctx, query, err, db.debug)
	}
	return err
}

// finish counts, traces, logs and audits one executed statement.
func (db *DB) finish(ctx context.Context, span tracer.Span, st tracer.Statement, args []any, result sql.Result) {
	db.queries.Add(1)
	tracer.Annotate(span, st)

	redacted := db.sanitizer.RedactSQL(st.SQL)
	params := db.sanitizer.FormatArgs(db.sanitizer.MaskArgs(st.SQL, args))
	if st.Err != nil {
		db.logger.Error("statement failed",
			"sql", redacted,
			"args", params,
			"duration_ms", st.Duration.Milliseconds(),
			"database", st.System,
			"error", st.Err,
		)
	} else {
		db.logger.Info("statement executed",
			"sql", redacted,
			"args", params,
			"duration_ms", st.Duration.Milliseconds(),
			"rows_affected", st.RowsAffected,
			"database", st.System,
		)
	}

	if db.auditor != nil {
		db.auditor.LogStatement(ctx, st.SQL, result, st.Err, st.Duration)
	}
}
