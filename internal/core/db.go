// Package core implements the statement builder and the database handle it
// executes against.
package core

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/coregx/boz/internal/dialects"
	"github.com/coregx/boz/internal/logger"
	"github.com/coregx/boz/internal/security"
	"github.com/coregx/boz/internal/tracer"
)

// DB is the production Conn: it renders literals for its driver, applies the
// table prefix and runs statements with logging, tracing and auditing.
// DB is safe for concurrent use.
type DB struct {
	sqlDB      *sql.DB
	driverName string
	dialect    dialects.Dialect
	prefix     string
	debug      bool

	logger    logger.Logger
	sanitizer *logger.Sanitizer
	tracer    tracer.Tracer
	auditor   *security.Auditor
	validator *security.Validator

	scanner *scanner
	queries atomic.Int64
}

// Option is a functional option for configuring DB.
type Option func(*DB)

// WithMaxOpenConns sets the maximum number of open connections.
func WithMaxOpenConns(n int) Option {
	return func(db *DB) {
		db.sqlDB.SetMaxOpenConns(n)
	}
}

// WithMaxIdleConns sets the maximum number of idle connections.
func WithMaxIdleConns(n int) Option {
	return func(db *DB) {
		db.sqlDB.SetMaxIdleConns(n)
	}
}

// WithPrefix sets the prefix prepended to every table name.
func WithPrefix(prefix string) Option {
	return func(db *DB) {
		db.prefix = prefix
	}
}

// WithDebug makes refused mutations log their SQL text.
func WithDebug(debug bool) Option {
	return func(db *DB) {
		db.debug = debug
	}
}

// WithLogger sets the logger for executed statements.
func WithLogger(l logger.Logger) Option {
	return func(db *DB) {
		if l != nil {
			db.logger = l
		}
	}
}

// WithSanitizer replaces the sanitizer applied to logged SQL.
func WithSanitizer(s *logger.Sanitizer) Option {
	return func(db *DB) {
		if s != nil {
			db.sanitizer = s
		}
	}
}

// WithTracer sets the tracer wrapping every executed statement.
func WithTracer(t tracer.Tracer) Option {
	return func(db *DB) {
		if t != nil {
			db.tracer = t
		}
	}
}

// WithAuditor enables audit logging.
func WithAuditor(a *security.Auditor) Option {
	return func(db *DB) {
		db.auditor = a
	}
}

// WithValidator rejects statements the validator considers dangerous before
// they reach the driver.
func WithValidator(v *security.Validator) Option {
	return func(db *DB) {
		db.validator = v
	}
}

// NewDB creates a new DB instance.
func NewDB(driverName, dsn string) (*DB, error) {
	sqlDB, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}
	return WrapDB(sqlDB, driverName), nil
}

// Open creates a new DB instance with options.
func Open(driverName, dsn string, opts ...Option) (*DB, error) {
	db, err := NewDB(driverName, dsn)
	if err != nil {
		return nil, err
	}

	for _, opt := range opts {
		opt(db)
	}

	return db, nil
}

// WrapDB wraps an existing *sql.DB. The caller keeps ownership of sqlDB,
// but Close on the returned DB closes it.
func WrapDB(sqlDB *sql.DB, driverName string, opts ...Option) *DB {
	db := &DB{
		sqlDB:      sqlDB,
		driverName: driverName,
		dialect:    dialects.GetDialect(driverName),
		logger:     &logger.NoopLogger{},
		sanitizer:  logger.NewSanitizer(nil),
		tracer:     tracer.NoopTracer{},
		scanner:    newScanner(),
	}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

// Close releases all database resources.
func (db *DB) Close() error {
	return db.sqlDB.Close()
}

// Builder returns a new statement builder bound to db.
func (db *DB) Builder(opts ...QueryOption) *Query {
	return NewQuery(db, opts...)
}

// RegisterShape makes rows requested in shape name scan into new values of
// prototype's struct type. Columns map to fields by db tag, else by the
// lower-cased field name; unmapped columns are dropped.
func (db *DB) RegisterShape(name string, prototype any) error {
	return db.scanner.register(name, prototype)
}

// Queries returns the number of statements executed so far.
func (db *DB) Queries() int64 {
	return db.queries.Load()
}

// Prefix returns the table prefix.
func (db *DB) Prefix() string {
	return db.prefix
}

// DriverName returns the database/sql driver name.
func (db *DB) DriverName() string {
	return db.driverName
}

// ExecContext executes a raw SQL statement with arguments, bypassing the
// builder, validation and logging. It is meant for schema setup.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.sqlDB.ExecContext(ctx, query, args...)
}

// EscapeString escapes s for a single-quoted literal of the driver.
func (db *DB) EscapeString(s string) string {
	return db.dialect.EscapeString(s)
}

// TableName returns the quoted, prefixed table name, aliased back to name
// when alias is true.
func (db *DB) TableName(name string, alias bool) string {
	full := db.dialect.QuoteIdentifier(db.prefix + name)
	if alias {
		full += " AS " + db.dialect.QuoteIdentifier(name)
	}
	return full
}

// ForceType renders value as a literal of type typ.
func (db *DB) ForceType(value any, typ ColumnType) string {
	return renderValue(value, typ, db.dialect.EscapeString)
}

// LikeEscape returns the dialect's LIKE escape clause.
func (db *DB) LikeEscape() string {
	return db.dialect.LikeEscape()
}

// MultiTableDelete reports whether the dialect understands "DELETE t FROM ...".
func (db *DB) MultiTableDelete() bool {
	return db.dialect.MultiTableDelete()
}

// MutationBlocked records a statement refused by the safety gate. The SQL
// text is only logged or audited in debug mode.
func (db *DB) MutationBlocked(ctx context.Context, query string, err *BlockedUnsafeMutationError) {
	if db.debug {
		db.logger.Error("unsafe mutation blocked",
			"sql", db.sanitizer.RedactSQL(query),
			"reason", err.Reason.String(),
			"database", db.driverName,
		)
	}
	if db.auditor != nil {
		db.auditor.LogBlocked(ctx, query, err, db.debug)
	}
}

var (
	_ Conn             = (*DB)(nil)
	_ MutationObserver = (*DB)(nil)
)
