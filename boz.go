// Package boz builds MySQL-style SQL statements clause by clause and runs
// them through a database handle that logs, traces and audits every
// statement. UPDATE and DELETE only run when they have a condition and
// involve a single table.
//
//	db, err := boz.Open("mysql", dsn, boz.WithPrefix("wp_"))
//	...
//	rows, err := db.Builder().
//	    Select("ID", "post_title").
//	    From("posts").
//	    WhereStr("post_status", "publish").
//	    OrderBy("post_date", "DESC").
//	    Limit(10).
//	    Results(ctx)
package boz

import (
	"github.com/coregx/boz/internal/core"
	"github.com/coregx/boz/internal/logger"
	"github.com/coregx/boz/internal/security"
	"github.com/coregx/boz/internal/tracer"
)

type (
	// DB is the database handle statements run against.
	DB = core.DB
	// Option is a functional option for configuring DB.
	Option = core.Option
	// Query accumulates clauses and compiles them to SQL.
	Query = core.Query
	// QueryOption configures a Query.
	QueryOption = core.QueryOption
	// Conn is what a Query needs from its environment.
	Conn = core.Conn
	// Escaper renders literals and table names.
	Escaper = core.Escaper
	// Executor runs compiled statements.
	Executor = core.Executor
	// MutationObserver is notified of mutations refused by the safety gate.
	MutationObserver = core.MutationObserver
	// Glue joins conditions.
	Glue = core.Glue
	// Column is a typed column assignment.
	Column = core.Column
	// ColumnType tells how a value is rendered.
	ColumnType = core.ColumnType
	// Row is the default result shape.
	Row = core.Row
	// InsertOption configures InsertRow.
	InsertOption = core.InsertOption
	// BlockedUnsafeMutationError is returned when the safety gate refuses a mutation.
	BlockedUnsafeMutationError = core.BlockedUnsafeMutationError
	// BlockReason tells why a mutation was refused.
	BlockReason = core.BlockReason

	// Logger is the structured logger DB writes to.
	Logger = logger.Logger
	// Sanitizer redacts literals of sensitive statements before logging.
	Sanitizer = logger.Sanitizer
	// Tracer opens a span around every statement.
	Tracer = tracer.Tracer
	// Auditor records mutations and refused statements.
	Auditor = security.Auditor
	// AuditLevel selects which statements are audited.
	AuditLevel = security.AuditLevel
	// Validator rejects statements carrying injected constructs.
	Validator = security.Validator
)

// Audit levels.
const (
	AuditNone   = security.AuditNone
	AuditWrites = security.AuditWrites
	AuditAll    = security.AuditAll
)

// Glues.
const (
	And = core.And
	Or  = core.Or
)

// Column types.
const (
	TypeString = core.TypeString
	TypeInt    = core.TypeInt
	TypeFloat  = core.TypeFloat
	TypeBool   = core.TypeBool
	TypeNull   = core.TypeNull
	TypeRaw    = core.TypeRaw
)

// Logging backends accepted by NewLogger.
const (
	LogBackendSlog = logger.BackendSlog
	LogBackendZap  = logger.BackendZap
	LogBackendNone = logger.BackendNone
)

// Block reasons.
const (
	NoCondition      = core.NoCondition
	MultiTableSource = core.MultiTableSource
)

// Errors.
var (
	ErrInsufficientJoinSource = core.ErrInsufficientJoinSource
	ErrBlockedUnsafeMutation  = core.ErrBlockedUnsafeMutation
	ErrMissingTableForInsert  = core.ErrMissingTableForInsert
	ErrMissingTableForDelete  = core.ErrMissingTableForDelete
	ErrUnknownShape           = core.ErrUnknownShape
	ErrUnsupportedColumnType  = core.ErrUnsupportedColumnType
	ErrColumnNotFound         = core.ErrColumnNotFound
	ErrDangerousQuery         = core.ErrDangerousQuery
)

// Re-export core functions.
var (
	Open             = core.Open
	NewDB            = core.NewDB
	WrapDB           = core.WrapDB
	NewQuery         = core.NewQuery
	WithMaxOpenConns = core.WithMaxOpenConns
	WithMaxIdleConns = core.WithMaxIdleConns
	WithPrefix       = core.WithPrefix
	WithDebug        = core.WithDebug
	WithLogger       = core.WithLogger
	WithSanitizer    = core.WithSanitizer
	WithTracer       = core.WithTracer
	WithAuditor      = core.WithAuditor
	WithValidator    = core.WithValidator
	WithShape        = core.WithShape
	WithReplace      = core.WithReplace
	WithIgnore       = core.WithIgnore

	// Column constructors
	NewColumn = core.NewColumn
	Int       = core.Int
	Str       = core.Str
	Raw       = core.Raw

	FilterDirection = core.FilterDirection

	// Ambient stack
	NewLogger      = logger.New
	NewSlogAdapter = logger.NewSlogAdapter
	NewZapAdapter  = logger.NewZapAdapter
	NewSanitizer   = logger.NewSanitizer
	NewOtelTracer  = tracer.NewOtelTracer
	NewAuditor     = security.NewAuditor
	NewValidator   = security.NewValidator
	WithStrict     = security.WithStrict
	WithUser       = security.WithUser
	WithRequestID  = security.WithRequestID
)

// Values converts a typed slice for Query.WhereSomethingIn.
func Values[T any](values []T) []any {
	return core.Values(values)
}
