package core

import (
	"errors"

	"github.com/coregx/boz/internal/security"
)

// Predefined errors returned by the builder and the executor.
var (
	// ErrInsufficientJoinSource is recorded when a join has no previous table
	// or FROM fragment to extend.
	ErrInsufficientJoinSource = errors.New("not enough tables to join")
	// ErrBlockedUnsafeMutation is matched by every *BlockedUnsafeMutationError.
	ErrBlockedUnsafeMutation = errors.New("unsafe mutation blocked")
	// ErrMissingTableForInsert is returned by InsertRow when no table was selected.
	ErrMissingTableForInsert = errors.New("cannot insert without a table")
	// ErrMissingTableForDelete is returned by CompileDelete when no table was selected.
	ErrMissingTableForDelete = errors.New("cannot delete without a table")
	// ErrUnknownShape is returned when rows are requested in a shape that was never registered.
	ErrUnknownShape = errors.New("unknown result shape")
	// ErrUnsupportedColumnType is returned for a ColumnType outside the known set.
	ErrUnsupportedColumnType = errors.New("unsupported column type")
	// ErrColumnNotFound is returned by FetchValue when the result lacks the column.
	ErrColumnNotFound = errors.New("column not found in result")
	// ErrDangerousQuery is returned, wrapped, when the validator rejects a statement.
	ErrDangerousQuery = security.ErrDangerousQuery
)

// BlockReason tells why the safety gate refused a mutation.
type BlockReason int

const (
	// NoCondition means the statement had no WHERE condition.
	NoCondition BlockReason = iota + 1
	// MultiTableSource means the statement involved more than one table or FROM fragment.
	MultiTableSource
)

func (r BlockReason) String() string {
	switch r {
	case NoCondition:
		return "no condition"
	case MultiTableSource:
		return "multiple tables"
	default:
		return "unknown"
	}
}

// BlockedUnsafeMutationError is returned by Update and Delete when the
// statement would touch more than one table or has no condition. SQL holds
// the refused statement for diagnosis; it is not part of Error().
type BlockedUnsafeMutationError struct {
	Reason BlockReason
	SQL    string
}

func (e *BlockedUnsafeMutationError) Error() string {
	if e.Reason == MultiTableSource {
		return "for security reasons you cannot build this kind of query involving multiple tables"
	}
	return "for security reasons you cannot build this kind of query without a condition"
}

// Is reports ErrBlockedUnsafeMutation as a match.
func (e *BlockedUnsafeMutationError) Is(target error) bool {
	return target == ErrBlockedUnsafeMutation
}

// WrapError prefixes err with message, keeping it reachable through
// errors.Is and errors.As. A nil err stays nil.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		msg: message,
		err: err,
	}
}

type wrappedError struct {
	msg string
	err error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.err.Error()
}

func (e *wrappedError) Unwrap() error {
	return e.err
}
