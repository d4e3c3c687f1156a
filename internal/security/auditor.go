package security

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/coregx/boz/internal/logger"
	"github.com/coregx/boz/internal/tracer"
)

// AuditLevel selects which statements are audited.
type AuditLevel int

const (
	// AuditNone disables auditing, refused statements included.
	AuditNone AuditLevel = iota
	// AuditWrites records INSERT, REPLACE, UPDATE and DELETE.
	AuditWrites
	// AuditAll records every statement, reads included.
	AuditAll
)

// ParseAuditLevel parses none, writes or all. The empty string is AuditNone.
func ParseAuditLevel(s string) (AuditLevel, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return AuditNone, nil
	case "writes":
		return AuditWrites, nil
	case "all":
		return AuditAll, nil
	default:
		return AuditNone, fmt.Errorf("security: unknown audit level %q", s)
	}
}

// AuditEvent is one audited statement.
type AuditEvent struct {
	Timestamp    time.Time `json:"timestamp"`
	User         string    `json:"user,omitempty"`
	RequestID    string    `json:"request_id,omitempty"`
	Operation    string    `json:"operation"`
	Table        string    `json:"table,omitempty"`
	SQL          string    `json:"sql"`
	AffectedRows int64     `json:"affected_rows"`
	Success      bool      `json:"success"`
	Error        string    `json:"error,omitempty"`
	Duration     int64     `json:"duration_ms,omitempty"`
}

// Auditor writes audit events to a logger.
type Auditor struct {
	logger    logger.Logger
	sanitizer *logger.Sanitizer
	level     AuditLevel
}

// NewAuditor creates an auditor. SQL text is redacted with the default
// sanitizer before it is written.
func NewAuditor(l logger.Logger, level AuditLevel) *Auditor {
	return &Auditor{logger: l, sanitizer: logger.NewSanitizer(nil), level: level}
}

// LogStatement records an executed statement if the audit level covers it.
func (a *Auditor) LogStatement(ctx context.Context, query string, result sql.Result, err error, elapsed time.Duration) {
	op := tracer.Operation(query)
	if !a.covers(op) {
		return
	}

	event := a.newEvent(ctx, op, query)
	event.Success = err == nil
	event.Duration = elapsed.Milliseconds()
	if err != nil {
		event.Error = err.Error()
	} else if result != nil {
		event.AffectedRows, _ = result.RowsAffected()
	}

	log := a.logger.Info
	if !event.Success {
		log = a.logger.Warn
	}
	log("audit_event", a.fields(event)...)
}

// LogBlocked records a statement refused before execution. The statement
// text is only written when withSQL is set.
func (a *Auditor) LogBlocked(ctx context.Context, query string, reason error, withSQL bool) {
	if a.level == AuditNone {
		return
	}
	event := a.newEvent(ctx, tracer.Operation(query), query)
	event.Error = reason.Error()
	if !withSQL {
		event.SQL = ""
	}
	a.logger.Warn("security_event", append([]any{"event_type", "mutation_blocked"}, a.fields(event)...)...)
}

func (a *Auditor) covers(op string) bool {
	switch a.level {
	case AuditAll:
		return true
	case AuditWrites:
		return op == "INSERT" || op == "REPLACE" || op == "UPDATE" || op == "DELETE"
	default:
		return false
	}
}

func (a *Auditor) newEvent(ctx context.Context, op, query string) AuditEvent {
	return AuditEvent{
		Timestamp: time.Now().UTC(),
		User:      UserFrom(ctx),
		RequestID: RequestIDFrom(ctx),
		Operation: op,
		Table:     TableOf(query),
		SQL:       a.sanitizer.RedactSQL(query),
	}
}

func (a *Auditor) fields(e AuditEvent) []any {
	fields := []any{
		"timestamp", e.Timestamp,
		"user", e.User,
		"request_id", e.RequestID,
		"operation", e.Operation,
		"table", e.Table,
	}
	if e.SQL != "" {
		fields = append(fields, "sql", e.SQL)
	}
	return append(fields,
		"affected_rows", e.AffectedRows,
		"success", e.Success,
		"error", e.Error,
		"duration_ms", e.Duration,
	)
}

var tablePatterns = []*regexp.Regexp{
	regexp.MustCompile("(?i)^\\s*DELETE\\s+\\S+\\s+FROM\\s+(`[^`]+`|\\S+)"),
	regexp.MustCompile("(?i)^\\s*UPDATE\\s+(`[^`]+`|\\S+)"),
	regexp.MustCompile("(?i)^\\s*(?:INSERT|REPLACE)\\b.*?\\bINTO\\s+(`[^`]+`|\\S+)"),
	regexp.MustCompile("(?i)\\bFROM\\s+(`[^`]+`|[^\\s(]+)"),
}

// TableOf returns the first table a statement operates on, unquoted, or an
// empty string when it cannot tell.
func TableOf(query string) string {
	for _, re := range tablePatterns {
		if m := re.FindStringSubmatch(query); m != nil {
			return strings.Trim(m[1], "`")
		}
	}
	return ""
}

type contextKey string

const (
	userKey      contextKey = "boz:user"
	requestIDKey contextKey = "boz:request_id"
)

// WithUser attaches the acting user to ctx for audit events.
func WithUser(ctx context.Context, user string) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// WithRequestID attaches a request ID to ctx for audit events.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// UserFrom returns the user stored by WithUser.
func UserFrom(ctx context.Context) string {
	user, _ := ctx.Value(userKey).(string)
	return user
}

// RequestIDFrom returns the request ID stored by WithRequestID.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
