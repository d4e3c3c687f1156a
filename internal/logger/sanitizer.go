package logger

import (
	"fmt"
	"regexp"
	"strings"
)

// RedactedValue replaces masked literals and arguments.
const RedactedValue = "***REDACTED***"

// DefaultSensitiveFields are column names whose values never reach the logs.
var DefaultSensitiveFields = []string{
	"password", "passwd", "pwd",
	"token", "api_key", "apikey", "api_token",
	"secret", "auth", "authorization",
	"credit_card", "card_number", "cvv", "cvc",
	"ssn", "social_security",
	"private_key", "priv_key",
}

// stringLiteral matches a single-quoted SQL literal, including backslash
// escapes and doubled quotes.
var stringLiteral = regexp.MustCompile(`'(?:[^'\\]|\\.|'')*'`)

// Sanitizer hides literal values of statements that touch sensitive columns.
// Statements are built with inline literals, so masking works on the SQL text
// itself rather than on bound parameters.
type Sanitizer struct {
	patterns []*regexp.Regexp
}

// NewSanitizer creates a sanitizer for the given column names, falling back to
// DefaultSensitiveFields when none are given.
func NewSanitizer(sensitiveFields []string) *Sanitizer {
	if len(sensitiveFields) == 0 {
		sensitiveFields = DefaultSensitiveFields
	}

	patterns := make([]*regexp.Regexp, 0, len(sensitiveFields))
	for _, field := range sensitiveFields {
		patterns = append(patterns, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(field)+`\b`))
	}
	return &Sanitizer{patterns: patterns}
}

// IsSensitive reports whether sql mentions a sensitive column outside of
// string literals.
func (s *Sanitizer) IsSensitive(sql string) bool {
	bare := stringLiteral.ReplaceAllString(sql, "''")
	for _, pattern := range s.patterns {
		if pattern.MatchString(bare) {
			return true
		}
	}
	return false
}

// RedactSQL returns sql with every string literal replaced by RedactedValue
// when the statement is sensitive, and sql unchanged otherwise.
func (s *Sanitizer) RedactSQL(sql string) string {
	if !s.IsSensitive(sql) {
		return sql
	}
	return stringLiteral.ReplaceAllString(sql, "'"+RedactedValue+"'")
}

// MaskArgs returns a copy of args with every value masked when sql is
// sensitive. The original slice is never modified.
func (s *Sanitizer) MaskArgs(sql string, args []any) []any {
	if len(args) == 0 || !s.IsSensitive(sql) {
		return args
	}
	masked := make([]any, len(args))
	for i := range args {
		masked[i] = RedactedValue
	}
	return masked
}

// FormatArgs renders args for a log line, truncating long values.
func (s *Sanitizer) FormatArgs(args []any) string {
	if len(args) == 0 {
		return "[]"
	}

	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = formatValue(a)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatValue(v any) string {
	if v == nil {
		return "NULL"
	}

	str := fmt.Sprintf("%v", v)

	const maxLen = 100
	if len(str) > maxLen {
		return str[:maxLen] + "..."
	}
	return str
}
