// Package security guards statement execution: an opt-in validator that
// rejects injected constructs, and an auditor that records mutations and
// statements refused by the safety gate.
package security

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrDangerousQuery is returned when a statement contains a blocked construct.
var ErrDangerousQuery = errors.New("dangerous SQL construct")

// Validator inspects compiled statements before they reach the driver.
// Patterns are matched against the statement with every string literal
// blanked out, so escaped user input cannot trigger false positives.
type Validator struct {
	patterns []namedPattern
}

type namedPattern struct {
	name string
	re   *regexp.Regexp
}

// ValidatorOption configures the Validator.
type ValidatorOption func(*Validator)

// WithStrict adds patterns that may reject legitimate reporting queries
// (any UNION, any EXEC).
func WithStrict() ValidatorOption {
	return func(v *Validator) {
		v.patterns = append(v.patterns, compile(strictPatterns)...)
	}
}

// NewValidator creates a validator with the default patterns.
func NewValidator(opts ...ValidatorOption) *Validator {
	v := &Validator{patterns: compile(defaultPatterns)}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

var defaultPatterns = [][2]string{
	{"line comment", `--(\s|$)`},
	{"block comment", `/\*`},
	{"hash comment", `#(\s|$)`},
	{"stacked statement", `;\s*\S`},
	{"union select", `\bUNION\s+(ALL\s+)?SELECT\b`},
	{"sleep", `\b(SLEEP|BENCHMARK)\s*\(`},
	{"file access", `\b(LOAD_FILE\s*\(|INTO\s+(OUT|DUMP)FILE\b)`},
	{"tautology", `\bOR\s+1\s*=\s*1\b`},
}

var strictPatterns = [][2]string{
	{"union", `\bUNION\b`},
	{"exec", `\bEXEC(UTE)?\b`},
	{"information schema", `\bINFORMATION_SCHEMA\b`},
}

// literal matches single- and double-quoted MySQL string literals.
var literal = regexp.MustCompile(`'(?:[^'\\]|\\.|'')*'|"(?:[^"\\]|\\.|"")*"`)

// ValidateQuery returns an error wrapping ErrDangerousQuery when query
// contains a blocked construct outside of string literals.
func (v *Validator) ValidateQuery(query string) error {
	bare := strings.ToUpper(literal.ReplaceAllString(query, "''"))
	for _, p := range v.patterns {
		if p.re.MatchString(bare) {
			return fmt.Errorf("%w: %s", ErrDangerousQuery, p.name)
		}
	}
	return nil
}

func compile(patterns [][2]string) []namedPattern {
	out := make([]namedPattern, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, namedPattern{name: p[0], re: regexp.MustCompile(p[1])})
	}
	return out
}
