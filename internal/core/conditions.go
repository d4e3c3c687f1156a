package core

import (
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/coregx/boz/internal/dialects"
)

// Glue joins a condition to the ones already present.
type Glue string

// Supported glues.
const (
	And Glue = "AND"
	Or  Glue = "OR"
)

func glueOf(glue []Glue) Glue {
	if len(glue) > 0 && glue[0] != "" {
		return glue[0]
	}
	return And
}

func verbOf(verb []string, def string) string {
	if len(verb) > 0 && verb[0] != "" {
		return verb[0]
	}
	return def
}

// Where appends a raw condition such as "a.id = 1". The glue defaults to AND
// and is only inserted when a condition is already present.
func (q *Query) Where(condition string, glue ...Glue) *Query {
	if q.conditions != "" {
		q.conditions += " " + string(glueOf(glue)) + " "
	}
	q.conditions += condition
	return q
}

// OrWhere appends a raw condition with the OR glue.
func (q *Query) OrWhere(condition string) *Query {
	return q.Where(condition, Or)
}

// Compare appends "one verb two". Nothing is escaped: it is meant for
// column-to-column comparisons such as join keys.
func (q *Query) Compare(one, verb, two string, glue ...Glue) *Query {
	return q.Where(one+" "+verb+" "+two, glue...)
}

// Equals appends "one = two".
func (q *Query) Equals(one, two string) *Query {
	return q.Compare(one, "=", two)
}

// WhereInt compares column with value converted to an integer. The verb
// defaults to "=".
func (q *Query) WhereInt(column string, value any, verb ...string) *Query {
	return q.whereInt(column, value, verbOf(verb, "="), And)
}

func (q *Query) whereInt(column string, value any, verb string, glue Glue) *Query {
	return q.Compare(column, verb, strconv.FormatInt(toInt(value), 10), glue)
}

// WhereStr compares column with value as an escaped, quoted string. The
// verb defaults to "=".
func (q *Query) WhereStr(column string, value any, verb ...string) *Query {
	return q.whereStr(column, value, verbOf(verb, "="), And)
}

func (q *Query) whereStr(column string, value any, verb string, glue Glue) *Query {
	return q.Compare(column, verb, "'"+q.conn.EscapeString(cast.ToString(value))+"'", glue)
}

// WhereLike appends "column LIKE '...'" with value taken literally: '%' in
// value is escaped, and wildcards are added on the requested sides. Dialects
// whose LIKE has no default escape character get an ESCAPE clause.
func (q *Query) WhereLike(column, value string, left, right bool) *Query {
	value = dialects.EscapeLike(value)
	if left {
		value = "%" + value
	}
	if right {
		value += "%"
	}
	return q.Compare(column, "LIKE", "'"+q.conn.EscapeString(value)+"'"+q.conn.LikeEscape(), And)
}

// WhereSomethingIn appends "column IN (...)".
//
// An empty list adds no condition at all: callers that need "match nothing"
// must check for it themselves. A single value becomes a plain "=" that is
// still joined with the requested glue, so OR stays OR rather than falling
// back to the AND used by WhereInt and WhereStr. With
// more values, the first one decides how every value is rendered: integers
// if it is a Go integer, quoted strings otherwise.
func (q *Query) WhereSomethingIn(column string, values []any, glue ...Glue) *Query {
	return q.whereSomethingIn(column, values, glueOf(glue), false)
}

// WhereSomethingNotIn appends "column NOT IN (...)" with the same rules as
// WhereSomethingIn; a single value becomes "!=".
func (q *Query) WhereSomethingNotIn(column string, values []any, glue ...Glue) *Query {
	return q.whereSomethingIn(column, values, glueOf(glue), true)
}

// WhereIn is WhereSomethingIn with variadic values and the AND glue.
func (q *Query) WhereIn(column string, values ...any) *Query {
	return q.whereSomethingIn(column, values, And, false)
}

// WhereNotIn is WhereSomethingNotIn with variadic values and the AND glue.
func (q *Query) WhereNotIn(column string, values ...any) *Query {
	return q.whereSomethingIn(column, values, And, true)
}

func (q *Query) whereSomethingIn(column string, values []any, glue Glue, negate bool) *Query {
	if len(values) == 0 {
		return q
	}

	asInt := isInteger(values[0])

	if len(values) == 1 {
		verb := "="
		if negate {
			verb = "!="
		}
		if asInt {
			return q.whereInt(column, values[0], verb, glue)
		}
		return q.whereStr(column, values[0], verb, glue)
	}

	typ := TypeString
	if asInt {
		typ = TypeInt
	}
	rendered := make([]string, len(values))
	for i, v := range values {
		rendered[i] = q.conn.ForceType(v, typ)
	}

	verb := "IN"
	if negate {
		verb = "NOT IN"
	}
	return q.Compare(column, verb, "("+strings.Join(rendered, ", ")+")", glue)
}

// Values converts a typed slice for WhereSomethingIn.
func Values[T any](values []T) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// FilterDirection normalizes a sort direction: DESC when dir is "desc" in
// any case, ASC for anything else.
func FilterDirection(dir string) string {
	if strings.EqualFold(dir, "DESC") {
		return "DESC"
	}
	return "ASC"
}
