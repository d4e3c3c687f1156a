package core

import "strings"

// JoinOn joins table to the most recently added source. The left side is the
// last raw table if any was added with From, otherwise the last FROM fragment
// (which is how successive joins chain). Both tables are aliased to their bare
// names. The ON clause is "a=b" when both keys are given, else whichever one
// is not empty, verbatim.
//
// When there is nothing to join to, ErrInsufficientJoinSource is recorded and
// returned by the next compile or execute call.
func (q *Query) JoinOn(joinType, table, a, b string) *Query {
	return q.join(joinType, table, a, b, true)
}

// JoinOnUnaliased is JoinOn without aliasing the joined table. A raw table on
// the left side is still aliased.
func (q *Query) JoinOnUnaliased(joinType, table, a, b string) *Query {
	return q.join(joinType, table, a, b, false)
}

func (q *Query) join(joinType, table, a, b string, alias bool) *Query {
	left, ok := q.sources.pop()
	if !ok {
		if q.err == nil {
			q.err = ErrInsufficientJoinSource
		}
		return q
	}

	leftText := left.text
	if left.kind == sourceTable {
		leftText = q.conn.TableName(left.text, true)
	}

	var keys []string
	for _, k := range []string{a, b} {
		if k != "" {
			keys = append(keys, k)
		}
	}

	var sb strings.Builder
	sb.WriteString(leftText)
	sb.WriteString(" ")
	sb.WriteString(joinType)
	sb.WriteString(" JOIN ")
	sb.WriteString(q.conn.TableName(table, alias))
	sb.WriteString(" ON (")
	sb.WriteString(strings.Join(keys, "="))
	sb.WriteString(")")

	q.sources.push(sourceFragment, sb.String())
	return q
}
