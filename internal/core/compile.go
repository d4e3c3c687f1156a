package core

import (
	"strconv"
	"strings"
)

// FromClause renders the FROM sources: raw tables prefixed, aliased and
// comma separated, then the FROM fragments separated by JOIN.
func (q *Query) FromClause() string {
	tables := q.sources.tables()
	resolved := make([]string, len(tables))
	for i, t := range tables {
		resolved[i] = q.conn.TableName(t, true)
	}

	from := strings.Join(resolved, ", ")
	if fragments := q.sources.fragments(); len(fragments) > 0 {
		if from != "" {
			from += " JOIN "
		}
		from += strings.Join(fragments, " JOIN ")
	}
	return from
}

// LimitClause renders " LIMIT [offset, ]count", or "" when no row count was set.
func (q *Query) LimitClause() string {
	if q.rowCount == nil {
		return ""
	}
	if q.offset != 0 {
		return " LIMIT " + strconv.Itoa(q.offset) + ", " + strconv.Itoa(*q.rowCount)
	}
	return " LIMIT " + strconv.Itoa(*q.rowCount)
}

func (q *Query) selectList() string {
	if len(q.fields) == 0 {
		return "*"
	}
	return strings.Join(q.fields, ", ")
}

// CompileSelect renders the SELECT statement. Compiling does not change the
// query, so it can be called any number of times.
func (q *Query) CompileSelect() (string, error) {
	if q.err != nil {
		return "", q.err
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(q.selectList())
	sb.WriteString(" FROM ")
	sb.WriteString(q.FromClause())

	if q.conditions != "" {
		sb.WriteString(" WHERE ")
		sb.WriteString(q.conditions)
	}
	if len(q.groups) > 0 {
		sb.WriteString(" GROUP BY ")
		sb.WriteString(strings.Join(q.groups, ", "))
	}
	if q.having != "" {
		sb.WriteString(" HAVING ")
		sb.WriteString(q.having)
	}
	if q.orders != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(q.orders)
	}
	sb.WriteString(q.LimitClause())
	if q.forUpdate {
		sb.WriteString(" FOR UPDATE")
	}

	return sb.String(), nil
}

// CompileDelete renders a DELETE statement on the first selected table:
//
//	DELETE `t` FROM `<prefix>t` AS `t` WHERE ...
//
// The target is the bare table name, which FROM declares as the alias of
// the prefixed table. Dialects without the multiple-table form get
// "DELETE FROM `<prefix>t` AS `t` WHERE ...". Compiling is not guarded: use
// Delete to execute.
func (q *Query) CompileDelete() (string, error) {
	if q.err != nil {
		return "", q.err
	}

	tables := q.sources.tables()
	if len(tables) == 0 {
		return "", ErrMissingTableForDelete
	}
	table := tables[0]

	var sb strings.Builder
	sb.WriteString("DELETE ")
	if q.conn.MultiTableDelete() {
		sb.WriteString("`" + table + "` ")
	}
	sb.WriteString("FROM ")
	sb.WriteString(q.conn.TableName(table, true))
	sb.WriteString(" WHERE ")
	sb.WriteString(q.conditions)
	sb.WriteString(q.LimitClause())
	return sb.String(), nil
}

// CompileUpdate renders an UPDATE statement assigning cols on the FROM
// sources. Compiling is not guarded: use Update to execute.
func (q *Query) CompileUpdate(cols []Column) (string, error) {
	if q.err != nil {
		return "", q.err
	}
	if err := validateColumns(cols); err != nil {
		return "", err
	}

	sets := make([]string, len(cols))
	for i, c := range cols {
		sets[i] = "`" + c.Name + "` = " + q.conn.ForceType(c.Value, c.Type)
	}

	var sb strings.Builder
	sb.WriteString("UPDATE ")
	sb.WriteString(q.FromClause())
	sb.WriteString(" SET ")
	sb.WriteString(strings.Join(sets, ", "))
	sb.WriteString(" WHERE ")
	sb.WriteString(q.conditions)
	sb.WriteString(q.LimitClause())
	return sb.String(), nil
}
