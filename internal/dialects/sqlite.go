package dialects

import "strings"

// SQLiteDialect implements SQLite escaping. SQLite accepts backtick-quoted
// identifiers and the MySQL "LIMIT offset, count" form, but treats backslash
// as an ordinary character inside string literals.
type SQLiteDialect struct{}

func init() {
	RegisterDialect("sqlite", &SQLiteDialect{})
	RegisterDialect("sqlite3", &SQLiteDialect{})
}

// QuoteIdentifier quotes a SQLite identifier using backticks.
func (d *SQLiteDialect) QuoteIdentifier(s string) string {
	return "`" + strings.ReplaceAll(s, "`", "``") + "`"
}

// EscapeString doubles single quotes.
func (d *SQLiteDialect) EscapeString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// InsertVerb returns REPLACE INTO, INSERT OR IGNORE INTO or INSERT INTO.
func (d *SQLiteDialect) InsertVerb(replace, ignore bool) string {
	switch {
	case replace:
		return "REPLACE INTO"
	case ignore:
		return "INSERT OR IGNORE INTO"
	default:
		return "INSERT INTO"
	}
}

// LikeEscape declares backslash as the escape character, which SQLite LIKE
// lacks by default.
func (d *SQLiteDialect) LikeEscape() string {
	return ` ESCAPE '\'`
}

// MultiTableDelete returns false: SQLite only has "DELETE FROM table".
func (d *SQLiteDialect) MultiTableDelete() bool {
	return false
}
