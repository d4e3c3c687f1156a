package dialects

import "strings"

// MySQLDialect implements MySQL quoting and escaping.
type MySQLDialect struct{}

// mysqlReplacer mirrors mysql_real_escape_string for utf8 connections.
var mysqlReplacer = strings.NewReplacer(
	"\\", "\\\\",
	"\x00", "\\0",
	"\n", "\\n",
	"\r", "\\r",
	"'", "\\'",
	`"`, `\"`,
	"\x1a", "\\Z",
)

var likeReplacer = strings.NewReplacer("%", `\%`)

// QuoteIdentifier quotes a MySQL identifier using backticks.
func (d *MySQLDialect) QuoteIdentifier(s string) string {
	return "`" + strings.ReplaceAll(s, "`", "``") + "`"
}

// EscapeString escapes s for use inside a single-quoted MySQL literal.
func (d *MySQLDialect) EscapeString(s string) string {
	return mysqlReplacer.Replace(s)
}

// InsertVerb returns REPLACE INTO, INSERT IGNORE INTO or INSERT INTO.
func (d *MySQLDialect) InsertVerb(replace, ignore bool) string {
	switch {
	case replace:
		return "REPLACE INTO"
	case ignore:
		return "INSERT IGNORE INTO"
	default:
		return "INSERT INTO"
	}
}

// LikeEscape returns "": backslash is already the default LIKE escape.
func (d *MySQLDialect) LikeEscape() string {
	return ""
}

// MultiTableDelete returns true.
func (d *MySQLDialect) MultiTableDelete() bool {
	return true
}

func init() {
	RegisterDialect("mysql", &MySQLDialect{})
}
