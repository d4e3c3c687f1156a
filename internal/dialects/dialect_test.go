package dialects

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetDialect(t *testing.T) {
	assert.IsType(t, &MySQLDialect{}, GetDialect("mysql"))
	assert.IsType(t, &SQLiteDialect{}, GetDialect("sqlite"))
	assert.IsType(t, &SQLiteDialect{}, GetDialect("sqlite3"))
	assert.Panics(t, func() { GetDialect("oracle") })
}

func TestMySQLDialect_EscapeString(t *testing.T) {
	d := &MySQLDialect{}

	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"O'Reilly", `O\'Reilly`},
		{`say "hi"`, `say \"hi\"`},
		{`back\slash`, `back\\slash`},
		{"line\nbreak", `line\nbreak`},
		{"cr\rlf", `cr\rlf`},
		{"nul\x00byte", `nul\0byte`},
		{"ctrl\x1az", `ctrl\Zz`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, d.EscapeString(tt.in), tt.in)
	}
}

func TestMySQLDialect_QuoteIdentifier(t *testing.T) {
	d := &MySQLDialect{}
	assert.Equal(t, "`users`", d.QuoteIdentifier("users"))
	assert.Equal(t, "`we``ird`", d.QuoteIdentifier("we`ird"))
}

func TestSQLiteDialect_EscapeString(t *testing.T) {
	d := &SQLiteDialect{}
	assert.Equal(t, "O''Reilly", d.EscapeString("O'Reilly"))
	assert.Equal(t, `back\slash`, d.EscapeString(`back\slash`))
}

func TestInsertVerb(t *testing.T) {
	my := &MySQLDialect{}
	assert.Equal(t, "INSERT INTO", my.InsertVerb(false, false))
	assert.Equal(t, "INSERT IGNORE INTO", my.InsertVerb(false, true))
	assert.Equal(t, "REPLACE INTO", my.InsertVerb(true, true))

	lite := &SQLiteDialect{}
	assert.Equal(t, "INSERT OR IGNORE INTO", lite.InsertVerb(false, true))
}

func TestLikeEscape(t *testing.T) {
	assert.Equal(t, "", (&MySQLDialect{}).LikeEscape())
	assert.Equal(t, ` ESCAPE '\'`, (&SQLiteDialect{}).LikeEscape())
}

func TestMultiTableDelete(t *testing.T) {
	assert.True(t, (&MySQLDialect{}).MultiTableDelete())
	assert.False(t, (&SQLiteDialect{}).MultiTableDelete())
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, EscapeLike("100%"))
	assert.Equal(t, `a\%b\%`, EscapeLike("a%b%"))
	assert.Equal(t, "none", EscapeLike("none"))

	// LIKE escaping happens before literal escaping, so the backslash doubles
	assert.Equal(t, `100\\%`, (&MySQLDialect{}).EscapeString(EscapeLike("100%")))
}
