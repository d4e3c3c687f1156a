// Package dialects provides the driver-specific pieces of statement rendering:
// identifier quoting, string literal escaping and INSERT verbs. Statement shape
// is always MySQL-style; dialects only differ where the driver would otherwise
// misread a literal.
package dialects

// Dialect defines driver-specific rendering behaviors.
type Dialect interface {
	QuoteIdentifier(string) string
	EscapeString(string) string
	InsertVerb(replace, ignore bool) string
	// LikeEscape is appended to a LIKE pattern so that a backslash escapes
	// the next wildcard.
	LikeEscape() string
	// MultiTableDelete reports whether "DELETE t FROM ..." is understood.
	MultiTableDelete() bool
}

var dialects = make(map[string]Dialect)

// RegisterDialect registers a dialect by driver name.
func RegisterDialect(name string, d Dialect) {
	dialects[name] = d
}

// GetDialect retrieves a registered dialect by driver name, panics if not found.
func GetDialect(name string) Dialect {
	if d, ok := dialects[name]; ok {
		return d
	}
	panic("unsupported dialect: " + name)
}

// EscapeLike escapes the LIKE wildcard '%' so that it matches literally.
// The result still has to go through EscapeString before being quoted.
func EscapeLike(s string) string {
	return likeReplacer.Replace(s)
}
