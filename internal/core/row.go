package core

import (
	"database/sql"
	"encoding/json"
	"slices"

	"github.com/spf13/cast"
)

// Row is the default result shape: every column scanned as a nullable string.
//
// Example:
//
//	row, _ := db.Builder().From("user").WhereInt("id", 1).Row(ctx)
//	user := row.(Row)
//	name := user.String("name") // "" when NULL
//	if !user.IsNull("email") {
//	    ...
//	}
type Row map[string]sql.NullString

// String returns the value of column, or "" when it is NULL or missing.
func (r Row) String(column string) string {
	if v, ok := r[column]; ok && v.Valid {
		return v.String
	}
	return ""
}

// Int returns the value of column as an integer, 0 when NULL, missing or not numeric.
func (r Row) Int(column string) int64 {
	return cast.ToInt64(r.String(column))
}

// IsNull reports whether column is NULL or missing.
func (r Row) IsNull(column string) bool {
	v, ok := r[column]
	return !ok || !v.Valid
}

// Has reports whether column is present, NULL or not.
func (r Row) Has(column string) bool {
	_, ok := r[column]
	return ok
}

// Columns returns the column names in sorted order.
func (r Row) Columns() []string {
	cols := make([]string, 0, len(r))
	for k := range r {
		cols = append(cols, k)
	}
	slices.Sort(cols)
	return cols
}

// Get returns the raw value of column and whether it is present.
func (r Row) Get(column string) (sql.NullString, bool) {
	v, ok := r[column]
	return v, ok
}

// Value returns the value of column as any: nil for NULL, the string otherwise.
func (r Row) Value(column string) any {
	if r.IsNull(column) {
		return nil
	}
	return r[column].String
}

// MarshalJSON encodes the row as an object, NULL columns as null.
func (r Row) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(r))
	for k := range r {
		m[k] = r.Value(k)
	}
	return json.Marshal(m)
}
