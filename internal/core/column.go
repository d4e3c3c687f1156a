package core

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// ColumnType tells the escaper how to render a value as an SQL literal.
type ColumnType int

// Supported column types.
const (
	TypeString ColumnType = iota // quoted and escaped
	TypeInt                      // truncated to an integer, never quoted
	TypeFloat                    // decimal, never quoted
	TypeBool                     // 1 or 0
	TypeNull                     // always NULL
	TypeRaw                      // emitted verbatim, e.g. NOW()
)

func (t ColumnType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeBool:
		return "bool"
	case TypeNull:
		return "null"
	case TypeRaw:
		return "raw"
	default:
		return "ColumnType(" + strconv.Itoa(int(t)) + ")"
	}
}

// Valid reports whether t is one of the supported types.
func (t ColumnType) Valid() bool {
	return t >= TypeString && t <= TypeRaw
}

// Column is a column assignment used by UPDATE and INSERT statements.
type Column struct {
	Name  string
	Value any
	Type  ColumnType
}

// NewColumn creates a column assignment.
func NewColumn(name string, value any, typ ColumnType) Column {
	return Column{Name: name, Value: value, Type: typ}
}

// Int creates an integer column assignment.
func Int(name string, value any) Column { return Column{Name: name, Value: value, Type: TypeInt} }

// Str creates a string column assignment.
func Str(name string, value any) Column { return Column{Name: name, Value: value, Type: TypeString} }

// Raw creates a column assignment whose value is emitted verbatim.
func Raw(name, expr string) Column { return Column{Name: name, Value: expr, Type: TypeRaw} }

func validateColumns(cols []Column) error {
	for _, c := range cols {
		if !c.Type.Valid() {
			return fmt.Errorf("column %q: %w: %s", c.Name, ErrUnsupportedColumnType, c.Type)
		}
	}
	return nil
}

// renderValue renders value as a literal of type typ. escape is applied to
// string literals before quoting. A nil value is NULL unless typ is TypeRaw.
func renderValue(value any, typ ColumnType, escape func(string) string) string {
	if value == nil && typ != TypeRaw {
		return "NULL"
	}

	switch typ {
	case TypeInt:
		return strconv.FormatInt(toInt(value), 10)
	case TypeFloat:
		return strconv.FormatFloat(toFloat(value), 'f', -1, 64)
	case TypeBool:
		if cast.ToBool(value) {
			return "1"
		}
		return "0"
	case TypeNull:
		return "NULL"
	case TypeRaw:
		return cast.ToString(value)
	default:
		return "'" + escape(cast.ToString(value)) + "'"
	}
}

// toInt converts v to an integer the way a loosely typed caller expects:
// floats truncate, strings keep their leading numeric part, anything
// unparsable is 0.
func toInt(v any) int64 {
	switch x := v.(type) {
	case string:
		return leadingInt(x)
	case []byte:
		return leadingInt(string(x))
	}
	n, err := cast.ToInt64E(v)
	if err != nil {
		return 0
	}
	return n
}

func toFloat(v any) float64 {
	switch x := v.(type) {
	case string:
		return leadingFloat(x)
	case []byte:
		return leadingFloat(string(x))
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0
	}
	return f
}

func leadingInt(s string) int64 {
	s = strings.TrimSpace(s)
	end := numericPrefix(s, false)
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func leadingFloat(s string) float64 {
	s = strings.TrimSpace(s)
	end := numericPrefix(s, true)
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return f
}

// numericPrefix returns the length of the optionally signed decimal prefix of s.
func numericPrefix(s string, fraction bool) int {
	i := 0
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	dot := false
	for ; i < len(s); i++ {
		c := s[i]
		if c >= '0' && c <= '9' {
			continue
		}
		if c == '.' && fraction && !dot {
			dot = true
			continue
		}
		break
	}
	return i
}

// isInteger reports whether v holds a Go integer kind.
func isInteger(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}
