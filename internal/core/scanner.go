package core

import (
	"database/sql"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// scanner materializes rows into named shapes. A shape is a struct type
// registered under a name; the empty shape yields Row.
type scanner struct {
	mu     sync.RWMutex
	shapes map[string]reflect.Type
	cache  map[reflect.Type]*structInfo
}

// structInfo contains cached metadata about a struct type.
type structInfo struct {
	fields []*fieldInfo
}

// fieldInfo describes how to scan into a struct field.
type fieldInfo struct {
	index  []int  // field index path for embedded structs
	dbName string // column name from db:"" tag or field name, lower case
}

func newScanner() *scanner {
	return &scanner{
		shapes: make(map[string]reflect.Type),
		cache:  make(map[reflect.Type]*structInfo),
	}
}

// register binds name to the struct type of prototype (a struct or a
// pointer to one). Registering a name again replaces it.
func (s *scanner) register(name string, prototype any) error {
	typ := reflect.TypeOf(prototype)
	if typ == nil {
		return fmt.Errorf("scanner: shape %q: nil prototype", name)
	}
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}

	info, err := buildStructInfo(typ, nil)
	if err != nil {
		return WrapError(err, fmt.Sprintf("scanner: shape %q", name))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.shapes[name] = typ
	s.cache[typ] = info
	return nil
}

// buildStructInfo analyzes struct type and extracts field information.
func buildStructInfo(typ reflect.Type, index []int) (*structInfo, error) {
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("expected struct, got %s", typ.Kind())
	}

	info := &structInfo{}
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}

		fieldIndex := append(append([]int{}, index...), i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			nested, err := buildStructInfo(field.Type, fieldIndex)
			if err != nil {
				return nil, err
			}
			info.fields = append(info.fields, nested.fields...)
			continue
		}

		dbName := field.Name
		if tag, ok := field.Tag.Lookup("db"); ok {
			if tag == "-" {
				continue
			}
			dbName = tag
		}

		info.fields = append(info.fields, &fieldInfo{
			index:  fieldIndex,
			dbName: strings.ToLower(dbName),
		})
	}
	return info, nil
}

// rowPlan maps the columns of one result set onto a shape.
type rowPlan struct {
	columns []string
	typ     reflect.Type // nil for Row
	fields  []*fieldInfo // per column, nil when unmapped
}

// plan prepares scanning rows into shape.
func (s *scanner) plan(rows *sql.Rows, shape string) (*rowPlan, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, WrapError(err, "scanner: failed to get columns")
	}

	p := &rowPlan{columns: columns}
	if shape == "" {
		return p, nil
	}

	s.mu.RLock()
	typ, ok := s.shapes[shape]
	info := s.cache[typ]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownShape, shape)
	}

	byName := make(map[string]*fieldInfo, len(info.fields))
	for _, f := range info.fields {
		byName[f.dbName] = f
	}

	p.typ = typ
	p.fields = make([]*fieldInfo, len(columns))
	for i, col := range columns {
		p.fields[i] = byName[strings.ToLower(col)]
	}
	return p, nil
}

// scan reads the current row. Struct shapes are returned as a pointer.
func (p *rowPlan) scan(rows *sql.Rows) (any, error) {
	if p.typ == nil {
		values := make([]sql.NullString, len(p.columns))
		dests := make([]any, len(p.columns))
		for i := range values {
			dests[i] = &values[i]
		}
		if err := rows.Scan(dests...); err != nil {
			return nil, WrapError(err, "scanner: scan failed")
		}

		row := make(Row, len(p.columns))
		for i, col := range p.columns {
			row[col] = values[i]
		}
		return row, nil
	}

	ptr := reflect.New(p.typ)
	elem := ptr.Elem()
	dests := make([]any, len(p.columns))
	for i, f := range p.fields {
		if f == nil {
			var dummy any
			dests[i] = &dummy
			continue
		}
		dests[i] = elem.FieldByIndex(f.index).Addr().Interface()
	}
	if err := rows.Scan(dests...); err != nil {
		return nil, WrapError(err, "scanner: scan failed")
	}
	return ptr.Interface(), nil
}
