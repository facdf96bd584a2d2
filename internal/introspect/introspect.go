// Package introspect derives normalized column descriptors from bun model
// metadata. It is the implementation behind pkg/schema.
package introspect

import (
	"reflect"

	"github.com/uptrace/bun"
)

// Table is the normalized schema of one registered model: its SQL name, its
// ordered column descriptors, and the primary key.
type Table struct {
	Name    string
	Model   string
	Columns []Column
	PK      Column

	typ reflect.Type
}

// Model inspects a bun model (a pointer to a tagged struct) and returns its
// normalized table descriptor. It fails with a SchemaError when the value is
// not a struct pointer or the model declares no primary key. Composite keys
// are reduced to their first column, matching the single-pk admin routes.
func Model(db *bun.DB, model any) (*Table, error) {
	typ := reflect.TypeOf(model)
	name := typeName(typ)
	if typ == nil || typ.Kind() != reflect.Ptr || typ.Elem().Kind() != reflect.Struct {
		return nil, errNotAStruct(name)
	}

	meta := db.Table(typ.Elem())
	if len(meta.PKs) == 0 {
		return nil, errNoPrimaryKey(name)
	}

	cols := make([]Column, 0, len(meta.Fields))
	for _, f := range meta.Fields {
		cols = append(cols, newColumn(f))
	}

	return &Table{
		Name:    meta.Name,
		Model:   name,
		Columns: cols,
		PK:      newColumn(meta.PKs[0]),
		typ:     typ.Elem(),
	}, nil
}

func typeName(typ reflect.Type) string {
	if typ == nil {
		return "<nil>"
	}
	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Name() == "" {
		return typ.String()
	}
	return typ.Name()
}

// Select resolves a visible-column specification against the table. With an
// include list the result preserves the list's order; otherwise all columns
// minus the exclusions are returned in declaration order. Unknown names in
// the include list fail with a SchemaError.
func (t *Table) Select(include, exclude []string) ([]Column, error) {
	if len(include) > 0 {
		out := make([]Column, 0, len(include))
		for _, name := range include {
			col, ok := t.Column(name)
			if !ok {
				return nil, errUnknownColumn(t.Model, name)
			}
			out = append(out, col)
		}
		return out, nil
	}

	excluded := make(map[string]struct{}, len(exclude))
	for _, name := range exclude {
		excluded[name] = struct{}{}
	}
	out := make([]Column, 0, len(t.Columns))
	for _, col := range t.Columns {
		if _, skip := excluded[col.Name]; skip {
			continue
		}
		out = append(out, col)
	}
	return out, nil
}

// Column looks up a column descriptor by SQL name.
func (t *Table) Column(name string) (Column, bool) {
	for _, col := range t.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return Column{}, false
}

// FormColumns returns the columns a create/edit form should expose: every
// selected column except the primary key.
func (t *Table) FormColumns(include, exclude []string) ([]Column, error) {
	cols, err := t.Select(include, exclude)
	if err != nil {
		return nil, err
	}
	out := make([]Column, 0, len(cols))
	for _, col := range cols {
		if col.Name == t.PK.Name {
			continue
		}
		out = append(out, col)
	}
	return out, nil
}

// NewRecord returns a fresh *T for the table's model type, ready to be
// passed to bun query builders.
func (t *Table) NewRecord() any {
	return reflect.New(t.typ).Interface()
}

// NewSlice returns a fresh *[]T for list queries.
func (t *Table) NewSlice() any {
	return reflect.New(reflect.SliceOf(t.typ)).Interface()
}

// Records unpacks a *[]T produced by NewSlice into individual records.
func (t *Table) Records(slice any) []any {
	v := reflect.ValueOf(slice).Elem()
	out := make([]any, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		out = append(out, v.Index(i).Addr().Interface())
	}
	return out
}

// Set assigns a coerced value to the named column of a record.
func (t *Table) Set(record any, col Column, value any) error {
	strct := reflect.ValueOf(record).Elem()
	return assign(col.field.Value(strct), value)
}

// Get reads the named column of a record as a JSON-friendly value.
func (t *Table) Get(record any, col Column) any {
	strct := reflect.ValueOf(record).Elem()
	return displayValue(col.field.Value(strct))
}

// SetPK coerces a raw path parameter into the primary key field of a record.
func (t *Table) SetPK(record any, raw string) error {
	v, err := t.PK.Coerce(raw)
	if err != nil {
		return err
	}
	return t.Set(record, t.PK, v)
}

// RowMap projects a record onto the given columns for table and detail
// components.
func (t *Table) RowMap(record any, cols []Column) map[string]any {
	row := make(map[string]any, len(cols))
	for _, col := range cols {
		row[col.Name] = t.Get(record, col)
	}
	return row
}
