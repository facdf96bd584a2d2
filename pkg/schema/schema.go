// Package schema exposes the normalized column descriptors the view layer
// consumes. The implementation lives in internal/introspect; this package
// re-exports the public surface.
package schema

import (
	"errors"

	"github.com/uptrace/bun"

	"github.com/hasansezertasan/fastui-admin/internal/introspect"
)

// TypeTag re-exports the simplified column kind enumeration.
type TypeTag = introspect.TypeTag

const (
	TypeString   = introspect.TypeString
	TypeText     = introspect.TypeText
	TypeInteger  = introspect.TypeInteger
	TypeFloat    = introspect.TypeFloat
	TypeBoolean  = introspect.TypeBoolean
	TypeDatetime = introspect.TypeDatetime
	TypeDate     = introspect.TypeDate
	TypeTime     = introspect.TypeTime
)

// Column is a derived, read-only projection of one ORM column.
type Column = introspect.Column

// Table is the normalized schema of one registered model.
type Table = introspect.Table

// SchemaError reports model metadata unusable for an admin view.
type SchemaError = introspect.SchemaError

// Introspect derives the table descriptor for a bun model.
func Introspect(db *bun.DB, model any) (*Table, error) {
	return introspect.Model(db, model)
}

// IsSchemaError reports whether err is (or wraps) a SchemaError.
func IsSchemaError(err error) bool {
	var se *SchemaError
	return errors.As(err, &se)
}
