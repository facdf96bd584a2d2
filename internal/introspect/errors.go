package introspect

import "fmt"

// SchemaError reports a model whose metadata cannot support an admin view:
// a missing primary key, a column name that does not exist, or a type the
// mapper cannot represent.
type SchemaError struct {
	Model  string
	Column string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("schema: model %s: column %q %s", e.Model, e.Column, e.Reason)
	}
	return fmt.Sprintf("schema: model %s: %s", e.Model, e.Reason)
}

func errNoPrimaryKey(model string) *SchemaError {
	return &SchemaError{Model: model, Reason: "has no primary key"}
}

func errUnknownColumn(model, column string) *SchemaError {
	return &SchemaError{Model: model, Column: column, Reason: "does not exist"}
}

func errNotAStruct(model string) *SchemaError {
	return &SchemaError{Model: model, Reason: "is not a pointer to a struct"}
}
