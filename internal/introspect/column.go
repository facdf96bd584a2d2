package introspect

import (
	"database/sql"
	"reflect"
	"strings"
	"time"

	"github.com/uptrace/bun/schema"
)

// TypeTag is the simplified column kind the view layer maps to form inputs
// and display modes.
type TypeTag string

const (
	TypeString   TypeTag = "string"
	TypeText     TypeTag = "text"
	TypeInteger  TypeTag = "integer"
	TypeFloat    TypeTag = "float"
	TypeBoolean  TypeTag = "boolean"
	TypeDatetime TypeTag = "datetime"
	TypeDate     TypeTag = "date"
	TypeTime     TypeTag = "time"
)

// Column is a read-only projection of one ORM column. It is derived from
// live bun table metadata and never persisted.
type Column struct {
	Name          string
	GoName        string
	Title         string
	Type          TypeTag
	SQLType       string
	Nullable      bool
	PrimaryKey    bool
	AutoIncrement bool
	// Default holds the scalar column default, if one exists. Expression
	// defaults (CURRENT_TIMESTAMP and friends) are left nil; they cannot be
	// prefilled into a form.
	Default any

	field *schema.Field
}

// Required reports whether a create/edit form must supply a value for this
// column.
func (c Column) Required() bool {
	return !c.Nullable && c.Default == nil && !c.AutoIncrement && !c.PrimaryKey
}

var (
	timeType     = reflect.TypeOf(time.Time{})
	nullStringT  = reflect.TypeOf(sql.NullString{})
	nullInt64T   = reflect.TypeOf(sql.NullInt64{})
	nullInt32T   = reflect.TypeOf(sql.NullInt32{})
	nullFloat64T = reflect.TypeOf(sql.NullFloat64{})
	nullBoolT    = reflect.TypeOf(sql.NullBool{})
	nullTimeT    = reflect.TypeOf(sql.NullTime{})
)

func newColumn(f *schema.Field) Column {
	col := Column{
		Name:          f.Name,
		GoName:        f.GoName,
		Title:         titleize(f.Name),
		SQLType:       sqlType(f),
		Type:          typeTag(f),
		Nullable:      nullable(f),
		PrimaryKey:    f.IsPK,
		AutoIncrement: f.AutoIncrement || f.Identity,
		Default:       scalarDefault(f),
		field:         f,
	}
	return col
}

func sqlType(f *schema.Field) string {
	if f.UserSQLType != "" {
		return f.UserSQLType
	}
	return f.DiscoveredSQLType
}

// typeTag maps the Go field type (plus any explicit SQL type) to the
// simplified tag set.
func typeTag(f *schema.Field) TypeTag {
	declared := strings.ToLower(sqlType(f))

	typ := f.IndirectType
	switch typ {
	case timeType, nullTimeT:
		switch {
		case strings.Contains(declared, "date") && !strings.Contains(declared, "time"):
			return TypeDate
		case declared == "time":
			return TypeTime
		default:
			return TypeDatetime
		}
	case nullStringT:
		typ = reflect.TypeOf("")
	case nullInt64T, nullInt32T:
		return TypeInteger
	case nullFloat64T:
		return TypeFloat
	case nullBoolT:
		return TypeBoolean
	}

	switch typ.Kind() {
	case reflect.String:
		if strings.Contains(declared, "text") {
			return TypeText
		}
		return TypeString
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return TypeInteger
	case reflect.Float32, reflect.Float64:
		return TypeFloat
	case reflect.Bool:
		return TypeBoolean
	default:
		return TypeString
	}
}

func nullable(f *schema.Field) bool {
	if f.IsPK || f.NotNull {
		return false
	}
	if f.IsPtr || f.NullZero {
		return true
	}
	switch f.IndirectType {
	case nullStringT, nullInt64T, nullInt32T, nullFloat64T, nullBoolT, nullTimeT:
		return true
	}
	return !f.NotNull
}

// scalarDefault extracts a literal column default from the bun tag. Quoted
// strings are unquoted; anything that looks like an expression is skipped.
func scalarDefault(f *schema.Field) any {
	raw := strings.TrimSpace(f.SQLDefault)
	if raw == "" {
		return nil
	}
	if strings.ContainsAny(raw, "()") {
		return nil
	}
	if len(raw) >= 2 && raw[0] == '\'' && raw[len(raw)-1] == '\'' {
		return strings.ReplaceAll(raw[1:len(raw)-1], "''", "'")
	}
	switch strings.ToLower(raw) {
	case "true":
		return true
	case "false":
		return false
	case "null", "current_timestamp", "current_date", "current_time", "now":
		return nil
	}
	if v, err := parseInt(raw); err == nil {
		return v
	}
	if v, err := parseFloat(raw); err == nil {
		return v
	}
	return raw
}

func titleize(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool { return r == '_' || r == '-' })
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
