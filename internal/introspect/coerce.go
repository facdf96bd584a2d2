package introspect

import (
	"database/sql"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// datetimeLayouts covers the formats browsers and the FastUI renderer emit
// for date/time inputs, plus RFC3339 for JSON clients.
var datetimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// Coerce converts a submitted form or JSON value into the column's Go type.
// The returned value is ready to be assigned to the model field, including
// pointer and sql.Null wrapping. Empty input on a nullable column yields the
// field's zero (NULL) value; empty input on a required column is an error.
func (c Column) Coerce(raw any) (any, error) {
	if isEmpty(raw) {
		if c.Nullable || c.Default != nil || c.Type == TypeBoolean {
			return nil, nil
		}
		return nil, fmt.Errorf("field is required")
	}

	v, err := c.coerceScalar(raw)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (c Column) coerceScalar(raw any) (any, error) {
	switch c.Type {
	case TypeInteger:
		return coerceInt(raw)
	case TypeFloat:
		return coerceFloat(raw)
	case TypeBoolean:
		return coerceBool(raw)
	case TypeDatetime, TypeDate, TypeTime:
		return coerceTime(raw, c.Type)
	default:
		return coerceString(raw), nil
	}
}

func isEmpty(raw any) bool {
	if raw == nil {
		return true
	}
	if s, ok := raw.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

func coerceString(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func coerceInt(raw any) (int64, error) {
	switch v := raw.(type) {
	case string:
		n, err := parseInt(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("value %q is not a valid integer", v)
		}
		return n, nil
	case float64:
		n := int64(v)
		if float64(n) != v {
			return 0, fmt.Errorf("value %v is not a valid integer", v)
		}
		return n, nil
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	default:
		return 0, fmt.Errorf("value %v is not a valid integer", raw)
	}
}

func coerceFloat(raw any) (float64, error) {
	switch v := raw.(type) {
	case string:
		f, err := parseFloat(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("value %q is not a valid number", v)
		}
		return f, nil
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("value %v is not a valid number", raw)
	}
}

func coerceBool(raw any) (bool, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "on", "1", "yes":
			return true, nil
		case "false", "off", "0", "no", "":
			return false, nil
		}
		return false, fmt.Errorf("value %q is not a valid boolean", v)
	default:
		return false, fmt.Errorf("value %v is not a valid boolean", raw)
	}
}

func coerceTime(raw any, tag TypeTag) (time.Time, error) {
	s, ok := raw.(string)
	if !ok {
		return time.Time{}, fmt.Errorf("value %v is not a valid timestamp", raw)
	}
	s = strings.TrimSpace(s)

	var layouts []string
	switch tag {
	case TypeDate:
		layouts = []string{"2006-01-02"}
	case TypeTime:
		layouts = []string{"15:04:05", "15:04"}
	default:
		layouts = append(append([]string{}, datetimeLayouts...), "2006-01-02")
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("value %q is not a valid %s", s, tag)
}

func parseInt(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// assign stores a coerced value into the model field, wrapping pointers and
// sql.Null types as needed. A nil value resets the field to its zero value.
func assign(dest reflect.Value, value any) error {
	if value == nil {
		dest.Set(reflect.Zero(dest.Type()))
		return nil
	}

	target := dest
	if target.Kind() == reflect.Ptr {
		target.Set(reflect.New(target.Type().Elem()))
		target = target.Elem()
	}

	switch target.Type() {
	case nullStringT:
		target.Set(reflect.ValueOf(sql.NullString{String: value.(string), Valid: true}))
		return nil
	case nullInt64T:
		target.Set(reflect.ValueOf(sql.NullInt64{Int64: value.(int64), Valid: true}))
		return nil
	case nullInt32T:
		target.Set(reflect.ValueOf(sql.NullInt32{Int32: int32(value.(int64)), Valid: true}))
		return nil
	case nullFloat64T:
		target.Set(reflect.ValueOf(sql.NullFloat64{Float64: value.(float64), Valid: true}))
		return nil
	case nullBoolT:
		target.Set(reflect.ValueOf(sql.NullBool{Bool: value.(bool), Valid: true}))
		return nil
	case nullTimeT:
		target.Set(reflect.ValueOf(sql.NullTime{Time: value.(time.Time), Valid: true}))
		return nil
	}

	rv := reflect.ValueOf(value)
	if !rv.Type().ConvertibleTo(target.Type()) {
		return fmt.Errorf("cannot assign %T to %s", value, target.Type())
	}
	target.Set(rv.Convert(target.Type()))
	return nil
}

// displayValue converts a stored field value into a JSON-friendly scalar for
// tables and detail pages.
func displayValue(v reflect.Value) any {
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}

	switch v.Type() {
	case timeType:
		t := v.Interface().(time.Time)
		if t.IsZero() {
			return nil
		}
		return t.Format(time.RFC3339)
	case nullStringT:
		n := v.Interface().(sql.NullString)
		if !n.Valid {
			return nil
		}
		return n.String
	case nullInt64T:
		n := v.Interface().(sql.NullInt64)
		if !n.Valid {
			return nil
		}
		return n.Int64
	case nullInt32T:
		n := v.Interface().(sql.NullInt32)
		if !n.Valid {
			return nil
		}
		return n.Int32
	case nullFloat64T:
		n := v.Interface().(sql.NullFloat64)
		if !n.Valid {
			return nil
		}
		return n.Float64
	case nullBoolT:
		n := v.Interface().(sql.NullBool)
		if !n.Valid {
			return nil
		}
		return n.Bool
	case nullTimeT:
		n := v.Interface().(sql.NullTime)
		if !n.Valid {
			return nil
		}
		return n.Time.Format(time.RFC3339)
	}

	return v.Interface()
}
