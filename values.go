package jsonapi

import (
	"database/sql/driver"
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// stringify renders a native identifier value as the string the wire format
// requires. Stringification is mandatory: numeric ids become their decimal
// form. The second return is false when the value is absent (nil, invalid,
// an empty string, or a null database value).
func stringify(v any) (string, bool) {
	v = unwrapValue(v)
	if v == nil {
		return "", false
	}

	switch t := v.(type) {
	case string:
		return t, t != ""
	case fmt.Stringer:
		s := t.String()
		return s, s != ""
	case time.Time:
		return t.Format(time.RFC3339), true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		s := rv.String()
		return s, s != ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), true
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), true
	}
	// Composite values have no scalar id form.
	return "", false
}

// unwrapValue peels pointers, interfaces and sql null wrappers
// (driver.Valuer, covering the aarondl/null types sqlboiler models carry)
// down to a plain comparable value, or nil when the value is absent.
func unwrapValue(v any) any {
	for {
		if v == nil {
			return nil
		}
		if valuer, ok := v.(driver.Valuer); ok {
			inner, err := valuer.Value()
			if err != nil || inner == nil {
				return nil
			}
			if b, ok := inner.([]byte); ok {
				return string(b)
			}
			v = inner
			continue
		}
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Ptr, reflect.Interface:
			if rv.IsNil() {
				return nil
			}
			v = rv.Elem().Interface()
		default:
			return v
		}
	}
}

// isAbsent reports whether a relationship value carries no related resource.
func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map:
		return rv.IsNil()
	}
	return false
}
