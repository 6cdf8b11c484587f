package jsonapi

import (
	"reflect"
	"strings"
)

// selfToken is the leading path segment that refers to the source object
// itself rather than one of its members.
const selfToken = "self"

// resolvePath walks a dot-separated chain of attribute accesses against a
// source object. Each segment is tried as a struct field (by name, by a
// case-insensitive match, then by json tag), else as a map key. There is no
// array-index or filter syntax. A segment that matches nothing fails with a
// *ResolutionError.
func resolvePath(source any, path string) (any, error) {
	cur := source
	segments := strings.Split(path, ".")
	for i, seg := range segments {
		if i == 0 && seg == selfToken {
			continue
		}
		next, ok := lookupSegment(cur, seg)
		if !ok {
			return nil, &ResolutionError{Path: path, Segment: seg}
		}
		cur = next
	}
	return cur, nil
}

func lookupSegment(source any, segment string) (any, bool) {
	source = unwrapContainer(source)
	if source == nil {
		return nil, false
	}
	rv := reflect.ValueOf(source)

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		mv := rv.MapIndex(reflect.ValueOf(segment))
		if !mv.IsValid() {
			return nil, false
		}
		return mv.Interface(), true

	case reflect.Struct:
		rt := rv.Type()
		if f, ok := rt.FieldByName(segment); ok && f.PkgPath == "" {
			return rv.FieldByIndex(f.Index).Interface(), true
		}
		for i := 0; i < rt.NumField(); i++ {
			f := rt.Field(i)
			if f.PkgPath != "" {
				continue
			}
			if strings.EqualFold(f.Name, segment) || jsonName(f.Tag.Get("json")) == segment {
				return rv.Field(i).Interface(), true
			}
		}
	}
	return nil, false
}

// unwrapContainer dereferences pointers and interfaces without unwrapping
// sql null values, so segment lookup still sees the wrapper struct.
func unwrapContainer(v any) any {
	for {
		if v == nil {
			return nil
		}
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Ptr && rv.Kind() != reflect.Interface {
			return v
		}
		if rv.IsNil() {
			return nil
		}
		v = rv.Elem().Interface()
	}
}

func jsonName(tag string) string {
	if tag == "" || tag == "-" {
		return ""
	}
	if i := strings.IndexByte(tag, ','); i >= 0 {
		tag = tag[:i]
	}
	return tag
}
