package jsonapi

import (
	"errors"
	"fmt"
	"sort"
)

// Configuration errors. These indicate a schema-authoring bug and fail the
// call immediately; they are never rendered into a wire-level errors array.
var (
	ErrNoType         = errors.New("jsonapi: resource type must not be empty")
	ErrNoEngine       = errors.New("jsonapi: no validation engine configured")
	ErrNoViewResolver = errors.New("jsonapi: relationship declares a view but no view resolver is configured")
	ErrNoLinkage      = errors.New("jsonapi: relationship must expose at least one of links or data")
	ErrTypeRequired   = errors.New("jsonapi: include_data requires an explicit type or a nested schema")
	ErrNotInvertible  = errors.New("jsonapi: inflection is not invertible; supply an inverse for inbound documents")
)

// StructureError reports a malformed top-level document, such as a missing
// data member. It is surfaced on the wire as a single error object at /data.
type StructureError struct {
	Detail string
}

func (e *StructureError) Error() string {
	return "jsonapi: malformed document: " + e.Detail
}

// ErrorObject renders the structural failure as a wire-level error.
func (e *StructureError) ErrorObject() Error {
	return Error{Detail: e.Detail, Source: &ErrorSource{Pointer: "/data"}}
}

// TypeError reports a mismatch between the declared resource type and the
// incoming document's type member. It short-circuits field validation and is
// surfaced at /data/type.
type TypeError struct {
	Expected string
	Actual   string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("jsonapi: incorrect type %q, expected %q", e.Actual, e.Expected)
}

// ErrorObject renders the mismatch as a wire-level error.
func (e *TypeError) ErrorObject() Error {
	return Error{
		Detail: fmt.Sprintf("Invalid type. Expected %q.", e.Expected),
		Source: &ErrorSource{Pointer: "/data/type"},
	}
}

// ResolutionError reports a dotted path segment that could not be resolved
// against a source object.
type ResolutionError struct {
	Path    string
	Segment string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("jsonapi: cannot resolve segment %q of path %q", e.Segment, e.Path)
}

// LinkError reports a URL template that could not be interpolated.
type LinkError struct {
	Template string
	Slot     string
	Err      error
}

func (e *LinkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("jsonapi: building link %q: %v", e.Template, e.Err)
	}
	return fmt.Sprintf("jsonapi: link template %q has no value for slot %q", e.Template, e.Slot)
}

func (e *LinkError) Unwrap() error { return e.Err }

// MissingIDError reports a resource or linkage element whose id value is
// absent at serialization time.
type MissingIDError struct {
	Field string
}

func (e *MissingIDError) Error() string {
	return fmt.Sprintf("jsonapi: resource has no value for id field %q", e.Field)
}

// FieldErrors maps a field name to the validation messages reported for it
// by the validation engine. The empty field name holds document-level
// messages.
type FieldErrors map[string][]string

// FormatErrors converts per-field validation failures into an ordered errors
// document: one error object per message with a JSON Pointer source.
//
// Ordering is deterministic: document-level messages first, then fields in
// the order declared via WithFields, then undeclared fields sorted by name.
// Message order within a field is preserved as received.
//
// Pointers: the id field maps to /data/id, declared relationships map to
// /data/relationships/<name>, everything else to /data/attributes/<name>,
// with the outward inflection applied to the name.
func (s *Schema) FormatErrors(fieldErrors FieldErrors) *Document {
	if len(fieldErrors) == 0 {
		return &Document{Errors: []Error{}}
	}

	seen := make(map[string]bool, len(fieldErrors))
	order := make([]string, 0, len(fieldErrors))
	if _, ok := fieldErrors[""]; ok {
		order = append(order, "")
		seen[""] = true
	}
	for _, name := range s.opts.Fields {
		if _, ok := fieldErrors[name]; ok && !seen[name] {
			order = append(order, name)
			seen[name] = true
		}
	}
	rest := make([]string, 0, len(fieldErrors))
	for name := range fieldErrors {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	order = append(order, rest...)

	var out []Error
	for _, name := range order {
		pointer := s.pointerFor(name)
		for _, msg := range fieldErrors[name] {
			out = append(out, Error{Detail: msg, Source: &ErrorSource{Pointer: pointer}})
		}
	}
	return &Document{Errors: out}
}

func (s *Schema) pointerFor(field string) string {
	switch {
	case field == "":
		return "/data"
	case field == s.opts.IDField:
		return "/data/id"
	default:
		if _, ok := s.opts.Relationships[field]; ok {
			return "/data/relationships/" + s.inflect(field)
		}
		return "/data/attributes/" + s.inflect(field)
	}
}
