package jsonapi

import (
	"strings"

	"github.com/aarondl/inflect"
)

// InflectFunc transforms an outward-facing attribute or relationship key.
// The identity transform is the default.
type InflectFunc func(string) string

func (s *Schema) inflect(name string) string {
	if s.opts.Inflect == nil {
		return name
	}
	return s.opts.Inflect(name)
}

func (s *Schema) deflect(name string) string {
	if s.opts.Deflect == nil {
		return name
	}
	return s.opts.Deflect(name)
}

// checkInvertible guards inbound operations: an outward inflection without a
// declared inverse cannot map incoming keys back to field names.
func (s *Schema) checkInvertible() error {
	if s.opts.Inflect != nil && s.opts.Deflect == nil {
		return ErrNotInvertible
	}
	return nil
}

// Dasherized inflects underscored field names to their dashed wire form
// (last_name -> last-name) and back.
func Dasherized() Option {
	return WithInflection(
		func(name string) string { return inflect.Dasherize(name) },
		func(name string) string { return strings.ReplaceAll(name, "-", "_") },
	)
}

// CamelCased inflects underscored field names to lower camel case
// (last_name -> lastName) and back.
func CamelCased() Option {
	return WithInflection(
		func(name string) string { return inflect.CamelizeDownFirst(name) },
		func(name string) string { return inflect.Underscore(name) },
	)
}
