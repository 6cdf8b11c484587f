package jsonapi

import (
	"fmt"
	"reflect"
)

// Serialize renders one native object as a complete top-level document.
// The id value must be present: a resource object without an id cannot be
// serialized, create-request payloads are handled on the deserialize path.
func (s *Schema) Serialize(obj any) (*Document, error) {
	res, included, err := s.serializeResource(obj)
	if err != nil {
		return nil, err
	}
	doc := &Document{Data: res, Included: dedupeIncluded(included)}
	s.log.Debug().Str("type", res.Type).Str("id", res.ID).Msg("serialized resource")
	return doc, nil
}

// SerializeMany renders a slice of native objects as a collection document.
// Input order is preserved; nothing is reordered or deduplicated.
func (s *Schema) SerializeMany(list any) (*Document, error) {
	rv := reflect.ValueOf(list)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("jsonapi: SerializeMany wants a slice, got %T", list)
	}

	data := make([]Resource, 0, rv.Len())
	var included []Resource
	for i := 0; i < rv.Len(); i++ {
		res, extra, err := s.serializeResource(rv.Index(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		data = append(data, res)
		included = append(included, extra...)
	}

	doc := &Document{Data: data, Included: dedupeIncluded(included)}
	if s.opts.ManySelfURL != "" {
		doc.Links = &Links{Self: s.opts.ManySelfURL}
	}
	s.log.Debug().Str("type", s.typ).Int("count", len(data)).Msg("serialized collection")
	return doc, nil
}

// serializeResource assembles one resource object: resolved id, declared
// type, inflected attributes and formatted relationships. Empty attributes
// and relationships members are omitted rather than emitted empty.
func (s *Schema) serializeResource(obj any) (Resource, []Resource, error) {
	var res Resource

	if s.opts.Engine == nil {
		return res, nil, ErrNoEngine
	}
	attrs, err := s.opts.Engine.Dump(obj)
	if err != nil {
		return res, nil, fmt.Errorf("dumping attributes: %w", err)
	}

	id, err := s.resourceID(obj, attrs)
	if err != nil {
		return res, nil, err
	}
	res = Resource{Type: s.typ, ID: id}

	if len(attrs) > 0 {
		attributes := make(map[string]any, len(attrs))
		for name, value := range attrs {
			if name == s.opts.IDField || name == "type" {
				continue
			}
			if _, declared := s.opts.Relationships[name]; declared {
				continue
			}
			attributes[s.inflect(name)] = value
		}
		if len(attributes) > 0 {
			res.Attributes = attributes
		}
	}

	var included []Resource
	if len(s.opts.Relationships) > 0 {
		relationships := make(map[string]RelationshipObject, len(s.opts.Relationships))
		for name, rel := range s.opts.Relationships {
			member, extra, err := s.formatRelationship(name, rel, obj)
			if err != nil {
				return res, nil, err
			}
			relationships[s.inflect(name)] = member
			included = append(included, extra...)
		}
		res.Relationships = relationships
	}

	if s.opts.SelfURL != "" {
		if err := s.attachSelfLink(&res, obj); err != nil {
			return res, nil, err
		}
	}
	return res, included, nil
}

func (s *Schema) attachSelfLink(res *Resource, obj any) error {
	self, err := buildLink(s.opts.SelfURL, s.opts.SelfURLKwargs, obj)
	if err != nil {
		return err
	}
	res.Links = &Links{Self: self}
	return nil
}

// resourceID resolves the id off the object, falling back to the dumped
// attribute mapping. Stringification is mandatory regardless of the native
// type.
func (s *Schema) resourceID(obj any, attrs map[string]any) (string, error) {
	v, err := resolvePath(obj, s.opts.IDField)
	if err != nil {
		var ok bool
		if v, ok = attrs[s.opts.IDField]; !ok {
			return "", &MissingIDError{Field: s.opts.IDField}
		}
	}
	id, ok := stringify(v)
	if !ok {
		return "", &MissingIDError{Field: s.opts.IDField}
	}
	return id, nil
}

// dedupeIncluded keeps the first occurrence of each (type, id) pair, per the
// included-member uniqueness requirement. Primary data is never deduplicated.
func dedupeIncluded(in []Resource) []Resource {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[ResourceIdentifier]bool, len(in))
	out := make([]Resource, 0, len(in))
	for _, res := range in {
		key := ResourceIdentifier{Type: res.Type, ID: res.ID}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, res)
	}
	return out
}
