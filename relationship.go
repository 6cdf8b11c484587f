package jsonapi

import (
	"fmt"
	"reflect"
)

// Relationship declares how one relationships entry is rendered.
//
// Either URL templates (SelfURL/RelatedURL with their kwargs specs) or view
// names (SelfView/RelatedView, resolved through the schema's ViewResolver)
// produce the links member. IncludeData adds a resource linkage built from
// the relationship's resolved value. A declaration must yield at least one
// of links or data.
type Relationship struct {
	SelfURL           string
	SelfURLKwargs     map[string]string
	RelatedURL        string
	RelatedURLKwargs  map[string]string
	SelfView          string
	SelfViewKwargs    map[string]string
	RelatedView       string
	RelatedViewKwargs map[string]string

	// Many marks a to-many relationship; it only affects the shape of the
	// resource linkage.
	Many bool
	// IncludeData adds the data member. Requires Type or Schema.
	IncludeData bool
	// Type is the related resource type. When empty it is inferred from
	// Schema.
	Type string
	// IDField is the attribute linkage ids are pulled from, default "id".
	// A linkage element the field cannot be resolved on is used as the id
	// itself, which covers plain scalar id lists.
	IDField string
	// Resolve pulls the relationship's native value off the source object.
	// When nil the relationship name is resolved as a path instead.
	Resolve func(obj any) any
	// Schema renders related resources into the document's included member
	// when IncludeData is set.
	Schema *Schema
}

func (r Relationship) check(name string, views ViewResolver) error {
	hasLinks := r.SelfURL != "" || r.RelatedURL != "" || r.SelfView != "" || r.RelatedView != ""
	if !hasLinks && !r.IncludeData {
		return fmt.Errorf("jsonapi: relationship %q: %w", name, ErrNoLinkage)
	}
	if r.IncludeData && r.Type == "" && r.Schema == nil {
		return fmt.Errorf("jsonapi: relationship %q: %w", name, ErrTypeRequired)
	}
	if (r.SelfView != "" || r.RelatedView != "") && views == nil {
		return fmt.Errorf("jsonapi: relationship %q: %w", name, ErrNoViewResolver)
	}
	return nil
}

func (r Relationship) resourceType() string {
	if r.Type != "" {
		return r.Type
	}
	return r.Schema.Type()
}

// value resolves the relationship's native value from the source object.
// Absent values are legal: they render as null (to-one) or [] (to-many).
func (r Relationship) value(name string, obj any) any {
	if r.Resolve != nil {
		return r.Resolve(obj)
	}
	v, err := resolvePath(obj, name)
	if err != nil {
		return nil
	}
	return v
}

// formatRelationship renders one relationships entry and, when a nested
// schema is declared, the related resources destined for included.
func (s *Schema) formatRelationship(name string, rel Relationship, obj any) (RelationshipObject, []Resource, error) {
	var out RelationshipObject

	links, err := s.relationshipLinks(rel, obj)
	if err != nil {
		return out, nil, fmt.Errorf("relationship %s: %w", name, err)
	}
	out.Links = links

	if !rel.IncludeData {
		return out, nil, nil
	}

	value := rel.value(name, obj)
	linkage, err := rel.linkage(value)
	if err != nil {
		return out, nil, fmt.Errorf("relationship %s: %w", name, err)
	}
	out.Data = linkage

	included, err := rel.included(value)
	if err != nil {
		return out, nil, fmt.Errorf("relationship %s: %w", name, err)
	}
	return out, included, nil
}

func (s *Schema) relationshipLinks(rel Relationship, obj any) (*Links, error) {
	self, err := s.relationshipLink(rel.SelfURL, rel.SelfURLKwargs, rel.SelfView, rel.SelfViewKwargs, obj)
	if err != nil {
		return nil, err
	}
	related, err := s.relationshipLink(rel.RelatedURL, rel.RelatedURLKwargs, rel.RelatedView, rel.RelatedViewKwargs, obj)
	if err != nil {
		return nil, err
	}
	if self == "" && related == "" {
		return nil, nil
	}
	return &Links{Self: self, Related: related}, nil
}

func (s *Schema) relationshipLink(template string, spec map[string]string, view string, viewSpec map[string]string, obj any) (string, error) {
	if template != "" {
		return buildLink(template, spec, obj)
	}
	if view == "" {
		return "", nil
	}
	kwargs, err := resolveKwargs(viewSpec, obj)
	if err != nil {
		return "", &LinkError{Template: view, Err: err}
	}
	resolved, err := s.opts.Views.ResolveViewURL(view, kwargs)
	if err != nil {
		return "", &LinkError{Template: view, Err: err}
	}
	return interpolate(resolved, kwargs)
}

// linkage builds the data member. Order and cardinality of to-many values
// are preserved exactly; duplicates are the caller's responsibility.
func (r Relationship) linkage(value any) (*Linkage, error) {
	typ := r.resourceType()

	if r.Many {
		link := &Linkage{Many: true, List: []ResourceIdentifier{}}
		if isAbsent(value) {
			return link, nil
		}
		rv := reflect.ValueOf(unwrapContainer(value))
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return nil, fmt.Errorf("jsonapi: to-many relationship value is %T, want a slice", value)
		}
		for i := 0; i < rv.Len(); i++ {
			id, err := r.linkageID(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			link.List = append(link.List, ResourceIdentifier{Type: typ, ID: id})
		}
		return link, nil
	}

	if isAbsent(value) {
		return &Linkage{}, nil
	}
	id, err := r.linkageID(value)
	if err != nil {
		return nil, err
	}
	return &Linkage{One: &ResourceIdentifier{Type: typ, ID: id}}, nil
}

func (r Relationship) linkageID(element any) (string, error) {
	field := r.IDField
	if field == "" {
		field = "id"
	}
	v, err := resolvePath(element, field)
	if err != nil {
		// Plain scalar linkage elements are their own id.
		v = element
	}
	id, ok := stringify(v)
	if !ok {
		return "", &MissingIDError{Field: field}
	}
	return id, nil
}

func (r Relationship) included(value any) ([]Resource, error) {
	if r.Schema == nil || isAbsent(value) {
		return nil, nil
	}
	elems := []any{value}
	if r.Many {
		rv := reflect.ValueOf(unwrapContainer(value))
		elems = elems[:0]
		for i := 0; i < rv.Len(); i++ {
			elems = append(elems, rv.Index(i).Interface())
		}
	}
	out := make([]Resource, 0, len(elems))
	for _, e := range elems {
		res, nested, err := r.Schema.serializeResource(e)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
		out = append(out, nested...)
	}
	return out, nil
}
