package jsonapi

import (
	"errors"

	"github.com/goccy/go-json"
)

// CheckType compares the declared resource type against the incoming
// resource object's type member. The match is exact and case-sensitive; a
// missing or different type is a *TypeError.
func (s *Schema) CheckType(resource map[string]any) error {
	actual, ok := resource["type"].(string)
	if !ok || actual != s.typ {
		return &TypeError{Expected: s.typ, Actual: actual}
	}
	return nil
}

// ExtractAttributes parses an incoming top-level document and reshapes it
// into the flat attribute mapping the validation engine consumes: the type
// member is checked first, attributes are flattened with the inverse
// inflection applied, relationship members are passed through untouched
// under their field names, and the top-level id is re-injected when the id
// field is declared writable.
//
// Failures are *StructureError or *TypeError; a type mismatch short-circuits
// before any attribute is extracted.
func (s *Schema) ExtractAttributes(raw []byte) (map[string]any, error) {
	if err := s.checkInvertible(); err != nil {
		return nil, err
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &StructureError{Detail: "Request body is not valid JSON."}
	}
	data, ok := doc["data"]
	if !ok {
		return nil, &StructureError{Detail: "Object must include a `data` key."}
	}
	resource, ok := data.(map[string]any)
	if !ok {
		return nil, &StructureError{Detail: "The `data` member must be an object."}
	}

	if err := s.CheckType(resource); err != nil {
		return nil, err
	}

	mapping := make(map[string]any)
	if rawAttrs, ok := resource["attributes"]; ok {
		attrs, ok := rawAttrs.(map[string]any)
		if !ok {
			return nil, &StructureError{Detail: "The `attributes` member must be an object."}
		}
		for key, value := range attrs {
			mapping[s.deflect(key)] = value
		}
	}
	if rawRels, ok := resource["relationships"]; ok {
		rels, ok := rawRels.(map[string]any)
		if !ok {
			return nil, &StructureError{Detail: "The `relationships` member must be an object."}
		}
		for key, value := range rels {
			mapping[s.deflect(key)] = value
		}
	}
	if id, ok := resource["id"]; ok && s.opts.WritableID {
		mapping[s.opts.IDField] = id
	}
	return mapping, nil
}

// Deserialize runs the full inbound path: parse and shape-check the
// document, hand the flattened mapping to the validation engine, and render
// any failures as a JSON:API errors document.
//
// The returned document is non-nil exactly when validation failed; the
// error return is reserved for configuration bugs and is never a wire-level
// condition.
func (s *Schema) Deserialize(raw []byte) (any, *Document, error) {
	if s.opts.Engine == nil {
		return nil, nil, ErrNoEngine
	}

	mapping, err := s.ExtractAttributes(raw)
	if err != nil {
		var structural *StructureError
		if errors.As(err, &structural) {
			return nil, ErrorDocument(structural.ErrorObject()), nil
		}
		var mismatch *TypeError
		if errors.As(err, &mismatch) {
			s.log.Debug().Str("expected", mismatch.Expected).Str("actual", mismatch.Actual).
				Msg("incoming document failed type check")
			return nil, ErrorDocument(mismatch.ErrorObject()), nil
		}
		return nil, nil, err
	}

	obj, fieldErrors := s.opts.Engine.Load(mapping)
	if len(fieldErrors) > 0 {
		return nil, s.FormatErrors(fieldErrors), nil
	}
	s.log.Debug().Str("type", s.typ).Msg("deserialized resource")
	return obj, nil, nil
}

// ExtractRelationshipLinkage validates the shape of an inbound relationship
// member ({data: {id, type}} or {data: [...]}) and extracts its linkage ids.
// Shape problems come back as plain messages suitable for a field's error
// list; they are data errors, not configuration errors.
func ExtractRelationshipLinkage(member any, expectedType string, many bool) ([]string, []string) {
	obj, ok := member.(map[string]any)
	if !ok {
		return nil, []string{"Must include a `data` key"}
	}
	data, ok := obj["data"]
	if !ok {
		return nil, []string{"Must include a `data` key"}
	}

	if many {
		list, ok := data.([]any)
		if !ok {
			return nil, []string{"Relationship is list-like"}
		}
		var ids, msgs []string
		for _, item := range list {
			id, itemMsgs := extractLinkageID(item, expectedType)
			if len(itemMsgs) > 0 {
				msgs = append(msgs, itemMsgs...)
				continue
			}
			ids = append(ids, id)
		}
		if len(msgs) > 0 {
			return nil, msgs
		}
		return ids, nil
	}

	if _, isList := data.([]any); isList {
		return nil, []string{"Relationship is not list-like"}
	}
	id, msgs := extractLinkageID(data, expectedType)
	if len(msgs) > 0 {
		return nil, msgs
	}
	return []string{id}, nil
}

func extractLinkageID(item any, expectedType string) (string, []string) {
	identifier, ok := item.(map[string]any)
	if !ok {
		return "", []string{"Must have an `id` field", "Must have a `type` field"}
	}
	var msgs []string
	if _, ok := identifier["id"]; !ok {
		msgs = append(msgs, "Must have an `id` field")
	}
	if typ, ok := identifier["type"]; !ok {
		msgs = append(msgs, "Must have a `type` field")
	} else if typ != expectedType {
		msgs = append(msgs, "Invalid `type` specified")
	}
	if len(msgs) > 0 {
		return "", msgs
	}
	id, _ := stringify(identifier["id"])
	return id, nil
}
