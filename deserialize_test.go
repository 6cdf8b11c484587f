package jsonapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAttributes_FlattensDocument(t *testing.T) {
	s, err := New("people", WithEngine(passthroughEngine))
	require.NoError(t, err)

	mapping, err := s.ExtractAttributes([]byte(`{
		"data": {
			"type": "people",
			"id": "30",
			"attributes": {"first_name": "Dan", "last_name": "Gebhardt"}
		}
	}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"first_name": "Dan", "last_name": "Gebhardt"}, mapping)
}

func TestExtractAttributes_WritableIDIsReinjected(t *testing.T) {
	s, err := New("people", WithEngine(passthroughEngine), WithWritableID())
	require.NoError(t, err)

	mapping, err := s.ExtractAttributes([]byte(`{
		"data": {"type": "people", "id": "30", "attributes": {"first_name": "Dan"}}
	}`))
	require.NoError(t, err)
	assert.Equal(t, "30", mapping["id"])
}

func TestExtractAttributes_IDIgnoredWhenNotWritable(t *testing.T) {
	s, err := New("people", WithEngine(passthroughEngine))
	require.NoError(t, err)

	mapping, err := s.ExtractAttributes([]byte(`{
		"data": {"type": "people", "id": "30", "attributes": {}}
	}`))
	require.NoError(t, err)
	_, ok := mapping["id"]
	assert.False(t, ok)
}

func TestExtractAttributes_InverseInflection(t *testing.T) {
	s, err := New("people", WithEngine(passthroughEngine), Dasherized())
	require.NoError(t, err)

	mapping, err := s.ExtractAttributes([]byte(`{
		"data": {"type": "people", "attributes": {"last-name": "Gebhardt"}}
	}`))
	require.NoError(t, err)
	assert.Equal(t, "Gebhardt", mapping["last_name"])
}

func TestExtractAttributes_RelationshipsPassThroughUntouched(t *testing.T) {
	s, err := New("articles", WithEngine(passthroughEngine))
	require.NoError(t, err)

	mapping, err := s.ExtractAttributes([]byte(`{
		"data": {
			"type": "articles",
			"relationships": {
				"author": {"data": {"type": "people", "id": "9"}}
			}
		}
	}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"data": map[string]any{"type": "people", "id": "9"},
	}, mapping["author"])
}

func TestExtractAttributes_MissingData(t *testing.T) {
	s, err := New("people", WithEngine(passthroughEngine))
	require.NoError(t, err)

	_, err = s.ExtractAttributes([]byte(`{"meta": {}}`))
	var structural *StructureError
	require.ErrorAs(t, err, &structural)
	assert.Equal(t, "/data", structural.ErrorObject().Source.Pointer)
}

func TestExtractAttributes_InvalidJSON(t *testing.T) {
	s, err := New("people", WithEngine(passthroughEngine))
	require.NoError(t, err)

	_, err = s.ExtractAttributes([]byte(`{`))
	var structural *StructureError
	require.ErrorAs(t, err, &structural)
}

func TestExtractAttributes_NonInvertibleInflection(t *testing.T) {
	s, err := New("people",
		WithEngine(passthroughEngine),
		WithInflection(func(s string) string { return s + "!" }, nil),
	)
	require.NoError(t, err)

	_, err = s.ExtractAttributes([]byte(`{"data": {"type": "people"}}`))
	require.ErrorIs(t, err, ErrNotInvertible)
}

func TestCheckType_Mismatch(t *testing.T) {
	s, err := New("people", WithEngine(passthroughEngine))
	require.NoError(t, err)

	err = s.CheckType(map[string]any{"type": "invalid-type"})
	var mismatch *TypeError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "people", mismatch.Expected)
	assert.Equal(t, "invalid-type", mismatch.Actual)

	obj := mismatch.ErrorObject()
	assert.Equal(t, `Invalid type. Expected "people".`, obj.Detail)
	assert.Equal(t, "/data/type", obj.Source.Pointer)
}

func TestCheckType_MissingType(t *testing.T) {
	s, err := New("people", WithEngine(passthroughEngine))
	require.NoError(t, err)

	err = s.CheckType(map[string]any{})
	var mismatch *TypeError
	require.ErrorAs(t, err, &mismatch)
}

func TestDeserialize_TypeMismatchShortCircuitsFieldValidation(t *testing.T) {
	loadCalled := false
	s, err := New("people", WithEngine(engineFunc{
		load: func(attrs map[string]any) (any, FieldErrors) {
			loadCalled = true
			return nil, FieldErrors{"first_name": {"Missing data for required field."}}
		},
	}))
	require.NoError(t, err)

	obj, errsDoc, err := s.Deserialize([]byte(`{
		"data": {"type": "invalid-type", "attributes": {}}
	}`))
	require.NoError(t, err)
	assert.Nil(t, obj)
	require.NotNil(t, errsDoc)
	require.Len(t, errsDoc.Errors, 1)
	assert.Equal(t, `Invalid type. Expected "people".`, errsDoc.Errors[0].Detail)
	assert.Equal(t, "/data/type", errsDoc.Errors[0].Source.Pointer)
	assert.False(t, loadCalled, "field validation must not run after a type mismatch")
}

func TestDeserialize_FieldErrorsBecomeErrorsDocument(t *testing.T) {
	s, err := New("people", WithEngine(engineFunc{
		load: func(attrs map[string]any) (any, FieldErrors) {
			return nil, FieldErrors{"last_name": {"Missing data for required field."}}
		},
	}))
	require.NoError(t, err)

	_, errsDoc, err := s.Deserialize([]byte(`{"data": {"type": "people", "attributes": {}}}`))
	require.NoError(t, err)
	require.NotNil(t, errsDoc)
	require.Len(t, errsDoc.Errors, 1)
	assert.Equal(t, "/data/attributes/last_name", errsDoc.Errors[0].Source.Pointer)
}

func TestDeserialize_Success(t *testing.T) {
	type person struct {
		FirstName string `json:"first_name"`
	}
	s, err := New("people", WithEngine(engineFunc{
		load: func(attrs map[string]any) (any, FieldErrors) {
			name, _ := attrs["first_name"].(string)
			return &person{FirstName: name}, nil
		},
	}))
	require.NoError(t, err)

	obj, errsDoc, err := s.Deserialize([]byte(`{
		"data": {"type": "people", "attributes": {"first_name": "Dan"}}
	}`))
	require.NoError(t, err)
	assert.Nil(t, errsDoc)
	assert.Equal(t, &person{FirstName: "Dan"}, obj)
}

func TestLoadAs_CoercesMappingEngines(t *testing.T) {
	type person struct {
		FirstName string `json:"first_name"`
	}
	s, err := New("people", WithEngine(passthroughEngine))
	require.NoError(t, err)

	p, errsDoc, err := LoadAs[person](s, []byte(`{
		"data": {"type": "people", "attributes": {"first_name": "Dan"}}
	}`))
	require.NoError(t, err)
	require.Nil(t, errsDoc)
	assert.Equal(t, "Dan", p.FirstName)
}

func TestExtractRelationshipLinkage_Singular(t *testing.T) {
	ids, msgs := ExtractRelationshipLinkage(map[string]any{
		"data": map[string]any{"type": "people", "id": "9"},
	}, "people", false)
	require.Empty(t, msgs)
	assert.Equal(t, []string{"9"}, ids)
}

func TestExtractRelationshipLinkage_Many(t *testing.T) {
	ids, msgs := ExtractRelationshipLinkage(map[string]any{
		"data": []any{
			map[string]any{"type": "comments", "id": "5"},
			map[string]any{"type": "comments", "id": "12"},
		},
	}, "comments", true)
	require.Empty(t, msgs)
	assert.Equal(t, []string{"5", "12"}, ids)
}

func TestExtractRelationshipLinkage_ShapeErrors(t *testing.T) {
	_, msgs := ExtractRelationshipLinkage("not an object", "people", false)
	assert.Equal(t, []string{"Must include a `data` key"}, msgs)

	_, msgs = ExtractRelationshipLinkage(map[string]any{
		"data": map[string]any{"id": "9"},
	}, "people", false)
	assert.Equal(t, []string{"Must have a `type` field"}, msgs)

	_, msgs = ExtractRelationshipLinkage(map[string]any{
		"data": map[string]any{"type": "animals", "id": "9"},
	}, "people", false)
	assert.Equal(t, []string{"Invalid `type` specified"}, msgs)

	_, msgs = ExtractRelationshipLinkage(map[string]any{
		"data": map[string]any{"type": "people", "id": "9"},
	}, "people", true)
	assert.Equal(t, []string{"Relationship is list-like"}, msgs)

	_, msgs = ExtractRelationshipLinkage(map[string]any{
		"data": []any{map[string]any{"type": "people", "id": "9"}},
	}, "people", false)
	assert.Equal(t, []string{"Relationship is not list-like"}, msgs)
}

func TestRoundTrip_AttributesAreStable(t *testing.T) {
	s, err := New("articles", WithEngine(passthroughEngine), Dasherized())
	require.NoError(t, err)

	src := map[string]any{"id": "1", "first_name": "Dan", "page_count": float64(320)}

	doc, err := s.Serialize(src)
	require.NoError(t, err)
	body, err := doc.Encode()
	require.NoError(t, err)

	mapping, err := s.ExtractAttributes(body)
	require.NoError(t, err)

	doc2, err := s.Serialize(merge(mapping, "id", "1"))
	require.NoError(t, err)
	assert.Equal(t, doc.Data.(Resource).Attributes, doc2.Data.(Resource).Attributes)
}

func merge(m map[string]any, key string, value any) map[string]any {
	out := make(map[string]any, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	out[key] = value
	return out
}
