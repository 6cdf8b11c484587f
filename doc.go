// Package jsonapi converts between native application objects and JSON:API
// documents (https://jsonapi.org).
//
// A Schema pairs a resource type with an external validation engine and
// renders validated attribute mappings into spec-compliant resource objects,
// and incoming documents back into flat attribute mappings.
//
// Basic Usage
//
//	schema, err := jsonapi.New("articles",
//	    jsonapi.WithEngine(engine),
//	    jsonapi.Dasherized(),
//	)
//	doc, err := schema.Serialize(article)
//	body, err := doc.Encode()
//
// # Relationships
//
// Relationships are declared per field name and render links, a resource
// linkage, or both:
//
//	jsonapi.WithRelationship("comments", jsonapi.Relationship{
//	    RelatedURL:       "/articles/{article_id}/comments",
//	    RelatedURLKwargs: map[string]string{"article_id": "<id>"},
//	    Many:             true,
//	    IncludeData:      true,
//	    Type:             "comments",
//	})
//
// Kwargs values in <angle brackets> are dotted paths resolved against the
// object being serialized; everything else is literal. A to-one linkage with
// no related resource renders as null, a to-many one as [].
//
// # Inflection
//
// An InflectFunc is applied to every outward attribute and relationship key
// and inverted on the way back in. Dasherized and CamelCased are provided;
// identity is the default.
//
// # Error Formatting
//
// Validation failures from the engine become an errors document with one
// error object per message and a JSON Pointer source, e.g.
// /data/attributes/last-name. Structural problems and type mismatches
// surface at /data and /data/type. Schema-authoring bugs (unresolvable link
// templates, a missing id at serialize time) are ordinary Go errors and
// never appear in a wire-level errors array.
//
// # Thread Safety
//
// A Schema is immutable after construction and safe for concurrent use.
// Every call reads only its own input object and the schema configuration.
package jsonapi
