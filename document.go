package jsonapi

import (
	"github.com/goccy/go-json"
)

// ContentType is the JSON:API media type.
const ContentType = "application/vnd.api+json"

// Version is the JSON:API specification version this package targets.
const Version = "1.0"

// Meta represents arbitrary metadata attached to a document, resource or error.
type Meta map[string]any

// Document represents a JSON:API top-level document.
// Data and Errors are mutually exclusive.
type Document struct {
	Data     any        `json:"data,omitempty"`
	Errors   []Error    `json:"errors,omitempty"`
	Meta     Meta       `json:"meta,omitempty"`
	Links    *Links     `json:"links,omitempty"`
	Included []Resource `json:"included,omitempty"`
}

// Resource represents a JSON:API resource object.
type Resource struct {
	Type          string                        `json:"type"`
	ID            string                        `json:"id"`
	Attributes    map[string]any                `json:"attributes,omitempty"`
	Relationships map[string]RelationshipObject `json:"relationships,omitempty"`
	Links         *Links                        `json:"links,omitempty"`
	Meta          Meta                          `json:"meta,omitempty"`
}

// ResourceIdentifier is the minimal {type, id} pair used for resource linkage.
type ResourceIdentifier struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// RelationshipObject is the wire form of a single relationships entry.
// Data is present only when the declaration asked for a resource linkage;
// Links is present only when at least one URL was configured.
type RelationshipObject struct {
	Links *Links   `json:"links,omitempty"`
	Data  *Linkage `json:"data,omitempty"`
}

// Linkage is a resource linkage: a single identifier (nullable) or an
// ordered list of identifiers. Order and duplicates are preserved from the
// source value.
type Linkage struct {
	Many bool                 `json:"-"`
	One  *ResourceIdentifier  `json:"-"`
	List []ResourceIdentifier `json:"-"`
}

// MarshalJSON renders an empty to-many linkage as [] and an empty to-one
// linkage as null, distinguishing "no related resource" from an omitted
// relationship.
func (l Linkage) MarshalJSON() ([]byte, error) {
	if l.Many {
		if l.List == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(l.List)
	}
	if l.One == nil {
		return []byte("null"), nil
	}
	return json.Marshal(l.One)
}

// Links holds the navigation links of a document, resource or relationship.
type Links struct {
	Self    string `json:"self,omitempty"`
	Related string `json:"related,omitempty"`
}

// Error represents a JSON:API error object.
type Error struct {
	Detail string       `json:"detail,omitempty"`
	Source *ErrorSource `json:"source,omitempty"`
	Meta   Meta         `json:"meta,omitempty"`
}

// ErrorSource locates the offending part of the request document.
type ErrorSource struct {
	Pointer string `json:"pointer,omitempty"`
}

// SetMeta attaches a top-level meta entry and returns the document for
// chaining.
func (d *Document) SetMeta(key string, value any) *Document {
	if d.Meta == nil {
		d.Meta = make(Meta)
	}
	d.Meta[key] = value
	return d
}

// Encode renders the document as JSON.
func (d *Document) Encode() ([]byte, error) {
	return json.Marshal(d)
}

// ErrorDocument wraps error objects into a top-level errors document.
func ErrorDocument(errs ...Error) *Document {
	return &Document{Errors: errs}
}
