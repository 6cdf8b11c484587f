package jsonapi

import "github.com/rs/zerolog"

// Builder provides a fluent API to construct a Schema with fields,
// relationships and collaborators pre-registered.
type Builder struct {
	typ  string
	opts []Option
}

// NewBuilder creates a builder for the given resource type.
func NewBuilder(resourceType string) *Builder {
	return &Builder{typ: resourceType}
}

// WithOptions appends raw schema options to the builder.
func (b *Builder) WithOptions(opts ...Option) *Builder {
	b.opts = append(b.opts, opts...)
	return b
}

// IDField names the attribute the resource id is resolved from.
func (b *Builder) IDField(name string) *Builder { return b.WithOptions(WithIDField(name)) }

// WritableID marks the id field writable on inbound documents.
func (b *Builder) WritableID() *Builder { return b.WithOptions(WithWritableID()) }

// Fields declares attribute names in declaration order.
func (b *Builder) Fields(names ...string) *Builder { return b.WithOptions(WithFields(names...)) }

// Inflection sets the outward key transform and its inverse.
func (b *Builder) Inflection(apply, invert InflectFunc) *Builder {
	return b.WithOptions(WithInflection(apply, invert))
}

// SelfURL configures the resource object's links.self template.
func (b *Builder) SelfURL(template string, kwargs map[string]string) *Builder {
	return b.WithOptions(WithSelfURL(template, kwargs))
}

// ManySelfURL configures the top-level links.self of collection documents.
func (b *Builder) ManySelfURL(url string) *Builder { return b.WithOptions(WithManySelfURL(url)) }

// Relationship declares a relationship under its field name.
func (b *Builder) Relationship(name string, rel Relationship) *Builder {
	return b.WithOptions(WithRelationship(name, rel))
}

// Engine sets the validation engine collaborator.
func (b *Builder) Engine(e ValidationEngine) *Builder { return b.WithOptions(WithEngine(e)) }

// Views sets the transport collaborator for view-name resolution.
func (b *Builder) Views(v ViewResolver) *Builder { return b.WithOptions(WithViewResolver(v)) }

// Logger attaches a zerolog logger.
func (b *Builder) Logger(l zerolog.Logger) *Builder { return b.WithOptions(WithLogger(l)) }

// Build constructs the Schema, running the same configuration checks as New.
func (b *Builder) Build() (*Schema, error) {
	return New(b.typ, b.opts...)
}
