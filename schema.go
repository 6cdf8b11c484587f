package jsonapi

import (
	"github.com/rs/zerolog"
)

// ValidationEngine is the external collaborator that owns per-field
// declaration, coercion and validation. Dump produces the attribute mapping
// for a native object; Load turns an incoming attribute mapping back into a
// native object, or reports per-field failures. The engine's mappings are
// never mutated by this package.
type ValidationEngine interface {
	Dump(obj any) (map[string]any, error)
	Load(attrs map[string]any) (any, FieldErrors)
}

// ViewResolver is the optional transport collaborator that turns a named
// route plus parameters into a URL template. Without one, only literal URL
// templates are supported.
type ViewResolver interface {
	ResolveViewURL(view string, kwargs map[string]string) (string, error)
}

// Options holds the immutable configuration of a Schema. It is fixed at
// construction time; a Schema is safe for concurrent use afterwards.
type Options struct {
	IDField       string            // attribute holding the resource id, default "id"
	WritableID    bool              // re-inject the top-level id into extracted mappings
	Fields        []string          // declared attribute order, drives error ordering
	Inflect       InflectFunc       // outward key transform
	Deflect       InflectFunc       // inverse key transform for inbound documents
	SelfURL       string            // resource self link template
	SelfURLKwargs map[string]string // kwargs spec for SelfURL
	ManySelfURL   string            // top-level self link for collection documents
	Relationships map[string]Relationship
	Engine        ValidationEngine
	Views         ViewResolver
	Logger        zerolog.Logger
}

// Option mutates Options during construction.
type Option func(*Options)

// WithIDField names the attribute the resource id is resolved from.
func WithIDField(name string) Option { return func(o *Options) { o.IDField = name } }

// WithWritableID declares the id field writable: incoming documents get
// their top-level id re-injected into the extracted attribute mapping.
func WithWritableID() Option { return func(o *Options) { o.WritableID = true } }

// WithFields declares attribute names in declaration order. The order is
// used for deterministic error formatting.
func WithFields(names ...string) Option {
	return func(o *Options) { o.Fields = append(o.Fields, names...) }
}

// WithInflection sets the outward key transform and its inverse. The inverse
// may be nil for serialize-only schemas; inbound operations then fail with
// ErrNotInvertible.
func WithInflection(apply, invert InflectFunc) Option {
	return func(o *Options) { o.Inflect = apply; o.Deflect = invert }
}

// WithSelfURL configures the resource object's links.self template.
func WithSelfURL(template string, kwargs map[string]string) Option {
	return func(o *Options) { o.SelfURL = template; o.SelfURLKwargs = kwargs }
}

// WithManySelfURL configures the top-level links.self of collection
// documents.
func WithManySelfURL(url string) Option { return func(o *Options) { o.ManySelfURL = url } }

// WithRelationship declares a relationship under its field name.
func WithRelationship(name string, rel Relationship) Option {
	return func(o *Options) {
		if o.Relationships == nil {
			o.Relationships = make(map[string]Relationship)
		}
		o.Relationships[name] = rel
	}
}

// WithEngine sets the validation engine collaborator.
func WithEngine(e ValidationEngine) Option { return func(o *Options) { o.Engine = e } }

// WithViewResolver sets the transport collaborator used to resolve view
// names into URL templates.
func WithViewResolver(v ViewResolver) Option { return func(o *Options) { o.Views = v } }

// WithLogger attaches a zerolog logger; serialization and deserialization
// emit Debug events through it.
func WithLogger(l zerolog.Logger) Option { return func(o *Options) { o.Logger = l } }

// Schema is the document transformation engine for one resource type. It is
// purely functional per call: all state is the configuration captured at
// construction, so a single Schema may be shared across goroutines.
type Schema struct {
	typ  string
	opts Options
	log  zerolog.Logger
}

// New builds a Schema for the given resource type. Relationship
// declarations are checked here so that configuration bugs fail at
// construction, not mid-request.
func New(resourceType string, opts ...Option) (*Schema, error) {
	if resourceType == "" {
		return nil, ErrNoType
	}
	state := Options{IDField: "id", Logger: zerolog.Nop()}
	for _, f := range opts {
		f(&state)
	}
	for name, rel := range state.Relationships {
		if err := rel.check(name, state.Views); err != nil {
			return nil, err
		}
	}
	return &Schema{typ: resourceType, opts: state, log: state.Logger}, nil
}

// Type returns the declared resource type.
func (s *Schema) Type() string { return s.typ }
