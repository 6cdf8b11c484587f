package jsonapi

import (
	"strings"
)

// isPathExpr reports whether a kwargs value is a <path.expr> placeholder to
// resolve against the source object, as opposed to a literal.
func isPathExpr(s string) bool {
	return len(s) > 2 && s[0] == '<' && s[len(s)-1] == '>'
}

// resolveKwargs materializes a kwargs spec against a source object: values
// in <angle brackets> are resolved as dotted paths, everything else is taken
// literally. Resolution failures fail fast, they indicate a declaration bug.
func resolveKwargs(spec map[string]string, source any) (map[string]string, error) {
	if len(spec) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(spec))
	for name, raw := range spec {
		if !isPathExpr(raw) {
			out[name] = raw
			continue
		}
		v, err := resolvePath(source, raw[1:len(raw)-1])
		if err != nil {
			return nil, err
		}
		s, ok := stringify(v)
		if !ok {
			return nil, &ResolutionError{Path: raw, Segment: name}
		}
		out[name] = s
	}
	return out, nil
}

// interpolate substitutes every {name} slot in the template with the value
// of the matching kwargs entry. A slot without an entry is a *LinkError.
func interpolate(template string, kwargs map[string]string) (string, error) {
	var b strings.Builder
	rest := template
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		clos := strings.IndexByte(rest[open:], '}')
		if clos < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		slot := rest[open+1 : open+clos]
		value, ok := kwargs[slot]
		if !ok {
			return "", &LinkError{Template: template, Slot: slot}
		}
		b.WriteString(rest[:open])
		b.WriteString(value)
		rest = rest[open+clos+1:]
	}
}

// buildLink resolves a kwargs spec against source and interpolates it into
// the URL template.
func buildLink(template string, spec map[string]string, source any) (string, error) {
	kwargs, err := resolveKwargs(spec, source)
	if err != nil {
		return "", &LinkError{Template: template, Err: err}
	}
	return interpolate(template, kwargs)
}
