package jsonapi

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Generic helpers as top-level functions (methods cannot have type parameters yet)

// LoadAs runs the full deserialize path and coerces the engine's native
// object into T. Engines that return attribute mappings get a JSON
// round-trip coercion; engines that already return *T or T pass straight
// through.
func LoadAs[T any](s *Schema, raw []byte) (*T, *Document, error) {
	obj, errsDoc, err := s.Deserialize(raw)
	if err != nil || errsDoc != nil {
		return nil, errsDoc, err
	}
	switch v := obj.(type) {
	case *T:
		return v, nil, nil
	case T:
		return &v, nil, nil
	}
	var out T
	if err := convert(obj, &out); err != nil {
		return nil, nil, err
	}
	return &out, nil, nil
}

// convert coerces between shapes with a JSON round-trip. Lossy when the two
// sides do not share compatible JSON structure; engines needing more control
// should return the native type directly.
func convert[Input any, Output any](input Input, output *Output) error {
	data, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("jsonapi: marshal failed: %w", err)
	}
	if err = json.Unmarshal(data, output); err != nil {
		return fmt.Errorf("jsonapi: unmarshal failed: %w", err)
	}
	return nil
}
