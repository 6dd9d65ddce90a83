package tableskema

import (
	"errors"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
)

// arrayCaster handles the array type: a []any, or a string holding a JSON
// array. Native value: []any.
type arrayCaster struct{}

func (arrayCaster) typeName() string { return TypeArray }

func (arrayCaster) parse(raw any) (any, error) {
	switch v := raw.(type) {
	case []any:
		return v, nil
	case string:
		parsed, err := decodeJSONValue(v)
		if err != nil {
			return nil, fmt.Errorf("invalid JSON array: %w", err)
		}
		arr, ok := parsed.([]any)
		if !ok {
			return nil, errors.New("JSON value is not an array")
		}
		return arr, nil
	}
	return nil, fmt.Errorf("expected array, got %T", raw)
}

// objectCaster handles the object type: a map[string]any, or a string holding
// a JSON object. Native value: map[string]any.
type objectCaster struct{}

func (objectCaster) typeName() string { return TypeObject }

func (objectCaster) parse(raw any) (any, error) {
	switch v := raw.(type) {
	case map[string]any:
		return v, nil
	case string:
		parsed, err := decodeJSONValue(v)
		if err != nil {
			return nil, fmt.Errorf("invalid JSON object: %w", err)
		}
		obj, ok := parsed.(map[string]any)
		if !ok {
			return nil, errors.New("JSON value is not an object")
		}
		return obj, nil
	}
	return nil, fmt.Errorf("expected object, got %T", raw)
}

// decodeJSONValue parses exactly one JSON value, preserving numbers as
// json.Number and rejecting trailing content.
func decodeJSONValue(s string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("trailing data after JSON value")
	}
	return v, nil
}
