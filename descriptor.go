package tableskema

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"

	"github.com/mitchellh/mapstructure"
)

// Descriptor declares a schema: an ordered list of field descriptors plus
// table-level options. It is plain data; Schema construction validates it.
type Descriptor struct {
	Fields []FieldDescriptor `json:"fields"`
	// MissingValues lists raw strings treated as absent before casting.
	// When the source descriptor omits the key it defaults to [""].
	MissingValues []string `json:"missingValues,omitempty"`
	// PrimaryKey is advisory: carried and exposed, never enforced.
	PrimaryKey []string `json:"primaryKey,omitempty"`
}

// FieldDescriptor declares one named, typed column.
type FieldDescriptor struct {
	Name        string       `json:"name"`
	Type        string       `json:"type"`
	Format      string       `json:"format,omitempty"`
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Constraints *Constraints `json:"constraints,omitempty"`
	// Boolean fields: raw strings accepted as true/false. Nil means the
	// defaults ("true","True","TRUE","1" / "false","False","FALSE","0").
	TrueValues  []string `json:"trueValues,omitempty"`
	FalseValues []string `json:"falseValues,omitempty"`
	// Number fields: decimal separator (default "."), digit grouping
	// separator (default none), and whether the raw text is a bare number.
	// BareNumber false strips leading/trailing non-numeric text.
	DecimalChar string `json:"decimalChar,omitempty"`
	GroupChar   string `json:"groupChar,omitempty"`
	BareNumber  *bool  `json:"bareNumber,omitempty"`
}

// Constraints is the generic constraint vocabulary. Enum members and
// Minimum/Maximum bounds are raw values cast through the field's own type at
// schema construction.
type Constraints struct {
	Required bool `json:"required,omitempty"`
	// Unique is advisory: exposed to callers and flagged by inference,
	// not enforced during casting.
	Unique    bool   `json:"unique,omitempty"`
	Enum      []any  `json:"enum,omitempty"`
	Pattern   string `json:"pattern,omitempty"`
	Minimum   any    `json:"minimum,omitempty"`
	Maximum   any    `json:"maximum,omitempty"`
	MinLength *int   `json:"minLength,omitempty"`
	MaxLength *int   `json:"maxLength,omitempty"`
}

// DecodeDescriptor converts a parsed descriptor object into a Descriptor.
// Unknown keys are tolerated (Table Schema allows custom properties). A
// descriptor that omits missingValues gets the default sentinel list [""].
func DecodeDescriptor(m map[string]any) (Descriptor, error) {
	var d Descriptor
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			numberToScalarHook,
			scalarToSliceHook,
		),
		TagName: "json",
		Result:  &d,
	})
	if err != nil {
		return Descriptor{}, err
	}
	if err := dec.Decode(m); err != nil {
		return Descriptor{}, err
	}
	if _, ok := m["missingValues"]; !ok {
		d.MissingValues = []string{""}
	}
	return d, nil
}

// numberToScalarHook converts json.Number sources into int/float targets so
// descriptors decoded with UseNumber fill numeric struct fields.
func numberToScalarHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	num, ok := data.(json.Number)
	if !ok {
		return data, nil
	}
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(num.String(), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot decode %q as integer", num.String())
		}
		return n, nil
	case reflect.Float32, reflect.Float64:
		f, err := num.Float64()
		if err != nil {
			return nil, fmt.Errorf("cannot decode %q as number", num.String())
		}
		return f, nil
	}
	return data, nil
}

// scalarToSliceHook wraps a lone string into a one-element slice so
// primaryKey accepts both the string and array descriptor forms.
func scalarToSliceHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Slice {
		return data, nil
	}
	if to.Elem().Kind() != reflect.String {
		return data, nil
	}
	s, ok := data.(string)
	if !ok {
		return data, nil
	}
	return []string{s}, nil
}
