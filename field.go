package tableskema

import (
	"fmt"
	"regexp"
)

// Field type tags. Dispatch is closed: a descriptor naming any other tag is a
// structural error, never a silent no-op.
const (
	TypeString    = "string"
	TypeInteger   = "integer"
	TypeNumber    = "number"
	TypeBoolean   = "boolean"
	TypeDate      = "date"
	TypeTime      = "time"
	TypeDatetime  = "datetime"
	TypeYear      = "year"
	TypeYearmonth = "yearmonth"
	TypeDuration  = "duration"
	TypeArray     = "array"
	TypeObject    = "object"
	TypeGeopoint  = "geopoint"
	TypeGeojson   = "geojson"
	TypeAny       = "any"
)

// FormatDefault is the format every field falls back to when the descriptor
// leaves format unset.
const FormatDefault = "default"

// caster is the parsing engine behind a Field: it interprets a raw non-empty
// value as the field's native type. Casters never check constraints; the
// constraint pass belongs to Field. They hold no mutable state.
type caster interface {
	typeName() string
	parse(raw any) (any, error)
}

// Field is one named, typed column definition plus its constraints. A Field
// is immutable after construction and safe for concurrent use; constraint
// bounds and enum members are cast once, at construction, through the same
// parse path used for row values.
type Field struct {
	desc   FieldDescriptor
	caster caster

	required bool
	unique   bool
	pattern  *regexp.Regexp
	enum     []any // native members, parse order preserved
	minimum  any   // native bound, nil when unset
	maximum  any
	minLen   *int
	maxLen   *int
}

// NewField builds a Field from its descriptor. The returned error, when not
// nil, is an Issues list of kind schema_validation covering every defect.
func NewField(fd FieldDescriptor) (*Field, error) {
	f, iss := newField(fd)
	if len(iss) > 0 {
		return nil, iss
	}
	return f, nil
}

func newField(fd FieldDescriptor) (*Field, Issues) {
	c, iss := newCaster(fd)
	if len(iss) > 0 {
		return nil, iss
	}
	f := &Field{desc: fd, caster: c}
	if fd.Constraints != nil {
		iss = AppendIssues(iss, f.compileConstraints(*fd.Constraints)...)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return f, nil
}

// Name returns the descriptor's name.
func (f *Field) Name() string { return f.desc.Name }

// Type returns the field's type tag.
func (f *Field) Type() string { return f.caster.typeName() }

// Format returns the descriptor's format, defaulting to "default".
func (f *Field) Format() string {
	if f.desc.Format == "" {
		return FormatDefault
	}
	return f.desc.Format
}

// Required reports whether the constraints declare required: true.
func (f *Field) Required() bool { return f.required }

// Unique reports the advisory unique flag.
func (f *Field) Unique() bool { return f.unique }

// Enum returns the declared raw enum members in order, or nil.
func (f *Field) Enum() []any {
	if f.desc.Constraints == nil {
		return nil
	}
	return f.desc.Constraints.Enum
}

// Descriptor returns a copy of the descriptor the field was built from.
func (f *Field) Descriptor() FieldDescriptor { return f.desc }

// CastValue casts a raw value to the field's native type.
//
// Empty values (nil, and the empty string for string-family fields) yield nil
// when the field is not required and a "field is required" issue when it is.
// A value the type cannot parse yields a single invalid_type issue and skips
// constraints. A parsed value that violates constraints yields every violated
// constraint at once. The error, when not nil, is always an Issues list of
// kind field_validation.
func (f *Field) CastValue(raw any) (any, error) {
	if f.isEmptyRaw(raw) {
		if f.required {
			return nil, Issues{fieldIssue(CodeRequired, f.Name(), raw, msgRequired)}
		}
		return nil, nil
	}
	native, err := f.caster.parse(raw)
	if err != nil {
		is := fieldIssue(CodeInvalidType, f.Name(), raw, "value is not "+f.Type())
		is.Cause = err
		return nil, Issues{is}
	}
	if iss := f.checkConstraints(native, raw); len(iss) > 0 {
		return nil, iss
	}
	return native, nil
}

// ValidateValue runs CastValue and converts a failure into its issue list.
// It returns nil on success and never panics.
func (f *Field) ValidateValue(raw any) Issues {
	if _, err := f.CastValue(raw); err != nil {
		iss, _ := AsIssues(err)
		return iss
	}
	return nil
}

// TestValue reports whether the raw value casts cleanly.
func (f *Field) TestValue(raw any) bool {
	_, err := f.CastValue(raw)
	return err == nil
}

// isEmptyRaw implements the emptiness rule: nil is empty for every type, and
// string-family fields widen it to the empty string.
func (f *Field) isEmptyRaw(raw any) bool {
	if raw == nil {
		return true
	}
	if s, ok := raw.(string); ok && s == "" {
		switch f.caster.(type) {
		case stringCaster, anyCaster:
			return true
		}
	}
	return false
}

// newCaster dispatches by type tag and validates the format for the type.
func newCaster(fd FieldDescriptor) (caster, Issues) {
	format := fd.Format
	if format == "" {
		format = FormatDefault
	}
	fail := func(code, msg string) (caster, Issues) {
		return nil, Issues{schemaIssue(code, fd.Name, msg)}
	}
	switch fd.Type {
	case TypeString:
		switch format {
		case FormatDefault, "email", "uri", "uuid", "binary":
			return stringCaster{format: format}, nil
		}
		return fail(CodeUnknownFormat, fmt.Sprintf("unknown string format %q", format))
	case TypeInteger:
		if format != FormatDefault {
			return fail(CodeUnknownFormat, fmt.Sprintf("unknown integer format %q", format))
		}
		return integerCaster{groupChar: fd.GroupChar, bare: fd.BareNumber == nil || *fd.BareNumber}, nil
	case TypeNumber:
		if format != FormatDefault {
			return fail(CodeUnknownFormat, fmt.Sprintf("unknown number format %q", format))
		}
		return numberCaster{
			decimalChar: fd.DecimalChar,
			groupChar:   fd.GroupChar,
			bare:        fd.BareNumber == nil || *fd.BareNumber,
		}, nil
	case TypeBoolean:
		if format != FormatDefault {
			return fail(CodeUnknownFormat, fmt.Sprintf("unknown boolean format %q", format))
		}
		return newBooleanCaster(fd.TrueValues, fd.FalseValues), nil
	case TypeDate, TypeTime, TypeDatetime:
		return newTemporalCaster(fd.Type, format, fd.Name)
	case TypeYear:
		if format != FormatDefault {
			return fail(CodeUnknownFormat, fmt.Sprintf("unknown year format %q", format))
		}
		return yearCaster{}, nil
	case TypeYearmonth:
		if format != FormatDefault {
			return fail(CodeUnknownFormat, fmt.Sprintf("unknown yearmonth format %q", format))
		}
		return yearmonthCaster{}, nil
	case TypeDuration:
		if format != FormatDefault {
			return fail(CodeUnknownFormat, fmt.Sprintf("unknown duration format %q", format))
		}
		return durationCaster{}, nil
	case TypeArray:
		if format != FormatDefault {
			return fail(CodeUnknownFormat, fmt.Sprintf("unknown array format %q", format))
		}
		return arrayCaster{}, nil
	case TypeObject:
		if format != FormatDefault {
			return fail(CodeUnknownFormat, fmt.Sprintf("unknown object format %q", format))
		}
		return objectCaster{}, nil
	case TypeGeopoint:
		switch format {
		case FormatDefault, "array", "object":
			return geopointCaster{format: format}, nil
		}
		return fail(CodeUnknownFormat, fmt.Sprintf("unknown geopoint format %q", format))
	case TypeGeojson:
		switch format {
		case FormatDefault, "topojson":
			return geojsonCaster{format: format}, nil
		}
		return fail(CodeUnknownFormat, fmt.Sprintf("unknown geojson format %q", format))
	case TypeAny:
		if format != FormatDefault {
			return fail(CodeUnknownFormat, fmt.Sprintf("unknown any format %q", format))
		}
		return anyCaster{}, nil
	case "":
		return fail(CodeUnknownType, "field type is missing")
	}
	return fail(CodeUnknownType, fmt.Sprintf("unknown field type %q", fd.Type))
}
