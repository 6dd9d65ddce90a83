package tableskema

import (
	json "github.com/goccy/go-json"

	"github.com/reoring/tableskema/loader"
)

// Schema owns the ordered fields built from a validated descriptor. A Schema
// is immutable after construction and safe for concurrent CastRow calls.
type Schema struct {
	desc    Descriptor
	fields  []*Field
	index   map[string]int
	missing []string
}

// Option bundles schema construction options.
type Option struct {
	// MissingValues overrides the descriptor's sentinel list.
	MissingValues []string
}

// New builds a Schema. The source may be a Descriptor, a parsed descriptor
// object, JSON or YAML text, a file path, or an http(s) URL; text, file and
// URL resolution is delegated to the loader package.
//
// Construction is atomic: on any load or structural failure New returns a nil
// Schema and an Issues error carrying the complete defect list.
func New(source any, opt ...Option) (*Schema, error) {
	var d Descriptor
	switch src := source.(type) {
	case Descriptor:
		d = src
	case *Descriptor:
		d = *src
	case map[string]any:
		var err error
		d, err = DecodeDescriptor(src)
		if err != nil {
			return nil, Issues{schemaIssue(CodeInvalidDescriptor, "", err.Error())}
		}
	default:
		m, err := loader.Load(source)
		if err != nil {
			return nil, Issues{loadIssue(err.Error(), err)}
		}
		d, err = DecodeDescriptor(m)
		if err != nil {
			return nil, Issues{schemaIssue(CodeInvalidDescriptor, "", err.Error())}
		}
	}
	fields, iss := buildFields(d)
	if len(iss) > 0 {
		return nil, iss
	}
	s := &Schema{
		desc:    d,
		fields:  fields,
		index:   make(map[string]int, len(fields)),
		missing: d.MissingValues,
	}
	for i, f := range fields {
		s.index[f.Name()] = i
	}
	if len(opt) > 0 && opt[0].MissingValues != nil {
		s.missing = opt[0].MissingValues
	}
	return s, nil
}

// Validate attempts full construction from the source and returns nil on
// success or the merged load/structural issue list. It never panics.
func Validate(source any) Issues {
	if _, err := New(source); err != nil {
		if iss, ok := AsIssues(err); ok {
			return iss
		}
		return Issues{loadIssue(err.Error(), err)}
	}
	return nil
}

// Fields returns the schema's fields in declaration order.
func (s *Schema) Fields() []*Field { return s.fields }

// FieldNames returns the declared field names in order.
func (s *Schema) FieldNames() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name()
	}
	return names
}

// GetField looks a field up by name.
func (s *Schema) GetField(name string) (*Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.fields[i], true
}

// HasField reports whether the schema declares the field.
func (s *Schema) HasField(name string) bool {
	_, ok := s.index[name]
	return ok
}

// MissingValues returns the sentinel list in effect.
func (s *Schema) MissingValues() []string { return s.missing }

// PrimaryKey returns the advisory primary key field names.
func (s *Schema) PrimaryKey() []string { return s.desc.PrimaryKey }

// Descriptor returns the descriptor the schema was built from.
func (s *Schema) Descriptor() Descriptor { return s.desc }

// CastRow casts a raw row against every declared field, in declaration
// order. Absent keys and sentinel values read as nil; raws the row supplies
// for undeclared fields are ignored. All fields are processed regardless of
// individual failures; when any field fails the error is an Issues list
// carrying every issue from the whole row, and no row is returned.
func (s *Schema) CastRow(row Row) (Row, error) {
	out := make(Row, len(s.fields))
	var iss Issues
	for _, f := range s.fields {
		raw := s.resolveRaw(row, f.Name())
		v, err := f.CastValue(raw)
		if err != nil {
			more, _ := AsIssues(err)
			iss = AppendIssues(iss, more...)
			continue
		}
		out[f.Name()] = v
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

// ValidateRow runs CastRow and converts a failure into its issue list. It
// returns nil on success and never panics.
func (s *Schema) ValidateRow(row Row) Issues {
	if _, err := s.CastRow(row); err != nil {
		iss, _ := AsIssues(err)
		return iss
	}
	return nil
}

// resolveRaw reads the raw value by field name and applies the missing-value
// sentinels. Sentinels compare against string raws only.
func (s *Schema) resolveRaw(row Row, name string) any {
	raw, ok := row[name]
	if !ok || raw == nil {
		return nil
	}
	if str, isStr := raw.(string); isStr {
		for _, mv := range s.missing {
			if str == mv {
				return nil
			}
		}
	}
	return raw
}

// MarshalJSON encodes the schema as its descriptor.
func (s *Schema) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.desc)
}
