package tableskema

import (
	"fmt"
	"time"

	"github.com/zeebo/xxh3"

	"github.com/reoring/tableskema/internal/textutil"
)

// inferCandidate is one entry of the fixed inference priority: a type tag
// plus a trial caster. Temporal tags carry a nil caster and probe their
// layout tables instead, so a detected format can be reported.
type inferCandidate struct {
	tag    string
	caster caster
}

// inferCandidates is ordered most specific first. "any" is the terminal
// candidate and accepts everything.
var inferCandidates = []inferCandidate{
	{TypeInteger, integerCaster{bare: true}},
	{TypeNumber, numberCaster{bare: true}},
	{TypeBoolean, newBooleanCaster(nil, nil)},
	{TypeDate, nil},
	{TypeTime, nil},
	{TypeDatetime, nil},
	{TypeYear, yearCaster{}},
	{TypeYearmonth, yearmonthCaster{}},
	{TypeDuration, durationCaster{}},
	{TypeGeopoint, geopointCaster{format: FormatDefault}},
	{TypeGeojson, geojsonCaster{format: FormatDefault}},
	{TypeArray, arrayCaster{}},
	{TypeObject, objectCaster{}},
	{TypeString, stringCaster{format: FormatDefault}},
	{TypeAny, anyCaster{}},
}

// probe reports whether the candidate accepts the value, refining the
// returned descriptor with detected properties (temporal layouts become
// strptime formats).
func (c inferCandidate) probe(value any) (FieldDescriptor, bool) {
	fd := FieldDescriptor{Type: c.tag}
	if c.caster == nil {
		switch v := value.(type) {
		case time.Time:
			return fd, true
		case string:
			strf, ok := inferTemporalFormat(c.tag, v)
			if !ok {
				return fd, false
			}
			fd.Format = strf
			return fd, true
		}
		return fd, false
	}
	_, err := c.caster.parse(value)
	return fd, err == nil
}

// InferType returns the most specific type tag whose caster accepts the
// value. It never fails; "any" is the fallback.
func InferType(value any) string {
	return InferDescriptor(value).Type
}

// InferDescriptor probes the candidate types in priority order and returns a
// descriptor for the first one that accepts the value, refined with detected
// properties. The descriptor has no name; callers assign one.
func InferDescriptor(value any) FieldDescriptor {
	for _, cand := range inferCandidates {
		if fd, ok := cand.probe(value); ok {
			return fd
		}
	}
	return FieldDescriptor{Type: TypeAny}
}

// InferOption bundles schema inference options.
type InferOption struct {
	// Limit caps how many rows are sampled; 0 samples every provided row.
	Limit int
	// MissingValues are treated as absent while sampling and recorded on the
	// inferred descriptor. Defaults to [""].
	MissingValues []string
	// NormalizeNames rewrites headers into lower_snake_case field names.
	NormalizeNames bool
}

// InferSchema derives a schema from column headers and sampled rows. Each
// column gets the most specific candidate type accepted by every non-missing
// sampled value; mixed integer/number columns widen to number and anything
// less uniform degrades to string (or any for non-string oddities).
// Columns whose sampled values are all distinct get an advisory unique flag.
// Inference itself never fails on data content; the error path is schema
// construction.
func InferSchema(headers []string, rows [][]any, opt ...InferOption) (*Schema, error) {
	var o InferOption
	if len(opt) > 0 {
		o = opt[0]
	}
	if o.MissingValues == nil {
		o.MissingValues = []string{""}
	}
	sample := rows
	if o.Limit > 0 && len(sample) > o.Limit {
		sample = sample[:o.Limit]
	}
	d := Descriptor{
		Fields:        make([]FieldDescriptor, 0, len(headers)),
		MissingValues: o.MissingValues,
	}
	for i, h := range headers {
		name := h
		if o.NormalizeNames {
			name = textutil.NormalizeName(name)
		}
		if name == "" {
			name = fmt.Sprintf("field%d", i+1)
		}
		values := columnValues(sample, i, o.MissingValues)
		fd := inferColumn(values)
		fd.Name = name
		if len(values) >= 2 && allDistinct(values) {
			fd.Constraints = &Constraints{Unique: true}
		}
		d.Fields = append(d.Fields, fd)
	}
	return New(d)
}

// inferColumn picks the first candidate every sampled value accepts. An
// all-missing column infers as string. Temporal columns whose values match
// different layouts get format "any".
func inferColumn(values []any) FieldDescriptor {
	if len(values) == 0 {
		return FieldDescriptor{Type: TypeString}
	}
	for _, cand := range inferCandidates {
		fd, ok := cand.probe(values[0])
		if !ok {
			continue
		}
		all := true
		for _, v := range values[1:] {
			next, vok := cand.probe(v)
			if !vok {
				all = false
				break
			}
			if next.Format != fd.Format {
				fd.Format = "any"
			}
		}
		if all {
			return fd
		}
	}
	return FieldDescriptor{Type: TypeAny}
}

func columnValues(rows [][]any, col int, missing []string) []any {
	values := make([]any, 0, len(rows))
	for _, row := range rows {
		if col >= len(row) {
			continue
		}
		v := row[col]
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok && containsString(missing, s) {
			continue
		}
		values = append(values, v)
	}
	return values
}

func containsString(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

// allDistinct hashes each value's string form and reports whether no hash
// repeats. A hash collision can mask a distinct column, which is acceptable
// for an advisory flag.
func allDistinct(values []any) bool {
	seen := make(map[uint64]struct{}, len(values))
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			s = fmt.Sprint(v)
		}
		h := xxh3.HashString(s)
		if _, dup := seen[h]; dup {
			return false
		}
		seen[h] = struct{}{}
	}
	return true
}
