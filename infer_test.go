package tableskema_test

import (
	"testing"
	"time"

	tableskema "github.com/reoring/tableskema"
)

// TestInferType walks the candidate priority with one representative value
// per type.
func TestInferType(t *testing.T) {
	cases := []struct {
		name  string
		value any
		want  string
	}{
		{"integer", "42", "integer"},
		{"integer_four_digits", "2024", "integer"},
		{"number", "3.14", "number"},
		{"boolean", "true", "boolean"},
		{"date", "2024-06-15", "date"},
		{"time", "14:30:05", "time"},
		{"datetime", "2024-06-15T10:00:00Z", "datetime"},
		{"yearmonth", "2024-06", "yearmonth"},
		{"duration", "P1Y2M", "duration"},
		{"geopoint", "100,45", "geopoint"},
		{"geojson", `{"type":"Point","coordinates":[100,45]}`, "geojson"},
		{"array", `[1,2]`, "array"},
		{"object", `{"a":1}`, "object"},
		{"string", "hello", "string"},
		{"native_int", 42, "integer"},
		{"native_float", 2.5, "number"},
		{"native_bool", true, "boolean"},
		{"native_time", time.Now(), "date"},
		{"fallback_any", struct{}{}, "any"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tableskema.InferType(tc.value); got != tc.want {
				t.Fatalf("got=%q want=%q", got, tc.want)
			}
		})
	}
}

// TestInferDescriptor_TemporalFormats records the matched layout as a
// strptime format, leaving the default layout's format empty.
func TestInferDescriptor_TemporalFormats(t *testing.T) {
	cases := []struct {
		value      string
		wantType   string
		wantFormat string
	}{
		{"2024-06-15", "date", ""},
		{"2024/06/15", "date", "%Y/%m/%d"},
		{"15.06.2024", "date", "%d.%m.%Y"},
		{"14:30:05", "time", ""},
		{"14:30", "time", "%H:%M"},
		{"2024-06-15T10:00:00Z", "datetime", ""},
		{"2024-06-15 10:00:00", "datetime", "%Y-%m-%d %H:%M:%S"},
	}
	for _, tc := range cases {
		t.Run(tc.value, func(t *testing.T) {
			fd := tableskema.InferDescriptor(tc.value)
			if fd.Type != tc.wantType || fd.Format != tc.wantFormat {
				t.Fatalf("got=%s/%q want=%s/%q", fd.Type, fd.Format, tc.wantType, tc.wantFormat)
			}
		})
	}
}

// TestInferSchema_Columns derives per-column types from sampled rows and
// flags all-distinct columns as unique.
func TestInferSchema_Columns(t *testing.T) {
	headers := []string{"id", "price", "active", "joined"}
	rows := [][]any{
		{"1", "9.99", "true", "2024-06-15"},
		{"2", "14.50", "false", "2024-07-01"},
		{"3", "3.25", "true", "2024-07-20"},
	}
	s, err := tableskema.InferSchema(headers, rows)
	if err != nil {
		t.Fatalf("InferSchema: %v", err)
	}
	wantTypes := map[string]string{
		"id": "integer", "price": "number", "active": "boolean", "joined": "date",
	}
	for name, want := range wantTypes {
		f, ok := s.GetField(name)
		if !ok {
			t.Fatalf("field %s missing", name)
		}
		if f.Type() != want {
			t.Fatalf("%s: type got=%q want=%q", name, f.Type(), want)
		}
	}
	id, _ := s.GetField("id")
	if !id.Unique() {
		t.Fatalf("id should infer unique")
	}
	active, _ := s.GetField("active")
	if active.Unique() {
		t.Fatalf("active repeats values, must not infer unique")
	}

	// The inferred schema casts the data it was derived from.
	out, err := s.CastRow(tableskema.Row{"id": "1", "price": "9.99", "active": "true", "joined": "2024-06-15"})
	if err != nil {
		t.Fatalf("CastRow: %v", err)
	}
	if out["id"] != int64(1) || out["price"] != 9.99 || out["active"] != true {
		t.Fatalf("row got=%v", out)
	}
}

// TestInferSchema_Widening: a column must satisfy one candidate for every
// sampled value; mixed integer/decimal widens to number, anything less
// uniform degrades to string.
func TestInferSchema_Widening(t *testing.T) {
	s, err := tableskema.InferSchema(
		[]string{"mixed_num", "mixed_text", "mixed_dates"},
		[][]any{
			{"1", "1", "2024-06-15"},
			{"2.5", "x", "2024/06/15"},
		},
	)
	if err != nil {
		t.Fatalf("InferSchema: %v", err)
	}
	if f, _ := s.GetField("mixed_num"); f.Type() != "number" {
		t.Fatalf("mixed_num got=%q want=number", f.Type())
	}
	if f, _ := s.GetField("mixed_text"); f.Type() != "string" {
		t.Fatalf("mixed_text got=%q want=string", f.Type())
	}
	// Same type, different layouts: the format widens to "any".
	f, _ := s.GetField("mixed_dates")
	if f.Type() != "date" || f.Format() != "any" {
		t.Fatalf("mixed_dates got=%s/%q want=date/any", f.Type(), f.Format())
	}
}

// TestInferSchema_MissingValues skips sentinels while sampling; an
// all-missing column infers as string.
func TestInferSchema_MissingValues(t *testing.T) {
	s, err := tableskema.InferSchema(
		[]string{"n", "empty"},
		[][]any{
			{"", ""},
			{"42", ""},
		},
	)
	if err != nil {
		t.Fatalf("InferSchema: %v", err)
	}
	if f, _ := s.GetField("n"); f.Type() != "integer" {
		t.Fatalf("n got=%q want=integer", f.Type())
	}
	if f, _ := s.GetField("empty"); f.Type() != "string" {
		t.Fatalf("empty got=%q want=string", f.Type())
	}
}

// TestInferSchema_Options covers row limits, header normalization and
// nameless columns.
func TestInferSchema_Options(t *testing.T) {
	s, err := tableskema.InferSchema(
		[]string{"User Name", "Café Price", ""},
		[][]any{
			{"anyone", "9.99", "1"},
			{"someone", "x", "2"},
		},
		tableskema.InferOption{Limit: 1, NormalizeNames: true},
	)
	if err != nil {
		t.Fatalf("InferSchema: %v", err)
	}
	if !s.HasField("user_name") || !s.HasField("cafe_price") {
		t.Fatalf("normalized names missing: %v", s.FieldNames())
	}
	if !s.HasField("field3") {
		t.Fatalf("empty header should become field3: %v", s.FieldNames())
	}
	// Limit 1 sampled only the first row, so "x" never degraded the column.
	if f, _ := s.GetField("cafe_price"); f.Type() != "number" {
		t.Fatalf("cafe_price got=%q want=number", f.Type())
	}
}

// TestInferSchema_RaggedRows tolerates short rows; absent cells simply do
// not vote.
func TestInferSchema_RaggedRows(t *testing.T) {
	s, err := tableskema.InferSchema(
		[]string{"a", "b"},
		[][]any{
			{"1"},
			{"2", "true"},
		},
	)
	if err != nil {
		t.Fatalf("InferSchema: %v", err)
	}
	if f, _ := s.GetField("b"); f.Type() != "boolean" {
		t.Fatalf("b got=%q want=boolean", f.Type())
	}
}
