package csv_test

import (
	"context"
	"strconv"
	"strings"
	"testing"

	tableskema "github.com/reoring/tableskema"
	"github.com/reoring/tableskema/csv"
)

func idNameSchema(t *testing.T) *tableskema.Schema {
	t.Helper()
	s, err := tableskema.New(map[string]any{
		"fields": []any{
			map[string]any{"name": "id", "type": "integer"},
			map[string]any{"name": "name", "type": "string"},
		},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

// TestOpen_HeadersAndRows reads the first record as headers and keys every
// row by them.
func TestOpen_HeadersAndRows(t *testing.T) {
	tab, err := csv.Open(strings.NewReader("id,name\n1,anyone\n2,someone\n"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if h := tab.Headers(); len(h) != 2 || h[0] != "id" || h[1] != "name" {
		t.Fatalf("headers got=%v", h)
	}
	rows, err := tab.ReadAll()
	if err != nil {
		t.Fatalf("read all: %v", err)
	}
	if len(rows) != 2 || rows[0]["id"] != "1" || rows[1]["name"] != "someone" {
		t.Fatalf("rows got=%v", rows)
	}
}

// TestOpen_Options covers delimiter, comment lines, skipped prologue rows
// and caller-supplied headers.
func TestOpen_Options(t *testing.T) {
	input := "junk to skip\n# a comment\nid;name\n1;anyone\n"
	tab, err := csv.Open(strings.NewReader(input), csv.Option{
		Delimiter: ';',
		Comment:   '#',
		SkipRows:  1,
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if h := tab.Headers(); len(h) != 2 || h[1] != "name" {
		t.Fatalf("headers got=%v", h)
	}
	rows, err := tab.ReadAll()
	if err != nil || len(rows) != 1 || rows[0]["name"] != "anyone" {
		t.Fatalf("rows got=%v err=%v", rows, err)
	}

	supplied, err := csv.Open(strings.NewReader("1,anyone\n"), csv.Option{
		Headers: []string{"id", "name"},
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	rows, err = supplied.ReadAll()
	if err != nil || len(rows) != 1 || rows[0]["id"] != "1" {
		t.Fatalf("rows got=%v err=%v", rows, err)
	}
}

// TestOpen_BOMAndEncoding strips a UTF-8 BOM and decodes declared legacy
// charsets.
func TestOpen_BOMAndEncoding(t *testing.T) {
	tab, err := csv.Open(strings.NewReader("\ufeffid,name\n1,a\n"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if h := tab.Headers(); h[0] != "id" {
		t.Fatalf("BOM survived in header: %q", h[0])
	}

	// "école" in ISO-8859-1: é is the single byte 0xE9.
	latin := "name\n\xe9cole\n"
	tab, err = csv.Open(strings.NewReader(latin), csv.Option{Encoding: "ISO-8859-1"})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	rows, err := tab.ReadAll()
	if err != nil || len(rows) != 1 {
		t.Fatalf("rows got=%v err=%v", rows, err)
	}
	if rows[0]["name"] != "école" {
		t.Fatalf("decoded got=%q want=%q", rows[0]["name"], "école")
	}

	if _, err := csv.Open(strings.NewReader("x"), csv.Option{Encoding: "no-such-charset"}); err == nil {
		t.Fatalf("expected error for unknown encoding")
	}
}

// TestRead_RaggedRecords pads short rows with nil and drops extra cells.
func TestRead_RaggedRecords(t *testing.T) {
	tab, err := csv.Open(strings.NewReader("a,b,c\n1,2\n1,2,3,4\n"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	short, err := tab.Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if short["b"] != "2" || short["c"] != nil {
		t.Fatalf("short got=%v", short)
	}
	long, err := tab.Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(long) != 3 || long["c"] != "3" {
		t.Fatalf("long got=%v", long)
	}
}

// TestSample returns headers plus up to n raw records for inference.
func TestSample(t *testing.T) {
	input := "id,joined\n1,2024-06-15\n2,2024-07-01\n3,2024-07-20\n"
	headers, rows, err := csv.Sample(strings.NewReader(input), 2)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if len(headers) != 2 || headers[1] != "joined" {
		t.Fatalf("headers got=%v", headers)
	}
	if len(rows) != 2 || rows[1][0] != "2" {
		t.Fatalf("rows got=%v", rows)
	}

	// n <= 0 samples everything; the result feeds InferSchema directly.
	headers, rows, err = csv.Sample(strings.NewReader(input), 0)
	if err != nil || len(rows) != 3 {
		t.Fatalf("rows got=%v err=%v", rows, err)
	}
	s, err := tableskema.InferSchema(headers, rows)
	if err != nil {
		t.Fatalf("InferSchema: %v", err)
	}
	if f, _ := s.GetField("joined"); f.Type() != "date" {
		t.Fatalf("joined got=%q want=date", f.Type())
	}
}

// TestCastAll_Serial keeps clean rows in input order and numbers every
// issue with its 1-based data row.
func TestCastAll_Serial(t *testing.T) {
	s := idNameSchema(t)
	input := "id,name\n1,a\n2,b\nx,c\n4,d\ny,e\n6,f\n"
	tab, err := csv.Open(strings.NewReader(input))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	rows, iss := csv.CastAll(context.Background(), tab, s)
	if len(rows) != 4 {
		t.Fatalf("rows got=%d want=4", len(rows))
	}
	wantIDs := []int64{1, 2, 4, 6}
	for i, want := range wantIDs {
		if rows[i]["id"] != want {
			t.Fatalf("row %d id got=%v want=%v", i, rows[i]["id"], want)
		}
	}
	if len(iss) != 2 {
		t.Fatalf("issues got=%v want 2", iss)
	}
	if iss[0].Row != 3 || iss[1].Row != 5 {
		t.Fatalf("issue rows got=%d,%d want 3,5", iss[0].Row, iss[1].Row)
	}
	if iss[0].Field != "id" || iss[0].Code != tableskema.CodeInvalidType {
		t.Fatalf("issue got=%+v", iss[0])
	}
}

// TestCastAll_Parallel must agree with the serial path: same rows, same
// order, same issue numbering.
func TestCastAll_Parallel(t *testing.T) {
	s := idNameSchema(t)
	var b strings.Builder
	b.WriteString("id,name\n")
	for i := 1; i <= 200; i++ {
		if i%10 == 0 {
			b.WriteString("bad,row\n")
			continue
		}
		b.WriteString(strconv.Itoa(i) + ",n\n")
	}

	tab, err := csv.Open(strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	rows, iss := csv.CastAll(context.Background(), tab, s, csv.CastOption{Workers: 8})
	if len(rows) != 180 {
		t.Fatalf("rows got=%d want=180", len(rows))
	}
	if len(iss) != 20 {
		t.Fatalf("issues got=%d want=20", len(iss))
	}
	// Clean rows keep input order.
	prev := int64(0)
	for _, row := range rows {
		id := row["id"].(int64)
		if id <= prev {
			t.Fatalf("order broken: %d after %d", id, prev)
		}
		prev = id
	}
	// Issues point at the failing data rows (10, 20, ...).
	for i, is := range iss {
		if is.Row != (i+1)*10 {
			t.Fatalf("issue %d row got=%d want=%d", i, is.Row, (i+1)*10)
		}
	}
}

// TestCastAll_CancelledContext stops casting and reports the interruption
// as a load_failed issue.
func TestCastAll_CancelledContext(t *testing.T) {
	s := idNameSchema(t)
	tab, err := csv.Open(strings.NewReader("id,name\n1,a\n2,b\n"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rows, iss := csv.CastAll(ctx, tab, s)
	if len(rows) != 0 {
		t.Fatalf("rows got=%v want none", rows)
	}
	if len(iss) == 0 || iss[len(iss)-1].Code != tableskema.CodeLoadFailed {
		t.Fatalf("issues got=%v want load_failed", iss)
	}
}
