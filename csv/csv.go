// Package csv reads delimited tabular files into rows a Schema can cast, and
// casts whole tables with bounded parallelism.
package csv

import (
	"context"
	stdcsv "encoding/csv"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/reoring/tableskema"
)

// Option bundles table reading options.
type Option struct {
	// Delimiter is the field separator, ',' when zero.
	Delimiter rune
	// Comment makes the reader skip lines starting with the rune; off when zero.
	Comment rune
	// Headers supplies the column names; the input is then all data rows.
	Headers []string
	// SkipRows discards leading rows before the header row.
	SkipRows int
	// Encoding is an IANA charset name; UTF-8 when empty. A BOM always wins.
	Encoding string
}

// Table is an open tabular source with resolved headers.
type Table struct {
	r       *stdcsv.Reader
	headers []string
}

// Open prepares a table for reading. The reader is parsed leniently: lazy
// quotes, ragged record widths and leading space are all tolerated, so data
// problems surface as cast issues rather than reader errors.
func Open(r io.Reader, opt ...Option) (*Table, error) {
	var o Option
	if len(opt) > 0 {
		o = opt[0]
	}
	decoded, err := decodingReader(r, o.Encoding)
	if err != nil {
		return nil, err
	}
	cr := stdcsv.NewReader(decoded)
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	if o.Delimiter != 0 {
		cr.Comma = o.Delimiter
	}
	if o.Comment != 0 {
		cr.Comment = o.Comment
	}
	t := &Table{r: cr}
	for i := 0; i < o.SkipRows; i++ {
		if _, err := cr.Read(); err != nil {
			return nil, fmt.Errorf("skip row %d: %w", i+1, err)
		}
	}
	if o.Headers != nil {
		t.headers = o.Headers
		return t, nil
	}
	rec, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header row: %w", err)
	}
	t.headers = rec
	return t, nil
}

// decodingReader wraps the input with the requested charset decoder. The BOM
// override strips a UTF-8 BOM and honors UTF-16 BOMs whatever the declared
// encoding says.
func decodingReader(r io.Reader, name string) (io.Reader, error) {
	var dec *encoding.Decoder
	if name == "" {
		dec = unicode.UTF8.NewDecoder()
	} else {
		enc, err := ianaindex.IANA.Encoding(name)
		if err != nil || enc == nil {
			return nil, fmt.Errorf("unknown encoding %q", name)
		}
		dec = enc.NewDecoder()
	}
	return transform.NewReader(r, unicode.BOMOverride(dec)), nil
}

// Headers returns the resolved column names.
func (t *Table) Headers() []string { return t.headers }

// Read returns the next data row keyed by header name, or io.EOF. Short
// records pad missing columns with nil; extra cells beyond the headers are
// dropped.
func (t *Table) Read() (tableskema.Row, error) {
	rec, err := t.r.Read()
	if err != nil {
		return nil, err
	}
	row := make(tableskema.Row, len(t.headers))
	for i, name := range t.headers {
		if i < len(rec) {
			row[name] = rec[i]
		} else {
			row[name] = nil
		}
	}
	return row, nil
}

// ReadAll reads every remaining data row.
func (t *Table) ReadAll() ([]tableskema.Row, error) {
	var rows []tableskema.Row
	for {
		row, err := t.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
}

// Sample reads the headers plus up to n raw records for schema inference;
// n <= 0 reads everything.
func Sample(r io.Reader, n int, opt ...Option) ([]string, [][]any, error) {
	t, err := Open(r, opt...)
	if err != nil {
		return nil, nil, err
	}
	var rows [][]any
	for n <= 0 || len(rows) < n {
		rec, err := t.r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		vals := make([]any, len(rec))
		for i, cell := range rec {
			vals[i] = cell
		}
		rows = append(rows, vals)
	}
	return t.headers, rows, nil
}

// CastOption bundles batch casting options.
type CastOption struct {
	// Workers sets the casting parallelism; values below 2 cast serially.
	Workers int
}

// CastAll reads and casts every remaining row. Rows that cast cleanly come
// back in input order; each issue from a failed row carries its 1-based data
// row number. Parallel casting shares one Schema across workers, which is
// safe because Schema is immutable after construction.
func CastAll(ctx context.Context, t *Table, s *tableskema.Schema, opt ...CastOption) ([]tableskema.Row, tableskema.Issues) {
	raws, err := t.ReadAll()
	if err != nil {
		return nil, tableskema.Issues{{
			Kind:    tableskema.KindLoadFailed,
			Code:    tableskema.CodeLoadFailed,
			Message: fmt.Sprintf("read table: %v", err),
			Cause:   err,
		}}
	}
	workers := 1
	if len(opt) > 0 && opt[0].Workers > 1 {
		workers = opt[0].Workers
	}

	results := make([]tableskema.Row, len(raws))
	rowIssues := make([]tableskema.Issues, len(raws))
	cast := func(i int) {
		out, err := s.CastRow(raws[i])
		if err != nil {
			iss, _ := tableskema.AsIssues(err)
			rowIssues[i] = iss
			return
		}
		results[i] = out
	}

	var waitErr error
	if workers > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for i := range raws {
			i := i
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				cast(i)
				return nil
			})
		}
		waitErr = g.Wait()
	} else {
		for i := range raws {
			if waitErr = ctx.Err(); waitErr != nil {
				break
			}
			cast(i)
		}
	}

	var iss tableskema.Issues
	out := make([]tableskema.Row, 0, len(raws))
	for i := range raws {
		if len(rowIssues[i]) > 0 {
			for _, is := range rowIssues[i] {
				is.Row = i + 1
				iss = tableskema.AppendIssues(iss, is)
			}
			continue
		}
		if results[i] != nil {
			out = append(out, results[i])
		}
	}
	if waitErr != nil {
		iss = tableskema.AppendIssues(iss, tableskema.Issue{
			Kind:    tableskema.KindLoadFailed,
			Code:    tableskema.CodeLoadFailed,
			Message: fmt.Sprintf("casting interrupted: %v", waitErr),
			Cause:   waitErr,
		})
	}
	return out, iss
}
