// Package ddl renders CREATE TABLE statements from a schema. It emits text
// only and never touches a database.
package ddl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/tableskema"
)

// Dialect selects the SQL flavor of the emitted statement.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// Option bundles statement options.
type Option struct {
	// Dialect defaults to Postgres.
	Dialect Dialect
	// IfNotExists adds the IF NOT EXISTS clause.
	IfNotExists bool
}

// CreateTable renders a CREATE TABLE statement for the schema. Required
// fields become NOT NULL, the advisory unique flag becomes a UNIQUE column
// constraint, and the schema's primary key becomes a table constraint. The
// table name may be schema-qualified ("public.users").
func CreateTable(s *tableskema.Schema, table string, opt ...Option) (string, error) {
	var o Option
	if len(opt) > 0 {
		o = opt[0]
	}
	if o.Dialect == "" {
		o.Dialect = Postgres
	}
	switch o.Dialect {
	case Postgres, SQLite:
	default:
		return "", fmt.Errorf("unsupported dialect %q", o.Dialect)
	}
	if table == "" {
		return "", errors.New("table name is empty")
	}

	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	if o.IfNotExists {
		b.WriteString("IF NOT EXISTS ")
	}
	b.WriteString(quoteQualified(table))
	b.WriteString(" (\n")
	for i, f := range s.Fields() {
		if i > 0 {
			b.WriteString(",\n")
		}
		b.WriteString("    ")
		b.WriteString(quoteIdent(f.Name()))
		b.WriteByte(' ')
		b.WriteString(columnType(f.Type(), o.Dialect))
		if f.Required() {
			b.WriteString(" NOT NULL")
		}
		if f.Unique() {
			b.WriteString(" UNIQUE")
		}
	}
	if pk := s.PrimaryKey(); len(pk) > 0 {
		quoted := make([]string, len(pk))
		for i, name := range pk {
			quoted[i] = quoteIdent(name)
		}
		b.WriteString(",\n    PRIMARY KEY (")
		b.WriteString(strings.Join(quoted, ", "))
		b.WriteByte(')')
	}
	b.WriteString("\n);")
	return b.String(), nil
}

func columnType(fieldType string, d Dialect) string {
	if d == SQLite {
		switch fieldType {
		case tableskema.TypeInteger, tableskema.TypeYear, tableskema.TypeBoolean:
			return "INTEGER"
		case tableskema.TypeNumber:
			return "REAL"
		}
		return "TEXT"
	}
	switch fieldType {
	case tableskema.TypeInteger:
		return "BIGINT"
	case tableskema.TypeNumber:
		return "DOUBLE PRECISION"
	case tableskema.TypeBoolean:
		return "BOOLEAN"
	case tableskema.TypeDate:
		return "DATE"
	case tableskema.TypeTime:
		return "TIME"
	case tableskema.TypeDatetime:
		return "TIMESTAMPTZ"
	case tableskema.TypeYear:
		return "INTEGER"
	case tableskema.TypeDuration:
		return "INTERVAL"
	case tableskema.TypeGeopoint:
		return "POINT"
	case tableskema.TypeArray, tableskema.TypeObject, tableskema.TypeGeojson:
		return "JSONB"
	}
	return "TEXT"
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// quoteQualified quotes each dot-separated part of a possibly qualified name.
func quoteQualified(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = quoteIdent(p)
	}
	return strings.Join(parts, ".")
}
