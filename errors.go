package tableskema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/tableskema/i18n"
)

// Issue kinds. Every Issue carries exactly one.
const (
	// KindLoadFailed marks a descriptor source that could not be read or parsed.
	KindLoadFailed = "load_failed"
	// KindSchemaValidation marks a structural defect in a descriptor.
	KindSchemaValidation = "schema_validation"
	// KindFieldValidation marks a value that failed required/parse/constraint checks.
	KindFieldValidation = "field_validation"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeRequired    = "required"
	CodeInvalidType = "invalid_type"
	CodeEnum        = "enum"
	CodePattern     = "pattern"
	CodeMinimum     = "minimum"
	CodeMaximum     = "maximum"
	CodeMinLength   = "min_length"
	CodeMaxLength   = "max_length"
	// Descriptor-level codes (KindSchemaValidation)
	CodeUnknownType           = "unknown_type"
	CodeUnknownFormat         = "unknown_format"
	CodeEmptyFieldName        = "empty_field_name"
	CodeDuplicateField        = "duplicate_field"
	CodeUnsupportedConstraint = "unsupported_constraint"
	CodeInvalidPattern        = "invalid_pattern"
	CodeInvalidBound          = "invalid_bound"
	CodeInvalidEnumMember     = "invalid_enum_member"
	CodeInvalidLengthBound    = "invalid_length_bound"
	CodeUnknownPrimaryKey     = "unknown_primary_key"
	CodeInvalidDescriptor     = "invalid_descriptor"
	// Source-level code (KindLoadFailed)
	CodeLoadFailed = "load_failed"
)

// Issue represents a single validation entry.
type Issue struct {
	Kind    string // One of the Kind* constants.
	Code    string // One of the codes listed above.
	Field   string // Field name; empty for descriptor- or source-level issues.
	Value   any    // Offending raw value, when one exists.
	Message string
	// Row is the 1-based data row number when the issue was produced while
	// casting a table; 0 when unknown or not row-scoped.
	Row   int
	Cause error // Optional: underlying error.
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. maximum at age
		if it.Field != "" {
			fmt.Fprintf(b, "%s at %s", it.Code, it.Field)
		} else {
			b.WriteString(it.Code)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// Localize returns a copy of the issue with Message swapped for the current
// translation of its code. The English Message wording is the stable
// contract; localization is presentation only.
func (i Issue) Localize() Issue {
	i.Message = i18n.T(i.Code, map[string]string{"field": i.Field})
	return i
}

// Localize translates every issue in the list.
func (iss Issues) Localize() Issues {
	out := make(Issues, len(iss))
	for n, is := range iss {
		out[n] = is.Localize()
	}
	return out
}
