package tableskema

import "fmt"

// CheckDescriptor validates a descriptor's structure: field naming, type and
// format tags, and per-type constraint support, including castability of enum
// members and bounds. It returns the complete issue list (kind
// schema_validation), or nil when the descriptor would build cleanly.
func CheckDescriptor(d Descriptor) Issues {
	_, iss := buildFields(d)
	return iss
}

// buildFields instantiates one Field per descriptor entry, collecting every
// structural issue instead of stopping at the first. Either all fields build
// and the issue list is empty, or no fields are returned at all.
func buildFields(d Descriptor) ([]*Field, Issues) {
	var iss Issues
	if len(d.Fields) == 0 {
		iss = AppendIssues(iss, schemaIssue(CodeInvalidDescriptor, "", "descriptor declares no fields"))
	}
	fields := make([]*Field, 0, len(d.Fields))
	seen := make(map[string]bool, len(d.Fields))
	for _, fd := range d.Fields {
		if fd.Name == "" {
			iss = AppendIssues(iss, schemaIssue(CodeEmptyFieldName, "", "field name is missing"))
			continue
		}
		if seen[fd.Name] {
			iss = AppendIssues(iss, schemaIssue(CodeDuplicateField, fd.Name,
				fmt.Sprintf("duplicate field name %q", fd.Name)))
			continue
		}
		seen[fd.Name] = true
		f, fiss := newField(fd)
		if len(fiss) > 0 {
			iss = AppendIssues(iss, fiss...)
			continue
		}
		fields = append(fields, f)
	}
	for _, pk := range d.PrimaryKey {
		if !seen[pk] {
			iss = AppendIssues(iss, schemaIssue(CodeUnknownPrimaryKey, pk,
				fmt.Sprintf("primaryKey names undeclared field %q", pk)))
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return fields, nil
}
