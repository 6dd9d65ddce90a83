package tableskema

// fieldIssue creates a field_validation issue for the named field.
func fieldIssue(code, field string, value any, msg string) Issue {
	return Issue{Kind: KindFieldValidation, Code: code, Field: field, Value: value, Message: msg}
}

// schemaIssue creates a schema_validation issue; field may be empty for
// descriptor-level defects.
func schemaIssue(code, field, msg string) Issue {
	return Issue{Kind: KindSchemaValidation, Code: code, Field: field, Message: msg}
}

// loadIssue creates a load_failed issue wrapping the underlying cause.
func loadIssue(msg string, cause error) Issue {
	return Issue{Kind: KindLoadFailed, Code: CodeLoadFailed, Message: msg, Cause: cause}
}
