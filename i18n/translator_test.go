package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("required", nil); msg != "field is required" {
		t.Fatalf("expected en message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T("required", nil); msg != "必須フィールドです" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// unknown languages fall back to en
	SetLanguage("fr")
	if msg := T("maximum", nil); msg != "value is above maximum" {
		t.Fatalf("expected en fallback, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_UnknownCode(t *testing.T) {
	if msg := T("no_such_code", nil); msg != "no_such_code" {
		t.Fatalf("expected code passthrough, got %q", msg)
	}
}

type upperTranslator struct{}

func (upperTranslator) Message(code string, data map[string]string) string {
	return "CODE:" + code + " FIELD:" + data["field"]
}

func TestSetTranslator_CustomAndReset(t *testing.T) {
	SetTranslator(upperTranslator{})
	if msg := T("enum", map[string]string{"field": "size"}); msg != "CODE:enum FIELD:size" {
		t.Fatalf("expected custom message, got %q", msg)
	}

	// nil restores the built-in dictionary
	SetTranslator(nil)
	if msg := T("enum", nil); msg != "value not in enum" {
		t.Fatalf("expected built-in message, got %q", msg)
	}
}

// TestTranslator_CatalogComplete keeps both dictionaries covering every
// issue code the library emits.
func TestTranslator_CatalogComplete(t *testing.T) {
	codes := []string{
		"required", "invalid_type", "enum", "pattern",
		"minimum", "maximum", "min_length", "max_length",
		"unknown_type", "unknown_format", "empty_field_name", "duplicate_field",
		"unsupported_constraint", "invalid_pattern", "invalid_bound",
		"invalid_enum_member", "invalid_length_bound", "unknown_primary_key",
		"invalid_descriptor", "load_failed",
	}
	for _, lang := range []string{"en", "ja"} {
		tr := dictTranslator{lang: lang}
		for _, code := range codes {
			if msg := tr.Message(code, nil); msg == code || msg == "" {
				t.Fatalf("%s: code %q has no message", lang, code)
			}
		}
	}
}
