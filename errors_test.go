package tableskema_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	tableskema "github.com/reoring/tableskema"
	"github.com/reoring/tableskema/i18n"
)

// TestIssues_ErrorSummary caps the error string at the first few issues and
// appends the total.
func TestIssues_ErrorSummary(t *testing.T) {
	one := tableskema.Issues{{Code: "maximum", Field: "age"}}
	if got := one.Error(); got != "maximum at age" {
		t.Fatalf("got=%q want=%q", got, "maximum at age")
	}

	var many tableskema.Issues
	for i := 0; i < 5; i++ {
		many = append(many, tableskema.Issue{Code: "required", Field: fmt.Sprintf("f%d", i)})
	}
	got := many.Error()
	if !strings.Contains(got, "required at f0") || !strings.Contains(got, "(total 5)") {
		t.Fatalf("got=%q", got)
	}
	if strings.Contains(got, "f3") {
		t.Fatalf("summary should stop at three issues, got=%q", got)
	}

	if (tableskema.Issues{}).Error() != "" {
		t.Fatalf("empty list should stringify empty")
	}

	// Issues without a field name print the code alone.
	bare := tableskema.Issues{{Code: "load_failed"}}
	if got := bare.Error(); got != "load_failed" {
		t.Fatalf("got=%q want=%q", got, "load_failed")
	}
}

// TestAsIssues extracts Issues from wrapped errors and rejects everything
// else.
func TestAsIssues(t *testing.T) {
	iss := tableskema.Issues{{Code: "enum", Field: "color"}}

	got, ok := tableskema.AsIssues(iss)
	if !ok || len(got) != 1 {
		t.Fatalf("plain: got=%v/%v", got, ok)
	}

	wrapped := fmt.Errorf("casting: %w", iss)
	got, ok = tableskema.AsIssues(wrapped)
	if !ok || got[0].Code != "enum" {
		t.Fatalf("wrapped: got=%v/%v", got, ok)
	}

	if _, ok := tableskema.AsIssues(errors.New("plain")); ok {
		t.Fatalf("plain errors must not convert")
	}
	if _, ok := tableskema.AsIssues(nil); ok {
		t.Fatalf("nil must not convert")
	}
}

// TestAppendIssues initializes the destination on first use.
func TestAppendIssues(t *testing.T) {
	var iss tableskema.Issues
	iss = tableskema.AppendIssues(iss, tableskema.Issue{Code: "a"})
	iss = tableskema.AppendIssues(iss, tableskema.Issue{Code: "b"}, tableskema.Issue{Code: "c"})
	if len(iss) != 3 || iss[2].Code != "c" {
		t.Fatalf("got=%v", iss)
	}
}

// TestIssues_Localize swaps messages for the active language and leaves the
// original list untouched.
func TestIssues_Localize(t *testing.T) {
	i18n.SetLanguage("ja")
	defer i18n.SetLanguage("en")

	iss := tableskema.Issues{{Code: "required", Field: "id", Message: "field is required"}}
	ja := iss.Localize()
	if ja[0].Message != "必須フィールドです" {
		t.Fatalf("got=%q", ja[0].Message)
	}
	if iss[0].Message != "field is required" {
		t.Fatalf("original mutated: %q", iss[0].Message)
	}
}
