package tableskema_test

import (
	"testing"

	json "github.com/goccy/go-json"

	tableskema "github.com/reoring/tableskema"
)

// TestYearMonth_Forms checks the canonical text and JSON forms.
func TestYearMonth_Forms(t *testing.T) {
	ym := tableskema.YearMonth{Year: 2024, Month: 6}
	if got := ym.String(); got != "2024-06" {
		t.Fatalf("got=%q want=%q", got, "2024-06")
	}
	if got := (tableskema.YearMonth{Year: 987, Month: 3}).String(); got != "0987-03" {
		t.Fatalf("got=%q want=%q", got, "0987-03")
	}
	b, err := json.Marshal(ym)
	if err != nil || string(b) != `"2024-06"` {
		t.Fatalf("json got=%s err=%v", b, err)
	}
}

// TestGeoPoint_Forms: lon leads in both the text and the JSON pair form.
func TestGeoPoint_Forms(t *testing.T) {
	p := tableskema.GeoPoint{Lon: 100.5, Lat: -45.25}
	if got := p.String(); got != "100.5,-45.25" {
		t.Fatalf("got=%q", got)
	}
	b, err := json.Marshal(p)
	if err != nil || string(b) != `[100.5,-45.25]` {
		t.Fatalf("json got=%s err=%v", b, err)
	}
}

// TestDuration_Forms renders ISO 8601 text without normalizing components.
func TestDuration_Forms(t *testing.T) {
	cases := []struct {
		d    tableskema.Duration
		want string
	}{
		{tableskema.Duration{Years: 1, Months: 2, Days: 3}, "P1Y2M3D"},
		{tableskema.Duration{Hours: 1, Minutes: 30}, "PT1H30M"},
		{tableskema.Duration{Days: 1, Hours: 12}, "P1DT12H"},
		{tableskema.Duration{Weeks: 2}, "P2W"},
		{tableskema.Duration{Seconds: 0.5}, "PT0.5S"},
		{tableskema.Duration{}, "PT0S"},
	}
	for _, tc := range cases {
		if got := tc.d.String(); got != tc.want {
			t.Fatalf("%+v: got=%q want=%q", tc.d, got, tc.want)
		}
	}
	b, err := json.Marshal(tableskema.Duration{Hours: 1})
	if err != nil || string(b) != `"PT1H"` {
		t.Fatalf("json got=%s err=%v", b, err)
	}
	// Calendar months and days stay distinct: P1M is not P30D.
	if (tableskema.Duration{Months: 1}) == (tableskema.Duration{Days: 30}) {
		t.Fatalf("months and days must not collapse")
	}
}
