package tableskema

import (
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// Row maps field names to raw or cast values. Raw rows come from an upstream
// reader (string/number/bool/nil/array/object values); cast rows hold native
// values keyed by the schema's declared field names.
type Row map[string]any

// YearMonth is the native value of a yearmonth field.
type YearMonth struct {
	Year  int
	Month int
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, ym.Month)
}

// MarshalJSON emits the canonical "YYYY-MM" form.
func (ym YearMonth) MarshalJSON() ([]byte, error) {
	return json.Marshal(ym.String())
}

// GeoPoint is the native value of a geopoint field. Lon comes first in every
// geopoint wire format.
type GeoPoint struct {
	Lon float64
	Lat float64
}

func (p GeoPoint) String() string {
	return formatFloat(p.Lon) + "," + formatFloat(p.Lat)
}

// MarshalJSON emits the [lon, lat] pair.
func (p GeoPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.Lon, p.Lat})
}

// Duration is the native value of a duration field: an ISO 8601 duration kept
// in its calendar components. Components are not normalized (P1Y and P12M stay
// distinct values).
type Duration struct {
	Years   float64
	Months  float64
	Weeks   float64
	Days    float64
	Hours   float64
	Minutes float64
	Seconds float64
}

// approxSeconds converts the duration to seconds for ordering. Calendar
// components use the fixed approximation 1 year = 365 days, 1 month = 30 days.
func (d Duration) approxSeconds() float64 {
	days := d.Years*365 + d.Months*30 + d.Weeks*7 + d.Days
	return days*86400 + d.Hours*3600 + d.Minutes*60 + d.Seconds
}

func (d Duration) String() string {
	var b strings.Builder
	b.WriteByte('P')
	part := func(v float64, unit byte) {
		if v != 0 {
			b.WriteString(formatFloat(v))
			b.WriteByte(unit)
		}
	}
	part(d.Years, 'Y')
	part(d.Months, 'M')
	part(d.Weeks, 'W')
	part(d.Days, 'D')
	if d.Hours != 0 || d.Minutes != 0 || d.Seconds != 0 {
		b.WriteByte('T')
		part(d.Hours, 'H')
		part(d.Minutes, 'M')
		part(d.Seconds, 'S')
	}
	if b.Len() == 1 {
		return "PT0S"
	}
	return b.String()
}

// MarshalJSON emits the ISO 8601 form.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
