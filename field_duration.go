package tableskema

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// durationRe captures the ISO 8601 duration components. Emptiness rules that
// the grammar expresses with lookahead (a bare "P" or trailing "T") are
// checked after the match; RE2 has no lookahead.
var durationRe = regexp.MustCompile(
	`^P(?:(\d+(?:\.\d+)?)Y)?(?:(\d+(?:\.\d+)?)M)?(?:(\d+(?:\.\d+)?)W)?(?:(\d+(?:\.\d+)?)D)?` +
		`(?:T(?:(\d+(?:\.\d+)?)H)?(?:(\d+(?:\.\d+)?)M)?(?:(\d+(?:\.\d+)?)S)?)?$`)

// durationCaster handles the duration type. Native value: Duration.
type durationCaster struct{}

func (durationCaster) typeName() string { return TypeDuration }

func (durationCaster) parse(raw any) (any, error) {
	switch v := raw.(type) {
	case Duration:
		return v, nil
	case string:
		return parseDuration(v)
	}
	return nil, fmt.Errorf("expected duration, got %T", raw)
}

func parseDuration(s string) (any, error) {
	m := durationRe.FindStringSubmatch(s)
	if m == nil {
		return nil, fmt.Errorf("invalid duration %q", s)
	}
	seen := false
	num := func(g string) float64 {
		if g == "" {
			return 0
		}
		seen = true
		f, _ := strconv.ParseFloat(g, 64)
		return f
	}
	d := Duration{
		Years:   num(m[1]),
		Months:  num(m[2]),
		Weeks:   num(m[3]),
		Days:    num(m[4]),
		Hours:   num(m[5]),
		Minutes: num(m[6]),
		Seconds: num(m[7]),
	}
	if !seen {
		return nil, fmt.Errorf("invalid duration %q", s)
	}
	if strings.Contains(s, "T") && m[5] == "" && m[6] == "" && m[7] == "" {
		return nil, fmt.Errorf("invalid duration %q", s)
	}
	return d, nil
}
