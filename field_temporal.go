package tableskema

import (
	"fmt"
	"time"

	strftime "github.com/ncruces/go-strftime"
)

// layoutChoice pairs a Go layout with the strptime pattern inference reports
// for it. An empty pattern marks the type's default layout.
type layoutChoice struct {
	layout string
	strf   string
}

var (
	dateLayouts = []layoutChoice{
		{"2006-01-02", ""},
		{"2006/01/02", "%Y/%m/%d"},
		{"02.01.2006", "%d.%m.%Y"},
		{"01/02/2006", "%m/%d/%Y"},
	}
	timeLayouts = []layoutChoice{
		{"15:04:05", ""},
		{"15:04", "%H:%M"},
		{"3:04 PM", "%I:%M %p"},
	}
	datetimeLayouts = []layoutChoice{
		{time.RFC3339, ""},
		{"2006-01-02 15:04:05", "%Y-%m-%d %H:%M:%S"},
		{"2006-01-02T15:04:05", "%Y-%m-%dT%H:%M:%S"},
	}
)

func temporalChoices(tag string) []layoutChoice {
	switch tag {
	case TypeDate:
		return dateLayouts
	case TypeTime:
		return timeLayouts
	}
	return datetimeLayouts
}

// temporalCaster handles date, time and datetime. An empty layout selects the
// type's default form; anyMode tries every declared layout in order; explicit
// strptime formats are converted to a Go layout once, at construction.
type temporalCaster struct {
	tag     string
	layout  string
	anyMode bool
}

func newTemporalCaster(tag, format, fieldName string) (caster, Issues) {
	switch format {
	case FormatDefault:
		return temporalCaster{tag: tag}, nil
	case "any":
		return temporalCaster{tag: tag, anyMode: true}, nil
	}
	layout, err := strftime.Layout(format)
	if err != nil {
		return nil, Issues{schemaIssue(CodeUnknownFormat, fieldName,
			fmt.Sprintf("unsupported %s format %q", tag, format))}
	}
	return temporalCaster{tag: tag, layout: layout}, nil
}

func (c temporalCaster) typeName() string { return c.tag }

func (c temporalCaster) parse(raw any) (any, error) {
	switch v := raw.(type) {
	case time.Time:
		return c.normalize(v), nil
	case string:
		t, err := c.parseString(v)
		if err != nil {
			return nil, err
		}
		return c.normalize(t), nil
	}
	return nil, fmt.Errorf("expected %s string, got %T", c.tag, raw)
}

func (c temporalCaster) parseString(s string) (time.Time, error) {
	switch {
	case c.anyMode:
		for _, lc := range temporalChoices(c.tag) {
			if c.tag == TypeDatetime && lc.strf == "" {
				if t, err := parseDatetimeDefault(s); err == nil {
					return t, nil
				}
				continue
			}
			if t, err := time.Parse(lc.layout, s); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("no %s layout matches %q", c.tag, s)
	case c.layout != "":
		return time.Parse(c.layout, s)
	case c.tag == TypeDatetime:
		return parseDatetimeDefault(s)
	}
	return time.Parse(temporalChoices(c.tag)[0].layout, s)
}

// normalize pins the unused half of the timestamp: dates become midnight UTC,
// times sit on the zero date.
func (c temporalCaster) normalize(t time.Time) time.Time {
	switch c.tag {
	case TypeDate:
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	case TypeTime:
		return time.Date(0, time.January, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	}
	return t
}

// parseDatetimeDefault accepts RFC3339Nano first so fractional seconds parse,
// then falls back to plain RFC3339.
func parseDatetimeDefault(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

// inferTemporalFormat reports which declared layout parses the value, with
// the strptime pattern inference should record ("" for the default layout).
func inferTemporalFormat(tag, s string) (string, bool) {
	for _, lc := range temporalChoices(tag) {
		if tag == TypeDatetime && lc.strf == "" {
			if _, err := parseDatetimeDefault(s); err == nil {
				return "", true
			}
			continue
		}
		if _, err := time.Parse(lc.layout, s); err == nil {
			return lc.strf, true
		}
	}
	return "", false
}
