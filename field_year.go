package tableskema

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
)

var (
	yearRe      = regexp.MustCompile(`^\d{4}$`)
	yearmonthRe = regexp.MustCompile(`^(\d{4})-(\d{2})$`)
)

// yearCaster handles the year type: a four-digit calendar year. Native
// value: int64.
type yearCaster struct{}

func (yearCaster) typeName() string { return TypeYear }

func (yearCaster) parse(raw any) (any, error) {
	switch v := raw.(type) {
	case string:
		if !yearRe.MatchString(v) {
			return nil, fmt.Errorf("invalid year %q", v)
		}
		n, _ := strconv.ParseInt(v, 10, 64)
		return n, nil
	case int:
		return yearInRange(int64(v))
	case int64:
		return yearInRange(v)
	case json.Number:
		n, err := strconv.ParseInt(v.String(), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid year %q", v.String())
		}
		return yearInRange(n)
	case float64:
		n, err := wholeToInt64(v)
		if err != nil {
			return nil, err
		}
		return yearInRange(n.(int64))
	}
	return nil, fmt.Errorf("expected year, got %T", raw)
}

func yearInRange(n int64) (any, error) {
	if n < 0 || n > 9999 {
		return nil, fmt.Errorf("year %d out of range", n)
	}
	return n, nil
}

// yearmonthCaster handles the yearmonth type: "YYYY-MM" strings or a two
// element [year, month] pair. Native value: YearMonth.
type yearmonthCaster struct{}

func (yearmonthCaster) typeName() string { return TypeYearmonth }

func (yearmonthCaster) parse(raw any) (any, error) {
	switch v := raw.(type) {
	case string:
		m := yearmonthRe.FindStringSubmatch(v)
		if m == nil {
			return nil, fmt.Errorf("invalid yearmonth %q", v)
		}
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if month < 1 || month > 12 {
			return nil, fmt.Errorf("invalid yearmonth %q", v)
		}
		return YearMonth{Year: year, Month: month}, nil
	case []any:
		if len(v) != 2 {
			return nil, fmt.Errorf("yearmonth pair needs 2 elements, got %d", len(v))
		}
		yf, yok := toFloat(v[0])
		mf, mok := toFloat(v[1])
		if !yok || !mok {
			return nil, fmt.Errorf("invalid yearmonth pair %v", v)
		}
		year, month := int(yf), int(mf)
		if float64(year) != yf || float64(month) != mf || month < 1 || month > 12 || year < 0 || year > 9999 {
			return nil, fmt.Errorf("invalid yearmonth pair %v", v)
		}
		return YearMonth{Year: year, Month: month}, nil
	case YearMonth:
		return v, nil
	}
	return nil, fmt.Errorf("expected yearmonth, got %T", raw)
}
