package tableskema

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// integerCaster handles the integer type. Native value: int64.
type integerCaster struct {
	groupChar string
	bare      bool
}

func (integerCaster) typeName() string { return TypeInteger }

func (c integerCaster) parse(raw any) (any, error) {
	switch v := raw.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case json.Number:
		if n, err := strconv.ParseInt(v.String(), 10, 64); err == nil {
			return n, nil
		}
		f, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", v.String())
		}
		return wholeToInt64(f)
	case float64:
		return wholeToInt64(v)
	case string:
		s := v
		if c.groupChar != "" {
			s = strings.ReplaceAll(s, c.groupChar, "")
		}
		if !c.bare {
			s = stripBareAffixes(s, false)
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", v)
		}
		return n, nil
	}
	return nil, fmt.Errorf("expected integer, got %T", raw)
}

// numberCaster handles the number type. Native value: float64. The special
// tokens NaN, INF and -INF are accepted case-insensitively.
type numberCaster struct {
	decimalChar string
	groupChar   string
	bare        bool
}

func (numberCaster) typeName() string { return TypeNumber }

func (c numberCaster) parse(raw any) (any, error) {
	switch v := raw.(type) {
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case float64:
		return v, nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", v.String())
		}
		return f, nil
	case string:
		switch strings.ToUpper(v) {
		case "NAN":
			return math.NaN(), nil
		case "INF":
			return math.Inf(1), nil
		case "-INF":
			return math.Inf(-1), nil
		}
		s := v
		if c.groupChar != "" {
			s = strings.ReplaceAll(s, c.groupChar, "")
		}
		if c.decimalChar != "" && c.decimalChar != "." {
			s = strings.ReplaceAll(s, c.decimalChar, ".")
		}
		if !c.bare {
			s = stripBareAffixes(s, true)
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", v)
		}
		return f, nil
	}
	return nil, fmt.Errorf("expected number, got %T", raw)
}

// wholeToInt64 accepts a float only when it is a whole value inside int64
// range; JSON sources hand integers over as floats.
func wholeToInt64(f float64) (any, error) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, errors.New("not a whole number")
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return nil, errors.New("integer overflow")
	}
	return int64(f), nil
}

// stripBareAffixes drops leading and trailing text around the numeric part of
// a non-bare value ("EUR 95", "95%"). The numeric core itself is untouched
// and still parsed strictly afterwards.
func stripBareAffixes(s string, decimal bool) string {
	isNumeric := func(b byte) bool {
		if b >= '0' && b <= '9' || b == '+' || b == '-' {
			return true
		}
		return decimal && b == '.'
	}
	start := 0
	for start < len(s) && !isNumeric(s[start]) {
		start++
	}
	end := len(s)
	for end > start && !(s[end-1] >= '0' && s[end-1] <= '9') {
		end--
	}
	return s[start:end]
}

// toFloat converts the numeric raw shapes shared by geopoint parsing.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
