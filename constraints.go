package tableskema

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	json "github.com/goccy/go-json"
)

// Constraint violation messages. The wording is part of the public contract.
const (
	msgRequired  = "field is required"
	msgEnum      = "value not in enum"
	msgPattern   = "value does not match pattern"
	msgMinimum   = "value is below minimum"
	msgMaximum   = "value is above maximum"
	msgMinLength = "value is below minimum length"
	msgMaxLength = "value is above maximum length"
)

// compileConstraints validates the declared constraints against the field's
// type and pre-casts enum members and bounds through the field's parse path.
// Casting them here, once, is what lets CastValue stay free of the re-entrant
// "constraints disabled" toggle: by the time rows flow, every bound is
// already native.
func (f *Field) compileConstraints(c Constraints) Issues {
	var iss Issues
	f.required = c.Required
	f.unique = c.Unique

	if len(c.Enum) > 0 {
		f.enum = make([]any, 0, len(c.Enum))
		for _, member := range c.Enum {
			native, err := f.caster.parse(member)
			if err != nil {
				iss = AppendIssues(iss, schemaIssue(CodeInvalidEnumMember, f.Name(),
					fmt.Sprintf("enum member %v cannot be cast to %s", member, f.Type())))
				continue
			}
			f.enum = append(f.enum, native)
		}
	}

	if c.Pattern != "" {
		re, err := regexp.Compile("^(?:" + c.Pattern + ")$")
		if err != nil {
			iss = AppendIssues(iss, schemaIssue(CodeInvalidPattern, f.Name(),
				fmt.Sprintf("invalid pattern %q", c.Pattern)))
		} else {
			f.pattern = re
		}
	}

	if c.Minimum != nil || c.Maximum != nil {
		if !supportsOrdering(f.Type()) {
			iss = AppendIssues(iss, schemaIssue(CodeUnsupportedConstraint, f.Name(),
				fmt.Sprintf("minimum/maximum is not supported by type %s", f.Type())))
		} else {
			if c.Minimum != nil {
				native, err := f.caster.parse(c.Minimum)
				if err != nil {
					iss = AppendIssues(iss, schemaIssue(CodeInvalidBound, f.Name(),
						fmt.Sprintf("minimum %v cannot be cast to %s", c.Minimum, f.Type())))
				} else {
					f.minimum = native
				}
			}
			if c.Maximum != nil {
				native, err := f.caster.parse(c.Maximum)
				if err != nil {
					iss = AppendIssues(iss, schemaIssue(CodeInvalidBound, f.Name(),
						fmt.Sprintf("maximum %v cannot be cast to %s", c.Maximum, f.Type())))
				} else {
					f.maximum = native
				}
			}
		}
	}

	if c.MinLength != nil || c.MaxLength != nil {
		if !supportsRawLength(f.Type()) {
			iss = AppendIssues(iss, schemaIssue(CodeUnsupportedConstraint, f.Name(),
				fmt.Sprintf("minLength/maxLength is not supported by type %s", f.Type())))
		} else {
			if c.MinLength != nil && *c.MinLength < 0 {
				iss = AppendIssues(iss, schemaIssue(CodeInvalidLengthBound, f.Name(),
					fmt.Sprintf("minLength %d is negative", *c.MinLength)))
			} else {
				f.minLen = c.MinLength
			}
			if c.MaxLength != nil && *c.MaxLength < 0 {
				iss = AppendIssues(iss, schemaIssue(CodeInvalidLengthBound, f.Name(),
					fmt.Sprintf("maxLength %d is negative", *c.MaxLength)))
			} else {
				f.maxLen = c.MaxLength
			}
			if f.minLen != nil && f.maxLen != nil && *f.minLen > *f.maxLen {
				iss = AppendIssues(iss, schemaIssue(CodeInvalidLengthBound, f.Name(),
					fmt.Sprintf("minLength %d exceeds maxLength %d", *f.minLen, *f.maxLen)))
			}
		}
	}
	return iss
}

// checkConstraints evaluates every declared constraint against the cast
// native value and the raw input, collecting all violations. It never
// short-circuits and never panics.
func (f *Field) checkConstraints(native, raw any) Issues {
	var iss Issues

	if len(f.enum) > 0 {
		found := false
		for _, member := range f.enum {
			if nativeEqual(native, member) {
				found = true
				break
			}
		}
		if !found {
			iss = AppendIssues(iss, fieldIssue(CodeEnum, f.Name(), raw, msgEnum))
		}
	}

	if f.pattern != nil {
		// The pattern matches the raw string form; non-string raws skip it.
		if s, ok := raw.(string); ok && !f.pattern.MatchString(s) {
			iss = AppendIssues(iss, fieldIssue(CodePattern, f.Name(), raw, msgPattern))
		}
	}

	if f.minimum != nil {
		if c, ok := compareNative(native, f.minimum); ok && c < 0 {
			iss = AppendIssues(iss, fieldIssue(CodeMinimum, f.Name(), raw, msgMinimum))
		}
	}
	if f.maximum != nil {
		if c, ok := compareNative(native, f.maximum); ok && c > 0 {
			iss = AppendIssues(iss, fieldIssue(CodeMaximum, f.Name(), raw, msgMaximum))
		}
	}

	// Length bounds measure the raw value's string form, not the native
	// value. A parsed float's canonical form may differ from its input; the
	// input is what counts.
	if f.minLen != nil || f.maxLen != nil {
		n := rawLength(raw)
		if f.minLen != nil && n < *f.minLen {
			iss = AppendIssues(iss, fieldIssue(CodeMinLength, f.Name(), raw, msgMinLength))
		}
		if f.maxLen != nil && n > *f.maxLen {
			iss = AppendIssues(iss, fieldIssue(CodeMaxLength, f.Name(), raw, msgMaxLength))
		}
	}
	return iss
}

func supportsOrdering(typeName string) bool {
	switch typeName {
	case TypeString, TypeInteger, TypeNumber,
		TypeDate, TypeTime, TypeDatetime,
		TypeYear, TypeYearmonth, TypeDuration:
		return true
	}
	return false
}

func supportsRawLength(typeName string) bool {
	switch typeName {
	case TypeString, TypeArray, TypeObject, TypeGeojson:
		return true
	}
	return false
}

// nativeEqual compares two native values using the type's own equality.
func nativeEqual(a, b any) bool {
	switch av := a.(type) {
	case int64:
		switch bv := b.(type) {
		case int64:
			return av == bv
		case float64:
			return float64(av) == bv
		}
		return false
	case float64:
		switch bv := b.(type) {
		case float64:
			return av == bv
		case int64:
			return av == float64(bv)
		}
		return false
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case time.Time:
		bv, ok := b.(time.Time)
		return ok && av.Equal(bv)
	case YearMonth:
		bv, ok := b.(YearMonth)
		return ok && av == bv
	case GeoPoint:
		bv, ok := b.(GeoPoint)
		return ok && av == bv
	case Duration:
		bv, ok := b.(Duration)
		return ok && av == bv
	}
	return jsonEqual(a, b)
}

// jsonEqual compares composite values by canonical JSON form. Map keys
// marshal sorted, so equal objects encode identically.
func jsonEqual(a, b any) bool {
	ab, err := json.Marshal(a)
	if err != nil {
		return false
	}
	bb, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return bytes.Equal(ab, bb)
}

// compareNative orders two native values: negative when a < b, positive when
// a > b. The second result is false when the values have no defined order.
func compareNative(a, b any) (int, bool) {
	switch av := a.(type) {
	case int64:
		switch bv := b.(type) {
		case int64:
			switch {
			case av < bv:
				return -1, true
			case av > bv:
				return 1, true
			}
			return 0, true
		case float64:
			return compareFloats(float64(av), bv), true
		}
	case float64:
		switch bv := b.(type) {
		case float64:
			return compareFloats(av, bv), true
		case int64:
			return compareFloats(av, float64(bv)), true
		}
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(av, bv), true
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			switch {
			case av.Before(bv):
				return -1, true
			case av.After(bv):
				return 1, true
			}
			return 0, true
		}
	case YearMonth:
		if bv, ok := b.(YearMonth); ok {
			if av.Year != bv.Year {
				return compareInts(av.Year, bv.Year), true
			}
			return compareInts(av.Month, bv.Month), true
		}
	case Duration:
		if bv, ok := b.(Duration); ok {
			return compareFloats(av.approxSeconds(), bv.approxSeconds()), true
		}
	}
	return 0, false
}

func compareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// rawLength measures the character length of the raw value's string form.
func rawLength(raw any) int {
	s, ok := raw.(string)
	if !ok {
		s = fmt.Sprint(raw)
	}
	return utf8.RuneCountInString(s)
}
