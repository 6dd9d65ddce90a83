package tableskema

import "fmt"

var (
	defaultTrueValues  = []string{"true", "True", "TRUE", "1"}
	defaultFalseValues = []string{"false", "False", "FALSE", "0"}
)

// booleanCaster handles the boolean type. Raw strings must match one of the
// declared true/false values exactly; there is no case folding beyond what
// the lists spell out.
type booleanCaster struct {
	trueValues  []string
	falseValues []string
}

func newBooleanCaster(trueValues, falseValues []string) booleanCaster {
	c := booleanCaster{trueValues: trueValues, falseValues: falseValues}
	if c.trueValues == nil {
		c.trueValues = defaultTrueValues
	}
	if c.falseValues == nil {
		c.falseValues = defaultFalseValues
	}
	return c
}

func (booleanCaster) typeName() string { return TypeBoolean }

func (c booleanCaster) parse(raw any) (any, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		for _, t := range c.trueValues {
			if v == t {
				return true, nil
			}
		}
		for _, f := range c.falseValues {
			if v == f {
				return false, nil
			}
		}
		return nil, fmt.Errorf("%q is not a declared true/false value", v)
	}
	return nil, fmt.Errorf("expected boolean, got %T", raw)
}
