package tableskema

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var uuidRe = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// stringCaster handles the string type. Formats narrow the accepted values;
// the native value is always the raw string itself.
type stringCaster struct {
	format string
}

func (stringCaster) typeName() string { return TypeString }

func (c stringCaster) parse(raw any) (any, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("expected string, got %T", raw)
	}
	switch c.format {
	case FormatDefault:
	case "email":
		at := strings.IndexByte(s, '@')
		if at <= 0 || at == len(s)-1 || strings.ContainsAny(s, " \t") {
			return nil, errors.New("invalid email")
		}
	case "uri":
		u, err := url.Parse(s)
		if err != nil || u.Scheme == "" {
			return nil, errors.New("invalid uri")
		}
	case "uuid":
		if !uuidRe.MatchString(s) {
			return nil, errors.New("invalid uuid")
		}
	case "binary":
		if _, err := base64.StdEncoding.DecodeString(s); err != nil {
			return nil, errors.New("invalid base64")
		}
	}
	return s, nil
}

// anyCaster passes every raw value through untouched. Required and the
// generic constraints still apply at the Field layer.
type anyCaster struct{}

func (anyCaster) typeName() string           { return TypeAny }
func (anyCaster) parse(raw any) (any, error) { return raw, nil }
