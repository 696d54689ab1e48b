package member

import (
	"fmt"
	"strings"
)

// TagName is the struct tag key read by the resolver.
const TagName = "derive"

// ParseStructTag parses the content of a derive struct tag and returns a map
// of key-value pairs. Flags map to the empty string.
// Handles comma-separated values: `derive:"noeq,field=name"`
// Supports quoted values with spaces: `derive:"field='full name'"`
func ParseStructTag(tag string) (map[string]string, error) {
	result := make(map[string]string)

	if tag == "" {
		return result, nil
	}

	var parts []string
	var current strings.Builder
	inSingleQuote := false
	inDoubleQuote := false

	for i := 0; i < len(tag); i++ {
		char := tag[i]

		switch {
		case char == '\'' && !inDoubleQuote:
			inSingleQuote = !inSingleQuote
			current.WriteByte(char)
		case char == '"' && !inSingleQuote:
			inDoubleQuote = !inDoubleQuote
			current.WriteByte(char)
		case (char == ',' || char == ' ') && !inSingleQuote && !inDoubleQuote:
			part := strings.TrimSpace(current.String())
			if part != "" {
				parts = append(parts, part)
			}
			current.Reset()
		default:
			current.WriteByte(char)
		}
	}
	if inSingleQuote || inDoubleQuote {
		return nil, fmt.Errorf("invalid tag: unterminated quote in %q", tag)
	}

	part := strings.TrimSpace(current.String())
	if part != "" {
		parts = append(parts, part)
	}

	for _, part := range parts {
		if idx := strings.Index(part, "="); idx >= 0 {
			key := strings.TrimSpace(part[:idx])
			value := strings.TrimSpace(part[idx+1:])
			if key == "" {
				return nil, fmt.Errorf("invalid tag: empty key in %q", part)
			}
			result[key] = unquoteValue(value)
		} else {
			result[part] = ""
		}
	}

	return result, nil
}

// unquoteValue removes surrounding single or double quotes from a value.
func unquoteValue(value string) string {
	if len(value) >= 2 && value[0] == '\'' && value[len(value)-1] == '\'' {
		return value[1 : len(value)-1]
	}
	if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
		return value[1 : len(value)-1]
	}
	return value
}

// FieldTag is the decoded form of a field's derive tag.
type FieldTag struct {
	// Exclude holds the operations the field opts out of.
	Exclude Marker

	// Rename is the serialization name override from field=, if any.
	Rename string
}

var optOuts = map[string]Marker{
	"-":        All,
	"nohash":   Hash,
	"noeq":     Eq,
	"noord":    Ord,
	"notext":   Text,
	"noserial": Serial,
}

// ParseFieldTag decodes a derive tag. Unknown keys are reported as errors so
// that a misspelled opt-out does not silently keep a field in an operation.
func ParseFieldTag(tag string) (FieldTag, error) {
	var ft FieldTag
	parsed, err := ParseStructTag(tag)
	if err != nil {
		return ft, err
	}
	for k, v := range parsed {
		if m, ok := optOuts[k]; ok {
			if v != "" {
				return ft, fmt.Errorf("invalid tag: %q takes no value", k)
			}
			ft.Exclude |= m
			continue
		}
		if k == "field" {
			if v == "" {
				return ft, fmt.Errorf("invalid tag: field= requires a name")
			}
			ft.Rename = v
			continue
		}
		return ft, fmt.Errorf("invalid tag: unknown key %q", k)
	}
	return ft, nil
}
