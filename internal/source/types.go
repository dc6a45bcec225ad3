package source

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// StringList decodes either a single string or an array of strings
type StringList []string

// UnmarshalJSON implements json.Unmarshaler
func (l *StringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*l = nil
			return nil
		}
		*l = StringList{single}
		return nil
	}

	var many []any
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("expected a string or an array of strings")
	}

	out := make(StringList, 0, len(many))
	for _, item := range many {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	*l = out
	return nil
}

// Number decodes a JSON number or a numeric string such as "+4" or "1/2"
type Number float64

// UnmarshalJSON implements json.Unmarshaler
func (n *Number) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = Number(f)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("expected a number or a numeric string")
	}

	f, ok := ParseNumber(s)
	if !ok {
		return fmt.Errorf("%q is not numeric", s)
	}
	*n = Number(f)
	return nil
}

// Int returns the number truncated to an int
func (n Number) Int() int {
	return int(n)
}

// ParseNumber parses integers, decimals, signed values and simple
// fractions like "1/8"
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if num, den, found := strings.Cut(s, "/"); found {
		n, err1 := strconv.ParseFloat(strings.TrimSpace(num), 64)
		d, err2 := strconv.ParseFloat(strings.TrimSpace(den), 64)
		if err1 != nil || err2 != nil || d == 0 {
			return 0, false
		}
		return n / d, true
	}

	f, err := strconv.ParseFloat(strings.TrimPrefix(s, "+"), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// AsInt reads an int out of a decoded JSON value (number or numeric string)
func AsInt(v any) (int, bool) {
	switch t := v.(type) {
	case float64:
		return int(t), true
	case int:
		return t, true
	case string:
		f, ok := ParseNumber(t)
		return int(f), ok
	default:
		return 0, false
	}
}

// AsStrings reads the string elements out of a decoded JSON array
func AsStrings(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return t
	default:
		return nil
	}
}
