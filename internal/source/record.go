package source

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/mixtli/dungeon-lab-sub000/internal/errors"
)

// RawRecord is one entity exactly as it appears in a source file
type RawRecord map[string]any

// Name returns the record's name, or "" if it has none
func (r RawRecord) Name() string {
	return r.String("name")
}

// Source returns the record's source book abbreviation
func (r RawRecord) Source() string {
	return r.String("source")
}

// String returns the string value at key, or ""
func (r RawRecord) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// Bool returns the boolean value at key, or false
func (r RawRecord) Bool(key string) bool {
	b, _ := r[key].(bool)
	return b
}

// Has reports whether key is present
func (r RawRecord) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// Decode decodes the record into out through its JSON form. Fields the
// target does not declare are ignored.
func (r RawRecord) Decode(out any) error {
	if r == nil {
		return errors.InvalidArgument("record is not an object")
	}

	data, err := json.Marshal(r)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "record cannot be encoded")
	}

	if err := json.Unmarshal(data, out); err != nil {
		var typeErr *json.UnmarshalTypeError
		if stderrors.As(err, &typeErr) && typeErr.Field != "" {
			vb := errors.NewValidationBuilder()
			vb.Fieldf(typeErr.Field, "expected %s, got %s", typeErr.Type, typeErr.Value)
			return vb.Build()
		}
		return errors.InvalidArgumentf("record has an unexpected shape: %v", err)
	}
	return nil
}

// Records extracts the array under key from decoded file content. A
// missing key yields no records; entries that are not objects come back
// as nil records so they are still counted and reported.
func Records(data any, key string) ([]RawRecord, error) {
	root, ok := data.(map[string]any)
	if !ok {
		return nil, errors.InvalidArgumentf("source content is %s, expected an object", describe(data))
	}

	raw, ok := root[key]
	if !ok || raw == nil {
		return nil, nil
	}

	list, ok := raw.([]any)
	if !ok {
		return nil, errors.InvalidArgumentf("%q is %s, expected an array", key, describe(raw))
	}

	records := make([]RawRecord, 0, len(list))
	for _, item := range list {
		obj, _ := item.(map[string]any)
		records = append(records, RawRecord(obj))
	}
	return records, nil
}

// Lookup returns the object stored under key, for files that are maps
// rather than record arrays
func Lookup(data any, key string) (map[string]any, bool) {
	root, ok := data.(map[string]any)
	if !ok {
		return nil, false
	}
	obj, ok := root[key].(map[string]any)
	return obj, ok
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "an array"
	case map[string]any:
		return "an object"
	case string:
		return "a string"
	case float64:
		return "a number"
	case bool:
		return "a boolean"
	default:
		return strings.TrimPrefix(fmt.Sprintf("%T", v), "*")
	}
}
