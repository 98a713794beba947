package appointment

import (
	"fmt"

	"github.com/pkg/errors"
)

var ErrNotMapping = errors.New("value is not a field mapping")

// RemoveEmptyFields deletes, in place, the entries whose value is the empty string and returns data.
// Applying it more than once has no further effect.
func RemoveEmptyFields(data map[string]interface{}) map[string]interface{} {
	for key, val := range data {
		if s, ok := val.(string); ok && s == "" {
			delete(data, key)
		}
	}
	return data
}

// Sanitize is RemoveEmptyFields for untyped input: only field mappings are accepted.
// The result is always a new map.
func Sanitize(v interface{}) (map[string]interface{}, error) {
	switch data := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(data))
		for key, val := range data {
			out[key] = val
		}
		return RemoveEmptyFields(out), nil
	case map[string]string:
		out := make(map[string]interface{}, len(data))
		for key, val := range data {
			out[key] = val
		}
		return RemoveEmptyFields(out), nil
	default:
		return nil, errors.Wrap(ErrNotMapping, fmt.Sprintf("sanitizing %T", v))
	}
}
