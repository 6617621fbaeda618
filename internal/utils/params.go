package utils

import (
	"github.com/rxtech-lab/coin-signal/pkg/errors"
)

// IntParam reads an integer parameter, falling back to def when the key is absent.
// Whole float64 values are accepted because JSON decoders produce them.
func IntParam(params map[string]any, key string, def int) (int, error) {
	raw, ok := params[key]
	if !ok || raw == nil {
		return def, nil
	}

	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case uint64:
		return int(v), nil
	case float64:
		if v == float64(int(v)) {
			return int(v), nil
		}
	}

	return 0, errors.Newf(errors.ErrCodeInvalidType, "param %q must be an integer, got %v", key, raw)
}

// FloatParam reads a numeric parameter, falling back to def when the key is absent.
func FloatParam(params map[string]any, key string, def float64) (float64, error) {
	raw, ok := params[key]
	if !ok || raw == nil {
		return def, nil
	}

	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	}

	return 0, errors.Newf(errors.ErrCodeInvalidType, "param %q must be a number, got %v", key, raw)
}

// StringParam reads a string parameter, falling back to def when the key is absent or empty.
func StringParam(params map[string]any, key string, def string) (string, error) {
	raw, ok := params[key]
	if !ok || raw == nil {
		return def, nil
	}

	value, ok := raw.(string)
	if !ok {
		return "", errors.Newf(errors.ErrCodeInvalidType, "param %q must be a string, got %v", key, raw)
	}

	if value == "" {
		return def, nil
	}

	return value, nil
}
