package idl

import (
	"math"

	"github.com/Alia5/structgen/internal/codegen/typemap"
)

// validateDefault checks a default literal against the field's value class
// and dimensions and returns it normalized: integers as int64, floats as
// float64, arrays as []any.
func validateDefault(field string, class typemap.Class, dims []int, v any) (any, error) {
	if len(dims) == 0 {
		if _, isList := v.([]any); isList {
			return nil, errorf("field %s default is an array for a scalar value", field)
		}
		norm, ok := scalarDefault(class, v)
		if !ok {
			return nil, errorf("field %s default does not match defined type: %s", field, class)
		}
		return norm, nil
	}

	list, ok := v.([]any)
	if !ok {
		return nil, errorf("field %s default fails to match dimension", field)
	}
	if len(list) != dims[0] {
		return nil, errorf("field %s default has %d elements, dimension is %d", field, len(list), dims[0])
	}
	out := make([]any, len(list))
	for i, el := range list {
		norm, err := validateDefault(field, class, dims[1:], el)
		if err != nil {
			return nil, err
		}
		out[i] = norm
	}
	return out, nil
}

func scalarDefault(class typemap.Class, v any) (any, bool) {
	switch class {
	case typemap.ClassBool:
		b, ok := v.(bool)
		return b, ok
	case typemap.ClassSigned:
		return asInt(v)
	case typemap.ClassUnsigned:
		n, ok := asInt(v)
		if !ok || n < 0 {
			return nil, false
		}
		return n, true
	case typemap.ClassFloat:
		if f, ok := asFloat(v); ok {
			return f, true
		}
		if n, ok := asInt(v); ok {
			return float64(n), true
		}
		return nil, false
	case typemap.ClassString:
		s, ok := v.(string)
		return s, ok
	default:
		return nil, false
	}
}

// asInt accepts the integer types the decoders produce. Floats are not
// integers even when whole; HCL numbers are converted before they get here.
func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return uintToInt(uint64(n))
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return uintToInt(n)
	default:
		return 0, false
	}
}

func uintToInt(n uint64) (int64, bool) {
	if n > math.MaxInt64 {
		return 0, false
	}
	return int64(n), true
}

func asFloat(v any) (float64, bool) {
	switch f := v.(type) {
	case float32:
		return float64(f), true
	case float64:
		return f, true
	default:
		return 0, false
	}
}
