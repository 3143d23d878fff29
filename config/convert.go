package config

import (
	"fmt"
	"math"
	"time"

	"github.com/spf13/cast"
	"go.dw1.io/safemath"
)

func toString(v any) (string, error) {
	return cast.ToStringE(v)
}

func toBool(v any) (bool, error) {
	return cast.ToBoolE(v)
}

// toDuration accepts duration strings ("250ms") and plain numbers, which are
// taken as nanoseconds.
func toDuration(v any) (time.Duration, error) {
	d, err := cast.ToDurationE(v)
	if err != nil {
		return 0, err
	}

	if d < 0 {
		return 0, fmt.Errorf("negative duration %s", d)
	}

	return d, nil
}

// toPort routes integers through safemath so that out-of-range values fail
// instead of wrapping. Strings and JSON numbers go through cast first; a
// number with a fractional part is rejected rather than truncated.
func toPort(v any) (uint16, error) {
	if isIntVal(v) {
		return safemath.ConvertAny[uint16](v)
	}

	if f, ok := floatVal(v); ok && (math.IsInf(f, 0) || math.Trunc(f) != f) {
		return 0, fmt.Errorf("port %v is not a whole number", v)
	}

	n, err := cast.ToInt64E(v)
	if err != nil {
		return 0, err
	}

	return safemath.ConvertAny[uint16](n)
}

func isIntVal(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, uintptr:
		return true
	default:
		return false
	}
}

func floatVal(v any) (float64, bool) {
	switch f := v.(type) {
	case float32:
		return float64(f), true
	case float64:
		return f, true
	default:
		return 0, false
	}
}
