package instant

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Parse reads an instant from text. A base-10 integer is a Tick; anything
// else must be an RFC 3339 timestamp.
func Parse(s string) (Value, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return TickValue(Tick(n)), nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return Value{}, fmt.Errorf("parse instant %q: want integer tick or RFC 3339 time", s)
	}
	return TimeValue(t), nil
}

// ParseDelta reads a magnitude from text. A base-10 integer is a tick
// distance; anything else must be a Go duration string such as "90m".
func ParseDelta(s string) (Delta, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return TickDelta(Ticks(n)), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return Delta{}, fmt.Errorf("parse delta %q: want integer ticks or duration", s)
	}
	return TimeDelta(d), nil
}

// FromAny converts a decoded YAML/CUE/JSON scalar into a Value.
func FromAny(v any) (Value, error) {
	switch val := v.(type) {
	case Value:
		return val, nil
	case time.Time:
		return TimeValue(val), nil
	case string:
		return Parse(val)
	case json.Number:
		return Parse(val.String())
	default:
		n, ok := asInt64(v)
		if !ok {
			return Value{}, fmt.Errorf("unsupported instant %v (%T)", v, v)
		}
		return TickValue(Tick(n)), nil
	}
}

// DeltaFromAny converts a decoded scalar into a Delta.
func DeltaFromAny(v any) (Delta, error) {
	switch val := v.(type) {
	case Delta:
		return val, nil
	case time.Duration:
		return TimeDelta(val), nil
	case string:
		return ParseDelta(val)
	case json.Number:
		return ParseDelta(val.String())
	default:
		n, ok := asInt64(v)
		if !ok {
			return Delta{}, fmt.Errorf("unsupported delta %v (%T)", v, v)
		}
		return TickDelta(Ticks(n)), nil
	}
}

func asInt64(v any) (int64, bool) {
	switch val := v.(type) {
	case int:
		return int64(val), true
	case int32:
		return int64(val), true
	case int64:
		return val, true
	case uint32:
		return int64(val), true
	case uint64:
		if val > math.MaxInt64 {
			return 0, false
		}
		return int64(val), true
	case float64:
		if val != math.Trunc(val) || math.Abs(val) > math.MaxInt64 {
			return 0, false
		}
		return int64(val), true
	}
	return 0, false
}
