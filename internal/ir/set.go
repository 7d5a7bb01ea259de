package ir

import (
	"time"

	"github.com/roach88/timeset/internal/instant"
)

// EncodeValue renders an instant: ticks as integers, wall-clock times as
// RFC 3339 text in UTC with nanosecond precision.
func EncodeValue(v instant.Value) IRValue {
	if tick, ok := v.Tick(); ok {
		return IRInt(tick)
	}
	if wall, ok := v.Time(); ok {
		return IRString(wall.UTC().Format(time.RFC3339Nano))
	}
	return IRString("")
}

// EncodeDelta renders a magnitude: tick distances as integers, durations
// in Go duration syntax.
func EncodeDelta(d instant.Delta) IRValue {
	if ticks, ok := d.Ticks(); ok {
		return IRInt(ticks)
	}
	return IRString(d.String())
}

// EncodeInterval renders [start, end) as a two element array.
func EncodeInterval(iv instant.ValueInterval) IRArray {
	return IRArray{EncodeValue(iv.Start()), EncodeValue(iv.End())}
}

// EncodeSet renders a set as
//
//	{"kind": "tick", "intervals": [[0, 2], [3, 5]]}
//
// The empty set has kind "empty".
func EncodeSet(s instant.ValueSet) IRObject {
	ivs := s.Intervals()
	arr := make(IRArray, len(ivs))
	for i, iv := range ivs {
		arr[i] = EncodeInterval(iv)
	}
	kind := "empty"
	if k := instant.SetKind(s); k != instant.KindInvalid {
		kind = k.String()
	}
	return IRObject{
		"kind":      IRString(kind),
		"intervals": arr,
	}
}
