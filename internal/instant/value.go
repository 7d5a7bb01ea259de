package instant

import (
	"strconv"
	"time"

	"github.com/roach88/timeset/internal/timeset"
)

// Kind identifies the representation held by a Value or Delta.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindTick
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindTick:
		return "tick"
	case KindTime:
		return "time"
	default:
		return "invalid"
	}
}

// Value is a dynamically typed instant: either a Tick or a wall-clock time.
// It exists for host layers (documents, command lines) that only learn the
// representation at run time.
//
// Values of different kinds cannot be compared or combined. Compare, Sub
// and Add panic with a *MismatchError in that case; see Guard.
type Value struct {
	kind Kind
	tick Tick
	wall time.Time
}

// Delta is the magnitude between two Values of the same kind.
type Delta struct {
	kind  Kind
	ticks Ticks
	dur   time.Duration
}

// TickValue wraps a logical tick.
func TickValue(t Tick) Value { return Value{kind: KindTick, tick: t} }

// TimeValue wraps a wall-clock time, normalized to UTC.
func TimeValue(t time.Time) Value { return Value{kind: KindTime, wall: t.UTC()} }

// TickDelta wraps a tick distance.
func TickDelta(d Ticks) Delta { return Delta{kind: KindTick, ticks: d} }

// TimeDelta wraps a wall-clock duration.
func TimeDelta(d time.Duration) Delta { return Delta{kind: KindTime, dur: d} }

// Kind returns the representation of v.
func (v Value) Kind() Kind { return v.kind }

// Tick returns the tick held by v, if any.
func (v Value) Tick() (Tick, bool) { return v.tick, v.kind == KindTick }

// Time returns the wall-clock time held by v, if any.
func (v Value) Time() (time.Time, bool) { return v.wall, v.kind == KindTime }

// Compare implements timeset.Instant. It panics with a *MismatchError when
// the kinds differ.
func (v Value) Compare(u Value) int {
	mustMatch("compare", v.kind, u.kind)
	switch v.kind {
	case KindTick:
		return v.tick.Compare(u.tick)
	case KindTime:
		return v.wall.Compare(u.wall)
	}
	return 0
}

// Sub implements timeset.Instant.
func (v Value) Sub(u Value) Delta {
	mustMatch("subtract", v.kind, u.kind)
	switch v.kind {
	case KindTick:
		return TickDelta(v.tick.Sub(u.tick))
	case KindTime:
		return TimeDelta(v.wall.Sub(u.wall))
	}
	return Delta{}
}

// Add implements timeset.Instant.
func (v Value) Add(d Delta) Value {
	mustMatch("add", v.kind, d.kind)
	switch v.kind {
	case KindTick:
		return TickValue(v.tick.Add(d.ticks))
	case KindTime:
		return TimeValue(v.wall.Add(d.dur))
	}
	return v
}

// Prev returns the instant one unit (a tick or a nanosecond) before v.
func (v Value) Prev() Value {
	switch v.kind {
	case KindTick:
		return TickValue(v.tick - 1)
	case KindTime:
		return TimeValue(v.wall.Add(-time.Nanosecond))
	}
	return v
}

// Unix splits v into a (seconds, nanoseconds) pair that orders the same
// way v does: a tick maps to (tick, 0), a wall-clock time to its Unix
// seconds and nanosecond offset. Unlike a single nanosecond count it does
// not overflow for any representable time.
func (v Value) Unix() (sec, nsec int64) {
	if v.kind == KindTime {
		return v.wall.Unix(), int64(v.wall.Nanosecond())
	}
	return int64(v.tick), 0
}

func (v Value) String() string {
	switch v.kind {
	case KindTick:
		return v.tick.String()
	case KindTime:
		return v.wall.Format(time.RFC3339Nano)
	default:
		return "<invalid>"
	}
}

// Kind returns the representation of d.
func (d Delta) Kind() Kind { return d.kind }

// Ticks returns the tick distance held by d, if any.
func (d Delta) Ticks() (Ticks, bool) { return d.ticks, d.kind == KindTick }

// Duration returns the wall-clock duration held by d, if any.
func (d Delta) Duration() (time.Duration, bool) { return d.dur, d.kind == KindTime }

func (d Delta) String() string {
	switch d.kind {
	case KindTick:
		return strconv.FormatInt(int64(d.ticks), 10)
	case KindTime:
		return d.dur.String()
	default:
		return "<invalid>"
	}
}

// ValueInterval is an interval over dynamically typed instants.
type ValueInterval = timeset.Interval[Value, Delta]

// ValueSet is a set over dynamically typed instants.
type ValueSet = timeset.Set[Value, Delta]

// NewValueInterval returns [start, end). It does not check kinds; use
// Uniform first when the bounds come from untrusted input.
func NewValueInterval(start, end Value) ValueInterval {
	return timeset.NewInterval[Value, Delta](start, end)
}

// NewValueSet canonicalizes intervals into a ValueSet.
func NewValueSet(intervals ...ValueInterval) ValueSet {
	return timeset.New(intervals...)
}

// SetKind reports the instant kind stored in s, or KindInvalid when s is
// empty.
func SetKind(s ValueSet) Kind {
	ivs := s.Intervals()
	if len(ivs) == 0 {
		return KindInvalid
	}
	return ivs[0].Start().Kind()
}
