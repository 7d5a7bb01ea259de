package timeset

import "fmt"

// Instant is the capability set required of a host point-in-time type T
// with magnitude type D.
type Instant[T any, D any] interface {
	// Compare returns -1, 0 or +1 as the receiver is before, equal to or
	// after u.
	Compare(u T) int
	// Sub returns the magnitude between u and the receiver.
	Sub(u T) D
	// Add returns the receiver shifted by d.
	Add(d D) T
}

// Interval is the half-open range [start, end).
//
// An interval with start >= end is empty. A malformed interval (end before
// start) is treated as empty everywhere rather than rejected.
type Interval[T Instant[T, D], D any] struct {
	start T
	end   T
}

// NewInterval returns the interval [start, end).
func NewInterval[T Instant[T, D], D any](start, end T) Interval[T, D] {
	return Interval[T, D]{start: start, end: end}
}

// Start returns the inclusive lower bound.
func (i Interval[T, D]) Start() T { return i.start }

// End returns the exclusive upper bound.
func (i Interval[T, D]) End() T { return i.end }

// IsEmpty reports whether the interval contains no instants.
func (i Interval[T, D]) IsEmpty() bool {
	return i.start.Compare(i.end) >= 0
}

// Contains reports whether start <= p < end.
func (i Interval[T, D]) Contains(p T) bool {
	return i.start.Compare(p) <= 0 && p.Compare(i.end) < 0
}

// OverlapsWith reports whether the two intervals share at least one instant.
// Touching intervals do not overlap, and an empty interval overlaps nothing,
// not even itself.
func (i Interval[T, D]) OverlapsWith(other Interval[T, D]) bool {
	return maxOf(i.start, other.start).Compare(minOf(i.end, other.end)) < 0
}

// IsSubset reports whether every instant of i is also in other. The empty
// interval is a subset of every interval.
func (i Interval[T, D]) IsSubset(other Interval[T, D]) bool {
	if i.IsEmpty() {
		return true
	}
	return other.start.Compare(i.start) <= 0 && i.end.Compare(other.end) <= 0
}

// Duration returns end - start, or start - start for an empty interval so
// the zero length is expressed in the interval's own units.
func (i Interval[T, D]) Duration() D {
	if i.IsEmpty() {
		return i.start.Sub(i.start)
	}
	return i.end.Sub(i.start)
}

// Intersection returns the instants common to both intervals. When they are
// disjoint the result is the empty interval anchored at the later start.
func (i Interval[T, D]) Intersection(other Interval[T, D]) Interval[T, D] {
	start := maxOf(i.start, other.start)
	end := minOf(i.end, other.end)
	if start.Compare(end) >= 0 {
		return Interval[T, D]{start: start, end: start}
	}
	return Interval[T, D]{start: start, end: end}
}

// Translate shifts both bounds by d.
func (i Interval[T, D]) Translate(d D) Interval[T, D] {
	return Interval[T, D]{start: i.start.Add(d), end: i.end.Add(d)}
}

// Equal reports whether both bounds compare equal.
func (i Interval[T, D]) Equal(other Interval[T, D]) bool {
	return i.start.Compare(other.start) == 0 && i.end.Compare(other.end) == 0
}

func (i Interval[T, D]) String() string {
	return fmt.Sprintf("[%v, %v)", i.start, i.end)
}

type ordered[T any] interface {
	Compare(u T) int
}

func maxOf[T ordered[T]](a, b T) T {
	if a.Compare(b) >= 0 {
		return a
	}
	return b
}

func minOf[T ordered[T]](a, b T) T {
	if a.Compare(b) <= 0 {
		return a
	}
	return b
}
