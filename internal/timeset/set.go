package timeset

import (
	"slices"
	"sort"
	"strings"
)

// Set is an immutable set of instants stored as a canonical interval
// sequence. The zero Set is the empty set.
type Set[T Instant[T, D], D any] struct {
	intervals []Interval[T, D]
}

// New canonicalizes intervals into a Set. The argument slice is never
// retained.
func New[T Instant[T, D], D any](intervals ...Interval[T, D]) Set[T, D] {
	return Set[T, D]{intervals: Canonicalize(intervals)}
}

// Empty returns the set containing no instants.
func Empty[T Instant[T, D], D any]() Set[T, D] {
	return Set[T, D]{}
}

// FromInterval returns the set covering [start, end).
func FromInterval[T Instant[T, D], D any](start, end T) Set[T, D] {
	return New(NewInterval[T, D](start, end))
}

// Intervals returns a copy of the canonical interval sequence.
func (s Set[T, D]) Intervals() []Interval[T, D] {
	return slices.Clone(s.intervals)
}

// Len returns the number of canonical intervals.
func (s Set[T, D]) Len() int { return len(s.intervals) }

// IsEmpty reports whether the set contains no instants.
func (s Set[T, D]) IsEmpty() bool { return len(s.intervals) == 0 }

// Equal reports whether both sets contain exactly the same instants.
func (s Set[T, D]) Equal(other Set[T, D]) bool {
	return slices.EqualFunc(s.intervals, other.intervals, Interval[T, D].Equal)
}

// Union returns the instants in s or other.
//
// Both operands are already sorted, so a linear merge followed by the
// canonical fuse sweep replaces a full re-sort.
func (s Set[T, D]) Union(other Set[T, D]) Set[T, D] {
	switch {
	case s.IsEmpty():
		return other
	case other.IsEmpty():
		return s
	}
	return Set[T, D]{intervals: coalesce(mergeSorted(s.intervals, other.intervals))}
}

// Intersection returns the instants in both s and other.
func (s Set[T, D]) Intersection(other Set[T, D]) Set[T, D] {
	a, b := s.intervals, other.intervals
	var out []Interval[T, D]
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		start := maxOf(a[i].start, b[j].start)
		end := minOf(a[i].end, b[j].end)
		if start.Compare(end) < 0 {
			out = append(out, Interval[T, D]{start: start, end: end})
		}
		switch c := a[i].end.Compare(b[j].end); {
		case c < 0:
			i++
		case c > 0:
			j++
		default:
			i++
			j++
		}
	}
	return Set[T, D]{intervals: out}
}

// Difference returns the instants in s that are not in other.
func (s Set[T, D]) Difference(other Set[T, D]) Set[T, D] {
	if s.IsEmpty() || other.IsEmpty() {
		return s
	}
	cuts := other.intervals
	var out []Interval[T, D]
	lo := 0
	for _, iv := range s.intervals {
		// Cuts ending at or before iv.start cannot reach any later interval.
		for lo < len(cuts) && cuts[lo].end.Compare(iv.start) <= 0 {
			lo++
		}
		cursor := iv.start
		for k := lo; k < len(cuts) && cuts[k].start.Compare(iv.end) < 0; k++ {
			if cuts[k].start.Compare(cursor) > 0 {
				out = append(out, Interval[T, D]{start: cursor, end: cuts[k].start})
			}
			cursor = maxOf(cursor, cuts[k].end)
			if cursor.Compare(iv.end) >= 0 {
				break
			}
		}
		if cursor.Compare(iv.end) < 0 {
			out = append(out, Interval[T, D]{start: cursor, end: iv.end})
		}
	}
	return Set[T, D]{intervals: coalesce(out)}
}

// Contains reports whether p lies in one of the set's intervals.
func (s Set[T, D]) Contains(p T) bool {
	// First interval starting strictly after p; the candidate precedes it.
	idx := sort.Search(len(s.intervals), func(i int) bool {
		return s.intervals[i].start.Compare(p) > 0
	})
	if idx == 0 {
		return false
	}
	return p.Compare(s.intervals[idx-1].end) < 0
}

// IsSubset reports whether every instant of s is also in other.
func (s Set[T, D]) IsSubset(other Set[T, D]) bool {
	return s.Difference(other).IsEmpty()
}

// IsDisjoint reports whether s and other share no instant.
func (s Set[T, D]) IsDisjoint(other Set[T, D]) bool {
	return s.Intersection(other).IsEmpty()
}

// Translate shifts every instant of the set by d.
func (s Set[T, D]) Translate(d D) Set[T, D] {
	if s.IsEmpty() {
		return s
	}
	out := make([]Interval[T, D], len(s.intervals))
	for i, iv := range s.intervals {
		out[i] = iv.Translate(d)
	}
	// Translation is monotone, so the result is still sorted.
	return Set[T, D]{intervals: coalesce(out)}
}

// Span returns the smallest interval covering the whole set. The span of
// the empty set is the zero (empty) interval.
func (s Set[T, D]) Span() Interval[T, D] {
	if s.IsEmpty() {
		return Interval[T, D]{}
	}
	return Interval[T, D]{start: s.intervals[0].start, end: s.intervals[len(s.intervals)-1].end}
}

// Clip returns the part of s inside window.
func (s Set[T, D]) Clip(window Interval[T, D]) Set[T, D] {
	return s.Intersection(New(window))
}

func (s Set[T, D]) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, iv := range s.intervals {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(iv.String())
	}
	b.WriteByte('}')
	return b.String()
}
