package timeset

import "slices"

// Canonicalize reduces an arbitrary collection of intervals to the unique
// minimal sequence covering the same instants: empty intervals dropped,
// sorted by (start, end), overlapping and touching intervals fused.
//
// The input slice is not modified. Canonicalizing a canonical sequence
// returns an equal sequence.
func Canonicalize[T Instant[T, D], D any](intervals []Interval[T, D]) []Interval[T, D] {
	live := make([]Interval[T, D], 0, len(intervals))
	for _, iv := range intervals {
		if !iv.IsEmpty() {
			live = append(live, iv)
		}
	}
	slices.SortStableFunc(live, compareIntervals[T, D])
	return coalesce(live)
}

// compareIntervals orders by start, then by end.
func compareIntervals[T Instant[T, D], D any](a, b Interval[T, D]) int {
	if c := a.start.Compare(b.start); c != 0 {
		return c
	}
	return a.end.Compare(b.end)
}

// coalesce fuses overlapping and touching neighbours of a slice already
// sorted by start and free of empty intervals. It reuses the backing array
// of sorted, which must be owned by the caller.
func coalesce[T Instant[T, D], D any](sorted []Interval[T, D]) []Interval[T, D] {
	if len(sorted) == 0 {
		return nil
	}
	out := sorted[:1]
	for _, next := range sorted[1:] {
		cur := &out[len(out)-1]
		// <= fuses touching intervals, not only overlapping ones.
		if next.start.Compare(cur.end) <= 0 {
			cur.end = maxOf(cur.end, next.end)
			continue
		}
		out = append(out, next)
	}
	return slices.Clip(out)
}

// mergeSorted merges two canonical sequences into one start-ordered slice
// without fusing neighbours.
func mergeSorted[T Instant[T, D], D any](a, b []Interval[T, D]) []Interval[T, D] {
	out := make([]Interval[T, D], 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if compareIntervals(a[i], b[j]) <= 0 {
			out = append(out, a[i])
			i++
		} else {
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}
