// Package timeset implements set algebra over half-open time intervals.
//
// The package is generic over the host's point-in-time representation. Any
// type T with an associated magnitude type D satisfies the Instant[T, D]
// capability set if it is totally ordered (Compare), subtractable (Sub) and
// addable (Add). time.Time satisfies Instant[time.Time, time.Duration]
// without adaptation.
//
// # Canonical Form
//
// Every Set holds its intervals in canonical form:
//   - sorted ascending by start
//   - strictly separated: for consecutive members a, b: a.end < b.start
//   - no member is empty
//
// Canonical form is unique per set of instants, so Set.Equal is a plain
// element-wise comparison. Canonical form is established by every
// constructor; no exported path produces a non-canonical Set.
//
// Touching intervals ([a, b) and [b, c)) do not overlap according to
// Interval.OverlapsWith, but they are merged by canonicalization because
// together they cover the contiguous range [a, c).
//
// # Concurrency
//
// Interval and Set are immutable values. All operations are pure functions
// that return fresh values, so instances may be shared across goroutines
// without synchronization.
package timeset
