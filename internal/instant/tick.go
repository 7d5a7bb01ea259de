package instant

import (
	"strconv"

	"github.com/roach88/timeset/internal/timeset"
)

// Tick is a logical instant: a position on an integer timeline with no
// wall-clock meaning. Ticks order and subtract like plain integers.
type Tick int64

// Ticks is the distance between two Tick instants.
type Ticks int64

// Compare implements timeset.Instant.
func (t Tick) Compare(u Tick) int {
	switch {
	case t < u:
		return -1
	case t > u:
		return 1
	}
	return 0
}

// Sub implements timeset.Instant.
func (t Tick) Sub(u Tick) Ticks { return Ticks(t - u) }

// Add implements timeset.Instant.
func (t Tick) Add(d Ticks) Tick { return t + Tick(d) }

func (t Tick) String() string { return strconv.FormatInt(int64(t), 10) }

// TickInterval is an interval over logical ticks.
type TickInterval = timeset.Interval[Tick, Ticks]

// TickSet is a set of logical ticks.
type TickSet = timeset.Set[Tick, Ticks]

// NewTickInterval returns [start, end) over ticks.
func NewTickInterval(start, end Tick) TickInterval {
	return timeset.NewInterval[Tick, Ticks](start, end)
}

// NewTickSet canonicalizes intervals into a TickSet.
func NewTickSet(intervals ...TickInterval) TickSet {
	return timeset.New(intervals...)
}
