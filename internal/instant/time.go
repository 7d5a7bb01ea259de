package instant

import (
	"time"

	"github.com/roach88/timeset/internal/timeset"
)

// TimeInterval is an interval over wall-clock time.
type TimeInterval = timeset.Interval[time.Time, time.Duration]

// TimeSet is a set of wall-clock instants.
type TimeSet = timeset.Set[time.Time, time.Duration]

// NewTimeInterval returns [start, end).
func NewTimeInterval(start, end time.Time) TimeInterval {
	return timeset.NewInterval[time.Time, time.Duration](start, end)
}

// NewTimeSet canonicalizes intervals into a TimeSet.
func NewTimeSet(intervals ...TimeInterval) TimeSet {
	return timeset.New(intervals...)
}
