package testutil

import (
	"math/rand/v2"
	"slices"

	"github.com/roach88/timeset/internal/instant"
)

// Factory produces seeded random ticks, intervals and sets inside the
// window [lo, hi). A narrow window makes touching and overlapping
// intervals common, which is where the algebra is most fragile.
type Factory struct {
	rng    *rand.Rand
	lo, hi instant.Tick
}

// NewFactory returns a factory for [lo, hi). The same seed always yields
// the same sequence.
func NewFactory(seed uint64, lo, hi instant.Tick) *Factory {
	if hi <= lo {
		hi = lo + 1
	}
	return &Factory{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), lo: lo, hi: hi}
}

// Moment returns one tick in the window.
func (f *Factory) Moment() instant.Tick {
	return f.lo + instant.Tick(f.rng.Int64N(int64(f.hi-f.lo)))
}

// Moments returns n ticks in ascending order.
func (f *Factory) Moments(n int) []instant.Tick {
	out := make([]instant.Tick, n)
	for i := range out {
		out[i] = f.Moment()
	}
	slices.Sort(out)
	return out
}

// Intervals returns n well-formed (possibly empty) intervals.
func (f *Factory) Intervals(n int) []instant.TickInterval {
	out := make([]instant.TickInterval, n)
	for i := range out {
		start := f.Moment()
		end := start + instant.Tick(f.rng.Int64N(int64(f.hi-start)+1))
		out[i] = instant.NewTickInterval(start, end)
	}
	return out
}

// RawIntervals returns n intervals whose bounds are drawn independently, so
// roughly half of them are malformed (end before start).
func (f *Factory) RawIntervals(n int) []instant.TickInterval {
	out := make([]instant.TickInterval, n)
	for i := range out {
		out[i] = instant.NewTickInterval(f.Moment(), f.Moment())
	}
	return out
}

// Set returns a set built from 1..maxComponents random intervals.
func (f *Factory) Set(maxComponents int) instant.TickSet {
	if maxComponents < 1 {
		maxComponents = 1
	}
	return instant.NewTickSet(f.Intervals(1 + f.rng.IntN(maxComponents))...)
}

// Sets returns n random sets.
func (f *Factory) Sets(n, maxComponents int) []instant.TickSet {
	out := make([]instant.TickSet, n)
	for i := range out {
		out[i] = f.Set(maxComponents)
	}
	return out
}
