package timeset_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/timeset/internal/instant"
	"github.com/roach88/timeset/internal/testutil"
	"github.com/roach88/timeset/internal/timeset"
)

const (
	propertyRounds = 300
	windowLo       = instant.Tick(0)
	windowHi       = instant.Tick(60)
)

// intervalEqual lets cmp look through the unexported bounds.
var intervalEqual = cmp.Comparer(instant.TickInterval.Equal)

func empty() instant.TickSet { return timeset.Empty[instant.Tick, instant.Ticks]() }

// assertCanonical checks the stored representation directly.
func assertCanonical(t *testing.T, s instant.TickSet) {
	t.Helper()
	ivs := s.Intervals()
	for i, iv := range ivs {
		require.False(t, iv.IsEmpty(), "member %d of %v is empty", i, s)
		if i > 0 {
			require.Less(t, ivs[i-1].End(), iv.Start(), "members %d and %d of %v touch or overlap", i-1, i, s)
		}
	}
}

// member is the brute-force definition of membership.
func member(raw []instant.TickInterval, p instant.Tick) bool {
	for _, iv := range raw {
		if iv.Contains(p) {
			return true
		}
	}
	return false
}

func TestProperty_CanonicalFormAndMembership(t *testing.T) {
	f := testutil.NewFactory(1, windowLo, windowHi)
	for round := 0; round < propertyRounds; round++ {
		raw := f.RawIntervals(1 + round%8)
		s := instant.NewTickSet(raw...)
		assertCanonical(t, s)
		for p := windowLo - 1; p <= windowHi; p++ {
			require.Equal(t, member(raw, p), s.Contains(p), "round %d: %v contains %d", round, s, p)
		}
	}
}

func TestProperty_Idempotence(t *testing.T) {
	f := testutil.NewFactory(2, windowLo, windowHi)
	for _, s := range f.Sets(propertyRounds, 6) {
		again := timeset.Canonicalize(s.Intervals())
		assert.True(t, cmp.Equal(s.Intervals(), again, intervalEqual), "diff %v", cmp.Diff(s.Intervals(), again, intervalEqual))
		assert.True(t, instant.NewTickSet(s.Intervals()...).Equal(s))
	}
}

func TestProperty_Commutativity(t *testing.T) {
	f := testutil.NewFactory(3, windowLo, windowHi)
	for round := 0; round < propertyRounds; round++ {
		a, b := f.Set(5), f.Set(5)
		assert.True(t, a.Union(b).Equal(b.Union(a)), "union %v %v", a, b)
		assert.True(t, a.Intersection(b).Equal(b.Intersection(a)), "intersection %v %v", a, b)
	}
}

func TestProperty_Associativity(t *testing.T) {
	f := testutil.NewFactory(4, windowLo, windowHi)
	for round := 0; round < propertyRounds; round++ {
		a, b, c := f.Set(4), f.Set(4), f.Set(4)
		assert.True(t, a.Union(b).Union(c).Equal(a.Union(b.Union(c))))
		assert.True(t, a.Intersection(b).Intersection(c).Equal(a.Intersection(b.Intersection(c))))
	}
}

func TestProperty_Identity(t *testing.T) {
	f := testutil.NewFactory(5, windowLo, windowHi)
	for _, a := range f.Sets(propertyRounds, 5) {
		assert.True(t, a.Union(empty()).Equal(a))
		assert.True(t, a.Intersection(empty()).Equal(empty()))
		assert.True(t, a.Difference(empty()).Equal(a))
		assert.True(t, empty().Difference(a).IsEmpty())
	}
}

func TestProperty_Disjointness(t *testing.T) {
	f := testutil.NewFactory(6, windowLo, windowHi)
	for round := 0; round < propertyRounds; round++ {
		a, b := f.Set(6), f.Set(6)
		d := a.Difference(b)
		assertCanonical(t, d)
		assert.True(t, d.Intersection(b).IsEmpty(), "(%v - %v) meets %v", a, b, b)
		assert.True(t, d.IsSubset(a))
		// Nothing is lost: (a - b) ∪ (a ∩ b) == a.
		assert.True(t, d.Union(a.Intersection(b)).Equal(a))
	}
}

func TestProperty_SubsetReflexivity(t *testing.T) {
	assert.True(t, empty().IsSubset(empty()))
	f := testutil.NewFactory(7, windowLo, windowHi)
	for _, a := range f.Sets(propertyRounds, 5) {
		assert.True(t, a.IsSubset(a))
		assert.True(t, a.Intersection(f.Set(3)).IsSubset(a))
		assert.True(t, a.IsSubset(a.Union(f.Set(3))))
	}
}

func TestProperty_PointwiseSemantics(t *testing.T) {
	f := testutil.NewFactory(8, windowLo, windowHi)
	for round := 0; round < propertyRounds; round++ {
		a, b := f.Set(5), f.Set(5)
		u, n, d := a.Union(b), a.Intersection(b), a.Difference(b)
		assertCanonical(t, u)
		assertCanonical(t, n)
		for p := windowLo - 1; p <= windowHi; p++ {
			inA, inB := a.Contains(p), b.Contains(p)
			require.Equal(t, inA || inB, u.Contains(p), "union at %d", p)
			require.Equal(t, inA && inB, n.Contains(p), "intersection at %d", p)
			require.Equal(t, inA && !inB, d.Contains(p), "difference at %d", p)
		}
	}
}

func TestProperty_UnionMergeMatchesFullCanonicalization(t *testing.T) {
	f := testutil.NewFactory(9, windowLo, windowHi)
	for round := 0; round < propertyRounds; round++ {
		a, b := f.Set(6), f.Set(6)
		want := timeset.Canonicalize(append(a.Intervals(), b.Intervals()...))
		got := a.Union(b).Intervals()
		assert.True(t, cmp.Equal(want, got, intervalEqual), "union of %v and %v, diff %v", a, b, cmp.Diff(want, got, intervalEqual))
	}
}

func TestProperty_TranslateCommutesWithOperations(t *testing.T) {
	f := testutil.NewFactory(10, windowLo, windowHi)
	for round := 0; round < propertyRounds; round++ {
		a, b := f.Set(4), f.Set(4)
		d := instant.Ticks(round%13 - 6)
		assert.True(t, a.Union(b).Translate(d).Equal(a.Translate(d).Union(b.Translate(d))))
		assert.True(t, a.Difference(b).Translate(d).Equal(a.Translate(d).Difference(b.Translate(d))))
	}
}
