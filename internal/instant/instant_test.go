package instant

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTick_SatisfiesInstant(t *testing.T) {
	s := NewTickSet(NewTickInterval(5, 8), NewTickInterval(1, 5))
	require.Equal(t, 1, s.Len())
	assert.True(t, s.Contains(7))
	assert.False(t, s.Contains(8))
	assert.Equal(t, Ticks(7), s.Span().Duration())
}

func TestTime_SatisfiesInstant(t *testing.T) {
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	s := NewTimeSet(
		NewTimeInterval(base, base.Add(time.Hour)),
		NewTimeInterval(base.Add(time.Hour), base.Add(2*time.Hour)),
	)
	require.Equal(t, 1, s.Len())
	assert.Equal(t, 2*time.Hour, s.Span().Duration())
}

func TestValue_CompareSameKind(t *testing.T) {
	assert.Equal(t, -1, TickValue(1).Compare(TickValue(2)))
	assert.Equal(t, 0, TickValue(2).Compare(TickValue(2)))

	a := TimeValue(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	b := TimeValue(time.Date(2024, 1, 1, 1, 0, 0, 0, time.FixedZone("CET", 3600)))
	assert.Equal(t, 0, a.Compare(b), "same instant in different zones")
}

func TestValue_ArithmeticRoundTrip(t *testing.T) {
	a, b := TickValue(3), TickValue(10)
	d := b.Sub(a)
	assert.Equal(t, "7", d.String())
	assert.Equal(t, 0, a.Add(d).Compare(b))

	ta := TimeValue(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	tb := ta.Add(TimeDelta(90 * time.Minute))
	assert.Equal(t, "1h30m0s", tb.Sub(ta).String())
}

func TestValue_MismatchPanicsWithTypedError(t *testing.T) {
	tick := TickValue(1)
	wall := TimeValue(time.Now())

	err := Guard(func() { _ = tick.Compare(wall) })
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTypeMismatch))

	var me *MismatchError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, "compare", me.Op)
	assert.Equal(t, KindTick, me.Left)
	assert.Equal(t, KindTime, me.Right)

	err = Guard(func() { _ = tick.Add(TimeDelta(time.Second)) })
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestGuard_MismatchInsideSetOperation(t *testing.T) {
	ticks := NewValueSet(NewValueInterval(TickValue(0), TickValue(5)))
	walls := NewValueSet(NewValueInterval(TimeValue(time.Unix(0, 0)), TimeValue(time.Unix(5, 0))))

	err := Guard(func() { _ = ticks.Union(walls) })
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestGuard_PassesThroughOtherPanics(t *testing.T) {
	assert.PanicsWithValue(t, "boom", func() {
		_ = Guard(func() { panic("boom") })
	})
	assert.NoError(t, Guard(func() {}))
}

func TestUniform(t *testing.T) {
	assert.NoError(t, Uniform())
	assert.NoError(t, Uniform(TickValue(1), TickValue(2)))
	assert.ErrorIs(t, Uniform(TickValue(1), TimeValue(time.Now())), ErrTypeMismatch)
	assert.ErrorIs(t, Uniform(TickValue(1), Value{}), ErrTypeMismatch)
}

func TestParse(t *testing.T) {
	v, err := Parse("42")
	require.NoError(t, err)
	assert.Equal(t, KindTick, v.Kind())

	v, err = Parse("2019-07-19T00:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, KindTime, v.Kind())
	wall, ok := v.Time()
	require.True(t, ok)
	assert.Equal(t, 2019, wall.Year())

	_, err = Parse("yesterday")
	assert.Error(t, err)
}

func TestParseDelta(t *testing.T) {
	d, err := ParseDelta("15")
	require.NoError(t, err)
	assert.Equal(t, KindTick, d.Kind())

	d, err = ParseDelta("24h")
	require.NoError(t, err)
	assert.Equal(t, KindTime, d.Kind())

	_, err = ParseDelta("a while")
	assert.Error(t, err)
}

func TestFromAny(t *testing.T) {
	tests := []struct {
		name string
		in   any
		kind Kind
		ok   bool
	}{
		{"int", 5, KindTick, true},
		{"int64", int64(5), KindTick, true},
		{"integral float", float64(5), KindTick, true},
		{"fractional float", 5.5, KindInvalid, false},
		{"json number", json.Number("12"), KindTick, true},
		{"rfc3339 string", "2024-03-01T10:00:00+02:00", KindTime, true},
		{"time", time.Now(), KindTime, true},
		{"bool", true, KindInvalid, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := FromAny(tt.in)
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.kind, v.Kind())
		})
	}
}

func TestDeltaFromAny(t *testing.T) {
	d, err := DeltaFromAny(3)
	require.NoError(t, err)
	assert.Equal(t, KindTick, d.Kind())

	d, err = DeltaFromAny("30m")
	require.NoError(t, err)
	assert.Equal(t, KindTime, d.Kind())

	_, err = DeltaFromAny([]int{1})
	assert.Error(t, err)
}

func TestSetKind(t *testing.T) {
	assert.Equal(t, KindInvalid, SetKind(NewValueSet()))
	assert.Equal(t, KindTick, SetKind(NewValueSet(NewValueInterval(TickValue(1), TickValue(2)))))
}

func TestValue_Unix(t *testing.T) {
	sec, nsec := TickValue(9).Unix()
	assert.Equal(t, [2]int64{9, 0}, [2]int64{sec, nsec})

	sec, nsec = TimeValue(time.Unix(1, 5)).Unix()
	assert.Equal(t, [2]int64{1, 5}, [2]int64{sec, nsec})

	// Before the epoch the nanosecond part stays non-negative.
	sec, nsec = TimeValue(time.Unix(0, -1)).Unix()
	assert.Equal(t, [2]int64{-1, 999999999}, [2]int64{sec, nsec})

	// Past 2262 a nanosecond count would overflow; the pair keeps order.
	before := TimeValue(time.Date(2262, 1, 1, 0, 0, 0, 0, time.UTC))
	after := TimeValue(time.Date(2263, 1, 1, 0, 0, 0, 0, time.UTC))
	s1, _ := before.Unix()
	s2, _ := after.Unix()
	assert.Less(t, s1, s2)
}

func TestInterval_DurationOfEmptyKeepsKind(t *testing.T) {
	empty := NewValueInterval(TimeValue(time.Unix(5, 0)), TimeValue(time.Unix(5, 0)))
	d := empty.Duration()
	assert.Equal(t, KindTime, d.Kind())
	dur, ok := d.Duration()
	assert.True(t, ok)
	assert.Equal(t, time.Duration(0), dur)

	malformed := NewValueInterval(TickValue(7), TickValue(3))
	assert.Equal(t, KindTick, malformed.Duration().Kind())

	// The zero delta can be applied back to the same kind.
	shifted := NewValueSet(NewValueInterval(TickValue(0), TickValue(2))).Translate(malformed.Duration())
	assert.Equal(t, 1, shifted.Len())
}

func TestDelta_Accessors(t *testing.T) {
	ticks, ok := TickDelta(4).Ticks()
	assert.True(t, ok)
	assert.Equal(t, Ticks(4), ticks)
	_, ok = TickDelta(4).Duration()
	assert.False(t, ok)

	dur, ok := TimeDelta(time.Minute).Duration()
	assert.True(t, ok)
	assert.Equal(t, time.Minute, dur)
}

func TestValue_Prev(t *testing.T) {
	assert.Equal(t, 0, TickValue(4).Prev().Compare(TickValue(3)))

	base := time.Unix(10, 0)
	assert.Equal(t, 0, TimeValue(base).Prev().Compare(TimeValue(base.Add(-time.Nanosecond))))
}
