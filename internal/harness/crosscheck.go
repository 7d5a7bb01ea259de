package harness

import (
	"context"
	"fmt"

	"github.com/roach88/timeset/internal/instant"
	"github.com/roach88/timeset/internal/ir"
	"github.com/roach88/timeset/internal/oracle"
)

// crossCheck compares a set-producing step with the oracle at every
// boundary of its operands and result. Membership is piecewise constant
// between boundaries, so probing each boundary and the instant just before
// it covers the whole axis. A contains step is compared with a single
// oracle membership query.
//
// translate has no SQL counterpart and is not cross-checked.
func (h *Harness) crossCheck(ctx context.Context, i int, step Step, ev evaluation) error {
	var op oracle.Op
	var left, right string

	switch step.Op {
	case OpContains:
		return h.crossCheckMember(ctx, i, step, ev)
	case OpUnion, OpIntersection, OpDifference:
		op = oracle.Op(step.Op)
		left, right = step.Args[0], step.Args[1]
	case OpClip:
		op = oracle.OpIntersection
		left, right = step.Args[0], fmt.Sprintf("steps[%d].window", i)
		if err := h.oracle.Load(ctx, right, ev.extra); err != nil {
			return err
		}
	default:
		return nil
	}

	var boundaries []instant.ValueInterval
	boundaries = append(boundaries, h.raw[left]...)
	if step.Op == OpClip {
		boundaries = append(boundaries, ev.extra...)
	} else {
		boundaries = append(boundaries, h.raw[right]...)
	}
	boundaries = append(boundaries, ev.set.Intervals()...)

	for _, p := range probePoints(boundaries) {
		want, err := h.oracle.Eval(ctx, op, left, right, p)
		if err != nil {
			return fmt.Errorf("step %d: oracle: %w", i, err)
		}
		if got := ev.set.Contains(p); got != want {
			h.result.AddError((&ScenarioError{
				Code:     ErrCodeOracleMismatch,
				Step:     i,
				Message:  fmt.Sprintf("%s(%s, %s) at %v", step.Op, left, right, p),
				Expected: fmt.Sprint(want),
				Actual:   fmt.Sprint(got),
			}).Error())
			// One disagreement per step is enough to localize the bug.
			return nil
		}
	}
	h.logger.Debug("cross-checked", "step", i, "op", step.Op)
	return nil
}

func (h *Harness) crossCheckMember(ctx context.Context, i int, step Step, ev evaluation) error {
	p, _ := instant.FromAny(step.At)
	want, err := h.oracle.Member(ctx, step.Args[0], p)
	if err != nil {
		return fmt.Errorf("step %d: oracle: %w", i, err)
	}
	if got := bool(ev.result.(ir.IRBool)); got != want {
		h.result.AddError((&ScenarioError{
			Code:     ErrCodeOracleMismatch,
			Step:     i,
			Message:  fmt.Sprintf("contains(%s) at %v", step.Args[0], p),
			Expected: fmt.Sprint(want),
			Actual:   fmt.Sprint(got),
		}).Error())
		return nil
	}
	h.logger.Debug("cross-checked", "step", i, "op", step.Op)
	return nil
}

// probePoints returns each non-empty interval's bounds plus the instant one
// unit before each bound.
func probePoints(intervals []instant.ValueInterval) []instant.Value {
	var out []instant.Value
	for _, iv := range intervals {
		if iv.IsEmpty() {
			continue
		}
		out = append(out, iv.Start(), iv.Start().Prev(), iv.End(), iv.End().Prev())
	}
	return out
}
