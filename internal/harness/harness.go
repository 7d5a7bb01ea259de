package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/timeset/internal/instant"
	"github.com/roach88/timeset/internal/ir"
	"github.com/roach88/timeset/internal/oracle"
	"github.com/roach88/timeset/internal/testutil"
)

// Options configures a scenario run.
type Options struct {
	// Logger receives step-level debug output. Defaults to discard.
	Logger *slog.Logger

	// RunIDs issues the run identifier when the scenario does not pin one.
	// Defaults to UUIDv7Generator.
	RunIDs RunIDGenerator
}

// Harness is the scenario execution engine. A Harness is used for exactly
// one run.
type Harness struct {
	scenario *Scenario
	sets     map[string]instant.ValueSet
	raw      map[string][]instant.ValueInterval
	clock    *testutil.SeqClock
	oracle   *oracle.Oracle
	logger   *slog.Logger
	result   *Result
}

// Run executes a scenario with default options.
func Run(scenario *Scenario) (*Result, error) {
	return RunWithOptions(context.Background(), scenario, Options{})
}

// RunWithOptions executes a scenario and returns the result.
//
// Execution flow:
//  1. Validate the scenario and build every declared set
//  2. Load raw intervals into a fresh oracle if cross_check is set
//  3. Evaluate steps in order, checking expectations
//  4. Verify the requested laws over the declared sets
//
// Failed expectations, laws and cross-checks are collected in the Result.
// A returned error means the scenario could not be run at all.
func RunWithOptions(ctx context.Context, scenario *Scenario, opts Options) (*Result, error) {
	if err := scenario.Validate(); err != nil {
		return nil, &ScenarioError{Code: codeFor(err), Step: -1, Message: "invalid scenario", Err: err}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	runID := scenario.RunID
	if runID == "" {
		gen := opts.RunIDs
		if gen == nil {
			gen = UUIDv7Generator{}
		}
		runID = gen.Generate()
	}

	h := &Harness{
		scenario: scenario,
		sets:     make(map[string]instant.ValueSet, len(scenario.Sets)),
		raw:      make(map[string][]instant.ValueInterval, len(scenario.Sets)),
		clock:    testutil.NewSeqClock(),
		logger:   logger.With("scenario", scenario.Name, "run_id", runID),
		result:   NewResult(runID),
	}

	for _, name := range scenario.SetNames() {
		raw, err := parseIntervals(scenario.Sets[name])
		if err != nil {
			return nil, fmt.Errorf("set %q: %w", name, err)
		}
		h.bind(name, instant.NewValueSet(raw...), raw)
	}

	if scenario.CrossCheck {
		o, err := oracle.Open()
		if err != nil {
			return nil, err
		}
		defer o.Close()
		h.oracle = o
		for _, name := range scenario.SetNames() {
			if err := o.Load(ctx, name, h.raw[name]); err != nil {
				return nil, err
			}
		}
		loaded, err := o.Names(ctx)
		if err != nil {
			return nil, err
		}
		h.logger.Debug("oracle loaded", "sets", strings.Join(loaded, ","))
	}

	for i, step := range scenario.Steps {
		if err := h.evalStep(ctx, i, step); err != nil {
			return nil, err
		}
	}

	if err := h.checkLaws(); err != nil {
		return nil, err
	}

	h.logger.Debug("scenario finished", "pass", h.result.Pass, "errors", len(h.result.Errors))
	return h.result, nil
}

func codeFor(err error) ErrorCode {
	switch {
	case errors.Is(err, instant.ErrTypeMismatch):
		return ErrCodeTypeMismatch
	case errors.Is(err, ErrUnknownOp):
		return ErrCodeUnknownOp
	case errors.Is(err, ErrUnknownSet):
		return ErrCodeUnknownSet
	}
	return ErrCodeInvalidScenario
}

func (h *Harness) bind(name string, s instant.ValueSet, raw []instant.ValueInterval) {
	h.sets[name] = s
	h.raw[name] = raw
	h.result.SetIDs[name] = ir.MustSetID(s)
}

// evaluation is the outcome of one step before expectation checks.
type evaluation struct {
	set    instant.ValueSet
	isSet  bool
	result ir.IRValue
	// extra holds auxiliary operands for the oracle, such as a clip window.
	extra []instant.ValueInterval
}

func (h *Harness) evalStep(ctx context.Context, i int, step Step) error {
	shape := operations[step.Op]
	operands := make([]instant.ValueSet, len(step.Args))
	for j, name := range step.Args {
		operands[j] = h.sets[name]
	}

	event := TraceEvent{Op: step.Op, Args: step.Args, As: step.As}
	var ev evaluation
	err := instant.Guard(func() {
		ev = h.apply(step, shape, operands, &event)
	})
	if err != nil {
		return &ScenarioError{Code: ErrCodeTypeMismatch, Step: i, Message: step.Op, Err: err}
	}

	event.Seq = h.clock.Next()
	event.Result = ev.result
	h.result.Trace = append(h.result.Trace, event)
	h.logger.Debug("step evaluated", "seq", event.Seq, "op", step.Op, "args", strings.Join(step.Args, ","))

	if step.Expect != nil {
		if err := h.checkExpectation(i, step, ev); err != nil {
			h.result.AddError(err.Error())
		}
	}

	if h.oracle != nil {
		if err := h.crossCheck(ctx, i, step, ev); err != nil {
			return err
		}
	}

	if step.As != "" {
		h.bind(step.As, ev.set, ev.set.Intervals())
		if h.oracle != nil {
			if err := h.oracle.Load(ctx, step.As, ev.set.Intervals()); err != nil {
				return err
			}
		}
	}
	return nil
}

// apply runs the engine operation. Parameters were validated up front, so
// conversion errors cannot occur here; a kind mismatch panics and is
// recovered by the caller.
func (h *Harness) apply(step Step, shape opShape, operands []instant.ValueSet, event *TraceEvent) evaluation {
	a := operands[0]
	var b instant.ValueSet
	if shape.arity == 2 {
		b = operands[1]
	}

	produce := func(s instant.ValueSet) evaluation {
		return evaluation{set: s, isSet: true, result: ir.EncodeSet(s)}
	}
	predicate := func(v bool) evaluation {
		return evaluation{result: ir.IRBool(v)}
	}

	switch step.Op {
	case OpUnion:
		return produce(a.Union(b))
	case OpIntersection:
		return produce(a.Intersection(b))
	case OpDifference:
		return produce(a.Difference(b))
	case OpTranslate:
		d, _ := instant.DeltaFromAny(step.By)
		event.Param = ir.EncodeDelta(d)
		return produce(a.Translate(d))
	case OpClip:
		window, _ := parseInterval(step.Window)
		event.Param = ir.EncodeInterval(window)
		ev := produce(a.Clip(window))
		ev.extra = []instant.ValueInterval{window}
		return ev
	case OpContains:
		p, _ := instant.FromAny(step.At)
		event.Param = ir.EncodeValue(p)
		return predicate(a.Contains(p))
	case OpIsSubset:
		return predicate(a.IsSubset(b))
	case OpIsDisjoint:
		return predicate(a.IsDisjoint(b))
	case OpIsEmpty:
		return predicate(a.IsEmpty())
	case OpEqual:
		return predicate(a.Equal(b))
	case OpSpan:
		span := a.Span()
		ev := evaluation{result: ir.IRArray{}}
		if !span.IsEmpty() {
			ev.result = ir.EncodeInterval(span)
		}
		return ev
	}
	panic(fmt.Sprintf("harness: unhandled op %q", step.Op))
}

func (h *Harness) checkExpectation(i int, step Step, ev evaluation) error {
	shape := operations[step.Op]
	label := fmt.Sprintf("%s(%s)", step.Op, strings.Join(step.Args, ", "))

	switch {
	case shape.predicate:
		want := step.Expect.(bool)
		got := bool(ev.result.(ir.IRBool))
		if want != got {
			return &ScenarioError{Code: ErrCodeExpectation, Step: i, Message: label,
				Expected: fmt.Sprint(want), Actual: fmt.Sprint(got)}
		}
		return nil

	case step.Op == OpSpan:
		pair := step.Expect.([]any)
		got := h.sets[step.Args[0]].Span()
		var equal bool
		want := "[]"
		if len(pair) == 0 {
			equal = got.IsEmpty()
		} else {
			iv, _ := parseInterval(pair)
			want = iv.String()
			err := instant.Guard(func() { equal = !got.IsEmpty() && iv.Equal(got) })
			if err != nil {
				return &ScenarioError{Code: ErrCodeTypeMismatch, Step: i, Message: label, Err: err}
			}
		}
		if !equal {
			actual := "[]"
			if !got.IsEmpty() {
				actual = got.String()
			}
			return &ScenarioError{Code: ErrCodeExpectation, Step: i, Message: label, Expected: want, Actual: actual}
		}
		return nil

	default:
		raw, _ := asIntervalList(step.Expect)
		ivs, _ := parseIntervals(raw)
		want := instant.NewValueSet(ivs...)
		var equal bool
		if err := instant.Guard(func() { equal = want.Equal(ev.set) }); err != nil {
			return &ScenarioError{Code: ErrCodeTypeMismatch, Step: i, Message: label, Err: err}
		}
		if !equal {
			return &ScenarioError{Code: ErrCodeExpectation, Step: i, Message: label,
				Expected: want.String(), Actual: ev.set.String()}
		}
		return nil
	}
}
