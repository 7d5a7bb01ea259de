package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/timeset/internal/ir"
)

// TraceEvent records one evaluated step or law check.
type TraceEvent struct {
	Seq    int64      `json:"seq"`
	Op     string     `json:"op"`
	Args   []string   `json:"args,omitempty"`
	Param  ir.IRValue `json:"param,omitempty"`
	As     string     `json:"as,omitempty"`
	Result ir.IRValue `json:"result,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every expectation, law and cross-check held.
	Pass bool `json:"pass"`

	// RunID identifies this execution.
	RunID string `json:"run_id"`

	// Trace lists evaluated steps followed by law checks.
	Trace []TraceEvent `json:"trace"`

	// Errors holds one message per failed check. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// SetIDs maps every declared or bound set name to its content identity.
	SetIDs map[string]string `json:"set_ids,omitempty"`
}

// NewResult creates a passing result with no events.
func NewResult(runID string) *Result {
	return &Result{
		Pass:   true,
		RunID:  runID,
		Trace:  []TraceEvent{},
		Errors: []string{},
		SetIDs: make(map[string]string),
	}
}

// AddError records a failed check and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// ErrorCode categorizes scenario failures.
type ErrorCode string

const (
	ErrCodeInvalidScenario ErrorCode = "INVALID_SCENARIO"
	ErrCodeTypeMismatch    ErrorCode = "TYPE_MISMATCH"
	ErrCodeUnknownSet      ErrorCode = "UNKNOWN_SET"
	ErrCodeUnknownOp       ErrorCode = "UNKNOWN_OP"
	ErrCodeExpectation     ErrorCode = "EXPECTATION_FAILED"
	ErrCodeLawViolated     ErrorCode = "LAW_VIOLATED"
	ErrCodeOracleMismatch  ErrorCode = "ORACLE_MISMATCH"
)

// ScenarioError is a structured failure raised while loading or running a
// scenario.
type ScenarioError struct {
	Code ErrorCode

	// Step is the zero-based step index, or -1 when not tied to a step.
	Step int

	// Expected and Actual are filled for expectation, law and oracle
	// failures.
	Expected string
	Actual   string

	Message string
	Err     error
}

func (e *ScenarioError) Error() string {
	var buf strings.Builder
	buf.WriteString(string(e.Code))
	if e.Step >= 0 {
		fmt.Fprintf(&buf, " at step %d", e.Step)
	}
	buf.WriteString(": ")
	buf.WriteString(e.Message)
	if e.Expected != "" || e.Actual != "" {
		fmt.Fprintf(&buf, " (expected %s, got %s)", e.Expected, e.Actual)
	}
	if e.Err != nil {
		fmt.Fprintf(&buf, ": %v", e.Err)
	}
	return buf.String()
}

func (e *ScenarioError) Unwrap() error {
	return e.Err
}

func newScenarioError(code ErrorCode, step int, format string, args ...any) *ScenarioError {
	return &ScenarioError{Code: code, Step: step, Message: fmt.Sprintf(format, args...)}
}
