package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/timeset/internal/ir"
)

// TraceSnapshot captures the complete trace for a scenario execution.
// All fields use canonical JSON serialization for deterministic comparison.
type TraceSnapshot struct {
	ScenarioName string       `json:"scenario_name"`
	RunID        string       `json:"run_id,omitempty"`
	Trace        []TraceEvent `json:"trace"`
}

// NewTraceSnapshot builds the snapshot of a run. The run ID is included only
// when the scenario pins it; generated IDs would make the snapshot
// non-deterministic.
func NewTraceSnapshot(scenario *Scenario, result *Result) TraceSnapshot {
	return TraceSnapshot{
		ScenarioName: scenario.Name,
		RunID:        scenario.RunID,
		Trace:        result.Trace,
	}
}

// toCanonicalMap converts a TraceSnapshot to a map[string]any for canonical JSON serialization.
// This is required because ir.MarshalCanonical only handles IR types and primitives.
func (s *TraceSnapshot) toCanonicalMap() map[string]any {
	traceList := make([]any, len(s.Trace))
	for i, event := range s.Trace {
		eventMap := map[string]any{
			"seq": event.Seq,
			"op":  event.Op,
		}
		if len(event.Args) > 0 {
			args := make(ir.IRArray, len(event.Args))
			for j, a := range event.Args {
				args[j] = ir.IRString(a)
			}
			eventMap["args"] = args
		}
		if event.Param != nil {
			eventMap["param"] = event.Param
		}
		if event.As != "" {
			eventMap["as"] = event.As
		}
		if event.Result != nil {
			eventMap["result"] = event.Result
		}
		traceList[i] = eventMap
	}

	result := map[string]any{
		"scenario_name": s.ScenarioName,
		"trace":         traceList,
	}
	if s.RunID != "" {
		result["run_id"] = s.RunID
	}
	return result
}

// MarshalCanonical renders the snapshot as RFC 8785 JSON.
func (s *TraceSnapshot) MarshalCanonical() ([]byte, error) {
	return ir.MarshalCanonical(s.toCanonicalMap())
}

// Digest is the content identity of the snapshot.
func (s *TraceSnapshot) Digest() (string, error) {
	data, err := s.MarshalCanonical()
	if err != nil {
		return "", err
	}
	return ir.TraceDigest(data), nil
}

// RunWithGolden executes a scenario and compares the trace against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if trace doesn't match golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	snapshot := NewTraceSnapshot(scenario, result)
	traceJSON, err := snapshot.MarshalCanonical()
	if err != nil {
		return nil, err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, traceJSON)

	return result, nil
}

// AssertGolden compares an already computed result against a golden file
// named after the scenario.
func AssertGolden(t *testing.T, scenario *Scenario, result *Result) error {
	t.Helper()

	snapshot := NewTraceSnapshot(scenario, result)
	traceJSON, err := snapshot.MarshalCanonical()
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, traceJSON)

	return nil
}
