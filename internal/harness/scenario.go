package harness

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/roach88/timeset/internal/instant"
)

// Scenario defines a conformance test scenario.
// Scenarios declare interval sets, run operations over them, and assert on
// each result.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// RunID pins the run identifier for deterministic snapshots.
	// If empty, a UUIDv7 is generated and left out of golden files.
	RunID string `yaml:"run_id,omitempty"`

	// CrossCheck enables the SQLite oracle comparison for every
	// set-producing step.
	CrossCheck bool `yaml:"cross_check,omitempty"`

	// Laws lists algebraic laws to verify over the declared sets.
	Laws []string `yaml:"laws,omitempty"`

	// Sets maps names to raw interval lists. Each interval is a
	// [start, end] pair; the list does not need to be canonical.
	Sets map[string][][]any `yaml:"sets"`

	// Steps are evaluated in order.
	Steps []Step `yaml:"steps"`
}

// Step is one operation evaluated during a scenario.
type Step struct {
	// Op is the operation name (see the Op constants).
	Op string `yaml:"op"`

	// Args names the operand sets.
	Args []string `yaml:"args"`

	// At is the instant probed by contains.
	At any `yaml:"at,omitempty"`

	// By is the offset applied by translate.
	By any `yaml:"by,omitempty"`

	// Window is the [start, end] interval used by clip.
	Window []any `yaml:"window,omitempty"`

	// As binds a set-producing result to a new name.
	As string `yaml:"as,omitempty"`

	// Expect is the expected result: an interval list for set operations,
	// a [start, end] pair (or []) for span, a bool for predicates.
	// If nil, the step is evaluated and traced without validation.
	Expect any `yaml:"expect,omitempty"`
}

// Operation names.
const (
	OpUnion        = "union"
	OpIntersection = "intersection"
	OpDifference   = "difference"
	OpTranslate    = "translate"
	OpClip         = "clip"
	OpContains     = "contains"
	OpIsSubset     = "is_subset"
	OpIsDisjoint   = "is_disjoint"
	OpIsEmpty      = "is_empty"
	OpEqual        = "equal"
	OpSpan         = "span"
)

type opShape struct {
	arity     int
	producer  bool // yields a set that can be bound with "as"
	needAt    bool
	needBy    bool
	needClip  bool
	predicate bool
}

var operations = map[string]opShape{
	OpUnion:        {arity: 2, producer: true},
	OpIntersection: {arity: 2, producer: true},
	OpDifference:   {arity: 2, producer: true},
	OpTranslate:    {arity: 1, producer: true, needBy: true},
	OpClip:         {arity: 1, producer: true, needClip: true},
	OpContains:     {arity: 1, needAt: true, predicate: true},
	OpIsSubset:     {arity: 2, predicate: true},
	OpIsDisjoint:   {arity: 2, predicate: true},
	OpIsEmpty:      {arity: 1, predicate: true},
	OpEqual:        {arity: 2, predicate: true},
	OpSpan:         {arity: 1},
}

var (
	// ErrUnknownOp is wrapped by Validate when a step names no known operation.
	ErrUnknownOp = errors.New("unknown op")

	// ErrUnknownSet is wrapped by Validate when a step refers to a set that
	// is neither declared nor bound by an earlier step.
	ErrUnknownSet = errors.New("unknown set")
)

// LoadScenario reads and parses a scenario file. The format is chosen by
// extension: .yaml/.yml are decoded strictly, .cue is evaluated and must be
// fully concrete. Unknown fields are rejected in both formats.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
	case ".cue":
		data, err = cueToJSON(path, data)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported scenario format %q", ext)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}
	return scenario, nil
}

// ParseScenario decodes and validates a YAML (or JSON) scenario document.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// cueToJSON evaluates a CUE document and exports it as JSON, which the
// strict YAML decoder then reads like any other scenario.
func cueToJSON(path string, data []byte) ([]byte, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("failed to compile CUE: %w", err)
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("CUE scenario is not concrete: %w", err)
	}
	out, err := v.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to export CUE: %w", err)
	}
	return out, nil
}

// Validate checks required fields, operation shapes and name bindings, and
// that every instant in the document shares one representation.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	// The name becomes a golden file name.
	if strings.ContainsAny(s.Name, `/\`) || strings.Contains(s.Name, "..") {
		return fmt.Errorf("name %q must not contain path separators or \"..\"", s.Name)
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 && len(s.Laws) == 0 {
		return fmt.Errorf("at least one step or law is required")
	}

	for _, law := range s.Laws {
		if law != LawAll && !slices.Contains(AllLaws, law) {
			return fmt.Errorf("unknown law %q", law)
		}
	}

	var values []instant.Value
	for _, name := range s.SetNames() {
		ivs, err := parseIntervals(s.Sets[name])
		if err != nil {
			return fmt.Errorf("sets.%s: %w", name, err)
		}
		for _, iv := range ivs {
			values = append(values, iv.Start(), iv.End())
		}
	}

	bound := make(map[string]bool, len(s.Sets))
	for name := range s.Sets {
		bound[name] = true
	}

	var deltas []instant.Delta
	for i, step := range s.Steps {
		shape, ok := operations[step.Op]
		if !ok {
			return fmt.Errorf("steps[%d]: %w %q", i, ErrUnknownOp, step.Op)
		}
		if len(step.Args) != shape.arity {
			return fmt.Errorf("steps[%d]: %s takes %d set argument(s), got %d", i, step.Op, shape.arity, len(step.Args))
		}
		for _, arg := range step.Args {
			if !bound[arg] {
				return fmt.Errorf("steps[%d]: %w %q", i, ErrUnknownSet, arg)
			}
		}
		if step.As != "" {
			if !shape.producer {
				return fmt.Errorf("steps[%d]: %s does not produce a set, cannot bind %q", i, step.Op, step.As)
			}
			bound[step.As] = true
		}

		if shape.needAt {
			if step.At == nil {
				return fmt.Errorf("steps[%d]: %s requires at", i, step.Op)
			}
			p, err := instant.FromAny(step.At)
			if err != nil {
				return fmt.Errorf("steps[%d].at: %w", i, err)
			}
			values = append(values, p)
		}
		if shape.needBy {
			if step.By == nil {
				return fmt.Errorf("steps[%d]: %s requires by", i, step.Op)
			}
			d, err := instant.DeltaFromAny(step.By)
			if err != nil {
				return fmt.Errorf("steps[%d].by: %w", i, err)
			}
			deltas = append(deltas, d)
		}
		if shape.needClip {
			iv, err := parseInterval(step.Window)
			if err != nil {
				return fmt.Errorf("steps[%d].window: %w", i, err)
			}
			values = append(values, iv.Start(), iv.End())
		}

		if step.Expect == nil {
			continue
		}
		expected, err := expectedValues(step.Op, shape, step.Expect)
		if err != nil {
			return fmt.Errorf("steps[%d].expect: %w", i, err)
		}
		values = append(values, expected...)
	}

	if err := instant.Uniform(values...); err != nil {
		return err
	}
	if len(values) > 0 {
		for _, d := range deltas {
			if d.Kind() != values[0].Kind() {
				return &instant.MismatchError{Op: "uniform", Left: values[0].Kind(), Right: d.Kind()}
			}
		}
	}
	return nil
}

// SetNames returns the declared set names in sorted order.
func (s *Scenario) SetNames() []string {
	names := make([]string, 0, len(s.Sets))
	for name := range s.Sets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// expectedValues type-checks an expectation and returns the instants it
// mentions.
func expectedValues(op string, shape opShape, expect any) ([]instant.Value, error) {
	switch {
	case shape.predicate:
		if _, ok := expect.(bool); !ok {
			return nil, fmt.Errorf("%s expects a bool, got %T", op, expect)
		}
		return nil, nil
	case op == OpSpan:
		pair, ok := expect.([]any)
		if !ok {
			return nil, fmt.Errorf("span expects [start, end] or [], got %T", expect)
		}
		if len(pair) == 0 {
			return nil, nil
		}
		iv, err := parseInterval(pair)
		if err != nil {
			return nil, err
		}
		return []instant.Value{iv.Start(), iv.End()}, nil
	default:
		raw, err := asIntervalList(expect)
		if err != nil {
			return nil, err
		}
		ivs, err := parseIntervals(raw)
		if err != nil {
			return nil, err
		}
		var out []instant.Value
		for _, iv := range ivs {
			out = append(out, iv.Start(), iv.End())
		}
		return out, nil
	}
}

func asIntervalList(v any) ([][]any, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("want a list of [start, end] pairs, got %T", v)
	}
	out := make([][]any, len(list))
	for i, elem := range list {
		pair, ok := elem.([]any)
		if !ok {
			return nil, fmt.Errorf("[%d]: want [start, end], got %T", i, elem)
		}
		out[i] = pair
	}
	return out, nil
}

func parseIntervals(raw [][]any) ([]instant.ValueInterval, error) {
	out := make([]instant.ValueInterval, len(raw))
	for i, pair := range raw {
		iv, err := parseInterval(pair)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		out[i] = iv
	}
	return out, nil
}

func parseInterval(pair []any) (instant.ValueInterval, error) {
	if len(pair) != 2 {
		return instant.ValueInterval{}, fmt.Errorf("want [start, end], got %d element(s)", len(pair))
	}
	start, err := instant.FromAny(pair[0])
	if err != nil {
		return instant.ValueInterval{}, fmt.Errorf("start: %w", err)
	}
	end, err := instant.FromAny(pair[1])
	if err != nil {
		return instant.ValueInterval{}, fmt.Errorf("end: %w", err)
	}
	if err := instant.Uniform(start, end); err != nil {
		return instant.ValueInterval{}, err
	}
	return instant.NewValueInterval(start, end), nil
}
