package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/timeset/internal/harness"
	"github.com/roach88/timeset/internal/ir"
)

// EvalResult is the JSON payload of the eval command.
type EvalResult struct {
	Scenario string            `json:"scenario"`
	Pass     bool              `json:"pass"`
	Snapshot json.RawMessage   `json:"snapshot"`
	Digest   string            `json:"digest"`
	SetIDs   map[string]string `json:"set_ids"`
	Errors   []string          `json:"errors,omitempty"`
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval <scenario-file>",
		Short: "Run one scenario and print its trace",
		Long: `Run a single scenario file (.yaml, .yml or .cue) and print every
evaluated step and law check.

Exit codes:
  0 - All expectations, laws and cross-checks held
  1 - One or more checks failed
  2 - Scenario could not be loaded or run

Examples:
  timeset eval scenarios/bridging_union.yaml
  timeset eval scenarios/algebra_laws.cue --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runEval(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	logger := newLogger(opts, cmd.ErrOrStderr())

	scenario, err := harness.LoadScenario(path)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeScenario, fmt.Sprintf("failed to load %s", path), err)
	}
	logger.Info("running scenario", "name", scenario.Name, "steps", len(scenario.Steps), "laws", len(scenario.Laws))

	result, err := harness.RunWithOptions(cmd.Context(), scenario, harness.Options{Logger: logger})
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeScenario, fmt.Sprintf("failed to run %s", scenario.Name), err)
	}

	snapshot := harness.NewTraceSnapshot(scenario, result)
	data, err := snapshot.MarshalCanonical()
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "failed to encode trace", err)
	}

	if formatter.IsJSON() {
		resp := CLIResponse{
			Status: "ok",
			RunID:  result.RunID,
			Data: EvalResult{
				Scenario: scenario.Name,
				Pass:     result.Pass,
				Snapshot: data,
				Digest:   ir.TraceDigest(data),
				SetIDs:   result.SetIDs,
				Errors:   result.Errors,
			},
		}
		if !result.Pass {
			resp.Status = "error"
			resp.Error = &CLIError{Code: ErrCodeTestFailed, Message: fmt.Sprintf("%d check(s) failed", len(result.Errors))}
		}
		if err := formatter.Encode(resp); err != nil {
			return err
		}
	} else {
		writeTraceText(formatter.Writer, scenario, result)
	}

	if !result.Pass {
		return NewExitError(ExitFailure, fmt.Sprintf("scenario %s failed", scenario.Name))
	}
	return nil
}

func writeTraceText(w io.Writer, scenario *harness.Scenario, result *harness.Result) {
	fmt.Fprintf(w, "scenario %s (run %s)\n", scenario.Name, result.RunID)
	for _, event := range result.Trace {
		line := fmt.Sprintf("%4d %s(%s)", event.Seq, event.Op, strings.Join(event.Args, ", "))
		if event.Param != nil {
			line += " " + renderIR(event.Param)
		}
		if event.Result != nil {
			line += " -> " + renderIR(event.Result)
		}
		if event.As != "" {
			line += " as " + event.As
		}
		fmt.Fprintln(w, line)
	}

	if result.Pass {
		fmt.Fprintf(w, "✓ %s passed\n", scenario.Name)
		return
	}
	fmt.Fprintf(w, "✗ %s failed\n", scenario.Name)
	for _, e := range result.Errors {
		fmt.Fprintf(w, "  %s\n", e)
	}
}

func renderIR(v ir.IRValue) string {
	data, err := ir.MarshalCanonical(v)
	if err != nil {
		return fmt.Sprintf("<%v>", err)
	}
	return string(data)
}
