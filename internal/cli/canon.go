package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/timeset/internal/instant"
	"github.com/roach88/timeset/internal/ir"
)

// CanonOptions holds flags for the canon command.
type CanonOptions struct {
	*RootOptions
	Contains []string // instants to probe
}

// CanonResult is the JSON payload of the canon command.
type CanonResult struct {
	Set      json.RawMessage `json:"set"`
	SetID    string          `json:"set_id"`
	Len      int             `json:"len"`
	Contains map[string]bool `json:"contains,omitempty"`
}

// NewCanonCommand creates the canon command.
func NewCanonCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CanonOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "canon <start/end>...",
		Short: "Canonicalize intervals",
		Long: `Canonicalize a list of half-open intervals into a set.

Each argument is start/end: integer ticks (0/5) or RFC 3339 times
(2024-03-01T09:00:00Z/2024-03-01T17:00:00Z). Overlapping and touching
intervals are merged, empty and malformed ones dropped.

Exit codes:
  0 - Success
  2 - Unparsable interval or mixed tick/time instants

Examples:
  timeset canon 3/5 0/2 1/3
  timeset canon 0/10 --contains 4 --contains 10
  timeset canon 2024-03-01T09:00:00Z/2024-03-01T12:00:00Z --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCanon(opts, args, cmd)
		},
	}

	cmd.Flags().StringArrayVar(&opts.Contains, "contains", nil, "report whether the set contains this instant (repeatable)")

	return cmd
}

func runCanon(opts *CanonOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	var values []instant.Value
	intervals := make([]instant.ValueInterval, 0, len(args))
	for _, arg := range args {
		iv, err := ParseInterval(arg)
		if err != nil {
			code := ErrCodeBadInterval
			if errors.Is(err, instant.ErrTypeMismatch) {
				code = ErrCodeTypeMismatch
			}
			return formatter.Fail(ExitCommandError, code, fmt.Sprintf("invalid interval %q", arg), err)
		}
		intervals = append(intervals, iv)
		values = append(values, iv.Start(), iv.End())
	}

	probes := make([]instant.Value, len(opts.Contains))
	for i, raw := range opts.Contains {
		p, err := instant.Parse(raw)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeBadInterval, fmt.Sprintf("invalid instant %q", raw), err)
		}
		probes[i] = p
		values = append(values, p)
	}

	if err := instant.Uniform(values...); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeTypeMismatch, "tick and time instants cannot be mixed", err)
	}

	set := instant.NewValueSet(intervals...)
	logger.Debug("canonicalized", "in", len(intervals), "out", set.Len())

	setJSON, err := ir.MarshalCanonical(ir.EncodeSet(set))
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "failed to encode set", err)
	}
	setID := ir.MustSetID(set)

	contains := make(map[string]bool, len(probes))
	for i, p := range probes {
		contains[opts.Contains[i]] = set.Contains(p)
	}

	if formatter.IsJSON() {
		return formatter.Success(CanonResult{
			Set:      setJSON,
			SetID:    setID,
			Len:      set.Len(),
			Contains: contains,
		})
	}

	w := formatter.Writer
	fmt.Fprintln(w, set)
	fmt.Fprintf(w, "set_id: %s\n", setID)
	for i, p := range probes {
		fmt.Fprintf(w, "contains %s: %t\n", p, contains[opts.Contains[i]])
	}
	return nil
}

// ParseInterval reads "start/end" into an interval. Both bounds must share
// one representation.
func ParseInterval(s string) (instant.ValueInterval, error) {
	startText, endText, ok := strings.Cut(s, "/")
	if !ok {
		return instant.ValueInterval{}, errors.New("want start/end")
	}
	start, err := instant.Parse(startText)
	if err != nil {
		return instant.ValueInterval{}, err
	}
	end, err := instant.Parse(endText)
	if err != nil {
		return instant.ValueInterval{}, err
	}
	if err := instant.Uniform(start, end); err != nil {
		return instant.ValueInterval{}, err
	}
	return instant.NewValueInterval(start, end), nil
}
