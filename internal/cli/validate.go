package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/timeset/internal/harness"
	"github.com/roach88/timeset/internal/instant"
)

// ValidationIssue describes one scenario file that failed to load.
type ValidationIssue struct {
	File    string `json:"file"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Files  int               `json:"files"`
	Errors []ValidationIssue `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <scenario-file-or-dir>",
		Short: "Validate scenarios without running them",
		Long: `Load and validate scenario files without evaluating any step.

Checks document syntax, unknown fields, operation shapes, set bindings and
that every instant in a scenario uses a single representation.

Exit codes:
  0 - All scenarios valid
  1 - One or more scenarios invalid
  2 - Path not found or no scenario files`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	info, err := os.Stat(path)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("path not found: %s", path), nil)
	}

	files := []string{path}
	if info.IsDir() {
		files, err = findScenarioFiles(path, "")
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeScanError, "error scanning directory", err)
		}
		if len(files) == 0 {
			return formatter.Fail(ExitCommandError, ErrCodeNoFiles, fmt.Sprintf("no scenario files found in %s", path), nil)
		}
	}

	result := ValidationResult{Valid: true, Files: len(files)}
	for _, file := range files {
		formatter.VerboseLog("Validating %s", file)
		if _, err := harness.LoadScenario(file); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, ValidationIssue{
				File:    file,
				Code:    validationCode(err),
				Message: err.Error(),
			})
		}
	}

	if !result.Valid {
		return outputValidationErrors(formatter, result)
	}

	if formatter.IsJSON() {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "✓ All %d scenario(s) valid\n", result.Files)
	return nil
}

func validationCode(err error) string {
	if errors.Is(err, instant.ErrTypeMismatch) {
		return ErrCodeTypeMismatch
	}
	return ErrCodeScenario
}

// outputValidationErrors outputs every invalid file.
func outputValidationErrors(formatter *OutputFormatter, result ValidationResult) error {
	message := fmt.Sprintf("validation failed with %d error(s)", len(result.Errors))

	if formatter.IsJSON() {
		response := CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    result.Errors[0].Code,
				Message: result.Errors[0].Message,
			},
		}
		if err := formatter.Encode(response); err != nil {
			return err
		}
		// Validation failures = exit code 1 (test/validation failure)
		return NewExitError(ExitFailure, message)
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)
	for _, issue := range result.Errors {
		fmt.Fprintln(formatter.Writer, issue.File)
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", issue.Code, issue.Message)
	}

	return NewExitError(ExitFailure, message)
}
