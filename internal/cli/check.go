package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/irattrs/internal/attr"
	"github.com/roach88/irattrs/internal/schema"
)

// CheckResult holds registry check results.
type CheckResult struct {
	Valid  bool                     `json:"valid" yaml:"valid"`
	Count  int                      `json:"count" yaml:"count"`
	Errors []schema.ValidationError `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check the attribute catalog for consistency",
		Long: `Check the attribute catalog against its CUE schema.

Verifies that every attribute has a well-formed identifier and canonical
name, a non-empty description, no placeholder value shape, and that no
name or identifier is used twice. All findings are reported.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, cmd)
		},
	}

	return cmd
}

func runCheck(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	return checkInfos(formatter, attr.Infos())
}

// checkInfos validates infos and reports the outcome through formatter.
func checkInfos(formatter *OutputFormatter, infos []attr.Info) error {
	formatter.VerboseLog("Checking %d attributes", len(infos))

	if err := attr.CheckTable(); err != nil {
		return outputCheckFailures(formatter, len(infos), []schema.ValidationError{{
			Index:   -1,
			Field:   "table",
			Message: err.Error(),
			Code:    ErrCodeCheckFailed,
		}})
	}

	findings, err := schema.Validate(infos)
	if err != nil {
		return outputCommandError(formatter, ErrCodeGeneric, err.Error(), nil)
	}
	if len(findings) > 0 {
		return outputCheckFailures(formatter, len(infos), findings)
	}

	if formatter.Structured() {
		return formatter.Success(CheckResult{Valid: true, Count: len(infos)})
	}
	fmt.Fprintf(formatter.Writer, "✓ Catalog valid (%d attributes)\n", len(infos))
	return nil
}

// outputCheckFailures reports findings. Findings are a check failure
// (exit code 1), not a command error.
func outputCheckFailures(formatter *OutputFormatter, count int, errs []schema.ValidationError) error {
	exitErr := NewExitError(ExitFailure, fmt.Sprintf("check failed with %d error(s)", len(errs)))

	if formatter.Structured() {
		response := CLIResponse{
			Status: "error",
			Data:   CheckResult{Valid: false, Count: count, Errors: errs},
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
		}
		if err := formatter.encode(response); err != nil {
			return err
		}
		return exitErr
	}

	fmt.Fprintln(formatter.Writer, "✗ Check failed")
	fmt.Fprintln(formatter.Writer)
	for _, e := range errs {
		if e.Index >= 0 {
			fmt.Fprintf(formatter.Writer, "attributes[%d].%s\n", e.Index, e.Field)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", e.Code, e.Message)
	}
	return exitErr
}
