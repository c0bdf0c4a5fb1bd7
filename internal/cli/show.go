package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/irattrs/internal/attr"
)

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	Identifier bool
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show one attribute by canonical name",
		Long: `Show one attribute. The argument is its canonical textual name, matched
exactly and case-sensitively (e.g. "noinline", "sanitize_address").
With --ident the argument is the identifier instead (e.g. "NoInline").`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Identifier, "ident", false, "treat the argument as an identifier")

	return cmd
}

func runShow(opts *ShowOptions, arg string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	lookup := attr.Lookup
	if opts.Identifier {
		lookup = attr.LookupIdentifier
	}
	a, err := lookup(arg)
	if err != nil {
		return outputCommandError(formatter, ErrCodeUnknownAttribute, err.Error(), map[string]string{"name": arg})
	}
	formatter.VerboseLog("Resolved %q to %s", arg, a)

	info := a.Info()
	if formatter.Structured() {
		return formatter.Success(info)
	}
	renderInfo(formatter.Writer, info)
	return nil
}
