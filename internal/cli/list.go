package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/irattrs/internal/attr"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	NamesOnly bool
	WithValue bool
}

// ListResult is the structured payload of the list command.
type ListResult struct {
	Count      int         `json:"count" yaml:"count"`
	Attributes []attr.Info `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Names      []string    `json:"names,omitempty" yaml:"names,omitempty"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every attribute in declaration order",
		Long: `List every attribute in declaration order with its canonical name,
description and, for attributes that take one, the shape of the value.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.NamesOnly, "names", false, "print canonical names only")
	cmd.Flags().BoolVar(&opts.WithValue, "with-value", false, "only attributes that take a value")

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	var infos []attr.Info
	for a := range attr.All() {
		info := a.Info()
		if _, ok := info.Shape(); opts.WithValue && !ok {
			continue
		}
		infos = append(infos, info)
	}
	formatter.VerboseLog("Listing %d of %d attributes", len(infos), attr.Count())

	if opts.NamesOnly {
		names := make([]string, len(infos))
		for i, info := range infos {
			names[i] = info.Name
		}
		if formatter.Structured() {
			return formatter.Success(ListResult{Count: len(names), Names: names})
		}
		for _, name := range names {
			fmt.Fprintln(formatter.Writer, name)
		}
		return nil
	}

	if formatter.Structured() {
		return formatter.Success(ListResult{Count: len(infos), Attributes: infos})
	}
	renderInfos(formatter.Writer, infos)
	return nil
}
