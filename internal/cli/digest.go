package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/irattrs/internal/attr"
)

// DigestOptions holds flags for the digest command.
type DigestOptions struct {
	*RootOptions
	Expect string
}

// DigestResult is the structured payload of the digest command.
type DigestResult struct {
	Digest  string `json:"digest" yaml:"digest"`
	Version string `json:"version" yaml:"version"`
	Count   int    `json:"count" yaml:"count"`
}

// NewDigestCommand creates the digest command.
func NewDigestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DigestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Print the catalog digest",
		Long: `Print the SHA-256 digest of the canonical JSON form of the catalog.

Consumers that keep a copy of the attribute table can compare digests to
detect drift. With --expect the command fails when the digest differs.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDigest(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Expect, "expect", "", "fail unless the digest equals this value")

	return cmd
}

func runDigest(opts *DigestOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	result := DigestResult{
		Digest:  attr.CatalogDigest(),
		Version: attr.CatalogVersion,
		Count:   attr.Count(),
	}

	if opts.Expect != "" && opts.Expect != result.Digest {
		_ = formatter.Error(ErrCodeDigestMismatch, "catalog digest mismatch", map[string]string{
			"expected": opts.Expect,
			"actual":   result.Digest,
		})
		return NewExitError(ExitFailure, fmt.Sprintf("%s: catalog digest mismatch", ErrCodeDigestMismatch))
	}

	if formatter.Structured() {
		return formatter.Success(result)
	}
	fmt.Fprintln(formatter.Writer, result.Digest)
	formatter.VerboseLog("catalog version %s, %d attributes", result.Version, result.Count)
	return nil
}
