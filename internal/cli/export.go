package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/irattrs/internal/attr"
	"github.com/roach88/irattrs/internal/store"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Read   string // snapshot id or "latest"
	Verify bool
	List   bool
}

// ExportResult is the payload after writing a snapshot.
type ExportResult struct {
	Snapshot store.Snapshot `json:"snapshot" yaml:"snapshot"`
	Inserted bool           `json:"inserted" yaml:"inserted"`
}

// SnapshotResult is the payload after reading a snapshot back.
type SnapshotResult struct {
	Snapshot   store.Snapshot `json:"snapshot" yaml:"snapshot"`
	Verified   bool           `json:"verified" yaml:"verified"`
	Attributes []attr.Info    `json:"attributes" yaml:"attributes"`
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the catalog to a snapshot database",
		Long: `Write the attribute catalog to a SQLite snapshot database.

Snapshots are keyed by catalog digest: exporting an unchanged catalog
returns the existing snapshot. Use --read to dump a stored snapshot
("latest" or a snapshot id) and --list to show every snapshot.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&rootOpts.DB, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.Read, "read", "", `read a snapshot back ("latest" or an id)`)
	cmd.Flags().BoolVar(&opts.Verify, "verify", false, "verify the snapshot digest when reading")
	cmd.Flags().BoolVar(&opts.List, "list", false, "list stored snapshots")

	return cmd
}

func runExport(opts *ExportOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	if opts.DB == "" {
		return outputCommandError(formatter, ErrCodeMissingFlag, "--db is required", nil)
	}
	if opts.Verify && opts.Read == "" {
		return outputCommandError(formatter, ErrCodeMissingFlag, "--verify requires --read", nil)
	}
	if opts.List && opts.Read != "" {
		return outputCommandError(formatter, ErrCodeGeneric, "--list and --read cannot be combined", nil)
	}

	st, err := store.Open(opts.DB)
	if err != nil {
		return outputCommandError(formatter, ErrCodeStoreFailed, fmt.Sprintf("failed to open database: %v", err), nil)
	}
	defer st.Close()

	formatter.VerboseLog("Opened database: %s", opts.DB)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	switch {
	case opts.List:
		return listSnapshots(ctx, st, formatter)
	case opts.Read != "":
		return readSnapshot(ctx, st, formatter, opts.Read, opts.Verify)
	}

	snap, inserted, err := st.WriteRegistry(ctx)
	if err != nil {
		return outputCommandError(formatter, ErrCodeWriteFailed, err.Error(), nil)
	}
	formatter.VerboseLog("Snapshot %s digest %s", snap.ID, snap.Digest)

	if formatter.Structured() {
		return formatter.Success(ExportResult{Snapshot: snap, Inserted: inserted})
	}
	if inserted {
		fmt.Fprintf(formatter.Writer, "✓ Wrote snapshot %s (seq %d, %d attributes)\n", snap.ID, snap.Seq, snap.Count)
	} else {
		fmt.Fprintf(formatter.Writer, "✓ Snapshot %s is current (seq %d)\n", snap.ID, snap.Seq)
	}
	return nil
}

func readSnapshot(ctx context.Context, st *store.Store, formatter *OutputFormatter, ref string, verify bool) error {
	var (
		snap store.Snapshot
		err  error
	)
	if ref == "latest" {
		snap, err = st.LatestSnapshot(ctx)
	} else {
		snap, err = st.GetSnapshot(ctx, ref)
	}
	if err != nil {
		return outputStoreError(formatter, err)
	}

	if verify {
		if err := st.VerifySnapshot(ctx, snap.ID); err != nil {
			if errors.Is(err, store.ErrDigestMismatch) {
				_ = formatter.Error(ErrCodeDigestMismatch, err.Error(), map[string]string{"snapshot": snap.ID})
				return NewExitError(ExitFailure, fmt.Sprintf("%s: %v", ErrCodeDigestMismatch, err))
			}
			return outputStoreError(formatter, err)
		}
		formatter.VerboseLog("Snapshot %s verified", snap.ID)
	}

	infos, err := st.ReadSnapshot(ctx, snap.ID)
	if err != nil {
		return outputStoreError(formatter, err)
	}

	if formatter.Structured() {
		return formatter.Success(SnapshotResult{Snapshot: snap, Verified: verify, Attributes: infos})
	}
	fmt.Fprintf(formatter.Writer, "# snapshot %s seq %d digest %s\n\n", snap.ID, snap.Seq, snap.Digest)
	renderInfos(formatter.Writer, infos)
	return nil
}

func listSnapshots(ctx context.Context, st *store.Store, formatter *OutputFormatter) error {
	snaps, err := st.ListSnapshots(ctx)
	if err != nil {
		return outputStoreError(formatter, err)
	}

	if formatter.Structured() {
		return formatter.Success(snaps)
	}
	if len(snaps) == 0 {
		fmt.Fprintln(formatter.Writer, "No snapshots")
		return nil
	}
	for _, s := range snaps {
		fmt.Fprintf(formatter.Writer, "%d\t%s\t%s\t%d\n", s.Seq, s.ID, s.Digest, s.Count)
	}
	return nil
}

// outputStoreError maps store errors to CLI error codes.
func outputStoreError(formatter *OutputFormatter, err error) error {
	switch {
	case errors.Is(err, store.ErrSnapshotNotFound):
		return outputCommandError(formatter, ErrCodeSnapshotNotFound, err.Error(), nil)
	case errors.Is(err, attr.ErrUnknownAttribute):
		return outputCommandError(formatter, ErrCodeUnknownAttribute, err.Error(), nil)
	default:
		return outputCommandError(formatter, ErrCodeStoreFailed, err.Error(), nil)
	}
}
