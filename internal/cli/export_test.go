package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/irattrs/internal/store"
)

func runExportCmd(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewExportCommand(&RootOptions{Format: format})
	cmd.SetOut(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestExportRequiresDB(t *testing.T) {
	out, err := runExportCmd(t, "text")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeMissingFlag)
	assert.Contains(t, out, "--db is required")
}

func TestExportRejectsConflictingFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode string
		wantMsg  string
	}{
		{"verify_without_read", []string{"--verify"}, ErrCodeMissingFlag, "--verify requires --read"},
		{"list_with_read", []string{"--list", "--read", "latest"}, ErrCodeGeneric, "cannot be combined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dbPath := filepath.Join(t.TempDir(), "catalog.db")
			out, err := runExportCmd(t, "text", append([]string{"--db", dbPath}, tt.args...)...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, err.Error(), tt.wantCode)
			assert.Contains(t, out, tt.wantMsg)

			// Nothing was written.
			_, statErr := os.Stat(dbPath)
			assert.True(t, os.IsNotExist(statErr))
		})
	}
}

func TestExportWritesSnapshot(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "catalog.db")

	out, err := runExportCmd(t, "json", "--db", dbPath)
	require.NoError(t, err)

	var resp struct {
		Status string       `json:"status"`
		Data   ExportResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Data.Inserted)
	assert.Equal(t, int64(1), resp.Data.Snapshot.Seq)
	assert.Equal(t, 38, resp.Data.Snapshot.Count)
	assert.NotEmpty(t, resp.Data.Snapshot.ID)

	// Exporting an unchanged catalog returns the same snapshot.
	out, err = runExportCmd(t, "json", "--db", dbPath)
	require.NoError(t, err)
	var again struct {
		Data ExportResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &again))
	assert.False(t, again.Data.Inserted)
	assert.Equal(t, resp.Data.Snapshot.ID, again.Data.Snapshot.ID)
}

func TestExportText(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "catalog.db")

	out, err := runExportCmd(t, "text", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Wrote snapshot")
	assert.Contains(t, out, "seq 1, 38 attributes")

	out, err = runExportCmd(t, "text", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "is current (seq 1)")
}

func TestExportReadLatest(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "catalog.db")
	_, err := runExportCmd(t, "text", "--db", dbPath)
	require.NoError(t, err)

	out, err := runExportCmd(t, "text", "--db", dbPath, "--read", "latest", "--verify")
	require.NoError(t, err)

	header, body, ok := strings.Cut(out, "\n\n")
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(header, "# snapshot "))
	golden, err := os.ReadFile(filepath.Join("testdata", "golden", "list.golden"))
	require.NoError(t, err)
	assert.Equal(t, string(golden), body)
}

func TestExportReadByID(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "catalog.db")
	out, err := runExportCmd(t, "json", "--db", dbPath)
	require.NoError(t, err)

	var written struct {
		Data ExportResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &written))

	out, err = runExportCmd(t, "json", "--db", dbPath, "--read", written.Data.Snapshot.ID)
	require.NoError(t, err)

	var resp struct {
		Status string         `json:"status"`
		Data   SnapshotResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, written.Data.Snapshot, resp.Data.Snapshot)
	require.Len(t, resp.Data.Attributes, 38)
	assert.Equal(t, "alwaysinline", resp.Data.Attributes[0].Name)
	assert.Equal(t, "swifterror", resp.Data.Attributes[37].Name)
}

func TestExportReadNotFound(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "catalog.db")

	for _, ref := range []string{"latest", "00000000-0000-0000-0000-000000000000"} {
		t.Run(ref, func(t *testing.T) {
			out, err := runExportCmd(t, "text", "--db", dbPath, "--read", ref)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, err.Error(), ErrCodeSnapshotNotFound)
			assert.Contains(t, out, "snapshot not found")
		})
	}
}

func TestExportVerifyDetectsTampering(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "catalog.db")
	_, err := runExportCmd(t, "text", "--db", dbPath)
	require.NoError(t, err)

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	_, err = st.DB().Exec(`UPDATE attributes SET description = 'Tampered.' WHERE name = 'cold'`)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	out, err := runExportCmd(t, "text", "--db", dbPath, "--read", "latest", "--verify")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeDigestMismatch)
	assert.Contains(t, out, "Error ["+ErrCodeDigestMismatch+"]")
}

func TestExportList(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "catalog.db")

	out, err := runExportCmd(t, "text", "--db", dbPath, "--list")
	require.NoError(t, err)
	assert.Equal(t, "No snapshots\n", out)

	_, err = runExportCmd(t, "text", "--db", dbPath)
	require.NoError(t, err)

	out, err = runExportCmd(t, "json", "--db", dbPath, "--list")
	require.NoError(t, err)

	var resp struct {
		Status string           `json:"status"`
		Data   []store.Snapshot `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, int64(1), resp.Data[0].Seq)
}

func TestExportOpenFailure(t *testing.T) {
	out, err := runExportCmd(t, "text", "--db", "/nonexistent/dir/catalog.db")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeStoreFailed)
	assert.Contains(t, out, "failed to open database")
}
