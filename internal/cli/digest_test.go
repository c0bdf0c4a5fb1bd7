package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/irattrs/internal/attr"
)

func TestDigestText(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewDigestCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, attr.CatalogDigest()+"\n", buf.String())
	assert.Len(t, attr.CatalogDigest(), 64)
}

func TestDigestJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewDigestCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())

	var resp struct {
		Status string       `json:"status"`
		Data   DigestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, attr.CatalogDigest(), resp.Data.Digest)
	assert.Equal(t, attr.CatalogVersion, resp.Data.Version)
	assert.Equal(t, 38, resp.Data.Count)
}

func TestDigestExpect(t *testing.T) {
	cmd := NewDigestCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--expect", attr.CatalogDigest()})
	require.NoError(t, cmd.Execute())
}

func TestDigestExpectMismatch(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewDigestCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--expect", "deadbeef"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeDigestMismatch)
	assert.Contains(t, buf.String(), "digest mismatch")
}
