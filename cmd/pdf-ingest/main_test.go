// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf-ingest/internal/ingest"
	"github.com/pdiddy/pdf-ingest/internal/pdftest"
	"github.com/pdiddy/pdf-ingest/internal/secrets"
	"github.com/pdiddy/pdf-ingest/pkg/types"
)

// execute runs the root command with args. Flags keep their values between
// runs of the shared rootCmd, so callers pass every flag they rely on.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

// workspace switches into a fresh directory with the default PDF in place.
func workspace(t *testing.T, withPDF bool) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv(types.DefaultCredentialEnv, "")
	if withPDF {
		require.NoError(t, os.WriteFile(types.DefaultSource, pdftest.Build("Data-\nScience", "More   text"), 0o644))
	}
}

func ingestArgs(extra ...string) []string {
	args := []string{"ingest", "--output", types.DefaultOutput, "--store=", "--manifest=", "--backend", "pdf"}
	return append(args, extra...)
}

func TestIngestMissingCredential(t *testing.T) {
	workspace(t, true)

	_, err := execute(t, ingestArgs()...)

	require.ErrorIs(t, err, secrets.ErrMissingCredential)
	assert.NoFileExists(t, types.DefaultOutput)
}

func TestIngestMissingSource(t *testing.T) {
	workspace(t, false)
	t.Setenv(types.DefaultCredentialEnv, "sk-test")

	_, err := execute(t, ingestArgs()...)

	require.ErrorIs(t, err, ingest.ErrSourceNotFound)
	assert.Contains(t, err.Error(), types.DefaultSource)
	assert.NoFileExists(t, types.DefaultOutput)
}

func TestIngestAndHistory(t *testing.T) {
	workspace(t, true)
	require.NoError(t, os.WriteFile(".env", []byte("OPENAI_API_KEY=sk-dotenv\n"), 0o644))

	out, err := execute(t, ingestArgs("--store", "history.db", "--manifest", "cleaned_text.yaml")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Loaded 2 pages")
	assert.Contains(t, out, "Ingestion step complete")

	data, err := os.ReadFile(types.DefaultOutput)
	require.NoError(t, err)
	assert.Equal(t, "\n--- Page 0 ---\n\nDataScience\n\n--- Page 1 ---\n\nMore text", string(data))
	assert.FileExists(t, "cleaned_text.yaml")

	out, err = execute(t, "history", "--store", "history.db", "--format", "json", "--run=", "--limit", "5")
	require.NoError(t, err)

	var runs []types.Run
	require.NoError(t, json.Unmarshal([]byte(out), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, types.DefaultOutput, runs[0].Output)
	assert.Equal(t, types.BackendPDF, runs[0].Backend)

	out, err = execute(t, "history", "--store", "history.db", "--format", "table", "--run", runs[0].ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Run:     "+runs[0].ID)
	assert.Contains(t, out, "Backend: pdf")
	assert.Regexp(t, `(?m)^0\s+11$`, out)
	assert.Regexp(t, `(?m)^1\s+9$`, out)
}

func TestHistoryRequiresStore(t *testing.T) {
	workspace(t, false)

	_, err := execute(t, "history", "--store=", "--run=", "--format", "table")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no run history configured")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "pdf-ingest dev\n", out)
}
