package propchain_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liftedinit/propchain/cmd/propchain"
	"github.com/liftedinit/propchain/internal/output"
	"github.com/liftedinit/propchain/internal/testutil"
)

const scenarioFile = "testdata/scenario.jsonl"

// executeApply runs the CLI with every flag starting from its default.
func executeApply(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return testutil.Execute(t, propchain.RootCmd, args...)
}

func TestApplyScenario(t *testing.T) {
	out, err := executeApply(t, "apply", scenarioFile, "--summary=true")
	require.NoError(t, err)
	assert.Contains(t, out, "Applying operations")
	assert.Contains(t, out, "Operation rejected")
	assert.Contains(t, out, `"applied":6`)
	assert.Contains(t, out, `"rejected":1`)
	assert.Contains(t, out, "Chain verified")

	assert.Contains(t, out, "Genesis Block")
	assert.Contains(t, out, "Minted property NFT 1 for alice")
	assert.Contains(t, out, "Transferred property NFT 1 from alice to bob")
	assert.Contains(t, out, "Property NFT - ID: 1, Owner: bob, Value: 100000.0, Location: Maple St, Status: Not For Sale")
}

func TestApplyFailFast(t *testing.T) {
	_, err := executeApply(t, "apply", scenarioFile, "--fail-fast=true")
	require.Error(t, err)
	assert.ErrorContains(t, err, "line 9")
	assert.ErrorContains(t, err, "property ID 99 not found in alice's wallet")
}

func TestApplyMissingFile(t *testing.T) {
	_, err := executeApply(t, "apply", filepath.Join(t.TempDir(), "missing.jsonl"))
	assert.ErrorContains(t, err, "failed to open operations file")
}

func TestApplyHoldRequiresPrometheus(t *testing.T) {
	_, err := executeApply(t, "apply", scenarioFile, "--hold=true")
	assert.ErrorContains(t, err, "invalid Apply configuration")
}

func TestApplyJSONThenExportTSV(t *testing.T) {
	jsonDir := t.TempDir()
	_, err := executeApply(t, "apply", "json", scenarioFile, "-o", jsonDir)
	require.NoError(t, err)

	for id := uint64(0); id < 3; id++ {
		assert.FileExists(t, filepath.Join(jsonDir, "block", output.BlockFileName(id)))
	}
	assert.NoFileExists(t, filepath.Join(jsonDir, "block", output.BlockFileName(3)))
	assert.FileExists(t, filepath.Join(jsonDir, "txs", output.TxFileName(2, 0)))

	tsvDir := t.TempDir()
	out, err := testutil.Execute(t, propchain.RootCmd, "export-tsv", jsonDir, tsvDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Export completed successfully")

	data, err := os.ReadFile(filepath.Join(tsvDir, output.BlocksTSV))
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(data), "\n"))
}

func TestApplyTSV(t *testing.T) {
	tsvDir := t.TempDir()
	_, err := executeApply(t, "apply", "tsv", scenarioFile, "-o", tsvDir, "--mine-remaining=true")
	require.NoError(t, err)

	txs, err := os.ReadFile(filepath.Join(tsvDir, output.TxsTSV))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(txs), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "1\t0\t"))
	assert.True(t, strings.HasPrefix(lines[1], "2\t0\t"))
}

func TestApplyJSONWithTSVMirror(t *testing.T) {
	jsonDir := t.TempDir()
	tsvDir := t.TempDir()
	_, err := executeApply(t, "apply", "json", scenarioFile, "-o", jsonDir, "--mirror-tsv", tsvDir)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(jsonDir, "block", output.BlockFileName(2)))
	data, err := os.ReadFile(filepath.Join(tsvDir, output.BlocksTSV))
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(data), "\n"))
}

func TestExportTSVMissingInput(t *testing.T) {
	_, err := testutil.Execute(t, propchain.RootCmd, "export-tsv", filepath.Join(t.TempDir(), "nope"), t.TempDir())
	assert.ErrorContains(t, err, "does not exist")
}

func TestApplyWithMetricsServer(t *testing.T) {
	_, err := executeApply(t, "apply", scenarioFile, "--enable-prometheus=true", "--prometheus-addr", "127.0.0.1:0", "--auto-mine=true")
	require.NoError(t, err)
}
