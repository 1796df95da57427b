package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harunnryd/contribdesk/internal/config"
	apperrors "github.com/harunnryd/contribdesk/internal/errors"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTestConfig(t *testing.T) *config.Config {
	t.Helper()

	testCfg := &config.Config{
		Server: config.ServerConfig{LogLevel: "error"},
		Store: config.StoreConfig{
			DataDir:      filepath.Join(t.TempDir(), "data"),
			Key:          config.DefaultStoreKey,
			LockTimeout:  "2s",
			LockRetry:    "5ms",
			LockMaxRetry: 50,
		},
		Export: config.ExportConfig{
			OutputDir:     t.TempDir(),
			DefaultTarget: config.DefaultExportTarget,
		},
	}

	previous := cfg
	cfg = testCfg
	t.Cleanup(func() { cfg = previous })
	return testCfg
}

func newTestCommand(define func(cmd *cobra.Command), values map[string]string) (*cobra.Command, *bytes.Buffer) {
	cmd := &cobra.Command{}
	define(cmd)
	for name, value := range values {
		_ = cmd.Flags().Set(name, value)
	}
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	return cmd, out
}

func approveFlags(cmd *cobra.Command) {
	cmd.Flags().String("kind", "", "")
	cmd.Flags().String("name", "", "")
	cmd.Flags().String("category", "", "")
	cmd.Flags().String("description", "", "")
	cmd.Flags().String("resources", "", "")
	cmd.Flags().String("use-cases", "", "")
	cmd.Flags().String("email", "", "")
	cmd.Flags().String("notes", "", "")
	cmd.Flags().String("id", "", "")
}

func exportFlags(cmd *cobra.Command) {
	cmd.Flags().String("target", "", "")
	cmd.Flags().String("id", "", "")
	cmd.Flags().String("out", "", "")
	cmd.Flags().Bool("stdout", false, "")
}

func listFlags(cmd *cobra.Command) {
	cmd.Flags().String("output", "table", "")
	cmd.Flags().StringSlice("expand", nil, "")
}

func clearFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("yes", false, "")
}

func approveRustBasics(t *testing.T) {
	t.Helper()
	cmd, out := newTestCommand(approveFlags, map[string]string{
		"kind":        "skill",
		"name":        "Rust Basics",
		"category":    "Programming",
		"description": "Ownership, borrowing and lifetimes",
		"resources":   "The Rust Book",
		"email":       "dev@example.com",
		"id":          "rust-1",
	})
	require.NoError(t, approveCmd.RunE(cmd, nil))
	assert.Contains(t, out.String(), `"Rust Basics"`)
}

func TestApproveCmd_RejectsUnknownKind(t *testing.T) {
	useTestConfig(t)

	cmd, _ := newTestCommand(approveFlags, map[string]string{"kind": "widget", "name": "X", "category": "Y"})
	err := approveCmd.RunE(cmd, nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "kind must be Skill or Tool")
}

func TestApproveCmd_RejectsDuplicateID(t *testing.T) {
	useTestConfig(t)
	approveRustBasics(t)

	cmd, _ := newTestCommand(approveFlags, map[string]string{
		"kind": "tool", "name": "Cargo", "category": "Build", "id": "rust-1",
	})
	assert.Error(t, approveCmd.RunE(cmd, nil))
}

func TestExportCmd_WritesBulkJSON(t *testing.T) {
	testCfg := useTestConfig(t)
	approveRustBasics(t)

	cmd, out := newTestCommand(exportFlags, nil)
	require.NoError(t, exportCmd.RunE(cmd, nil))
	assert.Contains(t, out.String(), "Exported 1 approvals (json)")

	matches, err := filepath.Glob(filepath.Join(testCfg.Export.OutputDir, "approved-contributions-*.json"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)

	var entries []map[string]any
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "rust-1", entries[0]["id"])
	assert.Equal(t, "Skill", entries[0]["kind"])
	assert.Equal(t, "Rust Basics", entries[0]["name"])
	assert.Equal(t, "Programming", entries[0]["category"])
	assert.Equal(t, "dev@example.com", entries[0]["contributorEmail"])
	assert.Equal(t, true, entries[0]["locallyApproved"])
}

func TestExportCmd_SQLiteBackend(t *testing.T) {
	testCfg := useTestConfig(t)
	testCfg.Store.Backend = config.StoreBackendSQLite
	approveRustBasics(t)

	cmd, out := newTestCommand(exportFlags, map[string]string{"target": "spreadsheet-csv"})
	require.NoError(t, exportCmd.RunE(cmd, nil))
	assert.Contains(t, out.String(), "Exported 1 approvals (spreadsheet-csv)")

	matches, err := filepath.Glob(filepath.Join(testCfg.Export.OutputDir, "approved-contributions-*.csv"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "\uFEFFid,kind,name"))
	assert.FileExists(t, filepath.Join(testCfg.Store.DataDir, "contribdesk.db"))
}

func TestExportCmd_StdoutCSV(t *testing.T) {
	useTestConfig(t)
	approveRustBasics(t)

	cmd, _ := newTestCommand(exportFlags, map[string]string{"target": "csv", "stdout": "true"})
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	require.NoError(t, exportCmd.RunE(cmd, nil))
	lines := strings.Split(stdout.String(), "\n")
	assert.Equal(t, "id,kind,name,category,description,contributorEmail,approvedAtTimestamp", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "rust-1,Skill,Rust Basics,Programming,"))
	assert.Contains(t, stderr.String(), "Exported 1 approvals (csv) to -")
}

func TestExportCmd_UnknownTarget(t *testing.T) {
	testCfg := useTestConfig(t)

	cmd, _ := newTestCommand(exportFlags, map[string]string{"target": "xml"})
	assert.Error(t, exportCmd.RunE(cmd, nil))

	entries, err := os.ReadDir(testCfg.Export.OutputDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExportCmd_SingleRecord(t *testing.T) {
	useTestConfig(t)
	approveRustBasics(t)

	outDir := t.TempDir()
	cmd, _ := newTestCommand(exportFlags, map[string]string{"id": "rust-1", "out": outDir})
	require.NoError(t, exportCmd.RunE(cmd, nil))

	matches, err := filepath.Glob(filepath.Join(outDir, "skill-rust-basics-*.json"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestExportCmd_SingleRecordIgnoresTarget(t *testing.T) {
	useTestConfig(t)
	approveRustBasics(t)

	outDir := t.TempDir()
	cmd, _ := newTestCommand(exportFlags, map[string]string{"id": "rust-1", "target": "xml", "out": outDir})
	require.NoError(t, exportCmd.RunE(cmd, nil))

	matches, err := filepath.Glob(filepath.Join(outDir, "skill-rust-basics-*.json"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestExportCmd_NoticeIsPrintedOnce(t *testing.T) {
	useTestConfig(t)
	approveRustBasics(t)

	cmd, _ := newTestCommand(exportFlags, map[string]string{"id": "missing"})
	stderr := &bytes.Buffer{}
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(stderr)

	err := exportCmd.RunE(cmd, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, 1, strings.Count(stderr.String(), "approval missing"))

	reportError(stderr, err)
	assert.Equal(t, 1, strings.Count(stderr.String(), "approval missing"))
}

func TestReportError_PrintsUnreportedFailures(t *testing.T) {
	out := &bytes.Buffer{}
	reportError(out, nil)
	assert.Empty(t, out.String())

	reportError(out, apperrors.UnknownExportTarget("xml"))
	assert.Contains(t, out.String(), "xml: unknown export target")
}

func TestListCmd(t *testing.T) {
	t.Run("empty store prints nothing", func(t *testing.T) {
		useTestConfig(t)

		cmd, out := newTestCommand(listFlags, nil)
		require.NoError(t, listCmd.RunE(cmd, nil))
		assert.Empty(t, out.String())
	})

	t.Run("table with expanded row", func(t *testing.T) {
		useTestConfig(t)
		approveRustBasics(t)

		cmd, out := newTestCommand(listFlags, map[string]string{"expand": "rust-1"})
		require.NoError(t, listCmd.RunE(cmd, nil))
		assert.Contains(t, out.String(), "Rust Basics")
		assert.Contains(t, out.String(), "The Rust Book")
	})

	t.Run("unknown expand id", func(t *testing.T) {
		useTestConfig(t)
		approveRustBasics(t)

		cmd, _ := newTestCommand(listFlags, map[string]string{"expand": "missing"})
		assert.Error(t, listCmd.RunE(cmd, nil))
	})
}

func TestClearCmd(t *testing.T) {
	t.Run("declined keeps records", func(t *testing.T) {
		useTestConfig(t)
		approveRustBasics(t)

		cmd, out := newTestCommand(clearFlags, nil)
		cmd.SetIn(strings.NewReader("n\n"))
		require.NoError(t, clearCmd.RunE(cmd, nil))
		assert.Contains(t, out.String(), "Delete all 1 locally approved contributions?")
		assert.Contains(t, out.String(), "Clear cancelled")

		listing, listOut := newTestCommand(listFlags, nil)
		require.NoError(t, listCmd.RunE(listing, nil))
		assert.Contains(t, listOut.String(), "Rust Basics")
	})

	t.Run("yes clears everything", func(t *testing.T) {
		useTestConfig(t)
		approveRustBasics(t)

		cmd, out := newTestCommand(clearFlags, map[string]string{"yes": "true"})
		require.NoError(t, clearCmd.RunE(cmd, nil))
		assert.Contains(t, out.String(), "Cleared 1 local approvals")

		listing, listOut := newTestCommand(listFlags, nil)
		require.NoError(t, listCmd.RunE(listing, nil))
		assert.Empty(t, listOut.String())
	})
}
