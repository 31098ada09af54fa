package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sloptastic/internal/report"
	"sloptastic/internal/slop"
)

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("SLOPTASTIC_WORKSPACE", t.TempDir())
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestAnalyzeStdinJSON(t *testing.T) {
	code, out, _ := runCLI(t, "Perhaps. Maybe.", "analyze", "-stdin", "-format", "json")
	require.Equal(t, exitOK, code)

	var doc report.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 2, doc.Metrics.HedgingCount)
	assert.True(t, doc.Verdict.NoTells)
}

func TestAnalyzeWithoutInputPrintsUsage(t *testing.T) {
	code, _, errOut := runCLI(t, "")
	assert.Equal(t, exitError, code)
	assert.Contains(t, errOut, "Usage:")
}

func TestFailOnTells(t *testing.T) {
	code, out, _ := runCLI(t, "Therefore.", "-stdin", "-format", "markdown", "-fail-on-tells")
	assert.Equal(t, exitTells, code)
	assert.Contains(t, out, slop.ZeroHedgingMessage)
}

func TestAnalyzeFilesInOrder(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.md")
	require.NoError(t, os.WriteFile(a, []byte("Perhaps."), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("Therefore."), 0o644))

	code, out, _ := runCLI(t, "", "-format", "json", a, b)
	require.Equal(t, exitOK, code)

	var docs []report.Document
	require.NoError(t, json.Unmarshal([]byte(out), &docs))
	require.Len(t, docs, 2)
	assert.Equal(t, a, docs[0].Source)
	assert.Equal(t, b, docs[1].Source)
}

func TestAnalyzeMissingFile(t *testing.T) {
	code, _, errOut := runCLI(t, "", filepath.Join(t.TempDir(), "nope.txt"))
	assert.Equal(t, exitError, code)
	assert.Contains(t, errOut, "nope.txt")
}

func TestUnknownFormatRejected(t *testing.T) {
	code, _, errOut := runCLI(t, "text", "-stdin", "-format", "xml")
	assert.Equal(t, exitError, code)
	assert.Contains(t, errOut, "unknown format")
}

func TestSaveThenHistory(t *testing.T) {
	ws := t.TempDir()
	t.Setenv("SLOPTASTIC_WORKSPACE", ws)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-stdin", "-save", "-format", "text", "-no-color"}, strings.NewReader("Therefore."), &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())

	reports, err := os.ReadDir(filepath.Join(ws, "reports"))
	require.NoError(t, err)
	assert.Len(t, reports, 1)

	stdout.Reset()
	code = run(context.Background(), []string{"history", "-format", "json"}, strings.NewReader(""), &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())

	var runs []struct {
		ID        string `json:"id"`
		TellCount int    `json:"tell_count"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, 2, runs[0].TellCount)

	stdout.Reset()
	code = run(context.Background(), []string{"history"}, strings.NewReader(""), &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())
	assert.Contains(t, stdout.String(), "1 of 1 runs")
	assert.Contains(t, stdout.String(), runs[0].ID[:8])

	stdout.Reset()
	code = run(context.Background(), []string{"history", "show", "-format", "json", runs[0].ID[:8]}, strings.NewReader(""), &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())
	var fromDB report.Document
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &fromDB))
	assert.Equal(t, 1, fromDB.Metrics.ConnectorCount)
	assert.Len(t, fromDB.Verdict.Findings, 2)

	stdout.Reset()
	reportPath := filepath.Join(ws, "reports", reports[0].Name())
	code = run(context.Background(), []string{"history", "show", "-format", "markdown", reportPath}, strings.NewReader(""), &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())
	assert.Contains(t, stdout.String(), slop.ZeroHedgingMessage)
}

func TestHistoryShowUnknownRun(t *testing.T) {
	ws := t.TempDir()
	t.Setenv("SLOPTASTIC_WORKSPACE", ws)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-stdin", "-save", "-format", "json"}, strings.NewReader("Perhaps."), &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())

	stderr.Reset()
	code = run(context.Background(), []string{"history", "show", "does-not-exist"}, strings.NewReader(""), &stdout, &stderr)
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr.String(), "run not found")
}

func TestAnalyzeMixedInputs(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.txt")
	require.NoError(t, os.WriteFile(good, []byte("Perhaps."), 0o644))
	missing := filepath.Join(dir, "missing.txt")

	code, out, errOut := runCLI(t, "", "-format", "json", "-fail-on-tells", good, missing)
	assert.Equal(t, exitError, code)
	assert.Contains(t, errOut, "Error: "+missing+":")

	var doc report.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, good, doc.Source)
}

func TestHistoryWithoutDatabase(t *testing.T) {
	code, _, errOut := runCLI(t, "", "history")
	assert.Equal(t, exitError, code)
	assert.Contains(t, errOut, "No history")
}

func TestHelp(t *testing.T) {
	code, out, _ := runCLI(t, "", "help")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "sloptastic serve")
}
