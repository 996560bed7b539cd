package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRulesFile = "../../internal/config/testdata/rules_test_year.yaml"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "paycalc", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.NotNil(t, cmd.PersistentFlags().Lookup("rules"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("debug"))

	out, err := execute(t)
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
}

func TestCommandSubcommands(t *testing.T) {
	expected := []string{"calculate", "solve", "compare", "marginal", "jurisdictions", "validate", "version"}
	names := map[string]bool{}
	for _, c := range newRootCmd().Commands() {
		names[c.Name()] = true
	}
	for _, name := range expected {
		assert.True(t, names[name], "command %s should be registered", name)
	}
}

func TestRootCommand_InvalidInput(t *testing.T) {
	_, err := execute(t, "invalid-command")
	assert.Error(t, err)

	_, err = execute(t, "--invalid-flag")
	assert.Error(t, err)
}

func TestCalculateCommand(t *testing.T) {
	out, err := execute(t, "calculate", "60000", "-j", "TX")
	require.NoError(t, err)
	assert.Contains(t, out, "TAX BREAKDOWN")
	assert.Contains(t, out, "$50,248.50")
	assert.Contains(t, out, "ASSUMPTIONS")

	out, err = execute(t, "calculate", "60000", "-j", "tx", "--no-assumptions")
	require.NoError(t, err)
	assert.NotContains(t, out, "ASSUMPTIONS")
}

func TestCalculateCommand_Formats(t *testing.T) {
	out, err := execute(t, "calculate", "$60,000", "-j", "TX", "--format", "json")
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "50248.5", decoded["netIncome"])
	assert.Equal(t, "TX", decoded["jurisdiction"])

	out, err = execute(t, "calculate", "5000", "-p", "monthly", "-j", "TX", "-f", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "frequency,monthly")
	assert.Contains(t, out, "net_income,4187.38")

	_, err = execute(t, "calculate", "60000", "-j", "TX", "--format", "html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "valid: console, csv, json")
}

func TestCalculateCommand_Save(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	out, err := execute(t, "calculate", "60000", "-j", "TX", "-f", "csv", "--save")
	require.NoError(t, err)
	assert.Contains(t, out, "Report written to paycalc_report_")

	matches, err := filepath.Glob(filepath.Join(dir, "paycalc_report_*.csv"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Component,Amount"))
}

func TestCalculateCommand_RequestFile(t *testing.T) {
	out, err := execute(t, "calculate", "--request", "testdata/request.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "$50,248.50")

	// Flags set on the command line override the file.
	out, err = execute(t, "calculate", "--request", "testdata/request.yaml", "-j", "AZ")
	require.NoError(t, err)
	assert.Contains(t, out, "$48,748.50")

	_, err = execute(t, "calculate", "--request", "testdata/missing.yaml")
	assert.Error(t, err)
}

func TestCalculateCommand_Errors(t *testing.T) {
	_, err := execute(t, "calculate", "-j", "TX")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount is required")

	_, err = execute(t, "calculate", "60000")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "jurisdiction is required")

	_, err = execute(t, "calculate", "60000", "-j", "ZZ")
	assert.True(t, errors.Is(err, domain.ErrUnknownJurisdiction))

	_, err = execute(t, "calculate", "-5", "-j", "TX")
	assert.Error(t, err)

	_, err = execute(t, "calculate", "60000", "-j", "TX", "-p", "hourly")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestCalculateCommand_ExtraRules(t *testing.T) {
	out, err := execute(t, "calculate", "50000", "-j", "ZZ", "--rules", testRulesFile, "-f", "json")
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "2099-test", decoded["tableVersion"])
	assert.Equal(t, "43000", decoded["netIncome"])

	out, err = execute(t, "calculate", "60000", "-j", "TX", "--rules", testRulesFile, "--table-version", "2025", "-f", "json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "50248.5", decoded["netIncome"])
}

func TestSolveCommand(t *testing.T) {
	out, err := execute(t, "solve", "5000", "-p", "monthly", "-j", "TX")
	require.NoError(t, err)
	assert.Contains(t, out, "GROSS-UP RESULT")
	assert.Contains(t, out, "✓ Converged")
	assert.Contains(t, out, "RECONCILIATION")

	out, err = execute(t, "gross-up", "5000", "-p", "monthly", "-j", "TX", "-f", "json")
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, true, decoded["converged"])

	out, err = execute(t, "solve", "60000", "-j", "NY", "--each-status")
	require.NoError(t, err)
	assert.Contains(t, out, "GROSS-UP SUMMARY")
	assert.Contains(t, out, "head_of_household")

	_, err = execute(t, "solve", "60000", "-j", "TX", "--tolerance", "abc")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestSolveCommand_NotConverged(t *testing.T) {
	out, err := execute(t, "solve", "60000", "-j", "TX", "--max-iterations", "1", "--tolerance", "0.000001")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSolverDidNotConverge))
	assert.Contains(t, out, "⚠ Did not converge")
}

func TestCompareCommand(t *testing.T) {
	out, err := execute(t, "compare", "52000", "-j", "AZ", "--with", "TX,CA")
	require.NoError(t, err)
	assert.Contains(t, out, "NET INCOME COMPARISON")
	assert.Contains(t, out, "Best Option: TX")

	out, err = execute(t, "compare", "52000", "-j", "AZ", "--with", "TX", "-f", "compact")
	require.NoError(t, err)
	assert.Equal(t, "Base: AZ | TX: +$1,300.00\n", out)

	out, err = execute(t, "compare", "4000", "-p", "monthly", "-j", "NY", "--with", "TX", "--mode", "reverse", "-f", "json", "--omit-breakdowns")
	require.NoError(t, err)
	assert.Contains(t, out, `"mode": "reverse"`)
	assert.NotContains(t, out, "breakdown")

	out, err = execute(t, "compare", "120000", "-j", "VA", "--statuses", "married_joint", "-f", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "Married Filing Jointly")

	_, err = execute(t, "compare", "52000", "-j", "AZ", "--with", "TX", "-f", "xml")
	assert.Error(t, err)

	_, err = execute(t, "compare", "52000", "-j", "AZ", "--mode", "sideways")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestMarginalCommand(t *testing.T) {
	out, err := execute(t, "marginal", "52000", "-j", "AZ")
	require.NoError(t, err)
	assert.Contains(t, out, "Marginal Rate:   22.15%")
	assert.Contains(t, out, "Effective Rate:")
}

func TestJurisdictionsCommand(t *testing.T) {
	out, err := execute(t, "jurisdictions")
	require.NoError(t, err)
	assert.Contains(t, out, "Table version 2025")
	assert.Contains(t, out, "Texas")
	assert.Contains(t, out, "graduated")

	out, err = execute(t, "jurisdictions", "--rules", testRulesFile, "-f", "json")
	require.NoError(t, err)
	var entries []jurisdictionEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	assert.Equal(t, []jurisdictionEntry{
		{Code: "TX", Name: "Texas", Kind: "exempt"},
		{Code: "ZZ", Name: "Testland", Kind: "flat"},
	}, entries)

	_, err = execute(t, "jurisdictions", "--table-version", "1999")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestValidateCommand(t *testing.T) {
	out, err := execute(t, "validate", testRulesFile)
	require.NoError(t, err)
	assert.Contains(t, out, "version 2099-test, 2 jurisdictions")

	_, err = execute(t, "validate", "../../internal/config/testdata/malformed.yaml")
	assert.Error(t, err)

	_, err = execute(t, "validate")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "paycalc dev (commit none, built unknown)")
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
