package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModel_LoadsEngine(t *testing.T) {
	opts := &tuiOptions{jurisdiction: "az"}
	model, logger, err := opts.model()
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.Contains(t, model.View(), "PAYCALC")
}

func TestModel_LogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tui.log")
	opts := &tuiOptions{jurisdiction: "TX", logFile: path, rules: []string{"../../internal/config/testdata/rules_test_year.yaml"}}
	_, logger, err := opts.model()
	require.NoError(t, err)
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "engine loaded")
	assert.Contains(t, string(data), "2099-test")
}

func TestModel_BadRules(t *testing.T) {
	opts := &tuiOptions{jurisdiction: "TX", rules: []string{"does-not-exist.yaml"}}
	_, _, err := opts.model()
	assert.Error(t, err)
}

func TestRootCmd_Flags(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"rules", "jurisdiction", "debug", "log-file"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
	cmd.SetArgs([]string{"extra"})
	assert.Error(t, cmd.Execute())
}
