package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := Execute(context.Background())
	return buf.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "trademaster version "+version)
}

func TestConfigInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")

	out, err := execute(t, "config", "init", "--output", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Created default configuration")

	out, err = execute(t, "config", "validate", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration valid")
	assert.Contains(t, out, "Instruments: 6")
}

func TestConfigValidateMissingFile(t *testing.T) {
	_, err := execute(t, "config", "validate", "--file", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "validation failed")
}

func TestSimRaw(t *testing.T) {
	out, err := execute(t, "sim", "--ticks", "25", "--seed", "42", "--strategy", "random", "--raw", "--config", "")
	require.NoError(t, err)
	assert.Contains(t, out, "Session report")
	assert.Contains(t, out, "AAPL")
}

func TestSimDeterministic(t *testing.T) {
	first, err := execute(t, "sim", "--ticks", "30", "--seed", "7", "--strategy", "momentum", "--raw")
	require.NoError(t, err)
	second, err := execute(t, "sim", "--ticks", "30", "--seed", "7", "--strategy", "momentum", "--raw")
	require.NoError(t, err)

	// reports differ only in wall-clock times, so compare the market table
	assert.Equal(t, marketSection(first), marketSection(second))
}

func TestSimUnknownStrategy(t *testing.T) {
	_, err := execute(t, "sim", "--ticks", "1", "--strategy", "martingale", "--raw")
	assert.ErrorContains(t, err, "unknown strategy")
}

func TestSimRendered(t *testing.T) {
	out, err := execute(t, "sim", "--ticks", "3", "--seed", "1", "--strategy", "", "--raw=false", "--style", "notty", "--width", "80")
	require.NoError(t, err)
	assert.Contains(t, out, "Session report")
}

func marketSection(report string) string {
	start := strings.Index(report, "## Market")
	end := strings.Index(report, "## Recent transactions")
	if start < 0 || end < start {
		return ""
	}
	return report[start:end]
}
