package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupServeFlags(t *testing.T) {
	fs, flags := SetupServeFlags()

	require.NoError(t, fs.Parse([]string{
		"-config", "swagval.yaml",
		"-addr", ":9090",
		"-contract", "swagger.yaml",
		"-log-level", "debug",
	}))

	assert.Equal(t, "swagval.yaml", flags.Config)
	assert.Equal(t, ":9090", flags.Addr)
	assert.Equal(t, "swagger.yaml", flags.Contract)
	assert.Equal(t, "debug", flags.LogLevel)
	assert.Empty(t, flags.Upstream)
	assert.Empty(t, flags.LogFormat)
}

func TestCollectOverrides(t *testing.T) {
	fs, _ := SetupServeFlags()
	require.NoError(t, fs.Parse([]string{"-config", "x.yaml", "-addr", ":9090", "-upstream", "http://localhost:3000"}))

	assert.Equal(t, map[string]any{
		"server.addr":     ":9090",
		"server.upstream": "http://localhost:3000",
	}, collectOverrides(fs))
}

func TestHandleServe_Help(t *testing.T) {
	assert.NoError(t, HandleServe([]string{"--help"}))
}

func TestHandleServe_RejectsArguments(t *testing.T) {
	assert.Error(t, HandleServe([]string{"swagger.yaml"}))
}

func TestHandleServe_InvalidConfig(t *testing.T) {
	t.Setenv("SWAGVAL_CONTRACT_PATH", "")

	err := HandleServe([]string{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed")

	err = HandleServe([]string{"-contract", "swagger.yaml", "-log-format", "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed")
}

func TestHandleMCP_Help(t *testing.T) {
	assert.NoError(t, HandleMCP([]string{"--help"}))
	assert.Error(t, HandleMCP([]string{"extra"}))
}
