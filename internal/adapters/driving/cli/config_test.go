package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docstats/internal/adapters/driven/config"
)

func TestConfigShow(t *testing.T) {
	setupTestServices(t, nil)
	t.Setenv("DOCSTATS_SERVER_PORT", "9123")

	out, _, err := execute(t, "config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "[server]")
	assert.Contains(t, out, "port = 9123")
	assert.Contains(t, out, "[fetch]")
}

func TestConfigInit(t *testing.T) {
	setupTestServices(t, nil)
	path := filepath.Join(t.TempDir(), "docstats.toml")

	out, _, err := execute(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), loaded)

	_, _, err = execute(t, "config", "init", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestConfigInit_Force(t *testing.T) {
	setupTestServices(t, nil)
	path := filepath.Join(t.TempDir(), "docstats.toml")
	require.NoError(t, os.WriteFile(path, []byte("junk"), 0o600))

	_, _, err := execute(t, "config", "init", "--force", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[server]")

	// Flags persist between executions of the shared root command.
	require.NoError(t, configInitCmd.Flags().Set("force", "false"))
}

func TestCommands_Registered(t *testing.T) {
	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"serve", "mcp", "score", "extract", "config", "version"} {
		assert.Contains(t, names, want)
	}

	port := serveCmd.Flags().Lookup("port")
	require.NotNil(t, port)
	assert.Equal(t, "0", port.DefValue)

	jsonResponse := mcpServeCmd.Flags().Lookup("json-response")
	require.NotNil(t, jsonResponse)
	assert.Equal(t, "false", jsonResponse.DefValue)
}
