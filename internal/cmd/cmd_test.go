package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Edwardzzz-c/gotrak/internal/config"
)

// getRootCmd registers flags on package-level commands, so it must run once.
var root = getRootCmd()

func TestRootCmdWiring(t *testing.T) {
	assert.Equal(t, "gotrak", root.Use)

	names := make([]string, 0)
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "serve")
	assert.Contains(t, names, "init")
	assert.Contains(t, names, "probe")
}

func TestServeCmdFlags(t *testing.T) {
	serve, _, err := root.Find([]string{"serve"})
	require.NoError(t, err)

	for _, name := range []string{"config", "port", "interface", "debug"} {
		assert.NotNil(t, serve.Flags().Lookup(name), "missing flag %s", name)
	}

	port, err := serve.Flags().GetInt64("port")
	require.NoError(t, err)
	assert.Equal(t, int64(config.DefaultAPIPort), port)
}

func TestInitCmdFlags(t *testing.T) {
	initCmd, _, err := root.Find([]string{"init"})
	require.NoError(t, err)

	for _, name := range []string{"print", "yes", "output"} {
		assert.NotNil(t, initCmd.Flags().Lookup(name), "missing flag %s", name)
	}

	output, err := initCmd.Flags().GetString("output")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig, output)
}
