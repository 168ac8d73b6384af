package commands

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type (
	AppConfig = appConfig
)

// Config returns the configuration of the app.
func (a *App) Config() AppConfig {
	return a.config
}

// RootCmd returns the root command.
func (a App) RootCmd() *cobra.Command {
	return a.cmd
}

// SetArgs sets the arguments for the command.
func (a *App) SetArgs(args ...string) {
	a.cmd.SetArgs(args)
}

// SetOutput redirects the standard and error output of the command.
func (a *App) SetOutput(out, errOut io.Writer) {
	a.cmd.SetOut(out)
	a.cmd.SetErr(errOut)
}

// GenerateTestConfig generates a temporary config file for testing.
func GenerateTestConfig(t *testing.T, conf map[string]any) string {
	t.Helper()

	d, err := yaml.Marshal(conf)
	require.NoError(t, err, "Setup: failed to marshal config for tests")

	confPath := filepath.Join(t.TempDir(), "testconfig.yaml")
	require.NoError(t, os.WriteFile(confPath, d, 0600), "Setup: failed to write config for tests")

	return confPath
}
