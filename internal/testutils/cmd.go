// Package testutils provides helper functions for testing
package testutils

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// CmdTestCase describes the expected shape of a cobra command flag.
type CmdTestCase struct {
	Name           string
	Short          string
	Default        string
	Required       bool
	Dirname        bool
	Hidden         bool
	PersistentFlag bool
	BaseCmd        *cobra.Command
}

// FlagTestHelper checks that the flag described by testCase is installed on its command as expected.
func FlagTestHelper(t *testing.T, testCase CmdTestCase) {
	t.Helper()

	flags := testCase.BaseCmd.Flags()
	if testCase.PersistentFlag {
		flags = testCase.BaseCmd.PersistentFlags()
	}
	flag := flags.Lookup(testCase.Name)
	require.NotNil(t, flag, "flag %q should be installed", testCase.Name)

	assert.Equal(t, testCase.Short, flag.Shorthand, "shorthand of %q", testCase.Name)
	assert.Equal(t, testCase.Default, flag.DefValue, "default value of %q", testCase.Name)
	assert.Equal(t, testCase.Hidden, flag.Hidden, "visibility of %q", testCase.Name)
	assert.Equal(t, testCase.Required, isAnnotated(flag, cobra.BashCompOneRequiredFlag), "required state of %q", testCase.Name)
	assert.Equal(t, testCase.Dirname, isAnnotated(flag, cobra.BashCompSubdirsInDir), "dirname completion of %q", testCase.Name)
}

func isAnnotated(flag *pflag.Flag, annotation string) bool {
	_, ok := flag.Annotations[annotation]
	return ok
}
