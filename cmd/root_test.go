package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootArgs(t *testing.T) {
	// Only the missing input directory is the usage error; surplus
	// arguments fail differently so they exit 1, not 2.
	require.ErrorIs(t, rootCmd.Args(rootCmd, nil), errUsage)
	assert.NoError(t, rootCmd.Args(rootCmd, []string{"topology"}))

	err := rootCmd.Args(rootCmd, []string{"topology", "extra"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, errUsage)
	assert.Contains(t, err.Error(), "extra")
}
