package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, name := range []string{"serve", "summary", "import"} {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "asset-ranking", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestServeCommand_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag, "serve command should have --port flag")
	assert.Equal(t, "0", flag.DefValue)
}

func TestSummaryCommand_Flags(t *testing.T) {
	year := summaryCmd.Flags().Lookup("year")
	require.NotNil(t, year)
	assert.Equal(t, "0", year.DefValue)

	metric := summaryCmd.Flags().Lookup("metric")
	require.NotNil(t, metric)
	assert.Equal(t, "total_assets", metric.DefValue)

	require.NotNil(t, summaryCmd.Flags().Lookup("company"))
}
