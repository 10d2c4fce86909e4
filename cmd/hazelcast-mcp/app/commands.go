// Package app provides the entry point for the hazelcast-mcp command-line application.
package app

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/grid-tools/hazelcast-mcp/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:               "hazelcast-mcp",
	DisableAutoGenTag: true,
	Short:             "MCP server exposing a Hazelcast cluster to LLM tools",
	Long: `hazelcast-mcp is an MCP (Model Context Protocol) server that exposes the
distributed maps, queues, topics and SQL engine of a Hazelcast cluster as
tools an LLM can call. When a grid operation fails, the raw client error is
translated into a plain-language diagnostic the model can act on, instead of
a stack trace.`,
	Run: func(cmd *cobra.Command, _ []string) {
		// If no subcommand is provided, print help
		if err := cmd.Help(); err != nil {
			logger.Errorf("Error displaying help: %v", err)
		}
	},
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.Initialize()
	},
}

// NewRootCmd creates a new root command for the hazelcast-mcp CLI.
func NewRootCmd() *cobra.Command {
	viper.SetEnvPrefix("HZMCP")
	viper.AutomaticEnv()

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	if err := viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		logger.Errorf("Error binding debug flag: %v", err)
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd())

	// Silence printing the usage on error
	rootCmd.SilenceUsage = true

	return rootCmd
}
