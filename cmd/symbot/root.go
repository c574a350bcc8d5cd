package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "symbot",
	Short: "symbot is a Symphony adapter for chat-bot frameworks",
	Long: `symbot connects a chat-bot framework to the Symphony enterprise
messaging platform. It authenticates with the pod using a client
certificate, maintains a long-polled datafeed for inbound messages, and
exposes room, reply and direct-message send paths.`,
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)
}
