// Package cmd implements the threadlingo CLI using cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"
const logo = "🌐"

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "threadlingo",
	Short: logo + " threadlingo — Slack thread translation bot",
	Long:  logo + " threadlingo — translates Slack messages into threaded replies and keeps them in sync with edits",
}

// Execute runs the root command and exits on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
}
