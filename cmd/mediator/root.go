package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "mediator",
	Short: "Synm Mediator - policy-enforced access to a personal knowledge store",
	Long: `Synm Mediator sits between AI agents and a person's private content.

Agents never read the stores directly. Every request passes through:
  - Profile-scoped access policy (allowed scopes per caller context)
  - Redaction rules applied before content leaves the process
  - A hash-chained, tamper-evident audit log of every disclosure
  - Time-boxed, revocable sessions`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
}
