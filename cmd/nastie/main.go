// Package main is the entry point for the nastie CLI.
//
// nastie can be run either as a library (SDK) or as a standalone binary.
// This CLI provides the standalone binary approach.
//
// Usage:
//
//	nastie serve [host] [port]       # Start the dashboard
//	nastie validate -c nastie.yaml   # Validate configuration
//	nastie version                   # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
// It just displays help - actual functionality is in subcommands.
var rootCmd = &cobra.Command{
	Use:   "nastie",
	Short: "A status dashboard for FreeNAS jails",
	Long: `nastie is a read-only status dashboard for FreeNAS jails and plugins.

It polls the FreeNAS REST API at a configurable interval and shows each
jail with its address, icon, and admin portal link in a web UI.

Quick start:
  1. Run: nastie serve -P <api-password> freenas.local
  2. Open http://localhost:8000 in your browser

Or with a config file (nastie.yaml):
  host: freenas.local
  password: ${NASTIE_PASSWORD}
  poll_interval: 30s

  nastie serve -c nastie.yaml`,
	// No Run/RunE means this just shows help when called without subcommands
}

// Execute runs the root command.
// This is the main entry point called from main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this nastie binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("nastie %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	// Register subcommands with root
	rootCmd.AddCommand(versionCmd)
}
