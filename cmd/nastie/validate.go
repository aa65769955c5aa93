package main

import (
	"fmt"

	"github.com/garfunkel/nastie/config"
	"github.com/spf13/cobra"
)

// validateCmd validates a config file without starting the server.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file",
	Long: `Validate a nastie configuration file without starting the server.

This command parses the YAML, expands environment variables, and validates
all fields. It's useful for CI/CD pipelines or pre-deployment checks.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  nastie validate -c nastie.yaml
  nastie validate --config /etc/nastie/config.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	scheme := "http"
	if cfg.Secure {
		scheme = "https"
	}

	fmt.Printf("Config is valid!\n")
	fmt.Printf("  API:           %s://%s:%d (user %s)\n", scheme, cfg.Host, cfg.Port, cfg.User)
	fmt.Printf("  Dashboard:     %s:%d\n", cfg.BindHost, cfg.BindPort)
	fmt.Printf("  Poll interval: %s\n", cfg.PollInterval.Duration())

	return nil
}
