package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/garfunkel/nastie"
	"github.com/garfunkel/nastie/config"
	"github.com/spf13/cobra"
)

const (
	shutdownTimeout = 10 * time.Second
)

// newLogger creates a JSON logger for CLI use.
func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// serveCmd starts the nastie dashboard server.
var serveCmd = &cobra.Command{
	Use:   "serve [host] [port]",
	Short: "Start the dashboard server",
	Long: `Start the nastie dashboard server.

The server will:
  - Poll the FreeNAS API for jails and plugins at the configured interval
  - Serve the dashboard UI on the configured bind address

The API host and port can be given as positional arguments. Every setting
can also come from a YAML config file (-c); explicit flags and positional
arguments override file values.

The server runs until interrupted (Ctrl+C) or receives SIGTERM.

Example:
  nastie serve -P secret freenas.local
  nastie serve -P secret -s freenas.local 443
  nastie serve -c /etc/nastie/config.yaml`,
	Args: cobra.MaximumNArgs(2),
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	registerServeFlags(serveCmd)
}

// registerServeFlags declares the serve flags.
// Split out so tests can build a fresh flag set per case.
func registerServeFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "", "path to YAML config file")
	cmd.Flags().StringP("user", "u", "root", "FreeNAS API user")
	cmd.Flags().StringP("password", "P", "", "FreeNAS API password")
	cmd.Flags().BoolP("secure", "s", false, "use HTTPS for API requests")
	cmd.Flags().StringP("bind-host", "H", "localhost", "host to serve the dashboard on")
	cmd.Flags().IntP("bind-port", "p", 8000, "port to serve the dashboard on")
	cmd.Flags().Duration("interval", 30*time.Second, "time between API refreshes")
	cmd.Flags().Duration("timeout", 10*time.Second, "per-request API timeout")
}

// buildConfig assembles the effective configuration from the config file,
// positional arguments, and flags, in increasing order of precedence.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	var cfg *config.Config

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	} else {
		cfg = config.Default()
	}

	if len(args) > 0 {
		cfg.Host = args[0]
	}
	if len(args) > 1 {
		port, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, fmt.Errorf("invalid port %q: %w", args[1], err)
		}
		cfg.Port = port
	}

	flags := cmd.Flags()
	if flags.Changed("user") {
		cfg.User, _ = flags.GetString("user")
	}
	if flags.Changed("password") {
		cfg.Password, _ = flags.GetString("password")
	}
	if flags.Changed("secure") {
		cfg.Secure, _ = flags.GetBool("secure")
	}
	if flags.Changed("bind-host") {
		cfg.BindHost, _ = flags.GetString("bind-host")
	}
	if flags.Changed("bind-port") {
		cfg.BindPort, _ = flags.GetInt("bind-port")
	}
	if flags.Changed("interval") {
		interval, _ := flags.GetDuration("interval")
		cfg.PollInterval = config.Duration(interval)
	}
	if flags.Changed("timeout") {
		timeout, _ := flags.GetDuration("timeout")
		cfg.Timeout = config.Duration(timeout)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	opts := append(config.Options(cfg), nastie.WithLogger(logger))

	d, err := nastie.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create dashboard: %w", err)
	}

	logger.Info("config resolved",
		"api", d.APIBaseURL(),
		"bind", d.BindAddress(),
		"poll_interval", d.PollInterval().String(),
	)

	// set up context with signal handling - cancel on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// start server - blocks until context cancelled
	errChan := make(chan error, 1)
	go func() {
		errChan <- d.Start(ctx)
	}()

	// wait for server to finish
	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		logger.Info("shutdown complete")
		return nil

	case <-ctx.Done():
		// signal received, wait for graceful shutdown with timeout
		select {
		case err := <-errChan:
			if err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			logger.Info("shutdown complete")
			return nil
		case <-time.After(shutdownTimeout):
			logger.Warn("shutdown timed out",
				"timeout", shutdownTimeout.String(),
				"action", "forcing exit",
			)
			return nil
		}
	}
}
