package nastie

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/garfunkel/nastie/dashboard"
	"github.com/garfunkel/nastie/internal/poller"
	"github.com/garfunkel/nastie/internal/server"
	"github.com/garfunkel/nastie/internal/store"
	"github.com/garfunkel/nastie/internal/truenas"
)

const (
	defaultAPIHost        = "localhost"
	defaultAPIPort        = 80
	defaultAPIUser        = "root"
	defaultBindHost       = "localhost"
	defaultBindPort       = 8000
	defaultPollInterval   = 30 * time.Second
	defaultRequestTimeout = 10 * time.Second
)

// Dashboard is the main orchestrator for jail polling and dashboard serving.
//
// Dashboard coordinates the periodic polling of a TrueNAS host's jail and
// plugin collections, merges them into a single view, and serves it as a
// read-only web page. It is created using [New] with functional options and
// started with [Dashboard.Start].
//
// The typical lifecycle is:
//
//	d, err := nastie.New(
//	    nastie.WithUpstream("freenas.local", 80),
//	    nastie.WithCredentials("root", password),
//	)
//	if err != nil {
//	    slog.Error("failed to create dashboard", "error", err)
//	    os.Exit(1)
//	}
//
//	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer cancel()
//
//	d.Start(ctx) // blocks until context cancelled
//
// The caller controls the lifecycle via the context. Cancel the context to
// trigger graceful shutdown.
type Dashboard struct {
	title          string
	apiHost        string
	apiPort        int
	apiSecure      bool
	apiUser        string
	apiPassword    string
	bindHost       string
	bindPort       int
	pollInterval   time.Duration
	requestTimeout time.Duration
	logger         *slog.Logger
}

// New creates a new [Dashboard] instance with the given options.
//
// An API password must be configured via [WithCredentials]. Other options
// have sensible defaults:
//   - Upstream: localhost:80 over plain HTTP, user "root"
//   - Bind address: localhost:8000
//   - Poll interval: 30 seconds
//   - Request timeout: 10 seconds
//
// Returns an error if no password is configured or if any option is invalid.
//
// Example:
//
//	d, err := nastie.New(
//	    nastie.WithUpstream("freenas.local", 443),
//	    nastie.WithSecure(true),
//	    nastie.WithCredentials("root", password),
//	    nastie.WithPollInterval(time.Minute),
//	)
func New(opts ...Option) (*Dashboard, error) {
	cfg := &dashConfig{
		apiHost:        defaultAPIHost,
		apiPort:        defaultAPIPort,
		apiUser:        defaultAPIUser,
		bindHost:       defaultBindHost,
		bindPort:       defaultBindPort,
		pollInterval:   defaultPollInterval,
		requestTimeout: defaultRequestTimeout,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.apiPassword == "" {
		return nil, errors.New("an API password is required")
	}

	// default to slog.Default() if no logger provided
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Dashboard{
		title:          cfg.title,
		apiHost:        cfg.apiHost,
		apiPort:        cfg.apiPort,
		apiSecure:      cfg.apiSecure,
		apiUser:        cfg.apiUser,
		apiPassword:    cfg.apiPassword,
		bindHost:       cfg.bindHost,
		bindPort:       cfg.bindPort,
		pollInterval:   cfg.pollInterval,
		requestTimeout: cfg.requestTimeout,
		logger:         logger,
	}, nil
}

// Start begins polling the TrueNAS host and serving the dashboard.
//
// Start is a blocking call that runs until the provided context is cancelled.
// During execution:
//
//   - The jail and plugin collections are fetched immediately, then at the
//     configured interval
//   - The HTTP server starts on the configured bind address
//   - The dashboard is available at http://<bind-host>:<bind-port>
//
// The caller controls the lifecycle via context cancellation. For signal
// handling, use [signal.NotifyContext]:
//
//	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer cancel()
//	d.Start(ctx)
//
// Returns nil on graceful shutdown. Returns an error if the HTTP server
// fails to start.
func (d *Dashboard) Start(ctx context.Context) error {
	d.logger.Info("nastie starting", "upstream", d.APIBaseURL(), "user", d.apiUser)
	d.logger.Info("polling configured", "interval", d.pollInterval.String())
	d.logger.Info("dashboard available", "url", "http://"+d.BindAddress())

	// check if context already cancelled
	if ctx.Err() != nil {
		return nil
	}

	client := truenas.New(d.APIBaseURL(), d.apiUser, d.apiPassword, d.requestTimeout)
	snapshot := store.NewSnapshot()

	// construct the server before polling starts so a broken template
	// fails fast
	httpServer, err := server.New(snapshot, dashboard.Assets, d.bindHost, d.bindPort, d.title, d.logger)
	if err != nil {
		client.Close()
		return fmt.Errorf("failed to create HTTP server: %w", err)
	}

	p := poller.New(client, snapshot, d.pollInterval, d.logger)
	p.Start(ctx)

	// cleanup function ensures the poller is stopped and connections closed
	cleanup := func() {
		p.Stop()
		client.Close()
	}

	if err := httpServer.Start(ctx); err != nil {
		cleanup()
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	<-ctx.Done()
	cleanup()
	d.logger.Info("nastie stopped")
	return nil
}

// APIBaseURL returns the root URL of the TrueNAS API the dashboard polls,
// including the API path prefix.
func (d *Dashboard) APIBaseURL() string {
	scheme := "http"
	if d.apiSecure {
		scheme = "https"
	}
	return scheme + "://" + net.JoinHostPort(d.apiHost, strconv.Itoa(d.apiPort)) + truenas.APIPath
}

// BindAddress returns the host:port the dashboard server listens on.
func (d *Dashboard) BindAddress() string {
	return net.JoinHostPort(d.bindHost, strconv.Itoa(d.bindPort))
}

// PollInterval returns the configured interval between refresh cycles.
func (d *Dashboard) PollInterval() time.Duration {
	return d.pollInterval
}
