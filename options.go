package nastie

import (
	"errors"
	"log/slog"
	"time"
)

// dashConfig holds mutable state during Dashboard construction.
type dashConfig struct {
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

// Option is a function that configures a [Dashboard] instance during
// construction.
//
// Option implements the functional options pattern, allowing optional
// configuration to be passed to [New] in a type-safe, extensible way.
// Options return an error if validation fails.
//
// Built-in options: [WithUpstream], [WithSecure], [WithCredentials],
// [WithBindAddress], [WithPollInterval], [WithRequestTimeout], [WithTitle],
// [WithLogger].
type Option func(*dashConfig) error

// WithUpstream sets the TrueNAS host and API port to poll.
//
// Defaults to localhost:80 if not specified.
//
// Example:
//
//	d, err := nastie.New(
//	    nastie.WithUpstream("freenas.local", 80),
//	    nastie.WithCredentials("root", password),
//	)
//
// Returns an error if the host is empty or the port is outside the valid
// range (1-65535).
func WithUpstream(host string, port int) Option {
	return func(cfg *dashConfig) error {
		if host == "" {
			return errors.New("upstream host cannot be empty")
		}
		if port < 1 || port > 65535 {
			return errors.New("upstream port must be between 1 and 65535")
		}
		cfg.apiHost = host
		cfg.apiPort = port
		return nil
	}
}

// WithSecure selects HTTPS for requests to the TrueNAS API.
//
// Defaults to plain HTTP, matching a stock TrueNAS install on a home
// network.
func WithSecure(secure bool) Option {
	return func(cfg *dashConfig) error {
		cfg.apiSecure = secure
		return nil
	}
}

// WithCredentials sets the Basic auth credentials for the TrueNAS API.
//
// A password is required for [New] to succeed; the user defaults to "root"
// if WithCredentials is never called.
//
// Returns an error if the user or password is empty.
func WithCredentials(user, password string) Option {
	return func(cfg *dashConfig) error {
		if user == "" {
			return errors.New("user cannot be empty")
		}
		if password == "" {
			return errors.New("password cannot be empty")
		}
		cfg.apiUser = user
		cfg.apiPassword = password
		return nil
	}
}

// WithBindAddress sets the host and port the dashboard server listens on.
//
// The dashboard UI and API will be available at http://<host>:<port>.
// Defaults to localhost:8000 if not specified. Bind to "0.0.0.0" to expose
// the dashboard beyond the local machine.
//
// Returns an error if the host is empty or the port is outside the valid
// range (1-65535).
func WithBindAddress(host string, port int) Option {
	return func(cfg *dashConfig) error {
		if host == "" {
			return errors.New("bind host cannot be empty")
		}
		if port < 1 || port > 65535 {
			return errors.New("bind port must be between 1 and 65535")
		}
		cfg.bindHost = host
		cfg.bindPort = port
		return nil
	}
}

// WithPollInterval sets how often the jail and plugin collections are
// fetched.
//
// Defaults to 30 seconds if not specified. The TrueNAS middleware is not
// built for aggressive polling; intervals below a few seconds mostly load
// the NAS for no fresher data.
//
// Returns an error if the duration is zero or negative.
func WithPollInterval(d time.Duration) Option {
	return func(cfg *dashConfig) error {
		if d <= 0 {
			return errors.New("poll interval must be positive")
		}
		cfg.pollInterval = d
		return nil
	}
}

// WithRequestTimeout sets the per-request deadline for TrueNAS API calls.
//
// Defaults to 10 seconds if not specified. Both fetches of a refresh cycle
// get their own deadline.
//
// Returns an error if the duration is zero or negative.
func WithRequestTimeout(d time.Duration) Option {
	return func(cfg *dashConfig) error {
		if d <= 0 {
			return errors.New("request timeout must be positive")
		}
		cfg.requestTimeout = d
		return nil
	}
}

// WithTitle sets the dashboard title displayed in the browser tab and
// header.
//
// If not specified, defaults to "nastie".
func WithTitle(title string) Option {
	return func(cfg *dashConfig) error {
		cfg.title = title
		return nil
	}
}

// WithLogger sets a custom [slog.Logger] for the Dashboard instance.
//
// This allows SDK consumers to control where logs are written and in what
// format. If not specified, [slog.Default] is used.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
//	d, err := nastie.New(
//	    nastie.WithCredentials("root", password),
//	    nastie.WithLogger(logger),
//	)
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *dashConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}
