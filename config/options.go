package config

import "github.com/garfunkel/nastie"

// Options converts parsed configuration into SDK options.
//
// The returned slice can be passed directly to [nastie.New]. Callers that
// want a custom logger append [nastie.WithLogger] themselves.
func Options(cfg *Config) []nastie.Option {
	opts := []nastie.Option{
		nastie.WithUpstream(cfg.Host, cfg.Port),
		nastie.WithSecure(cfg.Secure),
		nastie.WithCredentials(cfg.User, cfg.Password),
		nastie.WithBindAddress(cfg.BindHost, cfg.BindPort),
		nastie.WithPollInterval(cfg.PollInterval.Duration()),
		nastie.WithRequestTimeout(cfg.Timeout.Duration()),
	}

	if cfg.Title != "" {
		opts = append(opts, nastie.WithTitle(cfg.Title))
	}

	return opts
}
