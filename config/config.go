// Package config provides YAML configuration parsing for nastie.
//
// This package enables running nastie as a standalone binary with a
// configuration file, as an alternative to the programmatic SDK approach.
//
// Example configuration:
//
//	title: Jails
//	host: freenas.local
//	port: 443
//	secure: true
//	user: root
//	password: ${NASTIE_PASSWORD}
//
//	bind_host: 0.0.0.0
//	bind_port: 8000
//	poll_interval: 30s
//	timeout: 10s
//
// Environment variables are expanded in string fields using ${VAR} or
// ${VAR:-default} syntax, so secrets like the API password can stay out of
// the file itself.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// minPollInterval is the minimum allowed polling interval.
// This prevents accidental DoS of the upstream API with overly aggressive polling.
const minPollInterval = 1 * time.Second

// minTimeout is the minimum allowed request timeout.
const minTimeout = 1 * time.Second

// Config is the root configuration structure for nastie.
//
// It maps directly to the YAML configuration file structure.
// Use [Load] or [Parse] to create a Config from YAML.
type Config struct {
	// Title is the dashboard title. Empty means the built-in default.
	Title string `yaml:"title"`

	// Host is the FreeNAS API host. Defaults to localhost.
	Host string `yaml:"host"`

	// Port is the FreeNAS API port. Defaults to 80.
	Port int `yaml:"port"`

	// Secure selects HTTPS for API requests. Defaults to false.
	Secure bool `yaml:"secure"`

	// User is the FreeNAS API user. Defaults to root.
	User string `yaml:"user"`

	// Password is the FreeNAS API password. It has no default: it must be
	// set here or supplied by the caller before [Config.Validate].
	Password string `yaml:"password"`

	// BindHost is the host the dashboard listens on. Defaults to localhost.
	BindHost string `yaml:"bind_host"`

	// BindPort is the port the dashboard listens on. Defaults to 8000.
	BindPort int `yaml:"bind_port"`

	// PollInterval is the time between API refresh cycles.
	// Accepts duration strings like "30s", "1m", "500ms".
	// Defaults to 30s.
	PollInterval Duration `yaml:"poll_interval"`

	// Timeout is the per-request timeout for API calls. Defaults to 10s.
	Timeout Duration `yaml:"timeout"`
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		// already have an error, skip processing
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		// submatches[2] is ":-..." (non-empty if default syntax was used)
		// submatches[3] is the actual default value (may be empty for ${VAR:-})
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Default returns a Config populated with the default values.
//
// It is the starting point for callers that have no configuration file and
// build the config from flags alone.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and parses a YAML configuration file.
//
// Environment variables in the file are expanded after parsing.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data.
//
// Defaults are applied for every field except Password, and environment
// variables are expanded in string fields. Parse does not validate: callers
// merge overrides (such as CLI flags) into the result and then call
// [Config.Validate].
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.expand(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyDefaults fills zero-valued fields with the documented defaults.
func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 80
	}
	if c.User == "" {
		c.User = "root"
	}
	if c.BindHost == "" {
		c.BindHost = "localhost"
	}
	if c.BindPort == 0 {
		c.BindPort = 8000
	}
	if c.PollInterval == 0 {
		c.PollInterval = Duration(30 * time.Second)
	}
	if c.Timeout == 0 {
		c.Timeout = Duration(10 * time.Second)
	}
}

// expand substitutes environment variables in all string fields.
func (c *Config) expand() error {
	fields := []struct {
		name  string
		value *string
	}{
		{"title", &c.Title},
		{"host", &c.Host},
		{"user", &c.User},
		{"password", &c.Password},
		{"bind_host", &c.BindHost},
	}

	for _, f := range fields {
		expanded, err := expandEnvVars(*f.value)
		if err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
		*f.value = expanded
	}

	return nil
}

// Validate checks that the config is complete and within range.
//
// It is separate from [Parse] so the CLI can merge flag overrides into a
// loaded config before validating the result.
func (c *Config) Validate() error {
	if c.Host == "" {
		return errors.New("host cannot be empty")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	if c.User == "" {
		return errors.New("user cannot be empty")
	}
	if c.Password == "" {
		return errors.New("password is required")
	}
	if c.BindHost == "" {
		return errors.New("bind_host cannot be empty")
	}
	if c.BindPort < 1 || c.BindPort > 65535 {
		return fmt.Errorf("bind_port must be between 1 and 65535, got %d", c.BindPort)
	}
	if c.PollInterval.Duration() < minPollInterval {
		return fmt.Errorf("poll_interval must be at least %s, got %s", minPollInterval, c.PollInterval.Duration())
	}
	if c.Timeout.Duration() < minTimeout {
		return fmt.Errorf("timeout must be at least %s, got %s", minTimeout, c.Timeout.Duration())
	}
	return nil
}
