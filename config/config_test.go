package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte(""))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	// check defaults applied
	if cfg.Host != "localhost" {
		t.Errorf("Host = %q, want localhost", cfg.Host)
	}
	if cfg.Port != 80 {
		t.Errorf("Port = %d, want 80", cfg.Port)
	}
	if cfg.Secure {
		t.Error("Secure = true, want false")
	}
	if cfg.User != "root" {
		t.Errorf("User = %q, want root", cfg.User)
	}
	if cfg.Password != "" {
		t.Errorf("Password = %q, want empty string", cfg.Password)
	}
	if cfg.BindHost != "localhost" {
		t.Errorf("BindHost = %q, want localhost", cfg.BindHost)
	}
	if cfg.BindPort != 8000 {
		t.Errorf("BindPort = %d, want 8000", cfg.BindPort)
	}
	if cfg.PollInterval.Duration() != 30*time.Second {
		t.Errorf("PollInterval = %v, want 30s", cfg.PollInterval.Duration())
	}
	if cfg.Timeout.Duration() != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", cfg.Timeout.Duration())
	}
}

func TestParse_FullConfig(t *testing.T) {
	yaml := `
title: Jails
host: freenas.local
port: 443
secure: true
user: admin
password: hunter2
bind_host: 0.0.0.0
bind_port: 9000
poll_interval: 1m
timeout: 5s
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Title != "Jails" {
		t.Errorf("Title = %q, want Jails", cfg.Title)
	}
	if cfg.Host != "freenas.local" {
		t.Errorf("Host = %q, want freenas.local", cfg.Host)
	}
	if cfg.Port != 443 {
		t.Errorf("Port = %d, want 443", cfg.Port)
	}
	if !cfg.Secure {
		t.Error("Secure = false, want true")
	}
	if cfg.User != "admin" {
		t.Errorf("User = %q, want admin", cfg.User)
	}
	if cfg.Password != "hunter2" {
		t.Errorf("Password = %q, want hunter2", cfg.Password)
	}
	if cfg.BindHost != "0.0.0.0" {
		t.Errorf("BindHost = %q, want 0.0.0.0", cfg.BindHost)
	}
	if cfg.BindPort != 9000 {
		t.Errorf("BindPort = %d, want 9000", cfg.BindPort)
	}
	if cfg.PollInterval.Duration() != time.Minute {
		t.Errorf("PollInterval = %v, want 1m", cfg.PollInterval.Duration())
	}
	if cfg.Timeout.Duration() != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Timeout.Duration())
	}
}

func TestParse_PartialConfig(t *testing.T) {
	yaml := `
host: nas.home.arpa
password: secret
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Host != "nas.home.arpa" {
		t.Errorf("Host = %q, want nas.home.arpa", cfg.Host)
	}
	// unset fields still get defaults
	if cfg.Port != 80 {
		t.Errorf("Port = %d, want 80", cfg.Port)
	}
	if cfg.User != "root" {
		t.Errorf("User = %q, want root", cfg.User)
	}
	if cfg.PollInterval.Duration() != 30*time.Second {
		t.Errorf("PollInterval = %v, want 30s", cfg.PollInterval.Duration())
	}
}

func TestParse_DoesNotValidate(t *testing.T) {
	// a file without a password must parse: the CLI can supply the password
	// via flag before Validate runs
	cfg, err := Parse([]byte("host: freenas.local"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if err := cfg.Validate(); err == nil {
		t.Error("Validate() expected error for missing password, got nil")
	}

	cfg.Password = "from-flag"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() after setting password: %v", err)
	}
}

func TestParse_EnvVarSubstitution(t *testing.T) {
	// t.Setenv auto-restores after test (Go 1.17+)
	t.Setenv("TEST_NAS_HOST", "nas.test.com")
	t.Setenv("TEST_NAS_PASSWORD", "secret123")

	yaml := `
host: ${TEST_NAS_HOST}
password: ${TEST_NAS_PASSWORD}
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Host != "nas.test.com" {
		t.Errorf("Host = %q, want nas.test.com", cfg.Host)
	}
	if cfg.Password != "secret123" {
		t.Errorf("Password = %q, want secret123", cfg.Password)
	}
}

func TestParse_EnvVarDefault(t *testing.T) {
	yaml := `
user: ${UNSET_NAS_USER:-operator}
password: x
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.User != "operator" {
		t.Errorf("User = %q, want operator", cfg.User)
	}
}

func TestParse_EnvVarMissing(t *testing.T) {
	// MISSING_NAS_PASSWORD is expected to not exist in the environment
	yaml := `password: ${MISSING_NAS_PASSWORD}`

	_, err := Parse([]byte(yaml))
	if err == nil {
		t.Fatal("Parse() expected error for missing env var, got nil")
	}
	if !strings.Contains(err.Error(), "MISSING_NAS_PASSWORD") {
		t.Errorf("error should mention MISSING_NAS_PASSWORD: %v", err)
	}
	if !strings.Contains(err.Error(), "password") {
		t.Errorf("error should mention the field: %v", err)
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	yaml := `
this is not: valid: yaml: at all
  - broken
`
	_, err := Parse([]byte(yaml))
	if err == nil {
		t.Fatal("Parse() expected error for invalid YAML, got nil")
	}
}

func TestParse_InvalidDuration(t *testing.T) {
	yaml := `
poll_interval: not-a-duration
password: x
`
	_, err := Parse([]byte(yaml))
	if err == nil {
		t.Fatal("Parse() expected error for invalid duration, got nil")
	}
	if !strings.Contains(err.Error(), "invalid duration") {
		t.Errorf("error = %q, want to contain 'invalid duration'", err.Error())
	}
}

func TestDuration_UnmarshalYAML(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"seconds", "10s", 10 * time.Second, false},
		{"milliseconds", "1500ms", 1500 * time.Millisecond, false},
		{"minutes", "2m", 2 * time.Minute, false},
		{"hours", "1h", 1 * time.Hour, false},
		{"combined", "1m30s", 90 * time.Second, false},
		{"invalid", "not-a-duration", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			yaml := "poll_interval: " + tt.input

			cfg, err := Parse([]byte(yaml))
			if tt.wantErr {
				if err == nil {
					t.Fatal("Parse() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if cfg.PollInterval.Duration() != tt.want {
				t.Errorf("PollInterval = %v, want %v", cfg.PollInterval.Duration(), tt.want)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Host != "localhost" {
		t.Errorf("Host = %q, want localhost", cfg.Host)
	}
	if cfg.Port != 80 {
		t.Errorf("Port = %d, want 80", cfg.Port)
	}
	if cfg.User != "root" {
		t.Errorf("User = %q, want root", cfg.User)
	}
	if cfg.BindHost != "localhost" {
		t.Errorf("BindHost = %q, want localhost", cfg.BindHost)
	}
	if cfg.BindPort != 8000 {
		t.Errorf("BindPort = %d, want 8000", cfg.BindPort)
	}
	if cfg.PollInterval.Duration() != 30*time.Second {
		t.Errorf("PollInterval = %v, want 30s", cfg.PollInterval.Duration())
	}
	if cfg.Timeout.Duration() != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", cfg.Timeout.Duration())
	}

	// the one field with no default
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() expected error for missing password, got nil")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nastie.yaml")
	content := `
host: freenas.local
password: hunter2
bind_port: 9000
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Host != "freenas.local" {
		t.Errorf("Host = %q, want freenas.local", cfg.Host)
	}
	if cfg.Password != "hunter2" {
		t.Errorf("Password = %q, want hunter2", cfg.Password)
	}
	if cfg.BindPort != 9000 {
		t.Errorf("BindPort = %d, want 9000", cfg.BindPort)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err == nil {
		t.Fatal("Load() expected error for missing file, got nil")
	}
	if !strings.Contains(err.Error(), "failed to read config file") {
		t.Errorf("error = %q, want to contain 'failed to read config file'", err.Error())
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.Password = "hunter2"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "valid",
			mutate:  func(c *Config) {},
			wantErr: "",
		},
		{
			name:    "empty host",
			mutate:  func(c *Config) { c.Host = "" },
			wantErr: "host cannot be empty",
		},
		{
			name:    "port zero",
			mutate:  func(c *Config) { c.Port = 0 },
			wantErr: "port must be between 1 and 65535",
		},
		{
			name:    "port too large",
			mutate:  func(c *Config) { c.Port = 70000 },
			wantErr: "port must be between 1 and 65535",
		},
		{
			name:    "empty user",
			mutate:  func(c *Config) { c.User = "" },
			wantErr: "user cannot be empty",
		},
		{
			name:    "empty password",
			mutate:  func(c *Config) { c.Password = "" },
			wantErr: "password is required",
		},
		{
			name:    "empty bind host",
			mutate:  func(c *Config) { c.BindHost = "" },
			wantErr: "bind_host cannot be empty",
		},
		{
			name:    "bind port negative",
			mutate:  func(c *Config) { c.BindPort = -1 },
			wantErr: "bind_port must be between 1 and 65535",
		},
		{
			name:    "poll interval too short",
			mutate:  func(c *Config) { c.PollInterval = Duration(500 * time.Millisecond) },
			wantErr: "poll_interval must be at least 1s",
		},
		{
			name:    "poll interval negative",
			mutate:  func(c *Config) { c.PollInterval = Duration(-5 * time.Second) },
			wantErr: "poll_interval must be at least 1s",
		},
		{
			name:    "timeout too short",
			mutate:  func(c *Config) { c.Timeout = Duration(100 * time.Millisecond) },
			wantErr: "timeout must be at least 1s",
		},
		{
			name:    "poll interval exactly 1s",
			mutate:  func(c *Config) { c.PollInterval = Duration(time.Second) },
			wantErr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}

			if err == nil {
				t.Fatal("Validate() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TEST_VAR", "value")
	t.Setenv("EMPTY_VAR", "") // set but empty

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"no vars", "plain text", "plain text", false},
		{"simple var", "${TEST_VAR}", "value", false},
		{"var in text", "prefix ${TEST_VAR} suffix", "prefix value suffix", false},
		{"multiple vars", "${TEST_VAR}-${TEST_VAR}", "value-value", false},
		{"with default (var set)", "${TEST_VAR:-default}", "value", false},
		{"with default (var unset)", "${UNSET:-default}", "default", false},
		{"missing required", "${MISSING}", "", true},
		{"empty default (var unset)", "${UNSET:-}", "", false},
		// set-but-empty env var should substitute empty string
		{"set but empty var", "${EMPTY_VAR}", "", false},
		{"set but empty with default", "${EMPTY_VAR:-fallback}", "", false}, // set var takes precedence
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// UNSET and MISSING are expected to not exist in environment
			got, err := expandEnvVars(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expandEnvVars() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("expandEnvVars() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("expandEnvVars() = %q, want %q", got, tt.want)
			}
		})
	}
}
