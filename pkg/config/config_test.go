package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

const minimalConfig = `
auth:
  personal_access_token: test-pat
  signing_key: 0123456789abcdef
`

// TestLoad_Defaults tests that a minimal file gets full defaults.
func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfigFile(t, minimalConfig))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.ListenAddress != DefaultListenAddress {
		t.Errorf("listen address = %q, want default", cfg.Server.ListenAddress)
	}
	if cfg.Server.ReadTimeout != DefaultReadTimeout {
		t.Errorf("read timeout = %v, want default", cfg.Server.ReadTimeout)
	}
	if cfg.Policy.Dir != DefaultPolicyDir {
		t.Errorf("policy dir = %q, want default", cfg.Policy.Dir)
	}
	if !cfg.Policy.Watch {
		t.Error("policy watch should default to true")
	}
	if cfg.Context.ByteCeiling != DefaultByteCeiling {
		t.Errorf("byte ceiling = %d, want default", cfg.Context.ByteCeiling)
	}
	if cfg.Context.SemanticLimit != DefaultSemanticLimit {
		t.Errorf("semantic limit = %d, want default", cfg.Context.SemanticLimit)
	}
	if !cfg.Telemetry.Metrics.Enabled {
		t.Error("metrics should default to enabled")
	}
	if cfg.Telemetry.Logging.Level != "info" || cfg.Telemetry.Logging.Format != "json" {
		t.Errorf("unexpected logging defaults: %+v", cfg.Telemetry.Logging)
	}
	if cfg.Audit.VerifySchedule != DefaultVerifySchedule {
		t.Errorf("verify schedule = %q, want default", cfg.Audit.VerifySchedule)
	}
}

// TestLoad_FileValues tests that explicit file values survive loading.
func TestLoad_FileValues(t *testing.T) {
	cfg, err := Load(writeConfigFile(t, `
server:
  listen_address: "0.0.0.0:9090"
  read_timeout: 10s
auth:
  personal_access_token: test-pat
  signing_key: 0123456789abcdef
  token_ttl: 1h
policy:
  dir: /etc/mediator/policies
  watch: false
context:
  byte_ceiling: 2048
semantic:
  url: http://localhost:8000
telemetry:
  metrics:
    enabled: false
`))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.ListenAddress != "0.0.0.0:9090" {
		t.Errorf("listen address = %q", cfg.Server.ListenAddress)
	}
	if cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("read timeout = %v", cfg.Server.ReadTimeout)
	}
	if cfg.Auth.TokenTTL != time.Hour {
		t.Errorf("token ttl = %v", cfg.Auth.TokenTTL)
	}
	if cfg.Policy.Watch {
		t.Error("explicit watch: false was lost")
	}
	if cfg.Context.ByteCeiling != 2048 {
		t.Errorf("byte ceiling = %d", cfg.Context.ByteCeiling)
	}
	if cfg.Semantic.URL != "http://localhost:8000" {
		t.Errorf("semantic url = %q", cfg.Semantic.URL)
	}
	if cfg.Telemetry.Metrics.Enabled {
		t.Error("explicit metrics enabled: false was lost")
	}
}

// TestLoad_EnvOverrides tests that environment variables beat file
// values.
func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MEDIATOR_SERVER_LISTEN_ADDRESS", "127.0.0.1:7070")
	t.Setenv("MEDIATOR_AUTH_PERSONAL_ACCESS_TOKEN", "env-pat")
	t.Setenv("MEDIATOR_CONTEXT_BYTE_CEILING", "1024")
	t.Setenv("MEDIATOR_POLICY_WATCH", "false")

	cfg, err := Load(writeConfigFile(t, minimalConfig))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.ListenAddress != "127.0.0.1:7070" {
		t.Errorf("env override lost: %q", cfg.Server.ListenAddress)
	}
	if cfg.Auth.PersonalAccessToken != "env-pat" {
		t.Errorf("env override lost: %q", cfg.Auth.PersonalAccessToken)
	}
	if cfg.Context.ByteCeiling != 1024 {
		t.Errorf("env override lost: %d", cfg.Context.ByteCeiling)
	}
	if cfg.Policy.Watch {
		t.Error("env override lost: watch")
	}
}

// TestLoad_MissingFile tests the error path for an absent file.
func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

// TestValidate tests rejection of invalid configurations.
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "missing pat",
			mutate:  func(c *Config) { c.Auth.PersonalAccessToken = "" },
			wantErr: "personal_access_token",
		},
		{
			name:    "short signing key",
			mutate:  func(c *Config) { c.Auth.SigningKey = "short" },
			wantErr: "signing_key",
		},
		{
			name:    "bad listen address",
			mutate:  func(c *Config) { c.Server.ListenAddress = "no-port" },
			wantErr: "listen_address",
		},
		{
			name:    "zero byte ceiling",
			mutate:  func(c *Config) { c.Context.ByteCeiling = -1 },
			wantErr: "byte_ceiling",
		},
		{
			name:    "semantic limit above cap",
			mutate:  func(c *Config) { c.Context.SemanticLimit = 50 },
			wantErr: "semantic_limit",
		},
		{
			name:    "relative semantic url",
			mutate:  func(c *Config) { c.Semantic.URL = "localhost:8000" },
			wantErr: "semantic.url",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Telemetry.Logging.Level = "verbose" },
			wantErr: "logging.level",
		},
		{
			name:    "unknown log format",
			mutate:  func(c *Config) { c.Telemetry.Logging.Format = "xml" },
			wantErr: "logging.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{
				Auth: AuthConfig{
					PersonalAccessToken: "test-pat",
					SigningKey:          "0123456789abcdef",
				},
			}
			ApplyDefaults(&cfg)
			tt.mutate(&cfg)

			err := Validate(&cfg)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}
