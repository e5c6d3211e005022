package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Load reads configuration from a YAML file, applies defaults and
// MEDIATOR_* environment overrides, and validates the result.
//
// The loading sequence is:
//  1. Parse YAML from file
//  2. Apply default values
//  3. Apply environment variable overrides
//  4. Validate final configuration
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	// True-by-default booleans are set before unmarshalling so an
	// explicit false in the file survives.
	cfg := Config{
		Policy:    PolicyConfig{Watch: true},
		Telemetry: TelemetryConfig{Metrics: MetricsConfig{Enabled: true}},
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// applyEnvOverrides applies MEDIATOR_SECTION_FIELD environment variable
// overrides. Environment variables always take precedence over file
// values.
func applyEnvOverrides(cfg *Config) {
	setString := func(key string, dst *string) {
		if val := os.Getenv(key); val != "" {
			*dst = val
		}
	}
	setDuration := func(key string, dst *time.Duration) {
		if val := os.Getenv(key); val != "" {
			if d, err := time.ParseDuration(val); err == nil {
				*dst = d
			}
		}
	}
	setInt := func(key string, dst *int) {
		if val := os.Getenv(key); val != "" {
			if i, err := strconv.Atoi(val); err == nil {
				*dst = i
			}
		}
	}
	setBool := func(key string, dst *bool) {
		if val := os.Getenv(key); val != "" {
			if b, err := strconv.ParseBool(val); err == nil {
				*dst = b
			}
		}
	}

	setString("MEDIATOR_SERVER_LISTEN_ADDRESS", &cfg.Server.ListenAddress)
	setDuration("MEDIATOR_SERVER_READ_TIMEOUT", &cfg.Server.ReadTimeout)
	setDuration("MEDIATOR_SERVER_WRITE_TIMEOUT", &cfg.Server.WriteTimeout)
	setDuration("MEDIATOR_SERVER_IDLE_TIMEOUT", &cfg.Server.IdleTimeout)
	setDuration("MEDIATOR_SERVER_SHUTDOWN_TIMEOUT", &cfg.Server.ShutdownTimeout)
	setInt("MEDIATOR_SERVER_MAX_HEADER_BYTES", &cfg.Server.MaxHeaderBytes)

	setString("MEDIATOR_AUTH_PERSONAL_ACCESS_TOKEN", &cfg.Auth.PersonalAccessToken)
	setString("MEDIATOR_AUTH_SIGNING_KEY", &cfg.Auth.SigningKey)
	setDuration("MEDIATOR_AUTH_TOKEN_TTL", &cfg.Auth.TokenTTL)
	setString("MEDIATOR_AUTH_ISSUER", &cfg.Auth.Issuer)

	setString("MEDIATOR_POLICY_DIR", &cfg.Policy.Dir)
	setBool("MEDIATOR_POLICY_WATCH", &cfg.Policy.Watch)

	setString("MEDIATOR_SESSION_DB_PATH", &cfg.Session.DBPath)

	setString("MEDIATOR_AUDIT_DB_PATH", &cfg.Audit.DBPath)
	setString("MEDIATOR_AUDIT_VERIFY_SCHEDULE", &cfg.Audit.VerifySchedule)
	setDuration("MEDIATOR_AUDIT_BUSY_TIMEOUT", &cfg.Audit.BusyTimeout)

	setInt("MEDIATOR_CONTEXT_BYTE_CEILING", &cfg.Context.ByteCeiling)
	setInt("MEDIATOR_CONTEXT_SEMANTIC_LIMIT", &cfg.Context.SemanticLimit)

	setString("MEDIATOR_STRUCTURED_DB_PATH", &cfg.Structured.DBPath)

	setString("MEDIATOR_SEMANTIC_URL", &cfg.Semantic.URL)
	setDuration("MEDIATOR_SEMANTIC_TIMEOUT", &cfg.Semantic.Timeout)

	setString("MEDIATOR_TELEMETRY_LOGGING_LEVEL", &cfg.Telemetry.Logging.Level)
	setString("MEDIATOR_TELEMETRY_LOGGING_FORMAT", &cfg.Telemetry.Logging.Format)
	setBool("MEDIATOR_TELEMETRY_METRICS_ENABLED", &cfg.Telemetry.Metrics.Enabled)
	setString("MEDIATOR_TELEMETRY_METRICS_PATH", &cfg.Telemetry.Metrics.Path)
}
