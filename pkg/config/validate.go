package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// Validate checks the configuration for errors. It is called by Load
// after defaults and overrides; commands that build a Config by hand
// must call it themselves.
func Validate(cfg *Config) error {
	if _, _, err := net.SplitHostPort(cfg.Server.ListenAddress); err != nil {
		return fmt.Errorf("server.listen_address %q is not host:port: %w", cfg.Server.ListenAddress, err)
	}

	if cfg.Auth.PersonalAccessToken == "" {
		return fmt.Errorf("auth.personal_access_token is required")
	}
	if len(cfg.Auth.SigningKey) < 16 {
		return fmt.Errorf("auth.signing_key must be at least 16 bytes")
	}
	if cfg.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive")
	}

	if cfg.Policy.Dir == "" {
		return fmt.Errorf("policy.dir is required")
	}

	if cfg.Context.ByteCeiling <= 0 {
		return fmt.Errorf("context.byte_ceiling must be positive")
	}
	if cfg.Context.SemanticLimit < 1 || cfg.Context.SemanticLimit > 10 {
		return fmt.Errorf("context.semantic_limit must be in [1, 10]")
	}

	if cfg.Semantic.URL != "" {
		parsed, err := url.Parse(cfg.Semantic.URL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("semantic.url %q is not an absolute URL", cfg.Semantic.URL)
		}
	}

	switch cfg.Telemetry.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("telemetry.logging.level %q is not one of debug, info, warn, error", cfg.Telemetry.Logging.Level)
	}

	switch cfg.Telemetry.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("telemetry.logging.format %q is not one of json, text", cfg.Telemetry.Logging.Format)
	}

	if cfg.Telemetry.Metrics.Enabled && !strings.HasPrefix(cfg.Telemetry.Metrics.Path, "/") {
		return fmt.Errorf("telemetry.metrics.path %q must start with /", cfg.Telemetry.Metrics.Path)
	}

	return nil
}
