package config

import "time"

// Config is the root configuration for the mediator.
type Config struct {
	// Server contains HTTP server configuration.
	Server ServerConfig `yaml:"server"`

	// Auth contains caller credential configuration.
	Auth AuthConfig `yaml:"auth"`

	// Policy contains policy document configuration.
	Policy PolicyConfig `yaml:"policy"`

	// Session contains session store configuration.
	Session SessionConfig `yaml:"session"`

	// Audit contains audit chain configuration.
	Audit AuditConfig `yaml:"audit"`

	// Context contains context assembly tuning.
	Context ContextConfig `yaml:"context"`

	// Structured contains structured store configuration.
	Structured StructuredConfig `yaml:"structured"`

	// Semantic contains semantic store configuration.
	Semantic SemanticConfig `yaml:"semantic"`

	// Telemetry contains logging and metrics configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig contains configuration for the HTTP server.
type ServerConfig struct {
	// ListenAddress is the address and port to listen on.
	// Default: "127.0.0.1:8080"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout bounds reading the entire request including the body.
	// Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout bounds writes of the response.
	// Default: 30s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout bounds keep-alive waits for the next request.
	// Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout bounds graceful shutdown before in-flight requests
	// are abandoned.
	// Default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxHeaderBytes bounds request header parsing.
	// Default: 1048576 (1MB)
	MaxHeaderBytes int `yaml:"max_header_bytes"`
}

// AuthConfig contains caller credential settings. The personal access
// token is the root credential; capability tokens are minted from it.
type AuthConfig struct {
	// PersonalAccessToken is the long-lived credential accepted by the
	// authenticate operation. Required.
	PersonalAccessToken string `yaml:"personal_access_token"`

	// SigningKey signs capability tokens. Required.
	SigningKey string `yaml:"signing_key"`

	// TokenTTL is the capability token lifetime.
	// Default: 30m
	TokenTTL time.Duration `yaml:"token_ttl"`

	// Issuer is the capability token issuer claim.
	// Default: "synm-mediator"
	Issuer string `yaml:"issuer"`
}

// PolicyConfig contains policy document settings.
type PolicyConfig struct {
	// Dir is the directory of policy YAML files merged at startup.
	// Default: "./policies"
	Dir string `yaml:"dir"`

	// Watch enables the change watcher. Policies are frozen once loaded,
	// so the watcher only reports that a restart is required.
	// Default: true
	Watch bool `yaml:"watch"`
}

// SessionConfig contains session store settings.
type SessionConfig struct {
	// DBPath is the SQLite database path. Empty selects the in-memory
	// store (sessions do not survive a restart).
	// Default: "./data/sessions.db"
	DBPath string `yaml:"db_path"`
}

// AuditConfig contains audit chain settings.
type AuditConfig struct {
	// DBPath is the SQLite database path for the append-only log.
	// Default: "./data/audit.db"
	DBPath string `yaml:"db_path"`

	// VerifySchedule is a cron expression for scheduled integrity
	// verification. Empty disables the background verifier.
	// Default: "@hourly"
	VerifySchedule string `yaml:"verify_schedule"`

	// BusyTimeout is the SQLite busy timeout.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// ContextConfig contains context assembly tuning.
type ContextConfig struct {
	// ByteCeiling bounds assembled context size in bytes.
	// Default: 4096
	ByteCeiling int `yaml:"byte_ceiling"`

	// SemanticLimit is the semantic result count per request, hard
	// capped at 10.
	// Default: 5
	SemanticLimit int `yaml:"semantic_limit"`
}

// StructuredConfig contains structured store settings.
type StructuredConfig struct {
	// DBPath is the SQLite database path. Empty selects the in-memory
	// store.
	// Default: "./data/store.db"
	DBPath string `yaml:"db_path"`
}

// SemanticConfig contains semantic store settings.
type SemanticConfig struct {
	// URL is the vector-search service base URL. Empty disables semantic
	// retrieval entirely; the pipeline runs structured-only.
	URL string `yaml:"url"`

	// Timeout bounds every backend call.
	// Default: 3s
	Timeout time.Duration `yaml:"timeout"`
}

// TelemetryConfig contains logging and metrics settings.
type TelemetryConfig struct {
	// Logging contains structured logging settings.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics settings.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains structured logging settings.
type LoggingConfig struct {
	// Level is one of "debug", "info", "warn", "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format is "json" or "text".
	// Default: "json"
	Format string `yaml:"format"`
}

// MetricsConfig contains Prometheus metrics settings.
type MetricsConfig struct {
	// Enabled controls whether the metrics endpoint is served.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the metrics endpoint path.
	// Default: "/metrics"
	Path string `yaml:"path"`
}
