package config

import "time"

// Default values for configuration fields.
const (
	DefaultListenAddress   = "127.0.0.1:8080"
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultMaxHeaderBytes  = 1 << 20

	DefaultTokenTTL = 30 * time.Minute
	DefaultIssuer   = "synm-mediator"

	DefaultPolicyDir = "./policies"

	DefaultSessionDBPath    = "./data/sessions.db"
	DefaultAuditDBPath      = "./data/audit.db"
	DefaultStructuredDBPath = "./data/store.db"

	DefaultVerifySchedule = "@hourly"
	DefaultBusyTimeout    = 5 * time.Second

	DefaultByteCeiling   = 4096
	DefaultSemanticLimit = 5

	DefaultSemanticTimeout = 3 * time.Second

	DefaultLogLevel    = "info"
	DefaultLogFormat   = "json"
	DefaultMetricsPath = "/metrics"
)

// ApplyDefaults fills zero-valued fields with defaults. Booleans whose
// default is true are handled in Load before unmarshalling, since a
// false from the file is indistinguishable from an omission here.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = DefaultListenAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Server.MaxHeaderBytes == 0 {
		cfg.Server.MaxHeaderBytes = DefaultMaxHeaderBytes
	}

	if cfg.Auth.TokenTTL == 0 {
		cfg.Auth.TokenTTL = DefaultTokenTTL
	}
	if cfg.Auth.Issuer == "" {
		cfg.Auth.Issuer = DefaultIssuer
	}

	if cfg.Policy.Dir == "" {
		cfg.Policy.Dir = DefaultPolicyDir
	}

	if cfg.Session.DBPath == "" {
		cfg.Session.DBPath = DefaultSessionDBPath
	}
	if cfg.Audit.DBPath == "" {
		cfg.Audit.DBPath = DefaultAuditDBPath
	}
	if cfg.Audit.VerifySchedule == "" {
		cfg.Audit.VerifySchedule = DefaultVerifySchedule
	}
	if cfg.Audit.BusyTimeout == 0 {
		cfg.Audit.BusyTimeout = DefaultBusyTimeout
	}
	if cfg.Structured.DBPath == "" {
		cfg.Structured.DBPath = DefaultStructuredDBPath
	}

	if cfg.Context.ByteCeiling == 0 {
		cfg.Context.ByteCeiling = DefaultByteCeiling
	}
	if cfg.Context.SemanticLimit == 0 {
		cfg.Context.SemanticLimit = DefaultSemanticLimit
	}

	if cfg.Semantic.Timeout == 0 {
		cfg.Semantic.Timeout = DefaultSemanticTimeout
	}

	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLogLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLogFormat
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
}
