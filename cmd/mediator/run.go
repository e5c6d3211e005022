package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"synm-hq/mediator/pkg/audit"
	auditstorage "synm-hq/mediator/pkg/audit/storage"
	"synm-hq/mediator/pkg/auth"
	"synm-hq/mediator/pkg/cli"
	"synm-hq/mediator/pkg/config"
	"synm-hq/mediator/pkg/pipeline"
	"synm-hq/mediator/pkg/policy"
	"synm-hq/mediator/pkg/redact"
	"synm-hq/mediator/pkg/server"
	"synm-hq/mediator/pkg/session"
	"synm-hq/mediator/pkg/store/semantic"
	"synm-hq/mediator/pkg/store/structured"
	"synm-hq/mediator/pkg/telemetry/logging"
	"synm-hq/mediator/pkg/telemetry/metrics"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the mediator server",
	Long: `Start the mediator server with the specified configuration.

The server loads the policy documents once at startup, opens the
session, structured, and audit stores, connects to the semantic search
backend when configured, and serves the mediated API.

Examples:
  # Start with default config
  mediator run

  # Start with custom config
  mediator run --config /etc/mediator/config.yaml

  # Override listen address
  mediator run --listen 0.0.0.0:8080

  # Validate config without starting the server
  mediator run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting the server")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return cli.NewConfigError("", err.Error())
	}

	if runFlags.listenAddress != "" {
		cfg.Server.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}

	logging.Setup(cfg.Telemetry.Logging)

	if runFlags.dryRun {
		fmt.Println("configuration valid")
		return nil
	}

	ctx := cli.SetupSignalHandler()

	// Policy documents are loaded once and frozen for the process
	// lifetime.
	doc, err := policy.Load(cfg.Policy.Dir)
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	policies := policy.NewEngine(doc)

	if cfg.Policy.Watch {
		watcher, err := policy.NewWatcher(cfg.Policy.Dir)
		if err != nil {
			slog.Warn("policy watcher unavailable", "error", err)
		} else {
			go func() {
				if err := watcher.Watch(ctx); err != nil {
					slog.Error("policy watcher failed", "error", err)
				}
			}()
		}
	}

	auditStore, err := openAuditStorage(cfg)
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	defer auditStore.Close()
	chain := audit.NewChain(auditStore)

	verifier := audit.NewVerifier(chain, cfg.Audit.VerifySchedule)
	if err := verifier.Start(); err != nil {
		return cli.NewCommandError("run", err)
	}
	defer verifier.Stop()

	sessionStore, err := openSessionStore(cfg)
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	defer sessionStore.Close()
	sessions := session.NewService(sessionStore, session.Config{
		DefaultTTLMinutes: policies.DefaultTTLMinutes(),
	})

	scopeStore, err := openStructuredStore(cfg)
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	defer scopeStore.Close()

	collector := metrics.NewCollector(cfg.Telemetry.Metrics.Enabled)

	var searcher semantic.Searcher
	if cfg.Semantic.URL != "" {
		client := semantic.NewClient(semantic.ClientConfig{
			BaseURL: cfg.Semantic.URL,
			Timeout: cfg.Semantic.Timeout,
		})
		client.Connect(ctx)
		collector.SetSemanticConnected(client.Connected())
		searcher = client
	} else {
		slog.Info("no semantic store configured, serving structured content only")
	}

	assembler := pipeline.NewAssembler(
		sessions,
		policies,
		redact.NewEngine(nil),
		searcher,
		scopeStore,
		chain,
		pipeline.Config{
			SemanticLimit: cfg.Context.SemanticLimit,
			ByteCeiling:   cfg.Context.ByteCeiling,
		},
	)

	srv := server.NewServer(cfg.Server, cfg.Telemetry.Metrics, server.Deps{
		Assembler:           assembler,
		Sessions:            sessions,
		Policies:            policies,
		Chain:               chain,
		Tokens:              auth.NewTokenService(cfg.Auth.SigningKey, cfg.Auth.Issuer, cfg.Auth.TokenTTL),
		Metrics:             collector,
		PersonalAccessToken: cfg.Auth.PersonalAccessToken,
	})

	slog.Info("mediator starting",
		"version", Version,
		"policy_dir", cfg.Policy.Dir,
		"profiles", policies.Profiles(),
	)
	return srv.Start(ctx)
}

func openAuditStorage(cfg *config.Config) (audit.Storage, error) {
	if err := ensureDataDir(cfg.Audit.DBPath); err != nil {
		return nil, err
	}
	return auditstorage.NewSQLiteStorage(&auditstorage.SQLiteConfig{
		Path:        cfg.Audit.DBPath,
		BusyTimeout: cfg.Audit.BusyTimeout,
	})
}

func openSessionStore(cfg *config.Config) (session.Store, error) {
	if cfg.Session.DBPath == "" {
		slog.Warn("no session db configured, sessions will not survive a restart")
		return session.NewMemoryStore(), nil
	}
	if err := ensureDataDir(cfg.Session.DBPath); err != nil {
		return nil, err
	}
	return session.NewSQLiteStore(cfg.Session.DBPath)
}

func openStructuredStore(cfg *config.Config) (structured.Store, error) {
	if cfg.Structured.DBPath == "" {
		slog.Warn("no structured db configured, scope content will not survive a restart")
		return structured.NewMemoryStore(), nil
	}
	if err := ensureDataDir(cfg.Structured.DBPath); err != nil {
		return nil, err
	}
	return structured.NewSQLiteStore(cfg.Structured.DBPath)
}

func ensureDataDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return nil
}
