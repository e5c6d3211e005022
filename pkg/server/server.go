package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"synm-hq/mediator/pkg/audit"
	"synm-hq/mediator/pkg/auth"
	"synm-hq/mediator/pkg/config"
	"synm-hq/mediator/pkg/pipeline"
	"synm-hq/mediator/pkg/policy"
	"synm-hq/mediator/pkg/session"
	"synm-hq/mediator/pkg/telemetry/metrics"
)

// Deps are the collaborators the HTTP surface exposes.
type Deps struct {
	Assembler *pipeline.Assembler
	Sessions  *session.Service
	Policies  *policy.Engine
	Chain     *audit.Chain
	Tokens    *auth.TokenService
	Metrics   *metrics.Collector

	// PersonalAccessToken is the root credential accepted alongside
	// capability tokens.
	PersonalAccessToken string
}

// Server is the mediator's HTTP server.
type Server struct {
	config     config.ServerConfig
	metricsCfg config.MetricsConfig
	deps       Deps

	httpServer   *http.Server
	shutdownChan chan struct{}
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
}

// NewServer creates a server over the given collaborators.
func NewServer(cfg config.ServerConfig, metricsCfg config.MetricsConfig, deps Deps) *Server {
	return &Server{
		config:       cfg,
		metricsCfg:   metricsCfg,
		deps:         deps,
		shutdownChan: make(chan struct{}),
	}
}

// Start starts the HTTP server and blocks until shutdown, whether by
// signal, context cancellation, or a listener error.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}
	s.isRunning = true
	s.mu.Unlock()

	s.httpServer = &http.Server{
		Addr:           s.config.ListenAddress,
		Handler:        s.Handler(),
		ReadTimeout:    s.config.ReadTimeout,
		WriteTimeout:   s.config.WriteTimeout,
		IdleTimeout:    s.config.IdleTimeout,
		MaxHeaderBytes: s.config.MaxHeaderBytes,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("starting mediator server", "address", s.config.ListenAddress)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-ctx.Done():
		slog.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case sig := <-sigChan:
		slog.Info("received shutdown signal", "signal", sig.String())
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	case <-s.shutdownChan:
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the server, waiting up to the
// configured shutdown timeout for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		if !s.isRunning {
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		slog.Info("initiating graceful shutdown", "timeout", s.config.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
		defer cancel()

		if s.httpServer != nil {
			if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
				slog.Error("error during server shutdown", "error", err)
				shutdownErr = fmt.Errorf("server shutdown error: %w", err)
			}
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		slog.Info("mediator server stopped")
	})

	return shutdownErr
}

// IsRunning reports whether the server is serving.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Handler returns the configured HTTP handler, including the full
// middleware chain. Exposed for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/v1/auth", s.handleAuth)
	mux.Handle("/v1/session", s.authMiddleware(http.HandlerFunc(s.handleSessionCreate)))
	mux.Handle("/v1/context", s.authMiddleware(http.HandlerFunc(s.handleContext)))
	mux.Handle("/v1/revoke", s.authMiddleware(http.HandlerFunc(s.handleRevoke)))
	mux.Handle("/v1/audit/export", s.authMiddleware(http.HandlerFunc(s.handleAuditExport)))

	if s.metricsCfg.Enabled && s.deps.Metrics != nil {
		mux.Handle(s.metricsCfg.Path, s.deps.Metrics.Handler())
	}

	var handler http.Handler = mux
	handler = loggingMiddleware(handler)
	handler = requestIDMiddleware(handler)
	handler = recoveryMiddleware(handler)
	return handler
}

// verifyCredential accepts the personal access token or a valid
// capability token.
func (s *Server) verifyCredential(cred string) bool {
	if auth.VerifyPAT(s.deps.PersonalAccessToken, cred) {
		return true
	}
	if s.deps.Tokens == nil {
		return false
	}
	_, err := s.deps.Tokens.Validate(cred)
	return err == nil
}
