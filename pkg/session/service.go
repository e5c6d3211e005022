package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// TTL bounds in minutes. Requested TTLs are clamped, not rejected.
const (
	MinTTLMinutes = 1
	MaxTTLMinutes = 1440
)

// Config contains service-level session settings.
type Config struct {
	// DefaultTTLMinutes applies when the caller requests no TTL. This
	// normally comes from the policy document's defaults.
	DefaultTTLMinutes int
}

// Service implements session lifecycle rules on top of a Store.
type Service struct {
	store  Store
	config Config
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a session service.
func NewService(store Store, config Config) *Service {
	return &Service{
		store:  store,
		config: config,
		logger: slog.Default().With("component", "session"),
		now:    time.Now,
	}
}

// Create mints a session for profile with a fresh unguessable id. A
// non-positive ttlMinutes selects the configured default; anything else
// is clamped to [MinTTLMinutes, MaxTTLMinutes].
func (s *Service) Create(ctx context.Context, profile string, ttlMinutes int, ownerTokenHash string) (*Session, error) {
	if ttlMinutes <= 0 {
		ttlMinutes = s.config.DefaultTTLMinutes
	}
	if ttlMinutes < MinTTLMinutes {
		ttlMinutes = MinTTLMinutes
	}
	if ttlMinutes > MaxTTLMinutes {
		ttlMinutes = MaxTTLMinutes
	}

	now := s.now().UTC()
	sess := &Session{
		ID:             uuid.NewString(),
		Profile:        profile,
		CreatedAt:      now,
		ExpiresAt:      now.Add(time.Duration(ttlMinutes) * time.Minute),
		OwnerTokenHash: ownerTokenHash,
	}

	if err := s.store.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.Info("session created",
		"session_id", sess.ID,
		"profile", profile,
		"ttl_minutes", ttlMinutes,
	)
	return sess, nil
}

// Get returns the session, or nil when it does not exist or has been
// revoked. Callers decide how to treat expiry.
func (s *Service) Get(ctx context.Context, id string) (*Session, error) {
	return s.store.Get(ctx, id)
}

// Revoke terminates a live session. See Store.Revoke for the idempotent
// false-returning contract.
func (s *Service) Revoke(ctx context.Context, id string) (bool, error) {
	revoked, err := s.store.Revoke(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to revoke session: %w", err)
	}
	if revoked {
		s.logger.Info("session revoked", "session_id", id)
	}
	return revoked, nil
}
