package session

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// sessionSchema stores sessions as soft-revocable rows. Rows are never
// deleted; revocation is the only mutation.
const sessionSchema = `
CREATE TABLE IF NOT EXISTS sessions (
    id TEXT PRIMARY KEY,
    profile TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    expires_at INTEGER NOT NULL,
    revoked INTEGER NOT NULL DEFAULT 0,
    owner_token_hash TEXT
);

CREATE INDEX IF NOT EXISTS idx_sessions_expires ON sessions(expires_at);
`

// SQLiteStore implements Store using SQLite for persistence across
// restarts.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore opens (and if necessary initializes) the session
// database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}

	// SQLite only supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec(sessionSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize session schema: %w", err)
	}

	logger := slog.Default().With("component", "session.storage.sqlite")
	logger.Info("session storage initialized", "path", path)

	return &SQLiteStore{db: db, logger: logger}, nil
}

// Create persists a new session row.
func (s *SQLiteStore) Create(ctx context.Context, sess *Session) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, profile, created_at, expires_at, revoked, owner_token_hash)
		VALUES (?, ?, ?, ?, 0, ?)`,
		sess.ID,
		sess.Profile,
		sess.CreatedAt.UnixNano(),
		sess.ExpiresAt.UnixNano(),
		sess.OwnerTokenHash,
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

// Get returns the session, or nil when missing or revoked.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Session, error) {
	var (
		sess      Session
		createdNs int64
		expiresNs int64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, profile, created_at, expires_at, owner_token_hash
		FROM sessions WHERE id = ? AND revoked = 0`, id,
	).Scan(&sess.ID, &sess.Profile, &createdNs, &expiresNs, &sess.OwnerTokenHash)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	sess.CreatedAt = time.Unix(0, createdNs).UTC()
	sess.ExpiresAt = time.Unix(0, expiresNs).UTC()
	return &sess, nil
}

// Revoke flips the revoked flag on a live session. The WHERE clause
// makes the idempotent-false contract a single atomic statement.
func (s *SQLiteStore) Revoke(ctx context.Context, id string) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET revoked = 1 WHERE id = ? AND revoked = 0`, id)
	if err != nil {
		return false, fmt.Errorf("failed to revoke session: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read revoke result: %w", err)
	}
	return affected > 0, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
