package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"synm-hq/mediator/pkg/audit"
)

// SQLiteConfig contains configuration for the SQLite audit backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:        "data/audit.db",
		BusyTimeout: 5 * time.Second,
	}
}

// schema creates the append-only audit log table. The seq column is the
// monotonic sequence the chain is verified against; rows are never
// updated or deleted.
const schema = `
CREATE TABLE IF NOT EXISTS audit_log (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    ts_unix_ns INTEGER NOT NULL,
    event_type TEXT NOT NULL,
    session_id TEXT,
    profile TEXT,
    identity_hash TEXT,
    metadata TEXT,
    hash TEXT NOT NULL,
    previous_hash TEXT
);

CREATE INDEX IF NOT EXISTS idx_audit_ts ON audit_log(ts_unix_ns);
CREATE INDEX IF NOT EXISTS idx_audit_session ON audit_log(session_id);
`

// SQLiteStorage implements audit.Storage using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStorage opens (and if necessary initializes) the audit
// database. WAL mode is enabled for concurrent readers; writes go
// through a single connection because SQLite supports one writer.
func NewSQLiteStorage(config *SQLiteConfig) (*SQLiteStorage, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}

	logger := slog.Default().With("component", "audit.storage.sqlite")

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=%d&_synchronous=NORMAL",
		config.Path, int(config.BusyTimeout.Milliseconds()))

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize audit schema: %w", err)
	}

	logger.Info("audit storage initialized", "path", config.Path)

	return &SQLiteStorage{db: db, config: config, logger: logger}, nil
}

// Append persists the event in a single transaction and assigns Seq.
func (s *SQLiteStorage) Append(ctx context.Context, ev *audit.Event) error {
	metadata, err := json.Marshal(ev.Metadata)
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin append transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO audit_log
		(ts_unix_ns, event_type, session_id, profile, identity_hash, metadata, hash, previous_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.Timestamp.UnixNano(),
		ev.EventType,
		ev.SessionID,
		ev.Profile,
		ev.IdentityHash,
		string(metadata),
		ev.Hash,
		ev.PreviousHash,
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit event: %w", err)
	}

	seq, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read assigned sequence: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit audit append: %w", err)
	}

	ev.Seq = seq
	return nil
}

// TailHash returns the hash of the highest-sequence event.
func (s *SQLiteStorage) TailHash(ctx context.Context) (string, error) {
	var hash string
	err := s.db.QueryRowContext(ctx,
		`SELECT hash FROM audit_log ORDER BY seq DESC LIMIT 1`,
	).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read tail hash: %w", err)
	}
	return hash, nil
}

// Scan returns every event ordered by sequence.
func (s *SQLiteStorage) Scan(ctx context.Context) ([]*audit.Event, error) {
	return s.query(ctx,
		`SELECT seq, ts_unix_ns, event_type, session_id, profile, identity_hash, metadata, hash, previous_hash
		 FROM audit_log ORDER BY seq`)
}

// Since returns events at or after cutoff, ordered by sequence.
func (s *SQLiteStorage) Since(ctx context.Context, cutoff time.Time) ([]*audit.Event, error) {
	return s.query(ctx,
		`SELECT seq, ts_unix_ns, event_type, session_id, profile, identity_hash, metadata, hash, previous_hash
		 FROM audit_log WHERE ts_unix_ns >= ? ORDER BY seq`,
		cutoff.UnixNano())
}

func (s *SQLiteStorage) query(ctx context.Context, stmt string, args ...any) ([]*audit.Event, error) {
	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit log: %w", err)
	}
	defer rows.Close()

	var events []*audit.Event
	for rows.Next() {
		var (
			ev       audit.Event
			tsNanos  int64
			metadata string
		)
		if err := rows.Scan(
			&ev.Seq, &tsNanos, &ev.EventType, &ev.SessionID, &ev.Profile,
			&ev.IdentityHash, &metadata, &ev.Hash, &ev.PreviousHash,
		); err != nil {
			return nil, fmt.Errorf("failed to scan audit row: %w", err)
		}

		ev.Timestamp = time.Unix(0, tsNanos).UTC()
		if metadata != "" && metadata != "null" {
			if err := json.Unmarshal([]byte(metadata), &ev.Metadata); err != nil {
				return nil, fmt.Errorf("failed to decode metadata for seq %d: %w", ev.Seq, err)
			}
		}

		events = append(events, &ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate audit rows: %w", err)
	}
	return events, nil
}

// Close closes the underlying database.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
