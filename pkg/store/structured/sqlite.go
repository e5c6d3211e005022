package structured

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

const scopeSchema = `
CREATE TABLE IF NOT EXISTS scope_data (
    scope TEXT PRIMARY KEY,
    content TEXT NOT NULL,
    metadata TEXT NOT NULL DEFAULT '{}',
    updated_at INTEGER NOT NULL
);
`

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time
}

// NewSQLiteStore opens (and if necessary initializes) the scope-data
// database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open scope database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec(scopeSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize scope schema: %w", err)
	}

	logger := slog.Default().With("component", "store.structured")
	logger.Info("structured storage initialized", "path", path)

	return &SQLiteStore{db: db, logger: logger, now: time.Now}, nil
}

// GetScopeData returns the content stored for scope, or nil when absent.
func (s *SQLiteStore) GetScopeData(ctx context.Context, scope string) (*ScopeData, error) {
	var (
		data      ScopeData
		metadata  string
		updatedNs int64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT scope, content, metadata, updated_at
		FROM scope_data WHERE scope = ?`, scope,
	).Scan(&data.Scope, &data.Content, &metadata, &updatedNs)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load scope %q: %w", scope, err)
	}

	data.UpdatedAt = time.Unix(0, updatedNs).UTC()
	if err := json.Unmarshal([]byte(metadata), &data.Metadata); err != nil {
		return nil, fmt.Errorf("failed to decode metadata for scope %q: %w", scope, err)
	}
	return &data, nil
}

// StoreScopeData inserts or replaces the content for scope.
func (s *SQLiteStore) StoreScopeData(ctx context.Context, scope, content string, metadata map[string]string) error {
	if metadata == nil {
		metadata = map[string]string{}
	}
	encoded, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("failed to encode metadata for scope %q: %w", scope, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO scope_data (scope, content, metadata, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(scope) DO UPDATE SET
			content = excluded.content,
			metadata = excluded.metadata,
			updated_at = excluded.updated_at`,
		scope, content, string(encoded), s.now().UTC().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to store scope %q: %w", scope, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
