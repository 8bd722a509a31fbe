package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/greenblade/lawncare/internal/platform/storage/sqlitemigrate"
	"github.com/greenblade/lawncare/internal/platform/timeouts"
	webstorage "github.com/greenblade/lawncare/internal/services/web/storage"
	"github.com/greenblade/lawncare/internal/services/web/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store provides SQLite-backed persistence for quote drafts.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens and migrates a draft store at path, creating parent directories.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	sqlDB, err := sql.Open("sqlite", dataSourceName(cleanPath))
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeouts.StoreOpen)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB, now: time.Now}
	if err := sqlitemigrate.Apply(ctx, sqlDB, migrations.FS, "."); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// PutDraft inserts or replaces a draft and prunes drafts that expired before
// its creation time.
func (s *Store) PutDraft(ctx context.Context, draft webstorage.Draft) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	draft.ID = strings.TrimSpace(draft.ID)
	if draft.ID == "" {
		return fmt.Errorf("draft id is required")
	}
	if len(draft.Payload) == 0 {
		return fmt.Errorf("draft payload is required")
	}
	if draft.CreatedAt.IsZero() {
		draft.CreatedAt = s.now().UTC()
	}
	if draft.ExpiresAt.IsZero() {
		return fmt.Errorf("draft expiry is required")
	}
	if !draft.ExpiresAt.After(draft.CreatedAt) {
		return fmt.Errorf("draft expiry must be after creation")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin put draft: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM quote_drafts WHERE expires_at <= ?`,
		timeToUnixMillis(draft.CreatedAt),
	); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prune drafts: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO quote_drafts (id, payload_json, created_at, expires_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		    payload_json = excluded.payload_json,
		    created_at = excluded.created_at,
		    expires_at = excluded.expires_at`,
		draft.ID,
		draft.Payload,
		timeToUnixMillis(draft.CreatedAt),
		timeToUnixMillis(draft.ExpiresAt),
	); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("put draft: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit put draft: %w", err)
	}
	return nil
}

// GetDraft loads a draft that is still valid at now.
func (s *Store) GetDraft(ctx context.Context, id string, now time.Time) (webstorage.Draft, error) {
	if s == nil || s.sqlDB == nil {
		return webstorage.Draft{}, fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return webstorage.Draft{}, webstorage.ErrNotFound
	}

	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, payload_json, created_at, expires_at
		 FROM quote_drafts
		 WHERE id = ?`,
		id,
	)
	var draft webstorage.Draft
	var createdAt int64
	var expiresAt int64
	if err := row.Scan(&draft.ID, &draft.Payload, &createdAt, &expiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return webstorage.Draft{}, webstorage.ErrNotFound
		}
		return webstorage.Draft{}, fmt.Errorf("get draft: %w", err)
	}
	draft.CreatedAt = unixMillisToTime(createdAt)
	draft.ExpiresAt = unixMillisToTime(expiresAt)
	if draft.Expired(now) {
		return webstorage.Draft{}, webstorage.ErrNotFound
	}
	return draft, nil
}

// DeleteDraft removes a draft. Deleting a missing draft is not an error.
func (s *Store) DeleteDraft(ctx context.Context, id string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM quote_drafts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}

// PruneExpired deletes drafts that expired at or before now.
func (s *Store) PruneExpired(ctx context.Context, now time.Time) (int64, error) {
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM quote_drafts WHERE expires_at <= ?`, timeToUnixMillis(now))
	if err != nil {
		return 0, fmt.Errorf("prune drafts: %w", err)
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune drafts rows: %w", err)
	}
	return removed, nil
}

// dataSourceName builds a modernc.org/sqlite DSN. busy_timeout must stay
// first; transactions begin immediate so writers wait on the busy handler.
func dataSourceName(path string) string {
	return path + "?_pragma=busy_timeout(5000)" +
		"&_pragma=journal_mode(WAL)" +
		"&_pragma=foreign_keys(1)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_txlock=immediate"
}

func timeToUnixMillis(value time.Time) int64 {
	if value.IsZero() {
		return 0
	}
	return value.UTC().UnixMilli()
}

func unixMillisToTime(value int64) time.Time {
	if value <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(value).UTC()
}

var _ webstorage.Store = (*Store)(nil)
