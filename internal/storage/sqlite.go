package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS sort_preferences (
		visitor_id TEXT NOT NULL,
		key        TEXT NOT NULL,
		value      TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (visitor_id, key)
	);
`

const sqliteIndex = `
	CREATE INDEX IF NOT EXISTS idx_sort_preferences_updated_at
		ON sort_preferences (updated_at);
`

// SQLiteProvider stores values in the sort_preferences table, one row per
// visitor and key.
type SQLiteProvider struct {
	db *sql.DB
}

func NewSQLiteProvider(db *sql.DB) *SQLiteProvider {
	return &SQLiteProvider{db: db}
}

// TransactionFunc represents a function that operates within a database transaction
type TransactionFunc func(*sql.Tx) error

// WithTransaction executes fn within a transaction, committing on success
// and rolling back when fn returns an error or panics.
func WithTransaction(ctx context.Context, db *sql.DB, fn TransactionFunc) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return WrapDatabaseError(ErrTypeConnection, "failed to begin transaction", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return fmt.Errorf("failed to rollback transaction: %v (original error: %w)", rollbackErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return WrapDatabaseError(ErrTypeConnection, "failed to commit transaction", err)
	}

	return nil
}

// Init creates the preferences table if it does not exist yet.
func (p *SQLiteProvider) Init(ctx context.Context) error {
	return WithTransaction(ctx, p.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, sqliteSchema); err != nil {
			return WrapDatabaseError(ErrTypeSchema, "failed to create sort_preferences", err)
		}
		if _, err := tx.ExecContext(ctx, sqliteIndex); err != nil {
			return WrapDatabaseError(ErrTypeSchema, "failed to create sort_preferences index", err)
		}
		return nil
	})
}

func (p *SQLiteProvider) ForVisitor(visitorID string) StringStore {
	return &sqliteStore{db: p.db, visitorID: visitorID}
}

type sqliteStore struct {
	db        *sql.DB
	visitorID string
}

func (s *sqliteStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM sort_preferences WHERE visitor_id = ? AND key = ?",
		s.visitorID, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, WrapDatabaseError(ErrTypeQuery, "failed to read preference "+key, err)
	}
	return value, true, nil
}

func (s *sqliteStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sort_preferences (visitor_id, key, value, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (visitor_id, key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`,
		s.visitorID, key, value,
	)
	if err != nil {
		return WrapDatabaseError(ErrTypeQuery, "failed to write preference "+key, err)
	}
	return nil
}
