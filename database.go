package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"clientListWebsite/internal/storage"
)

// openDatabase opens the SQLite database holding sort preferences
func openDatabase(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// initDatabase creates the preference tables
func initDatabase(ctx context.Context, provider *storage.SQLiteProvider) error {
	if err := provider.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	return nil
}
