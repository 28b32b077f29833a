package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "prefs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSQLiteProvider_RoundTrip(t *testing.T) {
	ctx := context.Background()
	p := NewSQLiteProvider(openTestDB(t))
	require.NoError(t, p.Init(ctx))
	// Init is idempotent
	require.NoError(t, p.Init(ctx))

	s := p.ForVisitor("visitor-1")

	_, ok, err := s.Get(ctx, "clientTableSortCriteria")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "clientTableSortCriteria", `[{"id":"a"}]`))
	require.NoError(t, s.Set(ctx, "clientTableSortCriteria", `[{"id":"b"}]`))

	v, ok, err := s.Get(ctx, "clientTableSortCriteria")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"b"}]`, v)

	_, ok, err = p.ForVisitor("visitor-2").Get(ctx, "clientTableSortCriteria")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteStore_SetFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sort_preferences")).
		WithArgs("v", "k", "value").
		WillReturnError(errors.New("disk I/O error"))

	err = NewSQLiteProvider(db).ForVisitor("v").Set(context.Background(), "k", "value")
	require.Error(t, err)

	var dbErr *DatabaseError
	require.ErrorAs(t, err, &dbErr)
	assert.Equal(t, ErrTypeQuery, dbErr.Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStore_GetFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM sort_preferences")).
		WithArgs("v", "k").
		WillReturnError(errors.New("database is locked"))

	_, ok, err := NewSQLiteProvider(db).ForVisitor("v").Get(context.Background(), "k")
	assert.False(t, ok)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteProvider_InitRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS sort_preferences")).
		WillReturnError(errors.New("read-only database"))
	mock.ExpectRollback()

	err = NewSQLiteProvider(db).Init(context.Background())
	var dbErr *DatabaseError
	require.ErrorAs(t, err, &dbErr)
	assert.Equal(t, ErrTypeSchema, dbErr.Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}
