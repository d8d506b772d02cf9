package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &DB{sqlx.NewDb(db, "sqlmock")}, mock
}

func TestRunMigrations(t *testing.T) {
	db, mock := setupMockDB(t)

	path := filepath.Join(t.TempDir(), "001.sql")
	schema := "CREATE TABLE IF NOT EXISTS authors (author_id UUID PRIMARY KEY);"
	require.NoError(t, os.WriteFile(path, []byte(schema), 0o600))

	mock.ExpectExec(regexp.QuoteMeta(schema)).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, db.RunMigrations(path))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations_MissingFile(t *testing.T) {
	db, _ := setupMockDB(t)

	err := db.RunMigrations(filepath.Join(t.TempDir(), "missing.sql"))
	assert.ErrorContains(t, err, "read migrations")
}

func TestRunMigrations_ExecError(t *testing.T) {
	db, mock := setupMockDB(t)

	path := filepath.Join(t.TempDir(), "001.sql")
	require.NoError(t, os.WriteFile(path, []byte("CREATE TABLE x ();"), 0o600))
	mock.ExpectExec("CREATE TABLE").WillReturnError(errors.New("syntax error"))

	err := db.RunMigrations(path)
	assert.ErrorContains(t, err, "apply migrations")
}

func TestHealthCheck(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectPing()
	assert.NoError(t, db.HealthCheck(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	assert.Error(t, db.HealthCheck(context.Background()))

	var nilDB *DB
	assert.Error(t, nilDB.HealthCheck(context.Background()))
}
