package migrate

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, string) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "0001_schema.sql"), []byte("CREATE TABLE a (id int)"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "0002_more.sql"), []byte("CREATE TABLE b (id int)"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("not sql"), 0o600))
	return sqlx.NewDb(db, "postgres"), mock, dir
}

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestApplySkipsAppliedFiles(t *testing.T) {
	db, mock, dir := setup(t)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS schema_migrations")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT name FROM schema_migrations")).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("0001_schema.sql"))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE b (id int)")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schema_migrations")).
		WithArgs("0002_more.sql").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	applied, err := Apply(context.Background(), db, dir, quiet)
	require.NoError(t, err)
	assert.Equal(t, []string{"0002_more.sql"}, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyStopsOnFailure(t *testing.T) {
	db, mock, dir := setup(t)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS schema_migrations")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT name FROM schema_migrations")).
		WillReturnRows(sqlmock.NewRows([]string{"name"}))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE a (id int)")).WillReturnError(errors.New("syntax error"))
	mock.ExpectRollback()

	applied, err := Apply(context.Background(), db, dir, quiet)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "0001_schema.sql")
	assert.Empty(t, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}
