package users

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/progrestian/izin/internal/common"
)

func newSQLMockRepo(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock
}

func TestPostgresRepository_CreateIfAbsent(t *testing.T) {
	t.Parallel()

	repo, mock := newSQLMockRepo(t)
	ctx := context.Background()

	c := &Credential{Username: "alice", Salt: []byte("s"), Hash: "h", UpdatedAt: 42}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users`)).
		WithArgs("alice", []byte("s"), "h", int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := repo.CreateIfAbsent(ctx, c)
	require.NoError(t, err)
	assert.True(t, created)

	// conflict: zero rows affected
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users`)).
		WithArgs("alice", []byte("s"), "h", int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	created, err = repo.CreateIfAbsent(ctx, c)
	require.NoError(t, err)
	assert.False(t, created)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_Get(t *testing.T) {
	t.Parallel()

	repo, mock := newSQLMockRepo(t)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"username", "salt", "hash", "updated_at"}).
		AddRow("alice", []byte("s"), "h", int64(42))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT username, salt, hash, updated_at FROM users`)).
		WithArgs("alice").
		WillReturnRows(rows)

	c, err := repo.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, &Credential{Username: "alice", Salt: []byte("s"), Hash: "h", UpdatedAt: 42}, c)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT username, salt, hash, updated_at FROM users`)).
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows([]string{"username", "salt", "hash", "updated_at"}))

	_, err = repo.Get(ctx, "nobody")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_Delete(t *testing.T) {
	t.Parallel()

	repo, mock := newSQLMockRepo(t)
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM users`)).
		WithArgs("alice").
		WillReturnResult(sqlmock.NewResult(0, 1))

	deleted, err := repo.Delete(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, deleted)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM users`)).
		WithArgs("alice").
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err = repo.Delete(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, deleted)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_ListNames(t *testing.T) {
	t.Parallel()

	repo, mock := newSQLMockRepo(t)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"username"}).AddRow("alice").AddRow("bob")

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT username FROM users ORDER BY username`)).
		WillReturnRows(rows)

	names, err := repo.ListNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, names)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_DBErrorIsWrapped(t *testing.T) {
	t.Parallel()

	repo, mock := newSQLMockRepo(t)
	ctx := context.Background()

	dbErr := errors.New("connection refused")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT username, salt, hash, updated_at FROM users`)).
		WithArgs("alice").
		WillReturnError(dbErr)

	_, err := repo.Get(ctx, "alice")
	assert.ErrorIs(t, err, dbErr)

	require.NoError(t, mock.ExpectationsWereMet())
}
