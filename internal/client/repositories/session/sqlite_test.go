package session

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE session (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func TestSetAndGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyRefreshToken, []byte("r1")))

	v, err := r.Get(ctx, KeyRefreshToken)
	require.NoError(t, err)
	assert.Equal(t, []byte("r1"), v)
}

func TestGet_Absent_ReturnsNilNil(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	v, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestSet_Upserts(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyEmail, []byte("old@x.io")))
	require.NoError(t, r.Set(ctx, KeyEmail, []byte("new@x.io")))

	v, err := r.Get(ctx, KeyEmail)
	require.NoError(t, err)
	assert.Equal(t, []byte("new@x.io"), v)
}

func TestDeleteAndClear(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyUserID, []byte("u1")))
	require.NoError(t, r.Set(ctx, KeyEmail, []byte("a@x.io")))

	require.NoError(t, r.Delete(ctx, KeyUserID))
	v, err := r.Get(ctx, KeyUserID)
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, r.Clear(ctx))
	v, err = r.Get(ctx, KeyEmail)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestErrorsAreWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("disk I/O error")
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT value FROM session`).WithArgs("k").WillReturnError(boom)
	_, err = r.Get(ctx, "k")
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to get session[k]")

	mock.ExpectExec(`INSERT INTO session`).WithArgs("k", []byte("v")).WillReturnError(boom)
	assert.ErrorIs(t, r.Set(ctx, "k", []byte("v")), boom)

	mock.ExpectExec(`DELETE FROM session WHERE key`).WithArgs("k").WillReturnError(boom)
	assert.ErrorIs(t, r.Delete(ctx, "k"), boom)

	mock.ExpectExec(`DELETE FROM session`).WillReturnError(boom)
	assert.ErrorIs(t, r.Clear(ctx), boom)

	assert.NoError(t, mock.ExpectationsWereMet())
}
