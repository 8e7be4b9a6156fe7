package dbx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openSessions(t *testing.T) *sql.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := sql.Open("sqlite", "file:"+name+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE refresh_tokens (token TEXT PRIMARY KEY, user_id TEXT NOT NULL)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO refresh_tokens VALUES ('r-old', 'u-1')`)
	require.NoError(t, err)
	return db
}

func tokens(t *testing.T, db *sql.DB) []string {
	t.Helper()
	rows, err := db.Query(`SELECT token FROM refresh_tokens ORDER BY token`)
	require.NoError(t, err)
	defer rows.Close()
	var out []string
	for rows.Next() {
		var s string
		require.NoError(t, rows.Scan(&s))
		out = append(out, s)
	}
	require.NoError(t, rows.Err())
	return out
}

// rotate mirrors the refresh flow: drop the presented token, issue a new one.
func rotate(fail error) func(ctx context.Context, tx DBTX) error {
	return func(ctx context.Context, tx DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE token = 'r-old'`); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO refresh_tokens VALUES ('r-new', 'u-1')`); err != nil {
			return err
		}
		return fail
	}
}

func TestWithTx(t *testing.T) {
	boom := errors.New("sign failed")

	t.Run("commits rotation", func(t *testing.T) {
		db := openSessions(t)
		require.NoError(t, WithTx(context.Background(), db, nil, rotate(nil)))
		assert.Equal(t, []string{"r-new"}, tokens(t, db))
	})

	t.Run("rolls back on error", func(t *testing.T) {
		db := openSessions(t)
		err := WithTx(context.Background(), db, nil, rotate(boom))
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, []string{"r-old"}, tokens(t, db))
	})

	t.Run("rolls back and repanics", func(t *testing.T) {
		db := openSessions(t)
		assert.Panics(t, func() {
			_ = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
				_ = rotate(nil)(ctx, tx)
				panic("kaput")
			})
		})
		assert.Equal(t, []string{"r-old"}, tokens(t, db))
	})

	t.Run("begin fails on closed db", func(t *testing.T) {
		db := openSessions(t)
		require.NoError(t, db.Close())
		called := false
		err := WithTx(context.Background(), db, nil, func(context.Context, DBTX) error {
			called = true
			return nil
		})
		assert.Error(t, err)
		assert.False(t, called)
	})
}

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: UniqueViolation, ConstraintName: "users_email_key"}

	assert.True(t, IsUniqueViolation(pgErr))
	assert.True(t, IsUniqueViolation(fmt.Errorf("db error: %w", pgErr)))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("23505")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestIsInvalidText(t *testing.T) {
	assert.True(t, IsInvalidText(fmt.Errorf("wrap: %w", &pgconn.PgError{Code: InvalidTextRepresentation})))
	assert.False(t, IsInvalidText(&pgconn.PgError{Code: UniqueViolation}))
	assert.False(t, IsInvalidText(nil))
}
