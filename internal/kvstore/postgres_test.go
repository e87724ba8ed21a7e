package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgres_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgres(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT value FROM kv_store WHERE key = \\$1").
			WithArgs("mw_cart").
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`{"1":3}`))

		v, ok, err := repo.Get(ctx, "mw_cart")
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `{"1":3}`, v)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT value FROM kv_store").
			WithArgs("mw_cart").
			WillReturnError(sql.ErrNoRows)

		v, ok, err := repo.Get(ctx, "mw_cart")
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, v)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery("SELECT value FROM kv_store").
			WithArgs("mw_cart").
			WillReturnError(errors.New("db error"))

		_, _, err := repo.Get(ctx, "mw_cart")
		assert.ErrorIs(t, err, ErrFailedRead)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Set(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgres(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO kv_store .* ON CONFLICT \\(key\\)").
			WithArgs("mw_theme", "dark").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Set(ctx, "mw_theme", "dark"))
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO kv_store").
			WillReturnError(errors.New("db error"))

		assert.ErrorIs(t, repo.Set(ctx, "mw_theme", "dark"), ErrFailedWrite)
	})

	t.Run("EmptyKey", func(t *testing.T) {
		assert.ErrorIs(t, repo.Set(ctx, "", "dark"), ErrEmptyKey)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgres(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM kv_store WHERE key = \\$1").
			WithArgs("mw_cart").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, "mw_cart"))
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM kv_store").
			WillReturnError(errors.New("db error"))

		assert.ErrorIs(t, repo.Delete(ctx, "mw_cart"), ErrFailedDelete)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
