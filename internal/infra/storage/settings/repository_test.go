package settings

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT data FROM restaurant_settings WHERE id = $1")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"data"}).AddRow([]byte(`{"weekdayRules":{}}`)))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT data FROM restaurant_settings WHERE id = $1")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"data"}))

	data, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"weekdayRules":{}}`, string(data))

	_, err = repo.Get(context.Background())
	assert.ErrorIs(t, err, ErrSettingsNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Upsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO restaurant_settings (id,data) VALUES ($1,$2) ON CONFLICT (id) DO UPDATE")).
		WithArgs(1, `{"a":1}`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO restaurant_settings")).
		WillReturnError(errors.New("connection reset"))

	require.NoError(t, repo.Upsert(context.Background(), []byte(`{"a":1}`)))
	assert.ErrorIs(t, repo.Upsert(context.Background(), []byte(`{}`)), ErrExecQuery)
}
