package migrate

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunAppliesEveryStatement(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	for range statements {
		mock.ExpectExec(".+").WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, Run(context.Background(), db))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunStopsOnFirstFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(".+").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(".+").WillReturnError(errors.New("relation is locked"))

	err = Run(context.Background(), db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "relation is locked")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddBusinessColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	for range businessColumns {
		mock.ExpectExec("ALTER TABLE manufacturers ADD COLUMN IF NOT EXISTS").
			WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, AddBusinessColumns(context.Background(), db))
	require.NoError(t, mock.ExpectationsWereMet())
}
