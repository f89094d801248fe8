package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

// newMockDB installs a sqlmock-backed sqlx handle and checks all expectations on cleanup
func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		mockDB.Close()
	})

	return sqlx.NewDb(mockDB, "postgres"), mock
}

var uniqueErr = &pq.Error{Code: uniqueViolation, Message: "duplicate key value violates unique constraint"}
