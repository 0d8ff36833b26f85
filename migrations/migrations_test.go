package migrations

import (
	"context"
	"errors"
	"testing"
	"time"

	"confidencevoice/internal/retry"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestAutoMigrateCreatesEveryTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	for _, tbl := range tables {
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS " + tbl.name + " ").WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, AutoMigrate(context.Background(), db, retry.Fixed(1, 0)))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAutoMigrateRetriesThenFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").WillReturnError(errors.New("server starting"))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS categories").WillReturnError(errors.New("denied"))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS categories").WillReturnError(errors.New("denied"))

	err = AutoMigrate(context.Background(), db, retry.Fixed(2, time.Millisecond))
	require.ErrorContains(t, err, "create table categories")
	require.NoError(t, mock.ExpectationsWereMet())
}
